package idgen

import (
	"os"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator hands out ids for records created by this process. Optimistic
// records get their final id up front, so no temporary ids exist.
type Generator struct {
	worker *sonyflake.Sonyflake
}

func NewGenerator(machineID uint16) *Generator {
	return &Generator{worker: sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: epoch,
		MachineID: func() (uint16, error) { return machineID, nil },
	})}
}

// NewProcessGenerator derives the machine id from the process id.
func NewProcessGenerator() *Generator {
	return NewGenerator(uint16(os.Getpid()))
}

func (g *Generator) Next() types.ID {
	return NextID(g.worker)
}

func NextID(idWorker *sonyflake.Sonyflake) types.ID {
	id, err := idWorker.NextID()
	if err != nil {
		panic(err)
	}
	return types.ID(id)
}
