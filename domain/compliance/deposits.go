package compliance

import (
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusCompliant Status = "compliant"
	StatusPending   Status = "pending"
	StatusOverdue   Status = "overdue"
)

type DepositStatus struct {
	EmployerID types.ID `json:"employerId" gorm:"primary_key;auto_increment:false"`
	Status     Status   `json:"status" gorm:"type:VARCHAR(16) NOT NULL"`
	// calendar date, YYYY-MM-DD
	LastDepositDate *string   `json:"lastDepositDate"`
	UpdateTime      time.Time `json:"updateTime"`
}

func (d *DepositStatus) TableName() string {
	return "compliance_deposits"
}

func (d *DepositStatus) LastDeposit() *time.Time {
	if d.LastDepositDate == nil {
		return nil
	}
	t, err := time.Parse(DateLayout, *d.LastDepositDate)
	if err != nil {
		return nil
	}
	return &t
}

// Pending is the status of an employer that has no stored record.
func Pending(employerID types.ID) DepositStatus {
	return DepositStatus{EmployerID: employerID, Status: StatusPending}
}

// Deposited marks a deposit made on the day of now.
func Deposited(employerID types.ID, now time.Time) DepositStatus {
	day := now.Format(DateLayout)
	return DepositStatus{EmployerID: employerID, Status: StatusCompliant, LastDepositDate: &day, UpdateTime: now}
}

// Resolve returns the stored status of every employer, pending for those without a record.
func Resolve(stored []DepositStatus, employerIDs []types.ID) []DepositStatus {
	byEmployer := make(map[types.ID]DepositStatus, len(stored))
	for _, s := range stored {
		byEmployer[s.EmployerID] = s
	}
	statuses := make([]DepositStatus, 0, len(employerIDs))
	for _, id := range employerIDs {
		if s, ok := byEmployer[id]; ok {
			statuses = append(statuses, s)
		} else {
			statuses = append(statuses, Pending(id))
		}
	}
	return statuses
}

func QueryDepositStatuses(db *gorm.DB) ([]DepositStatus, error) {
	statuses := []DepositStatus{}
	if err := db.Order("employer_id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func SaveDepositStatus(db *gorm.DB, s DepositStatus) error {
	return db.Save(&s).Error
}
