package event

import (
	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	EventPersistCreateFunc = eventPersistCreate
	MarkSyncedFunc         = MarkSynced
)

func eventPersistCreate(record *EventRecord, db *gorm.DB) error {
	return db.Create(record).Error
}

// QueryEvents lists the events of one source, oldest first.
func QueryEvents(db *gorm.DB, sourceType string, sourceId types.ID) ([]EventRecord, error) {
	records := []EventRecord{}
	if err := db.Where("source_type = ? AND source_id = ?", sourceType, sourceId).
		Order("timestamp ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// MarkSynced flags records whose handlers all succeeded.
func MarkSynced(db *gorm.DB, ids []types.ID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&EventRecord{}).Where("id IN (?)", ids).Update("synced", true).Error
}
