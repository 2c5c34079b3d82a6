package event_test

import (
	"errors"
	"testing"
	"time"

	"bneibrit/event"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
)

func TestCreateEvent(t *testing.T) {
	original := event.EventPersistCreateFunc
	defer func() { event.EventPersistCreateFunc = original }()

	ts := time.Date(2026, 1, 1, 12, 12, 12, 0, time.UTC)
	props := event.UpdatedProperties{{PropertyName: "monthlySalary", OldValue: "3000", NewValue: "3500"}}

	t.Run("should return error when failed to persist event", func(t *testing.T) {
		testErr := errors.New("test error")
		event.EventPersistCreateFunc = func(record *event.EventRecord, tx *gorm.DB) error {
			return testErr
		}
		ret, err := event.CreateEvent(event.SourceEmployer, 1234, "Dana", event.EventCategoryPropertyUpdated, props, ts, &gorm.DB{Value: 10000})
		assert.Nil(t, ret)
		assert.Equal(t, testErr, err)
	})

	t.Run("should be able to create events", func(t *testing.T) {
		var db *gorm.DB
		event.EventPersistCreateFunc = func(record *event.EventRecord, tx *gorm.DB) error {
			db = tx
			return nil
		}

		tx := &gorm.DB{Value: 10000}
		ret, err := event.CreateEvent(event.SourceEmployer, 1234, "Dana", event.EventCategoryPropertyUpdated, props, ts, tx)
		assert.Nil(t, err)
		assert.Equal(t, tx, db)
		assert.Equal(t, event.EventRecord{
			Event: event.Event{
				SourceType: event.SourceEmployer, SourceId: 1234, SourceDesc: "Dana",
				EventCategory: event.EventCategoryPropertyUpdated, UpdatedProperties: props,
			},
			Timestamp: ts,
		}, *ret)
	})
}

func TestUpdatedPropertiesColumn(t *testing.T) {
	props := event.UpdatedProperties{{PropertyName: "status", OldValue: "pending", NewValue: "compliant"}}
	v, err := props.Value()
	assert.Nil(t, err)
	assert.Equal(t, `[{"propertyName":"status","oldValue":"pending","newValue":"compliant"}]`, v)

	var scanned event.UpdatedProperties
	assert.Nil(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, props, scanned)
	assert.NotNil(t, scanned.Scan(42))
}
