package store

import (
	"context"
	"strconv"
	"time"

	"bneibrit/common"
	"bneibrit/domain/absence"
	"bneibrit/domain/benefits"
	"bneibrit/domain/compliance"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"
	"bneibrit/domain/holiday"
	"bneibrit/domain/rates"
	"bneibrit/domain/worksession"
	"bneibrit/event"
	"bneibrit/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// GormStore persists the workspace through gorm. Changes to employers, contracts and
// deposits write an audit event in the same transaction.
type GormStore struct {
	DS  *persistence.DataSourceManager
	Now func() time.Time
}

func New(ds *persistence.DataSourceManager) *GormStore {
	return &GormStore{DS: ds, Now: time.Now}
}

// AutoMigrate creates or extends every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employer.Employer{}, &contract.Config{}, &worksession.WorkSession{}, &absence.Record{},
		&holiday.Decision{}, &holiday.Dismissal{}, &compliance.DepositStatus{},
		&rates.LegalRate{}, &rates.ConvalescenceTierRecord{}, &event.EventRecord{},
	).Error
}

func (s *GormStore) db(ctx context.Context) *gorm.DB {
	return s.DS.GormDB(ctx)
}

// transact runs fn in a transaction and hands the recorded event to the handlers once committed.
func (s *GormStore) transact(ctx context.Context, fn func(tx *gorm.DB) (*event.EventRecord, error)) error {
	var ev *event.EventRecord
	err := s.db(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		ev, err = fn(tx)
		return err
	})
	if err != nil {
		return err
	}

	if ev != nil && event.InvokeHandlersFunc != nil {
		if event.Succeeded(event.InvokeHandlersFunc(ev)) {
			if err := event.MarkSyncedFunc(s.db(ctx), []types.ID{ev.ID}); err != nil {
				common.Log.WithError(err).WithField("event", ev.ID).Error("failed to mark event synced")
			}
		}
	}
	return nil
}

func (s *GormStore) QueryEmployers(ctx context.Context) ([]employer.Employer, error) {
	return employer.QueryEmployers(s.db(ctx))
}

func (s *GormStore) CreateEmployer(ctx context.Context, e *employer.Employer) error {
	return s.transact(ctx, func(tx *gorm.DB) (*event.EventRecord, error) {
		if err := employer.CreateEmployer(tx, e); err != nil {
			return nil, err
		}
		return event.CreateEvent(event.SourceEmployer, e.ID, e.Name, event.EventCategoryCreated, nil, s.Now(), tx)
	})
}

func (s *GormStore) UpdateEmployer(ctx context.Context, id types.ID, u employer.Update) (*employer.Employer, error) {
	var updated *employer.Employer
	err := s.transact(ctx, func(tx *gorm.DB) (*event.EventRecord, error) {
		after, before, err := employer.UpdateEmployer(tx, id, u)
		if err != nil {
			return nil, err
		}
		updated = after
		changes := employerChanges(before, after, u.Fields())
		if len(changes) == 0 {
			return nil, nil
		}
		return event.CreateEvent(event.SourceEmployer, id, after.Name, event.EventCategoryPropertyUpdated, changes, s.Now(), tx)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func employerChanges(before, after *employer.Employer, fields []employer.Field) []event.UpdatedProperty {
	var changes []event.UpdatedProperty
	for _, f := range fields {
		var oldValue, newValue string
		switch f {
		case employer.FieldName:
			oldValue, newValue = before.Name, after.Name
		case employer.FieldMonthlySalary:
			oldValue, newValue = formatFloat(before.MonthlySalary), formatFloat(after.MonthlySalary)
		case employer.FieldHoursPerWeek:
			oldValue, newValue = formatFloat(before.HoursPerWeek), formatFloat(after.HoursPerWeek)
		case employer.FieldStartDate:
			oldValue, newValue = before.StartDate, after.StartDate
		}
		if oldValue != newValue {
			changes = append(changes, event.UpdatedProperty{PropertyName: f.String(), OldValue: oldValue, NewValue: newValue})
		}
	}
	return changes
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *GormStore) QueryContractConfigs(ctx context.Context) ([]contract.Config, error) {
	return contract.QueryContractConfigs(s.db(ctx))
}

func (s *GormStore) UpsertContractConfig(ctx context.Context, c contract.Config) (*contract.Config, error) {
	var stored *contract.Config
	err := s.transact(ctx, func(tx *gorm.DB) (*event.EventRecord, error) {
		var err error
		if stored, err = contract.UpsertContractConfig(tx, c); err != nil {
			return nil, err
		}
		return event.CreateEvent(event.SourceContract, c.EmployerID, string(c.RewardType), event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{
				{PropertyName: "noticeHours", NewValue: strconv.Itoa(c.CancellationPolicy.NoticeHours)},
				{PropertyName: "shortNoticePayPercent", NewValue: strconv.Itoa(c.CancellationPolicy.ShortNoticePayPercent)},
			}, s.Now(), tx)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *GormStore) QueryActiveSessions(ctx context.Context) ([]worksession.WorkSession, error) {
	return worksession.QueryActiveSessions(s.db(ctx))
}

func (s *GormStore) QueryCompletedSessions(ctx context.Context) ([]worksession.WorkSession, error) {
	return worksession.QueryCompletedSessions(s.db(ctx))
}

func (s *GormStore) InsertSession(ctx context.Context, ws *worksession.WorkSession) error {
	return worksession.InsertSession(s.db(ctx), ws)
}

func (s *GormStore) EndSession(ctx context.Context, id types.ID, end time.Time, earnings float64) error {
	return worksession.EndSession(s.db(ctx), id, end, earnings)
}

func (s *GormStore) QueryAbsences(ctx context.Context) ([]absence.Record, error) {
	return absence.QueryAbsences(s.db(ctx))
}

func (s *GormStore) InsertAbsence(ctx context.Context, r *absence.Record) error {
	return absence.InsertAbsence(s.db(ctx), r)
}

func (s *GormStore) QueryHolidayDecisions(ctx context.Context) ([]holiday.Decision, error) {
	return holiday.QueryDecisions(s.db(ctx))
}

func (s *GormStore) SaveHolidayDecision(ctx context.Context, d holiday.Decision) error {
	return holiday.SaveDecision(s.db(ctx), d)
}

func (s *GormStore) QueryDismissedHolidays(ctx context.Context) (map[holiday.Holiday]bool, error) {
	return holiday.QueryDismissed(s.db(ctx))
}

func (s *GormStore) DismissHoliday(ctx context.Context, h holiday.Holiday, now time.Time) error {
	return holiday.SaveDismissal(s.db(ctx), h, now)
}

func (s *GormStore) QueryDepositStatuses(ctx context.Context) ([]compliance.DepositStatus, error) {
	return compliance.QueryDepositStatuses(s.db(ctx))
}

func (s *GormStore) SaveDepositStatus(ctx context.Context, d compliance.DepositStatus) error {
	return s.transact(ctx, func(tx *gorm.DB) (*event.EventRecord, error) {
		var previous compliance.DepositStatus
		oldValue := string(compliance.StatusPending)
		if err := tx.Where("employer_id = ?", d.EmployerID).First(&previous).Error; err == nil {
			oldValue = string(previous.Status)
		} else if !gorm.IsRecordNotFoundError(err) {
			return nil, err
		}
		if err := compliance.SaveDepositStatus(tx, d); err != nil {
			return nil, err
		}
		if oldValue == string(d.Status) {
			return nil, nil
		}
		return event.CreateEvent(event.SourceDeposit, d.EmployerID, string(d.Status), event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{{PropertyName: "status", OldValue: oldValue, NewValue: string(d.Status)}}, s.Now(), tx)
	})
}

func (s *GormStore) ActiveLegalRates(ctx context.Context, day time.Time) (map[string]float64, error) {
	return rates.QueryActiveLegalRates(s.db(ctx), day)
}

func (s *GormStore) ConvalescenceSchedule(ctx context.Context) ([]benefits.ConvalescenceTier, error) {
	return rates.QueryConvalescenceSchedule(s.db(ctx))
}
