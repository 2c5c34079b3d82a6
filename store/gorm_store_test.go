package store_test

import (
	"context"
	"errors"
	"time"

	"bneibrit/common"
	"bneibrit/domain/absence"
	"bneibrit/domain/compliance"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"
	"bneibrit/domain/holiday"
	"bneibrit/domain/rates"
	"bneibrit/domain/worksession"
	"bneibrit/event"
	"bneibrit/store"
	"bneibrit/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("GormStore", func() {
	var (
		testDatabase *testinfra.TestDatabase
		s            *store.GormStore
		ctx          context.Context
		now          time.Time
		handled      []event.EventRecord
		handlers     []event.EventHandler
	)

	BeforeEach(func() {
		testDatabase = testinfra.StartTestDatabase("bneibrit")
		Expect(store.AutoMigrate(testDatabase.DS.GormDB(context.Background()))).To(BeNil())
		ctx = context.Background()
		now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
		s = store.New(testDatabase.DS)
		s.Now = func() time.Time { return now }

		handled = nil
		handlers = event.EventHandlers
		event.EventHandlers = []event.EventHandler{func(e *event.EventRecord) *event.EventHandleResult {
			handled = append(handled, *e)
			return &event.EventHandleResult{Success: true, HandlerIdentifier: "test"}
		}}
	})
	AfterEach(func() {
		event.EventHandlers = handlers
		testinfra.StopTestDatabase(testDatabase)
	})

	Describe("employers", func() {
		It("should create employers with a created event", func() {
			e := employer.Employer{ID: 10, Name: "Dana", MonthlySalary: 3500, HoursPerWeek: 10, StartDate: "2022-10-19", CreateTime: now}
			Expect(s.CreateEmployer(ctx, &e)).To(BeNil())

			employers, err := s.QueryEmployers(ctx)
			Expect(err).To(BeNil())
			Expect(employers).To(HaveLen(1))
			Expect(employers[0].Name).To(Equal("Dana"))
			Expect(employers[0].StartDate).To(Equal("2022-10-19"))

			Expect(handled).To(HaveLen(1))
			Expect(handled[0].SourceType).To(Equal(event.SourceEmployer))
			Expect(handled[0].EventCategory).To(Equal(event.EventCategory(event.EventCategoryCreated)))

			records, err := event.QueryEvents(testDatabase.DS.GormDB(ctx), event.SourceEmployer, 10)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Synced).To(BeTrue())
		})

		It("should record changed properties on update", func() {
			e := employer.Employer{ID: 10, Name: "Dana", MonthlySalary: 3500, HoursPerWeek: 10, StartDate: "2022-10-19", CreateTime: now}
			Expect(s.CreateEmployer(ctx, &e)).To(BeNil())

			salary, name := 4000.0, "Dana"
			updated, err := s.UpdateEmployer(ctx, 10, employer.Update{MonthlySalary: &salary, Name: &name})
			Expect(err).To(BeNil())
			Expect(updated.MonthlySalary).To(Equal(4000.0))

			records, err := event.QueryEvents(testDatabase.DS.GormDB(ctx), event.SourceEmployer, 10)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(2))
			Expect(records[1].UpdatedProperties).To(Equal(event.UpdatedProperties{
				{PropertyName: "monthlySalary", OldValue: "3500", NewValue: "4000"},
			}))
		})

		It("should keep the change when marking the event synced fails", func() {
			original := event.MarkSyncedFunc
			defer func() { event.MarkSyncedFunc = original }()
			event.MarkSyncedFunc = func(db *gorm.DB, ids []types.ID) error { return errors.New("connection reset") }
			logs := logtest.NewLocal(common.Log)
			defer logs.Reset()

			e := employer.Employer{ID: 10, Name: "Dana", MonthlySalary: 3500, HoursPerWeek: 10, StartDate: "2022-10-19", CreateTime: now}
			Expect(s.CreateEmployer(ctx, &e)).To(BeNil())

			records, err := event.QueryEvents(testDatabase.DS.GormDB(ctx), event.SourceEmployer, 10)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Synced).To(BeFalse())

			Expect(logs.LastEntry()).ToNot(BeNil())
			Expect(logs.LastEntry().Level).To(Equal(logrus.ErrorLevel))
			Expect(logs.LastEntry().Message).To(Equal("failed to mark event synced"))
			Expect(logs.LastEntry().Data[logrus.ErrorKey]).To(MatchError("connection reset"))
		})

		It("should fail to update a missing employer", func() {
			name := "x"
			_, err := s.UpdateEmployer(ctx, 99, employer.Update{Name: &name})
			Expect(gorm.IsRecordNotFoundError(err)).To(BeTrue())
			Expect(handled).To(BeEmpty())
		})
	})

	Describe("contracts", func() {
		It("should upsert by employer", func() {
			c := contract.Default(10)
			_, err := s.UpsertContractConfig(ctx, c)
			Expect(err).To(BeNil())
			c.CancellationPolicy.NoticeHours = 48
			stored, err := s.UpsertContractConfig(ctx, c)
			Expect(err).To(BeNil())
			Expect(*stored).To(Equal(c))

			configs, err := s.QueryContractConfigs(ctx)
			Expect(err).To(BeNil())
			Expect(configs).To(Equal([]contract.Config{c}))
			Expect(handled).To(HaveLen(2))
		})
	})

	Describe("sessions", func() {
		It("should end only open sessions", func() {
			start := now.Add(-time.Hour)
			Expect(s.InsertSession(ctx, &worksession.WorkSession{ID: 1, EmployerID: 10, StartTime: start})).To(BeNil())
			Expect(s.InsertSession(ctx, &worksession.WorkSession{ID: 2, EmployerID: 20, StartTime: start})).To(BeNil())

			active, err := s.QueryActiveSessions(ctx)
			Expect(err).To(BeNil())
			Expect(active).To(HaveLen(2))

			Expect(s.EndSession(ctx, 1, now, 50)).To(BeNil())
			Expect(s.EndSession(ctx, 1, now.Add(time.Hour), 100)).To(BeNil())

			completed, err := s.QueryCompletedSessions(ctx)
			Expect(err).To(BeNil())
			Expect(completed).To(HaveLen(1))
			Expect(*completed[0].Earnings).To(Equal(50.0))
			Expect(completed[0].EndTime.Equal(now)).To(BeTrue())

			active, err = s.QueryActiveSessions(ctx)
			Expect(err).To(BeNil())
			Expect(active).To(HaveLen(1))
			Expect(active[0].ID.String()).To(Equal("2"))
		})
	})

	Describe("absences and holidays", func() {
		It("should store absences, decisions and dismissals", func() {
			Expect(s.InsertAbsence(ctx, &absence.Record{ID: 1, EmployerID: 10, Type: absence.TypeSickLeave, Date: "2026-10-01", CreateTime: now})).To(BeNil())
			records, err := s.QueryAbsences(ctx)
			Expect(err).To(BeNil())
			Expect(absence.SickDaysUsed(records, 10)).To(Equal(1))

			err = s.InsertAbsence(ctx, &absence.Record{ID: 2, EmployerID: 10, Type: absence.TypeVacation, Date: "2026-10-02",
				CreateTime: now, MedicalCertificateFileName: "note.pdf"})
			Expect(err).To(Equal(absence.ErrCertificateNotAllowed))

			d := holiday.Decision{EmployerID: 10, HolidayKey: "hanukkah", HolidayDate: "2026-12-05", Decision: holiday.DecisionCancel}
			Expect(s.SaveHolidayDecision(ctx, d)).To(BeNil())
			d.Decision = holiday.DecisionReschedule
			Expect(s.SaveHolidayDecision(ctx, d)).To(BeNil())
			decisions, err := s.QueryHolidayDecisions(ctx)
			Expect(err).To(BeNil())
			Expect(decisions).To(Equal([]holiday.Decision{d}))

			d2025 := holiday.Decision{EmployerID: 10, HolidayKey: "hanukkah", HolidayDate: "2025-12-15", Decision: holiday.DecisionCancel}
			Expect(s.SaveHolidayDecision(ctx, d2025)).To(BeNil())
			decisions, err = s.QueryHolidayDecisions(ctx)
			Expect(err).To(BeNil())
			Expect(decisions).To(Equal([]holiday.Decision{d2025, d}))

			purim := holiday.Holiday{Key: "purim", Date: "2027-03-23"}
			Expect(s.DismissHoliday(ctx, purim, now)).To(BeNil())
			Expect(s.DismissHoliday(ctx, purim, now)).To(BeNil())
			Expect(s.DismissHoliday(ctx, holiday.Holiday{Key: "purim", Date: "2026-03-06"}, now)).To(BeNil())
			dismissed, err := s.QueryDismissedHolidays(ctx)
			Expect(err).To(BeNil())
			Expect(dismissed).To(Equal(map[holiday.Holiday]bool{purim: true, {Key: "purim", Date: "2026-03-06"}: true}))
		})
	})

	Describe("deposits", func() {
		It("should record status transitions only", func() {
			Expect(s.SaveDepositStatus(ctx, compliance.Deposited(10, now))).To(BeNil())
			Expect(s.SaveDepositStatus(ctx, compliance.Deposited(10, now.Add(time.Hour)))).To(BeNil())

			statuses, err := s.QueryDepositStatuses(ctx)
			Expect(err).To(BeNil())
			Expect(statuses).To(HaveLen(1))
			Expect(statuses[0].Status).To(Equal(compliance.StatusCompliant))
			Expect(*statuses[0].LastDepositDate).To(Equal("2026-10-19"))

			records, err := event.QueryEvents(testDatabase.DS.GormDB(ctx), event.SourceDeposit, 10)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].UpdatedProperties[0].OldValue).To(Equal("pending"))
		})
	})

	Describe("rates", func() {
		It("should resolve the rates active on a day", func() {
			db := testDatabase.DS.GormDB(ctx)
			oldEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
			Expect(db.Create(&rates.LegalRate{ID: 1, RateKey: rates.KeyConvalescencePayPerDay, RateValue: 418,
				EffectiveFrom: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), EffectiveTo: &oldEnd}).Error).To(BeNil())
			Expect(db.Create(&rates.LegalRate{ID: 2, RateKey: rates.KeyConvalescencePayPerDay, RateValue: 432,
				EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}).Error).To(BeNil())
			maxYears := 1
			Expect(db.Create(&rates.ConvalescenceTierRecord{ID: 1, MinYears: 1, MaxYears: &maxYears, DaysPerYear: 5}).Error).To(BeNil())
			Expect(db.Create(&rates.ConvalescenceTierRecord{ID: 2, MinYears: 2, DaysPerYear: 9}).Error).To(BeNil())

			snapshot := rates.NewProvider(s, time.Hour).Resolve(ctx, now)
			Expect(snapshot.FromStore).To(BeTrue())
			Expect(snapshot.Benefits.ConvalescencePayPerDay).To(Equal(432.0))
			Expect(snapshot.Benefits.ConvalescenceSchedule).To(HaveLen(2))
			Expect(snapshot.Benefits.ConvalescenceSchedule[1].DaysPerYear).To(Equal(9))
			Expect(snapshot.Pension.EmployerRate).To(Equal(0.065))
		})
	})
})
