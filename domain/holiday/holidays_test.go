package holiday_test

import (
	"testing"
	"time"

	"bneibrit/domain/holiday"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestUpcoming(t *testing.T) {
	RegisterTestingT(t)

	calendar := []holiday.Holiday{
		{Key: "b", Date: "2026-10-26"},
		{Key: "a", Date: "2026-10-19"},
		{Key: "past", Date: "2026-10-18"},
		{Key: "late", Date: "2026-10-27"},
	}
	now := time.Date(2026, 10, 19, 18, 30, 0, 0, time.UTC)

	Expect(holiday.Upcoming(calendar, now, 7)).To(Equal([]holiday.Holiday{
		{Key: "a", Date: "2026-10-19"}, {Key: "b", Date: "2026-10-26"},
	}))
	Expect(holiday.Upcoming(calendar, now, 0)).To(Equal([]holiday.Holiday{{Key: "a", Date: "2026-10-19"}}))
	Expect(holiday.Upcoming(calendar, now.AddDate(1, 0, 0), 7)).To(BeEmpty())
}

func TestCalendar(t *testing.T) {
	RegisterTestingT(t)

	for i, h := range holiday.Calendar {
		Expect(h.Day().IsZero()).To(BeFalse(), h.Key)
		if i > 0 {
			Expect(h.Date > holiday.Calendar[i-1].Date).To(BeTrue(), h.Key)
		}
	}
}

func TestUpsertDecision(t *testing.T) {
	RegisterTestingT(t)

	decisions := []holiday.Decision{
		{EmployerID: 1, HolidayKey: "purim", HolidayDate: "2027-03-23", Decision: holiday.DecisionCancel},
	}

	decisions = holiday.UpsertDecision(decisions, holiday.Decision{EmployerID: 2, HolidayKey: "purim", HolidayDate: "2027-03-23", Decision: holiday.DecisionCancel})
	Expect(decisions).To(HaveLen(2))

	decisions = holiday.UpsertDecision(decisions, holiday.Decision{EmployerID: 1, HolidayKey: "purim", HolidayDate: "2027-03-23", Decision: holiday.DecisionReschedule})
	Expect(decisions).To(HaveLen(2))
	Expect(decisions[0].Decision).To(Equal(holiday.DecisionReschedule))

	decisions = holiday.UpsertDecision(decisions, holiday.Decision{EmployerID: 1, HolidayKey: "purim", HolidayDate: "2026-03-06", Decision: holiday.DecisionCancel})
	Expect(decisions).To(HaveLen(3))
	Expect(decisions[0].Decision).To(Equal(holiday.DecisionReschedule))
}

func TestFind(t *testing.T) {
	RegisterTestingT(t)

	h, ok := holiday.Find(holiday.Calendar, "sukkot", "2026-09-26")
	Expect(ok).To(BeTrue())
	Expect(h).To(Equal(holiday.Holiday{Key: "sukkot", Date: "2026-09-26"}))

	_, ok = holiday.Find(holiday.Calendar, "sukkot", "2026-09-27")
	Expect(ok).To(BeFalse())
	_, ok = holiday.Find(holiday.Calendar, "christmas", "2026-12-25")
	Expect(ok).To(BeFalse())
}

func TestNextAlert(t *testing.T) {
	RegisterTestingT(t)

	upcoming := []holiday.Holiday{{Key: "a", Date: "2026-10-20"}, {Key: "b", Date: "2026-10-22"}}
	employers := []types.ID{1, 2}

	t.Run("should pick the first holiday with undecided employers", func(t *testing.T) {
		decisions := []holiday.Decision{{EmployerID: 1, HolidayKey: "a", HolidayDate: "2026-10-20"}}
		Expect(holiday.NextAlert(upcoming, nil, decisions, employers)).To(Equal(&upcoming[0]))
	})

	t.Run("should skip fully decided holidays", func(t *testing.T) {
		decisions := []holiday.Decision{
			{EmployerID: 1, HolidayKey: "a", HolidayDate: "2026-10-20"},
			{EmployerID: 2, HolidayKey: "a", HolidayDate: "2026-10-20"},
		}
		Expect(holiday.NextAlert(upcoming, nil, decisions, employers)).To(Equal(&upcoming[1]))
	})

	t.Run("should skip dismissed holidays", func(t *testing.T) {
		dismissed := map[holiday.Holiday]bool{upcoming[0]: true, upcoming[1]: true}
		Expect(holiday.NextAlert(upcoming, dismissed, nil, employers)).To(BeNil())
	})

	t.Run("should not alert without employers", func(t *testing.T) {
		Expect(holiday.NextAlert(upcoming, nil, nil, nil)).To(BeNil())
	})

	t.Run("should not carry decisions and dismissals over to the next year", func(t *testing.T) {
		now := time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)
		next := holiday.Upcoming(holiday.Calendar, now, holiday.DefaultAlertRange)
		Expect(next).To(Equal([]holiday.Holiday{{Key: "yom_kippur", Date: "2026-09-21"}, {Key: "sukkot", Date: "2026-09-26"}}))

		decisions := []holiday.Decision{{EmployerID: 1, HolidayKey: "sukkot", HolidayDate: "2025-10-07", Decision: holiday.DecisionCancel}}
		dismissed := map[holiday.Holiday]bool{{Key: "yom_kippur", Date: "2025-10-02"}: true}

		Expect(holiday.NextAlert(next, dismissed, decisions, []types.ID{1})).To(Equal(&holiday.Holiday{Key: "yom_kippur", Date: "2026-09-21"}))
	})
}
