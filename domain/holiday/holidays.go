package holiday

import (
	"errors"
	"sort"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const (
	DateLayout        = "2006-01-02"
	DefaultAlertRange = 7
)

// Holiday is one occurrence of a holiday. Keys repeat across years, so the date is part of its identity.
type Holiday struct {
	Key  string `json:"key"`
	Date string `json:"date"`
}

func (h Holiday) Day() time.Time {
	d, _ := time.Parse(DateLayout, h.Date)
	return d
}

// Calendar lists Israeli holidays that affect scheduled visits, ordered by date.
var Calendar = []Holiday{
	{Key: "rosh_hashana", Date: "2025-09-23"},
	{Key: "rosh_hashana_2", Date: "2025-09-24"},
	{Key: "yom_kippur", Date: "2025-10-02"},
	{Key: "sukkot", Date: "2025-10-07"},
	{Key: "simchat_torah", Date: "2025-10-14"},
	{Key: "hanukkah", Date: "2025-12-15"},
	{Key: "purim", Date: "2026-03-06"},
	{Key: "pesach_start", Date: "2026-04-02"},
	{Key: "pesach_end", Date: "2026-04-08"},
	{Key: "yom_haatzmaut", Date: "2026-04-22"},
	{Key: "shavuot", Date: "2026-05-22"},
	{Key: "rosh_hashana", Date: "2026-09-12"},
	{Key: "rosh_hashana_2", Date: "2026-09-13"},
	{Key: "yom_kippur", Date: "2026-09-21"},
	{Key: "sukkot", Date: "2026-09-26"},
	{Key: "simchat_torah", Date: "2026-10-03"},
	{Key: "hanukkah", Date: "2026-12-05"},
	{Key: "purim", Date: "2027-03-23"},
	{Key: "pesach_start", Date: "2027-04-22"},
	{Key: "pesach_end", Date: "2027-04-28"},
	{Key: "yom_haatzmaut", Date: "2027-05-12"},
	{Key: "shavuot", Date: "2027-06-11"},
}

// Find returns the calendar entry with the given key on date.
func Find(calendar []Holiday, key, date string) (Holiday, bool) {
	for _, h := range calendar {
		if h.Key == key && h.Date == date {
			return h, true
		}
	}
	return Holiday{}, false
}

// Upcoming returns the calendar holidays between today and today+withinDays, both inclusive.
func Upcoming(calendar []Holiday, now time.Time, withinDays int) []Holiday {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, withinDays)
	var upcoming []Holiday
	for _, h := range calendar {
		d := h.Day()
		if !d.Before(today) && !d.After(cutoff) {
			upcoming = append(upcoming, h)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	return upcoming
}

type DecisionType string

const (
	DecisionCancel     DecisionType = "cancel"
	DecisionReschedule DecisionType = "reschedule"
)

type Decision struct {
	EmployerID  types.ID     `json:"employerId" gorm:"primary_key;auto_increment:false"`
	HolidayKey  string       `json:"holidayKey" gorm:"primary_key;type:VARCHAR(64)"`
	HolidayDate string       `json:"holidayDate" gorm:"primary_key;type:VARCHAR(10)"`
	Decision    DecisionType `json:"decision" gorm:"type:VARCHAR(16) NOT NULL"`
}

func (d *Decision) TableName() string {
	return "holiday_decisions"
}

func (d Decision) Holiday() Holiday {
	return Holiday{Key: d.HolidayKey, Date: d.HolidayDate}
}

type DecisionCreation struct {
	EmployerID  types.ID     `json:"employerId" binding:"required"`
	HolidayDate string       `json:"holidayDate" binding:"required,datetime=2006-01-02"`
	Decision    DecisionType `json:"decision" binding:"required,oneof=cancel reschedule"`
}

type DismissalCreation struct {
	HolidayDate string `json:"holidayDate" binding:"required,datetime=2006-01-02"`
}

type Dismissal struct {
	HolidayKey  string    `json:"holidayKey" gorm:"primary_key;type:VARCHAR(64)"`
	HolidayDate string    `json:"holidayDate" gorm:"primary_key;type:VARCHAR(10)"`
	CreateTime  time.Time `json:"createTime"`
}

func (d *Dismissal) TableName() string {
	return "dismissed_holidays"
}

// UpsertDecision replaces the decision of the same employer and holiday occurrence, or appends it.
func UpsertDecision(decisions []Decision, d Decision) []Decision {
	out := make([]Decision, 0, len(decisions)+1)
	replaced := false
	for _, existing := range decisions {
		if existing.EmployerID == d.EmployerID && existing.Holiday() == d.Holiday() {
			out = append(out, d)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, d)
	}
	return out
}

// NextAlert returns the first upcoming, undismissed holiday that still has employers without a decision.
func NextAlert(upcoming []Holiday, dismissed map[Holiday]bool, decisions []Decision, employerIDs []types.ID) *Holiday {
	decided := map[Holiday]map[types.ID]bool{}
	for _, d := range decisions {
		h := d.Holiday()
		if decided[h] == nil {
			decided[h] = map[types.ID]bool{}
		}
		decided[h][d.EmployerID] = true
	}
	for _, h := range upcoming {
		if dismissed[h] {
			continue
		}
		for _, id := range employerIDs {
			if !decided[h][id] {
				alert := h
				return &alert
			}
		}
	}
	return nil
}

func QueryDecisions(db *gorm.DB) ([]Decision, error) {
	decisions := []Decision{}
	if err := db.Order("holiday_date ASC, employer_id ASC").Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

func SaveDecision(db *gorm.DB, d Decision) error {
	if d.EmployerID == 0 || d.HolidayKey == "" || d.HolidayDate == "" {
		return errors.New("employer id, holiday key and date are required")
	}
	return db.Save(&d).Error
}

func QueryDismissed(db *gorm.DB) (map[Holiday]bool, error) {
	var records []Dismissal
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	dismissed := map[Holiday]bool{}
	for _, r := range records {
		dismissed[Holiday{Key: r.HolidayKey, Date: r.HolidayDate}] = true
	}
	return dismissed, nil
}

func SaveDismissal(db *gorm.DB, h Holiday, now time.Time) error {
	return db.Save(&Dismissal{HolidayKey: h.Key, HolidayDate: h.Date, CreateTime: now}).Error
}
