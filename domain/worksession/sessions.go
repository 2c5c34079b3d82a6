package worksession

import (
	"errors"
	"fmt"
	"time"

	"bneibrit/common"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const weeksPerMonth = 52.0 / 12.0

type WorkSession struct {
	ID         types.ID   `json:"id" gorm:"primary_key"`
	EmployerID types.ID   `json:"employerId" gorm:"index"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Earnings   *float64   `json:"earnings,omitempty"`
}

func (s *WorkSession) TableName() string {
	return "work_sessions"
}

func (s *WorkSession) Open() bool {
	return s.EndTime == nil
}

// HourlyRate derives the hourly rate from a monthly salary. Zero hours yields a zero rate.
func HourlyRate(monthlySalary, hoursPerWeek float64) float64 {
	if hoursPerWeek == 0 {
		return 0
	}
	return monthlySalary / (hoursPerWeek * weeksPerMonth)
}

// Earnings is the pay for the elapsed time, rounded to agorot.
func Earnings(start, end time.Time, hourlyRate float64) float64 {
	return common.Round(end.Sub(start).Hours()*hourlyRate, 2)
}

// Close returns a completed copy of an open session. A closed session is returned unchanged with ok=false.
func Close(s WorkSession, end time.Time, hourlyRate float64) (closed WorkSession, ok bool) {
	if !s.Open() {
		return s, false
	}
	earnings := Earnings(s.StartTime, end, hourlyRate)
	s.EndTime = &end
	s.Earnings = &earnings
	return s, true
}

// FormatElapsed renders a duration as HH:MM:SS, hours may exceed 24.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

type Summary struct {
	Count    int     `json:"count"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

// Summarize aggregates the completed sessions of one employer.
func Summarize(sessions []WorkSession, employerID types.ID) Summary {
	var s Summary
	var millis int64
	for _, ws := range sessions {
		if ws.EmployerID != employerID || ws.EndTime == nil {
			continue
		}
		s.Count++
		millis += ws.EndTime.Sub(ws.StartTime).Milliseconds()
		if ws.Earnings != nil {
			s.Earnings += *ws.Earnings
		}
	}
	s.Hours = common.Round(float64(millis)/float64(time.Hour/time.Millisecond), 1)
	s.Earnings = common.Round(s.Earnings, 2)
	return s
}

// EarningsByQuarter sums completed session earnings of the given year per calendar quarter of the end time.
func EarningsByQuarter(sessions []WorkSession, year int) [4]float64 {
	var quarters [4]float64
	for _, ws := range sessions {
		if ws.EndTime == nil || ws.Earnings == nil || ws.EndTime.Year() != year {
			continue
		}
		quarters[(int(ws.EndTime.Month())-1)/3] += *ws.Earnings
	}
	for i := range quarters {
		quarters[i] = common.Round(quarters[i], 2)
	}
	return quarters
}

func QueryActiveSessions(db *gorm.DB) ([]WorkSession, error) {
	sessions := []WorkSession{}
	if err := db.Where("end_time IS NULL").Order("start_time ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func QueryCompletedSessions(db *gorm.DB) ([]WorkSession, error) {
	sessions := []WorkSession{}
	if err := db.Where("end_time IS NOT NULL").Order("end_time DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func InsertSession(db *gorm.DB, s *WorkSession) error {
	if s.ID == 0 {
		return errors.New("session id is required")
	}
	return db.Create(s).Error
}

// EndSession stores the end time and earnings of an open session. Rows already closed are left untouched.
func EndSession(db *gorm.DB, id types.ID, end time.Time, earnings float64) error {
	return db.Model(&WorkSession{}).Where("id = ? AND end_time IS NULL", id).
		Updates(map[string]interface{}{"end_time": end, "earnings": earnings}).Error
}
