package benefits

import (
	"math"
	"time"

	"bneibrit/common"
	"bneibrit/domain/employer"
)

const (
	DaysPerYear  = 365.25
	DaysPerMonth = 30.44

	// FallbackConvalescenceDays applies when no tier covers the seniority.
	FallbackConvalescenceDays = 5
)

// ConvalescenceTier grants DaysPerYear for seniority in [MinYears, MaxYears].
// A nil MaxYears leaves the tier open-ended.
type ConvalescenceTier struct {
	MinYears    int  `json:"minYears"`
	MaxYears    *int `json:"maxYears"`
	DaysPerYear int  `json:"daysPerYear"`
}

func (t ConvalescenceTier) Covers(years int) bool {
	return years >= t.MinYears && (t.MaxYears == nil || years <= *t.MaxYears)
}

// Rates is the statutory rate snapshot a calculation runs against.
type Rates struct {
	ConvalescencePayPerDay float64             `json:"convalescencePayPerDay"`
	SickLeaveDaysPerMonth  float64             `json:"sickLeaveDaysPerMonth"`
	MaxSickDays            float64             `json:"maxSickDays"`
	ConvalescenceSchedule  []ConvalescenceTier `json:"convalescenceSchedule"`
}

func intPtr(v int) *int {
	return &v
}

// DefaultSchedule is the statutory convalescence schedule (2024).
func DefaultSchedule() []ConvalescenceTier {
	return []ConvalescenceTier{
		{MinYears: 1, MaxYears: intPtr(1), DaysPerYear: 5},
		{MinYears: 2, MaxYears: intPtr(3), DaysPerYear: 6},
		{MinYears: 4, MaxYears: intPtr(10), DaysPerYear: 7},
		{MinYears: 11, MaxYears: nil, DaysPerYear: 8},
	}
}

func DefaultRates() Rates {
	return Rates{
		ConvalescencePayPerDay: 418,
		SickLeaveDaysPerMonth:  1.5,
		MaxSickDays:            90,
		ConvalescenceSchedule:  DefaultSchedule(),
	}
}

type SocialBenefits struct {
	ConvalescencePayPerMonth int64   `json:"convalescencePayPerMonth"`
	ConvalescenceDaysPerYear int     `json:"convalescenceDaysPerYear"`
	SickLeaveAccumulated     float64 `json:"sickLeaveAccumulated"`
	YearsEmployed            float64 `json:"yearsEmployed"`
}

type EmployerWithBenefits struct {
	employer.Employer
	Benefits     SocialBenefits `json:"benefits"`
	TotalMonthly float64        `json:"totalMonthly"`
}

var NowFunc = time.Now

// Calculate computes benefits against the wall clock. Nil rates fall back to the defaults.
func Calculate(e employer.Employer, rates *Rates) SocialBenefits {
	r := DefaultRates()
	if rates != nil {
		r = *rates
	}
	return CalculateBenefits(e, r, NowFunc())
}

// CalculateBenefits is pure in (e, rates, now).
func CalculateBenefits(e employer.Employer, rates Rates, now time.Time) SocialBenefits {
	elapsedDays := now.Sub(e.StartTime()).Hours() / 24
	yearsEmployed := elapsedDays / DaysPerYear
	monthsEmployed := elapsedDays / DaysPerMonth

	days := ConvalescenceDays(yearsEmployed, rates.ConvalescenceSchedule)

	// a start date in the future accrues nothing
	sick := 0.0
	if monthsEmployed > 0 {
		sick = math.Min(common.FloorTenth(monthsEmployed*rates.SickLeaveDaysPerMonth), rates.MaxSickDays)
	}

	return SocialBenefits{
		ConvalescencePayPerMonth: common.RoundWhole(float64(days) * rates.ConvalescencePayPerDay / 12),
		ConvalescenceDaysPerYear: days,
		SickLeaveAccumulated:     sick,
		YearsEmployed:            common.Round(yearsEmployed, 1),
	}
}

// ConvalescenceDays looks the completed years up in schedule, which must be sorted by MinYears.
func ConvalescenceDays(yearsEmployed float64, schedule []ConvalescenceTier) int {
	if yearsEmployed < 1 {
		return 0
	}
	years := int(math.Floor(yearsEmployed))
	for _, tier := range schedule {
		if tier.Covers(years) {
			return tier.DaysPerYear
		}
	}
	return FallbackConvalescenceDays
}

func WithBenefits(e employer.Employer, rates Rates, now time.Time) EmployerWithBenefits {
	b := CalculateBenefits(e, rates, now)
	return EmployerWithBenefits{
		Employer:     e,
		Benefits:     b,
		TotalMonthly: e.MonthlySalary + float64(b.ConvalescencePayPerMonth),
	}
}

func TotalBalance(employers []EmployerWithBenefits) float64 {
	total := 0.0
	for _, e := range employers {
		total += e.TotalMonthly
	}
	return total
}
