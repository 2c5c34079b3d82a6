package rates

import (
	"time"

	"bneibrit/domain/benefits"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const (
	KeyConvalescencePayPerDay = "convalescence_pay_per_day"
	KeySickLeaveDaysPerMonth  = "sick_leave_days_per_month"
	KeyMaxSickDays            = "max_sick_days"
	KeyPensionEmployerRate    = "pension_employer_rate"
	KeyPensionEmployeeRate    = "pension_employee_rate"
	KeyPensionSeveranceRate   = "pension_severance_rate"
	KeyNIReducedRateThreshold = "ni_reduced_rate_threshold"
	KeyNIReducedRate          = "ni_reduced_rate"
	KeyNIFullRate             = "ni_full_rate"
)

// LegalRate is one statutory value with its validity range. A nil EffectiveTo is open-ended.
type LegalRate struct {
	ID            types.ID   `json:"id" gorm:"primary_key"`
	RateKey       string     `json:"rateKey" gorm:"type:VARCHAR(64) NOT NULL;index"`
	RateValue     float64    `json:"rateValue"`
	Description   string     `json:"description"`
	EffectiveFrom time.Time  `json:"effectiveFrom" sql:"type:DATE NOT NULL"`
	EffectiveTo   *time.Time `json:"effectiveTo" sql:"type:DATE"`
}

func (r *LegalRate) TableName() string {
	return "legal_rates"
}

func (r *LegalRate) ActiveOn(day time.Time) bool {
	return !r.EffectiveFrom.After(day) && (r.EffectiveTo == nil || !r.EffectiveTo.Before(day))
}

type ConvalescenceTierRecord struct {
	ID          types.ID `gorm:"primary_key"`
	MinYears    int      `gorm:"NOT NULL"`
	MaxYears    *int
	DaysPerYear int `gorm:"NOT NULL"`
}

func (r *ConvalescenceTierRecord) TableName() string {
	return "convalescence_days_schedule"
}

// QueryActiveLegalRates returns rate values in effect on day, keyed by rate key.
// When several rows of one key are active, the latest EffectiveFrom wins.
func QueryActiveLegalRates(db *gorm.DB, day time.Time) (map[string]float64, error) {
	var rows []LegalRate
	if err := db.Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", day, day).
		Order("effective_from ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	values := map[string]float64{}
	for _, row := range rows {
		values[row.RateKey] = row.RateValue
	}
	return values, nil
}

func QueryConvalescenceSchedule(db *gorm.DB) ([]benefits.ConvalescenceTier, error) {
	var rows []ConvalescenceTierRecord
	if err := db.Order("min_years ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tiers := make([]benefits.ConvalescenceTier, 0, len(rows))
	for _, row := range rows {
		tiers = append(tiers, benefits.ConvalescenceTier{MinYears: row.MinYears, MaxYears: row.MaxYears, DaysPerYear: row.DaysPerYear})
	}
	return tiers, nil
}
