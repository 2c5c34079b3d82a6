package employer

import (
	"errors"
	"fmt"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const DateLayout = "2006-01-02"

type Employer struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Name          string  `json:"name" gorm:"type:VARCHAR(255) NOT NULL"`
	MonthlySalary float64 `json:"monthlySalary"`
	HoursPerWeek  float64 `json:"hoursPerWeek"`
	// calendar date, YYYY-MM-DD
	StartDate string `json:"startDate" gorm:"type:VARCHAR(10) NOT NULL"`

	CreateTime time.Time `json:"createTime"`
}

func (e *Employer) TableName() string {
	return "employers"
}

// StartTime parses StartDate as midnight UTC. A malformed date yields the zero time.
func (e *Employer) StartTime() time.Time {
	t, _ := time.Parse(DateLayout, e.StartDate)
	return t
}

type Creation struct {
	Name          string  `json:"name" binding:"required,lte=255"`
	MonthlySalary float64 `json:"monthlySalary" binding:"required,gt=0"`
	HoursPerWeek  float64 `json:"hoursPerWeek" binding:"gte=0,lte=168"`
	StartDate     string  `json:"startDate" binding:"required,datetime=2006-01-02"`
}

// ValidateStartDate rejects dates that do not parse or lie after today.
func ValidateStartDate(date string, now time.Time) error {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid start date '%s'", date)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return fmt.Errorf("start date '%s' is in the future", date)
	}
	return nil
}

// Field names an employer property that an update may change.
type Field int

const (
	FieldName Field = iota
	FieldMonthlySalary
	FieldHoursPerWeek
	FieldStartDate
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldMonthlySalary:
		return "monthlySalary"
	case FieldHoursPerWeek:
		return "hoursPerWeek"
	case FieldStartDate:
		return "startDate"
	}
	return "unknown"
}

// Update carries the optional properties of a partial employer update.
type Update struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,lte=255"`
	MonthlySalary *float64 `json:"monthlySalary" binding:"omitempty,gt=0"`
	HoursPerWeek  *float64 `json:"hoursPerWeek" binding:"omitempty,gte=0,lte=168"`
	StartDate     *string  `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
}

// Fields lists the properties present in the update, in declaration order.
func (u Update) Fields() []Field {
	var fields []Field
	if u.Name != nil {
		fields = append(fields, FieldName)
	}
	if u.MonthlySalary != nil {
		fields = append(fields, FieldMonthlySalary)
	}
	if u.HoursPerWeek != nil {
		fields = append(fields, FieldHoursPerWeek)
	}
	if u.StartDate != nil {
		fields = append(fields, FieldStartDate)
	}
	return fields
}

// Apply returns a copy of e with the update's present properties set.
func (u Update) Apply(e Employer) Employer {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.MonthlySalary != nil {
		e.MonthlySalary = *u.MonthlySalary
	}
	if u.HoursPerWeek != nil {
		e.HoursPerWeek = *u.HoursPerWeek
	}
	if u.StartDate != nil {
		e.StartDate = *u.StartDate
	}
	return e
}

func (u Update) columns() map[string]interface{} {
	c := map[string]interface{}{}
	for _, f := range u.Fields() {
		switch f {
		case FieldName:
			c["name"] = *u.Name
		case FieldMonthlySalary:
			c["monthly_salary"] = *u.MonthlySalary
		case FieldHoursPerWeek:
			c["hours_per_week"] = *u.HoursPerWeek
		case FieldStartDate:
			c["start_date"] = *u.StartDate
		}
	}
	return c
}

func QueryEmployers(db *gorm.DB) ([]Employer, error) {
	employers := []Employer{}
	if err := db.Order("create_time ASC, id ASC").Find(&employers).Error; err != nil {
		return nil, err
	}
	return employers, nil
}

func FindEmployer(db *gorm.DB, id types.ID) (*Employer, error) {
	var e Employer
	if err := db.Where(&Employer{ID: id}).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func CreateEmployer(db *gorm.DB, e *Employer) error {
	if e.ID == 0 {
		return errors.New("employer id is required")
	}
	return db.Create(e).Error
}

// UpdateEmployer applies u and returns the stored record together with the record before the change.
func UpdateEmployer(db *gorm.DB, id types.ID, u Update) (updated *Employer, before *Employer, err error) {
	before, err = FindEmployer(db, id)
	if err != nil {
		return nil, nil, err
	}
	columns := u.columns()
	if len(columns) > 0 {
		if err := db.Model(&Employer{}).Where("id = ?", id).Updates(columns).Error; err != nil {
			return nil, nil, err
		}
	}
	updated, err = FindEmployer(db, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, before, nil
}
