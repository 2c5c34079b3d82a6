package absence

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

type Type string

const (
	TypeSickLeave Type = "sick_leave"
	TypePersonal  Type = "personal"
	TypeVacation  Type = "vacation"
)

var ErrCertificateNotAllowed = errors.New("medical certificate is only accepted for sick leave")

type Record struct {
	ID         types.ID `json:"id" gorm:"primary_key"`
	EmployerID types.ID `json:"employerId" gorm:"index"`
	Type       Type     `json:"type" gorm:"type:VARCHAR(32) NOT NULL"`
	// calendar date, YYYY-MM-DD
	Date                       string    `json:"date" gorm:"type:VARCHAR(10) NOT NULL"`
	MedicalCertificateFileName string    `json:"medicalCertificateFileName,omitempty"`
	CreateTime                 time.Time `json:"createTime"`
}

func (r *Record) TableName() string {
	return "absences"
}

type Report struct {
	EmployerID                 types.ID `json:"employerId" binding:"required"`
	Type                       Type     `json:"type" binding:"required,oneof=sick_leave personal vacation"`
	Date                       string   `json:"date" binding:"required,datetime=2006-01-02"`
	MedicalCertificateFileName string   `json:"medicalCertificateFileName"`
}

// SickDaysUsed counts the sick leave records of one employer.
func SickDaysUsed(records []Record, employerID types.ID) int {
	n := 0
	for _, r := range records {
		if r.EmployerID == employerID && r.Type == TypeSickLeave {
			n++
		}
	}
	return n
}

// CheckCertificate rejects a medical certificate attached to anything but sick leave.
func CheckCertificate(t Type, fileName string) error {
	if fileName != "" && t != TypeSickLeave {
		return ErrCertificateNotAllowed
	}
	return nil
}

// CertificateObjectKey is the storage key of an uploaded medical certificate.
func CertificateObjectKey(employerID types.ID, fileName string) (string, error) {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("invalid certificate file name '%s'", fileName)
	}
	return "certificates/" + employerID.String() + "/" + base, nil
}

func QueryAbsences(db *gorm.DB) ([]Record, error) {
	records := []Record{}
	if err := db.Order("date DESC, create_time DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func InsertAbsence(db *gorm.DB, r *Record) error {
	if r.ID == 0 {
		return errors.New("absence id is required")
	}
	if err := CheckCertificate(r.Type, r.MedicalCertificateFileName); err != nil {
		return err
	}
	return db.Create(r).Error
}
