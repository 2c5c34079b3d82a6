package workspace

import (
	"context"

	"bneibrit/bizerror"
	"bneibrit/common"
	"bneibrit/domain/absence"
	"bneibrit/domain/holiday"

	"github.com/fundwit/go-commons/types"
)

func (w *Workspace) ReportAbsence(report absence.Report) (*absence.Record, error) {
	if err := absence.CheckCertificate(report.Type, report.MedicalCertificateFileName); err != nil {
		return nil, &common.ErrBadParam{Cause: err}
	}

	w.mu.Lock()
	if _, ok := w.findEmployer(report.EmployerID); !ok {
		w.mu.Unlock()
		return nil, bizerror.ErrUnknownEmployer
	}
	r := absence.Record{
		ID:                         w.ids.Next(),
		EmployerID:                 report.EmployerID,
		Type:                       report.Type,
		Date:                       report.Date,
		MedicalCertificateFileName: report.MedicalCertificateFileName,
		CreateTime:                 w.now(),
	}
	w.absences = append([]absence.Record{r}, w.absences...)
	w.mu.Unlock()

	w.persist("report absence", func(ctx context.Context) error {
		return w.store.InsertAbsence(ctx, &r)
	})
	return &r, nil
}

func (w *Workspace) Absences() []absence.Record {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]absence.Record{}, w.absences...)
}

func (w *Workspace) SickDaysUsed(employerID types.ID) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return absence.SickDaysUsed(w.absences, employerID)
}

// RecordHolidayDecision replaces any earlier decision of the employer for the holiday on date.
func (w *Workspace) RecordHolidayDecision(employerID types.ID, key, date string, decision holiday.DecisionType) (*holiday.Decision, error) {
	if _, ok := holiday.Find(holiday.Calendar, key, date); !ok {
		return nil, bizerror.ErrUnknownHoliday
	}
	d := holiday.Decision{EmployerID: employerID, HolidayKey: key, HolidayDate: date, Decision: decision}

	w.mu.Lock()
	if _, ok := w.findEmployer(employerID); !ok {
		w.mu.Unlock()
		return nil, bizerror.ErrUnknownEmployer
	}
	w.decisions = holiday.UpsertDecision(w.decisions, d)
	w.mu.Unlock()

	w.persist("record holiday decision", func(ctx context.Context) error {
		return w.store.SaveHolidayDecision(ctx, d)
	})
	return &d, nil
}

func (w *Workspace) HolidayDecisions() []holiday.Decision {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]holiday.Decision{}, w.decisions...)
}

func (w *Workspace) DismissHoliday(key, date string) error {
	h, ok := holiday.Find(holiday.Calendar, key, date)
	if !ok {
		return bizerror.ErrUnknownHoliday
	}
	now := w.now()
	w.mu.Lock()
	w.dismissed[h] = true
	w.mu.Unlock()

	w.persist("dismiss holiday", func(ctx context.Context) error {
		return w.store.DismissHoliday(ctx, h, now)
	})
	return nil
}

// NextAlert is the first holiday within withinDays that still needs decisions.
func (w *Workspace) NextAlert(withinDays int) *holiday.Holiday {
	w.mu.RLock()
	defer w.mu.RUnlock()
	upcoming := holiday.Upcoming(holiday.Calendar, w.now(), withinDays)
	return holiday.NextAlert(upcoming, w.dismissed, w.decisions, w.employerIDs())
}
