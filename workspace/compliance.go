package workspace

import (
	"context"
	"time"

	"bneibrit/bizerror"
	"bneibrit/document/summary"
	"bneibrit/domain/compliance"
	"bneibrit/domain/pension"
	"bneibrit/domain/worksession"

	"github.com/fundwit/go-commons/types"
)

// DepositStatuses lists one status per employer, pending when nothing is stored.
func (w *Workspace) DepositStatuses() []compliance.DepositStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.depositStatuses()
}

func (w *Workspace) depositStatuses() []compliance.DepositStatus {
	stored := make([]compliance.DepositStatus, 0, len(w.deposits))
	for _, d := range w.deposits {
		stored = append(stored, d)
	}
	return compliance.Resolve(stored, w.employerIDs())
}

func (w *Workspace) MarkAsDeposited(employerID types.ID) (*compliance.DepositStatus, error) {
	w.mu.Lock()
	if _, ok := w.findEmployer(employerID); !ok {
		w.mu.Unlock()
		return nil, bizerror.ErrUnknownEmployer
	}
	status := compliance.Deposited(employerID, w.now())
	w.deposits[employerID] = status
	w.mu.Unlock()

	w.persist("mark deposited", func(ctx context.Context) error {
		return w.store.SaveDepositStatus(ctx, status)
	})
	return &status, nil
}

// ApplyDepositPolicy re-evaluates every status against the deadlines and persists the changed ones.
func (w *Workspace) ApplyDepositPolicy() []compliance.DepositStatus {
	w.mu.Lock()
	starts := make(map[types.ID]time.Time, len(w.employers))
	for _, e := range w.employers {
		starts[e.ID] = e.StartTime()
	}
	changed := w.policy.Apply(w.depositStatuses(), starts, w.now())
	for _, s := range changed {
		w.deposits[s.EmployerID] = s
	}
	w.mu.Unlock()

	for _, s := range changed {
		status := s
		w.persist("apply deposit policy", func(ctx context.Context) error {
			return w.store.SaveDepositStatus(ctx, status)
		})
	}
	return changed
}

func (w *Workspace) PensionBreakdowns() []pension.Breakdown {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]pension.Breakdown, 0, len(w.employers))
	for _, e := range w.employers {
		out = append(out, w.snapshot.Pension.Breakdown(e.ID, e.MonthlySalary))
	}
	return out
}

// QuarterlyEstimates estimates national insurance per quarter of year from all salaries and sessions.
func (w *Workspace) QuarterlyEstimates(year int) []pension.QuarterlyEstimate {
	w.mu.RLock()
	defer w.mu.RUnlock()
	total := 0.0
	for _, e := range w.employers {
		total += e.MonthlySalary
	}
	byQuarter := worksession.EarningsByQuarter(w.completed, year)
	return w.snapshot.Pension.QuarterlyEstimates(total, byQuarter[:], year)
}

// SummaryData collects what the monthly summary needs.
func (w *Workspace) SummaryData() summary.Data {
	employers := w.Employers()

	w.mu.RLock()
	defer w.mu.RUnlock()
	deposits := map[types.ID]compliance.DepositStatus{}
	for _, d := range w.depositStatuses() {
		deposits[d.EmployerID] = d
	}
	completed := append([]worksession.WorkSession{}, w.completed...)
	sortCompleted(completed)
	return summary.Data{
		Employers:             employers,
		CompletedSessions:     completed,
		DepositStatuses:       deposits,
		SickDaysUsed:          w.SickDaysUsed,
		PensionRates:          w.snapshot.Pension,
		SickLeaveDaysPerMonth: w.snapshot.Benefits.SickLeaveDaysPerMonth,
	}
}
