package workspace

import (
	"context"
	"fmt"

	"bneibrit/bizerror"
	"bneibrit/domain/worksession"

	"github.com/fundwit/go-commons/types"
)

// StartSession opens a session. A second start for the same employer is rejected and changes nothing.
func (w *Workspace) StartSession(employerID types.ID) (*worksession.WorkSession, error) {
	w.mu.Lock()
	if _, ok := w.findEmployer(employerID); !ok {
		w.mu.Unlock()
		return nil, bizerror.ErrUnknownEmployer
	}
	for _, s := range w.active {
		if s.EmployerID == employerID {
			w.mu.Unlock()
			return nil, fmt.Errorf("employer %s: %w", employerID, bizerror.ErrSessionAlreadyOpen)
		}
	}
	s := worksession.WorkSession{ID: w.ids.Next(), EmployerID: employerID, StartTime: w.now()}
	w.active = append(w.active, s)
	w.mu.Unlock()

	w.persist("start session", func(ctx context.Context) error {
		return w.store.InsertSession(ctx, &s)
	})
	return &s, nil
}

// EndSession closes the open session of the employer. It returns false when nothing was open.
func (w *Workspace) EndSession(employerID types.ID) (*worksession.WorkSession, bool) {
	w.mu.Lock()
	idx := -1
	for i, s := range w.active {
		if s.EmployerID == employerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		w.mu.Unlock()
		return nil, false
	}
	hourlyRate := 0.0
	if e, ok := w.findEmployer(employerID); ok {
		hourlyRate = worksession.HourlyRate(e.MonthlySalary, e.HoursPerWeek)
	}
	closed, _ := worksession.Close(w.active[idx], w.now(), hourlyRate)
	w.active = append(w.active[:idx:idx], w.active[idx+1:]...)
	w.completed = append([]worksession.WorkSession{closed}, w.completed...)
	w.mu.Unlock()

	w.persist("end session", func(ctx context.Context) error {
		return w.store.EndSession(ctx, closed.ID, *closed.EndTime, *closed.Earnings)
	})
	return &closed, true
}

func (w *Workspace) ActiveSession(employerID types.ID) *worksession.WorkSession {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, s := range w.active {
		if s.EmployerID == employerID {
			found := s
			return &found
		}
	}
	return nil
}

func (w *Workspace) ActiveSessions() []worksession.WorkSession {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]worksession.WorkSession{}, w.active...)
}

// CompletedSessions are ordered newest end first.
func (w *Workspace) CompletedSessions() []worksession.WorkSession {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := append([]worksession.WorkSession{}, w.completed...)
	sortCompleted(out)
	return out
}

// LastSession is the most recently completed session of the employer.
func (w *Workspace) LastSession(employerID types.ID) *worksession.WorkSession {
	for _, s := range w.CompletedSessions() {
		if s.EmployerID == employerID {
			last := s
			return &last
		}
	}
	return nil
}
