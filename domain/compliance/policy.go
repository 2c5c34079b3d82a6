package compliance

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

const (
	DefaultDueDay       = 15
	DefaultReminderDays = 5
)

// Policy decides deposit statuses from deadlines. Wages of a month are due on DueDay of the following month.
type Policy struct {
	DueDay       int
	ReminderDays int
}

func DefaultPolicy() Policy {
	return Policy{DueDay: DefaultDueDay, ReminderDays: DefaultReminderDays}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (p Policy) deadline(year int, month time.Month) time.Time {
	return time.Date(year, month, p.DueDay, 0, 0, 0, 0, time.UTC)
}

// lastDeadline is the most recent deadline strictly before today.
func (p Policy) lastDeadline(today time.Time) time.Time {
	d := p.deadline(today.Year(), today.Month())
	if d.Before(today) {
		return d
	}
	return d.AddDate(0, -1, 0)
}

// applies reports whether the employment produced wages in the month the deadline covers.
func applies(deadline, employmentStart time.Time) bool {
	firstOfMonth := time.Date(deadline.Year(), deadline.Month(), 1, 0, 0, 0, 0, time.UTC)
	return employmentStart.Before(firstOfMonth)
}

// Evaluate returns the status for an employer given the last deposit day (nil when never deposited).
func (p Policy) Evaluate(lastDeposit *time.Time, employmentStart time.Time, now time.Time) Status {
	today := day(now)
	last := p.lastDeadline(today)
	previous := last.AddDate(0, -1, 0)
	next := last.AddDate(0, 1, 0)

	depositedAfter := func(t time.Time) bool {
		return lastDeposit != nil && day(*lastDeposit).After(t)
	}

	if applies(last, employmentStart) && !depositedAfter(previous) {
		return StatusOverdue
	}
	if depositedAfter(last) || !applies(next, employmentStart) {
		return StatusCompliant
	}
	if next.Sub(today) <= time.Duration(p.ReminderDays)*24*time.Hour {
		return StatusPending
	}
	return StatusCompliant
}

// Apply evaluates the policy for every status and returns those that changed.
func (p Policy) Apply(statuses []DepositStatus, employmentStarts map[types.ID]time.Time, now time.Time) []DepositStatus {
	var changed []DepositStatus
	for _, s := range statuses {
		start, ok := employmentStarts[s.EmployerID]
		if !ok {
			continue
		}
		next := p.Evaluate(s.LastDeposit(), start, now)
		if next != s.Status {
			s.Status = next
			s.UpdateTime = now
			changed = append(changed, s)
		}
	}
	return changed
}
