package workspace

import (
	"context"
	"time"

	"bneibrit/domain/absence"
	"bneibrit/domain/compliance"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"
	"bneibrit/domain/holiday"
	"bneibrit/domain/worksession"

	"github.com/fundwit/go-commons/types"
)

// Store persists the workspace collections. Every call may fail.
type Store interface {
	QueryEmployers(ctx context.Context) ([]employer.Employer, error)
	CreateEmployer(ctx context.Context, e *employer.Employer) error
	UpdateEmployer(ctx context.Context, id types.ID, u employer.Update) (*employer.Employer, error)

	QueryContractConfigs(ctx context.Context) ([]contract.Config, error)
	UpsertContractConfig(ctx context.Context, c contract.Config) (*contract.Config, error)

	QueryActiveSessions(ctx context.Context) ([]worksession.WorkSession, error)
	QueryCompletedSessions(ctx context.Context) ([]worksession.WorkSession, error)
	InsertSession(ctx context.Context, s *worksession.WorkSession) error
	EndSession(ctx context.Context, id types.ID, end time.Time, earnings float64) error

	QueryAbsences(ctx context.Context) ([]absence.Record, error)
	InsertAbsence(ctx context.Context, r *absence.Record) error

	QueryHolidayDecisions(ctx context.Context) ([]holiday.Decision, error)
	SaveHolidayDecision(ctx context.Context, d holiday.Decision) error
	QueryDismissedHolidays(ctx context.Context) (map[holiday.Holiday]bool, error)
	DismissHoliday(ctx context.Context, h holiday.Holiday, now time.Time) error

	QueryDepositStatuses(ctx context.Context) ([]compliance.DepositStatus, error)
	SaveDepositStatus(ctx context.Context, s compliance.DepositStatus) error
}
