package servehttp

import (
	"context"

	"bneibrit/document/summary"
	"bneibrit/domain/absence"
	"bneibrit/domain/benefits"
	"bneibrit/domain/compliance"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"
	"bneibrit/domain/holiday"
	"bneibrit/domain/pension"
	"bneibrit/domain/rates"
	"bneibrit/domain/worksession"

	"github.com/fundwit/go-commons/types"
)

// Workspace is the state the REST handlers read and mutate.
type Workspace interface {
	Employers() []benefits.EmployerWithBenefits
	Employer(id types.ID) (*benefits.EmployerWithBenefits, error)
	TotalBalance() float64
	AddEmployer(ctx context.Context, c employer.Creation) (*employer.Employer, error)
	UpdateEmployer(id types.ID, u employer.Update) (*employer.Employer, error)
	ContractConfig(employerID types.ID) (contract.Config, error)
	UpdateContractConfig(c contract.Config) error

	StartSession(employerID types.ID) (*worksession.WorkSession, error)
	EndSession(employerID types.ID) (*worksession.WorkSession, bool)
	ActiveSessions() []worksession.WorkSession
	CompletedSessions() []worksession.WorkSession

	ReportAbsence(report absence.Report) (*absence.Record, error)
	Absences() []absence.Record

	RecordHolidayDecision(employerID types.ID, key, date string, decision holiday.DecisionType) (*holiday.Decision, error)
	DismissHoliday(key, date string) error
	NextAlert(withinDays int) *holiday.Holiday

	DepositStatuses() []compliance.DepositStatus
	MarkAsDeposited(employerID types.ID) (*compliance.DepositStatus, error)
	PensionBreakdowns() []pension.Breakdown
	QuarterlyEstimates(year int) []pension.QuarterlyEstimate
	Rates() rates.Snapshot
	SummaryData() summary.Data
}
