package testinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"bneibrit/bizerror"
	"bneibrit/domain/absence"
	"bneibrit/domain/benefits"
	"bneibrit/domain/compliance"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"
	"bneibrit/domain/holiday"
	"bneibrit/domain/worksession"

	"github.com/fundwit/go-commons/types"
)

// MemoryStore keeps the workspace collections in memory. Failures are injected per method name.
type MemoryStore struct {
	mu sync.Mutex

	Employers []employer.Employer
	Contracts map[types.ID]contract.Config
	Sessions  []worksession.WorkSession
	Absences  []absence.Record
	Decisions []holiday.Decision
	Dismissed map[holiday.Holiday]bool
	Deposits  map[types.ID]compliance.DepositStatus
	// LegalRates and Schedule back the rate source; nil keeps the defaults.
	LegalRates map[string]float64
	Schedule   []benefits.ConvalescenceTier

	failures map[string]error
	calls    map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Contracts: map[types.ID]contract.Config{},
		Dismissed: map[holiday.Holiday]bool{},
		Deposits:  map[types.ID]compliance.DepositStatus{},
		failures:  map[string]error{},
		calls:     map[string]int{},
	}
}

// FailOn makes every later call of method return err until cleared with a nil err.
func (s *MemoryStore) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

// Calls counts the invocations of method.
func (s *MemoryStore) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// enter locks the store and records the call; callers unlock.
func (s *MemoryStore) enter(method string) error {
	s.mu.Lock()
	s.calls[method]++
	return s.failures[method]
}

func (s *MemoryStore) QueryEmployers(ctx context.Context) ([]employer.Employer, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryEmployers"); err != nil {
		return nil, err
	}
	return append([]employer.Employer{}, s.Employers...), nil
}

func (s *MemoryStore) CreateEmployer(ctx context.Context, e *employer.Employer) error {
	defer s.mu.Unlock()
	if err := s.enter("CreateEmployer"); err != nil {
		return err
	}
	s.Employers = append(s.Employers, *e)
	return nil
}

func (s *MemoryStore) UpdateEmployer(ctx context.Context, id types.ID, u employer.Update) (*employer.Employer, error) {
	defer s.mu.Unlock()
	if err := s.enter("UpdateEmployer"); err != nil {
		return nil, err
	}
	for i, e := range s.Employers {
		if e.ID == id {
			s.Employers[i] = u.Apply(e)
			updated := s.Employers[i]
			return &updated, nil
		}
	}
	return nil, bizerror.ErrNotFound
}

func (s *MemoryStore) QueryContractConfigs(ctx context.Context) ([]contract.Config, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryContractConfigs"); err != nil {
		return nil, err
	}
	configs := []contract.Config{}
	for _, c := range s.Contracts {
		configs = append(configs, c)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].EmployerID < configs[j].EmployerID })
	return configs, nil
}

func (s *MemoryStore) UpsertContractConfig(ctx context.Context, c contract.Config) (*contract.Config, error) {
	defer s.mu.Unlock()
	if err := s.enter("UpsertContractConfig"); err != nil {
		return nil, err
	}
	s.Contracts[c.EmployerID] = c
	return &c, nil
}

func (s *MemoryStore) QueryActiveSessions(ctx context.Context) ([]worksession.WorkSession, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryActiveSessions"); err != nil {
		return nil, err
	}
	active := []worksession.WorkSession{}
	for _, ws := range s.Sessions {
		if ws.EndTime == nil {
			active = append(active, ws)
		}
	}
	return active, nil
}

func (s *MemoryStore) QueryCompletedSessions(ctx context.Context) ([]worksession.WorkSession, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryCompletedSessions"); err != nil {
		return nil, err
	}
	completed := []worksession.WorkSession{}
	for _, ws := range s.Sessions {
		if ws.EndTime != nil {
			completed = append(completed, ws)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool { return completed[i].EndTime.After(*completed[j].EndTime) })
	return completed, nil
}

func (s *MemoryStore) InsertSession(ctx context.Context, ws *worksession.WorkSession) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertSession"); err != nil {
		return err
	}
	s.Sessions = append(s.Sessions, *ws)
	return nil
}

func (s *MemoryStore) EndSession(ctx context.Context, id types.ID, end time.Time, earnings float64) error {
	defer s.mu.Unlock()
	if err := s.enter("EndSession"); err != nil {
		return err
	}
	for i, ws := range s.Sessions {
		if ws.ID == id && ws.EndTime == nil {
			s.Sessions[i].EndTime = &end
			s.Sessions[i].Earnings = &earnings
		}
	}
	return nil
}

func (s *MemoryStore) QueryAbsences(ctx context.Context) ([]absence.Record, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryAbsences"); err != nil {
		return nil, err
	}
	return append([]absence.Record{}, s.Absences...), nil
}

func (s *MemoryStore) InsertAbsence(ctx context.Context, r *absence.Record) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertAbsence"); err != nil {
		return err
	}
	s.Absences = append([]absence.Record{*r}, s.Absences...)
	return nil
}

func (s *MemoryStore) QueryHolidayDecisions(ctx context.Context) ([]holiday.Decision, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryHolidayDecisions"); err != nil {
		return nil, err
	}
	return append([]holiday.Decision{}, s.Decisions...), nil
}

func (s *MemoryStore) SaveHolidayDecision(ctx context.Context, d holiday.Decision) error {
	defer s.mu.Unlock()
	if err := s.enter("SaveHolidayDecision"); err != nil {
		return err
	}
	s.Decisions = holiday.UpsertDecision(s.Decisions, d)
	return nil
}

func (s *MemoryStore) QueryDismissedHolidays(ctx context.Context) (map[holiday.Holiday]bool, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryDismissedHolidays"); err != nil {
		return nil, err
	}
	dismissed := map[holiday.Holiday]bool{}
	for k, v := range s.Dismissed {
		dismissed[k] = v
	}
	return dismissed, nil
}

func (s *MemoryStore) DismissHoliday(ctx context.Context, h holiday.Holiday, now time.Time) error {
	defer s.mu.Unlock()
	if err := s.enter("DismissHoliday"); err != nil {
		return err
	}
	s.Dismissed[h] = true
	return nil
}

func (s *MemoryStore) QueryDepositStatuses(ctx context.Context) ([]compliance.DepositStatus, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryDepositStatuses"); err != nil {
		return nil, err
	}
	statuses := []compliance.DepositStatus{}
	for _, d := range s.Deposits {
		statuses = append(statuses, d)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].EmployerID < statuses[j].EmployerID })
	return statuses, nil
}

func (s *MemoryStore) SaveDepositStatus(ctx context.Context, d compliance.DepositStatus) error {
	defer s.mu.Unlock()
	if err := s.enter("SaveDepositStatus"); err != nil {
		return err
	}
	s.Deposits[d.EmployerID] = d
	return nil
}

func (s *MemoryStore) ActiveLegalRates(ctx context.Context, day time.Time) (map[string]float64, error) {
	defer s.mu.Unlock()
	if err := s.enter("ActiveLegalRates"); err != nil {
		return nil, err
	}
	values := map[string]float64{}
	for k, v := range s.LegalRates {
		values[k] = v
	}
	return values, nil
}

func (s *MemoryStore) ConvalescenceSchedule(ctx context.Context) ([]benefits.ConvalescenceTier, error) {
	defer s.mu.Unlock()
	if err := s.enter("ConvalescenceSchedule"); err != nil {
		return nil, err
	}
	if len(s.Schedule) == 0 {
		return benefits.DefaultSchedule(), nil
	}
	return append([]benefits.ConvalescenceTier{}, s.Schedule...), nil
}
