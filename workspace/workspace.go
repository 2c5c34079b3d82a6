package workspace

import (
	"context"
	"sort"
	"sync"
	"time"

	"bneibrit/common"
	"bneibrit/domain/absence"
	"bneibrit/domain/compliance"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"
	"bneibrit/domain/holiday"
	"bneibrit/domain/rates"
	"bneibrit/domain/worksession"
	"bneibrit/idgen"

	"github.com/fundwit/go-commons/types"
	"golang.org/x/time/rate"
)

const persistTimeout = 30 * time.Second

// Result is the outcome of one background persistence call.
type Result struct {
	Op  string
	Err error
}

type Options struct {
	Policy compliance.Policy
	// ReloadEvery spaces reloads triggered by failed persistence calls.
	ReloadEvery time.Duration
	Now         func() time.Time
	// OnResult observes every result after it has been reconciled.
	OnResult func(Result)
}

// Workspace holds the loaded collections. Mutations apply locally first, persist in
// the background and reload everything when the store rejects them.
type Workspace struct {
	store    Store
	provider *rates.Provider
	ids      *idgen.Generator
	policy   compliance.Policy
	now      func() time.Time
	limiter  *rate.Limiter
	onResult func(Result)

	inflight sync.WaitGroup
	// tail is closed when the most recently queued persistence call has been reconciled.
	tailMu sync.Mutex
	tail   chan struct{}

	mu        sync.RWMutex
	snapshot  rates.Snapshot
	employers []employer.Employer
	contracts map[types.ID]contract.Config
	active    []worksession.WorkSession
	completed []worksession.WorkSession
	absences  []absence.Record
	decisions []holiday.Decision
	dismissed map[holiday.Holiday]bool
	deposits  map[types.ID]compliance.DepositStatus
}

func New(store Store, provider *rates.Provider, ids *idgen.Generator, opts Options) *Workspace {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReloadEvery <= 0 {
		opts.ReloadEvery = time.Second
	}
	if opts.Policy.DueDay == 0 {
		opts.Policy = compliance.DefaultPolicy()
	}
	return &Workspace{
		store:     store,
		provider:  provider,
		ids:       ids,
		policy:    opts.Policy,
		now:       opts.Now,
		limiter:   rate.NewLimiter(rate.Every(opts.ReloadEvery), 1),
		onResult:  opts.OnResult,
		snapshot:  rates.DefaultSnapshot(),
		contracts: map[types.ID]contract.Config{},
		dismissed: map[holiday.Holiday]bool{},
		deposits:  map[types.ID]compliance.DepositStatus{},
	}
}

// Load fetches every collection and the rate snapshot. State is left untouched when any fetch fails.
func (w *Workspace) Load(ctx context.Context) error {
	snapshot := w.provider.Resolve(ctx, w.now())

	employers, err := w.store.QueryEmployers(ctx)
	if err != nil {
		return err
	}
	configs, err := w.store.QueryContractConfigs(ctx)
	if err != nil {
		return err
	}
	active, err := w.store.QueryActiveSessions(ctx)
	if err != nil {
		return err
	}
	completed, err := w.store.QueryCompletedSessions(ctx)
	if err != nil {
		return err
	}
	absences, err := w.store.QueryAbsences(ctx)
	if err != nil {
		return err
	}
	decisions, err := w.store.QueryHolidayDecisions(ctx)
	if err != nil {
		return err
	}
	dismissed, err := w.store.QueryDismissedHolidays(ctx)
	if err != nil {
		return err
	}
	deposits, err := w.store.QueryDepositStatuses(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshot = snapshot
	w.employers = employers
	w.contracts = map[types.ID]contract.Config{}
	for _, c := range configs {
		w.contracts[c.EmployerID] = c
	}
	w.active = active
	w.completed = completed
	w.absences = absences
	w.decisions = decisions
	w.dismissed = dismissed
	if w.dismissed == nil {
		w.dismissed = map[holiday.Holiday]bool{}
	}
	w.deposits = map[types.ID]compliance.DepositStatus{}
	for _, d := range deposits {
		w.deposits[d.EmployerID] = d
	}
	return nil
}

// persist runs call in the background and reconciles its result. Calls reach the
// store in the order they were queued.
func (w *Workspace) persist(op string, call func(ctx context.Context) error) {
	w.inflight.Add(1)
	w.tailMu.Lock()
	prev := w.tail
	done := make(chan struct{})
	w.tail = done
	w.tailMu.Unlock()

	go func() {
		defer w.inflight.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		w.reconcile(ctx, Result{Op: op, Err: call(ctx)})
	}()
}

func (w *Workspace) reconcile(ctx context.Context, r Result) {
	if r.Err != nil {
		common.Log.WithField("op", r.Op).WithError(r.Err).Error("persist failed, reloading workspace")
		if err := w.limiter.Wait(ctx); err != nil {
			common.Log.WithField("op", r.Op).WithError(err).Warn("reload skipped")
		} else if err := w.Load(ctx); err != nil {
			common.Log.WithField("op", r.Op).WithError(err).Error("reload failed")
		}
	}
	if w.onResult != nil {
		w.onResult(r)
	}
}

// Wait blocks until every in-flight persistence call has been reconciled.
func (w *Workspace) Wait() {
	w.inflight.Wait()
}

func (w *Workspace) Rates() rates.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

func (w *Workspace) findEmployer(id types.ID) (employer.Employer, bool) {
	for _, e := range w.employers {
		if e.ID == id {
			return e, true
		}
	}
	return employer.Employer{}, false
}

func (w *Workspace) employerIDs() []types.ID {
	ids := make([]types.ID, 0, len(w.employers))
	for _, e := range w.employers {
		ids = append(ids, e.ID)
	}
	return ids
}

func sortCompleted(sessions []worksession.WorkSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].EndTime.After(*sessions[j].EndTime)
	})
}
