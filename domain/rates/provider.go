package rates

import (
	"context"
	"time"

	"bneibrit/common"
	"bneibrit/domain/benefits"
	"bneibrit/domain/pension"

	"github.com/patrickmn/go-cache"
)

type Source interface {
	ActiveLegalRates(ctx context.Context, day time.Time) (map[string]float64, error)
	ConvalescenceSchedule(ctx context.Context) ([]benefits.ConvalescenceTier, error)
}

// Snapshot is immutable once resolved; callers copy it by value.
type Snapshot struct {
	Benefits benefits.Rates `json:"benefits"`
	Pension  pension.Rates  `json:"pension"`
	// false when the built-in defaults were used because the store failed
	FromStore bool `json:"fromStore"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{Benefits: benefits.DefaultRates(), Pension: pension.DefaultRates}
}

type Provider struct {
	source Source
	cache  *cache.Cache
}

func NewProvider(source Source, ttl time.Duration) *Provider {
	return &Provider{source: source, cache: cache.New(ttl, 10*time.Minute)}
}

// Resolve returns the snapshot in effect on now's calendar day. A failed rate
// fetch falls back to all defaults; a failed schedule fetch falls back to the
// default schedule only.
func (p *Provider) Resolve(ctx context.Context, now time.Time) Snapshot {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	key := day.Format("2006-01-02")
	if cached, found := p.cache.Get(key); found {
		return cached.(Snapshot)
	}

	snapshot := DefaultSnapshot()
	values, err := p.source.ActiveLegalRates(ctx, day)
	if err != nil {
		common.Log.WithError(err).Warn("legal rates unavailable, using built-in defaults")
		return snapshot
	}
	schedule, err := p.source.ConvalescenceSchedule(ctx)
	if err != nil {
		common.Log.WithError(err).Warn("convalescence schedule unavailable, using built-in schedule")
	} else if len(schedule) > 0 {
		snapshot.Benefits.ConvalescenceSchedule = schedule
	}
	snapshot.FromStore = true

	apply(values, KeyConvalescencePayPerDay, &snapshot.Benefits.ConvalescencePayPerDay)
	apply(values, KeySickLeaveDaysPerMonth, &snapshot.Benefits.SickLeaveDaysPerMonth)
	apply(values, KeyMaxSickDays, &snapshot.Benefits.MaxSickDays)
	apply(values, KeyPensionEmployerRate, &snapshot.Pension.EmployerRate)
	apply(values, KeyPensionEmployeeRate, &snapshot.Pension.EmployeeRate)
	apply(values, KeyPensionSeveranceRate, &snapshot.Pension.SeveranceRate)
	apply(values, KeyNIReducedRateThreshold, &snapshot.Pension.NIReducedRateThreshold)
	apply(values, KeyNIReducedRate, &snapshot.Pension.NIReducedRate)
	apply(values, KeyNIFullRate, &snapshot.Pension.NIFullRate)

	p.cache.Set(key, snapshot, cache.DefaultExpiration)
	return snapshot
}

// Invalidate drops cached snapshots so the next Resolve reads the store again.
func (p *Provider) Invalidate() {
	p.cache.Flush()
}

func apply(values map[string]float64, key string, target *float64) {
	if v, ok := values[key]; ok {
		*target = v
	}
}
