package services

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/atomic"

	"mindbloom/internal/models"
	"mindbloom/internal/progress"
	"mindbloom/internal/providers"
	"mindbloom/internal/store"
	"mindbloom/internal/structures"
)

type ProgressServiceInterface interface {
	Report(ctx context.Context, userID string, window progress.Window) (*models.ProgressReport, error)
	Coping(ctx context.Context, userID string) string
	CacheGeneration(userID string) int64
	HistorySize() int
	Close()
}

// ProgressService fronts the aggregator: it records every computed
// report in the snapshot history and, when live invalidation is on,
// watches the store so cached reports go stale on any mutation of the
// user's records (the next read recomputes from scratch).
type ProgressService struct {
	conf       *structures.Config
	aggregator *progress.Aggregator
	store      store.Store
	history    *progress.History
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	mu          sync.Mutex
	generations map[string]*atomic.Int64
	watched     map[string]bool
	subs        []store.SubscriptionHandle
}

// watchedCollections are the record kinds whose mutations invalidate a
// cached progress report.
var watchedCollections = []string{
	models.CollectionMoods,
	models.CollectionStress,
	models.CollectionHabits,
	models.CollectionCompletions,
	models.CollectionSleep,
}

func NewProgressService(conf *structures.Config, aggregator *progress.Aggregator, st store.Store,
	history *progress.History, logger providers.Logger, metrics providers.MetricsProviderInterface) ProgressServiceInterface {
	return &ProgressService{
		conf:        conf,
		aggregator:  aggregator,
		store:       st,
		history:     history,
		logger:      logger,
		metrics:     metrics,
		generations: make(map[string]*atomic.Int64),
		watched:     make(map[string]bool),
	}
}

func (ps *ProgressService) Report(ctx context.Context, userID string, window progress.Window) (*models.ProgressReport, error) {
	report, err := ps.aggregator.Report(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	ps.history.Append(report)
	ps.metrics.SetHistorySize(ps.history.Len())
	ps.watchUser(userID)
	return report, nil
}

// Coping returns advice text for the user's latest stress assessment.
// Store failures degrade to the no-assessment fallback, they never
// surface to the caller.
func (ps *ProgressService) Coping(ctx context.Context, userID string) string {
	recs, err := ps.store.QueryEqual(ctx, models.CollectionStress, "user_id", userID)
	if err != nil {
		ps.logger.Warnf(providers.TypeProgress, "coping lookup degraded for %s: %s", userID, err)
		ps.metrics.IncDegradedFetches("coping")
		return progress.CopingSuggestion("")
	}
	var assessments []models.StressRecord
	if err := store.DecodeAll(recs, &assessments); err != nil {
		ps.logger.Warnf(providers.TypeProgress, "coping lookup undecodable for %s: %s", userID, err)
		ps.metrics.IncDegradedFetches("coping")
		return progress.CopingSuggestion("")
	}
	if len(assessments) == 0 {
		return progress.CopingSuggestion("")
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].AssessedAt.After(assessments[j].AssessedAt)
	})
	return progress.CopingSuggestion(assessments[0].DerivedLevel)
}

// CacheGeneration is part of the report cache key. Live invalidation
// bumps it, so stale cached reports simply stop being addressable.
func (ps *ProgressService) CacheGeneration(userID string) int64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	gen, ok := ps.generations[userID]
	if !ok {
		return 0
	}
	return gen.Load()
}

func (ps *ProgressService) HistorySize() int {
	return ps.history.Len()
}

func (ps *ProgressService) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, sub := range ps.subs {
		sub.Cancel()
	}
	ps.subs = nil
}

// watchUser attaches one live query per collection the first time a
// user's report is computed. Each upstream mutation re-fires the query
// and bumps the generation; the recompute itself happens lazily on the
// next report request, preserving the full-recompute semantics.
func (ps *ProgressService) watchUser(userID string) {
	if !ps.conf.Progress.LiveInvalidate {
		return
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.watched[userID] {
		return
	}
	ps.watched[userID] = true

	gen, ok := ps.generations[userID]
	if !ok {
		gen = atomic.NewInt64(0)
		ps.generations[userID] = gen
	}

	for _, collection := range watchedCollections {
		sub := ps.store.Subscribe(collection, "user_id", userID, func(_ []store.Record) {
			gen.Inc()
		})
		ps.subs = append(ps.subs, sub)
	}
	ps.logger.Debugf(providers.TypeProgress, "live invalidation attached for %s", userID)
}
