package progress

import (
	"context"
	"time"

	"mindbloom/internal/models"
	"mindbloom/internal/providers"
	"mindbloom/internal/store"
)

// Window scopes a progress report. Readers accept it for contract
// parity but reduce over the user's full record history — the mobile
// client has always shown lifetime averages.
type Window struct {
	Start time.Time
	End   time.Time
}

// Reader reduces one record kind for one user to a single summary
// value. ok is false when the summary is undefined (no records) or the
// underlying query failed and the neutral default was substituted; the
// value itself is always safe to merge into a report.
type Reader interface {
	Summary(ctx context.Context, userID string, window Window) (float64, bool)
}

const habitWindowDays = 7

type MoodReader struct {
	store   store.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewMoodReader(st store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *MoodReader {
	return &MoodReader{store: st, logger: logger, metrics: metrics}
}

func (r *MoodReader) Summary(ctx context.Context, userID string, _ Window) (float64, bool) {
	recs, err := r.store.QueryEqual(ctx, models.CollectionMoods, "user_id", userID)
	if err != nil {
		return degrade(r.logger, r.metrics, "mood", err)
	}
	var moods []models.MoodRecord
	if err := store.DecodeAll(recs, &moods); err != nil {
		return degrade(r.logger, r.metrics, "mood", err)
	}
	if len(moods) == 0 {
		return 0, false
	}
	sum := 0
	for _, m := range moods {
		sum += m.Rating
	}
	return float64(sum) / float64(len(moods)), true
}

type StressReader struct {
	store   store.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStressReader(st store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *StressReader {
	return &StressReader{store: st, logger: logger, metrics: metrics}
}

func (r *StressReader) Summary(ctx context.Context, userID string, _ Window) (float64, bool) {
	recs, err := r.store.QueryEqual(ctx, models.CollectionStress, "user_id", userID)
	if err != nil {
		return degrade(r.logger, r.metrics, "stress", err)
	}
	var assessments []models.StressRecord
	if err := store.DecodeAll(recs, &assessments); err != nil {
		return degrade(r.logger, r.metrics, "stress", err)
	}
	if len(assessments) == 0 {
		return 0, false
	}
	sum := 0
	for _, a := range assessments {
		sum += a.DerivedScore
	}
	return float64(sum) / float64(len(assessments)), true
}

// HabitReader reports the completion rate over the trailing seven
// days as a percentage capped at 100. A user with zero active habits
// has a defined rate of 0.
type HabitReader struct {
	store   store.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewHabitReader(st store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *HabitReader {
	return &HabitReader{store: st, logger: logger, metrics: metrics, now: time.Now}
}

func (r *HabitReader) Summary(ctx context.Context, userID string, _ Window) (float64, bool) {
	habitRecs, err := r.store.QueryEqual(ctx, models.CollectionHabits, "user_id", userID)
	if err != nil {
		return degrade(r.logger, r.metrics, "habit", err)
	}
	var habits []models.HabitRecord
	if err := store.DecodeAll(habitRecs, &habits); err != nil {
		return degrade(r.logger, r.metrics, "habit", err)
	}
	active := 0
	for _, h := range habits {
		if h.Active {
			active++
		}
	}
	if active == 0 {
		return 0, true
	}

	completionRecs, err := r.store.QueryEqual(ctx, models.CollectionCompletions, "user_id", userID)
	if err != nil {
		return degrade(r.logger, r.metrics, "habit", err)
	}
	var completions []models.HabitCompletion
	if err := store.DecodeAll(completionRecs, &completions); err != nil {
		return degrade(r.logger, r.metrics, "habit", err)
	}

	cutoff := r.now().AddDate(0, 0, -habitWindowDays)
	recent := 0
	for _, c := range completions {
		if c.CompletedAt.After(cutoff) {
			recent++
		}
	}

	rate := float64(recent) / float64(active*habitWindowDays) * 100
	if rate > 100 {
		rate = 100
	}
	return rate, true
}

type SleepReader struct {
	store   store.Store
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewSleepReader(st store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *SleepReader {
	return &SleepReader{store: st, logger: logger, metrics: metrics}
}

func (r *SleepReader) Summary(ctx context.Context, userID string, _ Window) (float64, bool) {
	recs, err := r.store.QueryEqual(ctx, models.CollectionSleep, "user_id", userID)
	if err != nil {
		return degrade(r.logger, r.metrics, "sleep", err)
	}
	var entries []models.SleepRecord
	if err := store.DecodeAll(recs, &entries); err != nil {
		return degrade(r.logger, r.metrics, "sleep", err)
	}
	if len(entries) == 0 {
		return 0, false
	}
	var hours float64
	for _, e := range entries {
		hours += e.Duration().Hours()
	}
	return hours / float64(len(entries)), true
}

// degrade applies the failure policy: a transient store error never
// aborts an aggregation, the metric falls back to its neutral default.
func degrade(logger providers.Logger, metrics providers.MetricsProviderInterface, domain string, err error) (float64, bool) {
	logger.Warnf(providers.TypeProgress, "%s summary degraded to default: %s", domain, err)
	metrics.IncDegradedFetches(domain)
	return 0, false
}
