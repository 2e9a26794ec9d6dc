package progress

import (
	"context"
	"sync"
	"time"

	"mindbloom/internal/models"
	"mindbloom/internal/providers"
)

// Aggregator fans out to the four domain readers and merges their
// summaries into one ProgressReport. It has no failure state: every
// reader degrades independently and the merge always runs.
type Aggregator struct {
	mood    Reader
	stress  Reader
	habit   Reader
	sleep   Reader
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewAggregator(mood *MoodReader, stress *StressReader, habit *HabitReader, sleep *SleepReader,
	logger providers.Logger, metrics providers.MetricsProviderInterface) *Aggregator {
	return &Aggregator{
		mood:    mood,
		stress:  stress,
		habit:   habit,
		sleep:   sleep,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

type summaries struct {
	mood, stress, habit, sleep float64
}

// Report computes a consolidated progress report for one user. The
// four readers run concurrently; the merge waits on all of them, so
// milestone and correlation evaluation always observes every summary.
// If ctx ends first, the in-flight result is discarded — no partial
// reports are ever delivered.
func (a *Aggregator) Report(ctx context.Context, userID string, window Window) (*models.ProgressReport, error) {
	start := time.Now()

	var s summaries
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		s.mood, _ = a.mood.Summary(ctx, userID, window)
	}()
	go func() {
		defer wg.Done()
		s.stress, _ = a.stress.Summary(ctx, userID, window)
	}()
	go func() {
		defer wg.Done()
		s.habit, _ = a.habit.Summary(ctx, userID, window)
	}()
	go func() {
		defer wg.Done()
		s.sleep, _ = a.sleep.Summary(ctx, userID, window)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
	// Cancellation wins even when the readers raced it to the finish.
	if err := ctx.Err(); err != nil {
		a.logger.Debugf(providers.TypeProgress, "report for %s cancelled: %s", userID, err)
		return nil, err
	}

	report := &models.ProgressReport{
		UserID:                 userID,
		WindowStart:            window.Start,
		WindowEnd:              window.End,
		AvgMood:                s.mood,
		MoodTrend:              MoodTrend(s.mood),
		AvgStressScore:         s.stress,
		StressTrend:            StressTrend(s.stress),
		HabitCompletionRatePct: s.habit,
		AvgSleepHours:          s.sleep,
		Milestones:             Milestones(s.mood, s.stress, s.habit, s.sleep),
		SleepMoodCorrelation:   SleepMoodCorrelation(s.sleep, s.mood),
		GeneratedAt:            a.now(),
	}

	a.metrics.ObserveAggregationDuration(time.Since(start))
	return report, nil
}
