package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindbloom/internal/models"
	"mindbloom/internal/testutil"
)

func newAggregator(fs *testutil.FakeStore, now time.Time) *Aggregator {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	habit := NewHabitReader(fs, logger, metrics)
	habit.now = func() time.Time { return now }
	a := NewAggregator(
		NewMoodReader(fs, logger, metrics),
		NewStressReader(fs, logger, metrics),
		habit,
		NewSleepReader(fs, logger, metrics),
		logger, metrics,
	)
	a.now = func() time.Time { return now }
	return a
}

func seedScenarioU1(fs *testutil.FakeStore, now time.Time) {
	seedMoods(fs, "u1", 5, 4, 5)
	fs.Seed(models.CollectionStress, "s1", models.StressRecord{UserID: "u1", DerivedScore: 10})
	fs.Seed(models.CollectionStress, "s2", models.StressRecord{UserID: "u1", DerivedScore: 12})
	seedHabits(fs, "u1", 2)
	seedCompletions(fs, "u1", 10, now.Add(-24*time.Hour))
	day := now.AddDate(0, 0, -2)
	fs.Seed(models.CollectionSleep, "sl1", models.SleepRecord{
		UserID: "u1", Quality: 4, SleepStart: day, SleepEnd: day.Add(7 * time.Hour),
	})
	fs.Seed(models.CollectionSleep, "sl2", models.SleepRecord{
		UserID: "u1", Quality: 4, SleepStart: day.Add(24 * time.Hour), SleepEnd: day.Add(32 * time.Hour),
	})
}

func TestAggregator_ConsolidatedReport(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	fs := testutil.NewFakeStore()
	seedScenarioU1(fs, now)

	a := newAggregator(fs, now)
	window := Window{Start: now.AddDate(0, 0, -30), End: now}
	report, err := a.Report(context.Background(), "u1", window)

	require.NoError(t, err)
	assert.Equal(t, "u1", report.UserID)
	assert.Equal(t, window.Start, report.WindowStart)
	assert.Equal(t, window.End, report.WindowEnd)

	assert.InDelta(t, 4.6667, report.AvgMood, 0.001)
	assert.Equal(t, models.TrendImproving, report.MoodTrend)

	assert.Equal(t, 11.0, report.AvgStressScore)
	assert.Equal(t, models.TrendImproving, report.StressTrend)

	assert.InDelta(t, 71.43, report.HabitCompletionRatePct, 0.01)
	assert.Equal(t, 7.5, report.AvgSleepHours)

	// Mood, habit, sleep and stress milestones all apply.
	assert.Len(t, report.Milestones, 4)
	assert.Contains(t, report.Milestones, MilestoneMood)
	assert.Contains(t, report.Milestones, MilestoneHabit)
	assert.Contains(t, report.Milestones, MilestoneSleep)
	assert.Contains(t, report.Milestones, MilestoneStress)

	assert.Equal(t, CorrelationStrong, report.SleepMoodCorrelation)
	assert.Equal(t, now, report.GeneratedAt)
}

// Every combination of reader failures must still produce a complete
// report, with defaults substituted only for the failed metrics.
func TestAggregator_NeverFailsOnReaderErrors(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	collections := []string{
		models.CollectionMoods,
		models.CollectionStress,
		models.CollectionHabits,
		models.CollectionSleep,
	}

	for mask := 0; mask < 16; mask++ {
		fs := testutil.NewFakeStore()
		seedScenarioU1(fs, now)
		for bit, collection := range collections {
			if mask&(1<<bit) != 0 {
				fs.QueryErr[collection] = errors.New("store down")
			}
		}

		a := newAggregator(fs, now)
		report, err := a.Report(context.Background(), "u1", Window{End: now})

		require.NoError(t, err, "mask %04b", mask)
		require.NotNil(t, report, "mask %04b", mask)

		if mask&1 != 0 {
			assert.Zero(t, report.AvgMood, "mask %04b", mask)
		} else {
			assert.InDelta(t, 4.6667, report.AvgMood, 0.001, "mask %04b", mask)
		}
		if mask&2 != 0 {
			assert.Zero(t, report.AvgStressScore, "mask %04b", mask)
		} else {
			assert.Equal(t, 11.0, report.AvgStressScore, "mask %04b", mask)
		}
		if mask&4 != 0 {
			assert.Zero(t, report.HabitCompletionRatePct, "mask %04b", mask)
		} else {
			assert.InDelta(t, 71.43, report.HabitCompletionRatePct, 0.01, "mask %04b", mask)
		}
		if mask&8 != 0 {
			assert.Zero(t, report.AvgSleepHours, "mask %04b", mask)
		} else {
			assert.Equal(t, 7.5, report.AvgSleepHours, "mask %04b", mask)
		}
	}
}

func TestAggregator_AllDefaultReportStillClassified(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	fs := testutil.NewFakeStore()
	for _, c := range []string{models.CollectionMoods, models.CollectionStress, models.CollectionHabits, models.CollectionSleep} {
		fs.QueryErr[c] = errors.New("store down")
	}

	a := newAggregator(fs, now)
	report, err := a.Report(context.Background(), "u1", Window{End: now})

	require.NoError(t, err)
	assert.Equal(t, models.TrendDeclining, report.MoodTrend)
	assert.Equal(t, models.TrendImproving, report.StressTrend)
	assert.Equal(t, CorrelationInsufficient, report.SleepMoodCorrelation)
	assert.NotNil(t, report.Milestones)
}

func TestAggregator_CancelledContextDiscardsResult(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	fs := testutil.NewFakeStore()
	seedScenarioU1(fs, now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newAggregator(fs, now)
	report, err := a.Report(ctx, "u1", Window{End: now})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}
