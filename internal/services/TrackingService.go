package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindbloom/internal/models"
	"mindbloom/internal/progress"
	"mindbloom/internal/providers"
	"mindbloom/internal/store"
)

type TrackingServiceInterface interface {
	AddMood(ctx context.Context, entry models.MoodRecord) (models.MoodRecord, error)
	AddStress(ctx context.Context, entry models.StressRecord) (models.StressRecord, error)
	AddSleep(ctx context.Context, entry models.SleepRecord) (models.SleepRecord, error)
	CompleteHabit(ctx context.Context, userID, habitID string) (models.HabitCompletion, error)
}

// TrackingService owns the write paths. All derived fields are
// recomputed here at write time; client-supplied values for them are
// ignored.
type TrackingService struct {
	store  store.Store
	logger providers.Logger
	now    func() time.Time
}

func NewTrackingService(st store.Store, logger providers.Logger) TrackingServiceInterface {
	return &TrackingService{store: st, logger: logger, now: time.Now}
}

func (ts *TrackingService) AddMood(ctx context.Context, entry models.MoodRecord) (models.MoodRecord, error) {
	if entry.UserID == "" {
		return models.MoodRecord{}, fmt.Errorf("mood entry requires a user id")
	}
	if entry.Rating < 1 || entry.Rating > 5 {
		return models.MoodRecord{}, fmt.Errorf("mood rating %d out of range 1..5", entry.Rating)
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = ts.now()
	}

	id, err := ts.push(ctx, models.CollectionMoods, entry)
	if err != nil {
		return models.MoodRecord{}, err
	}
	entry.ID = id
	ts.logger.Infof(providers.TypePost, "mood entry %s recorded for %s", id, entry.UserID)
	return entry, nil
}

func (ts *TrackingService) AddStress(ctx context.Context, entry models.StressRecord) (models.StressRecord, error) {
	if entry.UserID == "" {
		return models.StressRecord{}, fmt.Errorf("stress assessment requires a user id")
	}
	for name, v := range map[string]int{
		"workload":          entry.Subscales.Workload,
		"sleep_quality":     entry.Subscales.SleepQuality,
		"anxiety":           entry.Subscales.Anxiety,
		"mood":              entry.Subscales.Mood,
		"physical_symptoms": entry.Subscales.PhysicalSymptoms,
		"concentration":     entry.Subscales.Concentration,
		"social_connection": entry.Subscales.SocialConnection,
	} {
		if v < 0 || v > 5 {
			return models.StressRecord{}, fmt.Errorf("subscale %s value %d out of range 0..5", name, v)
		}
	}

	// Never trust a derived score from input.
	entry.DerivedScore = entry.Subscales.Sum()
	entry.DerivedLevel = progress.StressLevelFromScore(entry.DerivedScore)
	if entry.AssessedAt.IsZero() {
		entry.AssessedAt = ts.now()
	}

	id, err := ts.push(ctx, models.CollectionStress, entry)
	if err != nil {
		return models.StressRecord{}, err
	}
	entry.ID = id
	ts.logger.Infof(providers.TypePost, "stress assessment %s recorded for %s (score %d, %s)",
		id, entry.UserID, entry.DerivedScore, entry.DerivedLevel)
	return entry, nil
}

func (ts *TrackingService) AddSleep(ctx context.Context, entry models.SleepRecord) (models.SleepRecord, error) {
	if entry.UserID == "" {
		return models.SleepRecord{}, fmt.Errorf("sleep entry requires a user id")
	}
	if entry.Quality < 1 || entry.Quality > 5 {
		return models.SleepRecord{}, fmt.Errorf("sleep quality %d out of range 1..5", entry.Quality)
	}
	hours := entry.Duration().Hours()
	if hours <= 0 || hours > 24 {
		return models.SleepRecord{}, fmt.Errorf("sleep duration %.1fh out of range (0,24]", hours)
	}

	id, err := ts.push(ctx, models.CollectionSleep, entry)
	if err != nil {
		return models.SleepRecord{}, err
	}
	entry.ID = id
	ts.logger.Infof(providers.TypePost, "sleep entry %s recorded for %s (%.1fh)", id, entry.UserID, hours)
	return entry, nil
}

// CompleteHabit appends a completion row and advances the streak,
// raising the longest streak when the current one passes it. There is
// no at-most-once-per-day guard; repeated completions all count.
func (ts *TrackingService) CompleteHabit(ctx context.Context, userID, habitID string) (models.HabitCompletion, error) {
	raw, found, err := ts.store.Get(ctx, models.CollectionHabits, habitID)
	if err != nil {
		return models.HabitCompletion{}, err
	}
	if !found {
		return models.HabitCompletion{}, fmt.Errorf("habit %s not found", habitID)
	}
	var habit models.HabitRecord
	if err := store.Decode(raw, &habit); err != nil {
		return models.HabitCompletion{}, err
	}
	if habit.UserID != userID {
		return models.HabitCompletion{}, fmt.Errorf("habit %s does not belong to user %s", habitID, userID)
	}

	completion := models.HabitCompletion{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		UserID:      userID,
		CompletedAt: ts.now(),
	}
	rec, err := store.Encode(completion)
	if err != nil {
		return models.HabitCompletion{}, err
	}
	if err := ts.store.Set(ctx, models.CollectionCompletions, completion.ID, rec); err != nil {
		return models.HabitCompletion{}, err
	}

	if err := ts.store.Increment(ctx, models.CollectionHabits, habitID, "current_streak", 1); err != nil {
		return models.HabitCompletion{}, err
	}
	newStreak := habit.CurrentStreak + 1
	if newStreak > habit.LongestStreak {
		delta := int64(newStreak - habit.LongestStreak)
		if err := ts.store.Increment(ctx, models.CollectionHabits, habitID, "longest_streak", delta); err != nil {
			return models.HabitCompletion{}, err
		}
	}

	// Streak counters are already in place; refresh the timestamp on
	// the updated record.
	raw, found, err = ts.store.Get(ctx, models.CollectionHabits, habitID)
	if err != nil || !found {
		return completion, nil
	}
	var updated models.HabitRecord
	if err := store.Decode(raw, &updated); err != nil {
		return completion, nil
	}
	updated.LastCompletedAt = completion.CompletedAt
	if rec, err := store.Encode(updated); err == nil {
		_ = ts.store.Set(ctx, models.CollectionHabits, habitID, rec)
	}

	ts.logger.Infof(providers.TypePost, "habit %s completed by %s (streak %d)", habitID, userID, newStreak)
	return completion, nil
}

func (ts *TrackingService) push(ctx context.Context, collection string, v any) (string, error) {
	rec, err := store.Encode(v)
	if err != nil {
		return "", err
	}
	return ts.store.Push(ctx, collection, rec)
}
