package models

import "time"

// ProgressReport is derived data, recomputed per request. It may be
// archived as a historical snapshot but is never the source of truth.
type ProgressReport struct {
	UserID                 string    `json:"user_id"`
	WindowStart            time.Time `json:"window_start"`
	WindowEnd              time.Time `json:"window_end"`
	AvgMood                float64   `json:"avg_mood"`
	MoodTrend              Trend     `json:"mood_trend"`
	AvgStressScore         float64   `json:"avg_stress_score"`
	StressTrend            Trend     `json:"stress_trend"`
	HabitCompletionRatePct float64   `json:"habit_completion_rate_pct"`
	AvgSleepHours          float64   `json:"avg_sleep_hours"`
	Milestones             []string  `json:"milestones"`
	SleepMoodCorrelation   string    `json:"sleep_mood_correlation"`
	GeneratedAt            time.Time `json:"generated_at"`
}
