package models

import "time"

type StressLevel string

const (
	StressLow      StressLevel = "LOW"
	StressModerate StressLevel = "MODERATE"
	StressHigh     StressLevel = "HIGH"
)

type Trend string

const (
	TrendImproving Trend = "IMPROVING"
	TrendStable    Trend = "STABLE"
	TrendDeclining Trend = "DECLINING"
)

type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "DAILY"
	FrequencyWeekly HabitFrequency = "WEEKLY"
)

type MoodRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes,omitempty"`
	Activities []string  `json:"activities,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}

// StressSubscales holds the seven self-assessment answers, each 0..5.
type StressSubscales struct {
	Workload         int `json:"workload"`
	SleepQuality     int `json:"sleep_quality"`
	Anxiety          int `json:"anxiety"`
	Mood             int `json:"mood"`
	PhysicalSymptoms int `json:"physical_symptoms"`
	Concentration    int `json:"concentration"`
	SocialConnection int `json:"social_connection"`
}

// Sum returns the derived stress score 0..35.
func (s StressSubscales) Sum() int {
	return s.Workload + s.SleepQuality + s.Anxiety + s.Mood +
		s.PhysicalSymptoms + s.Concentration + s.SocialConnection
}

// StressRecord carries DerivedScore and DerivedLevel that are recomputed
// from the subscales on every write, never trusted from input.
type StressRecord struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Subscales    StressSubscales `json:"subscales"`
	DerivedScore int             `json:"derived_score"`
	DerivedLevel StressLevel     `json:"derived_level"`
	Notes        string          `json:"notes,omitempty"`
	AssessedAt   time.Time       `json:"assessed_at"`
}

// HabitRecord invariant: LongestStreak >= CurrentStreak at all times.
type HabitRecord struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Name            string         `json:"name"`
	Frequency       HabitFrequency `json:"frequency"`
	CurrentStreak   int            `json:"current_streak"`
	LongestStreak   int            `json:"longest_streak"`
	Active          bool           `json:"active"`
	LastCompletedAt time.Time      `json:"last_completed_at,omitempty"`
}

// HabitCompletion is append-only; one row per completion action.
type HabitCompletion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type SleepRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	SleepStart time.Time `json:"sleep_start"`
	SleepEnd   time.Time `json:"sleep_end"`
	Quality    int       `json:"quality"`
	Notes      string    `json:"notes,omitempty"`
}

// Duration returns the time slept, wrapping forward a day when the
// entered end is not after the start (23:00 -> 07:00 is 8h, not -16h).
func (s SleepRecord) Duration() time.Duration {
	end := s.SleepEnd
	if !end.After(s.SleepStart) {
		end = end.Add(24 * time.Hour)
	}
	return end.Sub(s.SleepStart)
}

// Session is a booked therapist session, the join target of
// notification enrichment.
type Session struct {
	ID            string    `json:"id"`
	TherapistID   string    `json:"therapist_id"`
	TherapistName string    `json:"therapist_name"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	ZoomLink      string    `json:"zoom_link,omitempty"`
	Status        string    `json:"status"`
}

// CounterpartName returns the display name of the other participant.
func (s Session) CounterpartName(userID string) string {
	if s.TherapistID == userID {
		return s.ClientName
	}
	return s.TherapistName
}
