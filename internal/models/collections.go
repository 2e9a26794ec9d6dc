package models

// Collection names in the document store.
const (
	CollectionMoods         = "mood_entries"
	CollectionStress        = "stress_assessments"
	CollectionHabits        = "habits"
	CollectionCompletions   = "habit_completions"
	CollectionSleep         = "sleep_entries"
	CollectionNotifications = "notifications"
	CollectionSessions      = "sessions"
)
