package progress

import "mindbloom/internal/models"

// Milestone texts shown on the progress dashboard.
const (
	MilestoneMood   = "Consistent positive mood"
	MilestoneHabit  = "Strong habit consistency"
	MilestoneSleep  = "Healthy sleep routine"
	MilestoneStress = "Stress well managed"
)

// Correlation labels. These are fixed rule-of-thumb strings, not a
// computed coefficient.
const (
	CorrelationStrong       = "strong positive"
	CorrelationModerate     = "moderate"
	CorrelationInsufficient = "insufficient data"
)

// StressLevelFromScore tiers a derived score 0..35. Bands are
// inclusive on their low side: <=14 LOW, 15..24 MODERATE, >=25 HIGH.
func StressLevelFromScore(score int) models.StressLevel {
	switch {
	case score <= 14:
		return models.StressLow
	case score <= 24:
		return models.StressModerate
	default:
		return models.StressHigh
	}
}

// MoodTrend classifies a lifetime mood average on the 1..5 scale.
func MoodTrend(avg float64) models.Trend {
	switch {
	case avg >= 4.0:
		return models.TrendImproving
	case avg >= 3.0:
		return models.TrendStable
	default:
		return models.TrendDeclining
	}
}

// StressTrend classifies a stress-score average. The cut points differ
// from the mood thresholds on purpose: stress is inverted (lower is
// better) and uses its own scale.
func StressTrend(avg float64) models.Trend {
	switch {
	case avg <= 15:
		return models.TrendImproving
	case avg <= 21:
		return models.TrendStable
	default:
		return models.TrendDeclining
	}
}

// Milestones evaluates the four independent milestone rules. Any
// combination may apply; the result is never nil.
func Milestones(avgMood, avgStressScore, habitRatePct, avgSleepHours float64) []string {
	milestones := make([]string, 0, 4)
	if avgMood >= 4.0 {
		milestones = append(milestones, MilestoneMood)
	}
	if habitRatePct >= 70 {
		milestones = append(milestones, MilestoneHabit)
	}
	if avgSleepHours >= 7.0 {
		milestones = append(milestones, MilestoneSleep)
	}
	if avgStressScore <= 15 {
		milestones = append(milestones, MilestoneStress)
	}
	return milestones
}

// SleepMoodCorrelation is a descriptive heuristic, not statistics.
func SleepMoodCorrelation(avgSleepHours, avgMood float64) string {
	switch {
	case avgSleepHours >= 7.0 && avgMood >= 3.5:
		return CorrelationStrong
	case avgSleepHours >= 6.0 && avgMood >= 3.0:
		return CorrelationModerate
	default:
		return CorrelationInsufficient
	}
}

var copingSuggestions = map[models.StressLevel]string{
	models.StressLow: "Your stress is low. Keep up the routines that work for you: " +
		"regular movement, breaks during the day, and a steady sleep schedule.",
	models.StressModerate: "Your stress is moderate. Try a short breathing exercise, " +
		"take a walk outside, and consider journaling what is on your mind.",
	models.StressHigh: "Your stress is high. Slow down where you can, reach out to " +
		"someone you trust, and consider booking a session with a therapist.",
}

const copingFallback = "No stress assessment yet. Complete one to get tailored suggestions."

// CopingSuggestion maps a stress level to fixed advice text. Unknown
// or empty levels get the no-assessment fallback.
func CopingSuggestion(level models.StressLevel) string {
	if text, ok := copingSuggestions[level]; ok {
		return text
	}
	return copingFallback
}
