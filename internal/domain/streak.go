package domain

import "time"

// StreakResult is the outcome of applying one practice day to a streak.
type StreakResult struct {
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	ShieldConsumed bool `json:"shield_consumed"`
}

// CalendarDay truncates t to its calendar date in loc. The result is
// midnight UTC of that date so day arithmetic is free of DST shifts.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b. Both values
// are expected to come from CalendarDay.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ApplyStreak advances stats for a practice on day (a CalendarDay value).
//
//	same day or earlier: unchanged
//	next day:            +1
//	one missed day:      +1 and one shield consumed, if a shield is available
//	otherwise:           reset to 1
//
// LongestStreak never decreases and LastPracticeDate never moves backwards.
func ApplyStreak(stats *UserStats, day time.Time) StreakResult {
	result := StreakResult{}

	switch {
	case stats.LastPracticeDate == nil:
		stats.CurrentStreak = 1
	default:
		gap := DaysBetween(*stats.LastPracticeDate, day)
		switch {
		case gap <= 0:
			if stats.CurrentStreak == 0 {
				stats.CurrentStreak = 1
			}
		case gap == 1:
			stats.CurrentStreak++
		case gap == 2 && stats.StreakShieldCount > 0:
			stats.StreakShieldCount--
			stats.CurrentStreak++
			result.ShieldConsumed = true
		default:
			stats.CurrentStreak = 1
		}
		if gap <= 0 {
			day = *stats.LastPracticeDate
		}
	}

	d := day
	stats.LastPracticeDate = &d
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}

	result.CurrentStreak = stats.CurrentStreak
	result.LongestStreak = stats.LongestStreak
	return result
}
