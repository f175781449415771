package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := day(s)
	return &d
}

func TestApplyStreak(t *testing.T) {
	tests := []struct {
		name           string
		stats          UserStats
		practice       string
		wantCurrent    int
		wantLongest    int
		wantShields    int
		wantShieldUsed bool
		wantLast       string
	}{
		{
			name:        "first practice",
			stats:       UserStats{},
			practice:    "2024-01-10",
			wantCurrent: 1, wantLongest: 1, wantLast: "2024-01-10",
		},
		{
			name:        "same day is idempotent",
			stats:       UserStats{CurrentStreak: 3, LongestStreak: 4, LastPracticeDate: datePtr("2024-01-10")},
			practice:    "2024-01-10",
			wantCurrent: 3, wantLongest: 4, wantLast: "2024-01-10",
		},
		{
			name:        "next day increments",
			stats:       UserStats{CurrentStreak: 3, LongestStreak: 3, LastPracticeDate: datePtr("2024-01-10")},
			practice:    "2024-01-11",
			wantCurrent: 4, wantLongest: 4, wantLast: "2024-01-11",
		},
		{
			name:        "one missed day with shield",
			stats:       UserStats{CurrentStreak: 5, LongestStreak: 5, StreakShieldCount: 1, LastPracticeDate: datePtr("2024-01-10")},
			practice:    "2024-01-12",
			wantCurrent: 6, wantLongest: 6, wantShields: 0, wantShieldUsed: true, wantLast: "2024-01-12",
		},
		{
			name:        "one missed day without shield",
			stats:       UserStats{CurrentStreak: 5, LongestStreak: 7, LastPracticeDate: datePtr("2024-01-10")},
			practice:    "2024-01-12",
			wantCurrent: 1, wantLongest: 7, wantLast: "2024-01-12",
		},
		{
			name:        "shield cannot bridge two missed days",
			stats:       UserStats{CurrentStreak: 5, LongestStreak: 5, StreakShieldCount: 2, LastPracticeDate: datePtr("2024-01-10")},
			practice:    "2024-01-13",
			wantCurrent: 1, wantLongest: 5, wantShields: 2, wantLast: "2024-01-13",
		},
		{
			name:        "earlier date does not move last practice back",
			stats:       UserStats{CurrentStreak: 2, LongestStreak: 2, LastPracticeDate: datePtr("2024-01-10")},
			practice:    "2024-01-08",
			wantCurrent: 2, wantLongest: 2, wantLast: "2024-01-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := tt.stats
			res := ApplyStreak(&stats, day(tt.practice))

			assert.Equal(t, tt.wantCurrent, res.CurrentStreak)
			assert.Equal(t, tt.wantLongest, res.LongestStreak)
			assert.Equal(t, tt.wantShieldUsed, res.ShieldConsumed)
			assert.Equal(t, tt.wantShields, stats.StreakShieldCount)
			require.NotNil(t, stats.LastPracticeDate)
			assert.Equal(t, day(tt.wantLast), *stats.LastPracticeDate)
		})
	}
}

func TestApplyStreak_LongestNeverDecreases(t *testing.T) {
	stats := &UserStats{}
	start := day("2024-03-01")
	// practice offsets in days from start, including gaps, repeats and shield use
	offsets := []int{0, 1, 2, 2, 4, 5, 9, 10, 11, 12, 14, 20, 21}
	stats.StreakShieldCount = 1

	prevLongest := 0
	for _, off := range offsets {
		ApplyStreak(stats, start.AddDate(0, 0, off))
		assert.GreaterOrEqual(t, stats.LongestStreak, stats.CurrentStreak)
		assert.GreaterOrEqual(t, stats.LongestStreak, prevLongest)
		prevLongest = stats.LongestStreak
	}
}

func TestCalendarDay_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2024-01-10 20:30 UTC is already 2024-01-11 in Seoul
	ts := time.Date(2024, 1, 10, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, day("2024-01-11"), CalendarDay(ts, loc))
	assert.Equal(t, day("2024-01-10"), CalendarDay(ts, time.UTC))
	assert.Equal(t, 1, DaysBetween(day("2024-01-10"), CalendarDay(ts, loc)))
}
