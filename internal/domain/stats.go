package domain

import "time"

const (
	// MaxHearts is the cap and the starting value of UserStats.HeartsCount.
	MaxHearts = 5
	// DefaultShieldCap bounds UserStats.StreakShieldCount.
	DefaultShieldCap = 3
)

// UserStats is the per-user gamification aggregate.
type UserStats struct {
	UserID                      string
	TotalXP                     int64
	CurrentLevel                int
	CurrentStreak               int
	LongestStreak               int
	TotalSessions               int
	TotalMinutes                int
	HeartsCount                 int
	GemsBalance                 int64
	StreakShieldCount           int
	LastStreakRecoveryDate      *time.Time
	StreakRecoveryCountThisWeek int
	BadgesEarned                int
	LastPracticeDate            *time.Time
	ShowOnLeaderboard           bool
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// NewUserStats returns the row created lazily on a user's first session, badge or gem credit.
func NewUserStats(userID string, now time.Time) *UserStats {
	return &UserStats{
		UserID:            userID,
		CurrentLevel:      1,
		HeartsCount:       MaxHearts,
		ShowOnLeaderboard: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Clone returns a deep copy so callers can mutate a snapshot safely.
func (s *UserStats) Clone() *UserStats {
	if s == nil {
		return nil
	}
	c := *s
	if s.LastPracticeDate != nil {
		d := *s.LastPracticeDate
		c.LastPracticeDate = &d
	}
	if s.LastStreakRecoveryDate != nil {
		d := *s.LastStreakRecoveryDate
		c.LastStreakRecoveryDate = &d
	}
	return &c
}

// LeaderboardEntry is one row of the public XP leaderboard.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	TotalXP       int64  `json:"total_xp"`
	CurrentLevel  int    `json:"current_level"`
	CurrentStreak int    `json:"current_streak"`
	BadgesEarned  int    `json:"badges_earned"`
}
