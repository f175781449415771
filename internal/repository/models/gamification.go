package models

import (
	"database/sql"
	"time"
)

// UserStats is the USER_STATS row.
type UserStats struct {
	UserID                      string       `db:"USER_ID"`
	TotalXP                     int64        `db:"TOTAL_XP"`
	CurrentLevel                int          `db:"CURRENT_LEVEL"`
	CurrentStreak               int          `db:"CURRENT_STREAK"`
	LongestStreak               int          `db:"LONGEST_STREAK"`
	TotalSessions               int          `db:"TOTAL_SESSIONS"`
	TotalMinutes                int          `db:"TOTAL_MINUTES"`
	HeartsCount                 int          `db:"HEARTS_COUNT"`
	GemsBalance                 int64        `db:"GEMS_BALANCE"`
	StreakShieldCount           int          `db:"STREAK_SHIELD_COUNT"`
	LastStreakRecoveryDate      sql.NullTime `db:"LAST_STREAK_RECOVERY_DATE"`
	StreakRecoveryCountThisWeek int          `db:"STREAK_RECOVERY_COUNT_THIS_WEEK"`
	BadgesEarned                int          `db:"BADGES_EARNED"`
	LastPracticeDate            sql.NullTime `db:"LAST_PRACTICE_DATE"`
	ShowOnLeaderboard           OracleBool   `db:"SHOW_ON_LEADERBOARD"`
	CreatedAt                   time.Time    `db:"CREATED_AT"`
	UpdatedAt                   time.Time    `db:"UPDATED_AT"`
}

// LeaderboardRow is the projection read for the public leaderboard.
type LeaderboardRow struct {
	UserID        string `db:"USER_ID"`
	TotalXP       int64  `db:"TOTAL_XP"`
	CurrentLevel  int    `db:"CURRENT_LEVEL"`
	CurrentStreak int    `db:"CURRENT_STREAK"`
	BadgesEarned  int    `db:"BADGES_EARNED"`
}

// PracticeItem is the PRACTICE_ITEMS row.
type PracticeItem struct {
	ID          string         `db:"ID"`
	UserID      string         `db:"USER_ID"`
	Name        string         `db:"NAME"`
	Description sql.NullString `db:"DESCRIPTION"`
	IsActive    OracleBool     `db:"IS_ACTIVE"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}

// PracticeSession is the PRACTICE_SESSIONS row.
type PracticeSession struct {
	ID                  string         `db:"ID"`
	UserID              string         `db:"USER_ID"`
	PracticeItemID      string         `db:"PRACTICE_ITEM_ID"`
	DurationMinutes     int            `db:"DURATION_MINUTES"`
	SentimentScore      sql.NullInt64  `db:"SENTIMENT_SCORE"`
	ImprovementDetected OracleBool     `db:"IMPROVEMENT_DETECTED"`
	Notes               sql.NullString `db:"NOTES"`
	XPEarned            int64          `db:"XP_EARNED"`
	SessionHash         string         `db:"SESSION_HASH"`
	CreatedAt           time.Time      `db:"CREATED_AT"`
}

// Badge is the BADGES row.
type Badge struct {
	BadgeKey      string         `db:"BADGE_KEY"`
	Name          string         `db:"NAME"`
	Description   sql.NullString `db:"DESCRIPTION"`
	Category      sql.NullString `db:"CATEGORY"`
	CriteriaType  string         `db:"CRITERIA_TYPE"`
	CriteriaValue int64          `db:"CRITERIA_VALUE"`
	XPReward      int64          `db:"XP_REWARD"`
	GemReward     int64          `db:"GEM_REWARD"`
	DisplayOrder  int            `db:"DISPLAY_ORDER"`
	IsActive      OracleBool     `db:"IS_ACTIVE"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
}

// EarnedBadge joins USER_BADGES with BADGES.
type EarnedBadge struct {
	BadgeKey    string         `db:"BADGE_KEY"`
	Name        string         `db:"NAME"`
	Description sql.NullString `db:"DESCRIPTION"`
	Category    sql.NullString `db:"CATEGORY"`
	IsActive    OracleBool     `db:"IS_ACTIVE"`
	EarnedAt    time.Time      `db:"EARNED_AT"`
}

// GemTransaction is the GEMS_TRANSACTIONS row.
type GemTransaction struct {
	ID              string         `db:"ID"`
	UserID          string         `db:"USER_ID"`
	TransactionType string         `db:"TRANSACTION_TYPE"`
	Amount          int64          `db:"AMOUNT"`
	Source          string         `db:"SOURCE"`
	Description     sql.NullString `db:"DESCRIPTION"`
	BalanceAfter    int64          `db:"BALANCE_AFTER"`
	CreatedAt       time.Time      `db:"CREATED_AT"`
}
