package domain

import (
	"context"
	"time"
)

// TransactionManager runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn take part in that transaction, and a nested
// WithTransaction joins the outer one instead of opening a second.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// StatsRepository persists the per-user aggregate.
type StatsRepository interface {
	// GetByUserID returns nil, nil when the user has no stats yet.
	GetByUserID(ctx context.Context, userID string) (*UserStats, error)
	// LockOrCreate returns the user's row locked for update, inserting the
	// default row first when none exists. Must run inside a transaction.
	LockOrCreate(ctx context.Context, userID string, now time.Time) (*UserStats, error)
	Update(ctx context.Context, stats *UserStats) error
	SetLeaderboardVisibility(ctx context.Context, userID string, visible bool, now time.Time) error
	ResetWeeklyRecoveryCounts(ctx context.Context) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}

// PracticeItemRepository persists the things users practice.
type PracticeItemRepository interface {
	Create(ctx context.Context, item *PracticeItem) error
	GetByID(ctx context.Context, id string) (*PracticeItem, error)
	ListByUser(ctx context.Context, userID string, includeArchived bool) ([]*PracticeItem, error)
	Archive(ctx context.Context, userID, id string, now time.Time) error
}

// SessionRepository persists practice sessions.
type SessionRepository interface {
	// Create returns a DUPLICATE_SESSION error when the session hash already exists.
	Create(ctx context.Context, session *PracticeSession) error
	GetByID(ctx context.Context, id string) (*PracticeSession, error)
	// LatestForItem returns the most recent session of the item, or nil.
	LatestForItem(ctx context.Context, userID, practiceItemID string) (*PracticeSession, error)
	CountLongSessions(ctx context.Context, userID string, minMinutes int) (int, error)
	CountImprovements(ctx context.Context, userID string) (int, error)
}

// BadgeRepository persists badge definitions.
type BadgeRepository interface {
	// ListActive returns active definitions ordered by display_order, badge_key.
	ListActive(ctx context.Context) ([]*Badge, error)
	List(ctx context.Context) ([]*Badge, error)
	GetByKey(ctx context.Context, badgeKey string) (*Badge, error)
	Create(ctx context.Context, badge *Badge) error
	Update(ctx context.Context, badge *Badge) error
	Delete(ctx context.Context, badgeKey string) error
}

// UserBadgeRepository persists earned badges.
type UserBadgeRepository interface {
	EarnedKeys(ctx context.Context, userID string) (map[string]bool, error)
	// Insert reports false without error when the (user, badge) pair already exists.
	Insert(ctx context.Context, userBadge *UserBadge) (bool, error)
	ListEarned(ctx context.Context, userID string) ([]*EarnedBadge, error)
}

// GemTransactionRepository persists the gem ledger.
type GemTransactionRepository interface {
	Insert(ctx context.Context, tx *GemTransaction) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*GemTransaction, int, error)
	SumByUser(ctx context.Context, userID string) (int64, error)
}

// AdminRepository holds bulk maintenance operations.
type AdminRepository interface {
	// ClearAllUserData deletes every session, stats row, earned badge and gem
	// transaction. Badge definitions and practice items are kept.
	ClearAllUserData(ctx context.Context) (map[string]int64, error)
}
