package repository

import (
	"context"

	"practice-quest/internal/domain"
	"practice-quest/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxUserBadgeRepository struct {
	db *sqlx.DB
}

// NewUserBadgeRepository creates a UserBadgeRepository backed by USER_BADGES.
func NewUserBadgeRepository(db *sqlx.DB) domain.UserBadgeRepository {
	return &sqlxUserBadgeRepository{db: db}
}

func (r *sqlxUserBadgeRepository) EarnedKeys(ctx context.Context, userID string) (map[string]bool, error) {
	var keys []string
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &keys, `SELECT badge_key FROM user_badges WHERE user_id = :1`, userID); err != nil {
		return nil, wrapDBError("list earned badge keys", err)
	}
	earned := make(map[string]bool, len(keys))
	for _, k := range keys {
		earned[k] = true
	}
	return earned, nil
}

// Insert uses the (user_id, badge_key) primary key as the award guard: a
// concurrent evaluation that already inserted the pair makes this a no-op.
func (r *sqlxUserBadgeRepository) Insert(ctx context.Context, ub *domain.UserBadge) (bool, error) {
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO user_badges (user_id, badge_key, earned_at) VALUES (:1, :2, :3)`,
		ub.UserID, ub.BadgeKey, ub.EarnedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, wrapDBError("insert user badge", err)
	}
	return true, nil
}

func (r *sqlxUserBadgeRepository) ListEarned(ctx context.Context, userID string) ([]*domain.EarnedBadge, error) {
	var rows []models.EarnedBadge
	err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows,
		`SELECT ub.badge_key, b.name, b.description, b.category, b.is_active, ub.earned_at
		FROM user_badges ub JOIN badges b ON b.badge_key = ub.badge_key
		WHERE ub.user_id = :1
		ORDER BY ub.earned_at, ub.badge_key`, userID)
	if err != nil {
		return nil, wrapDBError("list earned badges", err)
	}
	earned := make([]*domain.EarnedBadge, len(rows))
	for i, row := range rows {
		earned[i] = &domain.EarnedBadge{
			BadgeKey:    row.BadgeKey,
			Name:        row.Name,
			Description: row.Description.String,
			Category:    row.Category.String,
			IsActive:    bool(row.IsActive),
			EarnedAt:    row.EarnedAt,
		}
	}
	return earned, nil
}
