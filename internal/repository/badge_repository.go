package repository

import (
	"context"
	"database/sql"
	"errors"

	"practice-quest/internal/domain"
	"practice-quest/internal/repository/models"
	"practice-quest/internal/util"

	"github.com/jmoiron/sqlx"
)

const badgeColumns = `badge_key, name, description, category, criteria_type, criteria_value,
	xp_reward, gem_reward, display_order, is_active, created_at, updated_at`

type sqlxBadgeRepository struct {
	db *sqlx.DB
}

// NewBadgeRepository creates a BadgeRepository backed by BADGES.
func NewBadgeRepository(db *sqlx.DB) domain.BadgeRepository {
	return &sqlxBadgeRepository{db: db}
}

func toDomainBadge(m *models.Badge) *domain.Badge {
	return &domain.Badge{
		BadgeKey:      m.BadgeKey,
		Name:          m.Name,
		Description:   m.Description.String,
		Category:      m.Category.String,
		CriteriaType:  m.CriteriaType,
		CriteriaValue: m.CriteriaValue,
		XPReward:      m.XPReward,
		GemReward:     m.GemReward,
		DisplayOrder:  m.DisplayOrder,
		IsActive:      bool(m.IsActive),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *sqlxBadgeRepository) selectBadges(ctx context.Context, query string, args ...interface{}) ([]*domain.Badge, error) {
	var rows []models.Badge
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDBError("list badges", err)
	}
	badges := make([]*domain.Badge, len(rows))
	for i := range rows {
		badges[i] = toDomainBadge(&rows[i])
	}
	return badges, nil
}

func (r *sqlxBadgeRepository) ListActive(ctx context.Context) ([]*domain.Badge, error) {
	return r.selectBadges(ctx, `SELECT `+badgeColumns+` FROM badges WHERE is_active = 1 ORDER BY display_order, badge_key`)
}

func (r *sqlxBadgeRepository) List(ctx context.Context) ([]*domain.Badge, error) {
	return r.selectBadges(ctx, `SELECT `+badgeColumns+` FROM badges ORDER BY display_order, badge_key`)
}

// GetByKey returns nil, nil when the badge does not exist.
func (r *sqlxBadgeRepository) GetByKey(ctx context.Context, badgeKey string) (*domain.Badge, error) {
	var m models.Badge
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, `SELECT `+badgeColumns+` FROM badges WHERE badge_key = :1`, badgeKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("get badge", err)
	}
	return toDomainBadge(&m), nil
}

func (r *sqlxBadgeRepository) Create(ctx context.Context, b *domain.Badge) error {
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO badges (`+badgeColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12)`,
		b.BadgeKey, b.Name, util.StringToNullString(b.Description), util.StringToNullString(b.Category),
		b.CriteriaType, b.CriteriaValue, b.XPReward, b.GemReward, b.DisplayOrder,
		models.OracleBool(b.IsActive), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("a badge with this key already exists", err).WithContext("badge_key", b.BadgeKey)
		}
		return wrapDBError("create badge", err)
	}
	return nil
}

func (r *sqlxBadgeRepository) Update(ctx context.Context, b *domain.Badge) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE badges SET name = :1, description = :2, category = :3, criteria_type = :4, criteria_value = :5,
		xp_reward = :6, gem_reward = :7, display_order = :8, is_active = :9, updated_at = :10
		WHERE badge_key = :11`,
		b.Name, util.StringToNullString(b.Description), util.StringToNullString(b.Category),
		b.CriteriaType, b.CriteriaValue, b.XPReward, b.GemReward, b.DisplayOrder,
		models.OracleBool(b.IsActive), b.UpdatedAt, b.BadgeKey)
	if err != nil {
		return wrapDBError("update badge", err)
	}
	return expectAffected(result, "badge not found")
}

// Delete refuses to remove a badge users have already earned; deactivate it instead.
func (r *sqlxBadgeRepository) Delete(ctx context.Context, badgeKey string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM badges WHERE badge_key = :1`, badgeKey)
	if err != nil {
		if isChildRecordFound(err) {
			return domain.NewConflictError("badge has already been earned; deactivate it instead", err).
				WithContext("badge_key", badgeKey)
		}
		return wrapDBError("delete badge", err)
	}
	return expectAffected(result, "badge not found")
}
