package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/repository/models"
	"practice-quest/internal/util"

	"github.com/jmoiron/sqlx"
)

const practiceItemColumns = `id, user_id, name, description, is_active, created_at, updated_at`

type sqlxPracticeItemRepository struct {
	db *sqlx.DB
}

// NewPracticeItemRepository creates a PracticeItemRepository backed by PRACTICE_ITEMS.
func NewPracticeItemRepository(db *sqlx.DB) domain.PracticeItemRepository {
	return &sqlxPracticeItemRepository{db: db}
}

func toDomainPracticeItem(m *models.PracticeItem) *domain.PracticeItem {
	return &domain.PracticeItem{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description.String,
		IsActive:    bool(m.IsActive),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *sqlxPracticeItemRepository) Create(ctx context.Context, item *domain.PracticeItem) error {
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO practice_items (`+practiceItemColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7)`,
		item.ID, item.UserID, item.Name, util.StringToNullString(item.Description),
		models.OracleBool(item.IsActive), item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("a practice item with this name already exists", err).
				WithContext("name", item.Name)
		}
		return wrapDBError("create practice item", err)
	}
	return nil
}

// GetByID returns nil, nil when the item does not exist.
func (r *sqlxPracticeItemRepository) GetByID(ctx context.Context, id string) (*domain.PracticeItem, error) {
	var m models.PracticeItem
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, `SELECT `+practiceItemColumns+` FROM practice_items WHERE id = :1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("get practice item", err)
	}
	return toDomainPracticeItem(&m), nil
}

func (r *sqlxPracticeItemRepository) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]*domain.PracticeItem, error) {
	query := `SELECT ` + practiceItemColumns + ` FROM practice_items WHERE user_id = :1`
	if !includeArchived {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at, id`

	var rows []models.PracticeItem
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, wrapDBError("list practice items", err)
	}
	items := make([]*domain.PracticeItem, len(rows))
	for i := range rows {
		items[i] = toDomainPracticeItem(&rows[i])
	}
	return items, nil
}

func (r *sqlxPracticeItemRepository) Archive(ctx context.Context, userID, id string, now time.Time) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE practice_items SET is_active = 0, updated_at = :1 WHERE id = :2 AND user_id = :3`,
		now, id, userID)
	if err != nil {
		return wrapDBError("archive practice item", err)
	}
	return expectAffected(result, "practice item not found")
}
