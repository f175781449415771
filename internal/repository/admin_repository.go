package repository

import (
	"context"

	"practice-quest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// clearOrder deletes children before parents. BADGES and PRACTICE_ITEMS are kept.
var clearOrder = []string{"gems_transactions", "user_badges", "practice_sessions", "user_stats"}

type sqlxAdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates the AdminRepository.
func NewAdminRepository(db *sqlx.DB) domain.AdminRepository {
	return &sqlxAdminRepository{db: db}
}

// ClearAllUserData uses DELETE rather than TRUNCATE so the caller's transaction can roll it back.
func (r *sqlxAdminRepository) ClearAllUserData(ctx context.Context) (map[string]int64, error) {
	exec := GetExecutor(ctx, r.db)
	deleted := make(map[string]int64, len(clearOrder))
	for _, table := range clearOrder {
		result, err := exec.ExecContext(ctx, `DELETE FROM `+table)
		if err != nil {
			return nil, wrapDBError("clear "+table, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, wrapDBError("get rows affected", err)
		}
		deleted[table] = n
	}
	return deleted, nil
}
