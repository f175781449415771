package repository

import (
	"context"

	"practice-quest/internal/domain"
	"practice-quest/internal/repository/models"
	"practice-quest/internal/util"

	"github.com/jmoiron/sqlx"
)

const gemTransactionColumns = `id, user_id, transaction_type, amount, source, description, balance_after, created_at`

type sqlxGemTransactionRepository struct {
	db *sqlx.DB
}

// NewGemTransactionRepository creates a GemTransactionRepository backed by GEMS_TRANSACTIONS.
func NewGemTransactionRepository(db *sqlx.DB) domain.GemTransactionRepository {
	return &sqlxGemTransactionRepository{db: db}
}

func (r *sqlxGemTransactionRepository) Insert(ctx context.Context, tx *domain.GemTransaction) error {
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO gems_transactions (`+gemTransactionColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`,
		tx.ID, tx.UserID, string(tx.TransactionType), tx.Amount, tx.Source,
		util.StringToNullString(tx.Description), tx.BalanceAfter, tx.CreatedAt)
	if err != nil {
		return wrapDBError("insert gem transaction", err)
	}
	return nil
}

// ListByUser returns one page of the user's ledger, newest first, and the total row count.
func (r *sqlxGemTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.GemTransaction, int, error) {
	exec := GetExecutor(ctx, r.db)

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM gems_transactions WHERE user_id = :1`, userID); err != nil {
		return nil, 0, wrapDBError("count gem transactions", err)
	}

	var rows []models.GemTransaction
	err := exec.SelectContext(ctx, &rows,
		`SELECT `+gemTransactionColumns+` FROM gems_transactions WHERE user_id = :1
		ORDER BY created_at DESC, id DESC
		OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY`, userID, offset, limit)
	if err != nil {
		return nil, 0, wrapDBError("list gem transactions", err)
	}

	txs := make([]*domain.GemTransaction, len(rows))
	for i, row := range rows {
		txs[i] = &domain.GemTransaction{
			ID:              row.ID,
			UserID:          row.UserID,
			TransactionType: domain.GemTransactionType(row.TransactionType),
			Amount:          row.Amount,
			Source:          row.Source,
			Description:     row.Description.String,
			BalanceAfter:    row.BalanceAfter,
			CreatedAt:       row.CreatedAt,
		}
	}
	return txs, total, nil
}

func (r *sqlxGemTransactionRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &sum,
		`SELECT NVL(SUM(amount), 0) FROM gems_transactions WHERE user_id = :1`, userID); err != nil {
		return 0, wrapDBError("sum gem transactions", err)
	}
	return sum, nil
}
