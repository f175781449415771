package service

import (
	"context"
	"fmt"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/logger"
	"practice-quest/internal/metrics"
	"practice-quest/internal/util"

	"go.uber.org/zap"
)

// GemEntry describes one ledger movement. Amount is always positive; the
// direction comes from Credit or Debit.
type GemEntry struct {
	Type        domain.GemTransactionType
	Amount      int64
	Source      string
	Description string
}

// GemLedgerService owns every change to a user's gem balance. Each change
// writes exactly one ledger row in the same transaction as the balance update.
type GemLedgerService interface {
	Credit(ctx context.Context, userID string, entry GemEntry) (*domain.GemTransaction, error)
	Debit(ctx context.Context, userID string, entry GemEntry) (*domain.GemTransaction, error)

	// CreditStats and DebitStats apply an entry to stats already locked by the
	// caller's transaction. The caller persists stats.
	CreditStats(ctx context.Context, stats *domain.UserStats, entry GemEntry) (*domain.GemTransaction, error)
	DebitStats(ctx context.Context, stats *domain.UserStats, entry GemEntry) (*domain.GemTransaction, error)

	Reconcile(ctx context.Context, userID string) (*domain.GemReconciliation, error)
	History(ctx context.Context, userID string, limit, offset int) ([]*domain.GemTransaction, int, error)
}

type gemLedgerServiceImpl struct {
	txManager domain.TransactionManager
	statsRepo domain.StatsRepository
	gemRepo   domain.GemTransactionRepository
	now       func() time.Time
}

// NewGemLedgerService creates a new instance of GemLedgerService.
func NewGemLedgerService(
	txManager domain.TransactionManager,
	statsRepo domain.StatsRepository,
	gemRepo domain.GemTransactionRepository,
) GemLedgerService {
	return &gemLedgerServiceImpl{
		txManager: txManager,
		statsRepo: statsRepo,
		gemRepo:   gemRepo,
		now:       time.Now,
	}
}

func validateEntry(entry GemEntry) error {
	if entry.Amount <= 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("gem amount must be positive, got %d", entry.Amount))
	}
	if entry.Source == "" {
		return domain.NewInvalidInputError("gem transaction source is required")
	}
	return nil
}

func (s *gemLedgerServiceImpl) Credit(ctx context.Context, userID string, entry GemEntry) (*domain.GemTransaction, error) {
	return s.apply(ctx, userID, entry, s.CreditStats)
}

func (s *gemLedgerServiceImpl) Debit(ctx context.Context, userID string, entry GemEntry) (*domain.GemTransaction, error) {
	return s.apply(ctx, userID, entry, s.DebitStats)
}

// apply locks the user's stats, runs fn and persists the new balance. When
// ctx already carries a transaction the work joins it.
func (s *gemLedgerServiceImpl) apply(
	ctx context.Context,
	userID string,
	entry GemEntry,
	fn func(context.Context, *domain.UserStats, GemEntry) (*domain.GemTransaction, error),
) (*domain.GemTransaction, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	var result *domain.GemTransaction
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		stats, err := s.statsRepo.LockOrCreate(txCtx, userID, s.now())
		if err != nil {
			return err
		}
		result, err = fn(txCtx, stats, entry)
		if err != nil {
			return err
		}
		return s.statsRepo.Update(txCtx, stats)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *gemLedgerServiceImpl) CreditStats(ctx context.Context, stats *domain.UserStats, entry GemEntry) (*domain.GemTransaction, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	return s.write(ctx, stats, entry, entry.Amount)
}

func (s *gemLedgerServiceImpl) DebitStats(ctx context.Context, stats *domain.UserStats, entry GemEntry) (*domain.GemTransaction, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	if stats.GemsBalance < entry.Amount {
		return nil, domain.NewInsufficientBalanceError(stats.GemsBalance, entry.Amount)
	}
	return s.write(ctx, stats, entry, -entry.Amount)
}

func (s *gemLedgerServiceImpl) write(ctx context.Context, stats *domain.UserStats, entry GemEntry, signed int64) (*domain.GemTransaction, error) {
	now := s.now()
	tx := &domain.GemTransaction{
		ID:              util.NewULID(),
		UserID:          stats.UserID,
		TransactionType: entry.Type,
		Amount:          signed,
		Source:          entry.Source,
		Description:     entry.Description,
		BalanceAfter:    stats.GemsBalance + signed,
		CreatedAt:       now,
	}
	if err := s.gemRepo.Insert(ctx, tx); err != nil {
		logger.Get().Error("Failed to insert gem transaction",
			zap.String("user_id", stats.UserID),
			zap.String("type", string(entry.Type)),
			zap.Int64("amount", signed),
			zap.Error(err))
		return nil, err
	}

	stats.GemsBalance = tx.BalanceAfter
	stats.UpdatedAt = now
	metrics.GemsMoved.WithLabelValues(string(entry.Type)).Add(float64(entry.Amount))
	return tx, nil
}

// Reconcile compares user_stats.gems_balance against the ledger sum.
func (s *gemLedgerServiceImpl) Reconcile(ctx context.Context, userID string) (*domain.GemReconciliation, error) {
	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var stored int64
	if stats != nil {
		stored = stats.GemsBalance
	}
	sum, err := s.gemRepo.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := &domain.GemReconciliation{
		UserID:        userID,
		StatsBalance:  stored,
		LedgerBalance: sum,
		InSync:        stored == sum,
	}
	if !rec.InSync {
		logger.Get().Warn("Gem balance out of sync with ledger",
			zap.String("user_id", userID),
			zap.Int64("stats_balance", stored),
			zap.Int64("ledger_balance", sum))
	}
	return rec, nil
}

// DefaultHistoryLimit is the page size used when the caller sends none.
const (
	DefaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

func (s *gemLedgerServiceImpl) History(ctx context.Context, userID string, limit, offset int) ([]*domain.GemTransaction, int, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.gemRepo.ListByUser(ctx, userID, limit, offset)
}
