package service

import (
	"context"
	"strings"

	"practice-quest/internal/cache"
	"practice-quest/internal/domain"
	"practice-quest/internal/logger"

	"go.uber.org/zap"
)

// AdminService holds destructive maintenance operations.
type AdminService interface {
	// ClearAllUserData wipes sessions, stats, earned badges and the gem
	// ledger. Badge definitions and practice items survive.
	ClearAllUserData(ctx context.Context) (deleted map[string]int64, cacheKeys int64, err error)

	// AdjustGems credits a positive amount or debits a negative one through
	// the ledger, recording the admin as the source.
	AdjustGems(ctx context.Context, adminID, userID string, amount int64, reason string) (*domain.GemTransaction, error)
	ReconcileGems(ctx context.Context, userID string) (*domain.GemReconciliation, error)
}

type adminServiceImpl struct {
	txManager domain.TransactionManager
	adminRepo domain.AdminRepository
	ledger    GemLedgerService
	cache     domain.Cache
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(
	txManager domain.TransactionManager,
	adminRepo domain.AdminRepository,
	ledger GemLedgerService,
	cache domain.Cache,
) AdminService {
	return &adminServiceImpl{txManager: txManager, adminRepo: adminRepo, ledger: ledger, cache: cache}
}

func (s *adminServiceImpl) ClearAllUserData(ctx context.Context) (map[string]int64, int64, error) {
	var deleted map[string]int64
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.adminRepo.ClearAllUserData(txCtx)
		return err
	})
	if err != nil {
		logger.Get().Error("Failed to clear user data", zap.Error(err))
		return nil, 0, err
	}

	var keys int64
	if s.cache != nil {
		keys, err = s.cache.DeleteByPrefix(ctx, cache.ServicePrefix(cache.ServiceStats))
		if err != nil {
			// rows are gone already; stale entries expire with their TTL
			logger.Get().Warn("Failed to drop cached stats after reset", zap.Error(err))
		}
	}

	logger.Get().Warn("All user gamification data cleared",
		zap.Any("deleted_rows", deleted),
		zap.Int64("cache_keys_deleted", keys))
	return deleted, keys, nil
}

func (s *adminServiceImpl) AdjustGems(ctx context.Context, adminID, userID string, amount int64, reason string) (*domain.GemTransaction, error) {
	var errs domain.ValidationErrors
	if strings.TrimSpace(userID) == "" {
		errs = append(errs, domain.NewMissingFieldError("user_id"))
	}
	if amount == 0 {
		errs = append(errs, domain.NewInvalidFormatError("amount", amount))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		errs = append(errs, domain.NewMissingFieldError("reason"))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	entry := GemEntry{
		Type:        domain.GemTxCredit,
		Amount:      amount,
		Source:      "admin:" + adminID,
		Description: reason,
	}
	apply := s.ledger.Credit
	if amount < 0 {
		entry.Type = domain.GemTxDebit
		entry.Amount = -amount
		apply = s.ledger.Debit
	}

	tx, err := apply(ctx, userID, entry)
	if err != nil {
		return nil, err
	}
	invalidateUserStats(ctx, s.cache, userID)

	logger.Get().Warn("Admin adjusted gem balance",
		zap.String("admin_id", adminID),
		zap.String("user_id", userID),
		zap.Int64("amount", amount),
		zap.Int64("balance_after", tx.BalanceAfter))
	return tx, nil
}

func (s *adminServiceImpl) ReconcileGems(ctx context.Context, userID string) (*domain.GemReconciliation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("user_id")}
	}
	return s.ledger.Reconcile(ctx, userID)
}
