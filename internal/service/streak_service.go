package service

import (
	"context"
	"time"

	"practice-quest/internal/config"
	"practice-quest/internal/domain"
	"practice-quest/internal/logger"
	"practice-quest/internal/metrics"

	"go.uber.org/zap"
)

// StreakService tracks consecutive practice days and sells the items that
// protect them.
type StreakService interface {
	// ApplyPractice advances locked stats for a practice at the given instant.
	// Used inside the session recorder's transaction.
	ApplyPractice(stats *domain.UserStats, practicedAt time.Time) domain.StreakResult
	UpdateStreak(ctx context.Context, userID string, practicedAt time.Time) (domain.StreakResult, error)

	PurchaseShield(ctx context.Context, userID string) (*domain.UserStats, error)
	RecoverStreak(ctx context.Context, userID string) (*domain.UserStats, error)
	ResetWeeklyRecoveries(ctx context.Context) (int64, error)
}

type streakServiceImpl struct {
	txManager domain.TransactionManager
	statsRepo domain.StatsRepository
	ledger    GemLedgerService
	cache     domain.Cache
	cfg       config.GamificationConfig
	loc       *time.Location
	now       func() time.Time
}

// NewStreakService creates a new instance of StreakService.
func NewStreakService(
	txManager domain.TransactionManager,
	statsRepo domain.StatsRepository,
	ledger GemLedgerService,
	cache domain.Cache,
	cfg config.GamificationConfig,
	loc *time.Location,
) StreakService {
	if loc == nil {
		loc = time.UTC
	}
	return &streakServiceImpl{
		txManager: txManager,
		statsRepo: statsRepo,
		ledger:    ledger,
		cache:     cache,
		cfg:       cfg,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *streakServiceImpl) ApplyPractice(stats *domain.UserStats, practicedAt time.Time) domain.StreakResult {
	result := domain.ApplyStreak(stats, domain.CalendarDay(practicedAt, s.loc))
	if result.ShieldConsumed {
		metrics.ShieldsConsumed.Inc()
		logger.Get().Info("Streak shield consumed",
			zap.String("user_id", stats.UserID),
			zap.Int("current_streak", result.CurrentStreak),
			zap.Int("shields_left", stats.StreakShieldCount))
	}
	return result
}

func (s *streakServiceImpl) UpdateStreak(ctx context.Context, userID string, practicedAt time.Time) (domain.StreakResult, error) {
	var result domain.StreakResult
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		stats, err := s.statsRepo.LockOrCreate(txCtx, userID, s.now())
		if err != nil {
			return err
		}
		result = s.ApplyPractice(stats, practicedAt)
		stats.UpdatedAt = s.now()
		return s.statsRepo.Update(txCtx, stats)
	})
	if err != nil {
		return domain.StreakResult{}, err
	}
	invalidateUserStats(ctx, s.cache, userID)
	return result, nil
}

// PurchaseShield debits the shield price and adds one shield, up to the cap.
func (s *streakServiceImpl) PurchaseShield(ctx context.Context, userID string) (*domain.UserStats, error) {
	var updated *domain.UserStats
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		stats, err := s.statsRepo.LockOrCreate(txCtx, userID, s.now())
		if err != nil {
			return err
		}
		if stats.StreakShieldCount >= s.cfg.ShieldCap {
			return domain.NewShieldCapReachedError(s.cfg.ShieldCap)
		}
		if _, err := s.ledger.DebitStats(txCtx, stats, GemEntry{
			Type:        domain.GemTxShieldPurchase,
			Amount:      s.cfg.ShieldPrice,
			Source:      "streak_shield",
			Description: "Streak shield purchase",
		}); err != nil {
			return err
		}
		stats.StreakShieldCount++
		stats.UpdatedAt = s.now()
		if err := s.statsRepo.Update(txCtx, stats); err != nil {
			return err
		}
		updated = stats
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateUserStats(ctx, s.cache, userID)
	logger.Get().Info("Streak shield purchased",
		zap.String("user_id", userID),
		zap.Int("shield_count", updated.StreakShieldCount),
		zap.Int64("gems_balance", updated.GemsBalance))
	return updated, nil
}

// RecoverStreak repairs a streak broken by missed days still inside the
// recovery window. The streak length is kept and the last practice date is
// moved to yesterday, so practising today continues the streak.
func (s *streakServiceImpl) RecoverStreak(ctx context.Context, userID string) (*domain.UserStats, error) {
	var updated *domain.UserStats
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		now := s.now()
		stats, err := s.statsRepo.LockOrCreate(txCtx, userID, now)
		if err != nil {
			return err
		}
		today := domain.CalendarDay(now, s.loc)
		if err := s.checkRecoverable(stats, today); err != nil {
			return err
		}

		if _, err := s.ledger.DebitStats(txCtx, stats, GemEntry{
			Type:        domain.GemTxStreakRecovery,
			Amount:      s.cfg.RecoveryPrice,
			Source:      "streak_recovery",
			Description: "Streak recovery",
		}); err != nil {
			return err
		}

		count := s.recoveriesThisWeek(stats, today) + 1
		yesterday := today.AddDate(0, 0, -1)
		stats.LastPracticeDate = &yesterday
		stats.LastStreakRecoveryDate = &today
		stats.StreakRecoveryCountThisWeek = count
		stats.UpdatedAt = now
		if err := s.statsRepo.Update(txCtx, stats); err != nil {
			return err
		}
		updated = stats
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateUserStats(ctx, s.cache, userID)
	logger.Get().Info("Streak recovered",
		zap.String("user_id", userID),
		zap.Int("current_streak", updated.CurrentStreak),
		zap.Int("recoveries_this_week", updated.StreakRecoveryCountThisWeek))
	return updated, nil
}

func (s *streakServiceImpl) checkRecoverable(stats *domain.UserStats, today time.Time) error {
	if stats.CurrentStreak == 0 || stats.LastPracticeDate == nil {
		return domain.NewStreakNotRecoverableError("there is no streak to recover")
	}
	gap := domain.DaysBetween(*stats.LastPracticeDate, today)
	if gap <= 1 {
		return domain.NewStreakNotRecoverableError("streak is not broken")
	}
	if gap > s.cfg.RecoveryWindowDays {
		return domain.NewStreakNotRecoverableError("streak broke outside the recovery window").
			WithContext("days_since_practice", gap).
			WithContext("recovery_window_days", s.cfg.RecoveryWindowDays)
	}
	if s.recoveriesThisWeek(stats, today) >= s.cfg.MaxRecoveriesPerWeek {
		return domain.NewRecoveryLimitReachedError(s.cfg.MaxRecoveriesPerWeek)
	}
	return nil
}

// recoveriesThisWeek trusts the stored counter only while the last recovery
// falls in the current ISO week, so a missed Monday reset never blocks a user.
func (s *streakServiceImpl) recoveriesThisWeek(stats *domain.UserStats, today time.Time) int {
	if stats.LastStreakRecoveryDate == nil {
		return 0
	}
	y1, w1 := stats.LastStreakRecoveryDate.ISOWeek()
	y2, w2 := today.ISOWeek()
	if y1 != y2 || w1 != w2 {
		return 0
	}
	return stats.StreakRecoveryCountThisWeek
}

func (s *streakServiceImpl) ResetWeeklyRecoveries(ctx context.Context) (int64, error) {
	n, err := s.statsRepo.ResetWeeklyRecoveryCounts(ctx)
	if err != nil {
		logger.Get().Error("Failed to reset weekly streak recoveries", zap.Error(err))
		return 0, err
	}
	if n > 0 && s.cache != nil {
		if _, err := s.cache.DeleteByPrefix(ctx, userStatsPrefix()); err != nil {
			logger.Get().Warn("Failed to drop cached stats after weekly reset", zap.Error(err))
		}
	}
	logger.Get().Info("Weekly streak recovery counters reset", zap.Int64("users", n))
	return n, nil
}
