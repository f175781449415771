package service

import (
	"context"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/logger"
	"practice-quest/internal/metrics"

	"go.uber.org/zap"
)

// BadgeEngine evaluates badge definitions against a user's progress and
// manages the definitions themselves.
type BadgeEngine interface {
	// EvaluateAndAward must run inside the caller's transaction with stats
	// locked. It mutates stats (XP, gems, badges_earned) but does not persist
	// it and does not recompute the level.
	EvaluateAndAward(ctx context.Context, stats *domain.UserStats, history domain.SessionHistory) ([]string, error)

	ListEarned(ctx context.Context, userID string) ([]*domain.EarnedBadge, error)

	ListBadges(ctx context.Context) ([]*domain.Badge, error)
	CreateBadge(ctx context.Context, badge *domain.Badge) (*domain.Badge, error)
	UpdateBadge(ctx context.Context, badge *domain.Badge) (*domain.Badge, error)
	DeleteBadge(ctx context.Context, badgeKey string) error
}

type badgeEngineImpl struct {
	badgeRepo     domain.BadgeRepository
	userBadgeRepo domain.UserBadgeRepository
	ledger        GemLedgerService
	rules         domain.GamificationRules
	now           func() time.Time
}

// NewBadgeEngine creates a new instance of BadgeEngine.
func NewBadgeEngine(
	badgeRepo domain.BadgeRepository,
	userBadgeRepo domain.UserBadgeRepository,
	ledger GemLedgerService,
	rules domain.GamificationRules,
) BadgeEngine {
	return &badgeEngineImpl{
		badgeRepo:     badgeRepo,
		userBadgeRepo: userBadgeRepo,
		ledger:        ledger,
		rules:         rules,
		now:           time.Now,
	}
}

// EvaluateAndAward walks active definitions in display order. Rewards of an
// earlier badge count towards later ones in the same pass.
func (e *badgeEngineImpl) EvaluateAndAward(ctx context.Context, stats *domain.UserStats, history domain.SessionHistory) ([]string, error) {
	badges, err := e.badgeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := e.userBadgeRepo.EarnedKeys(ctx, stats.UserID)
	if err != nil {
		return nil, err
	}

	awarded := []string{}
	for _, badge := range badges {
		if earned[badge.BadgeKey] {
			continue
		}
		criteria, err := badge.Criteria()
		if err != nil {
			logger.Get().Warn("Skipping badge with unknown criteria",
				zap.String("badge_key", badge.BadgeKey),
				zap.String("criteria_type", badge.CriteriaType),
				zap.Int64("criteria_value", badge.CriteriaValue))
			continue
		}
		if !domain.Qualifies(criteria, stats, history, e.rules) {
			continue
		}

		ok, err := e.award(ctx, stats, badge)
		if err != nil {
			return nil, err
		}
		if ok {
			awarded = append(awarded, badge.BadgeKey)
			earned[badge.BadgeKey] = true
		}
	}
	return awarded, nil
}

// award inserts the UserBadge and grants its rewards. It reports false when a
// concurrent evaluation already holds the (user, badge) pair.
func (e *badgeEngineImpl) award(ctx context.Context, stats *domain.UserStats, badge *domain.Badge) (bool, error) {
	now := e.now()
	inserted, err := e.userBadgeRepo.Insert(ctx, &domain.UserBadge{
		UserID:   stats.UserID,
		BadgeKey: badge.BadgeKey,
		EarnedAt: now,
	})
	if err != nil {
		return false, err
	}
	if !inserted {
		logger.Get().Debug("Badge already awarded by a concurrent evaluation",
			zap.String("user_id", stats.UserID),
			zap.String("badge_key", badge.BadgeKey))
		return false, nil
	}

	if badge.XPReward > 0 {
		stats.TotalXP += badge.XPReward
		metrics.XPAwarded.WithLabelValues("badge").Add(float64(badge.XPReward))
	}
	if badge.GemReward > 0 {
		_, err := e.ledger.CreditStats(ctx, stats, GemEntry{
			Type:        domain.GemTxBadgeReward,
			Amount:      badge.GemReward,
			Source:      badge.BadgeKey,
			Description: "Badge reward: " + badge.Name,
		})
		if err != nil {
			return false, err
		}
	}
	stats.BadgesEarned++
	stats.UpdatedAt = now

	metrics.BadgesAwarded.WithLabelValues(badge.BadgeKey).Inc()
	logger.Get().Info("Badge awarded",
		zap.String("user_id", stats.UserID),
		zap.String("badge_key", badge.BadgeKey),
		zap.Int64("xp_reward", badge.XPReward),
		zap.Int64("gem_reward", badge.GemReward))
	return true, nil
}

func (e *badgeEngineImpl) ListEarned(ctx context.Context, userID string) ([]*domain.EarnedBadge, error) {
	return e.userBadgeRepo.ListEarned(ctx, userID)
}

func (e *badgeEngineImpl) ListBadges(ctx context.Context) ([]*domain.Badge, error) {
	return e.badgeRepo.List(ctx)
}

func (e *badgeEngineImpl) CreateBadge(ctx context.Context, badge *domain.Badge) (*domain.Badge, error) {
	if errs := badge.Validate(); len(errs) > 0 {
		return nil, errs
	}
	now := e.now()
	badge.CreatedAt = now
	badge.UpdatedAt = now
	if err := e.badgeRepo.Create(ctx, badge); err != nil {
		return nil, err
	}
	logger.Get().Info("Badge definition created",
		zap.String("badge_key", badge.BadgeKey),
		zap.String("criteria_type", badge.CriteriaType))
	return badge, nil
}

func (e *badgeEngineImpl) UpdateBadge(ctx context.Context, badge *domain.Badge) (*domain.Badge, error) {
	if errs := badge.Validate(); len(errs) > 0 {
		return nil, errs
	}
	existing, err := e.badgeRepo.GetByKey(ctx, badge.BadgeKey)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("badge not found").WithContext("badge_key", badge.BadgeKey)
	}
	badge.CreatedAt = existing.CreatedAt
	badge.UpdatedAt = e.now()
	if err := e.badgeRepo.Update(ctx, badge); err != nil {
		return nil, err
	}
	return badge, nil
}

// DeleteBadge removes a definition nobody has earned. Earned badges keep
// their history, so the repository answers CONFLICT for those.
func (e *badgeEngineImpl) DeleteBadge(ctx context.Context, badgeKey string) error {
	if err := e.badgeRepo.Delete(ctx, badgeKey); err != nil {
		return err
	}
	logger.Get().Info("Badge definition deleted", zap.String("badge_key", badgeKey))
	return nil
}
