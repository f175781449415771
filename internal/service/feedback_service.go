package service

import (
	"context"
	"time"

	"practice-quest/internal/cache"
	"practice-quest/internal/config"
	"practice-quest/internal/domain"
	"practice-quest/internal/logger"

	"go.uber.org/zap"
)

// quotaKeyTTL outlives one calendar day in any timezone.
const quotaKeyTTL = 26 * time.Hour

// FeedbackService produces AI coaching for a recorded session. It runs
// outside the recording transaction and never changes stats.
type FeedbackService interface {
	GenerateFeedback(ctx context.Context, userID, sessionID string) (*domain.PracticeFeedback, error)
}

type feedbackServiceImpl struct {
	generator   domain.FeedbackGenerator
	sessionRepo domain.SessionRepository
	itemRepo    domain.PracticeItemRepository
	statsRepo   domain.StatsRepository
	cache       domain.Cache
	cfg         config.FeedbackConfig
	loc         *time.Location
	now         func() time.Time
}

// NewFeedbackService creates a new instance of FeedbackService. generator may
// be nil when feedback is disabled.
func NewFeedbackService(
	generator domain.FeedbackGenerator,
	sessionRepo domain.SessionRepository,
	itemRepo domain.PracticeItemRepository,
	statsRepo domain.StatsRepository,
	cache domain.Cache,
	cfg config.FeedbackConfig,
	loc *time.Location,
) FeedbackService {
	if loc == nil {
		loc = time.UTC
	}
	return &feedbackServiceImpl{
		generator:   generator,
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		statsRepo:   statsRepo,
		cache:       cache,
		cfg:         cfg,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *feedbackServiceImpl) GenerateFeedback(ctx context.Context, userID, sessionID string) (*domain.PracticeFeedback, error) {
	if !s.cfg.Enabled || s.generator == nil {
		return nil, domain.NewError(domain.CodeLLMServiceError, "practice feedback is disabled", nil)
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, domain.NewNotFoundError("practice session not found").WithContext("session_id", sessionID)
	}

	if err := s.consumeQuota(ctx, userID); err != nil {
		return nil, err
	}

	req := domain.FeedbackRequest{
		DurationMinutes:     session.DurationMinutes,
		SentimentScore:      session.SentimentScore,
		Notes:               session.Notes,
		ImprovementDetected: session.ImprovementDetected,
	}
	item, err := s.itemRepo.GetByID(ctx, session.PracticeItemID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		req.ItemName = item.Name
	}
	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		req.CurrentStreak = stats.CurrentStreak
	}

	feedback, err := s.generator.GenerateFeedback(ctx, req)
	if err != nil {
		logger.Get().Error("Feedback generation failed",
			zap.String("user_id", userID),
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, err
	}
	feedback.SessionID = sessionID
	return feedback, nil
}

// consumeQuota counts today's requests in redis. An unreachable cache lets
// the request through rather than blocking feedback.
func (s *feedbackServiceImpl) consumeQuota(ctx context.Context, userID string) error {
	if s.cache == nil || s.cfg.DailyQuota <= 0 {
		return nil
	}
	day := domain.CalendarDay(s.now(), s.loc).Format("2006-01-02")
	key := cache.FeedbackQuotaKey(userID, day)

	count, err := s.cache.Incr(ctx, key)
	if err != nil {
		logger.Get().Warn("Feedback quota check failed, allowing request", zap.String("key", key), zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, quotaKeyTTL); err != nil {
			logger.Get().Warn("Failed to set feedback quota expiry", zap.String("key", key), zap.Error(err))
		}
	}
	if count > s.cfg.DailyQuota {
		return domain.NewFeedbackQuotaExceededError(s.cfg.DailyQuota)
	}
	return nil
}
