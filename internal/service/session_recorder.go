package service

import (
	"context"
	"strings"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
	"practice-quest/internal/logger"
	"practice-quest/internal/metrics"
	"practice-quest/internal/util"
	"practice-quest/internal/validation"

	"go.uber.org/zap"
)

// SessionRecorder logs a practice session and applies every consequence of
// it (XP, level, streak, badges, gems) atomically.
type SessionRecorder interface {
	RecordSession(ctx context.Context, userID string, req *dto.RecordSessionRequest) (*dto.RecordSessionResponse, error)
}

type sessionRecorderImpl struct {
	txManager   domain.TransactionManager
	statsRepo   domain.StatsRepository
	itemRepo    domain.PracticeItemRepository
	sessionRepo domain.SessionRepository
	streaks     StreakService
	badges      BadgeEngine
	cache       domain.Cache
	validator   *validation.Validator
	rules       domain.GamificationRules
	loc         *time.Location
	now         func() time.Time
}

// NewSessionRecorder creates a new instance of SessionRecorder.
func NewSessionRecorder(
	txManager domain.TransactionManager,
	statsRepo domain.StatsRepository,
	itemRepo domain.PracticeItemRepository,
	sessionRepo domain.SessionRepository,
	streaks StreakService,
	badges BadgeEngine,
	cache domain.Cache,
	rules domain.GamificationRules,
	loc *time.Location,
) SessionRecorder {
	if loc == nil {
		loc = time.UTC
	}
	return &sessionRecorderImpl{
		txManager:   txManager,
		statsRepo:   statsRepo,
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
		streaks:     streaks,
		badges:      badges,
		cache:       cache,
		validator:   validation.NewValidator(),
		rules:       rules,
		loc:         loc,
		now:         time.Now,
	}
}

func (r *sessionRecorderImpl) RecordSession(ctx context.Context, userID string, req *dto.RecordSessionRequest) (*dto.RecordSessionResponse, error) {
	if errs := r.validator.ValidateRecordSession(req); len(errs) > 0 {
		return nil, errs
	}

	item, err := r.itemRepo.GetByID(ctx, req.PracticeItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID || !item.IsActive {
		return nil, domain.NewNotFoundError("practice item not found").WithContext("practice_item_id", req.PracticeItemID)
	}

	now := r.now()
	hash := util.SessionHash(userID, item.ID, req.DurationMinutes, req.SentimentScore, domain.CalendarDay(now, r.loc))

	var resp *dto.RecordSessionResponse
	attempt := func() error {
		return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			var err error
			resp, err = r.record(txCtx, userID, req, hash, now)
			return err
		})
	}

	err = attempt()
	if domain.HasCode(err, domain.CodeConcurrencyConflict) {
		metrics.ConcurrencyRetries.WithLabelValues("record_session").Inc()
		logger.Get().Warn("Retrying session after concurrency conflict",
			zap.String("user_id", userID),
			zap.Error(err))
		err = attempt()
	}
	if err != nil {
		if !domain.HasCode(err, domain.CodeDuplicateSession) {
			logger.Get().Error("Failed to record practice session",
				zap.String("user_id", userID),
				zap.String("practice_item_id", item.ID),
				zap.Error(err))
		}
		return nil, err
	}

	invalidateUserStats(ctx, r.cache, userID)
	metrics.SessionsRecorded.Inc()
	metrics.XPAwarded.WithLabelValues("session").Add(float64(resp.XPEarned))
	logger.Get().Info("Practice session recorded",
		zap.String("user_id", userID),
		zap.String("session_id", resp.SessionID),
		zap.Int64("xp_earned", resp.XPEarned),
		zap.Int("level", resp.NewLevel),
		zap.Int("streak", resp.CurrentStreak),
		zap.Strings("badges", resp.NewlyAwardedBadges))
	return resp, nil
}

// record runs inside the transaction. The stats row lock taken first
// serialises concurrent sessions of the same user.
func (r *sessionRecorderImpl) record(ctx context.Context, userID string, req *dto.RecordSessionRequest, hash string, now time.Time) (*dto.RecordSessionResponse, error) {
	stats, err := r.statsRepo.LockOrCreate(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	levelBefore := stats.CurrentLevel
	var previousDay *time.Time
	if stats.LastPracticeDate != nil {
		d := *stats.LastPracticeDate
		previousDay = &d
	}

	previous, err := r.sessionRepo.LatestForItem(ctx, userID, req.PracticeItemID)
	if err != nil {
		return nil, err
	}
	improved := req.SentimentScore != nil && previous != nil && previous.SentimentScore != nil &&
		*req.SentimentScore > *previous.SentimentScore

	xp := r.rules.SessionXP(req.DurationMinutes, req.SentimentScore)
	session := &domain.PracticeSession{
		ID:                  util.NewULID(),
		UserID:              userID,
		PracticeItemID:      req.PracticeItemID,
		DurationMinutes:     req.DurationMinutes,
		SentimentScore:      req.SentimentScore,
		ImprovementDetected: improved,
		Notes:               strings.TrimSpace(req.Notes),
		XPEarned:            xp,
		SessionHash:         hash,
		CreatedAt:           now,
	}
	if err := r.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	stats.TotalSessions++
	stats.TotalMinutes += req.DurationMinutes
	stats.TotalXP += xp

	streak := r.streaks.ApplyPractice(stats, now)

	history, err := r.history(ctx, userID, previousDay, now)
	if err != nil {
		return nil, err
	}
	awarded, err := r.badges.EvaluateAndAward(ctx, stats, history)
	if err != nil {
		return nil, err
	}

	// the level never drops, even if the curve is reconfigured
	if level := r.rules.LevelForXP(stats.TotalXP); level > stats.CurrentLevel {
		stats.CurrentLevel = level
	}
	stats.UpdatedAt = now
	if err := r.statsRepo.Update(ctx, stats); err != nil {
		return nil, err
	}

	return &dto.RecordSessionResponse{
		Success:             true,
		SessionID:           session.ID,
		XPEarned:            xp,
		NewTotalXP:          stats.TotalXP,
		NewLevel:            stats.CurrentLevel,
		LeveledUp:           stats.CurrentLevel > levelBefore,
		NewlyAwardedBadges:  awarded,
		CurrentStreak:       streak.CurrentStreak,
		LongestStreak:       streak.LongestStreak,
		ShieldConsumed:      streak.ShieldConsumed,
		ImprovementDetected: improved,
		GemsBalance:         stats.GemsBalance,
	}, nil
}

// history counts include the session inserted in the current transaction.
func (r *sessionRecorderImpl) history(ctx context.Context, userID string, previousDay *time.Time, now time.Time) (domain.SessionHistory, error) {
	longSessions, err := r.sessionRepo.CountLongSessions(ctx, userID, r.rules.LongSessionMinutes)
	if err != nil {
		return domain.SessionHistory{}, err
	}
	improvements, err := r.sessionRepo.CountImprovements(ctx, userID)
	if err != nil {
		return domain.SessionHistory{}, err
	}

	h := domain.SessionHistory{
		LongSessionCount: longSessions,
		ImprovementCount: improvements,
		LatestSessionAt:  now.In(r.loc),
	}
	if previousDay != nil {
		h.HasPreviousPractice = true
		h.DaysSincePreviousPractice = domain.DaysBetween(*previousDay, domain.CalendarDay(now, r.loc))
	}
	return h, nil
}
