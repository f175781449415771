package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"practice-quest/internal/cache"
	"practice-quest/internal/config"
	"practice-quest/internal/domain"
	"practice-quest/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxLeaderboardSize = 100

// StatsService serves read models of user stats. Reads go through redis and
// concurrent misses for the same key share one database query.
type StatsService interface {
	// GetStats returns the user's stats, or the defaults when the user has
	// not practised yet.
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
	XPForNextLevel(stats *domain.UserStats) int64
	Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
	SetLeaderboardVisibility(ctx context.Context, userID string, visible bool) error
}

type statsServiceImpl struct {
	txManager domain.TransactionManager
	statsRepo domain.StatsRepository
	cache     domain.Cache
	rules     domain.GamificationRules
	ttls      config.CacheTTLConfig
	boardSize int
	sfGroup   singleflight.Group
	now       func() time.Time
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(
	txManager domain.TransactionManager,
	statsRepo domain.StatsRepository,
	cache domain.Cache,
	rules domain.GamificationRules,
	ttls config.CacheTTLConfig,
	leaderboardSize int,
) StatsService {
	if leaderboardSize <= 0 {
		leaderboardSize = 10
	}
	return &statsServiceImpl{
		txManager: txManager,
		statsRepo: statsRepo,
		cache:     cache,
		rules:     rules,
		ttls:      ttls,
		boardSize: leaderboardSize,
		now:       time.Now,
	}
}

func (s *statsServiceImpl) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	key := cache.UserStatsKey(userID)
	var cached domain.UserStats
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		stats, err := s.statsRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if stats == nil {
			return domain.NewUserStats(userID, s.now()), nil
		}
		s.writeCache(ctx, key, stats, s.ttls.Stats)
		return stats, nil
	})
	if err != nil {
		logger.Get().Error("Failed to load user stats", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	// singleflight shares the pointer between callers
	return res.(*domain.UserStats).Clone(), nil
}

// XPForNextLevel is 0 once the user sits at the maximum level.
func (s *statsServiceImpl) XPForNextLevel(stats *domain.UserStats) int64 {
	if stats.CurrentLevel >= s.rules.MaxLevel {
		return 0
	}
	remaining := s.rules.XPForLevel(stats.CurrentLevel+1) - stats.TotalXP
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *statsServiceImpl) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.boardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	key := cache.LeaderboardKey(limit)
	var cached []*domain.LeaderboardEntry
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		entries, err := s.statsRepo.Leaderboard(ctx, limit)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, key, entries, s.ttls.Leaderboard)
		return entries, nil
	})
	if err != nil {
		logger.Get().Error("Failed to load leaderboard", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return res.([]*domain.LeaderboardEntry), nil
}

// SetLeaderboardVisibility creates the stats row when needed so a user can
// opt out before their first session.
func (s *statsServiceImpl) SetLeaderboardVisibility(ctx context.Context, userID string, visible bool) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		now := s.now()
		if _, err := s.statsRepo.LockOrCreate(txCtx, userID, now); err != nil {
			return err
		}
		return s.statsRepo.SetLeaderboardVisibility(txCtx, userID, visible, now)
	})
	if err != nil {
		return err
	}
	invalidateUserStats(ctx, s.cache, userID)
	if s.cache != nil {
		if _, err := s.cache.DeleteByPrefix(ctx, leaderboardPrefix()); err != nil {
			logger.Get().Warn("Failed to drop cached leaderboards", zap.Error(err))
		}
	}
	return nil
}

// readCache reports whether key was found and decoded into dst. Cache
// failures fall through to the database.
func (s *statsServiceImpl) readCache(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		logger.Get().Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *statsServiceImpl) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), ttl); err != nil {
		logger.Get().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidateUserStats drops the cached stats of one user. Best effort: the
// entry also expires on its own.
func invalidateUserStats(ctx context.Context, c domain.Cache, userID string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, cache.UserStatsKey(userID)); err != nil {
		logger.Get().Warn("Failed to invalidate cached stats", zap.String("user_id", userID), zap.Error(err))
	}
}

func userStatsPrefix() string {
	return cache.GenerateCacheKey(cache.ServiceStats, "user", "")
}

func leaderboardPrefix() string {
	return cache.GenerateCacheKey(cache.ServiceStats, "leaderboard", "")
}
