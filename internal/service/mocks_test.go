package service

import (
	"context"
	"time"

	"practice-quest/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockFeedbackGenerator ---
type MockFeedbackGenerator struct {
	mock.Mock
}

func (m *MockFeedbackGenerator) GenerateFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.PracticeFeedback, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PracticeFeedback), args.Error(1)
}

// --- MockStatsRepository ---
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStatsRepository) LockOrCreate(ctx context.Context, userID string, now time.Time) (*domain.UserStats, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStatsRepository) Update(ctx context.Context, stats *domain.UserStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) SetLeaderboardVisibility(ctx context.Context, userID string, visible bool, now time.Time) error {
	args := m.Called(ctx, userID, visible, now)
	return args.Error(0)
}

func (m *MockStatsRepository) ResetWeeklyRecoveryCounts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeaderboardEntry), args.Error(1)
}

// --- MockGemTransactionRepository ---
type MockGemTransactionRepository struct {
	mock.Mock
}

func (m *MockGemTransactionRepository) Insert(ctx context.Context, tx *domain.GemTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockGemTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.GemTransaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.GemTransaction), args.Int(1), args.Error(2)
}

func (m *MockGemTransactionRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- MockAdminRepository ---
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) ClearAllUserData(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// --- MockTransactionManager runs fn inline ---
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
