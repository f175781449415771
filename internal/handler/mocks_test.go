package handler_test

import (
	"context"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
	"practice-quest/internal/service"

	"github.com/stretchr/testify/mock"
)

// --- MockSessionRecorder ---
type MockSessionRecorder struct {
	mock.Mock
}

func (m *MockSessionRecorder) RecordSession(ctx context.Context, userID string, req *dto.RecordSessionRequest) (*dto.RecordSessionResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordSessionResponse), args.Error(1)
}

// --- MockFeedbackService ---
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) GenerateFeedback(ctx context.Context, userID, sessionID string) (*domain.PracticeFeedback, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PracticeFeedback), args.Error(1)
}

// --- MockStatsService ---
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStatsService) XPForNextLevel(stats *domain.UserStats) int64 {
	args := m.Called(stats)
	return args.Get(0).(int64)
}

func (m *MockStatsService) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeaderboardEntry), args.Error(1)
}

func (m *MockStatsService) SetLeaderboardVisibility(ctx context.Context, userID string, visible bool) error {
	args := m.Called(ctx, userID, visible)
	return args.Error(0)
}

// --- MockStreakService ---
type MockStreakService struct {
	mock.Mock
}

func (m *MockStreakService) ApplyPractice(stats *domain.UserStats, practicedAt time.Time) domain.StreakResult {
	args := m.Called(stats, practicedAt)
	return args.Get(0).(domain.StreakResult)
}

func (m *MockStreakService) UpdateStreak(ctx context.Context, userID string, practicedAt time.Time) (domain.StreakResult, error) {
	args := m.Called(ctx, userID, practicedAt)
	return args.Get(0).(domain.StreakResult), args.Error(1)
}

func (m *MockStreakService) PurchaseShield(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStreakService) RecoverStreak(ctx context.Context, userID string) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStreakService) ResetWeeklyRecoveries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- MockBadgeEngine ---
type MockBadgeEngine struct {
	mock.Mock
}

func (m *MockBadgeEngine) EvaluateAndAward(ctx context.Context, stats *domain.UserStats, history domain.SessionHistory) ([]string, error) {
	args := m.Called(ctx, stats, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBadgeEngine) ListEarned(ctx context.Context, userID string) ([]*domain.EarnedBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EarnedBadge), args.Error(1)
}

func (m *MockBadgeEngine) ListBadges(ctx context.Context) ([]*domain.Badge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Badge), args.Error(1)
}

func (m *MockBadgeEngine) CreateBadge(ctx context.Context, badge *domain.Badge) (*domain.Badge, error) {
	args := m.Called(ctx, badge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Badge), args.Error(1)
}

func (m *MockBadgeEngine) UpdateBadge(ctx context.Context, badge *domain.Badge) (*domain.Badge, error) {
	args := m.Called(ctx, badge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Badge), args.Error(1)
}

func (m *MockBadgeEngine) DeleteBadge(ctx context.Context, badgeKey string) error {
	args := m.Called(ctx, badgeKey)
	return args.Error(0)
}

// --- MockGemLedgerService ---
type MockGemLedgerService struct {
	mock.Mock
}

func (m *MockGemLedgerService) Credit(ctx context.Context, userID string, entry service.GemEntry) (*domain.GemTransaction, error) {
	args := m.Called(ctx, userID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemTransaction), args.Error(1)
}

func (m *MockGemLedgerService) Debit(ctx context.Context, userID string, entry service.GemEntry) (*domain.GemTransaction, error) {
	args := m.Called(ctx, userID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemTransaction), args.Error(1)
}

func (m *MockGemLedgerService) CreditStats(ctx context.Context, stats *domain.UserStats, entry service.GemEntry) (*domain.GemTransaction, error) {
	args := m.Called(ctx, stats, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemTransaction), args.Error(1)
}

func (m *MockGemLedgerService) DebitStats(ctx context.Context, stats *domain.UserStats, entry service.GemEntry) (*domain.GemTransaction, error) {
	args := m.Called(ctx, stats, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemTransaction), args.Error(1)
}

func (m *MockGemLedgerService) Reconcile(ctx context.Context, userID string) (*domain.GemReconciliation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemReconciliation), args.Error(1)
}

func (m *MockGemLedgerService) History(ctx context.Context, userID string, limit, offset int) ([]*domain.GemTransaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.GemTransaction), args.Int(1), args.Error(2)
}

// --- MockPracticeItemService ---
type MockPracticeItemService struct {
	mock.Mock
}

func (m *MockPracticeItemService) Create(ctx context.Context, userID, name, description string) (*domain.PracticeItem, error) {
	args := m.Called(ctx, userID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PracticeItem), args.Error(1)
}

func (m *MockPracticeItemService) List(ctx context.Context, userID string, includeArchived bool) ([]*domain.PracticeItem, error) {
	args := m.Called(ctx, userID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PracticeItem), args.Error(1)
}

func (m *MockPracticeItemService) Archive(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

// --- MockAdminService ---
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ClearAllUserData(ctx context.Context) (map[string]int64, int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(map[string]int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) AdjustGems(ctx context.Context, adminID, userID string, amount int64, reason string) (*domain.GemTransaction, error) {
	args := m.Called(ctx, adminID, userID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemTransaction), args.Error(1)
}

func (m *MockAdminService) ReconcileGems(ctx context.Context, userID string) (*domain.GemReconciliation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GemReconciliation), args.Error(1)
}
