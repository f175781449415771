package service

import (
	"context"
	"errors"
	"testing"

	"practice-quest/internal/domain"
	"practice-quest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClearAllUserData(t *testing.T) {
	mockCache := new(MockCache)
	env := newTestEnv(t, nil)
	env.seedBadges(defaultCatalogue()...)
	item := env.newItem(t, "user-1", "Scales")
	_, err := env.recorder.RecordSession(context.Background(), "user-1", &dto.RecordSessionRequest{
		PracticeItemID: item.ID, DurationMinutes: 30,
	})
	require.NoError(t, err)

	svc := NewAdminService(env.tx, &fakeAdminRepo{store: env.store}, env.ledger, mockCache)
	mockCache.On("DeleteByPrefix", mock.Anything, "pquest:stats:").Return(int64(4), nil).Once()

	deleted, keys, err := svc.ClearAllUserData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), keys)
	assert.Equal(t, int64(1), deleted["practice_sessions"])
	assert.Equal(t, int64(1), deleted["user_badges"])
	assert.Equal(t, int64(1), deleted["gems_transactions"])
	assert.Equal(t, int64(1), deleted["user_stats"])

	assert.Nil(t, env.store.statsOf("user-1"))
	assert.Zero(t, env.store.sessionCount())

	// definitions and items survive
	badges, err := env.badges.ListBadges(context.Background())
	require.NoError(t, err)
	assert.Len(t, badges, len(defaultCatalogue()))
	items, err := env.items.List(context.Background(), "user-1", true)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	mockCache.AssertExpectations(t)
}

func TestClearAllUserData_RepositoryFailure(t *testing.T) {
	txManager := new(MockTransactionManager)
	adminRepo := new(MockAdminRepository)
	mockCache := new(MockCache)
	svc := NewAdminService(txManager, adminRepo, nil, mockCache)

	txManager.On("WithTransaction", mock.Anything).Return(nil)
	adminRepo.On("ClearAllUserData", mock.Anything).Return(nil, domain.NewInternalError("truncate failed", nil))

	_, _, err := svc.ClearAllUserData(context.Background())
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
	mockCache.AssertNotCalled(t, "DeleteByPrefix", mock.Anything, mock.Anything)
}

func TestClearAllUserData_CacheFailureIsNotFatal(t *testing.T) {
	txManager := new(MockTransactionManager)
	adminRepo := new(MockAdminRepository)
	mockCache := new(MockCache)
	svc := NewAdminService(txManager, adminRepo, nil, mockCache)

	txManager.On("WithTransaction", mock.Anything).Return(nil)
	adminRepo.On("ClearAllUserData", mock.Anything).Return(map[string]int64{"user_stats": 3}, nil)
	mockCache.On("DeleteByPrefix", mock.Anything, "pquest:stats:").Return(int64(0), errors.New("redis down"))

	deleted, keys, err := svc.ClearAllUserData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted["user_stats"])
	assert.Zero(t, keys)
}

func TestAdjustGems_CreditDebitAndReconcile(t *testing.T) {
	mockCache := new(MockCache)
	env := newTestEnv(t, nil)
	svc := NewAdminService(env.tx, &fakeAdminRepo{store: env.store}, env.ledger, mockCache)
	ctx := context.Background()
	mockCache.On("Delete", mock.Anything, []string{"pquest:stats:user:user-1"}).Return(nil).Twice()

	credit, err := svc.AdjustGems(ctx, "ops", "user-1", 40, "support refund")
	require.NoError(t, err)
	assert.Equal(t, domain.GemTxCredit, credit.TransactionType)
	assert.Equal(t, "admin:ops", credit.Source)
	assert.Equal(t, int64(40), credit.BalanceAfter)

	debit, err := svc.AdjustGems(ctx, "ops", "user-1", -15, "duplicate grant")
	require.NoError(t, err)
	assert.Equal(t, domain.GemTxDebit, debit.TransactionType)
	assert.Equal(t, int64(-15), debit.Amount)
	assert.Equal(t, int64(25), debit.BalanceAfter)

	rec, err := svc.ReconcileGems(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, rec.InSync)
	assert.Equal(t, int64(25), rec.StatsBalance)
	assert.Equal(t, int64(25), rec.LedgerBalance)
	mockCache.AssertExpectations(t)
}

func TestAdjustGems_DebitBeyondBalance(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := NewAdminService(env.tx, &fakeAdminRepo{store: env.store}, env.ledger, nil)

	_, err := svc.AdjustGems(context.Background(), "ops", "user-1", -10, "correction")
	assert.True(t, domain.HasCode(err, domain.CodeInsufficientBalance))
	assert.Empty(t, env.store.gemsOf("user-1"))
}

func TestAdjustGems_Validation(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := NewAdminService(env.tx, &fakeAdminRepo{store: env.store}, env.ledger, nil)

	_, err := svc.AdjustGems(context.Background(), "ops", " ", 0, "")
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"user_id", "amount", "reason"}, verrs.Fields())
}

func TestReconcileGems_DetectsDrift(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := NewAdminService(env.tx, &fakeAdminRepo{store: env.store}, env.ledger, nil)
	_, err := svc.AdjustGems(context.Background(), "ops", "user-1", 10, "grant")
	require.NoError(t, err)

	stats := env.store.statsOf("user-1")
	stats.GemsBalance = 99
	env.store.putStats(stats)

	rec, err := svc.ReconcileGems(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, rec.InSync)
	assert.Equal(t, int64(99), rec.StatsBalance)
	assert.Equal(t, int64(10), rec.LedgerBalance)
}
