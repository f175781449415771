package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"practice-quest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var badgeRowColumns = []string{"BADGE_KEY", "NAME", "DESCRIPTION", "CATEGORY", "CRITERIA_TYPE", "CRITERIA_VALUE",
	"XP_REWARD", "GEM_REWARD", "DISPLAY_ORDER", "IS_ACTIVE", "CREATED_AT", "UPDATED_AT"}

func TestBadgeRepository_ListActive(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBadgeRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(badgeRowColumns).
		AddRow("first_steps", "First Steps", "Log your first session", "milestone", "practice_sessions", 1, 10, 5, 1, int64(1), now, now).
		AddRow("week_streak", "On Fire", nil, "streak", "streak", 7, 50, 20, 2, int64(1), now, now)
	mock.ExpectQuery(q("WHERE is_active = 1 ORDER BY display_order, badge_key")).WillReturnRows(rows)

	badges, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.Equal(t, "first_steps", badges[0].BadgeKey)
	assert.Equal(t, int64(5), badges[0].GemReward)
	assert.Equal(t, "", badges[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBadgeRepository_Mutations(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBadgeRepository(db)
	ctx := context.Background()
	now := time.Now()
	b := &domain.Badge{BadgeKey: "night_owl", Name: "Night Owl", CriteriaType: "time_of_day", CriteriaValue: 2,
		XPReward: 15, GemReward: 3, IsActive: true, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(q("INSERT INTO badges")).WillReturnError(errors.New("ORA-00001: unique constraint violated"))
	assert.True(t, domain.HasCode(repo.Create(ctx, b), domain.CodeConflict))

	mock.ExpectExec(q("UPDATE badges SET")).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.HasCode(repo.Update(ctx, b), domain.CodeNotFound))

	mock.ExpectExec(q("DELETE FROM badges WHERE badge_key = :1")).WithArgs("night_owl").
		WillReturnError(errors.New("ORA-02292: integrity constraint (APP.FK_USER_BADGES_BADGE) violated - child record found"))
	assert.True(t, domain.HasCode(repo.Delete(ctx, "night_owl"), domain.CodeConflict))

	mock.ExpectExec(q("DELETE FROM badges WHERE badge_key = :1")).WithArgs("night_owl").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "night_owl"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserBadgeRepository_InsertIsIdempotent(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserBadgeRepository(db)
	ctx := context.Background()
	ub := &domain.UserBadge{UserID: "u1", BadgeKey: "first_steps", EarnedAt: time.Now()}

	mock.ExpectExec(q("INSERT INTO user_badges")).WillReturnResult(sqlmock.NewResult(0, 1))
	inserted, err := repo.Insert(ctx, ub)
	assert.NoError(t, err)
	assert.True(t, inserted)

	mock.ExpectExec(q("INSERT INTO user_badges")).
		WillReturnError(errors.New("ORA-00001: unique constraint (APP.PK_USER_BADGES) violated"))
	inserted, err = repo.Insert(ctx, ub)
	assert.NoError(t, err)
	assert.False(t, inserted)

	mock.ExpectQuery(q("SELECT badge_key FROM user_badges")).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"BADGE_KEY"}).AddRow("first_steps"))
	keys, err := repo.EarnedKeys(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"first_steps": true}, keys)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGemTransactionRepository(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewGemTransactionRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectExec(q("INSERT INTO gems_transactions")).
		WithArgs("g1", "u1", "badge_reward", int64(5), "first_steps", nil, int64(5), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Insert(ctx, &domain.GemTransaction{ID: "g1", UserID: "u1", TransactionType: domain.GemTxBadgeReward,
		Amount: 5, Source: "first_steps", BalanceAfter: 5, CreatedAt: now}))

	mock.ExpectQuery(q("SELECT COUNT(*) FROM gems_transactions")).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(3))
	mock.ExpectQuery(q("OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY")).WithArgs("u1", 0, 2).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "USER_ID", "TRANSACTION_TYPE", "AMOUNT", "SOURCE", "DESCRIPTION", "BALANCE_AFTER", "CREATED_AT"}).
			AddRow("g3", "u1", "shield_purchase", -50, "shield", "Streak shield", 0, now).
			AddRow("g2", "u1", "credit", 45, "admin", nil, 50, now))
	txs, total, err := repo.ListByUser(ctx, "u1", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(-50), txs[0].Amount)
	assert.Equal(t, domain.GemTxShieldPurchase, txs[0].TransactionType)

	mock.ExpectQuery(q("NVL(SUM(amount), 0)")).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"SUM"}).AddRow(0))
	sum, err := repo.SumByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), sum)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_ClearAllUserData(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewAdminRepository(db)

	mock.ExpectExec(q("DELETE FROM gems_transactions")).WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(q("DELETE FROM user_badges")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM practice_sessions")).WillReturnResult(sqlmock.NewResult(0, 9))
	mock.ExpectExec(q("DELETE FROM user_stats")).WillReturnResult(sqlmock.NewResult(0, 3))

	counts, err := repo.ClearAllUserData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), counts["practice_sessions"])
	assert.NotContains(t, counts, "badges")
	assert.NoError(t, mock.ExpectationsWereMet())
}
