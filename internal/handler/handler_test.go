package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"practice-quest/internal/config"
	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
	"practice-quest/internal/handler"
	"practice-quest/internal/logger"
	"practice-quest/internal/middleware"
	"practice-quest/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sessionID = "01HZX3J8Q6M7V2C4K9T5W1R0PA"

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for handler tests: " + err.Error())
	}
	exitCode := m.Run()
	_ = logger.Sync()
	os.Exit(exitCode)
}

type testApp struct {
	app      *fiber.App
	auth     service.AuthService
	recorder *MockSessionRecorder
	feedback *MockFeedbackService
	stats    *MockStatsService
	streaks  *MockStreakService
	badges   *MockBadgeEngine
	ledger   *MockGemLedgerService
	items    *MockPracticeItemService
	admin    *MockAdminService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	auth, err := service.NewAuthService(config.AuthConfig{
		JWTSecret: "test-secret-that-is-long-enough-for-hs256",
		AdminRole: "admin",
	})
	require.NoError(t, err)

	ta := &testApp{
		auth:     auth,
		recorder: new(MockSessionRecorder),
		feedback: new(MockFeedbackService),
		stats:    new(MockStatsService),
		streaks:  new(MockStreakService),
		badges:   new(MockBadgeEngine),
		ledger:   new(MockGemLedgerService),
		items:    new(MockPracticeItemService),
		admin:    new(MockAdminService),
	}

	ta.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(ta.app.Group("/api"), handler.Handlers{
		Sessions:      handler.NewSessionHandler(ta.recorder, ta.feedback),
		Users:         handler.NewUserHandler(ta.stats, ta.streaks, ta.badges, ta.ledger, auth),
		PracticeItems: handler.NewPracticeItemHandler(ta.items),
		Admin:         handler.NewAdminHandler(ta.badges, ta.admin),
	}, auth, nil)
	return ta
}

func (ta *testApp) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := ta.auth.CreateJWT(context.Background(), userID, role, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request as userID ("" for anonymous) and decodes the JSON body into out when given.
func (ta *testApp) do(t *testing.T, method, path, userID, role string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+ta.token(t, userID, role))
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRecordSession_Created(t *testing.T) {
	ta := newTestApp(t)
	want := &dto.RecordSessionResponse{Success: true, SessionID: sessionID, XPEarned: 28, NewTotalXP: 38, NewLevel: 1,
		NewlyAwardedBadges: []string{"first_steps"}, CurrentStreak: 1, GemsBalance: 5}
	ta.recorder.On("RecordSession", mock.Anything, "user-1", &dto.RecordSessionRequest{
		PracticeItemID: sessionID, DurationMinutes: 20, SentimentScore: intPtr(4),
	}).Return(want, nil).Once()

	var raw map[string]interface{}
	status := ta.do(t, http.MethodPost, "/api/sessions", "user-1", "",
		map[string]interface{}{"practice_item_id": sessionID, "duration_minutes": 20, "sentiment_score": 4}, &raw)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, raw["success"])
	assert.Equal(t, float64(28), raw["xp_earned"])
	assert.Equal(t, float64(1), raw["new_level"])
	assert.Equal(t, false, raw["leveled_up"])
	assert.Equal(t, []interface{}{"first_steps"}, raw["newly_awarded_badges"])
	ta.recorder.AssertExpectations(t)
}

func TestRecordSession_RequiresToken(t *testing.T) {
	ta := newTestApp(t)

	var body middleware.ErrorResponse
	status := ta.do(t, http.MethodPost, "/api/sessions", "", "", map[string]int{"duration_minutes": 5}, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_AUTH_HEADER", body.Code)
	ta.recorder.AssertNotCalled(t, "RecordSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordSession_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domain.ValidationErrors{domain.NewMissingFieldError("practice_item_id"), domain.NewOutOfRangeError("duration_minutes", 0, 1, 480)}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate", domain.NewDuplicateSessionError("abc"), http.StatusConflict, "DUPLICATE_SESSION"},
		{"concurrent", domain.NewConcurrencyConflictError("record session", nil), http.StatusConflict, "CONCURRENCY_CONFLICT"},
		{"item missing", domain.NewNotFoundError("practice item not found"), http.StatusNotFound, "NOT_FOUND"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			ta.recorder.On("RecordSession", mock.Anything, "user-1", mock.Anything).Return(nil, tt.err).Once()

			var body map[string]interface{}
			status := ta.do(t, http.MethodPost, "/api/sessions", "user-1", "", map[string]int{"duration_minutes": 0}, &body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestRecordSession_ValidationBodyListsEveryField(t *testing.T) {
	ta := newTestApp(t)
	ta.recorder.On("RecordSession", mock.Anything, "user-1", mock.Anything).Return(nil, domain.ValidationErrors{
		domain.NewMissingFieldError("practice_item_id"),
		domain.NewOutOfRangeError("sentiment_score", 9, 1, 5),
	}).Once()

	var body middleware.ValidationErrorResponse
	status := ta.do(t, http.MethodPost, "/api/sessions", "user-1", "", map[string]int{"sentiment_score": 9}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "practice_item_id", body.Errors[0].Field)
	assert.Equal(t, "sentiment_score", body.Errors[1].Field)
}

func TestGenerateFeedback(t *testing.T) {
	ta := newTestApp(t)

	status := ta.do(t, http.MethodPost, "/api/sessions/not-a-ulid/feedback", "user-1", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	ta.feedback.On("GenerateFeedback", mock.Anything, "user-1", sessionID).
		Return(nil, domain.NewFeedbackQuotaExceededError(5)).Once()
	status = ta.do(t, http.MethodPost, "/api/sessions/"+sessionID+"/feedback", "user-1", "", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, status)

	ta.feedback.On("GenerateFeedback", mock.Anything, "user-1", sessionID).
		Return(&domain.PracticeFeedback{SessionID: sessionID, Summary: "Nice"}, nil).Once()
	var fb domain.PracticeFeedback
	status = ta.do(t, http.MethodPost, "/api/sessions/"+sessionID+"/feedback", "user-1", "", nil, &fb)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Nice", fb.Summary)
}

func TestGetStats_SelfOtherAndAdmin(t *testing.T) {
	ta := newTestApp(t)
	stats := domain.NewUserStats("user-1", time.Now())
	stats.TotalXP = 38
	ta.stats.On("GetStats", mock.Anything, "user-1").Return(stats, nil)
	ta.stats.On("XPForNextLevel", stats).Return(int64(62))

	var got dto.UserStatsResponse
	status := ta.do(t, http.MethodGet, "/api/users/me/stats", "user-1", "", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(38), got.TotalXP)
	assert.Equal(t, int64(62), got.XPForNextLevel)

	status = ta.do(t, http.MethodGet, "/api/users/user-1/stats", "user-2", "", nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = ta.do(t, http.MethodGet, "/api/users/user-1/stats", "ops", "admin", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestSetLeaderboardVisibility(t *testing.T) {
	ta := newTestApp(t)

	var verr middleware.ValidationErrorResponse
	status := ta.do(t, http.MethodPut, "/api/users/me/leaderboard", "user-1", "", map[string]string{}, &verr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "show_on_leaderboard", verr.Errors[0].Field)

	ta.stats.On("SetLeaderboardVisibility", mock.Anything, "user-1", false).Return(nil).Once()
	status = ta.do(t, http.MethodPut, "/api/users/me/leaderboard", "user-1", "", map[string]bool{"show_on_leaderboard": false}, nil)
	assert.Equal(t, http.StatusOK, status)
	ta.stats.AssertExpectations(t)
}

func TestLeaderboard_PublicWithValidatedLimit(t *testing.T) {
	ta := newTestApp(t)

	status := ta.do(t, http.MethodGet, "/api/leaderboard?limit=abc", "", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status = ta.do(t, http.MethodGet, "/api/leaderboard?limit=500", "", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	ta.stats.On("Leaderboard", mock.Anything, 5).Return([]*domain.LeaderboardEntry{{Rank: 1, UserID: "a", TotalXP: 900}}, nil).Once()
	var board dto.LeaderboardResponse
	status = ta.do(t, http.MethodGet, "/api/leaderboard?limit=5", "", "", nil, &board)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "a", board.Entries[0].UserID)
}

func TestGetMyGems_Pagination(t *testing.T) {
	ta := newTestApp(t)
	ta.ledger.On("History", mock.Anything, "user-1", service.DefaultHistoryLimit, 40).
		Return([]*domain.GemTransaction{{ID: "g1", Amount: 5}}, 45, nil).Once()

	var got dto.GemHistoryResponse
	status := ta.do(t, http.MethodGet, "/api/users/me/gems?offset=40", "user-1", "", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, int64(45), got.PaginationInfo.TotalItems)
	assert.Equal(t, 3, got.PaginationInfo.CurrentPage)
	assert.Equal(t, 3, got.PaginationInfo.TotalPages)

	status = ta.do(t, http.MethodGet, "/api/users/me/gems?offset=-1", "user-1", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestShopErrors(t *testing.T) {
	ta := newTestApp(t)
	ta.streaks.On("PurchaseShield", mock.Anything, "user-1").Return(nil, domain.NewInsufficientBalanceError(10, 50)).Once()
	ta.streaks.On("PurchaseShield", mock.Anything, "user-1").Return(nil, domain.NewShieldCapReachedError(3)).Once()
	ta.streaks.On("RecoverStreak", mock.Anything, "user-1").Return(nil, domain.NewStreakNotRecoverableError("streak is not broken")).Once()
	ta.streaks.On("RecoverStreak", mock.Anything, "user-1").Return(nil, domain.NewRecoveryLimitReachedError(1)).Once()

	var body middleware.ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, ta.do(t, http.MethodPost, "/api/users/me/shields", "user-1", "", nil, &body))
	assert.Equal(t, "INSUFFICIENT_BALANCE", body.Code)
	assert.EqualValues(t, 10, body.Details["balance"])

	assert.Equal(t, http.StatusConflict, ta.do(t, http.MethodPost, "/api/users/me/shields", "user-1", "", nil, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, ta.do(t, http.MethodPost, "/api/users/me/streak/recover", "user-1", "", nil, nil))
	assert.Equal(t, http.StatusConflict, ta.do(t, http.MethodPost, "/api/users/me/streak/recover", "user-1", "", nil, nil))
}

func TestShopSuccess(t *testing.T) {
	ta := newTestApp(t)
	after := domain.NewUserStats("user-1", time.Now())
	after.StreakShieldCount = 2
	after.GemsBalance = 30
	ta.streaks.On("PurchaseShield", mock.Anything, "user-1").Return(after, nil).Once()

	var got dto.ShieldPurchaseResponse
	assert.Equal(t, http.StatusOK, ta.do(t, http.MethodPost, "/api/users/me/shields", "user-1", "", nil, &got))
	assert.Equal(t, dto.ShieldPurchaseResponse{StreakShieldCount: 2, GemsBalance: 30}, got)
}

func TestPracticeItems(t *testing.T) {
	ta := newTestApp(t)

	var verr middleware.ValidationErrorResponse
	status := ta.do(t, http.MethodPost, "/api/practice-items", "user-1", "", map[string]string{"name": " "}, &verr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name", verr.Errors[0].Field)
	ta.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	item := domain.NewPracticeItem(sessionID, "user-1", "Scales", "", time.Now())
	ta.items.On("Create", mock.Anything, "user-1", "Scales", "").Return(item, nil).Once()
	var created dto.PracticeItemResponse
	status = ta.do(t, http.MethodPost, "/api/practice-items", "user-1", "", map[string]string{"name": "Scales"}, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, sessionID, created.ID)

	ta.items.On("List", mock.Anything, "user-1", true).Return([]*domain.PracticeItem{item}, nil).Once()
	var list dto.PracticeItemsResponse
	status = ta.do(t, http.MethodGet, "/api/practice-items?include_archived=true", "user-1", "", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list.Items, 1)

	ta.items.On("Archive", mock.Anything, "user-1", sessionID).Return(nil).Once()
	status = ta.do(t, http.MethodDelete, "/api/practice-items/"+sessionID, "user-1", "", nil, nil)
	assert.Equal(t, http.StatusNoContent, status)
	ta.items.AssertExpectations(t)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	ta := newTestApp(t)

	var body middleware.ErrorResponse
	status := ta.do(t, http.MethodGet, "/api/admin/badges", "user-1", "member", nil, &body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)

	status = ta.do(t, http.MethodPost, "/api/admin/clear-all-user-data", "", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	ta.admin.AssertNotCalled(t, "ClearAllUserData", mock.Anything)
}

func TestAdminBadges(t *testing.T) {
	ta := newTestApp(t)

	ta.badges.On("CreateBadge", mock.Anything, mock.MatchedBy(func(b *domain.Badge) bool {
		return b.BadgeKey == "streak_7" && b.IsActive && b.Category == "general"
	})).Return(&domain.Badge{BadgeKey: "streak_7", Name: "Week", Category: "general", CriteriaType: "streak", CriteriaValue: 7, IsActive: true}, nil).Once()
	var created dto.BadgeResponse
	status := ta.do(t, http.MethodPost, "/api/admin/badges", "ops", "admin", map[string]interface{}{
		"badge_key": "streak_7", "name": "Week", "criteria_type": "streak", "criteria_value": 7,
	}, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "streak_7", created.BadgeKey)

	ta.badges.On("UpdateBadge", mock.Anything, mock.MatchedBy(func(b *domain.Badge) bool {
		return b.BadgeKey == "streak_7" && !b.IsActive
	})).Return(&domain.Badge{BadgeKey: "streak_7", IsActive: false}, nil).Once()
	status = ta.do(t, http.MethodPut, "/api/admin/badges/streak_7", "ops", "admin", map[string]interface{}{
		"badge_key": "ignored", "name": "Week", "criteria_type": "streak", "criteria_value": 7, "is_active": false,
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	ta.badges.On("DeleteBadge", mock.Anything, "first_steps").Return(domain.NewConflictError("badge has already been earned", nil)).Once()
	status = ta.do(t, http.MethodDelete, "/api/admin/badges/first_steps", "ops", "admin", nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	ta.badges.AssertExpectations(t)
}

func TestAdminClearAllUserData(t *testing.T) {
	ta := newTestApp(t)
	ta.admin.On("ClearAllUserData", mock.Anything).Return(map[string]int64{"user_stats": 3, "practice_sessions": 12}, int64(7), nil).Once()

	var got dto.ClearAllUserDataResponse
	status := ta.do(t, http.MethodPost, "/api/admin/clear-all-user-data", "ops", "admin", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(12), got.DeletedRows["practice_sessions"])
	assert.Equal(t, int64(7), got.CacheKeysDeleted)
}

func TestAdminAdjustGems(t *testing.T) {
	ta := newTestApp(t)
	ta.admin.On("AdjustGems", mock.Anything, "ops", "user-9", int64(-15), "duplicate grant").
		Return(&domain.GemTransaction{UserID: "user-9", TransactionType: domain.GemTxDebit, Amount: -15, Source: "admin:ops", BalanceAfter: 10}, nil).Once()
	ta.admin.On("AdjustGems", mock.Anything, "ops", "user-9", int64(-500), "too much").
		Return(nil, domain.NewInsufficientBalanceError(10, 500)).Once()

	var tx domain.GemTransaction
	status := ta.do(t, http.MethodPost, "/api/admin/users/user-9/gems", "ops", "admin",
		map[string]interface{}{"amount": -15, "reason": "duplicate grant"}, &tx)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(10), tx.BalanceAfter)

	var body middleware.ErrorResponse
	status = ta.do(t, http.MethodPost, "/api/admin/users/user-9/gems", "ops", "admin",
		map[string]interface{}{"amount": -500, "reason": "too much"}, &body)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status = ta.do(t, http.MethodPost, "/api/admin/users/user-9/gems", "user-1", "member",
		map[string]interface{}{"amount": 1000, "reason": "self grant"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
	ta.admin.AssertExpectations(t)
}

func TestAdminReconcileGems(t *testing.T) {
	ta := newTestApp(t)
	ta.admin.On("ReconcileGems", mock.Anything, "user-9").
		Return(&domain.GemReconciliation{UserID: "user-9", StatsBalance: 12, LedgerBalance: 10, InSync: false}, nil).Once()

	var got domain.GemReconciliation
	status := ta.do(t, http.MethodGet, "/api/admin/users/user-9/gems/reconcile", "ops", "admin", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, got.InSync)
	assert.Equal(t, int64(10), got.LedgerBalance)
}

func intPtr(v int) *int { return &v }
