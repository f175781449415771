package handler

import (
	"practice-quest/internal/dto"
	"practice-quest/internal/logger"
	"practice-quest/internal/middleware"
	"practice-quest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler serves the caller's gamification state and the gem shop.
type UserHandler struct {
	stats   service.StatsService
	streaks service.StreakService
	badges  service.BadgeEngine
	ledger  service.GemLedgerService
	auth    service.AuthService
}

func NewUserHandler(
	stats service.StatsService,
	streaks service.StreakService,
	badges service.BadgeEngine,
	ledger service.GemLedgerService,
	auth service.AuthService,
) *UserHandler {
	return &UserHandler{stats: stats, streaks: streaks, badges: badges, ledger: ledger, auth: auth}
}

// GetStats retrieves the stats of a user.
// @Summary Get user stats
// @Description Returns XP, level, streaks, gems and badge count. Users may read their own stats ("me"); admins any.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID or 'me'"
// @Success 200 {object} dto.UserStatsResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Forbidden"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/{id}/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	callerID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	target := c.Params("id")
	if target == "me" || target == "" {
		target = callerID
	}
	if target != callerID && !h.auth.IsAdmin(currentClaims(c)) {
		logger.Get().Warn("Stats access denied",
			zap.String("caller_id", callerID),
			zap.String("target_id", target))
		return c.Status(fiber.StatusForbidden).JSON(middleware.ErrorResponse{
			Code: "FORBIDDEN", Message: "You can only read your own stats", Status: fiber.StatusForbidden,
		})
	}

	stats, err := h.stats.GetStats(c.Context(), target)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserStatsResponse(stats, h.stats.XPForNextLevel(stats)))
}

// SetLeaderboardVisibility toggles the caller's leaderboard presence.
// @Summary Set leaderboard visibility
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.LeaderboardVisibilityRequest true "Visibility"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/leaderboard [put]
func (h *UserHandler) SetLeaderboardVisibility(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var req dto.LeaderboardVisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if req.ShowOnLeaderboard == nil {
		return domainMissingField("show_on_leaderboard")
	}

	if err := h.stats.SetLeaderboardVisibility(c.Context(), userID, *req.ShowOnLeaderboard); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "leaderboard visibility updated"})
}

// GetMyBadges lists the caller's earned badges, including retired definitions.
// @Summary Get my badges
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.EarnedBadgesResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/badges [get]
func (h *UserHandler) GetMyBadges(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	earned, err := h.badges.ListEarned(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.EarnedBadgesResponse{Badges: earned})
}

// GetMyGems returns one page of the caller's gem ledger, newest first.
// @Summary Get my gem history
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.GemHistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/gems [get]
func (h *UserHandler) GetMyGems(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	p := pagination(c)
	if p.Limit == 0 {
		p.Limit = service.DefaultHistoryLimit
	}
	txs, total, err := h.ledger.History(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return err
	}
	return c.JSON(dto.GemHistoryResponse{
		Transactions:   txs,
		PaginationInfo: dto.NewPaginationInfo(int64(total), p),
	})
}

// PurchaseShield buys one streak shield with gems.
// @Summary Buy a streak shield
// @Tags shop
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ShieldPurchaseResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Shield cap reached"
// @Failure 422 {object} middleware.ErrorResponse "Insufficient gems"
// @Router /users/me/shields [post]
func (h *UserHandler) PurchaseShield(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	stats, err := h.streaks.PurchaseShield(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ShieldPurchaseResponse{
		StreakShieldCount: stats.StreakShieldCount,
		GemsBalance:       stats.GemsBalance,
	})
}

// RecoverStreak pays gems to repair a recently broken streak.
// @Summary Recover a broken streak
// @Tags shop
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.StreakRecoveryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Weekly recovery limit reached"
// @Failure 422 {object} middleware.ErrorResponse "Not recoverable or insufficient gems"
// @Router /users/me/streak/recover [post]
func (h *UserHandler) RecoverStreak(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	stats, err := h.streaks.RecoverStreak(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.StreakRecoveryResponse{
		CurrentStreak:               stats.CurrentStreak,
		GemsBalance:                 stats.GemsBalance,
		StreakRecoveryCountThisWeek: stats.StreakRecoveryCountThisWeek,
	})
}

// GetLeaderboard returns the top users by XP.
// @Summary Leaderboard
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /leaderboard [get]
func (h *UserHandler) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := h.stats.Leaderboard(c.Context(), pagination(c).Limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.LeaderboardResponse{Entries: entries})
}
