package handler

import (
	"practice-quest/internal/dto"
	"practice-quest/internal/logger"
	"practice-quest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler exposes the badge catalogue and maintenance operations.
// Every route is mounted behind middleware.AdminOnly.
type AdminHandler struct {
	badges service.BadgeEngine
	admin  service.AdminService
}

func NewAdminHandler(badges service.BadgeEngine, admin service.AdminService) *AdminHandler {
	return &AdminHandler{badges: badges, admin: admin}
}

// ListBadges godoc
// @Summary List badge definitions
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.BadgesResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/badges [get]
func (h *AdminHandler) ListBadges(c *fiber.Ctx) error {
	badges, err := h.badges.ListBadges(c.Context())
	if err != nil {
		return err
	}
	resp := dto.BadgesResponse{Badges: make([]dto.BadgeResponse, 0, len(badges))}
	for _, b := range badges {
		resp.Badges = append(resp.Badges, dto.NewBadgeResponse(b))
	}
	return c.JSON(resp)
}

// CreateBadge godoc
// @Summary Create a badge definition
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.BadgeRequest true "Badge"
// @Success 201 {object} dto.BadgeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Badge key exists"
// @Router /admin/badges [post]
func (h *AdminHandler) CreateBadge(c *fiber.Ctx) error {
	var req dto.BadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}

	badge, err := h.badges.CreateBadge(c.Context(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBadgeResponse(badge))
}

// UpdateBadge godoc
// @Summary Update a badge definition
// @Description Set is_active=false to retire a badge that users already earned.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param badge_key path string true "Badge key"
// @Param request body dto.BadgeRequest true "Badge"
// @Success 200 {object} dto.BadgeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/badges/{badge_key} [put]
func (h *AdminHandler) UpdateBadge(c *fiber.Ctx) error {
	var req dto.BadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	// the path wins over the body
	req.BadgeKey = c.Params("badge_key")

	badge, err := h.badges.UpdateBadge(c.Context(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBadgeResponse(badge))
}

// DeleteBadge godoc
// @Summary Delete a badge definition
// @Description Fails with 409 once any user earned the badge.
// @Tags admin
// @Security ApiKeyAuth
// @Param badge_key path string true "Badge key"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /admin/badges/{badge_key} [delete]
func (h *AdminHandler) DeleteBadge(c *fiber.Ctx) error {
	if err := h.badges.DeleteBadge(c.Context(), c.Params("badge_key")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearAllUserData godoc
// @Summary Delete all user gamification data
// @Description Removes sessions, stats, earned badges and gem transactions. Badge definitions and practice items are kept.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ClearAllUserDataResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/clear-all-user-data [post]
func (h *AdminHandler) ClearAllUserData(c *fiber.Ctx) error {
	if claims := currentClaims(c); claims != nil {
		logger.Get().Warn("Admin requested full user data reset", zap.String("admin_id", claims.UserID()))
	}

	deleted, keys, err := h.admin.ClearAllUserData(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.ClearAllUserDataResponse{DeletedRows: deleted, CacheKeysDeleted: keys})
}

// AdjustGems godoc
// @Summary Credit or debit a user's gems
// @Description A positive amount credits, a negative amount debits. The change is written to the ledger with the admin as source.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.AdjustGemsRequest true "Adjustment"
// @Success 201 {object} domain.GemTransaction
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse "Insufficient balance"
// @Router /admin/users/{id}/gems [post]
func (h *AdminHandler) AdjustGems(c *fiber.Ctx) error {
	var req dto.AdjustGemsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	var adminID string
	if claims := currentClaims(c); claims != nil {
		adminID = claims.UserID()
	}

	tx, err := h.admin.AdjustGems(c.Context(), adminID, c.Params("id"), req.Amount, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// ReconcileGems godoc
// @Summary Compare a user's gem balance with the ledger
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.GemReconciliation
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/users/{id}/gems/reconcile [get]
func (h *AdminHandler) ReconcileGems(c *fiber.Ctx) error {
	rec, err := h.admin.ReconcileGems(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(rec)
}
