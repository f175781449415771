package handler

import (
	"practice-quest/internal/dto"
	"practice-quest/internal/service"
	"practice-quest/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PracticeItemHandler manages the caller's practice items.
type PracticeItemHandler struct {
	items     service.PracticeItemService
	validator *validation.Validator
}

func NewPracticeItemHandler(items service.PracticeItemService) *PracticeItemHandler {
	return &PracticeItemHandler{items: items, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Create a practice item
// @Tags practice-items
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePracticeItemRequest true "Practice item"
// @Success 201 {object} dto.PracticeItemResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Name already used"
// @Router /practice-items [post]
func (h *PracticeItemHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var req dto.CreatePracticeItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if errs := h.validator.ValidateCreatePracticeItem(&req); len(errs) > 0 {
		return errs
	}

	item, err := h.items.Create(c.Context(), userID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPracticeItemResponse(item))
}

// List godoc
// @Summary List my practice items
// @Tags practice-items
// @Security ApiKeyAuth
// @Produce json
// @Param include_archived query bool false "Include archived items"
// @Success 200 {object} dto.PracticeItemsResponse
// @Router /practice-items [get]
func (h *PracticeItemHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	items, err := h.items.List(c.Context(), userID, c.QueryBool("include_archived", false))
	if err != nil {
		return err
	}
	resp := dto.PracticeItemsResponse{Items: make([]dto.PracticeItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.NewPracticeItemResponse(item))
	}
	return c.JSON(resp)
}

// Archive godoc
// @Summary Archive a practice item
// @Description Archived items cannot receive new sessions; history is kept.
// @Tags practice-items
// @Security ApiKeyAuth
// @Param id path string true "Practice item ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /practice-items/{id} [delete]
func (h *PracticeItemHandler) Archive(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	if err := h.items.Archive(c.Context(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
