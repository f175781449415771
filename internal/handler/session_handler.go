package handler

import (
	"practice-quest/internal/dto"
	"practice-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles practice session HTTP requests
type SessionHandler struct {
	recorder service.SessionRecorder
	feedback service.FeedbackService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(recorder service.SessionRecorder, feedback service.FeedbackService) *SessionHandler {
	return &SessionHandler{recorder: recorder, feedback: feedback}
}

// RecordSession godoc
// @Summary Log a practice session
// @Description Records a session and applies XP, level, streak, badge and gem effects atomically.
// @Tags sessions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.RecordSessionRequest true "Session details"
// @Success 201 {object} dto.RecordSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Practice item not found"
// @Failure 409 {object} middleware.ErrorResponse "Duplicate session or concurrent update"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) RecordSession(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	var req dto.RecordSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}

	resp, err := h.recorder.RecordSession(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateFeedback godoc
// @Summary AI feedback for a session
// @Description Asks the configured LLM for short coaching on one of the caller's sessions. Limited per day.
// @Tags sessions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.PracticeFeedback
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse "Daily quota exceeded"
// @Failure 503 {object} middleware.ErrorResponse "Feedback unavailable"
// @Router /sessions/{id}/feedback [post]
func (h *SessionHandler) GenerateFeedback(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}

	feedback, err := h.feedback.GenerateFeedback(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(feedback)
}
