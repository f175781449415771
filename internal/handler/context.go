package handler

import (
	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
	"practice-quest/internal/logger"
	"practice-quest/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// currentUserID reads the authenticated user set by middleware.Protected. The
// second return value is false after a 401 response has been written.
func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		logger.Get().Warn("User ID not found in context", zap.String("path", c.Path()))
		_ = c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
		return "", false
	}
	return userID, true
}

func currentClaims(c *fiber.Ctx) *dto.AuthClaims {
	claims, _ := c.Locals(middleware.ClaimsKey).(*dto.AuthClaims)
	return claims
}

func pagination(c *fiber.Ctx) dto.Pagination {
	p, _ := c.Locals(middleware.ValidatedPaginationKey).(dto.Pagination)
	return p
}

func badRequestBody(c *fiber.Ctx, err error) error {
	logger.Get().Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
		Code: "INVALID_REQUEST", Message: "Request body is not valid JSON", Status: fiber.StatusBadRequest,
	})
}

func domainMissingField(field string) error {
	return domain.ValidationErrors{domain.NewMissingFieldError(field)}
}
