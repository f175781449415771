package middleware

import (
	"strconv"

	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
	"practice-quest/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedPaginationKey = "validated_pagination"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateULIDParam rejects requests whose path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateULIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errors := vm.validator.ValidateID(param, c.Params(param)); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// ValidatePagination parses limit and offset query parameters. Missing values
// stay zero so services apply their own defaults.
func (vm *ValidationMiddleware) ValidatePagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p dto.Pagination
		var errs domain.ValidationErrors

		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("limit", raw))
			}
			p.Limit = n
		}
		if raw := c.Query("offset"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("offset", raw))
			}
			p.Offset = n
		}
		if len(errs) > 0 {
			return errs
		}

		if errors := vm.validator.ValidatePagination(p); len(errors) > 0 {
			return errors
		}

		c.Locals(ValidatedPaginationKey, p)
		return c.Next()
	}
}
