package middleware

import (
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
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

// ValidateQuizID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateQuizID(id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler
		}

		// Store validated value in context for handlers to use
		c.Locals("validated_quiz_id", id)
		return c.Next()
	}
}
