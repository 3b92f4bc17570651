package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Tarunsai01/ARIA/pkg/provider"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// shared JSON error envelope. Domain errors from the translation
// backends map to client codes; anything unrecognized is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		var fiberErr *fiber.Error
		var capErr *provider.CapabilityError
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &capErr),
			errors.Is(err, provider.ErrUnsupportedCapability),
			errors.Is(err, provider.ErrUnsupportedProvider),
			errors.Is(err, provider.ErrCredentialMissing):
			code = fiber.StatusBadRequest
		case errors.Is(err, provider.ErrContentFiltered):
			code = fiber.StatusUnprocessableEntity
		case errors.Is(err, gorm.ErrRecordNotFound):
			code = fiber.StatusNotFound
			message = "record not found"
		}

		return c.Status(code).JSON(ErrorResponse(code, message))
	}
}
