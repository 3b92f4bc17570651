package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// fiber 400 error so the error middleware can render them uniformly.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			msgs := make([]string, 0, len(invalid))
			for _, f := range invalid {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", f.Field(), f.Tag()))
			}
			return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
