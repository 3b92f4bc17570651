package controller

import (
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserId reads the authenticated user's id that the JWT
// middleware stored in request locals. Routes registered behind the
// middleware always have a valid value.
func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	raw, _ := ctx.Locals("user_id").(string)
	id, _ := uuid.Parse(raw)
	return id
}

// fail writes the error envelope with the matching HTTP status.
func fail(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(serverutils.ErrorResponse(status, msg))
}
