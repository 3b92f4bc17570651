// FILE: internal/controller/credential_controller.go
package controller

import (
	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICredentialController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type credentialController struct {
	service service.ICredentialService
}

func NewCredentialController(service service.ICredentialService) ICredentialController {
	return &credentialController{service: service}
}

func (c *credentialController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credential/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Delete(":provider", c.Delete)
}

func (c *credentialController) Save(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SaveCredentialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Save(ctx.Context(), userId, &req)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("API key saved", res))
}

func (c *credentialController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.List(ctx.Context(), userId)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Stored credentials", res))
}

func (c *credentialController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	provider := ctx.Params("provider")

	if err := c.service.Delete(ctx.Context(), userId, provider); err != nil {
		return fail(ctx, fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Credential removed", nil))
}
