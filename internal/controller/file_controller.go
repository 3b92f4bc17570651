// FILE: internal/controller/file_controller.go
package controller

import (
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IFileService
}

func NewFileController(service service.IFileService) IFileController {
	return &fileController{service: service}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/upload", c.Upload)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "File is required")
	}

	res, err := c.service.Upload(ctx.Context(), userId, file)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("File uploaded", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.List(ctx.Context(), userId)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("User files", res))
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "Invalid file ID")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return fail(ctx, fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted", nil))
}
