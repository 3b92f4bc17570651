// FILE: internal/controller/history_controller.go
package controller

import (
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Recent(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type historyController struct {
	service service.IHistoryService
}

func NewHistoryController(service service.IHistoryService) IHistoryController {
	return &historyController{service: service}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("recent", c.Recent)
	h.Get("", c.List)
	h.Get(":id", c.Get)
	h.Delete(":id", c.Delete)
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	operationType := ctx.Query("operation_type", "")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.List(ctx.Context(), userId, operationType, limit, offset)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Translation history", res))
}

func (c *historyController) Recent(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	days := ctx.QueryInt("days", 7)

	res, err := c.service.Recent(ctx.Context(), userId, days)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent translations", res))
}

func (c *historyController) Get(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "Invalid history ID")
	}

	res, err := c.service.Get(ctx.Context(), userId, id)
	if err != nil {
		return fail(ctx, fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("History entry", res))
}

func (c *historyController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "Invalid history ID")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return fail(ctx, fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("History entry deleted", nil))
}
