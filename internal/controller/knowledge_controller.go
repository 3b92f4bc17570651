// FILE: internal/controller/knowledge_controller.go
package controller

import (
	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Add(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	BulkImport(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	service service.IKnowledgeService
}

func NewKnowledgeController(service service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{service: service}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("search", c.Search)
	h.Post("bulk-import", c.BulkImport)
	h.Post("", c.Add)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *knowledgeController) Add(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.AddKnowledgeEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	media, err := parseSignMedia(ctx, req.VideoData, req.ImageData)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Add(ctx.Context(), userId, &req, &media)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Knowledge entry saved", res))
}

func (c *knowledgeController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	category := ctx.Query("category", "")

	res, err := c.service.List(ctx.Context(), userId, category)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Knowledge entries", res))
}

func (c *knowledgeController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "Invalid entry ID")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return fail(ctx, fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Knowledge entry removed", nil))
}

func (c *knowledgeController) BulkImport(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.BulkImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.BulkImport(ctx.Context(), userId, &req)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Entries imported", res))
}

func (c *knowledgeController) Search(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	q := ctx.Query("q", "")
	if q == "" {
		return fail(ctx, fiber.StatusBadRequest, "query parameter 'q' is required")
	}
	limit := ctx.QueryInt("limit", 10)

	res, err := c.service.Search(ctx.Context(), userId, q, limit)
	if err != nil {
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
