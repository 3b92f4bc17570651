// FILE: internal/controller/stream_controller.go
package controller

import (
	"io"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStreamController interface {
	RegisterRoutes(r fiber.Router)
	AudioChunkSummary(ctx *fiber.Ctx) error
	TranscriptionChunkSummary(ctx *fiber.Ctx) error
}

type streamController struct {
	service service.IStreamService
}

func NewStreamController(service service.IStreamService) IStreamController {
	return &streamController{service: service}
}

func (c *streamController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stream/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/audio-chunk-summary", c.AudioChunkSummary)
	h.Post("/transcription-chunk-summary", c.TranscriptionChunkSummary)
}

// AudioChunkSummary takes one recorded chunk as multipart "audio" plus
// previous_context and provider form fields. An empty or tiny chunk is
// a 200 with success=false, never an error: live streams must not drop.
func (c *streamController) AudioChunkSummary(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	providerName := ctx.FormValue("provider")
	if providerName == "" {
		return fail(ctx, fiber.StatusBadRequest, "provider is required")
	}
	previousContext := ctx.FormValue("previous_context")

	var chunk []byte
	var mimeType string
	if file, err := ctx.FormFile("audio"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return fail(ctx, fiber.StatusBadRequest, err.Error())
		}
		defer src.Close()

		chunk, err = io.ReadAll(src)
		if err != nil {
			return fail(ctx, fiber.StatusBadRequest, err.Error())
		}
		mimeType = file.Header.Get("Content-Type")
	}

	res, err := c.service.AudioChunkSummary(ctx.Context(), userId, providerName, chunk, mimeType, previousContext)
	if err != nil {
		return translationError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *streamController) TranscriptionChunkSummary(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.TranscriptionChunkSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TranscriptionChunkSummary(ctx.Context(), userId, &req)
	if err != nil {
		return translationError(ctx, err)
	}
	return ctx.JSON(res)
}
