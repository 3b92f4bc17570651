// FILE: internal/controller/translation_controller.go
package controller

import (
	"errors"
	"io"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"
	"github.com/Tarunsai01/ARIA/pkg/provider"

	"github.com/gofiber/fiber/v2"
)

type ITranslationController interface {
	RegisterRoutes(r fiber.Router)
	SignToSpeech(ctx *fiber.Ctx) error
	SpeechToSign(ctx *fiber.Ctx) error
	TextToGloss(ctx *fiber.Ctx) error
	TextToSummary(ctx *fiber.Ctx) error
}

type translationController struct {
	service service.ITranslationService
}

func NewTranslationController(service service.ITranslationService) ITranslationController {
	return &translationController{service: service}
}

func (c *translationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/translate/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/sign-to-speech", c.SignToSpeech)
	h.Post("/speech-to-sign", c.SpeechToSign)
	h.Post("/text-to-gloss", c.TextToGloss)
	h.Post("/text-to-summary", c.TextToSummary)
}

// translationError maps provider error kinds onto HTTP statuses so the
// client can tell "your key is missing" from "the model said no".
func translationError(ctx *fiber.Ctx, err error) error {
	var capErr *provider.CapabilityError
	switch {
	case errors.Is(err, provider.ErrCredentialMissing):
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, provider.ErrUnsupportedProvider):
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &capErr):
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, provider.ErrContentFiltered):
		return fail(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}
	return fail(ctx, fiber.StatusInternalServerError, err.Error())
}

func (c *translationController) SignToSpeech(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SignToSpeechRequest
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

	res, err := c.service.SignToSpeech(ctx.Context(), userId, &req, media)
	if err != nil {
		return translationError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Sign translated", res))
}

func (c *translationController) SpeechToSign(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SpeechToSignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	file, err := ctx.FormFile("audio")
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, "Audio file is required")
	}

	src, err := file.Open()
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SpeechToSign(ctx.Context(), userId, req.Provider, audio, file.Header.Get("Content-Type"), file.Filename)
	if err != nil {
		return translationError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Speech translated to gloss", res))
}

func (c *translationController) TextToGloss(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.TextToGlossRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TextToGloss(ctx.Context(), userId, &req)
	if err != nil {
		return translationError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Text converted to gloss", res))
}

func (c *translationController) TextToSummary(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.TextToSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TextToSummary(ctx.Context(), userId, &req)
	if err != nil {
		return translationError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Text summarized", res))
}
