// FILE: internal/controller/auth_controller.go
package controller

import (
	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	ForgotPassword(ctx *fiber.Ctx) error
	ResetPassword(ctx *fiber.Ctx) error
	VerifyEmail(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("/register", c.Register)
	h.Post("/verify-email", c.VerifyEmail)
	h.Post("/login", c.Login)
	h.Post("/refresh", c.Refresh)
	h.Post("/forgot-password", c.ForgotPassword)
	h.Post("/reset-password", c.ResetPassword)
	h.Post("/logout", c.Logout)
	h.Get("/me", serverutils.JwtMiddleware, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("User registered successfully. Check your email for the verification code.", res))
}

func (c *authController) VerifyEmail(ctx *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.VerifyEmail(ctx.Context(), &req); err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Email verified successfully", nil))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	ipAddress := ctx.IP()
	userAgent := ctx.Get("User-Agent")

	res, err := c.service.Login(ctx.Context(), &req, ipAddress, userAgent)
	if err != nil {
		return fail(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Refresh(ctx *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ipAddress := ctx.IP()
	userAgent := ctx.Get("User-Agent")

	res, err := c.service.Refresh(ctx.Context(), &req, ipAddress, userAgent)
	if err != nil {
		return fail(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Token refreshed", res))
}

func (c *authController) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	// Always succeed so the endpoint cannot be used to probe accounts.
	c.service.ForgotPassword(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse[any]("If email exists, reset token sent", nil))
}

func (c *authController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.ResetPassword(ctx.Context(), &req); err != nil {
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password reset successful", nil))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		// Stateless logout still succeeds without a parseable body.
		return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
	}

	// Revocation failure is invisible to the client; the access token
	// expires on its own either way.
	_ = c.service.Logout(ctx.Context(), req.RefreshToken)

	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.Me(ctx.Context(), userId)
	if err != nil {
		return fail(ctx, fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Current user", res))
}
