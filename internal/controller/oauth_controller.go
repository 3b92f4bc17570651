package controller

import (
	"fmt"
	"log"
	"os"

	"github.com/Tarunsai01/ARIA/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

// Both routes are public: the browser lands here before any session exists.
func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/oauth/v1")
	h.Get("/:provider/login", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		log.Printf("[OAuth] login URL for %s: %v", provider, err)
		return fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return ctx.Redirect(url)
}

// Callback exchanges the provider's code for a session and hands the
// browser back to the SPA with the access token in the query string.
func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	code := ctx.Query("code")
	if code == "" {
		return fail(ctx, fiber.StatusBadRequest, "Missing code")
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, code)
	if err != nil {
		log.Printf("[OAuth] callback for %s: %v", provider, err)
		return fail(ctx, fiber.StatusInternalServerError, err.Error())
	}
	log.Printf("[OAuth] User authenticated: %s", res.User.Id)

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	// Token stays out of the log line.
	log.Printf("[OAuth] Redirecting to %s/app?token=***", frontendURL)
	return ctx.Redirect(fmt.Sprintf("%s/app?token=%s", frontendURL, res.AccessToken), fiber.StatusTemporaryRedirect)
}
