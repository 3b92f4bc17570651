package server

import (
	"log"

	"github.com/Tarunsai01/ARIA/internal/bootstrap"
	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App. Sign videos arrive inline, so the body
	// limit is well above the usual JSON-API default.
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // 50MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	// Avatars and uploaded media are plain files on disk.
	app.Static("/uploads", "./uploads")

	// Unauthenticated liveness probe
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)

	c.CredentialController.RegisterRoutes(api)
	c.TranslationController.RegisterRoutes(api)
	c.StreamController.RegisterRoutes(api)
	c.KnowledgeController.RegisterRoutes(api)
	c.HistoryController.RegisterRoutes(api)
	c.FileController.RegisterRoutes(api)

	c.NotificationHandler.RegisterRoutes(api)
}
