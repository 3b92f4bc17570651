package handler

import (
	"os"

	"github.com/Tarunsai01/ARIA/internal/pkg/logger"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/service"
	internalWS "github.com/Tarunsai01/ARIA/internal/websocket"
	"github.com/Tarunsai01/ARIA/pkg/events"
	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service   *service.NotificationService
	publisher *pktNats.Publisher
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, pub *pktNats.Publisher, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		publisher: pub,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs upgrades the connection and binds it to the authenticated user.
// The token is accepted from the `token` query param because browsers
// cannot set headers on the upgrade request; Authorization still works
// for non-browser clients.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		if auth := c.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			tokenStr = auth[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing token"))
	}

	token, err := jwt.Parse(tokenStr, serverutils.JwtKeyFunc, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	userID, err := userIDFromClaims(token.Claims)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

// currentUserId reads the id the JWT middleware stored in request
// locals. Only used on routes registered behind the middleware.
func currentUserId(c *fiber.Ctx) uuid.UUID {
	raw, _ := c.Locals("user_id").(string)
	id, _ := uuid.Parse(raw)
	return id
}

func userIDFromClaims(claims jwt.Claims) (uuid.UUID, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	idStr, ok := mapClaims["user_id"].(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token missing user_id")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}
	return id, nil
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userId := currentUserId(c)

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	notifications, total, err := h.service.GetNotifications(c.UserContext(), userId, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return c.JSON(serverutils.SuccessResponse("Notifications", fiber.Map{
		"items": notifications,
		"total": total,
		"page":  offset/limit + 1,
		"limit": limit,
	}))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userId := currentUserId(c)

	count, err := h.service.GetUnreadCount(c.UserContext(), userId)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return c.JSON(serverutils.SuccessResponse("Unread count", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification ID"))
	}

	if err := h.service.MarkAsRead(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return c.JSON(serverutils.SuccessResponse[any]("Marked as read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userId := currentUserId(c)

	if err := h.service.MarkAllAsRead(c.UserContext(), userId); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return c.JSON(serverutils.SuccessResponse[any]("All marked as read", nil))
}

func (h *NotificationHandler) GetPreferences(c *fiber.Ctx) error {
	userId := currentUserId(c)

	pref, err := h.service.GetPreferences(c.UserContext(), userId)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return c.JSON(serverutils.SuccessResponse("Preferences", pref))
}

func (h *NotificationHandler) UpdatePreferences(c *fiber.Ctx) error {
	userId := currentUserId(c)

	var req struct {
		MutedTypes  []string `json:"muted_types"`
		PushEnabled *bool    `json:"push_enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	pushEnabled := true
	if req.PushEnabled != nil {
		pushEnabled = *req.PushEnabled
	}

	pref, err := h.service.UpdatePreferences(c.UserContext(), userId, req.MutedTypes, pushEnabled)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return c.JSON(serverutils.SuccessResponse("Preferences updated", pref))
}

// TriggerTestEvent publishes a TEST_EVENT for the current user so the
// WebSocket path can be verified end to end. Development only.
func (h *NotificationHandler) TriggerTestEvent(c *fiber.Ctx) error {
	if os.Getenv("GO_ENV") == "production" {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Not found"))
	}
	if h.publisher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "Event publisher not configured"))
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	if req.Message == "" {
		req.Message = "ping"
	}

	evt := events.New("TEST_EVENT", map[string]interface{}{
		"user_id": c.Locals("user_id"),
		"message": req.Message,
	})
	if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return c.JSON(serverutils.SuccessResponse("Event published", evt))
}

// Broadcast queues a SYSTEM_BROADCAST notification for every user.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	if req.Title == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Title and Message are required"))
	}

	evt := events.New("SYSTEM_BROADCAST", map[string]interface{}{
		"title":   req.Title,
		"message": req.Message,
	})
	if h.publisher != nil {
		if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}
	return c.JSON(serverutils.SuccessResponse[any]("Broadcast queued", nil))
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification/v1")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("/", h.List)
	notif.Get("/unread-count", h.UnreadCount)
	notif.Get("/preferences", h.GetPreferences)
	notif.Put("/preferences", h.UpdatePreferences)
	notif.Patch("/:id/read", h.MarkAsRead)
	notif.Patch("/read-all", h.MarkAllAsRead)
	notif.Post("/broadcast", h.Broadcast)
	notif.Post("/test-event", h.TriggerTestEvent)

	// Token via query param: browsers cannot set headers on the upgrade request.
	router.Get("/ws/notifications", h.ServeWs)
}
