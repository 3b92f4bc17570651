package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/internal/pkg/logger"
	"github.com/Tarunsai01/ARIA/internal/repository"
	"github.com/Tarunsai01/ARIA/pkg/events"
	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery pushes real-time updates; implemented by the
// WebSocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start attaches the durable consumer to the event stream.
func (s *NotificationService) Start() {
	if err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Subscriber failed to start", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Listening on events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := event.EventType()

	config, err := s.repo.GetNotificationTypeByCode(ctx, typeCode)
	if err != nil {
		// Unconfigured events are simply not notified about. Ack so the
		// stream does not redeliver them forever.
		s.logger.Warn("NotificationService", "No notification type for event", map[string]interface{}{"code": typeCode, "error": err.Error()})
		return nil
	}
	if !config.IsActive {
		return nil
	}

	if config.TargetType == "BROADCAST" {
		// Push only, no rows. Persisting a broadcast would write one row
		// per account per event.
		if s.delivery != nil {
			s.delivery.Broadcast(s.render(uuid.Nil, config, event))
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		// Returned errors are Nacked upstream and redelivered.
		s.logger.Error("NotificationService", "Recipient resolution failed", map[string]interface{}{"type": typeCode, "error": err})
		return err
	}

	for _, userID := range recipients {
		pref := s.preferencesFor(ctx, userID)
		if pref != nil && pref.Muted(typeCode) {
			continue
		}
		notif := s.render(userID, config, event)
		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", "Notification row not saved", map[string]interface{}{"user_id": userID, "error": err})
			continue
		}
		if s.delivery != nil && (pref == nil || pref.PushEnabled) {
			s.delivery.Send(userID, notif)
		}
	}
	return nil
}

// preferencesFor loads delivery settings, treating a read failure as
// no preferences rather than blocking delivery.
func (s *NotificationService) preferencesFor(ctx context.Context, userID uuid.UUID) *model.UserNotificationPreference {
	pref, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		s.logger.Warn("NotificationService", "Preference lookup failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil
	}
	return pref
}

func (s *NotificationService) resolveRecipients(ctx context.Context, config *model.NotificationType, event events.Event) ([]uuid.UUID, error) {
	switch config.TargetType {
	case "SELF":
		uid, ok := payloadUUID(event.Payload(), "user_id")
		if !ok {
			s.logger.Warn("NotificationService", "SELF-targeted event without user_id", map[string]interface{}{"type": event.EventType()})
			return nil, nil
		}
		return []uuid.UUID{uid}, nil

	case "ADMIN":
		return s.usersWithRole(ctx, "admin")

	case "ROLE":
		return s.usersWithRole(ctx, config.TargetRole)
	}
	return nil, nil
}

func (s *NotificationService) usersWithRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	users, err := s.repo.GetUsersByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.Id)
	}
	return ids, nil
}

// render fills the type's template with the event payload and shapes
// the notification row. Placeholders look like {user_id}.
func (s *NotificationService) render(userID uuid.UUID, config *model.NotificationType, event events.Event) model.Notification {
	payload := event.Payload()

	msg := config.Template
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, "{"+k+"}", fmt.Sprintf("%v", v))
	}

	var actorID *uuid.UUID
	if aid, ok := payloadUUID(payload, "actor_id"); ok {
		actorID = &aid
	}

	entityType, _ := payload["entity_type"].(string)
	var entityID *uuid.UUID
	if eid, ok := payloadUUID(payload, "entity_id"); ok {
		entityID = &eid
	}

	meta := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		meta[k] = v
	}
	if entityType != "" && entityID != nil {
		// Deep link for the frontend notification list.
		meta["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(meta)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		TypeCode:   config.Code,
		Title:      config.DisplayName,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

func payloadUUID(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	str, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetPreferences never returns nil; accounts without a saved row get
// the defaults.
func (s *NotificationService) GetPreferences(ctx context.Context, userID uuid.UUID) (*model.UserNotificationPreference, error) {
	pref, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = &model.UserNotificationPreference{
			UserID:      userID,
			MutedTypes:  []string{},
			PushEnabled: true,
		}
	}
	return pref, nil
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, userID uuid.UUID, mutedTypes []string, pushEnabled bool) (*model.UserNotificationPreference, error) {
	if mutedTypes == nil {
		mutedTypes = []string{}
	}
	pref := &model.UserNotificationPreference{
		UserID:      userID,
		MutedTypes:  mutedTypes,
		PushEnabled: pushEnabled,
	}
	if err := s.repo.SavePreferences(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}
