package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepo struct {
	types   map[string]*model.NotificationType
	prefs   map[uuid.UUID]*model.UserNotificationPreference
	roles   map[string][]model.User
	created []model.Notification
	saved   []*model.UserNotificationPreference
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *model.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeNotificationRepo) GetNotificationTypeByCode(_ context.Context, code string) (*model.NotificationType, error) {
	t, ok := r.types[code]
	if !ok {
		return nil, errors.New("record not found")
	}
	return t, nil
}

func (r *fakeNotificationRepo) GetUsersByRole(_ context.Context, role string) ([]model.User, error) {
	return r.roles[role], nil
}

func (r *fakeNotificationRepo) GetPreferences(_ context.Context, userID uuid.UUID) (*model.UserNotificationPreference, error) {
	return r.prefs[userID], nil
}

func (r *fakeNotificationRepo) SavePreferences(_ context.Context, pref *model.UserNotificationPreference) error {
	r.saved = append(r.saved, pref)
	return nil
}

type fakeDelivery struct {
	sent      []model.Notification
	broadcast []model.Notification
}

func (d *fakeDelivery) Send(_ uuid.UUID, n model.Notification) { d.sent = append(d.sent, n) }
func (d *fakeDelivery) Broadcast(n model.Notification)         { d.broadcast = append(d.broadcast, n) }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func loginType() *model.NotificationType {
	return &model.NotificationType{
		Code:        "USER_LOGIN",
		DisplayName: "New sign-in",
		Template:    "Signed in from {device}",
		TargetType:  "SELF",
		IsActive:    true,
	}
}

func TestHandleEventSelfTarget(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{types: map[string]*model.NotificationType{"USER_LOGIN": loginType()}}
	delivery := &fakeDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.New("USER_LOGIN", map[string]interface{}{
		"user_id": userID.String(),
		"device":  "Firefox on Linux",
	})
	err := svc.handleEvent(context.Background(), evt)

	assert.NoError(t, err)
	if assert.Len(t, repo.created, 1) {
		assert.Equal(t, userID, repo.created[0].UserID)
		assert.Equal(t, "New sign-in", repo.created[0].Title)
		assert.Equal(t, "Signed in from Firefox on Linux", repo.created[0].Message)
	}
	assert.Len(t, delivery.sent, 1)
}

func TestHandleEventMutedType(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{"USER_LOGIN": loginType()},
		prefs: map[uuid.UUID]*model.UserNotificationPreference{
			userID: {UserID: userID, MutedTypes: []string{"USER_LOGIN"}, PushEnabled: true},
		},
	}
	delivery := &fakeDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.New("USER_LOGIN", map[string]interface{}{"user_id": userID.String()})
	err := svc.handleEvent(context.Background(), evt)

	assert.NoError(t, err)
	assert.Empty(t, repo.created, "muted types must not persist")
	assert.Empty(t, delivery.sent)
}

func TestHandleEventPushDisabled(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{"USER_LOGIN": loginType()},
		prefs: map[uuid.UUID]*model.UserNotificationPreference{
			userID: {UserID: userID, PushEnabled: false},
		},
	}
	delivery := &fakeDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.New("USER_LOGIN", map[string]interface{}{"user_id": userID.String()})
	err := svc.handleEvent(context.Background(), evt)

	assert.NoError(t, err)
	assert.Len(t, repo.created, 1, "row still persisted")
	assert.Empty(t, delivery.sent, "push skipped")
}

func TestHandleEventInactiveType(t *testing.T) {
	cfg := loginType()
	cfg.IsActive = false
	repo := &fakeNotificationRepo{types: map[string]*model.NotificationType{"USER_LOGIN": cfg}}
	delivery := &fakeDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.New("USER_LOGIN", map[string]interface{}{"user_id": uuid.New().String()})
	err := svc.handleEvent(context.Background(), evt)

	assert.NoError(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, delivery.sent)
}

func TestHandleEventBroadcast(t *testing.T) {
	repo := &fakeNotificationRepo{types: map[string]*model.NotificationType{
		"SYSTEM_BROADCAST": {
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			IsActive:    true,
		},
	}}
	delivery := &fakeDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.New("SYSTEM_BROADCAST", map[string]interface{}{"message": "maintenance at noon"})
	err := svc.handleEvent(context.Background(), evt)

	assert.NoError(t, err)
	assert.Empty(t, repo.created, "broadcasts are push-only")
	if assert.Len(t, delivery.broadcast, 1) {
		assert.Equal(t, "maintenance at noon", delivery.broadcast[0].Message)
	}
}

func TestHandleEventUnconfiguredTypeAcked(t *testing.T) {
	repo := &fakeNotificationRepo{types: map[string]*model.NotificationType{}}
	svc := NewNotificationService(repo, nil, &fakeDelivery{}, nopLogger{})

	evt := events.New("SOMETHING_NEW", map[string]interface{}{})
	assert.NoError(t, svc.handleEvent(context.Background(), evt), "unknown events must not be redelivered")
}

func TestHandleEventRoleTarget(t *testing.T) {
	admin1, admin2 := uuid.New(), uuid.New()
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			"USER_DELETED": {
				Code:        "USER_DELETED",
				DisplayName: "Account deleted",
				Template:    "Account {user_id} removed",
				TargetType:  "ADMIN",
				IsActive:    true,
			},
		},
		roles: map[string][]model.User{
			"admin": {{Id: admin1}, {Id: admin2}},
		},
	}
	delivery := &fakeDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.New("USER_DELETED", map[string]interface{}{"user_id": uuid.New().String()})
	err := svc.handleEvent(context.Background(), evt)

	assert.NoError(t, err)
	assert.Len(t, repo.created, 2)
	assert.Len(t, delivery.sent, 2)
}

func TestRenderActionURL(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, nil, nil, nopLogger{})
	entityID := uuid.New()

	notif := svc.render(uuid.New(), loginType(), events.New("USER_LOGIN", map[string]interface{}{
		"entity_type": "translation",
		"entity_id":   entityID.String(),
	}))

	var meta map[string]interface{}
	assert.NoError(t, json.Unmarshal(notif.Metadata, &meta))
	assert.Equal(t, "/translations/"+entityID.String(), meta["action_url"])
	assert.Equal(t, "translation", notif.EntityType)
	if assert.NotNil(t, notif.EntityID) {
		assert.Equal(t, entityID, *notif.EntityID)
	}
}

func TestPreferenceDefaults(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, nil, nopLogger{})

	pref, err := svc.GetPreferences(context.Background(), uuid.New())
	assert.NoError(t, err)
	if assert.NotNil(t, pref) {
		assert.True(t, pref.PushEnabled)
		assert.Empty(t, pref.MutedTypes)
	}
}

func TestUpdatePreferences(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, nil, nopLogger{})
	userID := uuid.New()

	pref, err := svc.UpdatePreferences(context.Background(), userID, []string{"USER_LOGIN"}, false)
	assert.NoError(t, err)
	if assert.NotNil(t, pref) {
		assert.True(t, pref.Muted("USER_LOGIN"))
		assert.False(t, pref.Muted("SYSTEM_BROADCAST"))
		assert.False(t, pref.PushEnabled)
	}
	assert.Len(t, repo.saved, 1)

	// nil muted list normalizes to empty, not null
	pref, err = svc.UpdatePreferences(context.Background(), userID, nil, true)
	assert.NoError(t, err)
	assert.NotNil(t, pref.MutedTypes)
}
