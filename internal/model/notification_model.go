package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationType is the registry mapping event codes to notification
// templates. Rows are seeded, not created at runtime.
type NotificationType struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string         `gorm:"type:varchar(50);unique;not null" json:"code"`
	DisplayName string         `gorm:"type:varchar(100);not null" json:"display_name"`
	Template    string         `gorm:"type:text;not null" json:"template"`
	TargetType  string         `gorm:"type:varchar(20);not null" json:"target_type"` // SELF, ADMIN, ROLE or BROADCAST
	TargetRole  string         `gorm:"type:varchar(50)" json:"target_role,omitempty"`
	Priority    string         `gorm:"type:varchar(10);default:'MEDIUM'" json:"priority"`
	Channels    datatypes.JSON `gorm:"type:jsonb;default:'[\"web\"]'" json:"channels"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Notification is one delivered entry in a user's history.
type Notification struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1;index:idx_notifications_user_unread,priority:1" json:"user_id"`
	ActorID    *uuid.UUID       `gorm:"type:uuid" json:"actor_id,omitempty"`
	TypeCode   string           `gorm:"type:varchar(50);not null;index:idx_notifications_type" json:"type_code"`
	Type       NotificationType `gorm:"foreignKey:TypeCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	EntityType string           `gorm:"type:varchar(50);index:idx_notifications_entity,priority:1" json:"entity_type,omitempty"`
	EntityID   *uuid.UUID       `gorm:"type:uuid;index:idx_notifications_entity,priority:2" json:"entity_id,omitempty"`
	Title      string           `gorm:"type:varchar(200);not null" json:"title"`
	Message    string           `gorm:"type:text;not null" json:"message"`
	Metadata   datatypes.JSON   `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead     bool             `gorm:"default:false;index:idx_notifications_user_unread,priority:2" json:"is_read"`
	ReadAt     *time.Time       `json:"read_at,omitempty"`
	CreatedAt  time.Time        `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_user_created,priority:2" json:"created_at"`
}

// UserNotificationPreference holds per-account delivery settings. A muted
// type code is dropped entirely; PushEnabled=false keeps the history row
// but skips the websocket push. Accounts without a row get the defaults.
type UserNotificationPreference struct {
	UserID      uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"user_id"`
	MutedTypes  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"muted_types"`
	PushEnabled bool                        `gorm:"default:true" json:"push_enabled"`
	UpdatedAt   time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Muted reports whether the given type code is muted.
func (p *UserNotificationPreference) Muted(code string) bool {
	for _, m := range p.MutedTypes {
		if m == code {
			return true
		}
	}
	return false
}
