package main

import (
	"log"

	"github.com/Tarunsai01/ARIA/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes inserts the notification type catalog. Codes
// that already exist are left untouched, so re-running is safe.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in from {device} at {time}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "TRANSLATION_COMPLETED",
			DisplayName: "Translation Completed",
			Template:    "Your {operation_type} translation via {provider} is ready",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "KNOWLEDGE_IMPORTED",
			DisplayName: "Knowledge Import Finished",
			Template:    "Imported {count} entries into your sign knowledge base",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "TEST_EVENT",
			DisplayName: "Test Notification",
			Template:    "This is a test notification: {message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		// Everything below lands in admin inboxes or goes system-wide.
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New User Registration",
			Template:    "New user registered: {email} ({user_id})",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "USER_DELETED",
			DisplayName: "User Account Deleted",
			Template:    "User deleted account: {user_id}",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Notification types seeded successfully.")
}
