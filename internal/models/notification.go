package models

import "time"

// Notification types emitted by the social-graph and post paths.
// Unfollow, unlike and comments never produce a notification.
const (
	NotificationTypeLike   = "like"
	NotificationTypeFollow = "follow"
)

// Notification represents a fan-out event record (PostgreSQL).
// FromID and ToID hold user ObjectID hex since users live in MongoDB.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FromID    string    `json:"from" gorm:"size:24;index"`
	ToID      string    `json:"to" gorm:"size:24;index"`
	Type      string    `json:"type" gorm:"size:20;index"`
	Read      bool      `json:"read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// NotificationView is a notification with its actor hydrated.
type NotificationView struct {
	ID        uint        `json:"id"`
	From      UserCompact `json:"from"`
	Type      string      `json:"type"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"createdAt"`
}
