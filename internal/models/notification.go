package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType — категория уведомления.
type NotificationType string

const (
	NotificationIntroduction NotificationType = "introduction"
	NotificationMatch        NotificationType = "match"
	NotificationVerification NotificationType = "verification"
	NotificationMessage      NotificationType = "message"
	NotificationPayment      NotificationType = "payment"
)

// Notification — уведомление участнику. IsRead меняется только false -> true.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	ProfileID   uuid.UUID        `json:"profile_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Link        string           `json:"link,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
