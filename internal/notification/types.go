package notification

import "time"

// NotificationType represents the notification channel
type NotificationType string

const (
	NotificationTypeSMS NotificationType = "sms"
)

// NotificationStatus represents delivery status
type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// Notification represents a message to be delivered to a patient
type Notification struct {
	ID     string             `json:"id"`
	Type   NotificationType   `json:"type"`
	Status NotificationStatus `json:"status"`

	RecipientName string `json:"recipient_name,omitempty"`
	Phone         string `json:"phone,omitempty"`

	Body string `json:"body"`

	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`

	ErrorMessage string `json:"error_message,omitempty"`
}
