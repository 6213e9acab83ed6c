package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service dispatches notifications through the configured provider
type Service struct {
	smsProvider SMSProvider
}

// NewService creates a new notification service
func NewService(smsProvider SMSProvider) *Service {
	return &Service{smsProvider: smsProvider}
}

// SendSMS builds and dispatches an SMS notification
func (s *Service) SendSMS(ctx context.Context, recipientName, phone, body string) (*Notification, error) {
	n := &Notification{
		ID:            uuid.New().String(),
		Type:          NotificationTypeSMS,
		Status:        StatusPending,
		RecipientName: recipientName,
		Phone:         phone,
		Body:          body,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.smsProvider.Send(ctx, n); err != nil {
		n.Status = StatusFailed
		n.ErrorMessage = err.Error()
		return n, err
	}

	now := time.Now().UTC()
	n.Status = StatusSent
	n.SentAt = &now
	return n, nil
}
