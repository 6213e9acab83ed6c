package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// SMSProvider interface for SMS gateways
type SMSProvider interface {
	Send(ctx context.Context, notification *Notification) error
}

// MockSMSProvider is an in-memory SMS provider. The demo has no real
// gateway; messages are recorded and logged.
type MockSMSProvider struct {
	mu         sync.RWMutex
	sent       []*Notification
	failOnSend bool
}

// NewMockSMSProvider creates a new mock SMS provider
func NewMockSMSProvider() *MockSMSProvider {
	return &MockSMSProvider{}
}

// Send records the notification as sent
func (p *MockSMSProvider) Send(ctx context.Context, notification *Notification) error {
	if p.failOnSend {
		return fmt.Errorf("mock send failure")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.sent = append(p.sent, notification)
	log.Printf("[MOCK SMS] To: %s, Body: %s", notification.Phone, notification.Body)

	return nil
}

// SetFailOnSend sets whether Send should fail
func (p *MockSMSProvider) SetFailOnSend(fail bool) {
	p.failOnSend = fail
}

// Sent returns all notifications recorded so far
func (p *MockSMSProvider) Sent() []*Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*Notification, len(p.sent))
	copy(out, p.sent)
	return out
}
