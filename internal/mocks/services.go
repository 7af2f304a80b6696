package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"crm-pulse/internal/domain"
)

type SessionService struct {
	mock.Mock
}

func (m *SessionService) Issue(ctx context.Context, userID uuid.UUID) (string, *domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Session), args.Error(2)
}

func (m *SessionService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *SessionService) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type ActivityService struct {
	mock.Mock
}

func (m *ActivityService) Record(ctx context.Context, workspaceID uuid.UUID, customerID, actorUserID *uuid.UUID, payload domain.ActivityPayload) (*domain.Activity, error) {
	args := m.Called(ctx, workspaceID, customerID, actorUserID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityService) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, workspaceID, customerID, limit)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, input domain.NewNotificationInput) (*domain.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName, workspaceName string) error {
	args := m.Called(ctx, toEmail, fullName, workspaceName)
	return args.Error(0)
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error {
	args := m.Called(ctx, toEmail, recipientName, notif)
	return args.Error(0)
}

// PushedEvent is one call recorded by Pusher.
type PushedEvent struct {
	UserID  uuid.UUID
	Event   string
	Payload any
}

// Pusher records every Send and reports a fixed number of connections.
type Pusher struct {
	mu          sync.Mutex
	Connections int
	Events      []PushedEvent
}

func (p *Pusher) Send(userID uuid.UUID, event string, payload any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PushedEvent{UserID: userID, Event: event, Payload: payload})
	return p.Connections
}

func (p *Pusher) Sent() []PushedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PushedEvent, len(p.Events))
	copy(out, p.Events)
	return out
}
