package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/activity"
	"crm-pulse/internal/service/email"
	"crm-pulse/internal/service/notification"
)

const (
	emailTimeout = 15 * time.Second

	// EventNotificationNew is the realtime event carrying a fresh notification.
	EventNotificationNew = "notification:new"
)

// Pusher delivers an event to the live connections of one user.
type Pusher interface {
	Send(userID uuid.UUID, event string, payload any) int
}

// Service runs the side effects of a committed mutation. None of its methods
// fail the caller: write errors are logged and the mutation stands.
type Service interface {
	RecordActivity(ctx context.Context, actor *domain.Identity, customerID *uuid.UUID, payload domain.ActivityPayload) *domain.Activity
	Notify(ctx context.Context, actor *domain.Identity, targetUserID uuid.UUID, payload domain.NotificationPayload) *domain.Notification
	SetPusher(pusher Pusher)
}

type service struct {
	activitySvc activity.Service
	notifSvc    notification.Service
	pusher      Pusher
	userRepo    repository.UserRepository
	emailSvc    email.Service
}

func NewService(
	activitySvc activity.Service,
	notifSvc notification.Service,
	pusher Pusher,
	userRepo repository.UserRepository,
	emailSvc email.Service,
) Service {
	return &service{
		activitySvc: activitySvc,
		notifSvc:    notifSvc,
		pusher:      pusher,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

func (s *service) SetPusher(pusher Pusher) {
	s.pusher = pusher
}

func (s *service) RecordActivity(ctx context.Context, actor *domain.Identity, customerID *uuid.UUID, payload domain.ActivityPayload) *domain.Activity {
	actorID := actor.UserID
	act, err := s.activitySvc.Record(ctx, actor.WorkspaceID, customerID, &actorID, payload)
	if err != nil {
		ev := log.Warn().Err(err).
			Str("workspace_id", actor.WorkspaceID.String()).
			Str("user_id", actorID.String()).
			Str("type", string(payload.ActivityType()))
		if customerID != nil {
			ev = ev.Str("customer_id", customerID.String())
		}
		ev.Msg("activity write failed")
		return nil
	}
	return act
}

// Notify creates the notification and only then pushes it. Nothing happens
// when the target is the actor.
func (s *service) Notify(ctx context.Context, actor *domain.Identity, targetUserID uuid.UUID, payload domain.NotificationPayload) *domain.Notification {
	if targetUserID == uuid.Nil || targetUserID == actor.UserID {
		return nil
	}

	actorID := actor.UserID
	notif, err := s.notifSvc.Create(ctx, domain.NewNotificationInput{
		WorkspaceID: actor.WorkspaceID,
		UserID:      targetUserID,
		ActorUserID: &actorID,
		Payload:     payload,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("workspace_id", actor.WorkspaceID.String()).
			Str("user_id", targetUserID.String()).
			Str("type", string(payload.NotificationType())).
			Msg("notification write failed")
		return nil
	}

	s.push(notif)
	s.sendEmail(notif)

	return notif
}

func (s *service) push(notif *domain.Notification) {
	if s.pusher == nil {
		return
	}
	delivered := s.pusher.Send(notif.UserID, EventNotificationNew, notif)
	log.Debug().
		Str("user_id", notif.UserID.String()).
		Str("notification_id", notif.ID.String()).
		Int("connections", delivered).
		Msg("notification pushed")
}

func (s *service) sendEmail(notif *domain.Notification) {
	if s.emailSvc == nil {
		return
	}

	go func(n domain.Notification) {
		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()

		recipient, err := s.userRepo.GetByID(ctx, n.UserID)
		if err != nil || recipient == nil || recipient.Email == "" {
			return
		}
		if err := s.emailSvc.SendNotificationEmail(ctx, recipient.Email, recipient.FullName, &n); err != nil {
			log.Warn().Err(err).
				Str("user_id", n.UserID.String()).
				Str("notification_id", n.ID.String()).
				Msg("notification email failed")
		}
	}(*notif)
}
