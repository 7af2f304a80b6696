package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/pkg/i18n"
	"crm-pulse/internal/repository"
)

var (
	ErrSelfNotification = errors.New("notification target is the actor")
	ErrInvalidPayload   = errors.New("notification payload is required")
)

type Service interface {
	Create(ctx context.Context, input domain.NewNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Options struct {
	Locale   string
	CacheTTL time.Duration
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	catalog   *i18n.Catalog
	redis     *redis.Client
	opts      Options
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	catalog *i18n.Catalog,
	redis *redis.Client,
	opts Options,
) Service {
	if opts.Locale == "" {
		opts.Locale = i18n.FallbackLocale
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 2 * time.Minute
	}
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		catalog:   catalog,
		redis:     redis,
		opts:      opts,
	}
}

func (s *service) Create(ctx context.Context, input domain.NewNotificationInput) (*domain.Notification, error) {
	if input.Payload == nil {
		return nil, ErrInvalidPayload
	}
	if input.ActorUserID != nil && *input.ActorUserID == input.UserID {
		return nil, ErrSelfNotification
	}

	data, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification payload: %w", err)
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		WorkspaceID: input.WorkspaceID,
		UserID:      input.UserID,
		ActorUserID: input.ActorUserID,
		Type:        input.Payload.NotificationType(),
		Data:        data,
	}
	notif.Title, notif.Message = s.render(ctx, notif.Type, input)

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	s.invalidateUnread(ctx, notif.UserID)
	return notif, nil
}

func (s *service) render(ctx context.Context, typ domain.NotificationType, input domain.NewNotificationInput) (string, string) {
	actorName := "Someone"
	if input.ActorUserID != nil {
		if actor, err := s.userRepo.GetByID(ctx, *input.ActorUserID); err == nil && actor != nil {
			actorName = actor.FullName
		}
	}

	var subject string
	if p, ok := input.Payload.(interface{ Subject() string }); ok {
		subject = p.Subject()
	}

	vars := map[string]string{"actor": actorName, "subject": subject}
	title := s.translate(string(typ)+".title", vars)
	message := s.translate(string(typ)+".message", vars)
	return title, message
}

func (s *service) translate(key string, vars map[string]string) string {
	if s.catalog == nil {
		return key
	}
	return s.catalog.Render(s.opts.Locale, key, vars)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, unreadOnly, domain.NotificationListLimit.Clamp(limit))
}

// UnreadCount reads through a per-user cache. The cache generation is read
// before the store, so a count that raced a write lands under a generation
// that invalidateUnread has already retired.
func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.redis == nil {
		return s.notifRepo.CountUnread(ctx, userID)
	}

	generation, err := s.redis.Get(ctx, unreadGenerationKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("unread count cache unavailable")
		return s.notifRepo.CountUnread(ctx, userID)
	}

	cacheKey := unreadCacheKey(userID, generation)
	if count, err := s.redis.Get(ctx, cacheKey).Int64(); err == nil {
		return count, nil
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = s.redis.Set(ctx, cacheKey, count, s.opts.CacheTTL).Err()
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.MarkRead(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if notif != nil {
		s.invalidateUnread(ctx, userID)
	}
	return notif, nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.notifRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnread(ctx, userID)
	return updated, nil
}

func (s *service) invalidateUnread(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Incr(ctx, unreadGenerationKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to invalidate unread count cache")
	}
}

func unreadGenerationKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s:gen", userID)
}

func unreadCacheKey(userID uuid.UUID, generation int64) string {
	return fmt.Sprintf("notifications:unread:%s:%d", userID, generation)
}
