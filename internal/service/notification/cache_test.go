package notification

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/mocks"
)

func newCachedService(t *testing.T) (Service, *mocks.NotificationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	notifRepo := new(mocks.NotificationRepository)
	svc := NewService(notifRepo, new(mocks.UserRepository), nil, client, Options{CacheTTL: time.Minute})
	return svc, notifRepo, mr
}

func unreadFor(t *testing.T, svc Service, userID uuid.UUID) int64 {
	t.Helper()
	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	return count
}

func TestUnreadCountCache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("second read is served from the cache", func(t *testing.T) {
		svc, notifRepo, mr := newCachedService(t)
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(3), nil).Once()

		assert.Equal(t, int64(3), unreadFor(t, svc, userID))
		assert.Equal(t, int64(3), unreadFor(t, svc, userID))

		notifRepo.AssertNumberOfCalls(t, "CountUnread", 1)
		assert.True(t, mr.Exists(unreadCacheKey(userID, 0)))
	})

	t.Run("entry expires after the ttl", func(t *testing.T) {
		svc, notifRepo, mr := newCachedService(t)
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(3), nil).Once()
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(5), nil).Once()

		assert.Equal(t, int64(3), unreadFor(t, svc, userID))
		mr.FastForward(2 * time.Minute)
		assert.Equal(t, int64(5), unreadFor(t, svc, userID))
	})

	t.Run("create invalidates", func(t *testing.T) {
		svc, notifRepo, _ := newCachedService(t)
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(0), nil).Once()
		notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(1), nil).Once()

		assert.Equal(t, int64(0), unreadFor(t, svc, userID))
		_, err := svc.Create(ctx, domain.NewNotificationInput{
			WorkspaceID: uuid.New(),
			UserID:      userID,
			Payload:     domain.CustomerAssignedData{CustomerName: "Acme"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), unreadFor(t, svc, userID))
	})

	t.Run("mark read invalidates", func(t *testing.T) {
		svc, notifRepo, _ := newCachedService(t)
		notifID := uuid.New()
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(2), nil).Once()
		notifRepo.On("MarkRead", mock.Anything, userID, notifID).
			Return(&domain.Notification{ID: notifID, UserID: userID, IsRead: true}, nil).Once()
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(1), nil).Once()

		assert.Equal(t, int64(2), unreadFor(t, svc, userID))
		_, err := svc.MarkRead(ctx, userID, notifID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), unreadFor(t, svc, userID))
	})

	t.Run("mark all read invalidates", func(t *testing.T) {
		svc, notifRepo, _ := newCachedService(t)
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(4), nil).Once()
		notifRepo.On("MarkAllRead", mock.Anything, userID).Return(int64(4), nil).Once()
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(0), nil).Once()

		assert.Equal(t, int64(4), unreadFor(t, svc, userID))
		_, err := svc.MarkAllRead(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), unreadFor(t, svc, userID))
	})

	t.Run("foreign mark read keeps the cache", func(t *testing.T) {
		svc, notifRepo, _ := newCachedService(t)
		notifID := uuid.New()
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(2), nil).Once()
		notifRepo.On("MarkRead", mock.Anything, userID, notifID).Return(nil, nil).Once()

		assert.Equal(t, int64(2), unreadFor(t, svc, userID))
		_, err := svc.MarkRead(ctx, userID, notifID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), unreadFor(t, svc, userID))
		notifRepo.AssertNumberOfCalls(t, "CountUnread", 1)
	})

	t.Run("falls through to the store when redis is down", func(t *testing.T) {
		svc, notifRepo, mr := newCachedService(t)
		notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(7), nil).Twice()
		mr.Close()

		assert.Equal(t, int64(7), unreadFor(t, svc, userID))
		assert.Equal(t, int64(7), unreadFor(t, svc, userID))
		notifRepo.AssertExpectations(t)
	})
}

func TestUnreadCountRacingCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, notifRepo, _ := newCachedService(t)

	counted := make(chan struct{})
	release := make(chan struct{})
	notifRepo.On("CountUnread", mock.Anything, userID).
		Run(func(mock.Arguments) {
			close(counted)
			<-release
		}).
		Return(int64(0), nil).Once()
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	notifRepo.On("CountUnread", mock.Anything, userID).Return(int64(1), nil).Once()

	stale := make(chan int64, 1)
	go func() {
		count, _ := svc.UnreadCount(ctx, userID)
		stale <- count
	}()

	<-counted
	_, err := svc.Create(ctx, domain.NewNotificationInput{
		WorkspaceID: uuid.New(),
		UserID:      userID,
		Payload:     domain.CustomerAssignedData{CustomerName: "Acme"},
	})
	require.NoError(t, err)
	close(release)
	assert.Equal(t, int64(0), <-stale)

	assert.Equal(t, int64(1), unreadFor(t, svc, userID), "a count read before the insert is never served afterwards")
	notifRepo.AssertExpectations(t)
}
