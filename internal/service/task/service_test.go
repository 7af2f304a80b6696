package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/mocks"
	"crm-pulse/internal/service/dispatch"
	"crm-pulse/internal/service/helpers"
)

type taskFixture struct {
	svc          *service
	taskRepo     *mocks.TaskRepository
	customerRepo *mocks.CustomerRepository
	userRepo     *mocks.UserRepository
	activitySvc  *mocks.ActivityService
	notifSvc     *mocks.NotificationService
	pusher       *mocks.Pusher
	actor        *domain.Identity
	customerID   uuid.UUID
	now          time.Time
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		taskRepo:     new(mocks.TaskRepository),
		customerRepo: new(mocks.CustomerRepository),
		userRepo:     new(mocks.UserRepository),
		activitySvc:  new(mocks.ActivityService),
		notifSvc:     new(mocks.NotificationService),
		pusher:       &mocks.Pusher{Connections: 1},
		actor:        &domain.Identity{UserID: uuid.New(), WorkspaceID: uuid.New(), Role: domain.RoleSales},
		customerID:   uuid.New(),
		now:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	dispatcher := dispatch.NewService(f.activitySvc, f.notifSvc, f.pusher, f.userRepo, nil)
	f.svc = NewService(f.taskRepo, f.customerRepo, f.userRepo, dispatcher).(*service)
	f.svc.now = func() time.Time { return f.now }

	f.customerRepo.On("GetByID", mock.Anything, f.actor.WorkspaceID, f.customerID).
		Return(&domain.Customer{ID: f.customerID, WorkspaceID: f.actor.WorkspaceID, Name: "Acme"}, nil)
	return f
}

func (f *taskFixture) expectActivity(typ domain.ActivityType) {
	f.activitySvc.On("Record", mock.Anything, f.actor.WorkspaceID, &f.customerID, mock.Anything,
		mock.MatchedBy(func(p domain.ActivityPayload) bool { return p.ActivityType() == typ })).
		Return(&domain.Activity{ID: uuid.New(), Type: typ}, nil).Once()
}

func (f *taskFixture) expectNotification(typ domain.NotificationType, target uuid.UUID) {
	f.notifSvc.On("Create", mock.Anything, mock.MatchedBy(func(in domain.NewNotificationInput) bool {
		return in.UserID == target && in.Payload.NotificationType() == typ
	})).Return(&domain.Notification{ID: uuid.New(), UserID: target, Type: typ}, nil).Once()
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned to a teammate", func(t *testing.T) {
		f := newTaskFixture()
		teammate := uuid.New()

		f.userRepo.On("BelongsToWorkspace", ctx, f.actor.WorkspaceID, teammate).Return(true, nil).Once()
		f.taskRepo.On("Create", ctx, mock.MatchedBy(func(task *domain.Task) bool {
			return task.AssignedUserID == teammate && task.OwnerUserID == f.actor.UserID && task.Status == domain.TaskPending
		})).Return(nil).Once()
		f.expectActivity(domain.ActivityTaskCreated)
		f.expectNotification(domain.NotifTaskAssigned, teammate)

		task, err := f.svc.Create(ctx, f.actor, f.customerID, domain.CreateTaskInput{
			Title:          "  Send proposal ",
			AssignedUserID: &teammate,
		})
		require.NoError(t, err)
		assert.Equal(t, "Send proposal", task.Title)

		sent := f.pusher.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, teammate, sent[0].UserID)

		f.activitySvc.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("defaults to the actor without a notification", func(t *testing.T) {
		f := newTaskFixture()

		f.taskRepo.On("Create", ctx, mock.MatchedBy(func(task *domain.Task) bool {
			return task.AssignedUserID == f.actor.UserID
		})).Return(nil).Once()
		f.expectActivity(domain.ActivityTaskCreated)

		_, err := f.svc.Create(ctx, f.actor, f.customerID, domain.CreateTaskInput{Title: "Follow up"})
		require.NoError(t, err)

		f.notifSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, f.pusher.Sent())
	})

	t.Run("assignee outside the workspace", func(t *testing.T) {
		f := newTaskFixture()
		stranger := uuid.New()
		f.userRepo.On("BelongsToWorkspace", ctx, f.actor.WorkspaceID, stranger).Return(false, nil).Once()

		_, err := f.svc.Create(ctx, f.actor, f.customerID, domain.CreateTaskInput{Title: "x", AssignedUserID: &stranger})
		assert.ErrorIs(t, err, helpers.ErrAssigneeNotInWorkspace)
		f.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank title", func(t *testing.T) {
		f := newTaskFixture()
		_, err := f.svc.Create(ctx, f.actor, f.customerID, domain.CreateTaskInput{Title: "   "})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("customer from another workspace", func(t *testing.T) {
		f := newTaskFixture()
		other := uuid.New()
		f.customerRepo.On("GetByID", ctx, f.actor.WorkspaceID, other).Return(nil, nil).Once()

		_, err := f.svc.Create(ctx, f.actor, other, domain.CreateTaskInput{Title: "x"})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()

	existing := func(f *taskFixture, owner uuid.UUID) *domain.Task {
		return &domain.Task{
			ID:             uuid.New(),
			WorkspaceID:    f.actor.WorkspaceID,
			CustomerID:     f.customerID,
			OwnerUserID:    owner,
			AssignedUserID: f.actor.UserID,
			Title:          "Call back",
			Status:         domain.TaskPending,
		}
	}

	t.Run("completion notifies the owner", func(t *testing.T) {
		f := newTaskFixture()
		owner := uuid.New()
		task := existing(f, owner)

		f.taskRepo.On("GetByID", ctx, f.actor.WorkspaceID, f.customerID, task.ID).Return(task, nil).Once()
		f.taskRepo.On("Update", ctx, task).Return(nil).Once()
		f.expectActivity(domain.ActivityTaskUpdated)
		f.expectNotification(domain.NotifTaskCompleted, owner)

		status := domain.TaskCompleted
		got, err := f.svc.Update(ctx, f.actor, f.customerID, task.ID, domain.UpdateTaskInput{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, domain.TaskCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
		assert.Equal(t, f.now, *got.CompletedAt)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("owner completing own task is silent", func(t *testing.T) {
		f := newTaskFixture()
		task := existing(f, f.actor.UserID)

		f.taskRepo.On("GetByID", ctx, f.actor.WorkspaceID, f.customerID, task.ID).Return(task, nil).Once()
		f.taskRepo.On("Update", ctx, task).Return(nil).Once()
		f.expectActivity(domain.ActivityTaskUpdated)

		status := domain.TaskCompleted
		_, err := f.svc.Update(ctx, f.actor, f.customerID, task.ID, domain.UpdateTaskInput{Status: &status})
		require.NoError(t, err)

		f.notifSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("reopening clears completion", func(t *testing.T) {
		f := newTaskFixture()
		task := existing(f, f.actor.UserID)
		done := f.now.Add(-time.Hour)
		task.Status = domain.TaskCompleted
		task.CompletedAt = &done

		f.taskRepo.On("GetByID", ctx, f.actor.WorkspaceID, f.customerID, task.ID).Return(task, nil).Once()
		f.taskRepo.On("Update", ctx, task).Return(nil).Once()
		f.expectActivity(domain.ActivityTaskUpdated)

		status := domain.TaskPending
		got, err := f.svc.Update(ctx, f.actor, f.customerID, task.ID, domain.UpdateTaskInput{Status: &status})
		require.NoError(t, err)
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("reassignment notifies the new assignee", func(t *testing.T) {
		f := newTaskFixture()
		task := existing(f, f.actor.UserID)
		teammate := uuid.New()

		f.taskRepo.On("GetByID", ctx, f.actor.WorkspaceID, f.customerID, task.ID).Return(task, nil).Once()
		f.userRepo.On("BelongsToWorkspace", ctx, f.actor.WorkspaceID, teammate).Return(true, nil).Once()
		f.taskRepo.On("Update", ctx, task).Return(nil).Once()
		f.expectActivity(domain.ActivityTaskUpdated)
		f.expectNotification(domain.NotifTaskAssigned, teammate)

		_, err := f.svc.Update(ctx, f.actor, f.customerID, task.ID, domain.UpdateTaskInput{AssignedUserID: &teammate})
		require.NoError(t, err)

		sent := f.pusher.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, teammate, sent[0].UserID)
	})

	t.Run("no changes writes nothing", func(t *testing.T) {
		f := newTaskFixture()
		task := existing(f, f.actor.UserID)
		title := "Call back"

		f.taskRepo.On("GetByID", ctx, f.actor.WorkspaceID, f.customerID, task.ID).Return(task, nil).Once()

		_, err := f.svc.Update(ctx, f.actor, f.customerID, task.ID, domain.UpdateTaskInput{Title: &title})
		require.NoError(t, err)

		f.taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.activitySvc.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newTaskFixture()
		status := domain.TaskStatus("Archived")
		_, err := f.svc.Update(ctx, f.actor, f.customerID, uuid.New(), domain.UpdateTaskInput{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown task", func(t *testing.T) {
		f := newTaskFixture()
		id := uuid.New()
		f.taskRepo.On("GetByID", ctx, f.actor.WorkspaceID, f.customerID, id).Return(nil, nil).Once()

		title := "x"
		_, err := f.svc.Update(ctx, f.actor, f.customerID, id, domain.UpdateTaskInput{Title: &title})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
