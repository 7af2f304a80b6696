package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/dispatch"
	"crm-pulse/internal/service/helpers"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("task title is required")
	ErrInvalidStatus    = errors.New("invalid task status")
)

type Service interface {
	ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Task, error)
	Create(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, actor *domain.Identity, customerID, taskID uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error)
}

type service struct {
	taskRepo     repository.TaskRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	dispatcher   dispatch.Service
	now          func() time.Time
}

func NewService(
	taskRepo repository.TaskRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	dispatcher dispatch.Service,
) Service {
	return &service{
		taskRepo:     taskRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

func (s *service) ensureCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, workspaceID, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return nil
}

func (s *service) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Task, error) {
	if err := s.ensureCustomer(ctx, workspaceID, customerID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByCustomer(ctx, workspaceID, customerID)
}

func (s *service) Create(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.ensureCustomer(ctx, actor.WorkspaceID, customerID); err != nil {
		return nil, err
	}

	assignee := actor.UserID
	if input.AssignedUserID != nil {
		if err := helpers.EnsureWorkspaceMember(ctx, s.userRepo, actor.WorkspaceID, *input.AssignedUserID); err != nil {
			return nil, err
		}
		assignee = *input.AssignedUserID
	}

	t := &domain.Task{
		ID:             uuid.New(),
		WorkspaceID:    actor.WorkspaceID,
		CustomerID:     customerID,
		OwnerUserID:    actor.UserID,
		AssignedUserID: assignee,
		Title:          title,
		Status:         domain.TaskPending,
		DueAt:          input.DueAt,
	}

	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, actor, &customerID, domain.TaskCreatedData{
		TaskID:         t.ID,
		Title:          t.Title,
		AssignedUserID: t.AssignedUserID,
		DueAt:          t.DueAt,
	})

	s.dispatcher.Notify(ctx, actor, t.AssignedUserID, domain.TaskAssignedData{
		CustomerID: customerID,
		TaskID:     t.ID,
		Title:      t.Title,
		DueAt:      t.DueAt,
	})

	return t, nil
}

func (s *service) Update(ctx context.Context, actor *domain.Identity, customerID, taskID uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if err := s.ensureCustomer(ctx, actor.WorkspaceID, customerID); err != nil {
		return nil, err
	}

	t, err := s.taskRepo.GetByID(ctx, actor.WorkspaceID, customerID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	var changes domain.TaskChanges
	changed := false

	if input.Title != nil {
		if title := strings.TrimSpace(*input.Title); title != t.Title {
			t.Title = title
			changes.Title = &title
			changed = true
		}
	}

	completed := false
	if input.Status != nil && *input.Status != t.Status {
		status := *input.Status
		t.Status = status
		if status == domain.TaskCompleted {
			now := s.now()
			t.CompletedAt = &now
			completed = true
		} else {
			t.CompletedAt = nil
		}
		changes.Status = &status
		changed = true
	}

	if input.DueAt.Set && !sameTime(input.DueAt.Value, t.DueAt) {
		t.DueAt = input.DueAt.Value
		changes.DueAt = input.DueAt.Value
		changes.DueAtCleared = input.DueAt.Value == nil
		changed = true
	}

	reassigned := false
	if input.AssignedUserID != nil && *input.AssignedUserID != t.AssignedUserID {
		if err := helpers.EnsureWorkspaceMember(ctx, s.userRepo, actor.WorkspaceID, *input.AssignedUserID); err != nil {
			return nil, err
		}
		assignee := *input.AssignedUserID
		t.AssignedUserID = assignee
		changes.AssignedUserID = &assignee
		reassigned = true
		changed = true
	}

	if !changed {
		return t, nil
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, actor, &customerID, domain.TaskUpdatedData{
		TaskID:  t.ID,
		Title:   t.Title,
		Changes: changes,
	})

	if reassigned {
		s.dispatcher.Notify(ctx, actor, t.AssignedUserID, domain.TaskAssignedData{
			CustomerID: customerID,
			TaskID:     t.ID,
			Title:      t.Title,
			DueAt:      t.DueAt,
		})
	}
	if completed {
		s.dispatcher.Notify(ctx, actor, t.OwnerUserID, domain.TaskCompletedData{
			CustomerID: customerID,
			TaskID:     t.ID,
			Title:      t.Title,
		})
	}

	return t, nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
