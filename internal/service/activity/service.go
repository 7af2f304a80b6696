package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Service interface {
	Record(ctx context.Context, workspaceID uuid.UUID, customerID, actorUserID *uuid.UUID, payload domain.ActivityPayload) (*domain.Activity, error)
	ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID, limit int) ([]domain.Activity, error)
}

type service struct {
	activityRepo repository.ActivityRepository
	customerRepo repository.CustomerRepository
}

func NewService(activityRepo repository.ActivityRepository, customerRepo repository.CustomerRepository) Service {
	return &service{
		activityRepo: activityRepo,
		customerRepo: customerRepo,
	}
}

func (s *service) Record(ctx context.Context, workspaceID uuid.UUID, customerID, actorUserID *uuid.UUID, payload domain.ActivityPayload) (*domain.Activity, error) {
	activity, err := domain.NewActivity(workspaceID, customerID, actorUserID, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity payload: %w", err)
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListByCustomer returns the newest activities first. The customer must belong
// to the workspace.
func (s *service) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID, limit int) ([]domain.Activity, error) {
	customer, err := s.customerRepo.GetByID(ctx, workspaceID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	return s.activityRepo.ListByCustomer(ctx, workspaceID, customerID, domain.ActivityListLimit.Clamp(limit))
}
