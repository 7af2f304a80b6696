package lead

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/dispatch"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrInvalidStage     = errors.New("invalid lead stage")
	ErrInvalidDealValue = errors.New("invalid deal value")
)

type Service interface {
	List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Customer, error)
	Convert(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.ConvertLeadInput) (*domain.Customer, error)
	UpdateStage(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.UpdateLeadStageInput) (*domain.Customer, error)
}

type service struct {
	customerRepo repository.CustomerRepository
	dispatcher   dispatch.Service
}

func NewService(customerRepo repository.CustomerRepository, dispatcher dispatch.Service) Service {
	return &service{
		customerRepo: customerRepo,
		dispatcher:   dispatcher,
	}
}

func (s *service) List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx, workspaceID, true)
}

// Convert marks the customer as a lead. An existing stage is kept, otherwise
// the lead starts at New. A nil deal value keeps the current one.
func (s *service) Convert(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.ConvertLeadInput) (*domain.Customer, error) {
	if input.DealValue != nil && *input.DealValue < 0 {
		return nil, ErrInvalidDealValue
	}

	customer, err := s.customerRepo.ConvertToLead(ctx, actor.WorkspaceID, customerID, input.DealValue)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	data := domain.LeadConvertedData{DealValue: customer.DealValue}
	if customer.LeadStage != nil {
		data.Stage = *customer.LeadStage
	}
	s.dispatcher.RecordActivity(ctx, actor, &customer.ID, data)

	return customer, nil
}

// UpdateStage moves a lead to another stage. Repeating the current stage and
// deal value writes nothing and records no activity.
func (s *service) UpdateStage(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.UpdateLeadStageInput) (*domain.Customer, error) {
	if !input.Stage.IsValid() {
		return nil, ErrInvalidStage
	}
	if input.DealValue != nil && *input.DealValue < 0 {
		return nil, ErrInvalidDealValue
	}

	current, err := s.customerRepo.GetByID(ctx, actor.WorkspaceID, customerID)
	if err != nil {
		return nil, err
	}
	if current == nil || !current.IsLead {
		return nil, ErrLeadNotFound
	}

	sameStage := current.LeadStage != nil && *current.LeadStage == input.Stage
	sameValue := input.DealValue == nil ||
		(current.DealValue != nil && *current.DealValue == *input.DealValue)
	if sameStage && sameValue {
		return current, nil
	}

	updated, err := s.customerRepo.UpdateLeadStage(ctx, actor.WorkspaceID, customerID, input.Stage, input.DealValue)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrLeadNotFound
	}

	s.dispatcher.RecordActivity(ctx, actor, &updated.ID, domain.LeadStageChangedData{
		From:      current.LeadStage,
		To:        input.Stage,
		DealValue: updated.DealValue,
	})

	return updated, nil
}
