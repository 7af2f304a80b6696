package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/dispatch"
	"crm-pulse/internal/service/helpers"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNameRequired     = errors.New("customer name is required")
)

type Service interface {
	Create(ctx context.Context, actor *domain.Identity, input domain.CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Customer, error)
	Update(ctx context.Context, actor *domain.Identity, id uuid.UUID, input domain.UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, actor *domain.Identity, id uuid.UUID) error
}

type service struct {
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	dispatcher   dispatch.Service
}

func NewService(customerRepo repository.CustomerRepository, userRepo repository.UserRepository, dispatcher dispatch.Service) Service {
	return &service{
		customerRepo: customerRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.Identity, input domain.CreateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if input.AssignedUserID != nil {
		if err := helpers.EnsureWorkspaceMember(ctx, s.userRepo, actor.WorkspaceID, *input.AssignedUserID); err != nil {
			return nil, err
		}
	}

	customer := &domain.Customer{
		ID:             uuid.New(),
		WorkspaceID:    actor.WorkspaceID,
		OwnerUserID:    actor.UserID,
		AssignedUserID: input.AssignedUserID,
		Name:           name,
		Phone:          helpers.TrimOptional(input.Phone),
		Email:          helpers.TrimOptional(input.Email),
		Company:        helpers.TrimOptional(input.Company),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, actor, &customer.ID, domain.CustomerCreatedData{
		Name:           customer.Name,
		Company:        customer.Company,
		AssignedUserID: customer.AssignedUserID,
	})

	if customer.AssignedUserID != nil {
		s.dispatcher.Notify(ctx, actor, *customer.AssignedUserID, domain.CustomerAssignedData{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
		})
	}

	return customer, nil
}

func (s *service) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx, workspaceID, false)
}

func (s *service) Update(ctx context.Context, actor *domain.Identity, id uuid.UUID, input domain.UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.GetByID(ctx, actor.WorkspaceID, id)
	if err != nil {
		return nil, err
	}

	var (
		patch   domain.CustomerPatch
		changes domain.CustomerChanges
	)

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if name != customer.Name {
			patch.Name = &name
			changes.Name = &name
		}
	}
	if input.Phone.Set {
		if v := helpers.TrimOptional(input.Phone.Value); !helpers.SameString(v, customer.Phone) {
			patch.Phone = domain.NullableString{Value: v, Set: true}
			changes.Phone = v
		}
	}
	if input.Email.Set {
		if v := helpers.TrimOptional(input.Email.Value); !helpers.SameString(v, customer.Email) {
			patch.Email = domain.NullableString{Value: v, Set: true}
			changes.Email = v
		}
	}
	if input.Company.Set {
		if v := helpers.TrimOptional(input.Company.Value); !helpers.SameString(v, customer.Company) {
			patch.Company = domain.NullableString{Value: v, Set: true}
			changes.Company = v
		}
	}

	if input.AssignedUserID.Set && !helpers.SameUUID(input.AssignedUserID.Value, customer.AssignedUserID) {
		if input.AssignedUserID.Value != nil {
			if err := helpers.EnsureWorkspaceMember(ctx, s.userRepo, actor.WorkspaceID, *input.AssignedUserID.Value); err != nil {
				return nil, err
			}
			changes.AssignedUserID = input.AssignedUserID.Value
		} else {
			changes.Unassigned = true
		}
		patch.AssignedUserID = input.AssignedUserID
	}

	if patch.IsEmpty() {
		return customer, nil
	}

	updated, err := s.customerRepo.Update(ctx, actor.WorkspaceID, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrCustomerNotFound
	}

	s.dispatcher.RecordActivity(ctx, actor, &updated.ID, domain.CustomerUpdatedData{Changes: changes})

	if assignee := patch.AssignedUserID.Value; assignee != nil {
		s.dispatcher.Notify(ctx, actor, *assignee, domain.CustomerAssignedData{
			CustomerID:   updated.ID,
			CustomerName: updated.Name,
		})
	}

	return updated, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.Identity, id uuid.UUID) error {
	deleted, err := s.customerRepo.Delete(ctx, actor.WorkspaceID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCustomerNotFound
	}
	return nil
}
