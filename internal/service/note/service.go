package note

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/dispatch"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrBodyRequired     = errors.New("note body is required")
)

type Service interface {
	ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Note, error)
	Create(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.NoteInput) (*domain.Note, error)
	Update(ctx context.Context, actor *domain.Identity, customerID, noteID uuid.UUID, input domain.NoteInput) (*domain.Note, error)
	Delete(ctx context.Context, actor *domain.Identity, customerID, noteID uuid.UUID) error
}

type service struct {
	noteRepo     repository.NoteRepository
	customerRepo repository.CustomerRepository
	dispatcher   dispatch.Service
}

func NewService(noteRepo repository.NoteRepository, customerRepo repository.CustomerRepository, dispatcher dispatch.Service) Service {
	return &service{
		noteRepo:     noteRepo,
		customerRepo: customerRepo,
		dispatcher:   dispatcher,
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

func (s *service) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Note, error) {
	if err := s.ensureCustomer(ctx, workspaceID, customerID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByCustomer(ctx, workspaceID, customerID)
}

func (s *service) Create(ctx context.Context, actor *domain.Identity, customerID uuid.UUID, input domain.NoteInput) (*domain.Note, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrBodyRequired
	}
	if err := s.ensureCustomer(ctx, actor.WorkspaceID, customerID); err != nil {
		return nil, err
	}

	author := actor.UserID
	n := &domain.Note{
		ID:           uuid.New(),
		WorkspaceID:  actor.WorkspaceID,
		CustomerID:   customerID,
		AuthorUserID: &author,
		Body:         body,
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, actor, &customerID, domain.NoteAddedData{NoteID: n.ID, Body: n.Body})
	return n, nil
}

func (s *service) Update(ctx context.Context, actor *domain.Identity, customerID, noteID uuid.UUID, input domain.NoteInput) (*domain.Note, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrBodyRequired
	}

	n, err := s.noteRepo.GetByID(ctx, actor.WorkspaceID, customerID, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNoteNotFound
	}
	if n.Body == body {
		return n, nil
	}

	n.Body = body
	if err := s.noteRepo.Update(ctx, n); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, actor, &customerID, domain.NoteUpdatedData{NoteID: n.ID, Body: n.Body})
	return n, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.Identity, customerID, noteID uuid.UUID) error {
	n, err := s.noteRepo.GetByID(ctx, actor.WorkspaceID, customerID, noteID)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNoteNotFound
	}

	if err := s.noteRepo.Delete(ctx, actor.WorkspaceID, noteID); err != nil {
		return err
	}

	s.dispatcher.RecordActivity(ctx, actor, &customerID, domain.NoteDeletedData{NoteID: n.ID})
	return nil
}
