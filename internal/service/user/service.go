package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/auth"
)

var ErrInvalidRole = errors.New("invalid role")

type Service interface {
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.User, error)
	AddMember(ctx context.Context, actor *domain.Identity, input domain.CreateMemberInput) (*domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.User, error) {
	return s.userRepo.ListByWorkspace(ctx, workspaceID)
}

// AddMember creates a user inside the actor's workspace.
func (s *service) AddMember(ctx context.Context, actor *domain.Identity, input domain.CreateMemberInput) (*domain.User, error) {
	emailAddr := auth.NormalizeEmail(input.Email)
	if err := auth.ValidateCredentials(input.FullName, emailAddr, input.Password); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, auth.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		WorkspaceID:  actor.WorkspaceID,
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
