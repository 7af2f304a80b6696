package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/email"
	"crm-pulse/internal/service/session"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)

	ErrCurrentPasswordRequired = errors.New("current password is required")
	ErrWrongPassword           = errors.New("current password is incorrect")
	ErrPasswordUnchanged       = errors.New("new password must be different")
)

type Service interface {
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.AuthResult, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, identity *domain.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, identity *domain.Identity, input domain.UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, identity *domain.Identity, input domain.ChangePasswordInput) error
}

type service struct {
	userRepo   repository.UserRepository
	sessionSvc session.Service
	emailSvc   email.Service
}

func NewService(userRepo repository.UserRepository, sessionSvc session.Service, emailSvc email.Service) Service {
	return &service{
		userRepo:   userRepo,
		sessionSvc: sessionSvc,
		emailSvc:   emailSvc,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredentials checks the fields shared by registration and member creation.
func ValidateCredentials(fullName, email, password string) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, ".") {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *service) Register(ctx context.Context, input domain.CreateUserInput) (*domain.AuthResult, error) {
	emailAddr := NormalizeEmail(input.Email)
	if err := ValidateCredentials(input.FullName, emailAddr, input.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(input.FullName)
	workspaceName := strings.TrimSpace(input.WorkspaceName)
	if workspaceName == "" {
		workspaceName = fullName + "'s workspace"
	}

	workspace := &domain.Workspace{
		ID:   uuid.New(),
		Name: workspaceName,
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Role:         domain.RoleAdmin,
	}

	if err := s.userRepo.CreateWithWorkspace(ctx, workspace, user); err != nil {
		return nil, err
	}

	result, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendWelcomeEmail(context.Background(), user.Email, user.FullName, workspace.Name); err != nil {
				log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send welcome email")
			}
		}()
	}

	return result, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResult, error) {
	emailAddr := NormalizeEmail(input.Email)
	if emailAddr == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *service) issue(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	token, sess, err := s.sessionSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      user,
	}, nil
}

// Logout is idempotent: unknown and already revoked tokens succeed.
func (s *service) Logout(ctx context.Context, token string) error {
	return s.sessionSvc.Revoke(ctx, token)
}

func (s *service) Me(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, identity *domain.Identity, input domain.UpdateProfileInput) (*domain.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrNameRequired
	}

	user, err := s.userRepo.UpdateFullName(ctx, identity.UserID, fullName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
// Existing sessions stay valid.
func (s *service) ChangePassword(ctx context.Context, identity *domain.Identity, input domain.ChangePasswordInput) error {
	if input.CurrentPassword == "" {
		return ErrCurrentPasswordRequired
	}
	if len(input.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if input.NewPassword == input.CurrentPassword {
		return ErrPasswordUnchanged
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updated, err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword))
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	log.Info().Str("user_id", user.ID.String()).Msg("password changed")
	return nil
}
