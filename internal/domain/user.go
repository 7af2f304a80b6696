package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WorkspaceID  uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Workspace struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Identity is what a valid session token resolves to. It is attached to every
// authenticated request and to every live realtime connection.
type Identity struct {
	UserID      uuid.UUID `json:"id" db:"user_id"`
	Email       string    `json:"email" db:"email"`
	FullName    string    `json:"full_name" db:"full_name"`
	WorkspaceID uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Role        UserRole  `json:"role" db:"role"`
}

type CreateUserInput struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FullName      string `json:"full_name" validate:"required"`
	WorkspaceName string `json:"workspace_name"`
}

type CreateMemberInput struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	FullName string   `json:"full_name" validate:"required"`
	Role     UserRole `json:"role" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	FullName string `json:"full_name" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type UserRole string

const (
	RoleAdmin  UserRole = "Admin"
	RoleSales  UserRole = "Sales"
	RoleViewer UserRole = "Viewer"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleViewer:
		return true
	default:
		return false
	}
}

func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleSales
}

func (i *Identity) HasAnyRole(roles ...UserRole) bool {
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}
