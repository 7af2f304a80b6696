package helpers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"crm-pulse/internal/repository"
)

var ErrAssigneeNotInWorkspace = errors.New("assigned user is not a member of this workspace")

// EnsureWorkspaceMember rejects user ids from other workspaces or that do not exist.
func EnsureWorkspaceMember(ctx context.Context, userRepo repository.UserRepository, workspaceID, userID uuid.UUID) error {
	ok, err := userRepo.BelongsToWorkspace(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotInWorkspace
	}
	return nil
}

// TrimOptional trims s and maps blank strings to nil.
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func SameUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func SameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
