package domain

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	WorkspaceID  uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	CustomerID   uuid.UUID  `json:"customer_id" db:"customer_id"`
	AuthorUserID *uuid.UUID `json:"author_user_id,omitempty" db:"author_user_id"`
	Body         string     `json:"body" db:"body"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type NoteInput struct {
	Body string `json:"body" validate:"required,max=5000"`
}
