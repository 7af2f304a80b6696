package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	WorkspaceID    uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	CustomerID     uuid.UUID  `json:"customer_id" db:"customer_id"`
	OwnerUserID    uuid.UUID  `json:"owner_user_id" db:"owner_user_id"`
	AssignedUserID uuid.UUID  `json:"assigned_user_id" db:"assigned_user_id"`
	Title          string     `json:"title" db:"title"`
	Status         TaskStatus `json:"status" db:"status"`
	DueAt          *time.Time `json:"due_at,omitempty" db:"due_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
)

func (s TaskStatus) IsValid() bool {
	return s == TaskPending || s == TaskCompleted
}

type CreateTaskInput struct {
	Title          string     `json:"title" validate:"required"`
	DueAt          *time.Time `json:"due_at"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
}

type UpdateTaskInput struct {
	Title          *string      `json:"title"`
	Status         *TaskStatus  `json:"status"`
	DueAt          NullableTime `json:"due_at"`
	AssignedUserID *uuid.UUID   `json:"assigned_user_id"`
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Status == nil && !in.DueAt.Set && in.AssignedUserID == nil
}
