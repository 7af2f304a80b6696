package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crm-pulse/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, workspaceID, customerID, id uuid.UUID) (*domain.Task, error)
	ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, workspace_id, customer_id, owner_user_id, assigned_user_id, title, status, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		task.ID, task.WorkspaceID, task.CustomerID, task.OwnerUserID, task.AssignedUserID,
		task.Title, task.Status, task.DueAt,
	).Scan(&task.CreatedAt)
}

func (r *taskRepository) GetByID(ctx context.Context, workspaceID, customerID, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	query := `SELECT * FROM tasks WHERE id = $1 AND customer_id = $2 AND workspace_id = $3`

	err := r.db.GetContext(ctx, &task, query, id, customerID, workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Task, error) {
	tasks := []domain.Task{}
	query := `
		SELECT * FROM tasks
		WHERE workspace_id = $1 AND customer_id = $2
		ORDER BY (status = 'Completed') ASC, due_at ASC NULLS LAST, created_at DESC`
	err := r.db.SelectContext(ctx, &tasks, query, workspaceID, customerID)
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET assigned_user_id = $3, title = $4, status = $5, due_at = $6, completed_at = $7
		WHERE id = $1 AND workspace_id = $2`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.WorkspaceID, task.AssignedUserID, task.Title, task.Status, task.DueAt, task.CompletedAt,
	)
	return err
}
