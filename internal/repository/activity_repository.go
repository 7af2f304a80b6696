package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crm-pulse/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID, limit int) ([]domain.Activity, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, workspace_id, customer_id, actor_user_id, type, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		activity.ID, activity.WorkspaceID, activity.CustomerID, activity.ActorUserID,
		activity.Type, string(activity.Data),
	).Scan(&activity.CreatedAt)
}

func (r *activityRepository) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID, limit int) ([]domain.Activity, error) {
	query := `
		SELECT * FROM activities
		WHERE workspace_id = $1 AND customer_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	activities := []domain.Activity{}
	err := r.db.SelectContext(ctx, &activities, query, workspaceID, customerID, limit)
	return activities, err
}
