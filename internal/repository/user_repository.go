package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crm-pulse/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	CreateWithWorkspace(ctx context.Context, workspace *domain.Workspace, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	BelongsToWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.User, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, workspace_id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.WorkspaceID, user.Email, user.PasswordHash, user.FullName, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// CreateWithWorkspace inserts a new workspace and its first user atomically.
func (r *userRepository) CreateWithWorkspace(ctx context.Context, workspace *domain.Workspace, user *domain.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO workspaces (id, name) VALUES ($1, $2) RETURNING created_at`,
		workspace.ID, workspace.Name,
	).Scan(&workspace.CreatedAt)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, workspace_id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		user.ID, workspace.ID, user.Email, user.PasswordHash, user.FullName, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}
	user.WorkspaceID = workspace.ID

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) BelongsToWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND workspace_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, userID, workspaceID)
	return exists, err
}

func (r *userRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT * FROM users WHERE workspace_id = $1 ORDER BY full_name ASC`
	err := r.db.SelectContext(ctx, &users, query, workspaceID)
	return users, err
}

func (r *userRepository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (*domain.User, error) {
	var user domain.User
	query := `
		UPDATE users
		SET full_name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &user, query, id, fullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error) {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
