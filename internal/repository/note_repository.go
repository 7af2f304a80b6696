package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crm-pulse/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, workspaceID, customerID, id uuid.UUID) (*domain.Note, error)
	ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (id, workspace_id, customer_id, author_user_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		note.ID, note.WorkspaceID, note.CustomerID, note.AuthorUserID, note.Body,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepository) GetByID(ctx context.Context, workspaceID, customerID, id uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	query := `SELECT * FROM notes WHERE id = $1 AND customer_id = $2 AND workspace_id = $3`

	err := r.db.GetContext(ctx, &note, query, id, customerID, workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByCustomer(ctx context.Context, workspaceID, customerID uuid.UUID) ([]domain.Note, error) {
	notes := []domain.Note{}
	query := `
		SELECT * FROM notes
		WHERE workspace_id = $1 AND customer_id = $2
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &notes, query, workspaceID, customerID)
	return notes, err
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	query := `
		UPDATE notes
		SET body = $3, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, note.ID, note.WorkspaceID, note.Body).Scan(&note.UpdatedAt)
}

func (r *noteRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1 AND workspace_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, workspaceID)
	return err
}
