package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crm-pulse/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, workspaceID uuid.UUID, leadsOnly bool) ([]domain.Customer, error)
	Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.CustomerPatch) (*domain.Customer, error)
	ConvertToLead(ctx context.Context, workspaceID, id uuid.UUID, dealValue *float64) (*domain.Customer, error)
	UpdateLeadStage(ctx context.Context, workspaceID, id uuid.UUID, stage domain.LeadStage, dealValue *float64) (*domain.Customer, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) (bool, error)
}

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, workspace_id, owner_user_id, assigned_user_id, name, phone, email, company, is_lead, lead_stage, deal_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		customer.ID, customer.WorkspaceID, customer.OwnerUserID, customer.AssignedUserID,
		customer.Name, customer.Phone, customer.Email, customer.Company,
		customer.IsLead, customer.LeadStage, customer.DealValue,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	query := `SELECT * FROM customers WHERE id = $1 AND workspace_id = $2`

	err := r.db.GetContext(ctx, &customer, query, id, workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, workspaceID uuid.UUID, leadsOnly bool) ([]domain.Customer, error) {
	customers := []domain.Customer{}

	if leadsOnly {
		query := `
			SELECT * FROM customers
			WHERE workspace_id = $1 AND is_lead = TRUE
			ORDER BY updated_at DESC`
		err := r.db.SelectContext(ctx, &customers, query, workspaceID)
		return customers, err
	}

	query := `
		SELECT * FROM customers
		WHERE workspace_id = $1
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &customers, query, workspaceID)
	return customers, err
}

// Update writes only the columns set in the patch and returns the stored row,
// or nil when the customer no longer exists.
func (r *customerRepository) Update(ctx context.Context, workspaceID, id uuid.UUID, patch domain.CustomerPatch) (*domain.Customer, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, workspaceID, id)
	}

	args := []interface{}{id, workspaceID}
	var sets []string
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Phone.Set {
		set("phone", patch.Phone.Value)
	}
	if patch.Email.Set {
		set("email", patch.Email.Value)
	}
	if patch.Company.Set {
		set("company", patch.Company.Value)
	}
	if patch.AssignedUserID.Set {
		set("assigned_user_id", patch.AssignedUserID.Value)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE customers
		SET %s
		WHERE id = $1 AND workspace_id = $2
		RETURNING *`, strings.Join(sets, ", "))

	return r.returning(ctx, query, args...)
}

// ConvertToLead keeps an existing stage and deal value unless a new value is given.
func (r *customerRepository) ConvertToLead(ctx context.Context, workspaceID, id uuid.UUID, dealValue *float64) (*domain.Customer, error) {
	query := `
		UPDATE customers
		SET is_lead = TRUE, lead_stage = COALESCE(lead_stage, $3),
			deal_value = COALESCE($4, deal_value), updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
		RETURNING *`

	return r.returning(ctx, query, id, workspaceID, string(domain.LeadStageNew), dealValue)
}

func (r *customerRepository) UpdateLeadStage(ctx context.Context, workspaceID, id uuid.UUID, stage domain.LeadStage, dealValue *float64) (*domain.Customer, error) {
	query := `
		UPDATE customers
		SET lead_stage = $3, deal_value = COALESCE($4, deal_value), updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2 AND is_lead = TRUE
		RETURNING *`

	return r.returning(ctx, query, id, workspaceID, string(stage), dealValue)
}

func (r *customerRepository) returning(ctx context.Context, query string, args ...interface{}) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Delete(ctx context.Context, workspaceID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM customers WHERE id = $1 AND workspace_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, workspaceID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
