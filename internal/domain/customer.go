package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	WorkspaceID    uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	OwnerUserID    uuid.UUID  `json:"owner_user_id" db:"owner_user_id"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id" db:"assigned_user_id"`
	Name           string     `json:"name" db:"name"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Company        *string    `json:"company,omitempty" db:"company"`
	IsLead         bool       `json:"is_lead" db:"is_lead"`
	LeadStage      *LeadStage `json:"lead_stage,omitempty" db:"lead_stage"`
	DealValue      *float64   `json:"deal_value,omitempty" db:"deal_value"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateCustomerInput struct {
	Name           string     `json:"name" validate:"required"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Company        *string    `json:"company"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
}

type UpdateCustomerInput struct {
	Name           *string        `json:"name"`
	Phone          NullableString `json:"phone"`
	Email          NullableString `json:"email" validate:"omitempty,email"`
	Company        NullableString `json:"company"`
	AssignedUserID NullableUUID   `json:"assigned_user_id"`
}

// CustomerPatch holds the profile columns an update writes. Unset fields keep
// whatever is stored, so concurrent edits of other columns survive.
type CustomerPatch struct {
	Name           *string
	Phone          NullableString
	Email          NullableString
	Company        NullableString
	AssignedUserID NullableUUID
}

func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && !p.Phone.Set && !p.Email.Set && !p.Company.Set && !p.AssignedUserID.Set
}

type LeadStage string

const (
	LeadStageNew        LeadStage = "New"
	LeadStageContacted  LeadStage = "Contacted"
	LeadStageInterested LeadStage = "Interested"
	LeadStageClosed     LeadStage = "Closed"
)

func (s LeadStage) IsValid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageInterested, LeadStageClosed:
		return true
	}
	return false
}

type ConvertLeadInput struct {
	DealValue *float64 `json:"deal_value" validate:"omitempty,min=0"`
}

type UpdateLeadStageInput struct {
	Stage     LeadStage `json:"lead_stage" validate:"required"`
	DealValue *float64  `json:"deal_value" validate:"omitempty,min=0"`
}
