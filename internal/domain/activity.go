package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	WorkspaceID uuid.UUID       `json:"workspace_id" db:"workspace_id"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty" db:"customer_id"`
	ActorUserID *uuid.UUID      `json:"actor_user_id,omitempty" db:"actor_user_id"`
	Type        ActivityType    `json:"type" db:"type"`
	Data        json.RawMessage `json:"data" db:"data"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type ActivityType string

const (
	ActivityCustomerCreated  ActivityType = "CUSTOMER_CREATED"
	ActivityCustomerUpdated  ActivityType = "CUSTOMER_UPDATED"
	ActivityNoteAdded        ActivityType = "NOTE_ADDED"
	ActivityNoteUpdated      ActivityType = "NOTE_UPDATED"
	ActivityNoteDeleted      ActivityType = "NOTE_DELETED"
	ActivityTaskCreated      ActivityType = "TASK_CREATED"
	ActivityTaskUpdated      ActivityType = "TASK_UPDATED"
	ActivityLeadConverted    ActivityType = "LEAD_CONVERTED"
	ActivityLeadStageChanged ActivityType = "LEAD_STAGE_CHANGED"
)

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityCustomerCreated, ActivityCustomerUpdated,
		ActivityNoteAdded, ActivityNoteUpdated, ActivityNoteDeleted,
		ActivityTaskCreated, ActivityTaskUpdated,
		ActivityLeadConverted, ActivityLeadStageChanged:
		return true
	}
	return false
}

// ActivityPayload is the data attached to an activity. Each activity type has
// exactly one payload struct, and the struct decides the type.
type ActivityPayload interface {
	ActivityType() ActivityType
}

type CustomerCreatedData struct {
	Name           string     `json:"name"`
	Company        *string    `json:"company"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id,omitempty"`
}

type CustomerChanges struct {
	Name           *string    `json:"name,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Company        *string    `json:"company,omitempty"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id,omitempty"`
	Unassigned     bool       `json:"unassigned,omitempty"`
}

type CustomerUpdatedData struct {
	Changes CustomerChanges `json:"changes"`
}

type NoteAddedData struct {
	NoteID uuid.UUID `json:"note_id"`
	Body   string    `json:"body"`
}

type NoteUpdatedData struct {
	NoteID uuid.UUID `json:"note_id"`
	Body   string    `json:"body"`
}

type NoteDeletedData struct {
	NoteID uuid.UUID `json:"note_id"`
}

type TaskCreatedData struct {
	TaskID         uuid.UUID  `json:"task_id"`
	Title          string     `json:"title"`
	AssignedUserID uuid.UUID  `json:"assigned_user_id"`
	DueAt          *time.Time `json:"due_at,omitempty"`
}

type TaskChanges struct {
	Title          *string     `json:"title,omitempty"`
	Status         *TaskStatus `json:"status,omitempty"`
	DueAt          *time.Time  `json:"due_at,omitempty"`
	DueAtCleared   bool        `json:"due_at_cleared,omitempty"`
	AssignedUserID *uuid.UUID  `json:"assigned_user_id,omitempty"`
}

type TaskUpdatedData struct {
	TaskID  uuid.UUID   `json:"task_id"`
	Title   string      `json:"title"`
	Changes TaskChanges `json:"changes"`
}

type LeadConvertedData struct {
	Stage     LeadStage `json:"stage"`
	DealValue *float64  `json:"deal_value,omitempty"`
}

type LeadStageChangedData struct {
	From      *LeadStage `json:"from"`
	To        LeadStage  `json:"to"`
	DealValue *float64   `json:"deal_value,omitempty"`
}

func (CustomerCreatedData) ActivityType() ActivityType  { return ActivityCustomerCreated }
func (CustomerUpdatedData) ActivityType() ActivityType  { return ActivityCustomerUpdated }
func (NoteAddedData) ActivityType() ActivityType        { return ActivityNoteAdded }
func (NoteUpdatedData) ActivityType() ActivityType      { return ActivityNoteUpdated }
func (NoteDeletedData) ActivityType() ActivityType      { return ActivityNoteDeleted }
func (TaskCreatedData) ActivityType() ActivityType      { return ActivityTaskCreated }
func (TaskUpdatedData) ActivityType() ActivityType      { return ActivityTaskUpdated }
func (LeadConvertedData) ActivityType() ActivityType    { return ActivityLeadConverted }
func (LeadStageChangedData) ActivityType() ActivityType { return ActivityLeadStageChanged }

// NewActivity builds an unsaved activity row from a typed payload.
func NewActivity(workspaceID uuid.UUID, customerID, actorUserID *uuid.UUID, payload ActivityPayload) (*Activity, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Activity{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		CustomerID:  customerID,
		ActorUserID: actorUserID,
		Type:        payload.ActivityType(),
		Data:        data,
	}, nil
}
