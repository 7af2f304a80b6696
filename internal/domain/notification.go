package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	WorkspaceID uuid.UUID        `json:"workspace_id" db:"workspace_id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	ActorUserID *uuid.UUID       `json:"actor_user_id,omitempty" db:"actor_user_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	Data        json.RawMessage  `json:"data" db:"data"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	ReadAt      *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifTaskAssigned     NotificationType = "TASK_ASSIGNED"
	NotifTaskCompleted    NotificationType = "TASK_COMPLETED"
	NotifCustomerAssigned NotificationType = "CUSTOMER_ASSIGNED"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifTaskAssigned, NotifTaskCompleted, NotifCustomerAssigned:
		return true
	}
	return false
}

// NotificationPayload is implemented by the data struct of every notification type.
type NotificationPayload interface {
	NotificationType() NotificationType
}

type TaskAssignedData struct {
	CustomerID uuid.UUID  `json:"customer_id"`
	TaskID     uuid.UUID  `json:"task_id"`
	Title      string     `json:"title"`
	DueAt      *time.Time `json:"due_at,omitempty"`
}

type TaskCompletedData struct {
	CustomerID uuid.UUID `json:"customer_id"`
	TaskID     uuid.UUID `json:"task_id"`
	Title      string    `json:"title"`
}

type CustomerAssignedData struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

func (TaskAssignedData) NotificationType() NotificationType     { return NotifTaskAssigned }
func (TaskCompletedData) NotificationType() NotificationType    { return NotifTaskCompleted }
func (CustomerAssignedData) NotificationType() NotificationType { return NotifCustomerAssigned }

// Subject is the short human label of the payload (task title or customer name).
func (d TaskAssignedData) Subject() string     { return d.Title }
func (d TaskCompletedData) Subject() string    { return d.Title }
func (d CustomerAssignedData) Subject() string { return d.CustomerName }

type NewNotificationInput struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	ActorUserID *uuid.UUID
	Payload     NotificationPayload
}
