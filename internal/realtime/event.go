package realtime

import (
	"github.com/google/uuid"

	"crm-pulse/internal/domain"
)

const (
	EventConnected       = "connected"
	EventNotificationNew = "notification:new"
)

// Frame is the envelope of every message pushed to a client.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type ConnectedUser struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID uuid.UUID       `json:"workspace_id"`
	Role        domain.UserRole `json:"role"`
}

type ConnectedData struct {
	OK   bool          `json:"ok"`
	User ConnectedUser `json:"user"`
}

func connectedFrame(identity *domain.Identity) Frame {
	return Frame{
		Event: EventConnected,
		Data: ConnectedData{
			OK: true,
			User: ConnectedUser{
				ID:          identity.UserID,
				WorkspaceID: identity.WorkspaceID,
				Role:        identity.Role,
			},
		},
	}
}
