package model

import "time"

// Notification represents an alert surfaced to a user about activity
// in their workspace (e.g., a domain mutation performed on their behalf
// through the orchestration endpoint).
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// WorkspaceID scopes the notification to a workspace.
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	// UserID is the recipient.
	UserID string `json:"user_id" db:"user_id"`

	// Title is the short headline text.
	Title string `json:"title" db:"title"`

	// Message is the human-readable notification body.
	Message string `json:"message" db:"message"`

	// EntityName identifies the kind of entity this notification refers
	// to ("project", "issue", "cycle", "label", "state").
	EntityName string `json:"entity_name" db:"entity_name"`

	// EntityID is the referenced entity's identifier.
	EntityID string `json:"entity_id" db:"entity_id"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read" db:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
