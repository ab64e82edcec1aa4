package model

import "time"

// Project is a grouping container for issues, cycles, labels, and states
// inside a workspace. The identifier is a short uppercase prefix used in
// human-readable issue references.
type Project struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	Identifier  string    `json:"identifier" db:"identifier"`
	Description string    `json:"description" db:"description"`
	CreatedByID string    `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
