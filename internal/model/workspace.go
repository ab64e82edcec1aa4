package model

import "time"

// Workspace is the top-level tenant container. All projects, issues,
// cycles, labels, and states are scoped to exactly one workspace.
type Workspace struct {
	ID        string    `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
