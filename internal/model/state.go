package model

import "time"

// State groups, ordered by workflow progression. Every state belongs to
// exactly one group; fallback lookups resolve states by group rather
// than by name.
const (
	StateGroupBacklog   = "backlog"
	StateGroupUnstarted = "unstarted"
	StateGroupStarted   = "started"
	StateGroupCompleted = "completed"
	StateGroupCancelled = "cancelled"
)

// DefaultStateColor is applied when a state is created without an
// explicit color.
const DefaultStateColor = "#60646C"

// State is a workflow status for issues, scoped to a project.
type State struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	ProjectID   string    `json:"project_id" db:"project_id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	Group       string    `json:"group" db:"group_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
