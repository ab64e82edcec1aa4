package model

import "time"

// Issue priorities.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
	PriorityNone   = "none"
)

// ValidPriorities lists the accepted priority values in display order.
var ValidPriorities = []string{
	PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, PriorityNone,
}

// IsValidPriority reports whether p is one of the accepted priorities.
func IsValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Issue is a unit of work inside a project. SequenceID is the
// workspace-scoped human-readable number (the "#123" in references),
// distinct from the internal UUID primary key.
type Issue struct {
	ID              string     `json:"id" db:"id"`
	WorkspaceID     string     `json:"workspace_id" db:"workspace_id"`
	ProjectID       string     `json:"project_id" db:"project_id"`
	StateID         *string    `json:"state_id" db:"state_id"`
	SequenceID      int        `json:"sequence_id" db:"sequence_id"`
	Name            string     `json:"name" db:"name"`
	DescriptionHTML string     `json:"description_html" db:"description_html"`
	Priority        string     `json:"priority" db:"priority"`
	TargetDate      *time.Time `json:"target_date" db:"target_date"`
	StartDate       *time.Time `json:"start_date" db:"start_date"`
	CreatedByID     string     `json:"created_by_id" db:"created_by_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IssueAssignee is the join record between an issue and an assigned user.
// The (issue, assignee) pair is unique; assignment is idempotent.
type IssueAssignee struct {
	ID          string    `json:"id" db:"id"`
	IssueID     string    `json:"issue_id" db:"issue_id"`
	AssigneeID  string    `json:"assignee_id" db:"assignee_id"`
	ProjectID   string    `json:"project_id" db:"project_id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
