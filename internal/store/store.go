package store

import (
	"context"

	"github.com/nhle/workspace-management/internal/model"
)

// IssueFilter controls filtering and pagination for issue queries.
// All queries are scoped to a workspace; the pointer fields narrow the
// result set further when set.
type IssueFilter struct {
	WorkspaceID string
	ProjectID   *string // project UUID, or nil (all projects)
	AssigneeID  *string // user UUID, or nil (any assignee)
	NewestFirst bool    // order by created_at desc instead of sequence_id asc
	Limit       int
	Offset      int
}

// Store defines the persistence interface for workspaces and their
// projects, issues, cycles, labels, states, users, and notifications.
// Lookup methods whose absence is an expected outcome (Find*, First*,
// GetIssueBySequence) return (nil, nil) when no row matches.
type Store interface {
	// === Workspaces ===

	CreateWorkspace(ctx context.Context, ws model.Workspace) (model.Workspace, error)
	GetWorkspaceBySlug(ctx context.Context, slug string) (*model.Workspace, error)

	// === Users ===

	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	FindUserByNameOrEmail(ctx context.Context, query string) (*model.User, error)

	// === Projects ===

	CreateProject(ctx context.Context, p model.Project) (model.Project, error)
	GetProjects(ctx context.Context, workspaceID string) ([]model.Project, error)
	FirstProject(ctx context.Context, workspaceID string) (*model.Project, error)
	FindProjectByNameOrIdentifier(ctx context.Context, workspaceID, ref string) (*model.Project, error)
	ProjectExists(ctx context.Context, workspaceID, name string) (bool, error)
	ProjectIdentifierExists(ctx context.Context, workspaceID, identifier string) (bool, error)
	AddProjectMember(ctx context.Context, m model.ProjectMember) error
	IsProjectMember(ctx context.Context, projectID, userID string) (bool, error)

	// === States ===

	CreateState(ctx context.Context, st model.State) (model.State, error)
	GetStates(ctx context.Context, workspaceID string) ([]model.State, error)
	GetStateByID(ctx context.Context, id string) (*model.State, error)
	FirstStateForProject(ctx context.Context, projectID string) (*model.State, error)
	FindStateByGroup(ctx context.Context, projectID, group string) (*model.State, error)
	StateExists(ctx context.Context, projectID, name string) (bool, error)
	CountStates(ctx context.Context, workspaceID string) (int, error)

	// === Issues ===

	CreateIssue(ctx context.Context, is model.Issue) (model.Issue, error)
	UpdateIssue(ctx context.Context, is model.Issue) error
	GetIssueBySequence(ctx context.Context, workspaceID string, sequenceID int) (*model.Issue, error)
	GetIssues(ctx context.Context, filter IssueFilter) ([]model.Issue, error)
	CountIssues(ctx context.Context, filter IssueFilter) (int, error)

	// AssignIssue records an issue assignment with get-or-create
	// semantics. It reports true when a new assignment was created and
	// false when the user was already assigned.
	AssignIssue(ctx context.Context, a model.IssueAssignee) (bool, error)

	// === Cycles ===

	CreateCycle(ctx context.Context, c model.Cycle) (model.Cycle, error)
	GetCycles(ctx context.Context, workspaceID string) ([]model.Cycle, error)
	CycleExists(ctx context.Context, projectID, name string) (bool, error)
	CountCycles(ctx context.Context, workspaceID string) (int, error)

	// === Labels ===

	CreateLabel(ctx context.Context, l model.Label) (model.Label, error)
	GetLabels(ctx context.Context, workspaceID string) ([]model.Label, error)
	LabelExists(ctx context.Context, projectID, name string) (bool, error)
	CountLabels(ctx context.Context, workspaceID string) (int, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) error
	GetUnreadNotifications(ctx context.Context, workspaceID, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}
