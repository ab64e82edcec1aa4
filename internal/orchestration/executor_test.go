package orchestration

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/store"
	"github.com/nhle/workspace-management/tests/testutil"
)

// testEnv binds an orchestrator to a fresh in-memory store with one
// workspace and one user.
type testEnv struct {
	store store.Store
	orch  *Orchestrator
	req   Request
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := testutil.NewTestStore(t)
	ws := testutil.SeedWorkspace(t, st, "acme", "Acme Inc")
	user := testutil.SeedUser(t, st, "alice@example.com", "Alice")

	return &testEnv{
		store: st,
		orch:  New(st, nil, nil, Options{}, zerolog.Nop()),
		req:   Request{Workspace: ws, User: user},
	}
}

func (e *testEnv) seedProject(t *testing.T, name, identifier string) model.Project {
	t.Helper()
	p := testutil.SeedProject(t, e.store, e.req.Workspace, e.req.User, name, identifier)
	testutil.SeedState(t, e.store, e.req.Workspace, p, "Todo", model.StateGroupUnstarted)
	return p
}

func TestDeriveIdentifier(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Atlas", "ATLAS"},
		{"my cool project", "MYCOOLPR"},
		{"a-b_c d", "ABCD"},
		{"VeryLongProjectName", "VERYLONGPR"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveIdentifier(tc.name), tc.name)
	}
}

func TestExecuteCreateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result := env.orch.executeCreateProject(ctx, env.req, CreateProjectParams{Name: "Atlas"})
	assert.Contains(t, result, "✅")
	assert.Contains(t, result, "'Atlas'")
	assert.Contains(t, result, "'ATLAS'")

	project, err := env.store.FindProjectByNameOrIdentifier(ctx, env.req.Workspace.ID, "Atlas")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "ATLAS", project.Identifier)

	// The creator becomes a member so later assignments can succeed.
	member, err := env.store.IsProjectMember(ctx, project.ID, env.req.User.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestExecuteCreateProjectDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.orch.executeCreateProject(ctx, env.req, CreateProjectParams{Name: "Atlas"})

	result := env.orch.executeCreateProject(ctx, env.req, CreateProjectParams{Name: "Atlas"})
	assert.Contains(t, result, "❌")
	assert.Contains(t, result, "already exists")

	// Different name, colliding identifier.
	result = env.orch.executeCreateProject(ctx, env.req, CreateProjectParams{Name: "At-las"})
	assert.Contains(t, result, "❌")
	assert.Contains(t, result, "identifier")
}

func TestExecuteCreateProjectShortName(t *testing.T) {
	env := newTestEnv(t)

	result := env.orch.executeCreateProject(context.Background(), env.req, CreateProjectParams{Name: "ab"})
	assert.Equal(t, "❌ Project name must be at least 3 characters long.", result)
}

func TestExecuteCreateIssueNoProjects(t *testing.T) {
	env := newTestEnv(t)

	result := env.orch.executeCreateIssue(context.Background(), env.req, CreateIssueParams{Title: "Fix login"})
	assert.Equal(t, "❌ No projects found in this workspace to create an issue.", result)
}

func TestExecuteCreateIssueLazyState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Project with no states at all.
	p := testutil.SeedProject(t, env.store, env.req.Workspace, env.req.User, "Atlas", "ATLAS")

	result := env.orch.executeCreateIssue(ctx, env.req, CreateIssueParams{Title: "Fix login"})
	assert.Contains(t, result, "✅")
	assert.Contains(t, result, "#1")
	assert.Contains(t, result, "'Atlas'")

	state, err := env.store.FirstStateForProject(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "Todo", state.Name)
	assert.Equal(t, model.StateGroupUnstarted, state.Group)
}

func TestExecuteCreateIssueResolvesProjectByIdentifier(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "Atlas", "ATLAS")
	env.seedProject(t, "Phoenix", "PHX")

	result := env.orch.executeCreateIssue(context.Background(), env.req, CreateIssueParams{
		Title:      "Tune reactor",
		ProjectRef: "phx",
	})
	assert.Contains(t, result, "✅")
	assert.Contains(t, result, "'Phoenix'")
}

func TestExecuteSetPriorityAllValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	issue := testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	for _, priority := range model.ValidPriorities {
		result := env.orch.executeSetPriority(ctx, env.req, SetPriorityParams{
			IssueNumber: fmt.Sprintf("%d", issue.SequenceID),
			Priority:    priority,
		})
		assert.Contains(t, result, "✅")
		assert.Contains(t, result, fmt.Sprintf("#%d", issue.SequenceID))
		assert.Contains(t, result, fmt.Sprintf("'%s'", priority))
	}
}

func TestExecuteSetPriorityInvalid(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	result := env.orch.executeSetPriority(context.Background(), env.req, SetPriorityParams{
		IssueNumber: "1",
		Priority:    "mega",
	})
	assert.Contains(t, result, "❌ Invalid priority 'mega'")
}

func TestExecuteSetDueDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	result := env.orch.executeSetDueDate(ctx, env.req, SetDueDateParams{IssueNumber: "1", DueDate: "2026-09-15"})
	assert.Contains(t, result, "✅")
	assert.Contains(t, result, "'2026-09-15'")

	issue, err := env.store.GetIssueBySequence(ctx, env.req.Workspace.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, issue.TargetDate)
	assert.Equal(t, "2026-09-15", issue.TargetDate.Format("2006-01-02"))
}

func TestExecuteSetDueDateInvalidFormat(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	result := env.orch.executeSetDueDate(context.Background(), env.req, SetDueDateParams{
		IssueNumber: "1",
		DueDate:     "15/09/2026",
	})
	assert.Contains(t, result, "❌ Invalid date format")
	assert.Contains(t, result, "YYYY-MM-DD")
}

func TestExecuteAssignIssueUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	issue := testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	result := env.orch.executeAssignIssue(ctx, env.req, AssignIssueParams{IssueNumber: "1", Assignee: "ghost"})
	assert.Contains(t, result, "❌ User 'ghost' not found")

	// No assignment row was written.
	userID := env.req.User.ID
	n, err := env.store.CountIssues(ctx, store.IssueFilter{
		WorkspaceID: env.req.Workspace.ID,
		AssigneeID:  &userID,
	})
	require.NoError(t, err)
	assert.Zero(t, n)
	_ = issue
}

func TestExecuteAssignIssueNonMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")
	testutil.SeedUser(t, env.store, "carol@example.com", "Carol")

	result := env.orch.executeAssignIssue(ctx, env.req, AssignIssueParams{IssueNumber: "1", Assignee: "carol"})
	assert.Contains(t, result, "❌ User 'carol' is not a member of project 'Atlas'.")
}

func TestExecuteAssignIssueIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	first := env.orch.executeAssignIssue(ctx, env.req, AssignIssueParams{IssueNumber: "1", Assignee: "alice"})
	assert.Contains(t, first, "✅")
	assert.Contains(t, first, "Alice")

	second := env.orch.executeAssignIssue(ctx, env.req, AssignIssueParams{IssueNumber: "1", Assignee: "alice"})
	assert.Contains(t, second, "⚠️")
	assert.Contains(t, second, "already assigned")

	userID := env.req.User.ID
	n, err := env.store.CountIssues(ctx, store.IssueFilter{
		WorkspaceID: env.req.Workspace.ID,
		AssigneeID:  &userID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExecuteUpdateIssueSweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedState(t, env.store, env.req.Workspace, p, "Done", model.StateGroupCompleted)
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	result := env.orch.executeUpdateIssue(ctx, env.req, UpdateIssueParams{
		IssueNumber: "1",
		Text:        "update issue #1 set it to high priority and mark done",
	})
	assert.Contains(t, result, "✅")
	assert.Contains(t, result, "priority to 'high'")
	assert.Contains(t, result, "state to 'Done'")

	issue, err := env.store.GetIssueBySequence(ctx, env.req.Workspace.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, issue.Priority)
}

func TestExecuteUpdateIssueNothingRecognized(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProject(t, "Atlas", "ATLAS")
	testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, "Fix login")

	result := env.orch.executeUpdateIssue(context.Background(), env.req, UpdateIssueParams{
		IssueNumber: "1",
		Text:        "update issue #1 somehow",
	})
	assert.Contains(t, result, "❌ Could not identify what to update in issue #1")
}

func TestExecuteUpdateIssueNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "Atlas", "ATLAS")

	result := env.orch.executeUpdateIssue(context.Background(), env.req, UpdateIssueParams{
		IssueNumber: "99",
		Text:        "update issue #99 to done",
	})
	assert.Equal(t, "❌ Issue #99 not found in this workspace.", result)
}

func TestExecuteListIssuesTruncation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProject(t, "Atlas", "ATLAS")
	for i := 1; i <= 12; i++ {
		testutil.SeedIssue(t, env.store, env.req.Workspace, p, env.req.User, fmt.Sprintf("Issue %d", i))
	}

	result := env.orch.executeListIssues(ctx, env.req, ListIssuesParams{})
	assert.Contains(t, result, "📋")
	assert.Contains(t, result, "- #1:")
	assert.Contains(t, result, "- #10:")
	assert.NotContains(t, result, "- #11:")
	assert.Contains(t, result, "... and 2 more issues")
}

func TestExecuteListIssuesEmpty(t *testing.T) {
	env := newTestEnv(t)

	result := env.orch.executeListIssues(context.Background(), env.req, ListIssuesParams{AssignedTo: "me"})
	assert.Equal(t, "❌ No issues found in workspace assigned to you.", result)
}

func TestExecuteMultiStepPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	steps := []ActionPlan{
		env.orch.planAction(IntentCreateProject, EntityBag{"project_name": "Atlas"}, ""),
		env.orch.planAction(IntentCreateIssue, EntityBag{}, ""),
	}
	plan := ActionPlan{
		Intent:    IntentMultiStep,
		Valid:     true,
		MultiStep: true,
		Steps:     steps,
		Params:    MultiStepParams{Steps: steps},
	}

	result := env.orch.execute(ctx, env.req, plan)
	assert.Contains(t, result, "Multi-step operation results:")
	assert.Contains(t, result, "Step 1: ✅")
	assert.Contains(t, result, "Step 2 failed: Missing issue_title")

	// Only the valid step's mutation is observable.
	project, err := env.store.FindProjectByNameOrIdentifier(ctx, env.req.Workspace.ID, "Atlas")
	require.NoError(t, err)
	assert.NotNil(t, project)
	n, err := env.store.CountIssues(ctx, store.IssueFilter{WorkspaceID: env.req.Workspace.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecuteFallbackIntent(t *testing.T) {
	env := newTestEnv(t)

	plan := env.orch.planAction(Intent("SUMMARIZE_WORKSPACE"), EntityBag{"foo": "bar"}, "")
	result := env.orch.execute(context.Background(), env.req, plan)
	assert.Contains(t, result, "ℹ️")
	assert.Contains(t, result, "SUMMARIZE_WORKSPACE")
	assert.Contains(t, result, "not yet implemented")
}
