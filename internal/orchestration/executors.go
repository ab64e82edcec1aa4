package orchestration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// execute dispatches a validated plan to its executor. The type switch
// over the sealed parameter set covers every intent; a plan without
// bound params (which only an invalid plan can be) reports its
// validation errors instead of executing.
func (o *Orchestrator) execute(ctx context.Context, req Request, plan ActionPlan) string {
	if !plan.Valid {
		return fmt.Sprintf("❌ Cannot execute request: %s", strings.Join(plan.ValidationErrors, ", "))
	}

	switch p := plan.Params.(type) {
	case CreateProjectParams:
		return o.executeCreateProject(ctx, req, p)
	case CreateIssueParams:
		return o.executeCreateIssue(ctx, req, p)
	case CreateCycleParams:
		return o.executeCreateCycle(ctx, req, p)
	case CreateLabelParams:
		return o.executeCreateLabel(ctx, req, p)
	case CreateStateParams:
		return o.executeCreateState(ctx, req, p)
	case ListProjectsParams:
		return o.executeListProjects(ctx, req, p)
	case ListIssuesParams:
		return o.executeListIssues(ctx, req, p)
	case ListCyclesParams:
		return o.executeListCycles(ctx, req)
	case ListLabelsParams:
		return o.executeListLabels(ctx, req)
	case ListStatesParams:
		return o.executeListStates(ctx, req)
	case UpdateIssueParams:
		return o.executeUpdateIssue(ctx, req, p)
	case AssignIssueParams:
		return o.executeAssignIssue(ctx, req, p)
	case SetPriorityParams:
		return o.executeSetPriority(ctx, req, p)
	case SetDueDateParams:
		return o.executeSetDueDate(ctx, req, p)
	case MultiStepParams:
		return o.executeMultiStep(ctx, req, p.Steps)
	case FallbackParams:
		return o.executeFallback(p)
	}

	return o.executeFallback(FallbackParams{Intent: plan.Intent, Entities: plan.Entities})
}

// executeMultiStep runs nested plans strictly in sequence. A failing or
// invalid step is recorded and the remaining steps still run; committed
// steps are never rolled back.
func (o *Orchestrator) executeMultiStep(ctx context.Context, req Request, steps []ActionPlan) string {
	results := make([]string, 0, len(steps))
	for i, step := range steps {
		if !step.Valid {
			results = append(results, fmt.Sprintf("Step %d failed: %s", i+1, strings.Join(step.ValidationErrors, ", ")))
			continue
		}
		results = append(results, fmt.Sprintf("Step %d: %s", i+1, o.execute(ctx, req, step)))
	}
	return "Multi-step operation results:\n" + strings.Join(results, "\n")
}

// executeFallback reports an intent no executor implements. It never
// mutates state.
func (o *Orchestrator) executeFallback(p FallbackParams) string {
	return fmt.Sprintf("ℹ️ Intent '%s' with entities %v is not yet implemented. Available commands: create/list/update/assign issues, projects, cycles, labels, states.", p.Intent, map[string]any(p.Entities))
}

// notify records a best-effort notification for the requesting user
// about a domain mutation. Failures are logged, never surfaced.
func (o *Orchestrator) notify(ctx context.Context, req Request, entityName, entityID, title, message string) {
	n := model.Notification{
		ID:          uuid.NewString(),
		WorkspaceID: req.Workspace.ID,
		UserID:      req.User.ID,
		Title:       title,
		Message:     message,
		EntityName:  entityName,
		EntityID:    entityID,
		CreatedAt:   time.Now(),
	}
	if err := o.store.CreateNotification(ctx, n); err != nil {
		o.logger.Warn().Err(err).Str("entity", entityName).Msg("recording notification")
	}
}

// resolveProject finds the project referenced by name or identifier,
// falling back to the workspace's first project when ref is empty or
// unresolvable. Returns nil when the workspace has no projects.
func (o *Orchestrator) resolveProject(ctx context.Context, workspaceID, ref string) (*model.Project, error) {
	if ref != "" {
		project, err := o.store.FindProjectByNameOrIdentifier(ctx, workspaceID, ref)
		if err != nil {
			return nil, err
		}
		if project != nil {
			return project, nil
		}
	}
	return o.store.FirstProject(ctx, workspaceID)
}
