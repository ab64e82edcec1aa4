package orchestration

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/workspace-management/internal/store"
)

func (o *Orchestrator) executeListProjects(ctx context.Context, req Request, p ListProjectsParams) string {
	projects, err := o.store.GetProjects(ctx, req.Workspace.ID)
	if err != nil {
		o.logger.Error().Err(err).Msg("listing projects")
		return fmt.Sprintf("❌ Failed to list projects: %v", err)
	}
	if len(projects) == 0 {
		return "❌ No projects found in this workspace."
	}

	lines := make([]string, 0, len(projects))
	for i, project := range projects {
		if i >= o.opts.ListLimit {
			lines = append(lines, fmt.Sprintf("... and %d more projects", len(projects)-o.opts.ListLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", project.Name, project.Identifier))
	}

	header := fmt.Sprintf("📋 Projects in workspace '%s':", req.Workspace.Name)
	if p.Mine {
		header = "📋 My projects:"
	}
	return header + "\n" + strings.Join(lines, "\n")
}

func (o *Orchestrator) executeListIssues(ctx context.Context, req Request, p ListIssuesParams) string {
	filter := store.IssueFilter{WorkspaceID: req.Workspace.ID}

	projectDesc := "in workspace"
	if p.ProjectRef != "" {
		project, err := o.store.FindProjectByNameOrIdentifier(ctx, req.Workspace.ID, p.ProjectRef)
		if err != nil {
			o.logger.Error().Err(err).Msg("resolving project for issue listing")
			return fmt.Sprintf("❌ Failed to list issues: %v", err)
		}
		if project != nil {
			filter.ProjectID = &project.ID
			projectDesc = fmt.Sprintf("in project '%s'", project.Name)
		} else {
			projectDesc = fmt.Sprintf("in project '%s'", p.ProjectRef)
		}
	}

	assignedDesc := ""
	if strings.EqualFold(p.AssignedTo, "me") {
		userID := req.User.ID
		filter.AssigneeID = &userID
		assignedDesc = " assigned to you"
	}

	total, err := o.store.CountIssues(ctx, filter)
	if err != nil {
		o.logger.Error().Err(err).Msg("counting issues")
		return fmt.Sprintf("❌ Failed to list issues: %v", err)
	}
	if total == 0 {
		return fmt.Sprintf("❌ No issues found %s%s.", projectDesc, assignedDesc)
	}

	filter.Limit = o.opts.ListLimit
	issues, err := o.store.GetIssues(ctx, filter)
	if err != nil {
		o.logger.Error().Err(err).Msg("listing issues")
		return fmt.Sprintf("❌ Failed to list issues: %v", err)
	}

	stateNames := o.stateNames(ctx, req.Workspace.ID)
	lines := make([]string, 0, len(issues)+1)
	for _, issue := range issues {
		stateName := "N/A"
		if issue.StateID != nil {
			if name, ok := stateNames[*issue.StateID]; ok {
				stateName = name
			}
		}
		lines = append(lines, fmt.Sprintf("- #%d: %s (State: %s)", issue.SequenceID, issue.Name, stateName))
	}
	if total > o.opts.ListLimit {
		lines = append(lines, fmt.Sprintf("... and %d more issues", total-o.opts.ListLimit))
	}

	return fmt.Sprintf("📋 Issues %s%s:\n%s", projectDesc, assignedDesc, strings.Join(lines, "\n"))
}

func (o *Orchestrator) executeListCycles(ctx context.Context, req Request) string {
	cycles, err := o.store.GetCycles(ctx, req.Workspace.ID)
	if err != nil {
		o.logger.Error().Err(err).Msg("listing cycles")
		return fmt.Sprintf("❌ Failed to list cycles: %v", err)
	}
	if len(cycles) == 0 {
		return "❌ No cycles found in this workspace."
	}

	projectNames := o.projectNames(ctx, req.Workspace.ID)
	lines := make([]string, 0, len(cycles))
	for i, cycle := range cycles {
		if i >= o.opts.ListLimit {
			lines = append(lines, fmt.Sprintf("... and %d more cycles", len(cycles)-o.opts.ListLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (Project: %s)", cycle.Name, projectNames[cycle.ProjectID]))
	}

	return fmt.Sprintf("📅 Cycles in workspace '%s':\n%s", req.Workspace.Name, strings.Join(lines, "\n"))
}

func (o *Orchestrator) executeListLabels(ctx context.Context, req Request) string {
	labels, err := o.store.GetLabels(ctx, req.Workspace.ID)
	if err != nil {
		o.logger.Error().Err(err).Msg("listing labels")
		return fmt.Sprintf("❌ Failed to list labels: %v", err)
	}
	if len(labels) == 0 {
		return "❌ No labels found in this workspace."
	}

	projectNames := o.projectNames(ctx, req.Workspace.ID)
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		if i >= o.opts.ListLimit {
			lines = append(lines, fmt.Sprintf("... and %d more labels", len(labels)-o.opts.ListLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (Project: %s)", label.Name, projectNames[label.ProjectID]))
	}

	return fmt.Sprintf("🏷️ Labels in workspace '%s':\n%s", req.Workspace.Name, strings.Join(lines, "\n"))
}

func (o *Orchestrator) executeListStates(ctx context.Context, req Request) string {
	states, err := o.store.GetStates(ctx, req.Workspace.ID)
	if err != nil {
		o.logger.Error().Err(err).Msg("listing states")
		return fmt.Sprintf("❌ Failed to list states: %v", err)
	}
	if len(states) == 0 {
		return "❌ No states found in this workspace."
	}

	projectNames := o.projectNames(ctx, req.Workspace.ID)
	lines := make([]string, 0, len(states))
	for i, state := range states {
		if i >= o.opts.ListLimit {
			lines = append(lines, fmt.Sprintf("... and %d more states", len(states)-o.opts.ListLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (Project: %s)", state.Name, projectNames[state.ProjectID]))
	}

	return fmt.Sprintf("⚙️ States in workspace '%s':\n%s", req.Workspace.Name, strings.Join(lines, "\n"))
}

// projectNames returns an id to name map for the workspace's projects.
func (o *Orchestrator) projectNames(ctx context.Context, workspaceID string) map[string]string {
	projects, err := o.store.GetProjects(ctx, workspaceID)
	if err != nil {
		o.logger.Warn().Err(err).Msg("loading project names")
		return map[string]string{}
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}
