package orchestration

import (
	"context"
	"encoding/json"

	"github.com/nhle/workspace-management/internal/store"
)

// workspaceSummary is the context block embedded in language-model
// prompts so classification and extraction can resolve references to
// existing projects and recent work.
type workspaceSummary struct {
	WorkspaceName       string           `json:"workspace_name"`
	Projects            []string         `json:"projects"`
	ProjectIdentifiers  []string         `json:"project_identifiers"`
	TotalProjects       int              `json:"total_projects"`
	TotalIssues         int              `json:"total_issues"`
	TotalCycles         int              `json:"total_cycles"`
	TotalLabels         int              `json:"total_labels"`
	TotalStates         int              `json:"total_states"`
	ProjectDetails      []projectSummary `json:"project_details"`
	RecentIssues        []issueSummary   `json:"recent_issues"`
	ConversationHistory []Turn           `json:"conversation_history,omitempty"`
}

type projectSummary struct {
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Description string `json:"description,omitempty"`
	IssueCount  int    `json:"issue_count"`
}

type issueSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Project   string `json:"project"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

// workspaceContext assembles the prompt context as a JSON string.
// Individual lookup failures are logged and leave their section empty
// rather than failing the whole request.
func (o *Orchestrator) workspaceContext(ctx context.Context, req Request, history []Turn) string {
	ws := req.Workspace
	summary := workspaceSummary{
		WorkspaceName:       ws.Name,
		ConversationHistory: history,
	}

	projects, err := o.store.GetProjects(ctx, ws.ID)
	if err != nil {
		o.logger.Warn().Err(err).Msg("loading projects for context")
	}
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		summary.Projects = append(summary.Projects, p.Name)
		summary.ProjectIdentifiers = append(summary.ProjectIdentifiers, p.Identifier)
		projectNames[p.ID] = p.Name
	}
	summary.TotalProjects = len(projects)

	if n, err := o.store.CountIssues(ctx, store.IssueFilter{WorkspaceID: ws.ID}); err == nil {
		summary.TotalIssues = n
	}
	if n, err := o.store.CountCycles(ctx, ws.ID); err == nil {
		summary.TotalCycles = n
	}
	if n, err := o.store.CountLabels(ctx, ws.ID); err == nil {
		summary.TotalLabels = n
	}
	if n, err := o.store.CountStates(ctx, ws.ID); err == nil {
		summary.TotalStates = n
	}

	for _, p := range projects {
		detail := projectSummary{
			Name:        p.Name,
			Identifier:  p.Identifier,
			Description: truncate(p.Description, 100),
		}
		pid := p.ID
		if n, err := o.store.CountIssues(ctx, store.IssueFilter{WorkspaceID: ws.ID, ProjectID: &pid}); err == nil {
			detail.IssueCount = n
		}
		summary.ProjectDetails = append(summary.ProjectDetails, detail)
	}

	stateNames := o.stateNames(ctx, ws.ID)
	recent, err := o.store.GetIssues(ctx, store.IssueFilter{
		WorkspaceID: ws.ID,
		NewestFirst: true,
		Limit:       5,
	})
	if err != nil {
		o.logger.Warn().Err(err).Msg("loading recent issues for context")
	}
	for _, is := range recent {
		item := issueSummary{
			ID:        is.SequenceID,
			Name:      truncate(is.Name, 50),
			Project:   projectNames[is.ProjectID],
			State:     "N/A",
			CreatedAt: is.CreatedAt.Format("2006-01-02"),
		}
		if is.StateID != nil {
			if name, ok := stateNames[*is.StateID]; ok {
				item.State = name
			}
		}
		summary.RecentIssues = append(summary.RecentIssues, item)
	}

	encoded, err := json.Marshal(summary)
	if err != nil {
		o.logger.Error().Err(err).Msg("encoding workspace context")
		return "{}"
	}
	return string(encoded)
}

// stateNames returns an id to name map for all states in the workspace.
func (o *Orchestrator) stateNames(ctx context.Context, workspaceID string) map[string]string {
	states, err := o.store.GetStates(ctx, workspaceID)
	if err != nil {
		o.logger.Warn().Err(err).Msg("loading states")
		return map[string]string{}
	}
	names := make(map[string]string, len(states))
	for _, st := range states {
		names[st.ID] = st.Name
	}
	return names
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
