package orchestration

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

var identifierReplacer = strings.NewReplacer(" ", "", "-", "", "_", "")

// deriveIdentifier builds a short uppercase project identifier from the
// project name: first 10 characters, uppercased, separators stripped,
// capped at 12.
func deriveIdentifier(name string) string {
	prefix := name
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	id := identifierReplacer.Replace(strings.ToUpper(prefix))
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

func (o *Orchestrator) executeCreateProject(ctx context.Context, req Request, p CreateProjectParams) string {
	name := strings.TrimSpace(p.Name)
	if len(name) < 3 {
		return "❌ Project name must be at least 3 characters long."
	}

	identifier := deriveIdentifier(name)
	if identifier == "" {
		return "❌ Could not generate a valid identifier for the project."
	}

	if exists, err := o.store.ProjectExists(ctx, req.Workspace.ID, name); err != nil {
		o.logger.Error().Err(err).Msg("checking project existence")
		return fmt.Sprintf("❌ Failed to create project: %v", err)
	} else if exists {
		return fmt.Sprintf("❌ Project '%s' already exists in this workspace.", name)
	}

	if exists, err := o.store.ProjectIdentifierExists(ctx, req.Workspace.ID, identifier); err != nil {
		o.logger.Error().Err(err).Msg("checking project identifier existence")
		return fmt.Sprintf("❌ Failed to create project: %v", err)
	} else if exists {
		return fmt.Sprintf("❌ A project with identifier '%s' already exists in this workspace.", identifier)
	}

	description := p.Description
	if description == "" {
		description = name
	}

	project, err := o.store.CreateProject(ctx, model.Project{
		ID:          uuid.NewString(),
		WorkspaceID: req.Workspace.ID,
		Name:        name,
		Identifier:  identifier,
		Description: description,
		CreatedByID: req.User.ID,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("project", name).Msg("creating project")
		return fmt.Sprintf("❌ Failed to create project: %v", err)
	}

	// The creator administers the project so follow-up assignment
	// requests against it can succeed.
	if err := o.store.AddProjectMember(ctx, model.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		MemberID:  req.User.ID,
		Role:      model.RoleAdmin,
	}); err != nil {
		o.logger.Warn().Err(err).Msg("adding creator as project member")
	}

	o.notify(ctx, req, "project", project.ID,
		"Project created",
		fmt.Sprintf("Project '%s' (%s) was created.", project.Name, project.Identifier))

	return fmt.Sprintf("✅ Successfully created project '%s' with identifier '%s'", project.Name, project.Identifier)
}

func (o *Orchestrator) executeCreateIssue(ctx context.Context, req Request, p CreateIssueParams) string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return "❌ Could not extract a valid title from your request."
	}

	project, err := o.resolveProject(ctx, req.Workspace.ID, p.ProjectRef)
	if err != nil {
		o.logger.Error().Err(err).Msg("resolving project for issue")
		return fmt.Sprintf("❌ Failed to create issue: %v", err)
	}
	if project == nil {
		return "❌ No projects found in this workspace to create an issue."
	}

	state, err := o.store.FirstStateForProject(ctx, project.ID)
	if err != nil {
		o.logger.Error().Err(err).Msg("looking up default state")
		return fmt.Sprintf("❌ Failed to create issue: %v", err)
	}
	if state == nil {
		created, err := o.store.CreateState(ctx, model.State{
			ID:          uuid.NewString(),
			WorkspaceID: req.Workspace.ID,
			ProjectID:   project.ID,
			Name:        "Todo",
			Color:       model.DefaultStateColor,
			Group:       model.StateGroupUnstarted,
		})
		if err != nil {
			o.logger.Error().Err(err).Msg("creating default state")
			return fmt.Sprintf("❌ Failed to create issue: %v", err)
		}
		state = &created
	}

	description := p.Description
	if description == "" {
		description = title
	}

	issue, err := o.store.CreateIssue(ctx, model.Issue{
		ID:              uuid.NewString(),
		WorkspaceID:     req.Workspace.ID,
		ProjectID:       project.ID,
		StateID:         &state.ID,
		Name:            title,
		DescriptionHTML: fmt.Sprintf("<p>%s</p>", description),
		Priority:        model.PriorityNone,
		CreatedByID:     req.User.ID,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("title", title).Msg("creating issue")
		return fmt.Sprintf("❌ Failed to create issue: %v", err)
	}

	o.notify(ctx, req, "issue", issue.ID,
		"Issue created",
		fmt.Sprintf("Issue #%d '%s' was created in project '%s'.", issue.SequenceID, issue.Name, project.Name))

	return fmt.Sprintf("✅ Successfully created issue #%d: '%s' in project '%s'", issue.SequenceID, issue.Name, project.Name)
}

func (o *Orchestrator) executeCreateCycle(ctx context.Context, req Request, p CreateCycleParams) string {
	name := strings.TrimSpace(p.Name)
	if len(name) < 3 {
		return "❌ Cycle name must be at least 3 characters long."
	}

	project, err := o.resolveProject(ctx, req.Workspace.ID, p.ProjectRef)
	if err != nil {
		o.logger.Error().Err(err).Msg("resolving project for cycle")
		return fmt.Sprintf("❌ Failed to create cycle: %v", err)
	}
	if project == nil {
		return "❌ No projects found in this workspace to create a cycle."
	}

	if exists, err := o.store.CycleExists(ctx, project.ID, name); err != nil {
		o.logger.Error().Err(err).Msg("checking cycle existence")
		return fmt.Sprintf("❌ Failed to create cycle: %v", err)
	} else if exists {
		return fmt.Sprintf("❌ Cycle '%s' already exists in project '%s'.", name, project.Name)
	}

	description := p.Description
	if description == "" {
		description = name
	}

	cycle, err := o.store.CreateCycle(ctx, model.Cycle{
		ID:          uuid.NewString(),
		WorkspaceID: req.Workspace.ID,
		ProjectID:   project.ID,
		Name:        name,
		Description: description,
		OwnedByID:   req.User.ID,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("cycle", name).Msg("creating cycle")
		return fmt.Sprintf("❌ Failed to create cycle: %v", err)
	}

	o.notify(ctx, req, "cycle", cycle.ID,
		"Cycle created",
		fmt.Sprintf("Cycle '%s' was created in project '%s'.", cycle.Name, project.Name))

	return fmt.Sprintf("✅ Successfully created cycle '%s' in project '%s'", cycle.Name, project.Name)
}

func (o *Orchestrator) executeCreateLabel(ctx context.Context, req Request, p CreateLabelParams) string {
	name := strings.TrimSpace(p.Name)
	if len(name) < 2 {
		return "❌ Label name must be at least 2 characters long."
	}

	project, err := o.resolveProject(ctx, req.Workspace.ID, p.ProjectRef)
	if err != nil {
		o.logger.Error().Err(err).Msg("resolving project for label")
		return fmt.Sprintf("❌ Failed to create label: %v", err)
	}
	if project == nil {
		return "❌ No projects found in this workspace to create a label."
	}

	if exists, err := o.store.LabelExists(ctx, project.ID, name); err != nil {
		o.logger.Error().Err(err).Msg("checking label existence")
		return fmt.Sprintf("❌ Failed to create label: %v", err)
	} else if exists {
		return fmt.Sprintf("❌ Label '%s' already exists in project '%s'.", name, project.Name)
	}

	label, err := o.store.CreateLabel(ctx, model.Label{
		ID:          uuid.NewString(),
		WorkspaceID: req.Workspace.ID,
		ProjectID:   project.ID,
		Name:        name,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("label", name).Msg("creating label")
		return fmt.Sprintf("❌ Failed to create label: %v", err)
	}

	o.notify(ctx, req, "label", label.ID,
		"Label created",
		fmt.Sprintf("Label '%s' was created in project '%s'.", label.Name, project.Name))

	return fmt.Sprintf("✅ Successfully created label '%s' in project '%s'", label.Name, project.Name)
}

func (o *Orchestrator) executeCreateState(ctx context.Context, req Request, p CreateStateParams) string {
	name := strings.TrimSpace(p.Name)
	if len(name) < 3 {
		return "❌ State name must be at least 3 characters long."
	}

	project, err := o.resolveProject(ctx, req.Workspace.ID, p.ProjectRef)
	if err != nil {
		o.logger.Error().Err(err).Msg("resolving project for state")
		return fmt.Sprintf("❌ Failed to create state: %v", err)
	}
	if project == nil {
		return "❌ No projects found in this workspace to create a state."
	}

	if exists, err := o.store.StateExists(ctx, project.ID, name); err != nil {
		o.logger.Error().Err(err).Msg("checking state existence")
		return fmt.Sprintf("❌ Failed to create state: %v", err)
	} else if exists {
		return fmt.Sprintf("❌ State '%s' already exists in project '%s'.", name, project.Name)
	}

	state, err := o.store.CreateState(ctx, model.State{
		ID:          uuid.NewString(),
		WorkspaceID: req.Workspace.ID,
		ProjectID:   project.ID,
		Name:        name,
		Color:       model.DefaultStateColor,
		Group:       model.StateGroupBacklog,
	})
	if err != nil {
		o.logger.Error().Err(err).Str("state", name).Msg("creating state")
		return fmt.Sprintf("❌ Failed to create state: %v", err)
	}

	o.notify(ctx, req, "state", state.ID,
		"State created",
		fmt.Sprintf("State '%s' was created in project '%s'.", state.Name, project.Name))

	return fmt.Sprintf("✅ Successfully created state '%s' in project '%s'", state.Name, project.Name)
}
