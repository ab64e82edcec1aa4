package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// CreateProject inserts a new project. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateProject(
	ctx context.Context,
	project model.Project,
) (model.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return model.Project{}, fmt.Errorf("project name must not be empty")
	}
	if strings.TrimSpace(project.Identifier) == "" {
		return model.Project{}, fmt.Errorf("project identifier must not be empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, workspace_id, name, identifier, description, created_by_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.WorkspaceID, project.Name, project.Identifier,
		project.Description, project.CreatedByID, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project %s: %w", project.Name, err)
	}
	return project, nil
}

// GetProjects retrieves all projects in a workspace, oldest first.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	workspaceID string,
) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects WHERE workspace_id = ? ORDER BY created_at", workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// FirstProject returns the oldest project in the workspace, or
// (nil, nil) when the workspace has no projects.
func (s *SQLiteStore) FirstProject(
	ctx context.Context,
	workspaceID string,
) (*model.Project, error) {
	var project model.Project
	err := s.db.GetContext(ctx, &project,
		"SELECT * FROM projects WHERE workspace_id = ? ORDER BY created_at LIMIT 1", workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting first project: %w", err)
	}
	return &project, nil
}

// FindProjectByNameOrIdentifier locates a project by case-insensitive
// name match, falling back to an upper-cased identifier match. Returns
// (nil, nil) when nothing matches.
func (s *SQLiteStore) FindProjectByNameOrIdentifier(
	ctx context.Context,
	workspaceID, ref string,
) (*model.Project, error) {
	var project model.Project
	err := s.db.GetContext(ctx, &project, `
		SELECT * FROM projects
		WHERE workspace_id = ? AND LOWER(name) = ? LIMIT 1`,
		workspaceID, strings.ToLower(ref))
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.GetContext(ctx, &project, `
			SELECT * FROM projects
			WHERE workspace_id = ? AND identifier = ? LIMIT 1`,
			workspaceID, strings.ToUpper(ref))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding project %q: %w", ref, err)
	}
	return &project, nil
}

// ProjectExists reports whether a project with the given name exists in
// the workspace.
func (s *SQLiteStore) ProjectExists(
	ctx context.Context,
	workspaceID, name string,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM projects WHERE workspace_id = ? AND name = ?",
		workspaceID, name)
	if err != nil {
		return false, fmt.Errorf("checking project %q: %w", name, err)
	}
	return count > 0, nil
}

// ProjectIdentifierExists reports whether a project with the given
// identifier exists in the workspace.
func (s *SQLiteStore) ProjectIdentifierExists(
	ctx context.Context,
	workspaceID, identifier string,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM projects WHERE workspace_id = ? AND identifier = ?",
		workspaceID, identifier)
	if err != nil {
		return false, fmt.Errorf("checking project identifier %q: %w", identifier, err)
	}
	return count > 0, nil
}

// AddProjectMember records a user's membership in a project. Adding an
// existing member is a no-op.
func (s *SQLiteStore) AddProjectMember(
	ctx context.Context,
	m model.ProjectMember,
) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Role == "" {
		m.Role = model.RoleMember
	}
	m.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO project_members (id, project_id, member_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.MemberID, m.Role, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

// IsProjectMember reports whether the user is a member of the project.
func (s *SQLiteStore) IsProjectMember(
	ctx context.Context,
	projectID, userID string,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM project_members WHERE project_id = ? AND member_id = ?",
		projectID, userID)
	if err != nil {
		return false, fmt.Errorf("checking project membership: %w", err)
	}
	return count > 0, nil
}
