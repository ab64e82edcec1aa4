package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/store"
)

// SeedWorkspace creates a workspace with the given slug.
func SeedWorkspace(t *testing.T, s store.Store, slug, name string) model.Workspace {
	t.Helper()

	ws, err := s.CreateWorkspace(context.Background(), model.Workspace{
		ID:   uuid.NewString(),
		Slug: slug,
		Name: name,
	})
	if err != nil {
		t.Fatalf("seeding workspace: %v", err)
	}
	return ws
}

// SeedUser creates an active user.
func SeedUser(t *testing.T, s store.Store, email, displayName string) model.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), model.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

// SeedProject creates a project owned by the given user and adds them
// as an admin member.
func SeedProject(t *testing.T, s store.Store, ws model.Workspace, owner model.User, name, identifier string) model.Project {
	t.Helper()

	p, err := s.CreateProject(context.Background(), model.Project{
		ID:          uuid.NewString(),
		WorkspaceID: ws.ID,
		Name:        name,
		Identifier:  identifier,
		Description: name,
		CreatedByID: owner.ID,
	})
	if err != nil {
		t.Fatalf("seeding project: %v", err)
	}

	if err := s.AddProjectMember(context.Background(), model.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: p.ID,
		MemberID:  owner.ID,
		Role:      model.RoleAdmin,
	}); err != nil {
		t.Fatalf("seeding project member: %v", err)
	}
	return p
}

// SeedState creates a workflow state in the project.
func SeedState(t *testing.T, s store.Store, ws model.Workspace, p model.Project, name, group string) model.State {
	t.Helper()

	st, err := s.CreateState(context.Background(), model.State{
		ID:          uuid.NewString(),
		WorkspaceID: ws.ID,
		ProjectID:   p.ID,
		Name:        name,
		Color:       model.DefaultStateColor,
		Group:       group,
	})
	if err != nil {
		t.Fatalf("seeding state: %v", err)
	}
	return st
}

// SeedIssue creates an issue in the project using its first state.
func SeedIssue(t *testing.T, s store.Store, ws model.Workspace, p model.Project, creator model.User, name string) model.Issue {
	t.Helper()

	state, err := s.FirstStateForProject(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("looking up state for issue seed: %v", err)
	}

	issue := model.Issue{
		ID:              uuid.NewString(),
		WorkspaceID:     ws.ID,
		ProjectID:       p.ID,
		Name:            name,
		DescriptionHTML: "<p>" + name + "</p>",
		Priority:        model.PriorityNone,
		CreatedByID:     creator.ID,
	}
	if state != nil {
		issue.StateID = &state.ID
	}

	created, err := s.CreateIssue(context.Background(), issue)
	if err != nil {
		t.Fatalf("seeding issue: %v", err)
	}
	return created
}
