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

// CreateState inserts a new workflow state. Generates a UUID if ID is
// empty and applies the default color and group when unset.
func (s *SQLiteStore) CreateState(
	ctx context.Context,
	st model.State,
) (model.State, error) {
	if strings.TrimSpace(st.Name) == "" {
		return model.State{}, fmt.Errorf("state name must not be empty")
	}
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	if st.Color == "" {
		st.Color = model.DefaultStateColor
	}
	if st.Group == "" {
		st.Group = model.StateGroupBacklog
	}
	st.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO states (id, workspace_id, project_id, name, color, group_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.WorkspaceID, st.ProjectID, st.Name, st.Color, st.Group, st.CreatedAt,
	)
	if err != nil {
		return model.State{}, fmt.Errorf("creating state %s: %w", st.Name, err)
	}
	return st, nil
}

// GetStates retrieves all states across a workspace's projects.
func (s *SQLiteStore) GetStates(
	ctx context.Context,
	workspaceID string,
) ([]model.State, error) {
	var states []model.State
	err := s.db.SelectContext(ctx, &states,
		"SELECT * FROM states WHERE workspace_id = ? ORDER BY created_at", workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying states: %w", err)
	}
	return states, nil
}

// GetStateByID retrieves a single state by ID. Returns (nil, nil) when
// no state has that ID.
func (s *SQLiteStore) GetStateByID(
	ctx context.Context,
	id string,
) (*model.State, error) {
	var st model.State
	err := s.db.GetContext(ctx, &st, "SELECT * FROM states WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting state %s: %w", id, err)
	}
	return &st, nil
}

// FirstStateForProject returns the oldest state in the project, or
// (nil, nil) when the project has no states.
func (s *SQLiteStore) FirstStateForProject(
	ctx context.Context,
	projectID string,
) (*model.State, error) {
	var st model.State
	err := s.db.GetContext(ctx, &st,
		"SELECT * FROM states WHERE project_id = ? ORDER BY created_at LIMIT 1", projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting first state for project %s: %w", projectID, err)
	}
	return &st, nil
}

// FindStateByGroup returns the oldest state in the project belonging to
// the given group, or (nil, nil) when none exists.
func (s *SQLiteStore) FindStateByGroup(
	ctx context.Context,
	projectID, group string,
) (*model.State, error) {
	var st model.State
	err := s.db.GetContext(ctx, &st, `
		SELECT * FROM states
		WHERE project_id = ? AND group_name = ?
		ORDER BY created_at LIMIT 1`, projectID, group)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding state in group %q: %w", group, err)
	}
	return &st, nil
}

// StateExists reports whether a state with the given name exists in the
// project.
func (s *SQLiteStore) StateExists(
	ctx context.Context,
	projectID, name string,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM states WHERE project_id = ? AND name = ?",
		projectID, name)
	if err != nil {
		return false, fmt.Errorf("checking state %q: %w", name, err)
	}
	return count > 0, nil
}

// CountStates returns the number of states across a workspace's projects.
func (s *SQLiteStore) CountStates(
	ctx context.Context,
	workspaceID string,
) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM states WHERE workspace_id = ?", workspaceID)
	if err != nil {
		return 0, fmt.Errorf("counting states: %w", err)
	}
	return count, nil
}
