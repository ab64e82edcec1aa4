package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// CreateCycle inserts a new cycle. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateCycle(
	ctx context.Context,
	c model.Cycle,
) (model.Cycle, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Cycle{}, fmt.Errorf("cycle name must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cycles (id, workspace_id, project_id, name, description, owned_by_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.WorkspaceID, c.ProjectID, c.Name, c.Description,
		c.OwnedByID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return model.Cycle{}, fmt.Errorf("creating cycle %s: %w", c.Name, err)
	}
	return c, nil
}

// GetCycles retrieves all cycles across a workspace's projects.
func (s *SQLiteStore) GetCycles(
	ctx context.Context,
	workspaceID string,
) ([]model.Cycle, error) {
	var cycles []model.Cycle
	err := s.db.SelectContext(ctx, &cycles,
		"SELECT * FROM cycles WHERE workspace_id = ? ORDER BY created_at", workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying cycles: %w", err)
	}
	return cycles, nil
}

// CycleExists reports whether a cycle with the given name exists in the
// project.
func (s *SQLiteStore) CycleExists(
	ctx context.Context,
	projectID, name string,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM cycles WHERE project_id = ? AND name = ?",
		projectID, name)
	if err != nil {
		return false, fmt.Errorf("checking cycle %q: %w", name, err)
	}
	return count > 0, nil
}

// CountCycles returns the number of cycles across a workspace's projects.
func (s *SQLiteStore) CountCycles(
	ctx context.Context,
	workspaceID string,
) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM cycles WHERE workspace_id = ?", workspaceID)
	if err != nil {
		return 0, fmt.Errorf("counting cycles: %w", err)
	}
	return count, nil
}
