package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// CreateLabel inserts a new label. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateLabel(
	ctx context.Context,
	l model.Label,
) (model.Label, error) {
	if strings.TrimSpace(l.Name) == "" {
		return model.Label{}, fmt.Errorf("label name must not be empty")
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	l.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO labels (id, workspace_id, project_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.WorkspaceID, l.ProjectID, l.Name, l.Color, l.CreatedAt,
	)
	if err != nil {
		return model.Label{}, fmt.Errorf("creating label %s: %w", l.Name, err)
	}
	return l, nil
}

// GetLabels retrieves all labels across a workspace's projects.
func (s *SQLiteStore) GetLabels(
	ctx context.Context,
	workspaceID string,
) ([]model.Label, error) {
	var labels []model.Label
	err := s.db.SelectContext(ctx, &labels,
		"SELECT * FROM labels WHERE workspace_id = ? ORDER BY created_at", workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying labels: %w", err)
	}
	return labels, nil
}

// LabelExists reports whether a label with the given name exists in the
// project.
func (s *SQLiteStore) LabelExists(
	ctx context.Context,
	projectID, name string,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM labels WHERE project_id = ? AND name = ?",
		projectID, name)
	if err != nil {
		return false, fmt.Errorf("checking label %q: %w", name, err)
	}
	return count > 0, nil
}

// CountLabels returns the number of labels across a workspace's projects.
func (s *SQLiteStore) CountLabels(
	ctx context.Context,
	workspaceID string,
) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM labels WHERE workspace_id = ?", workspaceID)
	if err != nil {
		return 0, fmt.Errorf("counting labels: %w", err)
	}
	return count, nil
}
