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

// CreateWorkspace inserts a new workspace. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateWorkspace(
	ctx context.Context,
	ws model.Workspace,
) (model.Workspace, error) {
	if strings.TrimSpace(ws.Slug) == "" {
		return model.Workspace{}, fmt.Errorf("workspace slug must not be empty")
	}
	if strings.TrimSpace(ws.Name) == "" {
		return model.Workspace{}, fmt.Errorf("workspace name must not be empty")
	}
	if ws.ID == "" {
		ws.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	ws.CreatedAt = now
	ws.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, slug, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		ws.ID, ws.Slug, ws.Name, ws.CreatedAt, ws.UpdatedAt,
	)
	if err != nil {
		return model.Workspace{}, fmt.Errorf("creating workspace %s: %w", ws.Slug, err)
	}
	return ws, nil
}

// GetWorkspaceBySlug retrieves a workspace by its slug. Returns
// (nil, nil) when no workspace has that slug.
func (s *SQLiteStore) GetWorkspaceBySlug(
	ctx context.Context,
	slug string,
) (*model.Workspace, error) {
	var ws model.Workspace
	err := s.db.GetContext(ctx, &ws,
		"SELECT * FROM workspaces WHERE slug = ?", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting workspace %s: %w", slug, err)
	}
	return &ws, nil
}
