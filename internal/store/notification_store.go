package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// CreateNotification inserts a new notification. Generates a UUID if ID
// is empty.
func (s *SQLiteStore) CreateNotification(
	ctx context.Context,
	n model.Notification,
) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, workspace_id, user_id, title, message, entity_name, entity_id, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.WorkspaceID, n.UserID, n.Title, n.Message,
		n.EntityName, n.EntityID, boolToInt(n.Read), n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return nil
}

// GetUnreadNotifications retrieves unread notifications for a user in a
// workspace, newest first.
func (s *SQLiteStore) GetUnreadNotifications(
	ctx context.Context,
	workspaceID, userID string,
) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, workspace_id, user_id, title, message, entity_name, entity_id, read, created_at
		FROM notifications
		WHERE workspace_id = ? AND user_id = ? AND read = 0
		ORDER BY created_at DESC`, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var readInt int
		err := rows.Scan(&n.ID, &n.WorkspaceID, &n.UserID, &n.Title, &n.Message,
			&n.EntityName, &n.EntityID, &readInt, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		n.Read = readInt != 0
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead marks a single notification as read.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}
