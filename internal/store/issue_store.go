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

// CreateIssue inserts a new issue, assigning the next workspace-scoped
// sequence number inside a transaction. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateIssue(
	ctx context.Context,
	is model.Issue,
) (model.Issue, error) {
	if strings.TrimSpace(is.Name) == "" {
		return model.Issue{}, fmt.Errorf("issue name must not be empty")
	}
	if is.ID == "" {
		is.ID = uuid.New().String()
	}
	if is.Priority == "" {
		is.Priority = model.PriorityNone
	}
	now := time.Now().UTC()
	is.CreatedAt = now
	is.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Issue{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var maxSeq int
	err = tx.GetContext(ctx, &maxSeq,
		"SELECT COALESCE(MAX(sequence_id), 0) FROM issues WHERE workspace_id = ?",
		is.WorkspaceID)
	if err != nil {
		return model.Issue{}, fmt.Errorf("getting max sequence: %w", err)
	}
	is.SequenceID = maxSeq + 1

	_, err = tx.ExecContext(ctx, `
		INSERT INTO issues (
			id, workspace_id, project_id, state_id, sequence_id,
			name, description_html, priority, target_date, start_date,
			created_by_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		is.ID, is.WorkspaceID, is.ProjectID, is.StateID, is.SequenceID,
		is.Name, is.DescriptionHTML, is.Priority, is.TargetDate, is.StartDate,
		is.CreatedByID, is.CreatedAt, is.UpdatedAt,
	)
	if err != nil {
		return model.Issue{}, fmt.Errorf("creating issue: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Issue{}, fmt.Errorf("committing issue: %w", err)
	}
	return is, nil
}

// UpdateIssue updates an existing issue's mutable fields by ID.
func (s *SQLiteStore) UpdateIssue(ctx context.Context, is model.Issue) error {
	if strings.TrimSpace(is.Name) == "" {
		return fmt.Errorf("issue name must not be empty")
	}
	is.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE issues SET
			name = ?, description_html = ?, priority = ?, state_id = ?,
			target_date = ?, start_date = ?, updated_at = ?
		WHERE id = ?`,
		is.Name, is.DescriptionHTML, is.Priority, is.StateID,
		is.TargetDate, is.StartDate, is.UpdatedAt,
		is.ID,
	)
	if err != nil {
		return fmt.Errorf("updating issue %s: %w", is.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("issue %s not found", is.ID)
	}
	return nil
}

// GetIssueBySequence retrieves an issue by its workspace-scoped sequence
// number. Returns (nil, nil) when no issue has that number.
func (s *SQLiteStore) GetIssueBySequence(
	ctx context.Context,
	workspaceID string,
	sequenceID int,
) (*model.Issue, error) {
	var is model.Issue
	err := s.db.GetContext(ctx, &is,
		"SELECT * FROM issues WHERE workspace_id = ? AND sequence_id = ?",
		workspaceID, sequenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting issue #%d: %w", sequenceID, err)
	}
	return &is, nil
}

// issueFilterClauses builds the WHERE clause and arguments shared by
// GetIssues and CountIssues.
func issueFilterClauses(filter IssueFilter) (string, []any) {
	clauses := []string{"i.workspace_id = ?"}
	args := []any{filter.WorkspaceID}

	if filter.ProjectID != nil {
		clauses = append(clauses, "i.project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		clauses = append(clauses,
			"EXISTS (SELECT 1 FROM issue_assignees a WHERE a.issue_id = i.id AND a.assignee_id = ?)")
		args = append(args, *filter.AssigneeID)
	}

	return strings.Join(clauses, " AND "), args
}

// GetIssues retrieves issues matching the filter, ordered by sequence
// number (or newest first when requested).
func (s *SQLiteStore) GetIssues(
	ctx context.Context,
	filter IssueFilter,
) ([]model.Issue, error) {
	where, args := issueFilterClauses(filter)

	query := "SELECT i.* FROM issues i WHERE " + where
	if filter.NewestFirst {
		query += " ORDER BY i.created_at DESC"
	} else {
		query += " ORDER BY i.sequence_id"
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	var issues []model.Issue
	if err := s.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	return issues, nil
}

// CountIssues returns the number of issues matching the filter.
func (s *SQLiteStore) CountIssues(
	ctx context.Context,
	filter IssueFilter,
) (int, error) {
	where, args := issueFilterClauses(filter)

	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM issues i WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("counting issues: %w", err)
	}
	return count, nil
}

// AssignIssue records an issue assignment with get-or-create semantics.
// Returns true when a new assignment row was created, false when the
// (issue, assignee) pair already existed.
func (s *SQLiteStore) AssignIssue(
	ctx context.Context,
	a model.IssueAssignee,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM issue_assignees WHERE issue_id = ? AND assignee_id = ?",
		a.IssueID, a.AssigneeID)
	if err != nil {
		return false, fmt.Errorf("checking existing assignment: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO issue_assignees (id, issue_id, assignee_id, project_id, workspace_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.IssueID, a.AssigneeID, a.ProjectID, a.WorkspaceID, a.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("assigning issue: %w", err)
	}
	return true, nil
}
