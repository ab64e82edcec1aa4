package orchestration

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/workspace-management/internal/model"
)

// findIssue resolves a "#123" style reference to the workspace-scoped
// issue. The failure message (second return) is non-empty when the
// reference is malformed or the issue does not exist.
func (o *Orchestrator) findIssue(ctx context.Context, workspaceID, issueNumber string) (*model.Issue, string) {
	seq, err := strconv.Atoi(strings.TrimPrefix(issueNumber, "#"))
	if err != nil {
		return nil, fmt.Sprintf("❌ Invalid issue number: %s", issueNumber)
	}

	issue, err := o.store.GetIssueBySequence(ctx, workspaceID, seq)
	if err != nil {
		o.logger.Error().Err(err).Int("sequence", seq).Msg("looking up issue")
		return nil, fmt.Sprintf("❌ Failed to look up issue #%d: %v", seq, err)
	}
	if issue == nil {
		return nil, fmt.Sprintf("❌ Issue #%d not found in this workspace.", seq)
	}
	return issue, ""
}

// executeUpdateIssue sweeps the request text for recognized changes
// (priority, dates, state, title) and applies all of them in one pass,
// reporting exactly which fields changed.
func (o *Orchestrator) executeUpdateIssue(ctx context.Context, req Request, p UpdateIssueParams) string {
	issue, failure := o.findIssue(ctx, req.Workspace.ID, p.IssueNumber)
	if failure != "" {
		return failure
	}

	text := p.Text
	lower := strings.ToLower(text)
	var updated []string

	if priority := parsePriorityFromText(text); priority != "" {
		issue.Priority = priority
		updated = append(updated, fmt.Sprintf("priority to '%s'", priority))
	}

	if date := parseDateFromText(text); date != "" {
		when, err := time.Parse("2006-01-02", date)
		if err == nil {
			if containsAny(lower, "start date", "start on", "beginning") {
				issue.StartDate = &when
				updated = append(updated, fmt.Sprintf("start date to '%s'", date))
			} else {
				issue.TargetDate = &when
				updated = append(updated, fmt.Sprintf("due date to '%s'", date))
			}
		}
	}

	if group := parseStateGroupFromText(text); group != "" {
		state, err := o.store.FindStateByGroup(ctx, issue.ProjectID, group)
		if err != nil {
			o.logger.Warn().Err(err).Str("group", group).Msg("resolving state by group")
		} else if state != nil {
			issue.StateID = &state.ID
			updated = append(updated, fmt.Sprintf("state to '%s'", state.Name))
		}
	}

	if containsAny(lower, "rename", "title", "name", "change title", "change name") {
		if newTitle := parseNewTitle(text); newTitle != "" {
			issue.Name = newTitle
			updated = append(updated, fmt.Sprintf("title to '%s'", newTitle))
		}
	}

	if len(updated) == 0 {
		return fmt.Sprintf("❌ Could not identify what to update in issue #%d. Please specify what you want to change (priority, due date, state, etc.).", issue.SequenceID)
	}

	if err := o.store.UpdateIssue(ctx, *issue); err != nil {
		o.logger.Error().Err(err).Int("sequence", issue.SequenceID).Msg("updating issue")
		return fmt.Sprintf("❌ Failed to update issue: %v", err)
	}

	o.notify(ctx, req, "issue", issue.ID,
		"Issue updated",
		fmt.Sprintf("Issue #%d '%s' was updated: %s.", issue.SequenceID, issue.Name, strings.Join(updated, ", ")))

	return fmt.Sprintf("✅ Successfully updated issue #%d '%s' - %s.", issue.SequenceID, issue.Name, strings.Join(updated, ", "))
}

func (o *Orchestrator) executeAssignIssue(ctx context.Context, req Request, p AssignIssueParams) string {
	issue, failure := o.findIssue(ctx, req.Workspace.ID, p.IssueNumber)
	if failure != "" {
		return failure
	}

	assignee, err := o.store.FindUserByNameOrEmail(ctx, p.Assignee)
	if err != nil {
		o.logger.Error().Err(err).Str("assignee", p.Assignee).Msg("looking up assignee")
		return fmt.Sprintf("❌ Failed to assign issue: %v", err)
	}
	if assignee == nil {
		return fmt.Sprintf("❌ User '%s' not found in the system.", p.Assignee)
	}

	member, err := o.store.IsProjectMember(ctx, issue.ProjectID, assignee.ID)
	if err != nil {
		o.logger.Error().Err(err).Msg("checking project membership")
		return fmt.Sprintf("❌ Failed to assign issue: %v", err)
	}
	if !member {
		projectName := o.projectNames(ctx, req.Workspace.ID)[issue.ProjectID]
		return fmt.Sprintf("❌ User '%s' is not a member of project '%s'.", p.Assignee, projectName)
	}

	created, err := o.store.AssignIssue(ctx, model.IssueAssignee{
		ID:          uuid.NewString(),
		IssueID:     issue.ID,
		AssigneeID:  assignee.ID,
		ProjectID:   issue.ProjectID,
		WorkspaceID: issue.WorkspaceID,
	})
	if err != nil {
		o.logger.Error().Err(err).Int("sequence", issue.SequenceID).Msg("assigning issue")
		return fmt.Sprintf("❌ Failed to assign issue: %v", err)
	}

	if !created {
		return fmt.Sprintf("⚠️ Issue #%d was already assigned to %s.", issue.SequenceID, assignee.Label())
	}

	o.notify(ctx, req, "issue", issue.ID,
		"Issue assigned",
		fmt.Sprintf("Issue #%d '%s' was assigned to %s.", issue.SequenceID, issue.Name, assignee.Label()))

	return fmt.Sprintf("✅ Successfully assigned issue #%d '%s' to %s.", issue.SequenceID, issue.Name, assignee.Label())
}

func (o *Orchestrator) executeSetPriority(ctx context.Context, req Request, p SetPriorityParams) string {
	priority := strings.ToLower(strings.TrimSpace(p.Priority))
	if !model.IsValidPriority(priority) {
		return fmt.Sprintf("❌ Invalid priority '%s'. Valid options: %s", p.Priority, strings.Join(model.ValidPriorities, ", "))
	}

	issue, failure := o.findIssue(ctx, req.Workspace.ID, p.IssueNumber)
	if failure != "" {
		return failure
	}

	issue.Priority = priority
	if err := o.store.UpdateIssue(ctx, *issue); err != nil {
		o.logger.Error().Err(err).Int("sequence", issue.SequenceID).Msg("setting priority")
		return fmt.Sprintf("❌ Failed to set priority: %v", err)
	}

	o.notify(ctx, req, "issue", issue.ID,
		"Priority changed",
		fmt.Sprintf("Issue #%d '%s' priority set to '%s'.", issue.SequenceID, issue.Name, priority))

	return fmt.Sprintf("✅ Successfully set priority of issue #%d '%s' to '%s'.", issue.SequenceID, issue.Name, priority)
}

func (o *Orchestrator) executeSetDueDate(ctx context.Context, req Request, p SetDueDateParams) string {
	when, err := time.Parse("2006-01-02", p.DueDate)
	if err != nil {
		return fmt.Sprintf("❌ Invalid date format: %s. Please use YYYY-MM-DD format.", p.DueDate)
	}

	issue, failure := o.findIssue(ctx, req.Workspace.ID, p.IssueNumber)
	if failure != "" {
		return failure
	}

	issue.TargetDate = &when
	if err := o.store.UpdateIssue(ctx, *issue); err != nil {
		o.logger.Error().Err(err).Int("sequence", issue.SequenceID).Msg("setting due date")
		return fmt.Sprintf("❌ Failed to set due date: %v", err)
	}

	o.notify(ctx, req, "issue", issue.ID,
		"Due date changed",
		fmt.Sprintf("Issue #%d '%s' due date set to '%s'.", issue.SequenceID, issue.Name, p.DueDate))

	return fmt.Sprintf("✅ Successfully set due date of issue #%d '%s' to '%s'.", issue.SequenceID, issue.Name, p.DueDate)
}
