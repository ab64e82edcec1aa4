package orchestration

import (
	"context"
	"fmt"
	"strings"
)

const (
	msgMissingIssueNumber = "❌ Could not identify issue number. Please specify issue with '#<number>' format."
)

// keywordOrchestration is the deterministic path: classify by keywords
// and run the matching text-driven handler. When nothing matches it
// hands the request to the generic language-model fallback.
func (o *Orchestrator) keywordOrchestration(ctx context.Context, req Request) string {
	intent, ok := ClassifyKeywords(req.TextInput)
	if !ok {
		o.logger.Debug().Str("text", req.TextInput).Msg("no keyword rule matched")
		return o.fallbackOrchestration(ctx, req, ModelOrchestrator)
	}
	o.logger.Debug().Str("intent", string(intent)).Msg("keyword rule matched")
	return o.executeKeywordIntent(ctx, req, intent)
}

// executeKeywordIntent derives typed parameters from the raw text for
// the matched intent and invokes the shared executor.
func (o *Orchestrator) executeKeywordIntent(ctx context.Context, req Request, intent Intent) string {
	text := req.TextInput

	switch intent {
	case IntentCreateIssue:
		return o.executeCreateIssue(ctx, req, CreateIssueParams{
			Title:       titleFromText(text),
			Description: text,
		})

	case IntentCreateProject:
		name := extractProjectName(text)
		if name == "" {
			name = "Untitled Project"
		}
		return o.executeCreateProject(ctx, req, CreateProjectParams{
			Name:        name,
			Description: text,
		})

	case IntentCreateCycle:
		name := stripCommandWords(text, "create cycle", "new cycle", "start cycle", "create sprint")
		if name == "" {
			name = "New Cycle"
		}
		return o.executeCreateCycle(ctx, req, CreateCycleParams{
			Name:        name,
			Description: text,
		})

	case IntentCreateLabel:
		name := stripCommandWords(text, "create label", "new label", "add label")
		if name == "" {
			name = "New Label"
		}
		return o.executeCreateLabel(ctx, req, CreateLabelParams{Name: name})

	case IntentCreateState:
		name := stripCommandWords(text,
			"create state", "new state", "add state", "create status", "new status", "add status")
		if name == "" {
			name = "New State"
		}
		return o.executeCreateState(ctx, req, CreateStateParams{Name: name})

	case IntentListProjects:
		return o.executeListProjects(ctx, req, ListProjectsParams{Mine: isMyProjects(text)})

	case IntentListIssues:
		params := ListIssuesParams{ProjectRef: o.projectRefFromText(ctx, req, text)}
		if isMyTasks(text) {
			params.AssignedTo = "me"
		}
		return o.executeListIssues(ctx, req, params)

	case IntentListCycles:
		return o.executeListCycles(ctx, req)

	case IntentListLabels:
		return o.executeListLabels(ctx, req)

	case IntentListStates:
		return o.executeListStates(ctx, req)

	case IntentUpdateIssue:
		num := parseIssueNumber(text)
		if num == "" {
			return msgMissingIssueNumber
		}
		return o.executeUpdateIssue(ctx, req, UpdateIssueParams{IssueNumber: num, Text: text})

	case IntentAssignIssue:
		num := parseIssueNumber(text)
		if num == "" {
			return msgMissingIssueNumber
		}
		assignee := parseAssigneeFromText(text)
		if assignee == "" {
			return fmt.Sprintf("❌ Could not identify assignee. Please specify assignee with 'assign to <name>' format. Request: '%s'", text)
		}
		return o.executeAssignIssue(ctx, req, AssignIssueParams{IssueNumber: num, Assignee: assignee})

	case IntentSetPriority:
		num := parseIssueNumber(text)
		if num == "" {
			return msgMissingIssueNumber
		}
		priority := parsePriorityFromText(text)
		if priority == "" {
			return fmt.Sprintf("❌ Could not identify priority. Available priorities: urgent, high, medium, low, none. Request: '%s'", text)
		}
		return o.executeSetPriority(ctx, req, SetPriorityParams{IssueNumber: num, Priority: priority})

	case IntentSetDueDate:
		num := parseIssueNumber(text)
		if num == "" {
			return msgMissingIssueNumber
		}
		date := parseDateFromText(text)
		if date == "" {
			return fmt.Sprintf("❌ Could not identify due date. Please specify a date (e.g., YYYY-MM-DD, 'tomorrow', 'next week'). Request: '%s'", text)
		}
		return o.executeSetDueDate(ctx, req, SetDueDateParams{IssueNumber: num, DueDate: date})
	}

	return o.fallbackOrchestration(ctx, req, ModelOrchestrator)
}

// projectRefFromText scans the workspace's projects for a name or
// identifier mentioned in the text and returns the project name, or ""
// when none is mentioned.
func (o *Orchestrator) projectRefFromText(ctx context.Context, req Request, text string) string {
	projects, err := o.store.GetProjects(ctx, req.Workspace.ID)
	if err != nil {
		o.logger.Warn().Err(err).Msg("scanning projects for text reference")
		return ""
	}
	lower := strings.ToLower(text)
	for _, p := range projects {
		if strings.Contains(lower, strings.ToLower(p.Name)) ||
			strings.Contains(lower, strings.ToLower(p.Identifier)) {
			return p.Name
		}
	}
	return ""
}
