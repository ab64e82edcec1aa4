package orchestration

import "strings"

// ClassifyKeywords matches lower-cased input text against an ordered
// sequence of keyword rules and returns the first matching intent. The
// rules deliberately overlap (e.g. "create" plus any of issue/bug/task)
// to favor recall; executors re-validate whatever the text yields. A
// false second return means no rule matched and the caller should defer
// to the language-model path.
func ClassifyKeywords(text string) (Intent, bool) {
	t := strings.ToLower(text)

	switch {
	case containsAny(t, "create issue", "new issue", "add task", "create bug", "report problem", "make issue"),
		strings.Contains(t, "create") && containsAny(t, "issue", "bug", "task"):
		return IntentCreateIssue, true

	case containsAny(t, "create project", "new project", "start project", "make project"),
		strings.Contains(t, "create") && strings.Contains(t, "project"):
		return IntentCreateProject, true

	case containsAny(t, "create cycle", "new cycle", "start cycle", "sprint", "create sprint"),
		strings.Contains(t, "create") && containsAny(t, "cycle", "sprint"):
		return IntentCreateCycle, true

	case containsAny(t, "list projects", "show projects", "all projects", "projects list",
		"my projects", "projects assigned to me", "my assigned projects"):
		return IntentListProjects, true

	case containsAny(t, "list issues", "show issues", "all issues", "issues list",
		"show tasks", "list tasks", "current tasks", "my tasks", "tasks assigned to me",
		"my assigned tasks", "what are my tasks", "what are my current tasks"):
		return IntentListIssues, true

	case containsAny(t, "list cycles", "show cycles", "all cycles", "cycles list", "show sprints", "list sprints"):
		return IntentListCycles, true

	case containsAny(t, "list labels", "show labels", "all labels", "labels list"):
		return IntentListLabels, true

	case containsAny(t, "list states", "show states", "all states", "states list", "show statuses", "list statuses"):
		return IntentListStates, true

	case containsAny(t, "update issue", "change issue", "modify issue", "edit issue"):
		return IntentUpdateIssue, true

	case containsAny(t, "assign issue", "assign task", "set assignee", "assign to", "give to"):
		return IntentAssignIssue, true

	case containsAny(t, "set priority", "change priority", "update priority"):
		return IntentSetPriority, true

	case containsAny(t, "set due date", "update due date", "change due date", "set deadline", "due date", "deadline"):
		return IntentSetDueDate, true

	case containsAny(t, "create label", "new label", "add label"):
		return IntentCreateLabel, true

	case containsAny(t, "create state", "new state", "add state", "create status", "new status", "add status"):
		return IntentCreateState, true
	}

	return IntentUnknown, false
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
