package orchestration

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/nhle/workspace-management/internal/model"
)

// Text parsing helpers for the keyword path. These are deliberately
// permissive; executors validate whatever they produce.

var (
	issueNumberRe = regexp.MustCompile(`#(\d+)`)

	dateTokenRe = regexp.MustCompile(`(?i)\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|today|tomorrow|next week|next month)\b`)

	projectNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)named\s+(.+?)(?:\.|$)`),
		regexp.MustCompile(`(?i)called\s+(.+?)(?:\.|$)`),
		regexp.MustCompile(`(?i)titled\s+(.+?)(?:\.|$)`),
		regexp.MustCompile(`"([^"]+)"`),
		regexp.MustCompile(`'([^']+)'`),
		regexp.MustCompile(`(?i)create project (.+?)(?:\.|$)`),
		regexp.MustCompile(`(?i)create a project (.+?)(?:\.|$)`),
	}

	assigneeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)assign (\w+) to`),
		regexp.MustCompile(`(?i)assign\b.*?\bto\s+(\w+)`),
		regexp.MustCompile(`(?i)give\b.*?\bto\s+(\w+)`),
		regexp.MustCompile(`(?i)give (\w+)`),
	}

	newTitleRe = regexp.MustCompile(`(?i)(?:to|as)\s+(.+?)(?:\.|$)`)

	hashtagRe   = regexp.MustCompile(`#([a-zA-Z0-9_-]+)`)
	withLabelRe = regexp.MustCompile(`(?i)(?:with|add|apply)\s+labels?\s+([a-zA-Z0-9_-]+)`)
)

// priorityWords maps trigger words to normalized priorities. Order
// matters: "low" must be checked before "lowest" is relevant, and
// "critical" maps to urgent.
var priorityWords = []struct {
	word     string
	priority string
}{
	{"urgent", model.PriorityUrgent},
	{"critical", model.PriorityUrgent},
	{"high", model.PriorityHigh},
	{"medium", model.PriorityMedium},
	{"normal", model.PriorityMedium},
	{"low", model.PriorityLow},
	{"lowest", model.PriorityLow},
	{"none", model.PriorityNone},
}

// stateWords maps status phrasing to state groups. Checked in order so
// "in progress" wins over a later bare word.
var stateWords = []struct {
	word  string
	group string
}{
	{"backlog", model.StateGroupBacklog},
	{"todo", model.StateGroupUnstarted},
	{"in progress", model.StateGroupStarted},
	{"doing", model.StateGroupStarted},
	{"done", model.StateGroupCompleted},
	{"complete", model.StateGroupCompleted},
	{"finished", model.StateGroupCompleted},
	{"cancelled", model.StateGroupCancelled},
}

// parseIssueNumber extracts a "#123" style sequence reference, returning
// the digits or "".
func parseIssueNumber(text string) string {
	m := issueNumberRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// parsePriorityFromText returns the first normalized priority mentioned
// in the text, or "".
func parsePriorityFromText(text string) string {
	lower := strings.ToLower(text)
	for _, pw := range priorityWords {
		if strings.Contains(lower, pw.word) {
			return pw.priority
		}
	}
	return ""
}

// parseStateGroupFromText returns the state group implied by status
// phrasing in the text, or "".
func parseStateGroupFromText(text string) string {
	lower := strings.ToLower(text)
	for _, sw := range stateWords {
		if strings.Contains(lower, sw.word) {
			return sw.group
		}
	}
	return ""
}

// parseDateFromText finds a date mention, either an explicit date or a
// relative word, and normalizes it to YYYY-MM-DD. Returns "" when no
// parseable date is present.
func parseDateFromText(text string) string {
	token := dateTokenRe.FindString(text)
	if token == "" {
		return ""
	}

	now := time.Now()
	switch strings.ToLower(token) {
	case "today":
		return now.Format("2006-01-02")
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case "next week":
		return now.AddDate(0, 0, 7).Format("2006-01-02")
	case "next month":
		return now.AddDate(0, 0, 30).Format("2006-01-02")
	}

	parsed, err := dateparse.ParseAny(token)
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02")
}

// parseAssigneeFromText extracts the assignee name from phrasings like
// "assign to alice" or "give to bob".
func parseAssigneeFromText(text string) string {
	for _, re := range assigneeRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseNewTitle extracts a replacement title from "rename ... to <text>"
// style requests.
func parseNewTitle(text string) string {
	m := newTitleRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseLabelsFromText collects label names from hashtags and "with
// label X" phrasings.
func parseLabelsFromText(text string) []string {
	var labels []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		labels = append(labels, m[1])
	}
	for _, m := range withLabelRe.FindAllStringSubmatch(text, -1) {
		labels = append(labels, m[1])
	}
	return labels
}

// extractProjectName pulls a project name out of free-form create
// requests, trying explicit "named/called/titled X" and quoted forms
// before falling back to stripping command words.
func extractProjectName(text string) string {
	for _, re := range projectNameRes {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" {
				return strings.TrimRight(name, ".!?,:;")
			}
		}
	}

	cleaned := stripCommandWords(text,
		"create a project", "create project", "new project", "start project", "make project")
	return strings.TrimRight(cleaned, ".!?,:;")
}

// stripCommandWords removes each command phrase from the text
// case-insensitively and trims the remainder.
func stripCommandWords(text string, phrases ...string) string {
	out := text
	for _, phrase := range phrases {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
		out = re.ReplaceAllString(out, "")
	}
	return strings.TrimSpace(out)
}

// titleFromText derives an issue title: the first sentence when the
// text has one, capped at 100 characters.
func titleFromText(text string) string {
	title := text
	if idx := strings.Index(text, "."); idx > 0 {
		title = text[:idx]
	}
	if len(title) < 5 {
		title = text
	}
	if len(title) > 100 {
		title = title[:100]
	}
	return strings.TrimSpace(title)
}

// isMyProjects reports whether the text asks for the requester's own
// projects.
func isMyProjects(text string) bool {
	return containsAny(strings.ToLower(text),
		"my projects", "projects assigned to me", "my assigned projects")
}

// isMyTasks reports whether the text asks for issues assigned to the
// requester.
func isMyTasks(text string) bool {
	return containsAny(strings.ToLower(text),
		"my tasks", "current tasks", "tasks assigned to me", "my assigned tasks", "what are my tasks")
}
