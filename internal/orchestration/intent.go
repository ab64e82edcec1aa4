package orchestration

import (
	"strconv"
	"strings"
)

// Intent is the classified category of a user request. The set is
// closed; the planner handles every value, routing unimplemented ones
// to the fallback executor.
type Intent string

const (
	IntentCreateProject Intent = "CREATE_PROJECT"
	IntentCreateIssue   Intent = "CREATE_ISSUE"
	IntentCreateCycle   Intent = "CREATE_CYCLE"
	IntentCreateLabel   Intent = "CREATE_LABEL"
	IntentCreateState   Intent = "CREATE_STATE"
	IntentListProjects  Intent = "LIST_PROJECTS"
	IntentListIssues    Intent = "LIST_ISSUES"
	IntentListCycles    Intent = "LIST_CYCLES"
	IntentListLabels    Intent = "LIST_LABELS"
	IntentListStates    Intent = "LIST_STATES"
	IntentUpdateIssue   Intent = "UPDATE_ISSUE"
	IntentAssignIssue   Intent = "ASSIGN_ISSUE"
	IntentSetPriority   Intent = "SET_PRIORITY"
	IntentSetDueDate    Intent = "SET_DUE_DATE"
	IntentMultiStep     Intent = "MULTI_STEP_OPERATION"
	IntentUnknown       Intent = "UNKNOWN"
)

// IntentResult is the parsed output of the intent classifier.
type IntentResult struct {
	Intent     Intent         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Details    map[string]any `json:"details,omitempty"`
}

// EntityBag holds raw extracted entities before validation. Values come
// from JSON decoding, so strings and numbers are the common cases.
type EntityBag map[string]any

// String returns the trimmed string value for key, converting JSON
// numbers where needed. Missing or unconvertible values yield "".
func (b EntityBag) String(key string) string {
	switch v := b[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// PlanStep is one nested operation inside a multi-step request.
type PlanStep struct {
	Intent   Intent
	Entities EntityBag
}

// Steps decodes the "steps" array of a multi-step entity bag.
// Malformed entries are skipped rather than failing the whole bag.
func (b EntityBag) Steps() []PlanStep {
	raw, ok := b["steps"].([]any)
	if !ok {
		return nil
	}
	steps := make([]PlanStep, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		step := PlanStep{Entities: EntityBag{}}
		if s, ok := m["intent"].(string); ok {
			step.Intent = Intent(strings.TrimSpace(s))
		}
		if e, ok := m["entities"].(map[string]any); ok {
			step.Entities = EntityBag(e)
		}
		steps = append(steps, step)
	}
	return steps
}

// ActionParams is the sealed set of per-intent parameter variants. Each
// executor consumes exactly one variant; the dispatcher switches on the
// concrete type.
type ActionParams interface {
	isActionParams()
}

type CreateProjectParams struct {
	Name        string
	Description string
}

type CreateIssueParams struct {
	Title       string
	ProjectRef  string // project name or identifier, empty for default
	Description string
}

type CreateCycleParams struct {
	Name        string
	ProjectRef  string
	Description string
}

type CreateLabelParams struct {
	Name       string
	ProjectRef string
}

type CreateStateParams struct {
	Name       string
	ProjectRef string
}

type ListProjectsParams struct {
	Mine bool
}

type ListIssuesParams struct {
	ProjectRef string
	AssignedTo string // "me" filters to the requesting user
}

type ListCyclesParams struct{}

type ListLabelsParams struct{}

type ListStatesParams struct{}

// UpdateIssueParams carries the raw request text; the executor sweeps
// it for priority, date, state, and title changes.
type UpdateIssueParams struct {
	IssueNumber string
	Text        string
}

type AssignIssueParams struct {
	IssueNumber string
	Assignee    string
}

type SetPriorityParams struct {
	IssueNumber string
	Priority    string
}

type SetDueDateParams struct {
	IssueNumber string
	DueDate     string // YYYY-MM-DD
}

type MultiStepParams struct {
	Steps []ActionPlan
}

// FallbackParams marks an intent the planner recognizes but has no
// executor for; the fallback executor reports it without mutating state.
type FallbackParams struct {
	Intent   Intent
	Entities EntityBag
}

func (CreateProjectParams) isActionParams() {}
func (CreateIssueParams) isActionParams()   {}
func (CreateCycleParams) isActionParams()   {}
func (CreateLabelParams) isActionParams()   {}
func (CreateStateParams) isActionParams()   {}
func (ListProjectsParams) isActionParams()  {}
func (ListIssuesParams) isActionParams()    {}
func (ListCyclesParams) isActionParams()    {}
func (ListLabelsParams) isActionParams()    {}
func (ListStatesParams) isActionParams()    {}
func (UpdateIssueParams) isActionParams()   {}
func (AssignIssueParams) isActionParams()   {}
func (SetPriorityParams) isActionParams()   {}
func (SetDueDateParams) isActionParams()    {}
func (MultiStepParams) isActionParams()     {}
func (FallbackParams) isActionParams()      {}

// ActionPlan is the validated binding of an intent and its entities to
// an executable operation. Invalid plans carry their validation errors
// and must not be dispatched.
type ActionPlan struct {
	Intent           Intent
	Entities         EntityBag
	Params           ActionParams
	Valid            bool
	ValidationErrors []string
	MultiStep        bool
	Steps            []ActionPlan
}

func (p *ActionPlan) invalidate(msg string) {
	p.Valid = false
	p.ValidationErrors = append(p.ValidationErrors, msg)
}
