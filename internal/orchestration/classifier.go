package orchestration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nhle/workspace-management/internal/ai"
)

const intentPromptTemplate = `Analyze the following user request and classify the intent.
Return your response in JSON format with the following structure:
{
    "intent": "<ACTION_TYPE>",
    "confidence": <NUMBER_BETWEEN_0_AND_1>,
    "details": {...}
}

Available ACTION_TYPES:
- CREATE_PROJECT: User wants to create a new project
- CREATE_ISSUE: User wants to create a new issue/task
- CREATE_CYCLE: User wants to create a new cycle/sprint
- CREATE_LABEL: User wants to create a new label
- CREATE_STATE: User wants to create a new state/status
- LIST_PROJECTS: User wants to see projects
- LIST_ISSUES: User wants to see issues/tasks
- LIST_CYCLES: User wants to see cycles/sprints
- LIST_LABELS: User wants to see labels
- LIST_STATES: User wants to see states/statuses
- UPDATE_ISSUE: User wants to update an existing issue
- ASSIGN_ISSUE: User wants to assign an issue to someone
- SET_PRIORITY: User wants to set priority of an issue
- SET_DUE_DATE: User wants to set due date of an issue
- MULTI_STEP_OPERATION: User wants to perform multiple operations in sequence
- UNKNOWN: Cannot determine intent clearly

For MULTI_STEP_OPERATION, the details should include a "steps" array with individual operations.

User request: "%s"

Workspace context: %s

Respond ONLY with the JSON object, no other text.`

// classifyIntent asks the language model to bucket the request into the
// intent taxonomy. Any failure (unconfigured client, provider error,
// unparseable output) yields UNKNOWN with zero confidence and a non-nil
// error; the caller falls back to keyword matching.
func (o *Orchestrator) classifyIntent(ctx context.Context, text, workspaceCtx string) (IntentResult, error) {
	unknown := IntentResult{Intent: IntentUnknown, Confidence: 0.0}

	if o.ai == nil {
		return unknown, ai.ErrNotConfigured
	}

	prompt := fmt.Sprintf(intentPromptTemplate, text, workspaceCtx)
	raw, err := o.ai.Complete(ctx, prompt)
	if err != nil {
		return unknown, fmt.Errorf("classifying intent: %w", err)
	}

	var result IntentResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		o.logger.Debug().Str("raw", raw).Msg("unparseable intent classification")
		return unknown, fmt.Errorf("parsing intent response: %w", err)
	}
	if result.Intent == "" {
		result.Intent = IntentUnknown
	}
	return result, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// providers add even when asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
