package orchestration

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nhle/workspace-management/internal/ai"
)

const entityPromptTemplate = `Extract relevant entities from the following user request based on the intent.
Return your response in JSON format.

Intent: %s
User request: "%s"
Workspace context: %s

Based on the intent, extract the following entities:

For CREATE_PROJECT: { "project_name": "...", "description": "..." }
For CREATE_ISSUE: { "issue_title": "...", "project_name": "...", "description": "..." }
For CREATE_CYCLE: { "cycle_name": "...", "project_name": "..." }
For CREATE_LABEL: { "label_name": "..." }
For CREATE_STATE: { "state_name": "..." }
For LIST_ISSUES: { "project_name": "...", "assigned_to": "..." } where assigned_to is "me" for the current user
For UPDATE_ISSUE: { "issue_number": "..." }
For ASSIGN_ISSUE: { "issue_number": "...", "assignee": "..." }
For SET_PRIORITY: { "issue_number": "...", "priority": "..." } where priority is one of [urgent, high, medium, low, none]
For SET_DUE_DATE: { "issue_number": "...", "due_date": "..." } where due_date is in YYYY-MM-DD format
For MULTI_STEP_OPERATION: { "steps": [{ "intent": "...", "entities": {...} }, ...] } listing the operations in order

Respond ONLY with the JSON object containing the extracted entities, no other text.`

// extractEntities asks the language model for the intent-specific
// parameters. Failures return a non-nil error and the caller routes to
// keyword-based handling.
func (o *Orchestrator) extractEntities(ctx context.Context, text string, intent Intent, workspaceCtx string) (EntityBag, error) {
	if o.ai == nil {
		return nil, ai.ErrNotConfigured
	}

	prompt := fmt.Sprintf(entityPromptTemplate, intent, text, workspaceCtx)
	raw, err := o.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extracting entities: %w", err)
	}

	var bag EntityBag
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &bag); err != nil {
		o.logger.Debug().Str("raw", raw).Msg("unparseable entity extraction")
		return nil, fmt.Errorf("parsing entity response: %w", err)
	}
	return bag, nil
}
