package orchestration

import (
	"context"
	"fmt"

	"github.com/nhle/workspace-management/internal/ai"
)

// Selectable models. Orchestrator drives the full pipeline; the
// specialists answer advisory questions with a focused prompt.
const (
	ModelOrchestrator    = "orchestrator"
	ModelProjectManager  = "project-manager"
	ModelTaskOptimizer   = "task-optimizer"
	ModelWorkflowExpert  = "workflow-expert"
	ModelResourcePlanner = "resource-planner"
	ModelTimelineAnalyst = "timeline-analyst"
)

const (
	msgNotConfigured = "LLM provider not configured. Available commands: create/list/update/assign issues, projects, cycles, labels, states. Try: 'list my tasks', 'create issue #description', 'assign issue #123 to user'."

	msgQuotaExceeded = "⚠️ LLM quota exceeded. Don't worry! The following commands work without LLM: create/list/update/assign issues, projects, cycles, labels, and states. Try: 'list my tasks', 'create issue #description', 'assign issue #123 to user'."

	msgLLMError = "❌ LLM error occurred. Available commands: create/list/update/assign issues, projects, cycles, labels, states. Try: 'list my tasks', 'create issue #description', 'assign issue #123 to user'."
)

// specialistPrompts maps a selected model to its prompt template. Each
// template takes the user request and the workspace context JSON.
var specialistPrompts = map[string]string{
	ModelProjectManager: `You are a Project Manager AI specialist. Focus on project planning, scheduling, resource allocation, and timeline management.

User request: "%s"

Workspace context: %s

Provide recommendations on project planning, scheduling, milestone setting, and resource allocation.
If asked to create a project, provide detailed planning advice.
If asked about timelines or schedules, focus on timeline analysis and optimization.

Respond with actionable project management insights.`,

	ModelTaskOptimizer: `You are a Task Optimization AI specialist. Focus on task efficiency, prioritization, workload distribution, and productivity enhancement.

User request: "%s"

Workspace context: %s

Analyze tasks for efficiency improvements, suggest optimal prioritization strategies, recommend workload balancing, and identify productivity bottlenecks.
If asked to create or update tasks, focus on optimizing their structure and priority.
Provide specific recommendations for improving task workflow.

Respond with concrete optimization suggestions.`,

	ModelWorkflowExpert: `You are a Workflow Expert AI specialist. Focus on process improvement, automation opportunities, workflow design, and operational efficiency.

User request: "%s"

Workspace context: %s

Analyze processes for automation opportunities, suggest workflow improvements, identify bottlenecks, and recommend process optimizations.
If asked about creating cycles or sprints, focus on workflow organization.
Recommend best practices for process standardization and automation.

Respond with workflow and process improvement recommendations.`,

	ModelResourcePlanner: `You are a Resource Planning AI specialist. Focus on team allocation, capacity management, skill matching, and resource optimization.

User request: "%s"

Workspace context: %s

Provide recommendations on team assignments, capacity planning, skill-based task allocation, and resource utilization.
If asked to assign tasks, consider team member skills and workload.
Focus on optimizing resource distribution and preventing overallocation.

Respond with resource allocation and team management advice.`,

	ModelTimelineAnalyst: `You are a Timeline Analysis AI specialist. Focus on deadlines, milestones, scheduling, duration estimation, and critical path analysis.

User request: "%s"

Workspace context: %s

Analyze timelines, suggest optimal scheduling, identify critical deadlines, estimate durations, and flag potential delays.
If asked about due dates or scheduling, provide detailed timeline analysis.
Recommend adjustments to meet deadlines and optimize project flow.

Respond with timeline and scheduling recommendations.`,

	ModelOrchestrator: `You are an AI assistant for a project management system. Analyze the user's request and provide an appropriate response.

User request: "%s"

Workspace context: %s

Available capabilities:
- Create: issues, projects, cycles, labels, states
- List: issues (tasks), projects, cycles, labels, states
- Update: issues (priority, due date, state, title)
- Assign: issues to users
- Set: priority, due date

If the request matches any of these patterns, suggest the correct command format.
Otherwise, provide a helpful response.

Respond in a clear, helpful way with specific examples if needed.`,
}

// fallbackOrchestration answers with a free-form language-model
// completion when no deterministic handler applies, using the selected
// model's specialist prompt. With no configured client it returns the
// static command help; provider failures map to quota or generic
// guidance, never an error.
func (o *Orchestrator) fallbackOrchestration(ctx context.Context, req Request, selectedModel string) string {
	if o.ai == nil {
		return msgNotConfigured
	}

	tmpl, ok := specialistPrompts[selectedModel]
	if !ok {
		tmpl = specialistPrompts[ModelOrchestrator]
	}

	workspaceCtx := o.workspaceContext(ctx, req, nil)
	prompt := fmt.Sprintf(tmpl, req.TextInput, workspaceCtx)

	text, err := o.ai.Complete(ctx, prompt)
	if err != nil {
		o.logger.Warn().Err(err).Str("model", selectedModel).Msg("fallback completion failed")
		if ai.IsQuotaError(err) {
			return msgQuotaExceeded
		}
		return msgLLMError
	}
	return text
}
