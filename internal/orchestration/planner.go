package orchestration

// planAction validates extracted entities against the intent's required
// fields and binds them to typed executor parameters. It is total over
// the intent enumeration: unknown or unimplemented intents bind the
// fallback executor, and the function never fails. text is the original
// request, used by intents whose executors sweep the raw wording.
func (o *Orchestrator) planAction(intent Intent, entities EntityBag, text string) ActionPlan {
	plan := ActionPlan{Intent: intent, Entities: entities, Valid: true}

	switch intent {
	case IntentMultiStep:
		plan.MultiStep = true
		for _, step := range entities.Steps() {
			// A child's invalidity is recorded on the child only;
			// execution checks each step individually.
			plan.Steps = append(plan.Steps, o.planAction(step.Intent, step.Entities, text))
		}
		plan.Params = MultiStepParams{Steps: plan.Steps}

	case IntentCreateProject:
		name := entities.String("project_name")
		if name == "" {
			plan.invalidate("Missing project_name")
			break
		}
		plan.Params = CreateProjectParams{
			Name:        name,
			Description: entities.String("description"),
		}

	case IntentCreateIssue:
		title := entities.String("issue_title")
		if title == "" {
			plan.invalidate("Missing issue_title")
			break
		}
		plan.Params = CreateIssueParams{
			Title:       title,
			ProjectRef:  entities.String("project_name"),
			Description: entities.String("description"),
		}

	case IntentCreateCycle:
		name := entities.String("cycle_name")
		if name == "" {
			plan.invalidate("Missing cycle_name")
			break
		}
		plan.Params = CreateCycleParams{
			Name:       name,
			ProjectRef: entities.String("project_name"),
		}

	case IntentCreateLabel:
		name := entities.String("label_name")
		if name == "" {
			plan.invalidate("Missing label_name")
			break
		}
		plan.Params = CreateLabelParams{Name: name}

	case IntentCreateState:
		name := entities.String("state_name")
		if name == "" {
			plan.invalidate("Missing state_name")
			break
		}
		plan.Params = CreateStateParams{Name: name}

	case IntentListProjects:
		plan.Params = ListProjectsParams{Mine: isMyProjects(text)}

	case IntentListIssues:
		plan.Params = ListIssuesParams{
			ProjectRef: entities.String("project_name"),
			AssignedTo: entities.String("assigned_to"),
		}

	case IntentListCycles:
		plan.Params = ListCyclesParams{}

	case IntentListLabels:
		plan.Params = ListLabelsParams{}

	case IntentListStates:
		plan.Params = ListStatesParams{}

	case IntentUpdateIssue:
		num := entities.String("issue_number")
		if num == "" {
			num = parseIssueNumber(text)
		}
		if num == "" {
			plan.invalidate("Missing issue_number")
			break
		}
		plan.Params = UpdateIssueParams{IssueNumber: num, Text: text}

	case IntentAssignIssue:
		num := entities.String("issue_number")
		assignee := entities.String("assignee")
		if num == "" {
			plan.invalidate("Missing issue_number")
		}
		if assignee == "" {
			plan.invalidate("Missing assignee")
		}
		if !plan.Valid {
			break
		}
		plan.Params = AssignIssueParams{IssueNumber: num, Assignee: assignee}

	case IntentSetPriority:
		num := entities.String("issue_number")
		priority := entities.String("priority")
		if num == "" {
			plan.invalidate("Missing issue_number")
		}
		if priority == "" {
			plan.invalidate("Missing priority")
		}
		if !plan.Valid {
			break
		}
		plan.Params = SetPriorityParams{IssueNumber: num, Priority: priority}

	case IntentSetDueDate:
		num := entities.String("issue_number")
		dueDate := entities.String("due_date")
		if num == "" {
			plan.invalidate("Missing issue_number")
		}
		if dueDate == "" {
			plan.invalidate("Missing due_date")
		}
		if !plan.Valid {
			break
		}
		plan.Params = SetDueDateParams{IssueNumber: num, DueDate: dueDate}

	default:
		plan.Params = FallbackParams{Intent: intent, Entities: entities}
	}

	return plan
}
