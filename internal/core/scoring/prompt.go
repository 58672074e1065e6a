package scoring

import (
	"fmt"
	"strings"
)

// ScoreSystemPrompt instructs the text generator to return a score payload.
const ScoreSystemPrompt = `You are an expert in IT Operations Management (ITOM) and event management automation.
You will score workflow steps on their automation readiness across 5 dimensions, each on a scale of 1-5.
Return your response as a JSON object with the following structure:
{
  "rule_based_score": <number 1-5>,
  "data_availability_score": <number 1-5>,
  "exception_frequency_score": <number 1-5>,
  "auditability_score": <number 1-5>,
  "speed_sensitivity_score": <number 1-5>,
  "rationale": "<detailed explanation of scores>"
}

Scoring guidance:
- Rule Based: How well-defined and consistent are the decision criteria? (1=very vague, 5=crystal clear rules)
- Data Availability: What percentage and quality of input data is readily available? (1=<20%, 5=>95%)
- Exception Frequency: How often do exceptions/edge cases occur? (1=very frequent, 5=rarely)
- Auditability: How well can decisions be tracked and audited? (1=no audit trail, 5=full traceability)
- Speed Sensitivity: How time-critical is this step? (1=not urgent, 5=seconds matter)`

// StepInput is the interview content of one step as sent for scoring.
type StepInput struct {
	WorkflowName   string
	StepName       string
	Description    string
	RoleTeam       string
	TriggerInput   string
	SystemsTools   string
	DecisionPoints string
	OutputHandoff  string
	PainPoints     string
	TimeEffort     string
}

// ScoreUserMessage renders a step for the scoring request.
func ScoreUserMessage(in StepInput) string {
	var b strings.Builder
	b.WriteString("Score this workflow step for automation readiness:\n")
	fmt.Fprintf(&b, "Step Name: %s\n", orDefault(in.StepName, "Untitled"))
	fmt.Fprintf(&b, "Description: %s\n", orDefault(in.Description, "N/A"))
	fmt.Fprintf(&b, "Role/Team: %s\n", orDefault(in.RoleTeam, "N/A"))
	fmt.Fprintf(&b, "Trigger Input: %s\n", orDefault(in.TriggerInput, "N/A"))
	fmt.Fprintf(&b, "Systems/Tools: %s\n", orDefault(in.SystemsTools, "N/A"))
	fmt.Fprintf(&b, "Decision Points: %s\n", orDefault(in.DecisionPoints, "N/A"))
	fmt.Fprintf(&b, "Output/Handoff: %s\n", orDefault(in.OutputHandoff, "N/A"))
	fmt.Fprintf(&b, "Pain Points: %s\n", orDefault(in.PainPoints, "N/A"))
	fmt.Fprintf(&b, "Time/Effort: %s\n", orDefault(in.TimeEffort, "N/A"))
	fmt.Fprintf(&b, "Workflow: %s", orDefault(in.WorkflowName, "Unknown"))
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
