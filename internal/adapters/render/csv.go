package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/ports/primary"
)

// CSV export kinds accepted by the reports/csv route.
const (
	CSVProject   = "project"
	CSVWorkflows = "workflows"
	CSVSteps     = "steps"
)

// ValidCSVKind reports whether kind names a CSV export.
func ValidCSVKind(kind string) bool {
	switch kind {
	case CSVProject, CSVWorkflows, CSVSteps:
		return true
	}
	return false
}

// WriteProjectCSV writes the project rollup as metric/value pairs followed
// by the gap counts per dimension.
func WriteProjectCSV(w io.Writer, rep *primary.ProjectReport) error {
	s := rep.Statistics
	records := [][]string{
		{"metric", "value"},
		{"project_name", rep.ProjectName},
		{"client_name", rep.ClientName},
		{"engagement_type", rep.EngagementType},
		{"total_workflows", strconv.Itoa(s.TotalWorkflows)},
		{"completed_workflows", strconv.Itoa(s.CompletedWorkflows)},
		{"completion_percentage", strconv.Itoa(s.CompletionPercentage)},
		{"total_steps", strconv.Itoa(s.TotalSteps)},
		{"total_scored_steps", strconv.Itoa(s.TotalScoredSteps)},
		{"average_composite", strconv.Itoa(s.AverageComposite)},
		{"readiness_tier", string(s.ReadinessTier)},
		{"autonomous_steps", strconv.Itoa(s.TierDistribution.Autonomous)},
		{"human_in_loop_steps", strconv.Itoa(s.TierDistribution.HumanInLoop)},
		{"human_only_steps", strconv.Itoa(s.TierDistribution.HumanOnly)},
	}
	for _, t := range gap.Types {
		c := rep.DependencyGapsSummary[t]
		records = append(records,
			[]string{"gaps_" + string(t) + "_red", strconv.Itoa(c.Red)},
			[]string{"gaps_" + string(t) + "_amber", strconv.Itoa(c.Amber)},
			[]string{"gaps_" + string(t) + "_green", strconv.Itoa(c.Green)},
		)
	}
	return writeAll(w, records)
}

// WriteWorkflowsCSV writes one row per workflow rollup.
func WriteWorkflowsCSV(w io.Writer, rep *primary.ProjectReport) error {
	records := [][]string{{
		"workflow_index", "workflow_name", "status", "total_steps", "completed_steps",
		"scored_steps", "average_composite", "autonomous", "human_in_loop", "human_only",
	}}
	for _, wf := range rep.Workflows {
		records = append(records, []string{
			strconv.Itoa(wf.WorkflowIndex),
			wf.WorkflowName,
			wf.Status,
			strconv.Itoa(wf.TotalSteps),
			strconv.Itoa(wf.CompletedSteps),
			strconv.Itoa(wf.ScoredSteps),
			strconv.Itoa(wf.AverageComposite),
			strconv.Itoa(wf.TierDistribution.Autonomous),
			strconv.Itoa(wf.TierDistribution.HumanInLoop),
			strconv.Itoa(wf.TierDistribution.HumanOnly),
		})
	}
	return writeAll(w, records)
}

// WriteStepsCSV writes one row per step with its interview fields and score.
// Unscored steps leave the score columns empty.
func WriteStepsCSV(w io.Writer, rows []*primary.StepRow) error {
	records := [][]string{{
		"workflow_index", "workflow_name", "step_number", "step_name", "description",
		"role_team", "trigger_input", "systems_tools", "decision_points", "output_handoff",
		"pain_points", "time_effort", "rule_based", "data_availability", "exception_frequency",
		"auditability", "speed_sensitivity", "composite", "tier",
	}}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.WorkflowIndex),
			r.WorkflowName,
			strconv.Itoa(r.StepNumber),
			r.StepName,
			r.Description,
			r.RoleTeam,
			r.TriggerInput,
			r.SystemsTools,
			r.DecisionPoints,
			r.OutputHandoff,
			r.PainPoints,
			r.TimeEffort,
		}
		if s := r.Score; s != nil {
			rec = append(rec,
				strconv.Itoa(s.RuleBased),
				strconv.Itoa(s.DataAvailability),
				strconv.Itoa(s.ExceptionFrequency),
				strconv.Itoa(s.Auditability),
				strconv.Itoa(s.SpeedSensitivity),
				strconv.Itoa(s.Composite),
				report.TierLabel(s.Tier),
			)
		} else {
			rec = append(rec, "", "", "", "", "", "", "")
		}
		records = append(records, rec)
	}
	return writeAll(w, records)
}

func writeAll(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
