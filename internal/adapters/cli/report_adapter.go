package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/enscope/internal/adapters/render"
	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/ports/primary"
)

// Export formats accepted by ReportAdapter.Export.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ReportAdapter prints reports, scoring runs and diagrams.
type ReportAdapter struct {
	reports  primary.ReportService
	scores   primary.ScoreService
	diagrams primary.DiagramService
	html     *render.HTMLRenderer
	out      io.Writer
}

// NewReportAdapter creates a new ReportAdapter.
func NewReportAdapter(reports primary.ReportService, scores primary.ScoreService, diagrams primary.DiagramService, html *render.HTMLRenderer, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		reports:  reports,
		scores:   scores,
		diagrams: diagrams,
		html:     html,
		out:      out,
	}
}

// Project prints the engagement rollup.
func (a *ReportAdapter) Project(ctx context.Context, projectID string) (*primary.ProjectReport, error) {
	rep, err := a.reports.GetProjectReport(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s := rep.Statistics

	fmt.Fprintln(a.out)
	heading.Fprintf(a.out, "%s (%s)\n", rep.ProjectName, rep.ClientName)
	fmt.Fprintf(a.out, "Readiness:  %s\n", tierText(string(s.ReadinessTier)))
	fmt.Fprintf(a.out, "Average:    %s\n", scoreText(s.AverageComposite, s.TotalScoredSteps))
	fmt.Fprintf(a.out, "Completion: %d%% (%d/%d workflows)\n", s.CompletionPercentage, s.CompletedWorkflows, s.TotalWorkflows)
	fmt.Fprintf(a.out, "Steps:      %d total, %d scored\n", s.TotalSteps, s.TotalScoredSteps)
	fmt.Fprintf(a.out, "Tiers:      %d autonomous, %d human-in-loop, %d human-only\n\n",
		s.TierDistribution.Autonomous, s.TierDistribution.HumanInLoop, s.TierDistribution.HumanOnly)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tWORKFLOW\tSTATUS\tSTEPS\tSCORED\tAVG")
	for _, wf := range rep.Workflows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			wf.WorkflowIndex, wf.WorkflowName, statusText(wf.Status), wf.TotalSteps, wf.ScoredSteps,
			scoreText(wf.AverageComposite, wf.ScoredSteps))
	}
	w.Flush()

	fmt.Fprintln(a.out, "\nDependency gaps:")
	for _, t := range gap.Types {
		c := rep.DependencyGapsSummary[t]
		fmt.Fprintf(a.out, "  %-14s %s  (%d red, %d amber, %d green)\n", t, severityText(c.Overall()), c.Red, c.Amber, c.Green)
	}
	fmt.Fprintln(a.out)
	return rep, nil
}

// Workflow prints one workflow's steps with their scores.
func (a *ReportAdapter) Workflow(ctx context.Context, projectID string, index int) (*primary.WorkflowReport, error) {
	rep, err := a.reports.GetWorkflowReport(ctx, projectID, index)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out)
	heading.Fprintf(a.out, "%d. %s\n", rep.WorkflowIndex, rep.WorkflowName)
	fmt.Fprintf(a.out, "Status: %s   Average: %s\n\n", statusText(rep.Status),
		scoreText(rep.Statistics.AverageComposite, rep.Statistics.ScoredSteps))

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSCORE\tTIER")
	for _, st := range rep.Steps {
		if st.Scores == nil {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", st.StepNumber, st.StepName, scoreText(0, 0), tierText(""))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", st.StepNumber, st.StepName, scoreText(st.Scores.Composite, 1), tierText(st.Scores.Tier))
	}
	w.Flush()

	if len(rep.DependencyGaps) > 0 {
		fmt.Fprintln(a.out, "\nGaps:")
		for _, g := range rep.DependencyGaps {
			fmt.Fprintf(a.out, "  %s %s: %s\n", severityText(gap.Severity(g.Severity)), g.GapType, g.Description)
		}
	}
	fmt.Fprintln(a.out)
	return rep, nil
}

// Score runs batch scoring for a workflow and prints each outcome.
func (a *ReportAdapter) Score(ctx context.Context, workflowID string) (*primary.BatchScoreResult, error) {
	batch, err := a.scores.ScoreWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	for _, r := range batch.Results {
		if r.Error != "" {
			fmt.Fprintf(a.out, "%s %s: %s\n", red.Sprint("✗"), r.StepName, r.Error)
			continue
		}
		penalty := ""
		if r.Scores.Penalty > 0 {
			penalty = faint.Sprintf(" (-%d gap penalty)", r.Scores.Penalty)
		}
		fmt.Fprintf(a.out, "%s %s: %d/25 %s%s\n", green.Sprint("✓"), r.StepName, r.Scores.Composite, tierText(r.Scores.Tier), penalty)
	}
	fmt.Fprintf(a.out, "\nScored %d of %d steps in %s\n", batch.ScoredSteps, len(batch.Results), batch.WorkflowName)
	return batch, nil
}

// Diagram prints a workflow's Mermaid flowchart.
func (a *ReportAdapter) Diagram(ctx context.Context, workflowID string) (*primary.Diagram, error) {
	d, err := a.diagrams.GetWorkflowDiagram(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(a.out, d.MermaidDiagram)
	return d, nil
}

// Export writes a report to w. csvKind selects the CSV layout and is
// ignored by the other formats.
func (a *ReportAdapter) Export(ctx context.Context, projectID, format, csvKind string, w io.Writer) error {
	switch format {
	case FormatHTML:
		rep, err := a.reports.GetExecutiveReport(ctx, projectID)
		if err != nil {
			return err
		}
		if rep.SummaryError != "" {
			fmt.Fprintf(a.out, "%s executive summary unavailable: %s\n", yellow.Sprint("!"), rep.SummaryError)
		}
		return a.html.Render(w, rep)

	case FormatJSON:
		rep, err := a.reports.GetProjectReport(ctx, projectID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)

	case FormatCSV:
		if csvKind == "" {
			csvKind = render.CSVProject
		}
		if !render.ValidCSVKind(csvKind) {
			return fmt.Errorf("unknown csv type %q (must be one of project, workflows, steps)", csvKind)
		}
		if csvKind == render.CSVSteps {
			rows, err := a.reports.GetStepRows(ctx, projectID)
			if err != nil {
				return err
			}
			return render.WriteStepsCSV(w, rows)
		}
		rep, err := a.reports.GetProjectReport(ctx, projectID)
		if err != nil {
			return err
		}
		if csvKind == render.CSVWorkflows {
			return render.WriteWorkflowsCSV(w, rep)
		}
		return render.WriteProjectCSV(w, rep)
	}
	return fmt.Errorf("unknown format %q (must be one of html, json, csv)", format)
}
