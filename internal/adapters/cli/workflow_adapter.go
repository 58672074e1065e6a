package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/enscope/internal/ports/primary"
)

// WorkflowAdapter translates CLI operations to WorkflowService calls.
type WorkflowAdapter struct {
	service primary.WorkflowService
	out     io.Writer
}

// NewWorkflowAdapter creates a new WorkflowAdapter with the given service.
func NewWorkflowAdapter(service primary.WorkflowService, out io.Writer) *WorkflowAdapter {
	return &WorkflowAdapter{service: service, out: out}
}

// Show prints a workflow with its steps and their scores.
func (a *WorkflowAdapter) Show(ctx context.Context, workflowID string) (*primary.WorkflowDetail, error) {
	wf, err := a.service.GetWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out)
	heading.Fprintf(a.out, "%d. %s\n", wf.WorkflowIndex, wf.WorkflowName)
	fmt.Fprintf(a.out, "Status: %s\n\n", statusText(wf.Status))

	if len(wf.Steps) == 0 {
		fmt.Fprintln(a.out, "No steps yet.")
		return wf, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tROLE\tSCORE\tTIER\tID")
	for _, st := range wf.Steps {
		score, tier := scoreText(0, 0), tierText("")
		if st.Score != nil {
			score, tier = scoreText(st.Score.Composite, 1), tierText(st.Score.Tier)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", st.StepNumber, st.StepName, st.RoleTeam, score, tier, st.ID)
	}
	w.Flush()
	return wf, nil
}

// AddStep appends a step to a workflow.
func (a *WorkflowAdapter) AddStep(ctx context.Context, workflowID string, fields primary.StepFields) (*primary.Step, error) {
	st, err := a.service.AddStep(ctx, workflowID, fields)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Added step %d: %s (%s)\n", st.StepNumber, st.StepName, st.ID)
	return st, nil
}

// DeleteStep removes a step and its score.
func (a *WorkflowAdapter) DeleteStep(ctx context.Context, stepID string) error {
	if err := a.service.DeleteStep(ctx, stepID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted step %s\n", stepID)
	return nil
}

// SetStatus sets a workflow's status.
func (a *WorkflowAdapter) SetStatus(ctx context.Context, workflowID, status string) (*primary.Workflow, error) {
	wf, err := a.service.SetStatus(ctx, workflowID, status)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ %s is now %s\n", wf.WorkflowName, statusText(wf.Status))
	return wf, nil
}
