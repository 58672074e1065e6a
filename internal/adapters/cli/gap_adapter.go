package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/workflow"
	"github.com/example/enscope/internal/ports/primary"
)

// GapAdapter translates CLI operations to GapService calls.
type GapAdapter struct {
	service primary.GapService
	out     io.Writer
}

// NewGapAdapter creates a new GapAdapter with the given service.
func NewGapAdapter(service primary.GapService, out io.Writer) *GapAdapter {
	return &GapAdapter{service: service, out: out}
}

// Add records a gap.
func (a *GapAdapter) Add(ctx context.Context, req primary.CreateGapRequest) (*primary.Gap, error) {
	g, err := a.service.CreateGap(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Recorded %s %s gap %s on workflow %d\n", severityText(gap.Severity(g.Severity)), g.GapType, g.ID, g.WorkflowIndex)
	return g, nil
}

// List prints a project's gaps, newest first.
func (a *GapAdapter) List(ctx context.Context, projectID string) (*primary.GapList, error) {
	list, err := a.service.ListGaps(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if list.TotalGaps == 0 {
		fmt.Fprintln(a.out, "No gaps recorded.")
		return list, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSEVERITY\tTYPE\tWORKFLOW\tDESCRIPTION")
	for _, g := range list.Gaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", g.ID, severityText(gap.Severity(g.Severity)), g.GapType, workflow.Name(g.WorkflowIndex), g.Description)
	}
	w.Flush()
	return list, nil
}

// Summary prints the RAG status and counts per dependency dimension.
func (a *GapAdapter) Summary(ctx context.Context, projectID string) (*primary.GapSummary, error) {
	s, err := a.service.GetSummary(ctx, projectID)
	if err != nil {
		return nil, err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DIMENSION\tSTATUS\tRED\tAMBER\tGREEN")
	for _, t := range gap.Types {
		c := s.Summary[t]
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", t, severityText(s.DimensionStatus[t]), c.Red, c.Amber, c.Green)
	}
	w.Flush()
	fmt.Fprintf(a.out, "\nTotal gaps: %d\n", s.TotalGaps)
	return s, nil
}

// Delete removes a gap.
func (a *GapAdapter) Delete(ctx context.Context, gapID string) error {
	if err := a.service.DeleteGap(ctx, gapID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted gap %s\n", gapID)
	return nil
}
