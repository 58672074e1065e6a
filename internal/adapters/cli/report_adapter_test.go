package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/example/enscope/internal/adapters/render"
	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/ports/primary"
)

func sampleProjectReport() *primary.ProjectReport {
	return &primary.ProjectReport{
		ProjectID:   "p-1",
		ProjectName: "Alpha",
		ClientName:  "Acme",
		Statistics: report.Project{
			TotalWorkflows:       8,
			CompletedWorkflows:   1,
			CompletionPercentage: 13,
			TotalSteps:           2,
			TotalScoredSteps:     2,
			AverageComposite:     21,
			TierDistribution:     report.TierDistribution{Autonomous: 2},
			ReadinessTier:        scoring.TierAutonomous,
		},
		DependencyGapsSummary: map[gap.Type]gap.Counts{gap.TypeCMDB: {Amber: 2}},
		Workflows: []*primary.WorkflowRollup{
			{ID: "wf-1", WorkflowIndex: 1, WorkflowName: "Signal Intake & Event Detection", Status: "complete", TotalSteps: 2, ScoredSteps: 2, AverageComposite: 21},
			{ID: "wf-2", WorkflowIndex: 2, WorkflowName: "Triage & Classification", Status: "not_started"},
		},
	}
}

func newTestReportAdapter(t *testing.T, reports *mockReportService, scores *mockScoreService, out *bytes.Buffer) *ReportAdapter {
	t.Helper()
	html, err := render.NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer failed: %v", err)
	}
	return NewReportAdapter(reports, scores, mockDiagramService{}, html, out)
}

func TestReportAdapter_Project(t *testing.T) {
	var out bytes.Buffer
	adapter := newTestReportAdapter(t, &mockReportService{project: sampleProjectReport()}, &mockScoreService{}, &out)

	if _, err := adapter.Project(context.Background(), "p-1"); err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Alpha (Acme)",
		"Readiness:  Autonomous",
		"Average:    21/25",
		"Completion: 13% (1/8 workflows)",
		"Tiers:      2 autonomous, 0 human-in-loop, 0 human-only",
		"cmdb           AMBER  (0 red, 2 amber, 0 green)",
		"other          GREEN",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestReportAdapter_Workflow(t *testing.T) {
	var out bytes.Buffer
	reports := &mockReportService{workflow: &primary.WorkflowReport{
		WorkflowIndex: 3,
		WorkflowName:  "Correlation & Context Enrichment",
		Status:        "in_progress",
		Statistics:    report.Stats{TotalSteps: 2, ScoredSteps: 1, AverageComposite: 12},
		Steps: []*primary.ReportStep{
			{StepNumber: 1, StepName: "Lookup CI", Scores: &primary.ReportScores{DimensionScores: primary.DimensionScores{Composite: 12, Tier: "human_only"}}},
			{StepNumber: 2, StepName: "Enrich"},
		},
		DependencyGaps: []*primary.Gap{{GapType: "cmdb", Severity: "red", Description: "stale"}},
	}}
	adapter := newTestReportAdapter(t, reports, &mockScoreService{}, &out)

	if _, err := adapter.Workflow(context.Background(), "p-1", 3); err != nil {
		t.Fatalf("Workflow failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"3. Correlation & Context Enrichment", "12/25", "Human-Only", "Not Scored", "RED cmdb: stale"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestReportAdapter_Score(t *testing.T) {
	var out bytes.Buffer
	scores := &mockScoreService{batch: &primary.BatchScoreResult{
		WorkflowName: "Signal Intake & Event Detection",
		ScoredSteps:  1,
		FailedSteps:  1,
		Results: []*primary.StepScoreOutcome{
			{StepName: "Receive", Scores: &primary.DimensionScores{Composite: 19, Tier: "human_in_loop", Penalty: 2}},
			{StepName: "Dedupe", Error: "scoring request failed: timeout"},
		},
	}}
	adapter := newTestReportAdapter(t, &mockReportService{}, scores, &out)

	if _, err := adapter.Score(context.Background(), "wf-1"); err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"✓ Receive: 19/25 Human-in-Loop (-2 gap penalty)",
		"✗ Dedupe: scoring request failed: timeout",
		"Scored 1 of 2 steps in Signal Intake & Event Detection",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestReportAdapter_Diagram(t *testing.T) {
	var out bytes.Buffer
	adapter := newTestReportAdapter(t, &mockReportService{}, &mockScoreService{}, &out)

	if _, err := adapter.Diagram(context.Background(), "wf-1"); err != nil {
		t.Fatalf("Diagram failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "flowchart TD") {
		t.Errorf("expected mermaid output, got: %s", out.String())
	}
}

func TestReportAdapter_Export(t *testing.T) {
	reports := &mockReportService{
		project: sampleProjectReport(),
		rows:    []*primary.StepRow{{WorkflowIndex: 1, WorkflowName: "Signal Intake & Event Detection", StepNumber: 1, StepFields: primary.StepFields{StepName: "Receive"}}},
		summary: "Ready for pilot.",
	}

	tests := []struct {
		name    string
		format  string
		csvKind string
		check   func(t *testing.T, doc string)
	}{
		{"html", FormatHTML, "", func(t *testing.T, doc string) {
			if !strings.Contains(doc, "Ready for pilot.") {
				t.Errorf("html missing summary")
			}
		}},
		{"json", FormatJSON, "", func(t *testing.T, doc string) {
			var rep primary.ProjectReport
			if err := json.Unmarshal([]byte(doc), &rep); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if rep.ProjectName != "Alpha" {
				t.Errorf("unexpected project %q", rep.ProjectName)
			}
		}},
		{"csv default", FormatCSV, "", func(t *testing.T, doc string) {
			if !strings.HasPrefix(doc, "metric,value\n") {
				t.Errorf("expected project csv, got: %s", doc)
			}
		}},
		{"csv workflows", FormatCSV, render.CSVWorkflows, func(t *testing.T, doc string) {
			if got := strings.Count(doc, "\n"); got != 3 {
				t.Errorf("expected header and 2 rows, got %d lines", got)
			}
		}},
		{"csv steps", FormatCSV, render.CSVSteps, func(t *testing.T, doc string) {
			if !strings.Contains(doc, "1,Signal Intake & Event Detection,1,Receive") {
				t.Errorf("unexpected steps csv: %s", doc)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, doc bytes.Buffer
			adapter := newTestReportAdapter(t, reports, &mockScoreService{}, &out)

			if err := adapter.Export(context.Background(), "p-1", tt.format, tt.csvKind, &doc); err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			tt.check(t, doc.String())
		})
	}
}

func TestReportAdapter_Export_Errors(t *testing.T) {
	var out, doc bytes.Buffer
	adapter := newTestReportAdapter(t, &mockReportService{project: sampleProjectReport()}, &mockScoreService{}, &out)
	ctx := context.Background()

	if err := adapter.Export(ctx, "p-1", "pdf", "", &doc); err == nil {
		t.Error("expected unknown format error")
	}
	if err := adapter.Export(ctx, "p-1", FormatCSV, "gaps", &doc); err == nil {
		t.Error("expected unknown csv type error")
	}
}

func TestReportAdapter_Export_SummaryUnavailable(t *testing.T) {
	var out, doc bytes.Buffer
	reports := &mockReportService{project: sampleProjectReport(), sumErr: "text generation is not configured"}
	adapter := newTestReportAdapter(t, reports, &mockScoreService{}, &out)

	if err := adapter.Export(context.Background(), "p-1", FormatHTML, "", &doc); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(out.String(), "! executive summary unavailable: text generation is not configured") {
		t.Errorf("expected warning, got: %s", out.String())
	}
	if !strings.Contains(doc.String(), "Executive summary unavailable") {
		t.Error("expected notice in document")
	}
}
