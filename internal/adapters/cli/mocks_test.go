package cli

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

var errNotImplemented = errors.New("not implemented in adapter")

// mockProjectService implements primary.ProjectService for testing
type mockProjectService struct {
	createFn    func(ctx context.Context, req primary.CreateProjectRequest) (*primary.ProjectDetail, error)
	listFn      func(ctx context.Context) ([]*primary.Project, error)
	dashboardFn func(ctx context.Context, projectID string) (*primary.Dashboard, error)
	deleteFn    func(ctx context.Context, projectID, passphrase string) error

	lastJoin primary.JoinProjectRequest
}

func (m *mockProjectService) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.ProjectDetail, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &primary.ProjectDetail{
		Project: primary.Project{ID: "p-1", Name: req.Name, ClientName: req.ClientName},
		Workflows: []*primary.Workflow{
			{ID: "wf-1", WorkflowIndex: 1, WorkflowName: "Signal Intake & Event Detection", Status: "not_started"},
		},
	}, nil
}

func (m *mockProjectService) JoinProject(ctx context.Context, req primary.JoinProjectRequest) (*primary.ProjectDetail, error) {
	m.lastJoin = req
	return &primary.ProjectDetail{Project: primary.Project{ID: "p-1", Name: req.Name}}, nil
}

func (m *mockProjectService) GetProject(ctx context.Context, projectID string) (*primary.ProjectDetail, error) {
	return &primary.ProjectDetail{Project: primary.Project{ID: projectID, Name: "Alpha"}}, nil
}

func (m *mockProjectService) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []*primary.Project{}, nil
}

func (m *mockProjectService) ListWorkflows(ctx context.Context, projectID string) ([]*primary.Workflow, error) {
	return nil, errNotImplemented
}

func (m *mockProjectService) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) (*primary.ProjectDetail, error) {
	return nil, errNotImplemented
}

func (m *mockProjectService) DeleteProject(ctx context.Context, projectID, passphrase string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, projectID, passphrase)
	}
	return nil
}

func (m *mockProjectService) GetDashboard(ctx context.Context, projectID string) (*primary.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, projectID)
	}
	return nil, errNotImplemented
}

// mockGapService implements primary.GapService for testing
type mockGapService struct {
	gaps []*primary.Gap
}

func (m *mockGapService) ListGaps(ctx context.Context, projectID string) (*primary.GapList, error) {
	return &primary.GapList{ProjectID: projectID, TotalGaps: len(m.gaps), Gaps: m.gaps}, nil
}

func (m *mockGapService) GetSummary(ctx context.Context, projectID string) (*primary.GapSummary, error) {
	s := &primary.GapSummary{
		ProjectID:       projectID,
		Summary:         map[gap.Type]gap.Counts{},
		DimensionStatus: map[gap.Type]gap.Severity{},
	}
	for _, t := range gap.Types {
		s.Summary[t] = gap.Counts{}
	}
	for _, g := range m.gaps {
		c := s.Summary[gap.Type(g.GapType)]
		switch gap.Severity(g.Severity) {
		case gap.SeverityRed:
			c.Red++
		case gap.SeverityAmber:
			c.Amber++
		default:
			c.Green++
		}
		s.Summary[gap.Type(g.GapType)] = c
	}
	for t, c := range s.Summary {
		s.DimensionStatus[t] = c.Overall()
	}
	s.TotalGaps = len(m.gaps)
	return s, nil
}

func (m *mockGapService) CreateGap(ctx context.Context, req primary.CreateGapRequest) (*primary.Gap, error) {
	g := &primary.Gap{
		ID:            "g-1",
		ProjectID:     req.ProjectID,
		WorkflowIndex: req.WorkflowIndex,
		GapType:       req.GapType,
		Severity:      req.Severity,
		Description:   req.Description,
	}
	m.gaps = append(m.gaps, g)
	return g, nil
}

func (m *mockGapService) UpdateGap(ctx context.Context, req primary.UpdateGapRequest) (*primary.Gap, error) {
	return nil, errNotImplemented
}

func (m *mockGapService) DeleteGap(ctx context.Context, gapID string) error {
	return nil
}

// mockReportService implements primary.ReportService for testing
type mockReportService struct {
	project  *primary.ProjectReport
	workflow *primary.WorkflowReport
	rows     []*primary.StepRow
	summary  string
	sumErr   string
}

func (m *mockReportService) GetWorkflowReport(ctx context.Context, projectID string, workflowIndex int) (*primary.WorkflowReport, error) {
	if m.workflow == nil {
		return nil, errNotImplemented
	}
	return m.workflow, nil
}

func (m *mockReportService) GetProjectReport(ctx context.Context, projectID string) (*primary.ProjectReport, error) {
	return m.project, nil
}

func (m *mockReportService) GetExecutiveReport(ctx context.Context, projectID string) (*primary.ExecutiveReport, error) {
	return &primary.ExecutiveReport{Report: m.project, Summary: m.summary, SummaryError: m.sumErr}, nil
}

func (m *mockReportService) GetStepRows(ctx context.Context, projectID string) ([]*primary.StepRow, error) {
	return m.rows, nil
}

// mockScoreService implements primary.ScoreService for testing
type mockScoreService struct {
	batch *primary.BatchScoreResult
}

func (m *mockScoreService) ScoreWorkflow(ctx context.Context, workflowID string) (*primary.BatchScoreResult, error) {
	return m.batch, nil
}

func (m *mockScoreService) GetWorkflowScores(ctx context.Context, workflowID string) (*primary.WorkflowScores, error) {
	return nil, errNotImplemented
}

func (m *mockScoreService) GetProjectScores(ctx context.Context, projectID string) (*primary.ProjectScores, error) {
	return nil, errNotImplemented
}

func (m *mockScoreService) ScoreStep(ctx context.Context, req primary.ScoreStepRequest) (*primary.StepScoreResult, error) {
	return nil, errNotImplemented
}

// mockDiagramService implements primary.DiagramService for testing
type mockDiagramService struct{}

func (mockDiagramService) GetWorkflowDiagram(ctx context.Context, workflowID string) (*primary.Diagram, error) {
	return &primary.Diagram{WorkflowID: workflowID, MermaidDiagram: "flowchart TD\n    Start([Start])"}, nil
}

// mockAssistService implements primary.AssistService for testing
type mockAssistService struct {
	lastReq primary.AssistRequest
}

func (m *mockAssistService) Assist(ctx context.Context, req primary.AssistRequest) (*primary.AssistResponse, error) {
	m.lastReq = req
	return &primary.AssistResponse{
		FieldName: req.FieldName,
		Guidance:  "Name the alert source.",
		GapFlags:  []*primary.GapFlag{{Type: "cmdb", Description: "CI data stale"}},
	}, nil
}

func (m *mockAssistService) BuildPrompt(ctx context.Context, req primary.AssistRequest) (string, error) {
	m.lastReq = req
	return "SYSTEM PROMPT", nil
}
