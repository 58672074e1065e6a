package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// DefaultReportMaxTokens bounds an executive summary.
const DefaultReportMaxTokens = 2048

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	workflowRepo secondary.WorkflowRepository
	stepRepo     secondary.StepRepository
	gapRepo      secondary.GapRepository
	generator    secondary.TextGenerator
	logger       *zap.Logger
	maxTokens    int
	now          func() time.Time
}

// ReportServiceDeps groups the collaborators of ReportServiceImpl.
type ReportServiceDeps struct {
	Projects  secondary.ProjectRepository
	Workflows secondary.WorkflowRepository
	Steps     secondary.StepRepository
	Gaps      secondary.GapRepository
	Generator secondary.TextGenerator
	Logger    *zap.Logger
	MaxTokens int
	Now       func() time.Time
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(deps ReportServiceDeps) *ReportServiceImpl {
	s := &ReportServiceImpl{
		projectRepo:  deps.Projects,
		workflowRepo: deps.Workflows,
		stepRepo:     deps.Steps,
		gapRepo:      deps.Gaps,
		generator:    deps.Generator,
		logger:       deps.Logger,
		maxTokens:    deps.MaxTokens,
		now:          deps.Now,
	}
	if s.maxTokens <= 0 {
		s.maxTokens = DefaultReportMaxTokens
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// GetWorkflowReport reports one workflow, addressed by project and index.
// Only gaps recorded against that workflow are included.
func (s *ReportServiceImpl) GetWorkflowReport(ctx context.Context, projectID string, workflowIndex int) (*primary.WorkflowReport, error) {
	wf, err := s.workflowRepo.GetByIndex(ctx, projectID, workflowIndex)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.ListByWorkflow(ctx, wf.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	gapRecords, err := s.gapRepo.List(ctx, projectID, secondary.GapFilters{WorkflowIndex: workflowIndex})
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}

	rep := &primary.WorkflowReport{
		WorkflowID:     wf.ID,
		WorkflowIndex:  wf.WorkflowIndex,
		WorkflowName:   wf.WorkflowName,
		Status:         wf.Status,
		Steps:          make([]*primary.ReportStep, len(steps)),
		DependencyGaps: make([]*primary.Gap, len(gapRecords)),
	}

	var scored []report.ScoredStep
	for i, st := range steps {
		rs := &primary.ReportStep{
			StepNumber:     st.Step.StepNumber,
			StepName:       st.Step.StepName,
			Description:    st.Step.Description,
			RoleTeam:       st.Step.RoleTeam,
			SystemsTools:   st.Step.SystemsTools,
			DecisionPoints: st.Step.DecisionPoints,
			PainPoints:     st.Step.PainPoints,
		}
		if st.Score != nil {
			scored = append(scored, report.ScoredStep{Composite: st.Score.Composite, Tier: st.Score.Tier})
			rs.Scores = &primary.ReportScores{
				DimensionScores: scoreToDimensionScores(st.Score),
				Rationale:       st.Score.Rationale,
			}
		}
		rep.Steps[i] = rs
	}
	rep.Statistics = report.WorkflowStats(len(steps), scored)

	for i, g := range gapRecords {
		rep.DependencyGaps[i] = recordToGap(g)
	}
	return rep, nil
}

// GetProjectReport rolls every workflow of a project up into one report.
func (s *ReportServiceImpl) GetProjectReport(ctx context.Context, projectID string) (*primary.ProjectReport, error) {
	proj, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tools, err := s.projectRepo.ListTools(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	aggregates, err := s.workflowRepo.Aggregates(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate workflows: %w", err)
	}
	gapRecords, err := s.gapRepo.List(ctx, projectID, secondary.GapFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}

	rep := &primary.ProjectReport{
		ProjectID:             proj.ID,
		ProjectName:           proj.Name,
		ClientName:            proj.ClientName,
		EngagementType:        proj.EngagementType,
		CreatedAt:             proj.CreatedAt,
		DependencyGapsSummary: gap.Summarize(gapEntries(gapRecords)).Counts,
		ObservabilityTools:    tools,
		Workflows:             make([]*primary.WorkflowRollup, 0, len(aggregates)),
	}

	rollups := make([]report.WorkflowRollup, 0, len(aggregates))
	for _, a := range aggregates {
		rollup := aggregateToRollup(a)
		rollups = append(rollups, rollup)
		rep.Workflows = append(rep.Workflows, &primary.WorkflowRollup{
			ID:               a.ID,
			WorkflowIndex:    a.WorkflowIndex,
			WorkflowName:     a.WorkflowName,
			Status:           a.Status,
			TotalSteps:       a.TotalSteps,
			CompletedSteps:   a.CompletedSteps,
			ScoredSteps:      a.ScoredSteps,
			AverageComposite: rollup.AverageComposite(),
			TierDistribution: rollup.TierDistribution,
		})
	}
	rep.Statistics = report.ProjectStats(rollups)
	return rep, nil
}

// GetExecutiveReport is the project report plus a generated executive summary.
// A summary failure is recorded on the result instead of failing the export.
func (s *ReportServiceImpl) GetExecutiveReport(ctx context.Context, projectID string) (*primary.ExecutiveReport, error) {
	rep, err := s.GetProjectReport(ctx, projectID)
	if err != nil {
		return nil, err
	}

	exec := &primary.ExecutiveReport{Report: rep, GeneratedAt: s.now()}

	summary, err := s.generator.Generate(ctx, secondary.GenerateRequest{
		Operation: "report",
		System:    report.SummarySystemPrompt,
		User: report.SummaryMessage(report.SummaryInput{
			ProjectName:          rep.ProjectName,
			ClientName:           rep.ClientName,
			EngagementType:       rep.EngagementType,
			Workflows:            len(rep.Workflows),
			CompletionPercentage: rep.Statistics.CompletionPercentage,
			ReadinessTier:        string(rep.Statistics.ReadinessTier),
		}),
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		s.logger.Warn("executive summary unavailable", zap.String("project_id", projectID), zap.Error(err))
		exec.SummaryError = err.Error()
		return exec, nil
	}

	exec.Summary = summary
	return exec, nil
}

// GetStepRows returns every step of a project in workflow and step order.
func (s *ReportServiceImpl) GetStepRows(ctx context.Context, projectID string) ([]*primary.StepRow, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	workflows, err := s.workflowRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	rows := []*primary.StepRow{}
	for _, wf := range workflows {
		steps, err := s.stepRepo.ListByWorkflow(ctx, wf.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list steps of workflow %d: %w", wf.WorkflowIndex, err)
		}
		for _, st := range steps {
			rows = append(rows, &primary.StepRow{
				WorkflowIndex: wf.WorkflowIndex,
				WorkflowName:  wf.WorkflowName,
				StepNumber:    st.Step.StepNumber,
				StepFields:    recordToStepFields(st.Step),
				Score:         recordToScore(st.Score),
			})
		}
	}
	return rows, nil
}

var _ primary.ReportService = (*ReportServiceImpl)(nil)
