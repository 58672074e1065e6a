package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/report"
	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// DefaultScoreMaxTokens bounds a single scoring response.
const DefaultScoreMaxTokens = 1024

// ScoreConfig tunes batch scoring.
type ScoreConfig struct {
	Policy      scoring.PenaltyPolicy
	Concurrency int // steps scored in parallel; 1 or less is sequential
	MaxTokens   int
}

// ScoreServiceImpl implements the ScoreService interface.
type ScoreServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	workflowRepo secondary.WorkflowRepository
	stepRepo     secondary.StepRepository
	scoreRepo    secondary.ScoreRepository
	gapRepo      secondary.GapRepository
	generator    secondary.TextGenerator
	metrics      secondary.MetricsRecorder
	logger       *zap.Logger
	cfg          ScoreConfig
}

// ScoreServiceDeps groups the collaborators of ScoreServiceImpl.
type ScoreServiceDeps struct {
	Projects  secondary.ProjectRepository
	Workflows secondary.WorkflowRepository
	Steps     secondary.StepRepository
	Scores    secondary.ScoreRepository
	Gaps      secondary.GapRepository
	Generator secondary.TextGenerator
	Metrics   secondary.MetricsRecorder
	Logger    *zap.Logger
}

// NewScoreService creates a new ScoreService with injected dependencies.
func NewScoreService(deps ScoreServiceDeps, cfg ScoreConfig) *ScoreServiceImpl {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultScoreMaxTokens
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = secondary.NopMetrics{}
	}
	return &ScoreServiceImpl{
		projectRepo:  deps.Projects,
		workflowRepo: deps.Workflows,
		stepRepo:     deps.Steps,
		scoreRepo:    deps.Scores,
		gapRepo:      deps.Gaps,
		generator:    deps.Generator,
		metrics:      metrics,
		logger:       deps.Logger,
		cfg:          cfg,
	}
}

// ScoreWorkflow scores every step of a workflow. Each step is scored
// independently: a failure is recorded on that step's entry and nothing is
// written for it. Results keep step order regardless of concurrency.
func (s *ScoreServiceImpl) ScoreWorkflow(ctx context.Context, workflowID string) (*primary.BatchScoreResult, error) {
	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	if len(steps) == 0 {
		return nil, apperr.Validationf("No steps to score")
	}

	gapRecords, err := s.gapRepo.List(ctx, wf.ProjectID, secondary.GapFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}
	gaps := gapsForPenalty(gapRecords)

	results := make([]*primary.StepScoreOutcome, len(steps))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, st := range steps {
		g.Go(func() error {
			results[i] = s.scoreOne(ctx, wf, st.Step, gaps)
			return nil
		})
	}
	_ = g.Wait()

	batch := &primary.BatchScoreResult{
		WorkflowID:   wf.ID,
		WorkflowName: wf.WorkflowName,
		Results:      results,
	}
	for _, r := range results {
		if r.Error != "" {
			batch.FailedSteps++
		} else {
			batch.ScoredSteps++
		}
	}

	s.logger.Info("workflow scored",
		zap.String("workflow_id", wf.ID),
		zap.Int("scored", batch.ScoredSteps),
		zap.Int("failed", batch.FailedSteps))

	return batch, nil
}

func (s *ScoreServiceImpl) scoreOne(ctx context.Context, wf *secondary.WorkflowRecord, step *secondary.StepRecord, gaps []scoring.Gap) *primary.StepScoreOutcome {
	outcome := &primary.StepScoreOutcome{StepID: step.ID, StepName: step.StepName}

	result, rationale, err := s.generateScore(ctx, wf.WorkflowName, recordToStepFields(step), func(dims scoring.Dimensions) scoring.Result {
		return scoring.Aggregate(dims, wf.WorkflowIndex, gaps, s.cfg.Policy)
	})
	if err == nil {
		err = s.scoreRepo.Upsert(ctx, &secondary.ScoreRecord{
			ID:                 uuid.NewString(),
			StepID:             step.ID,
			RuleBased:          result.Dimensions.RuleBased,
			DataAvailability:   result.Dimensions.DataAvailability,
			ExceptionFrequency: result.Dimensions.ExceptionFrequency,
			Auditability:       result.Dimensions.Auditability,
			SpeedSensitivity:   result.Dimensions.SpeedSensitivity,
			Composite:          result.Composite,
			Tier:               string(result.Tier),
			Rationale:          rationale,
		})
		if err != nil {
			err = fmt.Errorf("failed to save score: %w", err)
		}
	}

	if err != nil {
		s.logger.Warn("step scoring failed", zap.String("step_id", step.ID), zap.Error(err))
		s.metrics.ObserveStepScore(secondary.ScoreOutcomeFailed)
		outcome.Error = err.Error()
		return outcome
	}

	s.metrics.ObserveStepScore(secondary.ScoreOutcomeScored)
	scores := resultToDimensionScores(result)
	outcome.Scores = &scores
	return outcome
}

// generateScore asks the text generator for a score payload and aggregates it.
func (s *ScoreServiceImpl) generateScore(ctx context.Context, workflowName string, f primary.StepFields, aggregate func(scoring.Dimensions) scoring.Result) (scoring.Result, string, error) {
	text, err := s.generator.Generate(ctx, secondary.GenerateRequest{
		Operation: "score",
		System:    scoring.ScoreSystemPrompt,
		User: scoring.ScoreUserMessage(scoring.StepInput{
			WorkflowName:   workflowName,
			StepName:       f.StepName,
			Description:    f.Description,
			RoleTeam:       f.RoleTeam,
			TriggerInput:   f.TriggerInput,
			SystemsTools:   f.SystemsTools,
			DecisionPoints: f.DecisionPoints,
			OutputHandoff:  f.OutputHandoff,
			PainPoints:     f.PainPoints,
			TimeEffort:     f.TimeEffort,
		}),
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return scoring.Result{}, "", fmt.Errorf("scoring request failed: %w", err)
	}

	payload, err := scoring.ParsePayload(text)
	if err != nil {
		return scoring.Result{}, "", fmt.Errorf("failed to parse scores: %w", err)
	}
	return aggregate(payload.Dimensions), payload.Rationale, nil
}

// GetWorkflowScores lists a workflow's stored scores with its tier distribution.
func (s *ScoreServiceImpl) GetWorkflowScores(ctx context.Context, workflowID string) (*primary.WorkflowScores, error) {
	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}

	result := &primary.WorkflowScores{
		WorkflowID:   wf.ID,
		WorkflowName: wf.WorkflowName,
		Scores:       []*primary.StepScore{},
	}
	var scored []report.ScoredStep
	for _, st := range steps {
		if st.Score == nil {
			continue
		}
		scored = append(scored, report.ScoredStep{Composite: st.Score.Composite, Tier: st.Score.Tier})
		result.Scores = append(result.Scores, &primary.StepScore{
			StepID:     st.Step.ID,
			StepNumber: st.Step.StepNumber,
			StepName:   st.Step.StepName,
			Score:      *recordToScore(st.Score),
		})
	}

	stats := report.WorkflowStats(len(steps), scored)
	result.TotalScoredSteps = stats.ScoredSteps
	result.AverageCompositeScore = stats.AverageComposite
	result.TierDistribution = stats.TierDistribution.Percentages(stats.ScoredSteps)
	return result, nil
}

// GetProjectScores rolls scores up per workflow and for the whole project.
func (s *ScoreServiceImpl) GetProjectScores(ctx context.Context, projectID string) (*primary.ProjectScores, error) {
	proj, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	aggregates, err := s.workflowRepo.Aggregates(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate workflows: %w", err)
	}

	result := &primary.ProjectScores{
		ProjectID:   proj.ID,
		ProjectName: proj.Name,
		ClientName:  proj.ClientName,
		Workflows:   make([]*primary.WorkflowScoreRollup, 0, len(aggregates)),
	}
	rollups := make([]report.WorkflowRollup, 0, len(aggregates))
	for _, a := range aggregates {
		rollup := aggregateToRollup(a)
		rollups = append(rollups, rollup)
		result.Workflows = append(result.Workflows, &primary.WorkflowScoreRollup{
			ID:               a.ID,
			WorkflowIndex:    a.WorkflowIndex,
			WorkflowName:     a.WorkflowName,
			Status:           a.Status,
			ScoredSteps:      a.ScoredSteps,
			AverageComposite: rollup.AverageComposite(),
			TierDistribution: rollup.TierDistribution,
		})
	}

	stats := report.ProjectStats(rollups)
	result.EngagementLevel = primary.EngagementLevel{
		AverageCompositeScore: stats.AverageComposite,
		TotalScoredSteps:      stats.TotalScoredSteps,
		TierDistribution:      stats.TierDistribution,
		ReadinessTier:         string(stats.ReadinessTier),
	}
	return result, nil
}

// ScoreStep scores an ad-hoc step without persisting anything. No gap
// context applies, so the composite is never penalized.
func (s *ScoreServiceImpl) ScoreStep(ctx context.Context, req primary.ScoreStepRequest) (*primary.StepScoreResult, error) {
	result, rationale, err := s.generateScore(ctx, req.WorkflowName, req.Fields, scoring.Unpenalized)
	if err != nil {
		return nil, apperr.UpstreamError("Failed to score step", err)
	}
	return &primary.StepScoreResult{
		StepID:    req.StepID,
		StepName:  req.Fields.StepName,
		Scores:    resultToDimensionScores(result),
		Rationale: rationale,
	}, nil
}

func aggregateToRollup(a *secondary.WorkflowAggregateRecord) report.WorkflowRollup {
	return report.WorkflowRollup{
		Status:         a.Status,
		TotalSteps:     a.TotalSteps,
		CompletedSteps: a.CompletedSteps,
		ScoredSteps:    a.ScoredSteps,
		CompositeSum:   a.CompositeSum,
		TierDistribution: report.TierDistribution{
			Autonomous:  a.AutonomousCount,
			HumanInLoop: a.HumanInLoopCount,
			HumanOnly:   a.HumanOnlyCount,
		},
	}
}

var _ primary.ScoreService = (*ScoreServiceImpl)(nil)
