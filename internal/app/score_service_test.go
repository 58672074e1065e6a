package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

type scoreFixture struct {
	service   *ScoreServiceImpl
	projects  *mockProjectRepository
	workflows *mockWorkflowRepository
	steps     *mockStepRepository
	scores    *mockScoreRepository
	gaps      *mockGapRepository
	generator *mockTextGenerator
	metrics   *mockMetrics
}

func newScoreFixture(concurrency int) *scoreFixture {
	f := &scoreFixture{
		projects:  newMockProjectRepository(),
		workflows: newMockWorkflowRepository(),
		steps:     newMockStepRepository(),
		scores:    newMockScoreRepository(),
		gaps:      newMockGapRepository(),
		generator: newMockTextGenerator(),
		metrics:   newMockMetrics(),
	}
	f.generator.respond = replyByStepName(nil)
	f.projects.projects["p1"] = &secondary.ProjectRecord{ID: "p1", Name: "Alpha", ClientName: "Acme"}
	f.workflows.addProjectWorkflows("p1")
	f.service = NewScoreService(ScoreServiceDeps{
		Projects:  f.projects,
		Workflows: f.workflows,
		Steps:     f.steps,
		Scores:    f.scores,
		Gaps:      f.gaps,
		Generator: f.generator,
		Metrics:   f.metrics,
		Logger:    zap.NewNop(),
	}, ScoreConfig{Policy: scoring.DefaultPenaltyPolicy(), Concurrency: concurrency})
	return f
}

// replyByStepName answers score requests from a table keyed by step name.
func replyByStepName(replies map[string]string) func(secondary.GenerateRequest) (string, error) {
	return func(req secondary.GenerateRequest) (string, error) {
		for name, reply := range replies {
			if strings.Contains(req.User, "Step Name: "+name+"\n") {
				if reply == "" {
					return "", errors.New("upstream timeout")
				}
				return reply, nil
			}
		}
		return scorePayload(3, 3, 3, 3, 3), nil
	}
}

func TestScoreWorkflow_AppliesPenaltyAndIsolatesFailures(t *testing.T) {
	for _, concurrency := range []int{1, 4} {
		f := newScoreFixture(concurrency)
		f.gaps.add("g1", "p1", 3, "cmdb", "red", "CMDB relationships missing")
		f.steps.addStep("s1", "p1-wf3", 1, "Lookup")
		f.steps.addStep("s2", "p1-wf3", 2, "Broken")
		f.steps.addStep("s3", "p1-wf3", 3, "Garbled")
		f.generator.respond = replyByStepName(map[string]string{
			"Lookup":  scorePayload(5, 5, 4, 4, 4),
			"Broken":  "",
			"Garbled": "I cannot score this step.",
		})

		result, err := f.service.ScoreWorkflow(context.Background(), "p1-wf3")
		if err != nil {
			t.Fatalf("concurrency %d: ScoreWorkflow failed: %v", concurrency, err)
		}

		if result.ScoredSteps != 1 || result.FailedSteps != 2 {
			t.Errorf("concurrency %d: scored/failed = %d/%d, want 1/2", concurrency, result.ScoredSteps, result.FailedSteps)
		}
		if len(result.Results) != 3 {
			t.Fatalf("concurrency %d: expected 3 results, got %d", concurrency, len(result.Results))
		}
		for i, id := range []string{"s1", "s2", "s3"} {
			if result.Results[i].StepID != id {
				t.Errorf("concurrency %d: results[%d] = %s, want %s", concurrency, i, result.Results[i].StepID, id)
			}
		}

		ok := result.Results[0]
		if ok.Scores == nil || ok.Error != "" {
			t.Fatalf("concurrency %d: expected first step scored, got %+v", concurrency, ok)
		}
		if ok.Scores.Composite != 18 || ok.Scores.Tier != "human_in_loop" || ok.Scores.Penalty != 4 {
			t.Errorf("concurrency %d: expected 22-4=18 human_in_loop, got %+v", concurrency, ok.Scores)
		}
		if result.Results[1].Error == "" || result.Results[1].Scores != nil {
			t.Errorf("concurrency %d: expected upstream failure entry, got %+v", concurrency, result.Results[1])
		}
		if !strings.Contains(result.Results[2].Error, "no JSON object") {
			t.Errorf("concurrency %d: expected parse failure entry, got %q", concurrency, result.Results[2].Error)
		}

		if len(f.scores.scores) != 1 || f.scores.scores["s1"] == nil {
			t.Errorf("concurrency %d: expected only s1 persisted, got %d scores", concurrency, len(f.scores.scores))
		}
		if f.metrics.scores["scored"] != 1 || f.metrics.scores["failed"] != 2 {
			t.Errorf("concurrency %d: unexpected metrics %v", concurrency, f.metrics.scores)
		}
	}
}

func TestScoreWorkflow_NoPenaltyOutsideRules(t *testing.T) {
	f := newScoreFixture(1)
	f.gaps.add("g1", "p1", 3, "cmdb", "red", "missing CIs")
	f.steps.addStep("s1", "p1-wf1", 1, "Receive")
	f.generator.respond = replyByStepName(map[string]string{"Receive": scorePayload(5, 5, 4, 4, 4)})

	result, err := f.service.ScoreWorkflow(context.Background(), "p1-wf1")
	if err != nil {
		t.Fatalf("ScoreWorkflow failed: %v", err)
	}
	if got := result.Results[0].Scores; got.Composite != 22 || got.Tier != "autonomous" || got.Penalty != 0 {
		t.Errorf("expected unpenalized 22 autonomous, got %+v", got)
	}
}

func TestScoreWorkflow_RescoreReplaces(t *testing.T) {
	f := newScoreFixture(1)
	f.steps.addStep("s1", "p1-wf5", 1, "Diagnose")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.service.ScoreWorkflow(ctx, "p1-wf5"); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}
	if f.scores.upserts != 3 || len(f.scores.scores) != 1 {
		t.Errorf("expected 3 upserts onto one score, got %d upserts and %d scores", f.scores.upserts, len(f.scores.scores))
	}
}

func TestScoreWorkflow_Errors(t *testing.T) {
	f := newScoreFixture(1)
	ctx := context.Background()

	if _, err := f.service.ScoreWorkflow(ctx, "missing"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := f.service.ScoreWorkflow(ctx, "p1-wf2"); !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error for a workflow without steps, got %v", err)
	}
	if len(f.generator.requests) != 0 {
		t.Error("no scoring request expected")
	}
}

func TestScoreWorkflow_SaveFailureIsPerStep(t *testing.T) {
	f := newScoreFixture(1)
	f.steps.addStep("s1", "p1-wf1", 1, "Receive")
	f.scores.upsertErr = errors.New("database is locked")

	result, err := f.service.ScoreWorkflow(context.Background(), "p1-wf1")
	if err != nil {
		t.Fatalf("ScoreWorkflow failed: %v", err)
	}
	if result.FailedSteps != 1 || !strings.Contains(result.Results[0].Error, "database is locked") {
		t.Errorf("expected save failure recorded on the step, got %+v", result.Results[0])
	}
}

func TestGetWorkflowScores(t *testing.T) {
	f := newScoreFixture(1)
	f.steps.addStep("s1", "p1-wf1", 1, "A")
	f.steps.addStep("s2", "p1-wf1", 2, "B")
	f.steps.addStep("s3", "p1-wf1", 3, "C")
	f.steps.addStep("s4", "p1-wf1", 4, "D")
	f.steps.scores["s1"] = &secondary.ScoreRecord{StepID: "s1", Composite: 22, Tier: "autonomous"}
	f.steps.scores["s2"] = &secondary.ScoreRecord{StepID: "s2", Composite: 15, Tier: "human_in_loop"}
	f.steps.scores["s4"] = &secondary.ScoreRecord{StepID: "s4", Composite: 8, Tier: "human_only"}

	scores, err := f.service.GetWorkflowScores(context.Background(), "p1-wf1")
	if err != nil {
		t.Fatalf("GetWorkflowScores failed: %v", err)
	}
	if scores.TotalScoredSteps != 3 || scores.AverageCompositeScore != 15 {
		t.Errorf("expected 3 scored averaging 15, got %d/%d", scores.TotalScoredSteps, scores.AverageCompositeScore)
	}
	if d := scores.TierDistribution; d.Autonomous != 33 || d.HumanInLoop != 33 || d.HumanOnly != 33 {
		t.Errorf("expected 33%% each, got %+v", d)
	}
	if len(scores.Scores) != 3 || scores.Scores[2].StepID != "s4" || scores.Scores[2].StepNumber != 4 {
		t.Errorf("unexpected score listing %+v", scores.Scores)
	}
}

func TestGetProjectScores(t *testing.T) {
	f := newScoreFixture(1)
	f.workflows.aggregates["p1"] = []*secondary.WorkflowAggregateRecord{
		{
			WorkflowRecord:  secondary.WorkflowRecord{ID: "p1-wf1", WorkflowIndex: 1, WorkflowName: "Signal Intake & Event Detection", Status: "complete"},
			ScoredSteps:     2,
			CompositeSum:    42,
			AutonomousCount: 2,
		},
		{
			WorkflowRecord: secondary.WorkflowRecord{ID: "p1-wf2", WorkflowIndex: 2, WorkflowName: "Triage & Classification", Status: "in_progress"},
			ScoredSteps:    1,
			CompositeSum:   12,
			HumanOnlyCount: 1,
		},
	}

	scores, err := f.service.GetProjectScores(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProjectScores failed: %v", err)
	}
	level := scores.EngagementLevel
	if level.TotalScoredSteps != 3 || level.AverageCompositeScore != 18 {
		t.Errorf("expected 3 steps averaging 18, got %+v", level)
	}
	if level.ReadinessTier != "human_in_loop" {
		t.Errorf("expected human_in_loop readiness, got %s", level.ReadinessTier)
	}
	if level.TierDistribution.Autonomous != 2 || level.TierDistribution.HumanOnly != 1 {
		t.Errorf("expected tier counts, got %+v", level.TierDistribution)
	}
	if scores.Workflows[0].AverageComposite != 21 || scores.Workflows[1].AverageComposite != 12 {
		t.Errorf("unexpected workflow averages %d, %d", scores.Workflows[0].AverageComposite, scores.Workflows[1].AverageComposite)
	}

	if _, err := f.service.GetProjectScores(context.Background(), "missing"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestScoreStep(t *testing.T) {
	f := newScoreFixture(1)
	f.gaps.add("g1", "p1", 3, "cmdb", "red", "missing CIs")
	f.generator.respond = func(req secondary.GenerateRequest) (string, error) {
		return scorePayload(5, 5, 4, 4, 7), nil
	}

	result, err := f.service.ScoreStep(context.Background(), primary.ScoreStepRequest{
		StepID:       "draft-1",
		WorkflowName: "Correlation & Context Enrichment",
		Fields:       primary.StepFields{StepName: "Lookup"},
	})
	if err != nil {
		t.Fatalf("ScoreStep failed: %v", err)
	}
	if result.Scores.SpeedSensitivity != 5 {
		t.Errorf("expected dimension clamped to 5, got %d", result.Scores.SpeedSensitivity)
	}
	if result.Scores.Composite != 23 || result.Scores.Penalty != 0 || result.Scores.Tier != "autonomous" {
		t.Errorf("expected unpenalized 23 autonomous, got %+v", result.Scores)
	}
	if result.StepID != "draft-1" || result.StepName != "Lookup" || result.Rationale != "ok" {
		t.Errorf("unexpected result %+v", result)
	}
	if f.scores.upserts != 0 {
		t.Error("stateless scoring must not persist")
	}

	req := f.generator.requests[0]
	if req.Operation != "score" || req.MaxTokens != DefaultScoreMaxTokens || req.System != scoring.ScoreSystemPrompt {
		t.Errorf("unexpected request %+v", req)
	}

	f.generator.respond = func(secondary.GenerateRequest) (string, error) { return "", errors.New("rate limited") }
	if _, err := f.service.ScoreStep(context.Background(), primary.ScoreStepRequest{}); !apperr.Is(err, apperr.Upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
}
