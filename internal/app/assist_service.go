package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/core/prompt"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

const (
	// DefaultAssistMaxTokens bounds a field guidance response.
	DefaultAssistMaxTokens = 1024

	assistGapFlagLimit = 3
)

// AssistServiceImpl implements the AssistService interface.
type AssistServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	workflowRepo secondary.WorkflowRepository
	gapRepo      secondary.GapRepository
	prompts      secondary.PromptSource
	generator    secondary.TextGenerator
	logger       *zap.Logger
	maxTokens    int
}

// NewAssistService creates a new AssistService with injected dependencies.
func NewAssistService(
	projectRepo secondary.ProjectRepository,
	workflowRepo secondary.WorkflowRepository,
	gapRepo secondary.GapRepository,
	prompts secondary.PromptSource,
	generator secondary.TextGenerator,
	logger *zap.Logger,
	maxTokens int,
) *AssistServiceImpl {
	if maxTokens <= 0 {
		maxTokens = DefaultAssistMaxTokens
	}
	return &AssistServiceImpl{
		projectRepo:  projectRepo,
		workflowRepo: workflowRepo,
		gapRepo:      gapRepo,
		prompts:      prompts,
		generator:    generator,
		logger:       logger,
		maxTokens:    maxTokens,
	}
}

// Assist returns guidance for one interview field.
func (s *AssistServiceImpl) Assist(ctx context.Context, req primary.AssistRequest) (*primary.AssistResponse, error) {
	system, tools, err := s.systemPrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	guidance, err := s.generator.Generate(ctx, secondary.GenerateRequest{
		Operation: "assist",
		System:    system,
		User:      prompt.UserMessage(req.FieldName, req.FieldValue, req.StepData),
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		s.logger.Warn("field assistance failed", zap.String("field", req.FieldName), zap.Error(err))
		return nil, apperr.UpstreamError("Failed to generate assistance", err)
	}

	redGaps, err := s.gapRepo.List(ctx, req.ProjectID, secondary.GapFilters{
		Severity: string(gap.SeverityRed),
		Limit:    assistGapFlagLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}
	flags := make([]*primary.GapFlag, len(redGaps))
	for i, g := range redGaps {
		flags[i] = &primary.GapFlag{Type: g.GapType, Description: g.Description}
	}

	return &primary.AssistResponse{
		FieldName:     req.FieldName,
		WorkflowIndex: req.WorkflowIndex,
		Guidance:      guidance,
		GapFlags:      flags,
		RelevantTools: tools,
	}, nil
}

// BuildPrompt assembles the system prompt Assist would send.
func (s *AssistServiceImpl) BuildPrompt(ctx context.Context, req primary.AssistRequest) (string, error) {
	system, _, err := s.systemPrompt(ctx, req)
	return system, err
}

func (s *AssistServiceImpl) systemPrompt(ctx context.Context, req primary.AssistRequest) (string, []string, error) {
	if req.ProjectID == "" || req.WorkflowIndex == 0 || req.FieldName == "" {
		return "", nil, apperr.Validationf("Missing required fields: projectId, workflowIndex, fieldName")
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return "", nil, err
	}
	tools, err := s.projectRepo.ListTools(ctx, req.ProjectID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list tools: %w", err)
	}

	// An unknown index still gets a prompt; Assemble names it "Workflow <n>".
	workflowName := ""
	if wf, err := s.workflowRepo.GetByIndex(ctx, req.ProjectID, req.WorkflowIndex); err == nil {
		workflowName = wf.WorkflowName
	} else if !apperr.Is(err, apperr.NotFound) {
		return "", nil, fmt.Errorf("failed to load workflow: %w", err)
	}

	texts, err := s.prompts.Load(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	system := prompt.Assemble(prompt.Input{
		WorkflowIndex: req.WorkflowIndex,
		WorkflowName:  workflowName,
		FieldName:     req.FieldName,
		Tools:         tools,
	}, texts)
	return system, tools, nil
}

var _ primary.AssistService = (*AssistServiceImpl)(nil)
