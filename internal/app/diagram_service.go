package app

import (
	"context"
	"fmt"

	"github.com/example/enscope/internal/core/diagram"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// DiagramServiceImpl implements the DiagramService interface.
type DiagramServiceImpl struct {
	workflowRepo secondary.WorkflowRepository
	stepRepo     secondary.StepRepository
}

// NewDiagramService creates a new DiagramService with injected dependencies.
func NewDiagramService(workflowRepo secondary.WorkflowRepository, stepRepo secondary.StepRepository) *DiagramServiceImpl {
	return &DiagramServiceImpl{
		workflowRepo: workflowRepo,
		stepRepo:     stepRepo,
	}
}

// GetWorkflowDiagram renders a workflow's steps as Mermaid text.
func (s *DiagramServiceImpl) GetWorkflowDiagram(ctx context.Context, workflowID string) (*primary.Diagram, error) {
	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}

	nodes := make([]diagram.Step, len(steps))
	for i, st := range steps {
		nodes[i] = diagram.Step{
			Number:      st.Step.StepNumber,
			Name:        st.Step.StepName,
			Description: st.Step.Description,
			PainPoints:  st.Step.PainPoints,
		}
		if st.Score != nil {
			composite, tier := st.Score.Composite, st.Score.Tier
			nodes[i].Score = &composite
			nodes[i].Tier = &tier
		}
	}

	return &primary.Diagram{
		WorkflowID:     wf.ID,
		WorkflowIndex:  wf.WorkflowIndex,
		WorkflowName:   wf.WorkflowName,
		Status:         wf.Status,
		TotalSteps:     len(steps),
		MermaidDiagram: diagram.Generate(wf.WorkflowName, nodes),
	}, nil
}

var _ primary.DiagramService = (*DiagramServiceImpl)(nil)
