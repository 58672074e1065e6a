package primary

import "context"

// DiagramService defines the primary port for workflow diagrams.
type DiagramService interface {
	// GetWorkflowDiagram renders a workflow's steps as Mermaid text.
	GetWorkflowDiagram(ctx context.Context, workflowID string) (*Diagram, error)
}

// Diagram is a rendered workflow diagram.
type Diagram struct {
	WorkflowID     string `json:"workflow_id"`
	WorkflowIndex  int    `json:"workflow_index"`
	WorkflowName   string `json:"workflow_name"`
	Status         string `json:"status"`
	TotalSteps     int    `json:"total_steps"`
	MermaidDiagram string `json:"mermaid_diagram"`
}
