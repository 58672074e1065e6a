package primary

import "context"

// AssistService defines the primary port for LLM field guidance.
type AssistService interface {
	// Assist returns guidance for one interview field, with the project's
	// most recent red gaps and its tools attached.
	Assist(ctx context.Context, req AssistRequest) (*AssistResponse, error)

	// BuildPrompt assembles the system prompt Assist would send, without calling the model.
	BuildPrompt(ctx context.Context, req AssistRequest) (string, error)
}

// AssistRequest identifies the field being completed.
type AssistRequest struct {
	ProjectID     string
	WorkflowIndex int
	FieldName     string
	FieldValue    string
	StepData      map[string]string // other fields of the step, for context
}

// AssistResponse is the guidance for a field.
type AssistResponse struct {
	FieldName     string     `json:"field_name"`
	WorkflowIndex int        `json:"workflow_index"`
	Guidance      string     `json:"guidance"`
	GapFlags      []*GapFlag `json:"gap_flags"`
	RelevantTools []string   `json:"relevant_tools"`
}

// GapFlag points the user at a red gap while they fill in a field.
type GapFlag struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}
