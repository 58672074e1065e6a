// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// CreateWithWorkflows persists a project, its workflows and its tools atomically.
	CreateWithWorkflows(ctx context.Context, project *ProjectRecord, workflows []*WorkflowRecord, tools []string) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// GetByName retrieves a project by its unique name.
	GetByName(ctx context.Context, name string) (*ProjectRecord, error)

	// NameExists reports whether a project with this name exists.
	NameExists(ctx context.Context, name string) (bool, error)

	// List retrieves all projects, newest first.
	List(ctx context.Context) ([]*ProjectRecord, error)

	// Update updates name, client name, engagement type and team members.
	Update(ctx context.Context, project *ProjectRecord) error

	// Delete removes a project; children cascade.
	Delete(ctx context.Context, id string) error

	// ListTools returns the project's observability tool names.
	ListTools(ctx context.Context, projectID string) ([]string, error)

	// ReplaceTools swaps the project's tool list.
	ReplaceTools(ctx context.Context, projectID string, tools []string) error
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID             string
	Name           string
	ClientName     string
	EngagementType string
	TeamMembers    string // JSON array
	PassphraseHash string
	CreatedAt      string
}

// WorkflowRepository defines the secondary port for workflow persistence.
type WorkflowRepository interface {
	// GetByID retrieves a workflow by its ID.
	GetByID(ctx context.Context, id string) (*WorkflowRecord, error)

	// GetByIndex retrieves a project's workflow by its 1-8 index.
	GetByIndex(ctx context.Context, projectID string, index int) (*WorkflowRecord, error)

	// ListByProject retrieves a project's workflows ordered by index.
	ListByProject(ctx context.Context, projectID string) ([]*WorkflowRecord, error)

	// UpdateStatus sets a workflow's status unconditionally.
	UpdateStatus(ctx context.Context, id, status string) error

	// TransitionStatus sets the status only if it currently equals from.
	// Returns whether a row changed.
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)

	// Aggregates returns per-workflow step and score rollups for a project.
	Aggregates(ctx context.Context, projectID string) ([]*WorkflowAggregateRecord, error)
}

// WorkflowRecord represents a workflow as stored in persistence.
type WorkflowRecord struct {
	ID            string
	ProjectID     string
	WorkflowIndex int
	WorkflowName  string
	Status        string
	UpdatedAt     string
}

// WorkflowAggregateRecord is a workflow with its step and score counts.
type WorkflowAggregateRecord struct {
	WorkflowRecord
	TotalSteps       int
	CompletedSteps   int // steps with a non-empty name
	ScoredSteps      int
	CompositeSum     int
	AutonomousCount  int
	HumanInLoopCount int
	HumanOnlyCount   int
}

// StepRepository defines the secondary port for step persistence.
type StepRepository interface {
	// Create persists a new step. The step number is assigned as one more
	// than the workflow's current maximum and written back to step.
	Create(ctx context.Context, step *StepRecord) error

	// GetByID retrieves a step by its ID.
	GetByID(ctx context.Context, id string) (*StepRecord, error)

	// ListByWorkflow retrieves a workflow's steps with their scores, ordered by step number.
	ListByWorkflow(ctx context.Context, workflowID string) ([]*StepWithScore, error)

	// Update replaces all free-text fields of a step.
	Update(ctx context.Context, step *StepRecord) error

	// Delete removes a step; its score cascades.
	Delete(ctx context.Context, id string) error
}

// StepRecord represents a workflow step as stored in persistence.
type StepRecord struct {
	ID             string
	WorkflowID     string
	StepNumber     int
	StepName       string
	Description    string
	RoleTeam       string
	TriggerInput   string
	SystemsTools   string
	DecisionPoints string
	OutputHandoff  string
	PainPoints     string
	TimeEffort     string
	RawTranscript  string
	CreatedAt      string
	UpdatedAt      string
}

// StepWithScore pairs a step with its score. Score is nil when unscored.
type StepWithScore struct {
	Step  *StepRecord
	Score *ScoreRecord
}

// ScoreRepository defines the secondary port for score persistence.
type ScoreRepository interface {
	// Upsert writes the score for a step, replacing any previous one.
	Upsert(ctx context.Context, score *ScoreRecord) error

	// GetByStep retrieves the score of a step.
	GetByStep(ctx context.Context, stepID string) (*ScoreRecord, error)
}

// ScoreRecord represents a step score as stored in persistence.
type ScoreRecord struct {
	ID                 string
	StepID             string
	RuleBased          int
	DataAvailability   int
	ExceptionFrequency int
	Auditability       int
	SpeedSensitivity   int
	Composite          int
	Tier               string
	Rationale          string
	ScoredAt           string
}

// GapRepository defines the secondary port for dependency gap persistence.
type GapRepository interface {
	// Create persists a new gap.
	Create(ctx context.Context, gap *GapRecord) error

	// GetByID retrieves a gap by its ID.
	GetByID(ctx context.Context, id string) (*GapRecord, error)

	// List retrieves a project's gaps, newest first.
	List(ctx context.Context, projectID string, filters GapFilters) ([]*GapRecord, error)

	// Update replaces a gap's mutable fields.
	Update(ctx context.Context, gap *GapRecord) error

	// Delete removes a gap.
	Delete(ctx context.Context, id string) error
}

// GapRecord represents a dependency gap as stored in persistence.
type GapRecord struct {
	ID            string
	ProjectID     string
	WorkflowIndex int
	GapType       string
	Severity      string
	Description   string
	IdentifiedAt  string
	UpdatedAt     string
}

// GapFilters contains filter options for listing gaps.
type GapFilters struct {
	WorkflowIndex int // 0 for all
	Severity      string
	Limit         int // 0 for no limit
}
