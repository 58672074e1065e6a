package primary

import (
	"context"

	"github.com/example/enscope/internal/core/gap"
)

// GapService defines the primary port for dependency gap operations.
type GapService interface {
	// ListGaps lists a project's gaps, newest first.
	ListGaps(ctx context.Context, projectID string) (*GapList, error)

	// GetSummary counts gaps per type and severity with an overall status per type.
	GetSummary(ctx context.Context, projectID string) (*GapSummary, error)

	// CreateGap records a new gap.
	CreateGap(ctx context.Context, req CreateGapRequest) (*Gap, error)

	// UpdateGap applies a partial update to a gap.
	UpdateGap(ctx context.Context, req UpdateGapRequest) (*Gap, error)

	// DeleteGap removes a gap.
	DeleteGap(ctx context.Context, gapID string) error
}

// Gap represents a dependency gap at the port boundary.
type Gap struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	WorkflowIndex int    `json:"workflow_index"`
	GapType       string `json:"gap_type"`
	Severity      string `json:"severity"`
	Description   string `json:"description"`
	IdentifiedAt  string `json:"identified_at"`
	UpdatedAt     string `json:"updated_at"`
}

// GapList is a project's gaps.
type GapList struct {
	ProjectID string `json:"project_id"`
	TotalGaps int    `json:"total_gaps"`
	Gaps      []*Gap `json:"gaps"`
}

// GapSummary is the RAG view of a project's gaps.
type GapSummary struct {
	ProjectID       string                    `json:"project_id"`
	Summary         map[gap.Type]gap.Counts   `json:"summary"`
	DimensionStatus map[gap.Type]gap.Severity `json:"dimension_status"`
	TotalGaps       int                       `json:"total_gaps"`
}

// CreateGapRequest contains parameters for recording a gap.
type CreateGapRequest struct {
	ProjectID     string
	WorkflowIndex int
	GapType       string
	Severity      string
	Description   string
}

// UpdateGapRequest contains a partial gap update. Zero values leave the
// field unchanged.
type UpdateGapRequest struct {
	GapID         string
	WorkflowIndex int
	GapType       string
	Severity      string
	Description   string
}
