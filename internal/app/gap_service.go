package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// GapServiceImpl implements the GapService interface.
type GapServiceImpl struct {
	gapRepo     secondary.GapRepository
	projectRepo secondary.ProjectRepository
}

// NewGapService creates a new GapService with injected dependencies.
func NewGapService(gapRepo secondary.GapRepository, projectRepo secondary.ProjectRepository) *GapServiceImpl {
	return &GapServiceImpl{
		gapRepo:     gapRepo,
		projectRepo: projectRepo,
	}
}

// ListGaps lists a project's gaps, newest first.
func (s *GapServiceImpl) ListGaps(ctx context.Context, projectID string) (*primary.GapList, error) {
	records, err := s.projectGaps(ctx, projectID)
	if err != nil {
		return nil, err
	}

	gaps := make([]*primary.Gap, len(records))
	for i, r := range records {
		gaps[i] = recordToGap(r)
	}
	return &primary.GapList{ProjectID: projectID, TotalGaps: len(gaps), Gaps: gaps}, nil
}

// GetSummary counts gaps per type and severity with an overall status per type.
func (s *GapServiceImpl) GetSummary(ctx context.Context, projectID string) (*primary.GapSummary, error) {
	records, err := s.projectGaps(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := gap.Summarize(gapEntries(records))
	return &primary.GapSummary{
		ProjectID:       projectID,
		Summary:         summary.Counts,
		DimensionStatus: summary.Overall,
		TotalGaps:       summary.Total,
	}, nil
}

// CreateGap records a new gap.
func (s *GapServiceImpl) CreateGap(ctx context.Context, req primary.CreateGapRequest) (*primary.Gap, error) {
	guard := gap.CanCreateGap(gap.CreateContext{
		ProjectID:     req.ProjectID,
		WorkflowIndex: req.WorkflowIndex,
		Type:          req.GapType,
		Severity:      req.Severity,
		Description:   req.Description,
	})
	if err := guard.Error(); err != nil {
		return nil, apperr.Validationf("%s", err)
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	record := &secondary.GapRecord{
		ID:            uuid.NewString(),
		ProjectID:     req.ProjectID,
		WorkflowIndex: req.WorkflowIndex,
		GapType:       req.GapType,
		Severity:      req.Severity,
		Description:   strings.TrimSpace(req.Description),
	}
	if err := s.gapRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create gap: %w", err)
	}

	created, err := s.gapRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created gap: %w", err)
	}
	return recordToGap(created), nil
}

// UpdateGap applies a partial update to a gap.
func (s *GapServiceImpl) UpdateGap(ctx context.Context, req primary.UpdateGapRequest) (*primary.Gap, error) {
	guard := gap.CanUpdateGap(gap.UpdateContext{
		WorkflowIndex: req.WorkflowIndex,
		Type:          req.GapType,
		Severity:      req.Severity,
	})
	if err := guard.Error(); err != nil {
		return nil, apperr.Validationf("%s", err)
	}

	record, err := s.gapRepo.GetByID(ctx, req.GapID)
	if err != nil {
		return nil, err
	}

	if req.WorkflowIndex != 0 {
		record.WorkflowIndex = req.WorkflowIndex
	}
	if req.GapType != "" {
		record.GapType = req.GapType
	}
	if req.Severity != "" {
		record.Severity = req.Severity
	}
	if strings.TrimSpace(req.Description) != "" {
		record.Description = strings.TrimSpace(req.Description)
	}

	if err := s.gapRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update gap: %w", err)
	}

	updated, err := s.gapRepo.GetByID(ctx, req.GapID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated gap: %w", err)
	}
	return recordToGap(updated), nil
}

// DeleteGap removes a gap.
func (s *GapServiceImpl) DeleteGap(ctx context.Context, gapID string) error {
	return s.gapRepo.Delete(ctx, gapID)
}

func (s *GapServiceImpl) projectGaps(ctx context.Context, projectID string) ([]*secondary.GapRecord, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	records, err := s.gapRepo.List(ctx, projectID, secondary.GapFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}
	return records, nil
}

func gapEntries(records []*secondary.GapRecord) []gap.Entry {
	entries := make([]gap.Entry, len(records))
	for i, r := range records {
		entries[i] = gap.Entry{Type: r.GapType, Severity: r.Severity}
	}
	return entries
}

var _ primary.GapService = (*GapServiceImpl)(nil)
