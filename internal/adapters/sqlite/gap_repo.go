package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/ports/secondary"
)

// GapRepository implements secondary.GapRepository with SQLite.
type GapRepository struct {
	db *sql.DB
}

// NewGapRepository creates a new SQLite gap repository.
func NewGapRepository(db *sql.DB) *GapRepository {
	return &GapRepository{db: db}
}

const gapColumns = "id, project_id, workflow_index, gap_type, severity, description, identified_at, updated_at"

// Create persists a new gap.
func (r *GapRepository) Create(ctx context.Context, gap *secondary.GapRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO dependency_gaps (id, project_id, workflow_index, gap_type, severity, description) VALUES (?, ?, ?, ?, ?, ?)",
		gap.ID, gap.ProjectID, gap.WorkflowIndex, gap.GapType, gap.Severity, gap.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create gap: %w", err)
	}
	return nil
}

func scanGap(row rowScanner) (*secondary.GapRecord, error) {
	var (
		record                  secondary.GapRecord
		identifiedAt, updatedAt timestamp
	)
	if err := row.Scan(&record.ID, &record.ProjectID, &record.WorkflowIndex, &record.GapType, &record.Severity, &record.Description, &identifiedAt, &updatedAt); err != nil {
		return nil, err
	}
	record.IdentifiedAt = string(identifiedAt)
	record.UpdatedAt = string(updatedAt)
	if record.UpdatedAt == "" {
		record.UpdatedAt = record.IdentifiedAt
	}
	return &record, nil
}

// GetByID retrieves a gap by its ID.
func (r *GapRepository) GetByID(ctx context.Context, id string) (*secondary.GapRecord, error) {
	record, err := scanGap(r.db.QueryRowContext(ctx,
		"SELECT "+gapColumns+" FROM dependency_gaps WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Gap not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gap: %w", err)
	}
	return record, nil
}

// List retrieves a project's gaps matching the filters, newest first.
func (r *GapRepository) List(ctx context.Context, projectID string, filters secondary.GapFilters) ([]*secondary.GapRecord, error) {
	query := "SELECT " + gapColumns + " FROM dependency_gaps WHERE project_id = ?"
	args := []any{projectID}

	if filters.WorkflowIndex != 0 {
		query += " AND workflow_index = ?"
		args = append(args, filters.WorkflowIndex)
	}

	if filters.Severity != "" {
		query += " AND severity = ?"
		args = append(args, filters.Severity)
	}

	query += " ORDER BY identified_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}
	defer rows.Close()

	var gaps []*secondary.GapRecord
	for rows.Next() {
		record, err := scanGap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gap: %w", err)
		}
		gaps = append(gaps, record)
	}
	return gaps, rows.Err()
}

// Update writes every mutable field of a gap.
func (r *GapRepository) Update(ctx context.Context, gap *secondary.GapRecord) error {
	changed, err := execAffecting(ctx, r.db,
		"UPDATE dependency_gaps SET workflow_index = ?, gap_type = ?, severity = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		gap.WorkflowIndex, gap.GapType, gap.Severity, gap.Description, gap.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gap: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Gap not found")
	}
	return nil
}

// Delete removes a gap.
func (r *GapRepository) Delete(ctx context.Context, id string) error {
	changed, err := execAffecting(ctx, r.db, "DELETE FROM dependency_gaps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete gap: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Gap not found")
	}
	return nil
}

var _ secondary.GapRepository = (*GapRepository)(nil)
