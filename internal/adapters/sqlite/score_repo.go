package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/ports/secondary"
)

// ScoreRepository implements secondary.ScoreRepository with SQLite.
type ScoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new SQLite score repository.
func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

const scoreColumns = `ss.id, ss.workflow_step_id, ss.rule_based_score, ss.data_availability_score,
	ss.exception_frequency_score, ss.auditability_score, ss.speed_sensitivity_score,
	ss.composite_score, ss.candidate_tier, ss.score_rationale, ss.scored_at`

// Upsert writes a step's score. The unique step reference makes a re-score
// replace the previous row; the original row id is kept.
func (r *ScoreRepository) Upsert(ctx context.Context, score *secondary.ScoreRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO step_scores (
			id, workflow_step_id, rule_based_score, data_availability_score, exception_frequency_score,
			auditability_score, speed_sensitivity_score, composite_score, candidate_tier, score_rationale
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(workflow_step_id) DO UPDATE SET
			rule_based_score = excluded.rule_based_score,
			data_availability_score = excluded.data_availability_score,
			exception_frequency_score = excluded.exception_frequency_score,
			auditability_score = excluded.auditability_score,
			speed_sensitivity_score = excluded.speed_sensitivity_score,
			composite_score = excluded.composite_score,
			candidate_tier = excluded.candidate_tier,
			score_rationale = excluded.score_rationale,
			scored_at = CURRENT_TIMESTAMP`,
		score.ID, score.StepID, score.RuleBased, score.DataAvailability, score.ExceptionFrequency,
		score.Auditability, score.SpeedSensitivity, score.Composite, score.Tier, score.Rationale,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// GetByStep retrieves the score of a step.
func (r *ScoreRepository) GetByStep(ctx context.Context, stepID string) (*secondary.ScoreRecord, error) {
	var score nullableScore
	err := r.db.QueryRowContext(ctx,
		"SELECT "+scoreColumns+" FROM step_scores ss WHERE ss.workflow_step_id = ?", stepID,
	).Scan(score.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Score not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return score.record(), nil
}

// nullableScore receives score columns from a LEFT JOIN, where every column
// is NULL for an unscored step.
type nullableScore struct {
	id, stepID                             sql.NullString
	ruleBased, dataAvailability, exception sql.NullInt64
	auditability, speed, composite         sql.NullInt64
	tier, rationale                        sql.NullString
	scoredAt                               timestamp
}

func (s *nullableScore) dest() []any {
	return []any{
		&s.id, &s.stepID, &s.ruleBased, &s.dataAvailability,
		&s.exception, &s.auditability, &s.speed,
		&s.composite, &s.tier, &s.rationale, &s.scoredAt,
	}
}

func (s *nullableScore) record() *secondary.ScoreRecord {
	if !s.id.Valid {
		return nil
	}
	return &secondary.ScoreRecord{
		ID:                 s.id.String,
		StepID:             s.stepID.String,
		RuleBased:          int(s.ruleBased.Int64),
		DataAvailability:   int(s.dataAvailability.Int64),
		ExceptionFrequency: int(s.exception.Int64),
		Auditability:       int(s.auditability.Int64),
		SpeedSensitivity:   int(s.speed.Int64),
		Composite:          int(s.composite.Int64),
		Tier:               s.tier.String,
		Rationale:          s.rationale.String,
		ScoredAt:           string(s.scoredAt),
	}
}

var _ secondary.ScoreRepository = (*ScoreRepository)(nil)
