package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = "id, name, client_name, engagement_type, team_members, passphrase_hash, created_at"

// CreateWithWorkflows persists a project, its workflows and its tools in one transaction.
func (r *ProjectRepository) CreateWithWorkflows(ctx context.Context, project *secondary.ProjectRecord, workflows []*secondary.WorkflowRecord, tools []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	teamMembers := project.TeamMembers
	if teamMembers == "" {
		teamMembers = "[]"
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO projects (id, name, client_name, engagement_type, team_members, passphrase_hash) VALUES (?, ?, ?, ?, ?, ?)",
		project.ID, project.Name, project.ClientName, project.EngagementType, teamMembers, project.PassphraseHash,
	)
	if isUniqueViolation(err) {
		return apperr.Validationf("A project named %q already exists", project.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	for _, wf := range workflows {
		status := wf.Status
		if status == "" {
			status = "not_started"
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO project_workflows (id, project_id, workflow_index, workflow_name, status) VALUES (?, ?, ?, ?, ?)",
			wf.ID, project.ID, wf.WorkflowIndex, wf.WorkflowName, status,
		)
		if err != nil {
			return fmt.Errorf("failed to create workflow %d: %w", wf.WorkflowIndex, err)
		}
	}

	if err := insertTools(ctx, tx, project.ID, tools); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}
	return nil
}

func insertTools(ctx context.Context, tx *sql.Tx, projectID string, tools []string) error {
	for _, tool := range tools {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO observability_tools (id, project_id, tool_name) VALUES (?, ?, ?)",
			uuid.NewString(), projectID, tool,
		)
		if err != nil {
			return fmt.Errorf("failed to add tool %q: %w", tool, err)
		}
	}
	return nil
}

func scanProject(row rowScanner) (*secondary.ProjectRecord, error) {
	var (
		record      secondary.ProjectRecord
		teamMembers sql.NullString
		createdAt   timestamp
	)
	if err := row.Scan(&record.ID, &record.Name, &record.ClientName, &record.EngagementType, &teamMembers, &record.PassphraseHash, &createdAt); err != nil {
		return nil, err
	}
	record.TeamMembers = teamMembers.String
	if record.TeamMembers == "" {
		record.TeamMembers = "[]"
	}
	record.CreatedAt = string(createdAt)
	return &record, nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	record, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return record, nil
}

// GetByName retrieves a project by name.
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*secondary.ProjectRecord, error) {
	record, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE name = ? ORDER BY created_at, rowid LIMIT 1", name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("Project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project by name: %w", err)
	}
	return record, nil
}

// NameExists reports whether a project with this name exists.
func (r *ProjectRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check project name: %w", err)
	}
	return count > 0, nil
}

// List retrieves all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, record)
	}
	return projects, rows.Err()
}

// Update writes name, client name, engagement type and team members.
func (r *ProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	changed, err := execAffecting(ctx, r.db,
		"UPDATE projects SET name = ?, client_name = ?, engagement_type = ?, team_members = ? WHERE id = ?",
		project.Name, project.ClientName, project.EngagementType, project.TeamMembers, project.ID,
	)
	if isUniqueViolation(err) {
		return apperr.Validationf("A project named %q already exists", project.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Project not found")
	}
	return nil
}

// Delete removes a project. Workflows, steps, scores, gaps and tools cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	changed, err := execAffecting(ctx, r.db, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !changed {
		return apperr.NotFoundf("Project not found")
	}
	return nil
}

// ListTools returns the project's tool names in insertion order.
func (r *ProjectRepository) ListTools(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT tool_name FROM observability_tools WHERE project_id = ? ORDER BY rowid", projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer rows.Close()

	tools := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, name)
	}
	return tools, rows.Err()
}

// ReplaceTools swaps the project's tool list atomically.
func (r *ProjectRepository) ReplaceTools(ctx context.Context, projectID string, tools []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM observability_tools WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("failed to clear tools: %w", err)
	}
	if err := insertTools(ctx, tx, projectID, tools); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tools: %w", err)
	}
	return nil
}

var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
