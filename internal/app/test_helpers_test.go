package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/prompt"
	"github.com/example/enscope/internal/core/workflow"
	"github.com/example/enscope/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

var (
	_ secondary.ProjectRepository  = (*mockProjectRepository)(nil)
	_ secondary.WorkflowRepository = (*mockWorkflowRepository)(nil)
	_ secondary.StepRepository     = (*mockStepRepository)(nil)
	_ secondary.ScoreRepository    = (*mockScoreRepository)(nil)
	_ secondary.GapRepository      = (*mockGapRepository)(nil)
	_ secondary.TextGenerator      = (*mockTextGenerator)(nil)
	_ secondary.PromptSource       = (*mockPromptSource)(nil)
	_ secondary.PassphraseHasher   = (*mockHasher)(nil)
	_ secondary.MetricsRecorder    = (*mockMetrics)(nil)
)

// mockProjectRepository implements secondary.ProjectRepository for testing.
// Workflows created with a project are handed to workflowRepo when set.
type mockProjectRepository struct {
	projects     map[string]*secondary.ProjectRecord
	tools        map[string][]string
	workflowRepo *mockWorkflowRepository
	createErr    error
	getErr       error
	updateErr    error
	deleteErr    error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[string]*secondary.ProjectRecord),
		tools:    make(map[string][]string),
	}
}

func (m *mockProjectRepository) CreateWithWorkflows(ctx context.Context, project *secondary.ProjectRecord, workflows []*secondary.WorkflowRecord, tools []string) error {
	if m.createErr != nil {
		return m.createErr
	}
	project.CreatedAt = "2026-01-01T00:00:00Z"
	m.projects[project.ID] = project
	m.tools[project.ID] = append([]string{}, tools...)
	if m.workflowRepo != nil {
		for _, wf := range workflows {
			m.workflowRepo.workflows[wf.ID] = wf
		}
	}
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperr.NotFoundf("Project not found")
}

func (m *mockProjectRepository) GetByName(ctx context.Context, name string) (*secondary.ProjectRecord, error) {
	for _, p := range m.projects {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperr.NotFoundf("Project not found")
}

func (m *mockProjectRepository) NameExists(ctx context.Context, name string) (bool, error) {
	for _, p := range m.projects {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	var result []*secondary.ProjectRecord
	for _, p := range m.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.projects[project.ID]
	if !ok {
		return apperr.NotFoundf("Project not found")
	}
	existing.Name = project.Name
	existing.ClientName = project.ClientName
	existing.EngagementType = project.EngagementType
	existing.TeamMembers = project.TeamMembers
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.projects[id]; !ok {
		return apperr.NotFoundf("Project not found")
	}
	delete(m.projects, id)
	delete(m.tools, id)
	return nil
}

func (m *mockProjectRepository) ListTools(ctx context.Context, projectID string) ([]string, error) {
	tools := m.tools[projectID]
	if tools == nil {
		return []string{}, nil
	}
	return tools, nil
}

func (m *mockProjectRepository) ReplaceTools(ctx context.Context, projectID string, tools []string) error {
	m.tools[projectID] = append([]string{}, tools...)
	return nil
}

// mockWorkflowRepository implements secondary.WorkflowRepository for testing.
type mockWorkflowRepository struct {
	mu          sync.Mutex
	workflows   map[string]*secondary.WorkflowRecord
	aggregates  map[string][]*secondary.WorkflowAggregateRecord
	transitions int
	getErr      error
}

func newMockWorkflowRepository() *mockWorkflowRepository {
	return &mockWorkflowRepository{
		workflows:  make(map[string]*secondary.WorkflowRecord),
		aggregates: make(map[string][]*secondary.WorkflowAggregateRecord),
	}
}

// addProjectWorkflows registers the eight workflows of a project as "<projectID>-wf<n>".
func (m *mockWorkflowRepository) addProjectWorkflows(projectID string) {
	for i, name := range workflow.Names() {
		id := fmt.Sprintf("%s-wf%d", projectID, i+1)
		m.workflows[id] = &secondary.WorkflowRecord{
			ID:            id,
			ProjectID:     projectID,
			WorkflowIndex: i + 1,
			WorkflowName:  name,
			Status:        string(workflow.StatusNotStarted),
		}
	}
}

func (m *mockWorkflowRepository) GetByID(ctx context.Context, id string) (*secondary.WorkflowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if wf, ok := m.workflows[id]; ok {
		copied := *wf
		return &copied, nil
	}
	return nil, apperr.NotFoundf("Workflow not found")
}

func (m *mockWorkflowRepository) GetByIndex(ctx context.Context, projectID string, index int) (*secondary.WorkflowRecord, error) {
	for _, wf := range m.workflows {
		if wf.ProjectID == projectID && wf.WorkflowIndex == index {
			copied := *wf
			return &copied, nil
		}
	}
	return nil, apperr.NotFoundf("Workflow not found")
}

func (m *mockWorkflowRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.WorkflowRecord, error) {
	var result []*secondary.WorkflowRecord
	for _, wf := range m.workflows {
		if wf.ProjectID == projectID {
			result = append(result, wf)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkflowIndex < result[j].WorkflowIndex })
	return result, nil
}

func (m *mockWorkflowRepository) UpdateStatus(ctx context.Context, id, status string) error {
	wf, ok := m.workflows[id]
	if !ok {
		return apperr.NotFoundf("Workflow not found")
	}
	wf.Status = status
	return nil
}

func (m *mockWorkflowRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	m.transitions++
	wf, ok := m.workflows[id]
	if !ok || wf.Status != from {
		return false, nil
	}
	wf.Status = to
	return true, nil
}

func (m *mockWorkflowRepository) Aggregates(ctx context.Context, projectID string) ([]*secondary.WorkflowAggregateRecord, error) {
	return m.aggregates[projectID], nil
}

// mockStepRepository implements secondary.StepRepository for testing.
// Scores listed with steps come from the scores map.
type mockStepRepository struct {
	steps     map[string]*secondary.StepRecord
	scores    map[string]*secondary.ScoreRecord
	createErr error
	listErr   error
}

func newMockStepRepository() *mockStepRepository {
	return &mockStepRepository{
		steps:  make(map[string]*secondary.StepRecord),
		scores: make(map[string]*secondary.ScoreRecord),
	}
}

func (m *mockStepRepository) addStep(id, workflowID string, number int, name string) *secondary.StepRecord {
	step := &secondary.StepRecord{ID: id, WorkflowID: workflowID, StepNumber: number, StepName: name}
	m.steps[id] = step
	return step
}

func (m *mockStepRepository) Create(ctx context.Context, step *secondary.StepRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	highest := 0
	for _, s := range m.steps {
		if s.WorkflowID == step.WorkflowID && s.StepNumber > highest {
			highest = s.StepNumber
		}
	}
	step.StepNumber = highest + 1
	step.CreatedAt = "2026-01-01T00:00:00Z"
	step.UpdatedAt = step.CreatedAt
	copied := *step
	m.steps[step.ID] = &copied
	return nil
}

func (m *mockStepRepository) GetByID(ctx context.Context, id string) (*secondary.StepRecord, error) {
	if s, ok := m.steps[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperr.NotFoundf("Step not found")
}

func (m *mockStepRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*secondary.StepWithScore, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.StepWithScore
	for _, s := range m.steps {
		if s.WorkflowID == workflowID {
			result = append(result, &secondary.StepWithScore{Step: s, Score: m.scores[s.ID]})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Step.StepNumber < result[j].Step.StepNumber })
	return result, nil
}

func (m *mockStepRepository) Update(ctx context.Context, step *secondary.StepRecord) error {
	if _, ok := m.steps[step.ID]; !ok {
		return apperr.NotFoundf("Step not found")
	}
	copied := *step
	m.steps[step.ID] = &copied
	return nil
}

func (m *mockStepRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.steps[id]; !ok {
		return apperr.NotFoundf("Step not found")
	}
	delete(m.steps, id)
	delete(m.scores, id)
	return nil
}

// mockScoreRepository implements secondary.ScoreRepository for testing.
type mockScoreRepository struct {
	mu        sync.Mutex
	scores    map[string]*secondary.ScoreRecord
	upserts   int
	upsertErr error
}

func newMockScoreRepository() *mockScoreRepository {
	return &mockScoreRepository{scores: make(map[string]*secondary.ScoreRecord)}
}

func (m *mockScoreRepository) Upsert(ctx context.Context, score *secondary.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	m.scores[score.StepID] = score
	return nil
}

func (m *mockScoreRepository) GetByStep(ctx context.Context, stepID string) (*secondary.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.scores[stepID]; ok {
		return s, nil
	}
	return nil, apperr.NotFoundf("Score not found")
}

// mockGapRepository implements secondary.GapRepository for testing.
// gaps is kept newest first.
type mockGapRepository struct {
	gaps       []*secondary.GapRecord
	listErr    error
	lastFilter secondary.GapFilters
}

func newMockGapRepository() *mockGapRepository {
	return &mockGapRepository{}
}

func (m *mockGapRepository) add(id, projectID string, workflowIndex int, gapType, severity, description string) {
	m.gaps = append([]*secondary.GapRecord{{
		ID:            id,
		ProjectID:     projectID,
		WorkflowIndex: workflowIndex,
		GapType:       gapType,
		Severity:      severity,
		Description:   description,
	}}, m.gaps...)
}

func (m *mockGapRepository) Create(ctx context.Context, gap *secondary.GapRecord) error {
	gap.IdentifiedAt = "2026-01-01T00:00:00Z"
	gap.UpdatedAt = gap.IdentifiedAt
	copied := *gap
	m.gaps = append([]*secondary.GapRecord{&copied}, m.gaps...)
	return nil
}

func (m *mockGapRepository) GetByID(ctx context.Context, id string) (*secondary.GapRecord, error) {
	for _, g := range m.gaps {
		if g.ID == id {
			copied := *g
			return &copied, nil
		}
	}
	return nil, apperr.NotFoundf("Gap not found")
}

func (m *mockGapRepository) List(ctx context.Context, projectID string, filters secondary.GapFilters) ([]*secondary.GapRecord, error) {
	m.lastFilter = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []*secondary.GapRecord{}
	for _, g := range m.gaps {
		if g.ProjectID != projectID {
			continue
		}
		if filters.WorkflowIndex != 0 && g.WorkflowIndex != filters.WorkflowIndex {
			continue
		}
		if filters.Severity != "" && g.Severity != filters.Severity {
			continue
		}
		result = append(result, g)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockGapRepository) Update(ctx context.Context, gap *secondary.GapRecord) error {
	for i, g := range m.gaps {
		if g.ID == gap.ID {
			copied := *gap
			m.gaps[i] = &copied
			return nil
		}
	}
	return apperr.NotFoundf("Gap not found")
}

func (m *mockGapRepository) Delete(ctx context.Context, id string) error {
	for i, g := range m.gaps {
		if g.ID == id {
			m.gaps = append(m.gaps[:i], m.gaps[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("Gap not found")
}

// mockTextGenerator implements secondary.TextGenerator for testing.
// respond picks the reply; the default echoes a fixed string.
type mockTextGenerator struct {
	mu       sync.Mutex
	requests []secondary.GenerateRequest
	respond  func(req secondary.GenerateRequest) (string, error)
}

func newMockTextGenerator() *mockTextGenerator {
	return &mockTextGenerator{}
}

func (m *mockTextGenerator) Generate(ctx context.Context, req secondary.GenerateRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.respond != nil {
		return m.respond(req)
	}
	return "generated text", nil
}

// scorePayload renders a score reply the way the model formats it.
func scorePayload(a, b, c, d, e int) string {
	return fmt.Sprintf("Here are the scores:\n{\"rule_based_score\": %d, \"data_availability_score\": %d, \"exception_frequency_score\": %d, \"auditability_score\": %d, \"speed_sensitivity_score\": %d, \"rationale\": \"ok\"}", a, b, c, d, e)
}

// mockPromptSource implements secondary.PromptSource for testing.
type mockPromptSource struct {
	texts   prompt.Texts
	loadErr error
}

func newMockPromptSource() *mockPromptSource {
	return &mockPromptSource{texts: prompt.Defaults()}
}

func (m *mockPromptSource) Load(ctx context.Context) (prompt.Texts, error) {
	if m.loadErr != nil {
		return prompt.Texts{}, m.loadErr
	}
	return m.texts, nil
}

// mockHasher implements secondary.PassphraseHasher for testing.
type mockHasher struct{}

func (mockHasher) Hash(passphrase string) (string, error) {
	return "hashed:" + passphrase, nil
}

func (mockHasher) Matches(hash, passphrase string) bool {
	return strings.TrimPrefix(hash, "hashed:") == passphrase && strings.HasPrefix(hash, "hashed:")
}

// mockMetrics implements secondary.MetricsRecorder for testing.
type mockMetrics struct {
	mu     sync.Mutex
	scores map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{scores: make(map[string]int)}
}

func (m *mockMetrics) ObserveStepScore(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[outcome]++
}

func (m *mockMetrics) ObserveLLMRequest(operation, outcome string) {}
