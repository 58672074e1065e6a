package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

func newTestProjectService() (*ProjectServiceImpl, *mockProjectRepository, *mockWorkflowRepository) {
	projectRepo := newMockProjectRepository()
	workflowRepo := newMockWorkflowRepository()
	projectRepo.workflowRepo = workflowRepo
	return NewProjectService(projectRepo, workflowRepo, mockHasher{}, zap.NewNop()), projectRepo, workflowRepo
}

func createTestProject(t *testing.T, service *ProjectServiceImpl, name string) *primary.ProjectDetail {
	t.Helper()
	detail, err := service.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:               name,
		ClientName:         "Acme",
		TeamMembers:        []string{"ana", "raj"},
		ObservabilityTools: []string{"Splunk", " Dynatrace ", "Splunk", ""},
		Passphrase:         "secret",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	return detail
}

func TestCreateProject_Success(t *testing.T) {
	service, projectRepo, _ := newTestProjectService()

	detail := createTestProject(t, service, "Alpha")

	if detail.ID == "" {
		t.Fatal("expected project ID to be set")
	}
	if detail.EngagementType != "ITOM Event Management" {
		t.Errorf("expected default engagement type, got %q", detail.EngagementType)
	}
	if len(detail.Workflows) != 8 {
		t.Fatalf("expected 8 workflows, got %d", len(detail.Workflows))
	}
	for i, wf := range detail.Workflows {
		if wf.WorkflowIndex != i+1 || wf.Status != "not_started" {
			t.Errorf("workflow %d = index %d status %s", i, wf.WorkflowIndex, wf.Status)
		}
	}
	if detail.Workflows[2].WorkflowName != "Correlation & Context Enrichment" {
		t.Errorf("unexpected workflow 3 name %q", detail.Workflows[2].WorkflowName)
	}
	if got := detail.ObservabilityTools; len(got) != 2 || got[0] != "Splunk" || got[1] != "Dynatrace" {
		t.Errorf("expected normalized tools [Splunk Dynatrace], got %v", got)
	}
	if got := detail.TeamMembers; len(got) != 2 || got[0] != "ana" {
		t.Errorf("unexpected team members %v", got)
	}
	if projectRepo.projects[detail.ID].PassphraseHash != "hashed:secret" {
		t.Error("expected passphrase to be stored hashed")
	}
}

func TestCreateProject_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  primary.CreateProjectRequest
	}{
		{"missing name", primary.CreateProjectRequest{ClientName: "Acme", Passphrase: "p"}},
		{"missing client", primary.CreateProjectRequest{Name: "Alpha", Passphrase: "p"}},
		{"missing passphrase", primary.CreateProjectRequest{Name: "Alpha", ClientName: "Acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, projectRepo, _ := newTestProjectService()
			_, err := service.CreateProject(context.Background(), tt.req)
			if !apperr.Is(err, apperr.Validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(projectRepo.projects) != 0 {
				t.Error("expected nothing to be persisted")
			}
		})
	}
}

func TestCreateProject_DuplicateName(t *testing.T) {
	service, _, _ := newTestProjectService()
	createTestProject(t, service, "Alpha")

	_, err := service.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name: "Alpha", ClientName: "Other", Passphrase: "x",
	})
	if !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error for duplicate name, got %v", err)
	}
}

func TestCreateProject_RepositoryError(t *testing.T) {
	service, projectRepo, _ := newTestProjectService()
	projectRepo.createErr = errors.New("disk full")

	_, err := service.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name: "Alpha", ClientName: "Acme", Passphrase: "x",
	})
	if err == nil || apperr.KindOf(err) != apperr.Internal {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestJoinProject(t *testing.T) {
	service, _, _ := newTestProjectService()
	created := createTestProject(t, service, "Alpha")
	ctx := context.Background()

	tests := []struct {
		name     string
		req      primary.JoinProjectRequest
		wantKind apperr.Kind
		wantErr  bool
	}{
		{"success", primary.JoinProjectRequest{Name: "Alpha", Passphrase: "secret"}, 0, false},
		{"missing passphrase", primary.JoinProjectRequest{Name: "Alpha"}, apperr.Validation, true},
		{"unknown project", primary.JoinProjectRequest{Name: "Beta", Passphrase: "secret"}, apperr.NotFound, true},
		{"wrong passphrase", primary.JoinProjectRequest{Name: "Alpha", Passphrase: "nope"}, apperr.Unauthorized, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := service.JoinProject(ctx, tt.req)
			if tt.wantErr {
				if !apperr.Is(err, tt.wantKind) {
					t.Errorf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if detail.ID != created.ID || len(detail.Workflows) != 8 {
				t.Errorf("unexpected join result %+v", detail.Project)
			}
		})
	}
}

func TestGetProject_NotFound(t *testing.T) {
	service, _, _ := newTestProjectService()

	if _, err := service.GetProject(context.Background(), "missing"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := service.ListWorkflows(context.Background(), "missing"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateProject(t *testing.T) {
	service, _, _ := newTestProjectService()
	created := createTestProject(t, service, "Alpha")
	createTestProject(t, service, "Beta")
	ctx := context.Background()

	updated, err := service.UpdateProject(ctx, primary.UpdateProjectRequest{
		ProjectID:          created.ID,
		Passphrase:         "secret",
		ClientName:         "Globex",
		TeamMembers:        []string{},
		ObservabilityTools: []string{"Datadog"},
	})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if updated.Name != "Alpha" {
		t.Errorf("expected name to be unchanged, got %q", updated.Name)
	}
	if updated.ClientName != "Globex" {
		t.Errorf("expected client Globex, got %q", updated.ClientName)
	}
	if len(updated.TeamMembers) != 0 {
		t.Errorf("expected team cleared, got %v", updated.TeamMembers)
	}
	if len(updated.ObservabilityTools) != 1 || updated.ObservabilityTools[0] != "Datadog" {
		t.Errorf("expected tools replaced, got %v", updated.ObservabilityTools)
	}

	_, err = service.UpdateProject(ctx, primary.UpdateProjectRequest{ProjectID: created.ID, Passphrase: "secret", Name: "Beta"})
	if !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error renaming onto an existing name, got %v", err)
	}

	_, err = service.UpdateProject(ctx, primary.UpdateProjectRequest{ProjectID: created.ID, Passphrase: "wrong", ClientName: "x"})
	if !apperr.Is(err, apperr.Unauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestDeleteProject(t *testing.T) {
	service, projectRepo, _ := newTestProjectService()
	created := createTestProject(t, service, "Alpha")
	ctx := context.Background()

	if err := service.DeleteProject(ctx, created.ID, ""); !apperr.Is(err, apperr.Unauthorized) {
		t.Errorf("expected unauthorized without passphrase, got %v", err)
	}
	if err := service.DeleteProject(ctx, created.ID, "wrong"); !apperr.Is(err, apperr.Unauthorized) {
		t.Errorf("expected unauthorized with wrong passphrase, got %v", err)
	}
	if _, ok := projectRepo.projects[created.ID]; !ok {
		t.Fatal("project must survive failed deletes")
	}

	if err := service.DeleteProject(ctx, created.ID, "secret"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if err := service.DeleteProject(ctx, created.ID, "secret"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestGetDashboard(t *testing.T) {
	service, projectRepo, workflowRepo := newTestProjectService()
	projectRepo.projects["p1"] = &secondary.ProjectRecord{ID: "p1", Name: "Alpha", ClientName: "Acme", TeamMembers: "not json"}
	projectRepo.tools["p1"] = []string{"Splunk"}

	var aggs []*secondary.WorkflowAggregateRecord
	for i := 1; i <= 8; i++ {
		status := "not_started"
		if i <= 3 {
			status = "complete"
		}
		aggs = append(aggs, &secondary.WorkflowAggregateRecord{
			WorkflowRecord: secondary.WorkflowRecord{ID: "w", WorkflowIndex: i, Status: status},
		})
	}
	aggs[0].TotalSteps, aggs[0].CompletedSteps, aggs[0].ScoredSteps, aggs[0].CompositeSum = 3, 2, 2, 36
	aggs[2].TotalSteps, aggs[2].CompletedSteps, aggs[2].ScoredSteps, aggs[2].CompositeSum = 1, 1, 1, 10
	workflowRepo.aggregates["p1"] = aggs

	dashboard, err := service.GetDashboard(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}

	if dashboard.Completion.Percentage != 38 {
		t.Errorf("expected 3/8 complete = 38%%, got %d", dashboard.Completion.Percentage)
	}
	if dashboard.Completion.CompleteWorkflows != 3 || dashboard.Completion.TotalWorkflows != 8 {
		t.Errorf("unexpected completion %+v", dashboard.Completion)
	}
	if dashboard.Scores.TotalScoredSteps != 3 || dashboard.Scores.AverageComposite != 15 {
		t.Errorf("expected 3 scored steps averaging 15, got %+v", dashboard.Scores)
	}
	if dashboard.Workflows[0].StepCount != 3 || dashboard.Workflows[0].CompletedSteps != 2 {
		t.Errorf("unexpected workflow 1 counts %+v", dashboard.Workflows[0])
	}
	if len(dashboard.Project.TeamMembers) != 0 {
		t.Errorf("expected unreadable team members to decode as empty, got %v", dashboard.Project.TeamMembers)
	}
	if len(dashboard.ObservabilityTools) != 1 {
		t.Errorf("expected tools, got %v", dashboard.ObservabilityTools)
	}
}
