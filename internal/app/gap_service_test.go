package app

import (
	"context"
	"testing"

	"github.com/example/enscope/internal/apperr"
	"github.com/example/enscope/internal/core/gap"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

func newTestGapService() (*GapServiceImpl, *mockGapRepository) {
	gapRepo := newMockGapRepository()
	projectRepo := newMockProjectRepository()
	projectRepo.projects["p1"] = &secondary.ProjectRecord{ID: "p1", Name: "Alpha"}
	return NewGapService(gapRepo, projectRepo), gapRepo
}

func TestCreateGap_Success(t *testing.T) {
	service, gapRepo := newTestGapService()

	created, err := service.CreateGap(context.Background(), primary.CreateGapRequest{
		ProjectID:     "p1",
		WorkflowIndex: 3,
		GapType:       "cmdb",
		Severity:      "red",
		Description:   "  CI relationships stale  ",
	})
	if err != nil {
		t.Fatalf("CreateGap failed: %v", err)
	}
	if created.ID == "" || created.IdentifiedAt == "" {
		t.Errorf("expected id and timestamp, got %+v", created)
	}
	if created.Description != "CI relationships stale" {
		t.Errorf("expected trimmed description, got %q", created.Description)
	}
	if len(gapRepo.gaps) != 1 {
		t.Errorf("expected one stored gap, got %d", len(gapRepo.gaps))
	}
}

func TestCreateGap_Validation(t *testing.T) {
	valid := primary.CreateGapRequest{ProjectID: "p1", WorkflowIndex: 3, GapType: "cmdb", Severity: "red", Description: "x"}

	tests := []struct {
		name     string
		mutate   func(r *primary.CreateGapRequest)
		wantKind apperr.Kind
	}{
		{"missing description", func(r *primary.CreateGapRequest) { r.Description = " " }, apperr.Validation},
		{"missing workflow", func(r *primary.CreateGapRequest) { r.WorkflowIndex = 0 }, apperr.Validation},
		{"workflow out of range", func(r *primary.CreateGapRequest) { r.WorkflowIndex = 9 }, apperr.Validation},
		{"unknown type", func(r *primary.CreateGapRequest) { r.GapType = "network" }, apperr.Validation},
		{"unknown severity", func(r *primary.CreateGapRequest) { r.Severity = "blue" }, apperr.Validation},
		{"unknown project", func(r *primary.CreateGapRequest) { r.ProjectID = "missing" }, apperr.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, gapRepo := newTestGapService()
			req := valid
			tt.mutate(&req)

			_, err := service.CreateGap(context.Background(), req)
			if !apperr.Is(err, tt.wantKind) {
				t.Errorf("expected %s error, got %v", tt.wantKind, err)
			}
			if len(gapRepo.gaps) != 0 {
				t.Error("expected nothing stored")
			}
		})
	}
}

func TestGetSummary(t *testing.T) {
	service, gapRepo := newTestGapService()
	gapRepo.add("g1", "p1", 3, "cmdb", "red", "a")
	gapRepo.add("g2", "p1", 5, "cmdb", "amber", "b")
	gapRepo.add("g3", "p1", 1, "observability", "amber", "c")
	gapRepo.add("g4", "p1", 2, "discovery", "green", "d")
	gapRepo.add("g5", "p2", 2, "other", "red", "other project")

	summary, err := service.GetSummary(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalGaps != 4 {
		t.Errorf("expected 4 gaps, got %d", summary.TotalGaps)
	}
	if c := summary.Summary[gap.TypeCMDB]; c.Red != 1 || c.Amber != 1 || c.Green != 0 {
		t.Errorf("unexpected cmdb counts %+v", c)
	}
	want := map[gap.Type]gap.Severity{
		gap.TypeCMDB:          gap.SeverityRed,
		gap.TypeObservability: gap.SeverityAmber,
		gap.TypeDiscovery:     gap.SeverityGreen,
		gap.TypeOther:         gap.SeverityGreen,
	}
	for typ, sev := range want {
		if summary.DimensionStatus[typ] != sev {
			t.Errorf("dimension %s = %s, want %s", typ, summary.DimensionStatus[typ], sev)
		}
	}

	if _, err := service.GetSummary(context.Background(), "missing"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListGaps(t *testing.T) {
	service, gapRepo := newTestGapService()
	gapRepo.add("g1", "p1", 3, "cmdb", "red", "older")
	gapRepo.add("g2", "p1", 5, "discovery", "amber", "newer")

	list, err := service.ListGaps(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListGaps failed: %v", err)
	}
	if list.TotalGaps != 2 || list.Gaps[0].ID != "g2" {
		t.Errorf("expected newest first, got %+v", list.Gaps)
	}
}

func TestUpdateGap(t *testing.T) {
	service, gapRepo := newTestGapService()
	gapRepo.add("g1", "p1", 3, "cmdb", "red", "stale")
	ctx := context.Background()

	updated, err := service.UpdateGap(ctx, primary.UpdateGapRequest{GapID: "g1", Severity: "green"})
	if err != nil {
		t.Fatalf("UpdateGap failed: %v", err)
	}
	if updated.Severity != "green" || updated.GapType != "cmdb" || updated.WorkflowIndex != 3 || updated.Description != "stale" {
		t.Errorf("expected only severity changed, got %+v", updated)
	}

	if _, err := service.UpdateGap(ctx, primary.UpdateGapRequest{GapID: "g1", Severity: "purple"}); !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := service.UpdateGap(ctx, primary.UpdateGapRequest{GapID: "missing", Severity: "red"}); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteGap(t *testing.T) {
	service, gapRepo := newTestGapService()
	gapRepo.add("g1", "p1", 3, "cmdb", "red", "stale")

	if err := service.DeleteGap(context.Background(), "g1"); err != nil {
		t.Fatalf("DeleteGap failed: %v", err)
	}
	if err := service.DeleteGap(context.Background(), "g1"); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
