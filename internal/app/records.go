package app

import (
	"encoding/json"

	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/ports/primary"
	"github.com/example/enscope/internal/ports/secondary"
)

// Conversions between persistence records and port DTOs shared by services.

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:             r.ID,
		Name:           r.Name,
		ClientName:     r.ClientName,
		EngagementType: r.EngagementType,
		TeamMembers:    decodeTeamMembers(r.TeamMembers),
		CreatedAt:      r.CreatedAt,
	}
}

// decodeTeamMembers tolerates legacy rows holding something other than a JSON array.
func decodeTeamMembers(raw string) []string {
	members := []string{}
	if raw == "" {
		return members
	}
	if err := json.Unmarshal([]byte(raw), &members); err != nil || members == nil {
		return []string{}
	}
	return members
}

func encodeTeamMembers(members []string) (string, error) {
	if members == nil {
		members = []string{}
	}
	b, err := json.Marshal(members)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func recordToWorkflow(r *secondary.WorkflowRecord) *primary.Workflow {
	return &primary.Workflow{
		ID:            r.ID,
		ProjectID:     r.ProjectID,
		WorkflowIndex: r.WorkflowIndex,
		WorkflowName:  r.WorkflowName,
		Status:        r.Status,
		UpdatedAt:     r.UpdatedAt,
	}
}

func recordToStepFields(r *secondary.StepRecord) primary.StepFields {
	return primary.StepFields{
		StepName:       r.StepName,
		Description:    r.Description,
		RoleTeam:       r.RoleTeam,
		TriggerInput:   r.TriggerInput,
		SystemsTools:   r.SystemsTools,
		DecisionPoints: r.DecisionPoints,
		OutputHandoff:  r.OutputHandoff,
		PainPoints:     r.PainPoints,
		TimeEffort:     r.TimeEffort,
		RawTranscript:  r.RawTranscript,
	}
}

func applyStepFields(r *secondary.StepRecord, f primary.StepFields) {
	r.StepName = f.StepName
	r.Description = f.Description
	r.RoleTeam = f.RoleTeam
	r.TriggerInput = f.TriggerInput
	r.SystemsTools = f.SystemsTools
	r.DecisionPoints = f.DecisionPoints
	r.OutputHandoff = f.OutputHandoff
	r.PainPoints = f.PainPoints
	r.TimeEffort = f.TimeEffort
	r.RawTranscript = f.RawTranscript
}

func recordToStep(r *secondary.StepRecord, score *secondary.ScoreRecord) *primary.Step {
	return &primary.Step{
		ID:         r.ID,
		WorkflowID: r.WorkflowID,
		StepNumber: r.StepNumber,
		StepFields: recordToStepFields(r),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Score:      recordToScore(score),
	}
}

func recordToScore(r *secondary.ScoreRecord) *primary.Score {
	if r == nil {
		return nil
	}
	return &primary.Score{
		RuleBased:          r.RuleBased,
		DataAvailability:   r.DataAvailability,
		ExceptionFrequency: r.ExceptionFrequency,
		Auditability:       r.Auditability,
		SpeedSensitivity:   r.SpeedSensitivity,
		Composite:          r.Composite,
		Tier:               r.Tier,
		Rationale:          r.Rationale,
		ScoredAt:           r.ScoredAt,
	}
}

func recordToGap(r *secondary.GapRecord) *primary.Gap {
	return &primary.Gap{
		ID:            r.ID,
		ProjectID:     r.ProjectID,
		WorkflowIndex: r.WorkflowIndex,
		GapType:       r.GapType,
		Severity:      r.Severity,
		Description:   r.Description,
		IdentifiedAt:  r.IdentifiedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func resultToDimensionScores(res scoring.Result) primary.DimensionScores {
	return primary.DimensionScores{
		RuleBased:          res.Dimensions.RuleBased,
		DataAvailability:   res.Dimensions.DataAvailability,
		ExceptionFrequency: res.Dimensions.ExceptionFrequency,
		Auditability:       res.Dimensions.Auditability,
		SpeedSensitivity:   res.Dimensions.SpeedSensitivity,
		Composite:          res.Composite,
		Tier:               string(res.Tier),
		Penalty:            res.Penalty,
	}
}

func scoreToDimensionScores(r *secondary.ScoreRecord) primary.DimensionScores {
	return primary.DimensionScores{
		RuleBased:          r.RuleBased,
		DataAvailability:   r.DataAvailability,
		ExceptionFrequency: r.ExceptionFrequency,
		Auditability:       r.Auditability,
		SpeedSensitivity:   r.SpeedSensitivity,
		Composite:          r.Composite,
		Tier:               r.Tier,
		Penalty:            r.RuleBased + r.DataAvailability + r.ExceptionFrequency + r.Auditability + r.SpeedSensitivity - r.Composite,
	}
}

func gapsForPenalty(records []*secondary.GapRecord) []scoring.Gap {
	out := make([]scoring.Gap, 0, len(records))
	for _, g := range records {
		out = append(out, scoring.Gap{WorkflowIndex: g.WorkflowIndex, Type: g.GapType, Severity: g.Severity})
	}
	return out
}
