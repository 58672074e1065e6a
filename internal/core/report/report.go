// Package report contains the pure aggregation rules behind score rollups,
// dashboards and exported reports.
// This is part of the Functional Core - no I/O, only pure functions.
package report

import (
	"github.com/example/enscope/internal/core/scoring"
	"github.com/example/enscope/internal/core/workflow"
)

// TierDistribution counts (or, after Percentages, shares) steps per tier.
type TierDistribution struct {
	Autonomous  int `json:"autonomous"`
	HumanInLoop int `json:"human_in_loop"`
	HumanOnly   int `json:"human_only"`
}

// Add counts one step of the given tier. Unknown tiers are ignored.
func (d *TierDistribution) Add(tier string) {
	switch scoring.Tier(tier) {
	case scoring.TierAutonomous:
		d.Autonomous++
	case scoring.TierHumanInLoop:
		d.HumanInLoop++
	case scoring.TierHumanOnly:
		d.HumanOnly++
	}
}

// Merge adds another distribution's counts.
func (d *TierDistribution) Merge(o TierDistribution) {
	d.Autonomous += o.Autonomous
	d.HumanInLoop += o.HumanInLoop
	d.HumanOnly += o.HumanOnly
}

// Percentages converts counts into rounded percentages of total.
func (d TierDistribution) Percentages(total int) TierDistribution {
	if total <= 0 {
		return TierDistribution{}
	}
	return TierDistribution{
		Autonomous:  RoundedAverage(d.Autonomous*100, total),
		HumanInLoop: RoundedAverage(d.HumanInLoop*100, total),
		HumanOnly:   RoundedAverage(d.HumanOnly*100, total),
	}
}

// RoundedAverage returns sum/count rounded half up, or 0 when count is 0.
func RoundedAverage(sum, count int) int {
	if count <= 0 {
		return 0
	}
	return (2*sum + count) / (2 * count)
}

// ScoredStep is the score slice of a step used by rollups.
type ScoredStep struct {
	Composite int
	Tier      string
}

// Stats summarises one workflow's scores.
type Stats struct {
	TotalSteps       int              `json:"total_steps"`
	ScoredSteps      int              `json:"scored_steps"`
	AverageComposite int              `json:"average_composite"`
	TierDistribution TierDistribution `json:"tier_distribution"`
}

// WorkflowStats aggregates the scored steps of a workflow with totalSteps steps.
func WorkflowStats(totalSteps int, scored []ScoredStep) Stats {
	stats := Stats{TotalSteps: totalSteps, ScoredSteps: len(scored)}
	sum := 0
	for _, s := range scored {
		sum += s.Composite
		stats.TierDistribution.Add(s.Tier)
	}
	stats.AverageComposite = RoundedAverage(sum, len(scored))
	return stats
}

// WorkflowRollup is the per-workflow input to ProjectStats.
type WorkflowRollup struct {
	Status           string
	TotalSteps       int
	CompletedSteps   int
	ScoredSteps      int
	CompositeSum     int
	TierDistribution TierDistribution
}

// AverageComposite is the rounded mean composite of the workflow's scored steps.
func (w WorkflowRollup) AverageComposite() int {
	return RoundedAverage(w.CompositeSum, w.ScoredSteps)
}

// Project summarises a whole project.
type Project struct {
	TotalWorkflows       int              `json:"total_workflows"`
	CompletedWorkflows   int              `json:"completed_workflows"`
	CompletionPercentage int              `json:"completion_percentage"`
	TotalSteps           int              `json:"total_steps"`
	CompletedSteps       int              `json:"completed_steps"`
	TotalScoredSteps     int              `json:"total_scored_steps"`
	AverageComposite     int              `json:"average_composite"`
	TierDistribution     TierDistribution `json:"tier_distribution"`
	ReadinessTier        scoring.Tier     `json:"readiness_tier"`
}

// ProjectStats rolls workflow aggregates up to the project. The average
// composite is weighted by scored steps, not by workflow.
func ProjectStats(workflows []WorkflowRollup) Project {
	p := Project{TotalWorkflows: len(workflows)}
	compositeSum := 0
	for _, w := range workflows {
		if w.Status == string(workflow.StatusComplete) {
			p.CompletedWorkflows++
		}
		p.TotalSteps += w.TotalSteps
		p.CompletedSteps += w.CompletedSteps
		p.TotalScoredSteps += w.ScoredSteps
		compositeSum += w.CompositeSum
		p.TierDistribution.Merge(w.TierDistribution)
	}
	p.CompletionPercentage = workflow.CompletionPercentage(p.CompletedWorkflows, p.TotalWorkflows)
	p.AverageComposite = RoundedAverage(compositeSum, p.TotalScoredSteps)
	p.ReadinessTier = ReadinessTier(compositeSum, p.TotalScoredSteps)
	return p
}

// ReadinessTier classifies the unrounded mean composite. A project with no
// scored steps is human_only.
func ReadinessTier(compositeSum, scoredSteps int) scoring.Tier {
	if scoredSteps <= 0 {
		return scoring.TierHumanOnly
	}
	switch {
	case compositeSum >= scoring.AutonomousThreshold*scoredSteps:
		return scoring.TierAutonomous
	case compositeSum >= scoring.HumanInLoopThreshold*scoredSteps:
		return scoring.TierHumanInLoop
	default:
		return scoring.TierHumanOnly
	}
}

// TierLabel returns the display label of a tier, "Not Scored" for anything else.
func TierLabel(tier string) string {
	switch scoring.Tier(tier) {
	case scoring.TierAutonomous:
		return "Autonomous"
	case scoring.TierHumanInLoop:
		return "Human-in-Loop"
	case scoring.TierHumanOnly:
		return "Human-Only"
	default:
		return "Not Scored"
	}
}
