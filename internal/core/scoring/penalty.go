package scoring

import (
	"fmt"
	"slices"

	"github.com/example/enscope/internal/core/workflow"
)

// Gap is the slice of a dependency gap the penalty policy looks at.
type Gap struct {
	WorkflowIndex int
	Type          string
	Severity      string
}

// PenaltyRule reduces the composite of steps in ScoredWorkflowIndex when the
// project has a triggering gap recorded against GapWorkflowIndex.
type PenaltyRule struct {
	GapWorkflowIndex    int
	ScoredWorkflowIndex int
	Penalty             int
}

// PenaltyPolicy is the table of contextual penalties.
// A gap triggers a rule only when its type is in GapTypes and its severity
// equals Severity.
type PenaltyPolicy struct {
	GapTypes []string
	Severity string
	Rules    []PenaltyRule
}

// DefaultPenaltyPolicy returns the standard policy: a red cmdb or discovery
// gap on correlation (3) or diagnosis (5) costs 4 points on steps of either
// of those workflows.
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{
		GapTypes: []string{"cmdb", "discovery"},
		Severity: "red",
		Rules: []PenaltyRule{
			{GapWorkflowIndex: 3, ScoredWorkflowIndex: 3, Penalty: 4},
			{GapWorkflowIndex: 3, ScoredWorkflowIndex: 5, Penalty: 4},
			{GapWorkflowIndex: 5, ScoredWorkflowIndex: 3, Penalty: 4},
			{GapWorkflowIndex: 5, ScoredWorkflowIndex: 5, Penalty: 4},
		},
	}
}

// Triggers reports whether a gap is of a type and severity the policy reacts to.
func (p PenaltyPolicy) Triggers(g Gap) bool {
	return g.Severity == p.Severity && slices.Contains(p.GapTypes, g.Type)
}

// PenaltyFor returns the penalty for a step in scoredWorkflowIndex.
// When several rules match the largest one applies; penalties never stack.
func (p PenaltyPolicy) PenaltyFor(scoredWorkflowIndex int, gaps []Gap) int {
	penalty := 0
	for _, rule := range p.Rules {
		if rule.ScoredWorkflowIndex != scoredWorkflowIndex || rule.Penalty <= penalty {
			continue
		}
		for _, g := range gaps {
			if g.WorkflowIndex == rule.GapWorkflowIndex && p.Triggers(g) {
				penalty = rule.Penalty
				break
			}
		}
	}
	return penalty
}

// Validate checks rule indices and penalty values.
func (p PenaltyPolicy) Validate() error {
	for i, rule := range p.Rules {
		if !workflow.ValidIndex(rule.GapWorkflowIndex) {
			return fmt.Errorf("penalty rule %d: gap workflow index %d out of range 1-%d", i, rule.GapWorkflowIndex, workflow.Count)
		}
		if !workflow.ValidIndex(rule.ScoredWorkflowIndex) {
			return fmt.Errorf("penalty rule %d: scored workflow index %d out of range 1-%d", i, rule.ScoredWorkflowIndex, workflow.Count)
		}
		if rule.Penalty < 0 {
			return fmt.Errorf("penalty rule %d: penalty must not be negative", i)
		}
	}
	if len(p.Rules) > 0 && (p.Severity == "" || len(p.GapTypes) == 0) {
		return fmt.Errorf("penalty policy needs a severity and at least one gap type")
	}
	return nil
}
