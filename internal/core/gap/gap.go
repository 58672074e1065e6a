// Package gap contains the pure business logic for dependency gaps.
// This is part of the Functional Core - no I/O, only pure functions.
package gap

import (
	"fmt"
	"strings"

	"github.com/example/enscope/internal/core/workflow"
)

// Type is the dependency dimension a gap is recorded against.
type Type string

const (
	TypeCMDB          Type = "cmdb"
	TypeDiscovery     Type = "discovery"
	TypeObservability Type = "observability"
	TypeOther         Type = "other"
)

// Severity is the RAG rating of a gap.
type Severity string

const (
	SeverityRed   Severity = "red"
	SeverityAmber Severity = "amber"
	SeverityGreen Severity = "green"
)

// Types lists the fixed gap types in display order.
var Types = []Type{TypeCMDB, TypeDiscovery, TypeObservability, TypeOther}

// Severities lists severities from worst to best.
var Severities = []Severity{SeverityRed, SeverityAmber, SeverityGreen}

// ValidType reports whether s is a known gap type.
func ValidType(s string) bool {
	for _, t := range Types {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ValidSeverity reports whether s is a known severity.
func ValidSeverity(s string) bool {
	for _, sev := range Severities {
		if string(sev) == s {
			return true
		}
	}
	return false
}

// Counts holds the number of gaps per severity for one type.
type Counts struct {
	Red   int `json:"red"`
	Amber int `json:"amber"`
	Green int `json:"green"`
}

// Total returns the number of gaps counted.
func (c Counts) Total() int {
	return c.Red + c.Amber + c.Green
}

// Overall returns the worst severity present, green when empty.
func (c Counts) Overall() Severity {
	switch {
	case c.Red > 0:
		return SeverityRed
	case c.Amber > 0:
		return SeverityAmber
	default:
		return SeverityGreen
	}
}

// Entry is the input to Summarize.
type Entry struct {
	Type     string
	Severity string
}

// Summary is the per-type severity breakdown of a project's gaps.
type Summary struct {
	Counts  map[Type]Counts
	Overall map[Type]Severity
	Total   int
}

// Summarize counts gaps per type and severity across the four fixed types.
// Entries with an unknown type or severity are ignored.
func Summarize(entries []Entry) Summary {
	counts := make(map[Type]Counts, len(Types))
	for _, t := range Types {
		counts[t] = Counts{}
	}

	total := 0
	for _, e := range entries {
		t := Type(e.Type)
		c, ok := counts[t]
		if !ok {
			continue
		}
		switch Severity(e.Severity) {
		case SeverityRed:
			c.Red++
		case SeverityAmber:
			c.Amber++
		case SeverityGreen:
			c.Green++
		default:
			continue
		}
		counts[t] = c
		total++
	}

	overall := make(map[Type]Severity, len(Types))
	for _, t := range Types {
		overall[t] = counts[t].Overall()
	}

	return Summary{Counts: counts, Overall: overall, Total: total}
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateContext carries the fields of a gap to be recorded.
type CreateContext struct {
	ProjectID     string
	WorkflowIndex int
	Type          string
	Severity      string
	Description   string
}

// CanCreateGap validates a new gap.
func CanCreateGap(ctx CreateContext) GuardResult {
	if ctx.ProjectID == "" || ctx.WorkflowIndex == 0 || ctx.Type == "" || ctx.Severity == "" || strings.TrimSpace(ctx.Description) == "" {
		return GuardResult{Allowed: false, Reason: "Missing required fields"}
	}
	if !workflow.ValidIndex(ctx.WorkflowIndex) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("Invalid workflow index %d (must be 1-%d)", ctx.WorkflowIndex, workflow.Count)}
	}
	if !ValidType(ctx.Type) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("Invalid gap type %q", ctx.Type)}
	}
	if !ValidSeverity(ctx.Severity) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("Invalid severity %q", ctx.Severity)}
	}
	return GuardResult{Allowed: true}
}

// UpdateContext carries a partial gap update; empty or zero fields are left unchanged.
type UpdateContext struct {
	WorkflowIndex int
	Type          string
	Severity      string
}

// CanUpdateGap validates the fields present in a partial update.
func CanUpdateGap(ctx UpdateContext) GuardResult {
	if ctx.WorkflowIndex != 0 && !workflow.ValidIndex(ctx.WorkflowIndex) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("Invalid workflow index %d (must be 1-%d)", ctx.WorkflowIndex, workflow.Count)}
	}
	if ctx.Type != "" && !ValidType(ctx.Type) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("Invalid gap type %q", ctx.Type)}
	}
	if ctx.Severity != "" && !ValidSeverity(ctx.Severity) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("Invalid severity %q", ctx.Severity)}
	}
	return GuardResult{Allowed: true}
}
