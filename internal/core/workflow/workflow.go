// Package workflow contains the pure business logic for the fixed workflow set.
// This is part of the Functional Core - no I/O, only pure functions.
package workflow

import "fmt"

// Count is the number of workflows every project owns.
const Count = 8

// Status is the progress state of a workflow.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

var names = [Count]string{
	"Signal Intake & Event Detection",
	"Triage & Classification",
	"Correlation & Context Enrichment",
	"Assignment & Coordination",
	"Diagnosis & Resolution",
	"Escalation & Major Incident Management",
	"Verification & Closure",
	"Post-Incident Review & Learning",
}

// Names returns the eight workflow names in index order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}

// Name returns the display name for a 1-based index, or "" when out of range.
func Name(index int) string {
	if !ValidIndex(index) {
		return ""
	}
	return names[index-1]
}

// ValidIndex reports whether index is in 1..Count.
func ValidIndex(index int) bool {
	return index >= 1 && index <= Count
}

// ParseStatus converts a raw status string into a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusComplete:
		return Status(s), true
	}
	return "", false
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

// CanSetStatus evaluates an explicit status change requested by a user.
func CanSetStatus(raw string) GuardResult {
	if _, ok := ParseStatus(raw); !ok {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Invalid status %q (must be one of not_started, in_progress, complete)", raw),
		}
	}
	return GuardResult{Allowed: true}
}

// StatusAfterStepEdit returns the status a workflow moves to when one of its
// steps is edited. Only not_started advances; complete is never demoted.
func StatusAfterStepEdit(current Status) Status {
	if current == StatusNotStarted {
		return StatusInProgress
	}
	return current
}

// CompletionPercentage is the rounded share of complete workflows.
func CompletionPercentage(complete, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(complete)/float64(total)*100 + 0.5)
}
