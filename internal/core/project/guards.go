// Package project contains the pure business logic for project lifecycle.
// This is part of the Functional Core - no I/O, only pure functions.
package project

import (
	"fmt"
	"strings"
)

// DefaultEngagementType is applied when a project is created without one.
const DefaultEngagementType = "ITOM Event Management"

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

// CreateContext carries the fields of a project creation request.
type CreateContext struct {
	Name       string
	ClientName string
	Passphrase string
	NameTaken  bool
}

// CanCreateProject evaluates whether a project can be created.
// Rules: name, client name and passphrase are required; names are unique
// because joining looks a project up by name.
func CanCreateProject(ctx CreateContext) GuardResult {
	var missing []string
	if strings.TrimSpace(ctx.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(ctx.ClientName) == "" {
		missing = append(missing, "client_name")
	}
	if ctx.Passphrase == "" {
		missing = append(missing, "passphrase")
	}
	if len(missing) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "Missing required fields: " + strings.Join(missing, ", "),
		}
	}
	if ctx.NameTaken {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("A project named %q already exists", ctx.Name),
		}
	}
	return GuardResult{Allowed: true}
}

// CanJoinProject checks a join request has both credentials.
func CanJoinProject(name, passphrase string) GuardResult {
	if strings.TrimSpace(name) == "" || passphrase == "" {
		return GuardResult{Allowed: false, Reason: "Missing required fields: name, passphrase"}
	}
	return GuardResult{Allowed: true}
}

// NormalizeTools trims tool names, drops blanks and duplicates, keeping order.
func NormalizeTools(tools []string) []string {
	seen := make(map[string]bool, len(tools))
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// EngagementTypeOrDefault returns t, or the default when blank.
func EngagementTypeOrDefault(t string) string {
	if strings.TrimSpace(t) == "" {
		return DefaultEngagementType
	}
	return t
}
