package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/db"
	"github.com/example/enscope/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, database and language model setup",
		Long: `Health check for an enscope installation.

Validates:
- Configuration loads and passes validation
- Database opens with the latest schema
- A language model API key is configured
- Prompt files (if a prompts directory is set) are readable

Examples:
  enscope doctor              # Run full health check
  enscope doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []CheckResult

			a, err := loadApp()
			if err != nil {
				results = append(results, CheckResult{Name: "Configuration", Status: "✗", Details: "  " + err.Error()})
			} else {
				results = append(results,
					CheckResult{Name: "Configuration", Status: "✓"},
					checkDatabase(a),
					checkLanguageModel(a),
					checkPrompts(cmd, a),
				)
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printChecks(cmd.OutOrStdout(), results, hasErrors)
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func printChecks(out io.Writer, results []CheckResult, hasErrors bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(out, "\n⚠ Issues found.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
}

// checkDatabase verifies the schema is at the latest migration
func checkDatabase(a *wire.App) CheckResult {
	current, err := db.CurrentVersion(a.DB)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if latest := db.LatestVersion(); current != latest {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: fmt.Sprintf("  %s is at schema v%d, expected v%d", a.Config.Database.Path, current, latest),
		}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

// checkLanguageModel warns when assistance and scoring will be unavailable
func checkLanguageModel(a *wire.App) CheckResult {
	if a.Config.LLM.APIKey.Value() == "" {
		return CheckResult{
			Name:    "Language model",
			Status:  "⚠",
			Details: "  No API key configured. Set ENSCOPE_LLM_API_KEY or ANTHROPIC_API_KEY;\n  assistance, scoring and executive summaries are disabled.",
		}
	}
	return CheckResult{Name: "Language model", Status: "✓"}
}

// checkPrompts loads the prompt files the assistant would use
func checkPrompts(cmd *cobra.Command, a *wire.App) CheckResult {
	if _, err := a.Prompts.Load(commandContext(cmd)); err != nil {
		return CheckResult{Name: "Prompts", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Prompts", Status: "✓"}
}
