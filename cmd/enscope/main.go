package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/cli"
	"github.com/example/enscope/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "enscope",
		Short:   "enscope - ITOM automation readiness tracker",
		Version: version.String(),
		Long: `enscope records the steps of the eight ITOM event management workflows,
scores each step for automation readiness and tracks the dependency gaps
that hold automation back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Server
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.DBCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	// Assessment
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.WorkflowCmd())
	rootCmd.AddCommand(cli.GapCmd())
	rootCmd.AddCommand(cli.ReportCmd())

	// Assistance
	rootCmd.AddCommand(cli.AssistCmd())
	rootCmd.AddCommand(cli.PromptCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
