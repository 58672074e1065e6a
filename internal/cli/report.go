package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/enscope/internal/adapters/cli"
	"github.com/example/enscope/internal/adapters/render"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	var workflowIndex int

	cmd := &cobra.Command{
		Use:   "report [project-id]",
		Short: "Show the automation readiness report",
		Long: `Show the readiness rollup for a project, or one workflow with --workflow.

Examples:
  enscope report 5f0c...               # engagement rollup
  enscope report 5f0c... --workflow 3  # steps of workflow 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			adapter := a.ReportAdapter(cmd.OutOrStdout())
			if workflowIndex > 0 {
				_, err = adapter.Workflow(commandContext(cmd), args[0], workflowIndex)
			} else {
				_, err = adapter.Project(commandContext(cmd), args[0])
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&workflowIndex, "workflow", "w", 0, "Report a single workflow (1-8)")

	var format, csvKind, output string
	exportCmd := &cobra.Command{
		Use:   "export [project-id]",
		Short: "Export the report as HTML, JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := a.ReportAdapter(cmd.ErrOrStderr()).Export(commandContext(cmd), args[0], format, csvKind, w); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", output)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", cliadapter.FormatHTML, "Export format (html, json, csv)")
	exportCmd.Flags().StringVarP(&csvKind, "type", "t", render.CSVProject, "CSV layout (project, workflows, steps)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.AddCommand(exportCmd)

	return cmd
}
