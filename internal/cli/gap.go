package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/ports/primary"
)

// GapCmd returns the gap command
func GapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Record and review dependency gaps",
	}

	var add primary.CreateGapRequest
	addCmd := &cobra.Command{
		Use:     "add [project-id] [description]",
		Short:   "Record a gap against a workflow",
		Example: `  enscope gap add 5f0c... "CMDB relationships are stale" --workflow 3 --type cmdb --severity red`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			add.ProjectID = args[0]
			add.Description = args[1]
			_, err = a.GapAdapter(cmd.OutOrStdout()).Add(commandContext(cmd), add)
			return err
		},
	}
	addCmd.Flags().IntVarP(&add.WorkflowIndex, "workflow", "w", 0, "Workflow index (1-8)")
	addCmd.Flags().StringVarP(&add.GapType, "type", "t", "", "Gap type (cmdb, discovery, observability, other)")
	addCmd.Flags().StringVarP(&add.Severity, "severity", "s", "", "Severity (red, amber, green)")

	listCmd := &cobra.Command{
		Use:   "list [project-id]",
		Short: "List a project's gaps, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.GapAdapter(cmd.OutOrStdout()).List(commandContext(cmd), args[0])
			return err
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [project-id]",
		Short: "Show RAG status per dependency dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.GapAdapter(cmd.OutOrStdout()).Summary(commandContext(cmd), args[0])
			return err
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [gap-id]",
		Short: "Delete a gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			return a.GapAdapter(cmd.OutOrStdout()).Delete(commandContext(cmd), args[0])
		},
	}

	cmd.AddCommand(addCmd, listCmd, summaryCmd, deleteCmd)
	return cmd
}
