package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/ports/primary"
)

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, join and inspect assessment projects",
	}

	var create primary.CreateProjectRequest
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a project with its eight workflows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			create.Name = args[0]
			_, err = a.ProjectAdapter(cmd.OutOrStdout()).Create(commandContext(cmd), create)
			return err
		},
	}
	createCmd.Flags().StringVarP(&create.ClientName, "client", "c", "", "Client name")
	createCmd.Flags().StringVarP(&create.Passphrase, "passphrase", "p", "", "Passphrase required to join, edit or delete")
	createCmd.Flags().StringVar(&create.EngagementType, "engagement", "", "Engagement type (default: ITOM Event Management)")
	createCmd.Flags().StringSliceVar(&create.TeamMembers, "team", nil, "Team members (comma separated)")
	createCmd.Flags().StringSliceVar(&create.ObservabilityTools, "tools", nil, "Observability tools (comma separated)")

	var joinPassphrase string
	joinCmd := &cobra.Command{
		Use:   "join [name]",
		Short: "Look a project up by name and check its passphrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.ProjectAdapter(cmd.OutOrStdout()).Join(commandContext(cmd), args[0], joinPassphrase)
			return err
		},
	}
	joinCmd.Flags().StringVarP(&joinPassphrase, "passphrase", "p", "", "Project passphrase")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.ProjectAdapter(cmd.OutOrStdout()).List(commandContext(cmd))
			return err
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [project-id]",
		Short: "Show the project dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.ProjectAdapter(cmd.OutOrStdout()).Show(commandContext(cmd), args[0])
			return err
		},
	}

	var deletePassphrase string
	deleteCmd := &cobra.Command{
		Use:   "delete [project-id]",
		Short: "Delete a project and everything recorded against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			return a.ProjectAdapter(cmd.OutOrStdout()).Delete(commandContext(cmd), args[0], deletePassphrase)
		},
	}
	deleteCmd.Flags().StringVarP(&deletePassphrase, "passphrase", "p", "", "Project passphrase")

	cmd.AddCommand(createCmd, joinCmd, listCmd, showCmd, deleteCmd)
	return cmd
}
