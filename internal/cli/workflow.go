package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/ports/primary"
)

// WorkflowCmd returns the workflow command
func WorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Capture steps and score workflows",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [workflow-id]",
		Short: "Show a workflow with its steps and scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.WorkflowAdapter(cmd.OutOrStdout()).Show(commandContext(cmd), args[0])
			return err
		},
	})

	var fields primary.StepFields
	addStepCmd := &cobra.Command{
		Use:   "add-step [workflow-id] [step-name]",
		Short: "Append an interview step to a workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			fields.StepName = args[1]
			_, err = a.WorkflowAdapter(cmd.OutOrStdout()).AddStep(commandContext(cmd), args[0], fields)
			return err
		},
	}
	flags := addStepCmd.Flags()
	flags.StringVarP(&fields.Description, "description", "d", "", "What happens in this step")
	flags.StringVar(&fields.RoleTeam, "role", "", "Role or team performing the step")
	flags.StringVar(&fields.TriggerInput, "trigger", "", "Trigger or input")
	flags.StringVar(&fields.SystemsTools, "systems", "", "Systems and tools used")
	flags.StringVar(&fields.DecisionPoints, "decisions", "", "Decision points")
	flags.StringVar(&fields.OutputHandoff, "output", "", "Output or handoff")
	flags.StringVar(&fields.PainPoints, "pain-points", "", "Pain points")
	flags.StringVar(&fields.TimeEffort, "time", "", "Time and effort")
	cmd.AddCommand(addStepCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-step [step-id]",
		Short: "Delete a step and its score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			return a.WorkflowAdapter(cmd.OutOrStdout()).DeleteStep(commandContext(cmd), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "status [workflow-id] [status]",
		Short:     "Set a workflow's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"not_started", "in_progress", "complete"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.WorkflowAdapter(cmd.OutOrStdout()).SetStatus(commandContext(cmd), args[0], args[1])
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "score [workflow-id]",
		Short: "Score every step of a workflow with the language model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.ReportAdapter(cmd.OutOrStdout()).Score(commandContext(cmd), args[0])
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "diagram [workflow-id]",
		Short: "Print the workflow as a Mermaid flowchart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.ReportAdapter(cmd.OutOrStdout()).Diagram(commandContext(cmd), args[0])
			return err
		},
	})

	return cmd
}
