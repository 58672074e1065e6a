package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/ports/primary"
)

// AssistCmd returns the assist command
func AssistCmd() *cobra.Command {
	var value string
	var stepData map[string]string

	cmd := &cobra.Command{
		Use:   "assist [project-id] [workflow-index] [field]",
		Short: "Ask for guidance on an interview field",
		Long: `Ask the language model for guidance on one step field.

Examples:
  enscope assist 5f0c... 1 trigger_input
  enscope assist 5f0c... 4 decision_points --value "route by CI" --step step_name="Assign ticket"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := assistRequest(args, value, stepData)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.AssistAdapter(cmd.OutOrStdout()).Assist(commandContext(cmd), req)
			return err
		},
	}
	cmd.Flags().StringVarP(&value, "value", "v", "", "Current value of the field")
	cmd.Flags().StringToStringVar(&stepData, "step", nil, "Other step fields for context (key=value)")

	return cmd
}

// PromptCmd returns the prompt command
func PromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Inspect and customise assistance prompts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [project-id] [workflow-index] [field]",
		Short: "Print the system prompt an assist request would send",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := assistRequest(args, "", nil)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			_, err = a.AssistAdapter(cmd.OutOrStdout()).Prompt(commandContext(cmd), req)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default prompt files into the prompts directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if a.Prompts.Dir() == "" {
				return fmt.Errorf("prompts.dir is not configured")
			}
			written, err := a.Prompts.WriteDefaults()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintf(out, "All prompt files already exist in %s\n", a.Prompts.Dir())
				return nil
			}
			for _, path := range written {
				fmt.Fprintf(out, "✓ Wrote %s\n", path)
			}
			return nil
		},
	})

	return cmd
}

func assistRequest(args []string, value string, stepData map[string]string) (primary.AssistRequest, error) {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return primary.AssistRequest{}, fmt.Errorf("invalid workflow index %q", args[1])
	}
	return primary.AssistRequest{
		ProjectID:     args[0],
		WorkflowIndex: index,
		FieldName:     args[2],
		FieldValue:    value,
		StepData:      stepData,
	}, nil
}
