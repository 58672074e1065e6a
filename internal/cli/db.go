package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/db"
)

// DBCmd returns the db command
func DBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the enscope database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the database and apply migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			v, err := db.CurrentVersion(a.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Database ready at %s (schema v%d)\n", a.Config.Database.Path, v)
			return nil
		},
	})

	var passphrase string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo project with steps, scores and gaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			hash, err := a.Hasher.Hash(passphrase)
			if err != nil {
				return err
			}
			id, err := db.SeedDemo(a.DB, hash)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Seeded %q\n", db.DemoProjectName)
			fmt.Fprintf(out, "  id:         %s\n", id)
			fmt.Fprintf(out, "  passphrase: %s\n", passphrase)
			return nil
		},
	}
	seedCmd.Flags().StringVar(&passphrase, "passphrase", "demo", "Passphrase for the demo project")
	cmd.AddCommand(seedCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the schema SQL",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), db.GetSchemaSQL())
		},
	})

	return cmd
}
