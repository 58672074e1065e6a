// Package cli implements the enscope command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/enscope/internal/wire"
)

// loadApp returns the wired application. Tests replace it.
var loadApp = wire.Default

// AddGlobalFlags registers flags shared by every command and releases the
// application after the command has run.
func AddGlobalFlags(root *cobra.Command) {
	var configPath string
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.enscope/config.yaml)")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		wire.SetConfigPath(configPath)
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return wire.Shutdown()
	}
}
