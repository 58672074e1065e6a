package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/enscope/internal/version"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the enscope REST API until interrupted.

The listen address, timeouts and database come from the config file and
ENSCOPE_* environment variables. GET /health and GET /metrics are served
alongside the /api routes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.Logger.Info("starting enscope",
				zap.String("version", version.String()),
				zap.String("database", a.Config.Database.Path),
				zap.String("llm_backend", a.Config.LLM.Backend))
			return a.Server().Run(ctx)
		},
	}
}

// commandContext returns cmd's context, or Background when none was set.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
