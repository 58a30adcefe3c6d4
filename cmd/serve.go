package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcatlas/vcatlas/internal/app"
	"github.com/vcatlas/vcatlas/internal/config"
	"github.com/vcatlas/vcatlas/internal/logging"
)

// newServeCmd creates and configures the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the vcatlas HTTP server",
		Long: `Starts the HTTP server exposing the /process-url/ endpoint and the
operational endpoints. The process runs until it receives SIGINT or
SIGTERM, then shuts down gracefully.`,
		RunE: runServeCommand,
	}
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize application services: %w", err)
	}
	defer application.Close()

	if err := application.Run(cmd.Context()); err != nil {
		logger.Error("server exited", zap.Error(err))
		return err
	}
	return nil
}
