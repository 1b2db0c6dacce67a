package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ncobase/taskmanager/config"
	"github.com/ncobase/taskmanager/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the command that runs the HTTP server.
func NewServeCommand() *cobra.Command {
	var (
		configPath string
		memory     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := server.NewApp(ctx, cfg, server.Options{Memory: memory})
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()

			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config.yaml when present)")
	cmd.Flags().BoolVar(&memory, "memory", false, "keep data in memory instead of MongoDB")
	return cmd
}
