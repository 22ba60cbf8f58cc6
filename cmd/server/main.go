package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmynk/careshare/internal/config"
	"github.com/mmynk/careshare/internal/storage/sqlite"
	"github.com/mmynk/careshare/pkg/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "careshare",
		Short:         "Shared caregiving cost tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd, configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
					return fmt.Errorf("failed to create database directory: %w", err)
				}
				if err := sqlite.Migrate(cfg.DBPath); err != nil {
					slog.Error("Migration failed", "database", cfg.DBPath, "error", err)
					return err
				}
				slog.Info("Migrations applied", "database", cfg.DBPath)
				return nil
			},
		},
	)
	return root
}

// loadConfig resolves the configuration and installs the default logger.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return nil, err
	}
	logging.SetupWith(logging.ParseLevel(cfg.LogLevel), logging.Format(cfg.LogFormat))
	return cfg, nil
}
