package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/titlematch/pkg/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "titlematch",
		Short:        "Normalize job titles against a canonical catalog",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "config.yaml", "path to config file (.yaml, .yml or .toml)")

	root.AddCommand(newServeCmd(), newMatchCmd(), newMCPCmd(), newCatalogCmd())
	return root
}

// loadConfig reads the --config file and returns it with a logger writing to
// w at the configured level.
func loadConfig(cmd *cobra.Command, w io.Writer) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	boot := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg, err := config.Load(path, boot)
	if err != nil {
		return cfg, boot, err
	}
	level, err := cfg.Level()
	if err != nil {
		return cfg, boot, err
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}
