package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/titlematch/pkg/api"
	"github.com/hazyhaar/titlematch/pkg/engine"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the normalization tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd, os.Stderr)
			if err != nil {
				return err
			}
			e, err := cfg.BuildEngine(cmd.Context())
			if err != nil {
				return fmt.Errorf("build engine: %w", err)
			}
			logger.Info("mcp stdio server starting", "titles", len(e.Titles()))
			return server.ServeStdio(api.NewMCPServer(engine.NewHolder(e), logger, version))
		},
	}
}
