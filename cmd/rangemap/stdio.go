package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/rangemap/internal/log"
	"github.com/helixml/rangemap/internal/mcp"
)

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

Tools: lowest_location, map_value, get_version.
Logs go to stderr because stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := log.NewStderrLogger(cfg)
			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			logger.Info("starting MCP server",
				slog.String("version", version),
				slog.Bool("persistence", client.Persistent()),
			)
			return mcp.NewServer(client.Solver, version, logger).ServeStdio()
		},
	}
}
