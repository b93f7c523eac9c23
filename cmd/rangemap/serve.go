package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/rangemap/infrastructure/api"
	apimiddleware "github.com/helixml/rangemap/infrastructure/api/middleware"
	"github.com/helixml/rangemap/internal/config"
	"github.com/helixml/rangemap/internal/log"
)

// shutdownTimeout bounds the graceful drain on SIGINT/SIGTERM.
const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and MCP server",
		Long: `Start the HTTP API server. The MCP endpoint is mounted at /mcp.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                   Server host to bind to (default: 0.0.0.0)
  PORT                   Server port to listen on (default: 8080)
  DATA_DIR               Data directory (default: ~/.rangemap)
  DB_URL                 Database URL (default: sqlite:///{data_dir}/rangemap.db)
  LOG_LEVEL              Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT             Log format: pretty, json (default: pretty)
  API_KEYS               Comma-separated keys required for mutating endpoints
  CORS_ALLOWED_ORIGINS   Comma-separated origins allowed by CORS
  WORKER_COUNT           Range shards mapped concurrently (default: 1)
  ENUMERATE_BUDGET       Maximum seeds a verification may visit (default: 10000000)
  PERSIST_SOLUTIONS      Store solutions in the database (default: true)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), applyServeOverrides(cfg, host, port))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, cfg config.AppConfig) error {
	logger := log.Configure(cfg)

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting rangemap", attrs...)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	apiServer := api.NewAPIServer(client,
		api.WithAPIKeys(cfg.APIKeys()...),
		api.WithCORSAllowedOrigins(cfg.CORSAllowedOrigins()...),
		api.WithVersion(version),
	)
	router := apiServer.Router()

	// Middleware must be added before MountRoutes.
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(logger))
	apiServer.MountRoutes()

	server := api.NewServer(cfg.Addr(), logger)
	server.Router().Mount("/", router)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
