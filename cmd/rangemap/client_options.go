package main

import (
	"fmt"
	"log/slog"

	"github.com/helixml/rangemap"
	"github.com/helixml/rangemap/internal/config"
)

// clientOptions returns the rangemap.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []rangemap.Option {
	opts := []rangemap.Option{
		rangemap.WithDataDir(cfg.DataDir()),
		rangemap.WithLogger(logger),
		rangemap.WithWorkerCount(cfg.WorkerCount()),
		rangemap.WithEnumerateBudget(cfg.EnumerateBudget()),
	}
	if !cfg.PersistSolutions() {
		return append(opts, rangemap.WithoutPersistence())
	}
	return append(opts, rangemap.WithDatabaseURL(cfg.DBURL()))
}

// newClient creates the data directory and a client for cfg.
func newClient(cfg config.AppConfig, logger *slog.Logger) (*rangemap.Client, error) {
	if cfg.PersistSolutions() {
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	client, err := rangemap.New(clientOptions(cfg, logger)...)
	if err != nil {
		return nil, fmt.Errorf("create rangemap client: %w", err)
	}
	return client, nil
}

// closeClient closes client and logs a failure.
func closeClient(client *rangemap.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close rangemap client", slog.Any("error", err))
	}
}
