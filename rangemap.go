// Package rangemap resolves seed ranges through chains of piecewise remapping
// tables without enumerating the values inside them.
//
// Basic usage:
//
//	client, err := rangemap.New(rangemap.WithSQLite(""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	a, err := almanacfile.Load("input.txt", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.Solver.Solve(ctx, a, almanac.ModeRange)
//	fmt.Println(result.Lowest())
package rangemap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/helixml/rangemap/application/service"
	"github.com/helixml/rangemap/domain/solution"
	"github.com/helixml/rangemap/infrastructure/persistence"
	"github.com/helixml/rangemap/internal/config"
	"github.com/helixml/rangemap/internal/database"
)

// Errors returned by the client.
var (
	ErrNoDatabase   = errors.New("rangemap: no database configured, use WithSQLite, WithPostgres or WithoutPersistence")
	ErrClientClosed = errors.New("rangemap: client is closed")
)

const (
	postgresMaxOpen = 10
	postgresMaxIdle = 5
)

// Client wires the services together.
//
//	client.Solver.Solve(ctx, a, almanac.ModePoint)
//	client.Solutions.List(ctx, 10)
type Client struct {
	Solver    *service.Solver
	Solutions *service.Solutions

	db      *database.Database
	logger  *slog.Logger
	dataDir string
	closed  atomic.Bool
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		logger:  logger,
		dataDir: cfg.dataDir,
	}

	var store solution.Store
	if cfg.database != databaseNone {
		dbURL, err := buildDatabaseURL(cfg)
		if err != nil {
			return nil, err
		}

		db, err := database.NewDatabase(context.Background(), dbURL, logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if db.IsPostgres() {
			if err := db.ConfigurePool(postgresMaxOpen, postgresMaxIdle, time.Hour); err != nil {
				return nil, errors.Join(err, db.Close())
			}
		}
		if err := persistence.AutoMigrate(db); err != nil {
			return nil, errors.Join(err, db.Close())
		}

		client.db = &db
		store = persistence.NewSolutionStore(db)
	}

	client.Solver = service.NewSolver(store, logger,
		service.WithWorkers(cfg.workerCount),
		service.WithEnumerateBudget(cfg.enumerateBudget),
	)
	client.Solutions = service.NewSolutions(store)

	logger.Debug("rangemap client ready",
		slog.Bool("persistence", store != nil),
		slog.Int("workers", cfg.workerCount),
	)
	return client, nil
}

// Persistent reports whether solutions are stored.
func (c *Client) Persistent() bool {
	return c.db != nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close releases the database. Closing twice returns ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}

func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		path := cfg.dbPath
		if path == "" {
			dataDir, err := config.PrepareDataDir(cfg.dataDir)
			if err != nil {
				return "", err
			}
			path = filepath.Join(dataDir, config.DefaultDBFile)
		}
		if path == ":memory:" {
			return "sqlite:///:memory:", nil
		}
		if _, err := config.PrepareDataDir(filepath.Dir(path)); err != nil {
			return "", err
		}
		return "sqlite:///" + path, nil
	case databasePostgres, databaseURL:
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}
