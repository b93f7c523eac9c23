package rangemap

import (
	"log/slog"
	"strings"

	"github.com/helixml/rangemap/internal/config"
)

type databaseType int

const (
	databaseUnset databaseType = iota
	databaseNone
	databaseSQLite
	databasePostgres
	databaseURL
)

type clientConfig struct {
	database        databaseType
	dbPath          string
	dbDSN           string
	dataDir         string
	logger          *slog.Logger
	workerCount     int
	enumerateBudget uint64
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:         config.DefaultDataDir(),
		workerCount:     config.DefaultWorkerCount,
		enumerateBudget: config.DefaultEnumerateBudget,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores solutions in a SQLite file. An empty path uses
// rangemap.db inside the data directory; ":memory:" keeps them in memory.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres stores solutions in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL picks the database from a sqlite:/// or postgres:// URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		if path, ok := strings.CutPrefix(url, "sqlite:///"); ok {
			c.database = databaseSQLite
			c.dbPath = path
			return
		}
		c.database = databaseURL
		c.dbDSN = url
	}
}

// WithoutPersistence computes every answer afresh and stores nothing.
func WithoutPersistence() Option {
	return func(c *clientConfig) {
		c.database = databaseNone
	}
}

// WithDataDir sets the directory holding the default SQLite file.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithWorkerCount sets how many range shards are mapped concurrently.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithEnumerateBudget caps how many seeds brute-force verification visits.
func WithEnumerateBudget(n uint64) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.enumerateBudget = n
		}
	}
}
