// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultWorkerCount     = 1
	DefaultEnumerateBudget = 10_000_000
	DefaultDBFile          = "rangemap.db"
	DefaultDataSubdir      = ".rangemap"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the effective application configuration.
type AppConfig struct {
	host             string
	port             int
	dataDir          string
	dbURL            string
	logLevel         string
	logFormat        LogFormat
	apiKeys          []string
	corsOrigins      []string
	workerCount      int
	enumerateBudget  uint64
	persistSolutions bool
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataSubdir
	}
	return filepath.Join(home, DefaultDataSubdir)
}

// DefaultDBURL returns the SQLite URL inside a data directory.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:             DefaultHost,
		port:             DefaultPort,
		dataDir:          dataDir,
		dbURL:            DefaultDBURL(dataDir),
		logLevel:         DefaultLogLevel,
		logFormat:        LogFormatPretty,
		apiKeys:          []string{},
		corsOrigins:      []string{},
		workerCount:      DefaultWorkerCount,
		enumerateBudget:  DefaultEnumerateBudget,
		persistSolutions: true,
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns host:port.
func (c AppConfig) Addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level name.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the keys accepted on mutating HTTP routes.
func (c AppConfig) APIKeys() []string {
	result := make([]string, len(c.apiKeys))
	copy(result, c.apiKeys)
	return result
}

// CORSAllowedOrigins returns the allowed CORS origins. Empty disables CORS.
func (c AppConfig) CORSAllowedOrigins() []string {
	result := make([]string, len(c.corsOrigins))
	copy(result, c.corsOrigins)
	return result
}

// WorkerCount returns how many range shards are mapped in parallel.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// EnumerateBudget returns the most seeds the brute-force verifier may visit.
func (c AppConfig) EnumerateBudget() uint64 { return c.enumerateBudget }

// PersistSolutions reports whether answers are stored.
func (c AppConfig) PersistSolutions() bool { return c.persistSolutions }

// EnsureDataDir creates the data directory.
func (c AppConfig) EnsureDataDir() error {
	_, err := PrepareDataDir(c.dataDir)
	return err
}

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory. A database URL that still points at
// the old default moves along with it.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		if c.dbURL == "" || c.dbURL == DefaultDBURL(c.dataDir) {
			c.dbURL = DefaultDBURL(dir)
		}
		c.dataDir = dir
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithCORSAllowedOrigins sets the allowed CORS origins.
func WithCORSAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithWorkerCount sets the number of parallel range workers.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithEnumerateBudget sets the brute-force verification budget.
func WithEnumerateBudget(n uint64) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.enumerateBudget = n
		}
	}
}

// WithPersistSolutions enables or disables storing answers.
func WithPersistSolutions(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.persistSolutions = enabled }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a copy with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes describing the configuration.
// Credentials are masked and API keys are shown as a count.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.Int("cors_origins_count", len(c.corsOrigins)),
		slog.Int("worker_count", c.workerCount),
		slog.Uint64("enumerate_budget", c.enumerateBudget),
		slog.Bool("persist_solutions", c.persistSolutions),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	u, err := url.Parse(c.dbURL)
	if err != nil {
		return "(unparseable)"
	}
	return u.Redacted()
}

// ParseList splits a comma-separated value, dropping blanks.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
