package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, DefaultDataDir(), cfg.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join(DefaultDataDir(), "rangemap.db"), cfg.DBURL())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Empty(t, cfg.APIKeys())
	assert.Empty(t, cfg.CORSAllowedOrigins())
	assert.Equal(t, 1, cfg.WorkerCount())
	assert.Equal(t, uint64(DefaultEnumerateBudget), cfg.EnumerateBudget())
	assert.True(t, cfg.PersistSolutions())
}

func TestWithDataDir_MovesDefaultDBURL(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithDataDir("/srv/rangemap"))
	assert.Equal(t, "sqlite:////srv/rangemap/rangemap.db", cfg.DBURL())

	custom := NewAppConfigWithOptions(
		WithDBURL("postgres://u:p@db/rangemap"),
		WithDataDir("/srv/rangemap"),
	)
	assert.Equal(t, "postgres://u:p@db/rangemap", custom.DBURL())
}

func TestApply_DoesNotMutateReceiver(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithPort(9000), WithWorkerCount(4), WithPersistSolutions(false))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Equal(t, 9000, changed.Port())
	assert.Equal(t, 4, changed.WorkerCount())
	assert.False(t, changed.PersistSolutions())
}

func TestWithWorkerCount_IgnoresNonPositive(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithWorkerCount(0), WithEnumerateBudget(0))

	assert.Equal(t, DefaultWorkerCount, cfg.WorkerCount())
	assert.Equal(t, uint64(DefaultEnumerateBudget), cfg.EnumerateBudget())
}

func TestAPIKeys_ReturnsCopy(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithAPIKeys([]string{"a"}))
	keys := cfg.APIKeys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, cfg.APIKeys())
}

func TestMaskedDBURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"sqlite:///tmp/x.db", "sqlite:///tmp/x.db"},
		{"postgres://user:secret@db:5432/rangemap", "postgres://user:xxxxx@db:5432/rangemap"},
		{"", "(default)"},
	}
	for _, tt := range tests {
		cfg := NewAppConfigWithOptions(WithDBURL(tt.url))
		assert.NotContains(t, cfg.maskedDBURL(), "secret")
		assert.Equal(t, tt.want, cfg.maskedDBURL())
	}
}

func TestLogAttrs(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithAPIKeys([]string{"k1", "k2"}))

	attrs := map[string]slog.Value{}
	for _, a := range cfg.LogAttrs() {
		attrs[a.Key] = a.Value
	}
	assert.Equal(t, int64(2), attrs["api_keys_count"].Int64())
	assert.Equal(t, "0.0.0.0:8080", attrs["addr"].String())
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{}, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a , ,b,"))
}
