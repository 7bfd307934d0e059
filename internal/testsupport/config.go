package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"prettycue/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// WithBackup enables output.backup.
func WithBackup() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Output.Backup = true
	}
}

// WithLogLevel sets logging.level.
func WithLogLevel(level string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Logging.Level = level
	}
}

// WithLogFile sets logging.file.
func WithLogFile(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Logging.File = path
	}
}

// WriteConfig marshals the defaults plus opts into dir/config.toml and
// returns the file path.
func WriteConfig(t testing.TB, dir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := config.Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	WriteFile(t, path, string(data))
	return path
}
