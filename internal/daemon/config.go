// Package daemon manages the taskomat daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration. The Todoist token lives here, not
// in ambient environment state: it is read once at load time and injected
// into the client, so tests run against fake collaborators.
type Config struct {
	API       APIConfig       `toml:"api"`
	Todoist   TodoistConfig   `toml:"todoist"`
	Parser    ParserConfig    `toml:"parser"`
	History   HistoryConfig   `toml:"history"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TodoistConfig controls the external task API client.
type TodoistConfig struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// ParserConfig controls the command interpretation pipeline.
type ParserConfig struct {
	Locale       string `toml:"locale"`
	PreferFuture bool   `toml:"prefer_future"`
	VocabFile    string `toml:"vocab_file"`
}

// HistoryConfig controls submission history persistence.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Parser: ParserConfig{
			Locale:       "pl",
			PreferFuture: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads config from ~/.taskomat/config.toml, falling back to
// defaults. TODOIST_API_TOKEN overrides the configured token — this is the
// only environment read, done once here.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(taskomatHome(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if token := os.Getenv("TODOIST_API_TOKEN"); token != "" {
		cfg.Todoist.Token = token
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.taskomat/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(taskomatHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// taskomatHome returns the taskomat data directory.
func taskomatHome() string {
	if env := os.Getenv("TASKOMAT_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".taskomat")
}

// Home is exported for use by other packages.
func Home() string {
	return taskomatHome()
}
