// Package config handles configuration loading and validation for recur.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/recur/internal/core/filter"
)

// EnvToken is the environment variable holding the TickTick access token.
// It takes precedence over the config file so the secret can stay out of
// version-controlled config.
const EnvToken = "TICKTICK_ACCESS_TOKEN"

const (
	defaultPollInterval = 5 * time.Minute
	defaultAPITimeout   = 30 * time.Second
	stateFileName       = "processed.json"
)

// Duration wraps time.Duration with YAML support for values like "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// FilterConfig holds the eligibility rules from the config file.
type FilterConfig struct {
	// NameContains filters titles by case-insensitive substring.
	NameContains string `yaml:"name_contains"`
	// Tags requires at least one matching tag when non-empty.
	Tags []string `yaml:"tags"`
	// Projects restricts to project names matching any glob pattern.
	Projects []string `yaml:"projects"`
	// Window is the completion recency window (default 24h).
	Window Duration `yaml:"window"`
}

// APIConfig configures the TickTick client.
type APIConfig struct {
	// BaseURL overrides the production endpoint, mainly for testing.
	BaseURL string `yaml:"base_url"`
	// Timeout is the per-request timeout.
	Timeout Duration `yaml:"timeout"`
}

// Config holds the application configuration.
type Config struct {
	// Token is the TickTick OAuth access token. Prefer EnvToken over
	// writing it here.
	Token        string       `yaml:"token"`
	Filter       FilterConfig `yaml:"filter"`
	PollInterval Duration     `yaml:"poll_interval"`
	API          APIConfig    `yaml:"api"`
	// StateFile overrides where processed-task state is kept. Defaults to
	// <data-dir>/processed.json.
	StateFile string `yaml:"state_file"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Filter: FilterConfig{
			Window: Duration(filter.DefaultWindow),
		},
		PollInterval: Duration(defaultPollInterval),
		API: APIConfig{
			Timeout: Duration(defaultAPITimeout),
		},
	}
}

// Load reads configuration from the given path and sets the data
// directory. A missing config file is fine; defaults apply. The access
// token env var always wins over the file.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if tok := os.Getenv(EnvToken); tok != "" {
		cfg.Token = tok
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Filter.Window <= 0 {
		c.Filter.Window = Duration(filter.DefaultWindow)
	}
	if c.PollInterval <= 0 {
		c.PollInterval = Duration(defaultPollInterval)
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = Duration(defaultAPITimeout)
	}
}

// FilterRules converts the file representation into the filter predicate
// configuration.
func (c *Config) FilterRules() filter.Config {
	return filter.Config{
		NameContains: c.Filter.NameContains,
		Tags:         c.Filter.Tags,
		Projects:     c.Filter.Projects,
		Window:       c.Filter.Window.Std(),
	}
}

// StatePath returns the processed-state file location.
func (c *Config) StatePath() string {
	if c.StateFile != "" {
		return c.StateFile
	}
	return filepath.Join(c.DataDir, stateFileName)
}

// RequireToken errors when no access token is configured. Commands that
// talk to the API call this up front for a clear operator message.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return fmt.Errorf("no access token configured: set %s or the token field in the config file", EnvToken)
	}
	return nil
}
