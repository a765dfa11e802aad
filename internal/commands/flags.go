package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/recur/internal/core/config"
	"github.com/hay-kot/recur/internal/recur"
	"github.com/hay-kot/recur/internal/store/jsonfile"
	"github.com/hay-kot/recur/internal/ticktick"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "recur", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "recur")
}

// Store returns the processed-record store at the configured state path.
func (f *Flags) Store() *jsonfile.ProcessedStore {
	return jsonfile.NewProcessedStore(f.Config.StatePath())
}

// Client builds the TickTick API client, failing when no token is set.
func (f *Flags) Client() (*ticktick.Client, error) {
	if err := f.Config.RequireToken(); err != nil {
		return nil, err
	}

	opts := []ticktick.Option{ticktick.WithTimeout(f.Config.API.Timeout.Std())}
	if f.Config.API.BaseURL != "" {
		opts = append(opts, ticktick.WithBaseURL(f.Config.API.BaseURL))
	}

	return ticktick.New(f.Config.Token, opts...), nil
}

// Engine wires the duplication engine from the loaded config.
func (f *Flags) Engine(dryRun bool) (*recur.Engine, error) {
	client, err := f.Client()
	if err != nil {
		return nil, err
	}

	return recur.New(client, f.Store(), f.Config.FilterRules(),
		recur.WithLogger(log.With().Str("component", "engine").Logger()),
		recur.WithDryRun(dryRun),
	), nil
}
