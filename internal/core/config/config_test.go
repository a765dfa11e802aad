package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/recur/internal/core/filter"
)

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, filter.DefaultWindow, cfg.Filter.Window.Std())
	assert.Equal(t, 5*time.Minute, cfg.PollInterval.Std())
	assert.Equal(t, 30*time.Second, cfg.API.Timeout.Std())
	assert.Equal(t, filepath.Join(dataDir, "processed.json"), cfg.StatePath())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filter.DefaultWindow, cfg.Filter.Window.Std())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
token: file-token
filter:
  name_contains: "zap:"
  tags: [daily, recurring]
  projects: ["Work*"]
  window: 48h
poll_interval: 10m
state_file: /tmp/custom-state.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "zap:", cfg.Filter.NameContains)
	assert.Equal(t, []string{"daily", "recurring"}, cfg.Filter.Tags)
	assert.Equal(t, []string{"Work*"}, cfg.Filter.Projects)
	assert.Equal(t, 48*time.Hour, cfg.Filter.Window.Std())
	assert.Equal(t, 10*time.Minute, cfg.PollInterval.Std())
	assert.Equal(t, "/tmp/custom-state.json", cfg.StatePath())
}

func TestLoad_EnvTokenWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: file-token\n"), 0o600))

	t.Setenv(EnvToken, "env-token")

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := Load(path, dir)
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval: soon\n"), 0o600))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse duration")
}

func TestValidate_PollIntervalTooShort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PollInterval = Duration(time.Second)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll_interval")
}

func TestValidate_BadProjectGlob(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter.Projects = []string{"[unclosed"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter.projects[0]")
}

func TestValidate_EmptyTag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter.Tags = []string{"daily", "  "}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter.tags[1]")
}

func TestValidateDeep_StateFileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.StateFile = dir // a directory, not a file

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state_file")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Filter.Tags = []string{"daily"}
	cfg.Filter.Window = Duration(36 * time.Hour)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"daily"}, loaded.Filter.Tags)
	assert.Equal(t, 36*time.Hour, loaded.Filter.Window.Std())
}

func TestDuration_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D Duration `yaml:"d"`
	}{D: Duration(90 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, "d: 1h30m0s\n", string(out))
}

func TestRequireToken(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.RequireToken())

	cfg.Token = "tok"
	require.NoError(t, cfg.RequireToken())
}
