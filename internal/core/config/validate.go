package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// minPollInterval guards against hammering the API in watch mode.
const minPollInterval = 30 * time.Second

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateIntervals(),
		c.validateFilter(),
	)
}

// ValidateDeep runs Validate plus I/O checks against the config file and
// data directory. Used by 'recur config validate'.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("state_file", c.StatePath(), isFileOrNotExist),
	)
}

func (c *Config) validateIntervals() error {
	var errs criterio.FieldErrorsBuilder

	if c.PollInterval.Std() < minPollInterval {
		errs = errs.Append("poll_interval", fmt.Errorf("must be at least %s, got %s", minPollInterval, c.PollInterval.Std()))
	}
	if c.Filter.Window.Std() <= 0 {
		errs = errs.Append("filter.window", fmt.Errorf("must be positive"))
	}

	return errs.ToError()
}

func (c *Config) validateFilter() error {
	var errs criterio.FieldErrorsBuilder

	for i, pattern := range c.Filter.Projects {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("filter.projects[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}

	for i, tag := range c.Filter.Tags {
		if strings.TrimSpace(tag) == "" {
			errs = errs.Append(fmt.Sprintf("filter.tags[%d]", i), fmt.Errorf("tag is empty"))
		}
	}

	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// isFileOrNotExist validates that a path is a regular file or doesn't exist.
func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on first record
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("exists but is a directory")
	}
	return nil
}
