// Package config loads and validates the tool configuration.
package config

import (
	"os"
	"path/filepath"
)

// Config is the root configuration of the reportexec tool.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Plugins PluginsConfig `mapstructure:"plugins"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// PluginsConfig locates the installed plugin repository.
type PluginsConfig struct {
	RepositoryDir string `mapstructure:"repository_dir" validate:"required"`
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Plugins: PluginsConfig{
			RepositoryDir: filepath.Join(DefaultHomeDir(), "plugins"),
		},
	}
}

// DefaultHomeDir returns the default tool home directory,
// ~/.reportexec, falling back to the working directory when the home
// directory cannot be determined.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reportexec"
	}
	return filepath.Join(home, ".reportexec")
}

// DefaultConfigPath returns the config file path under the given home
// directory.
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}
