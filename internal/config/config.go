// Package config resolves the configuration directory and loads tunables
// from config.yaml and TASKMGR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"taskmgr/internal/service"
)

const (
	// AppName is the application directory name.
	AppName = "taskmgr"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.yaml"

	// DataFile is the default task file name.
	DataFile = "tasks.txt"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	envPrefix = "TASKMGR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-" mapstructure:"-"`

	// DataFile is the task file path. Empty means <Dir>/tasks.txt.
	DataFile string `yaml:"data_file" mapstructure:"data_file"`

	// MaxTasks is the maximum number of tasks.
	MaxTasks int `yaml:"max_tasks" mapstructure:"max_tasks"`

	// MaxDescriptionLen is the maximum description length in bytes.
	MaxDescriptionLen int `yaml:"max_description_len" mapstructure:"max_description_len"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// Debug enables debug logging.
	Debug bool `yaml:"-" mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-" mapstructure:"-"`
}

// Default returns the built-in settings for dir.
func Default(dir string) *Config {
	return &Config{
		Dir:               dir,
		MaxTasks:          service.DefaultLimits.MaxTasks,
		MaxDescriptionLen: service.DefaultLimits.MaxDescriptionLen,
		LogLevel:          "info",
	}
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskmgr or $HOME/.config/taskmgr.
// A missing config.yaml is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("max_tasks", cfg.MaxTasks)
	v.SetDefault("max_description_len", cfg.MaxDescriptionLen)
	v.SetDefault("log_level", cfg.LogLevel)

	path := cfg.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the limits are usable.
func (c *Config) Validate() error {
	if c.MaxTasks < 1 {
		return fmt.Errorf("max_tasks must be positive, got %d", c.MaxTasks)
	}
	if c.MaxDescriptionLen < 1 {
		return fmt.Errorf("max_description_len must be positive, got %d", c.MaxDescriptionLen)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Limits returns the store bounds.
func (c *Config) Limits() service.Limits {
	return service.Limits{
		MaxTasks:          c.MaxTasks,
		MaxDescriptionLen: c.MaxDescriptionLen,
	}
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the task file path.
func (c *Config) DataPath() string {
	if strings.TrimSpace(c.DataFile) == "" {
		return filepath.Join(c.Dir, DataFile)
	}
	return c.DataFile
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// EnsureDataDir creates the directory holding the task file.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(filepath.Dir(c.DataPath()), 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
