package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Show effective configuration" }
func (c *ConfigCmd) Usage() string     { return "taskmgr config [common flags]" }
func (c *ConfigCmd) NeedsStore() bool  { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

// effectiveConfig is what the config command prints.
type effectiveConfig struct {
	ConfigDir         string `yaml:"config_dir"`
	ConfigFile        string `yaml:"config_file"`
	DataFile          string `yaml:"data_file"`
	MaxTasks          int    `yaml:"max_tasks"`
	MaxDescriptionLen int    `yaml:"max_description_len"`
	LogLevel          string `yaml:"log_level"`
	LoggedIn          bool   `yaml:"logged_in"`
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	data, err := yaml.Marshal(effectiveConfig{
		ConfigDir:         cfg.Dir,
		ConfigFile:        cfg.ConfigPath(),
		DataFile:          cfg.DataPath(),
		MaxTasks:          cfg.MaxTasks,
		MaxDescriptionLen: cfg.MaxDescriptionLen,
		LogLevel:          cfg.LogLevel,
		LoggedIn:          cfg.HasToken(),
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to marshal config: %v\n", err)
		return exitcode.UserError
	}

	fmt.Fprint(out, string(data))
	return exitcode.Success
}
