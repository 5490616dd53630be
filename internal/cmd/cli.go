// Package cmd implements the split2040 CLI commands.
package cmd

import (
	"github.com/francisrstokes/split2040-fw/internal/config"
	"github.com/francisrstokes/split2040-fw/keyboard"
	"github.com/francisrstokes/split2040-fw/machines/split2040"
)

// CLI is the root kong grammar.
type CLI struct {
	Log config.LogConfig `embed:"" prefix:"log."`

	ConfigFile string `name:"config" help:"Path to a CLI config file (JSON/YAML/TOML)" env:"SPLIT2040_CONFIG"`

	Run       Run           `cmd:"" help:"Drive the firmware core interactively in the terminal"`
	Play      Play          `cmd:"" help:"Run a scan script through the core and print the reports"`
	Check     Check         `cmd:"" help:"Validate a board profile and the USB descriptor set"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Profile file helpers"`
}

// loadCoreConfig resolves the board configuration: a profile file when
// given, the built-in split2040 tables otherwise.
func loadCoreConfig(profile string) (keyboard.Config, error) {
	if profile == "" {
		return split2040.Config()
	}
	p, err := config.Load(profile)
	if err != nil {
		return keyboard.Config{}, err
	}
	return p.Build()
}
