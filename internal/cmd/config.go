package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/francisrstokes/split2040-fw/internal/config"
	"github.com/francisrstokes/split2040-fw/internal/configpaths"
)

// ConfigCommand groups profile-file subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a starter profile to edit"`
}

// ConfigInit writes a starter profile in the chosen format.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	dest := c.Output
	if dest == "" {
		dest = "split2040." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	profile := config.Starter()
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(profile, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(profile)
	case "toml":
		data, err = toml.Marshal(profile)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}
