package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// App Config
type Config struct {
	DebugMode   bool   `toml:"debug" yaml:"debug"`
	PrintErrors bool   `toml:"print_errors" yaml:"print_errors"`
	Format      string `toml:"format" yaml:"format"`
	Color       bool   `toml:"color" yaml:"color"`
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

func Default() Config {
	return Config{
		PrintErrors: true,
		Format:      FormatText,
		Color:       true,
		Prompt:      ">> ",
		HistoryFile: filepath.Join(os.TempDir(), ".pascal-validator"),
	}
}

// Load reads a TOML file, or YAML when the extension is .yaml or .yml, on
// top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing yaml config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing toml config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want %q or %q)", c.Format, FormatText, FormatYAML)
	}
	if c.HistoryFile == "" {
		return fmt.Errorf("history_file must not be empty")
	}
	return nil
}

// Setup program flags
func SetupFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.DebugMode, "debug", "d", cfg.DebugMode, "Run in debug mode")
	fs.BoolVarP(&cfg.PrintErrors, "print-errors", "p", cfg.PrintErrors, "Print Errors")
	fs.StringVarP(&cfg.Format, "format", "f", cfg.Format, "Report format (text or yaml)")
	fs.Bool("no-color", !cfg.Color, "Disable colored output")
}

// ApplyFlags copies every flag the user set explicitly onto cfg, so flags
// win over values loaded from a file.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "debug":
			cfg.DebugMode, err = fs.GetBool("debug")
		case "print-errors":
			cfg.PrintErrors, err = fs.GetBool("print-errors")
		case "format":
			cfg.Format, err = fs.GetString("format")
		case "no-color":
			var noColor bool
			noColor, err = fs.GetBool("no-color")
			cfg.Color = !noColor
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}
