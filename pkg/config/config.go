// Package config loads ralph-cst settings from defaults, an optional
// config file, RALPH_CST_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Input modes
const (
	ModeSource = "source" // raw C source, tokenized by pkg/lexer
	ModeTokens = "tokens" // token dump produced by an external tokenizer
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the ralph-cst configuration
type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// InputConfig selects how input files are read
type InputConfig struct {
	Mode string `mapstructure:"mode"`
}

// OutputConfig controls tree rendering
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Indent int    `mapstructure:"indent"`
	Color  bool   `mapstructure:"color"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"mode":      "input.mode",
	"format":    "output.format",
	"indent":    "output.indent",
	"color":     "output.color",
	"log-level": "log.level",
}

// Load reads the configuration. path names an explicit config file; when
// empty, ralph-cst.yaml (or .yml/.toml/.json) in the working directory is
// used if present. Flags that were set on the command line override file
// and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("input.mode", ModeSource)
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.indent", 2)
	v.SetDefault("output.color", true)
	v.SetDefault("log.level", "off")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ralph-cst")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RALPH_CST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	switch c.Input.Mode {
	case ModeSource, ModeTokens:
	default:
		return fmt.Errorf("%w: input.mode must be %q or %q, got %q", ErrInvalidConfig, ModeSource, ModeTokens, c.Input.Mode)
	}

	switch c.Output.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%w: output.format must be text, yaml or json, got %q", ErrInvalidConfig, c.Output.Format)
	}

	if c.Output.Indent < 1 {
		return fmt.Errorf("%w: output.indent must be at least 1, got %d", ErrInvalidConfig, c.Output.Indent)
	}
	return nil
}
