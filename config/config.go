// Package config loads the bosy configuration file.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jabaum/bosy/internal/logging"
	"github.com/jabaum/bosy/translator"
)

// Formats are the artifact formats the render command can write.
var Formats = []string{"aiger", "dot", "smv", "verilog"}

// Strategies are the supported bound search strategies.
var Strategies = []string{"linear", "exponential"}

type Config struct {
	LogLevel   string     `yaml:"log_level" mapstructure:"log_level"`
	Translator Translator `yaml:"translator" mapstructure:"translator"`
	Search     Search     `yaml:"search" mapstructure:"search"`
	Render     Render     `yaml:"render" mapstructure:"render"`
}

type Translator struct {
	Name    string        `yaml:"name" mapstructure:"name"`
	Path    string        `yaml:"path" mapstructure:"path"`
	HOA     bool          `yaml:"hoa" mapstructure:"hoa"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Search struct {
	Strategy string        `yaml:"strategy" mapstructure:"strategy"`
	MaxBound int           `yaml:"max_bound" mapstructure:"max_bound"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Render struct {
	Formats    []string `yaml:"formats" mapstructure:"formats"`
	OutputDir  string   `yaml:"output_dir" mapstructure:"output_dir"`
	ASCIIAiger bool     `yaml:"ascii_aiger" mapstructure:"ascii_aiger"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Translator: Translator{
			Name:    string(translator.LTL3BA),
			Timeout: time.Minute,
		},
		Search: Search{
			Strategy: "linear",
			MaxBound: 32,
		},
		Render: Render{
			Formats:   []string{"aiger"},
			OutputDir: ".",
		},
	}
}

// LoadFile reads a YAML configuration file on top of Default.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of Default. Durations are written as
// strings ("30s"), formats may be a list or a comma-separated string, and
// unknown keys are errors.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("yaml parse: %w", err)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that names refer to known translators, strategies and
// formats.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	tool, err := translator.ParseTool(c.Translator.Name)
	if err != nil {
		return fmt.Errorf("translator.name: %w", err)
	}
	if c.Translator.HOA && tool != translator.Spot {
		return fmt.Errorf("translator.hoa requires the spot translator")
	}
	if c.Translator.Timeout < 0 || c.Search.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if !slices.Contains(Strategies, c.Search.Strategy) {
		return fmt.Errorf("search.strategy: unknown strategy %q", c.Search.Strategy)
	}
	if c.Search.MaxBound < 0 {
		return fmt.Errorf("search.max_bound must not be negative")
	}
	for _, f := range c.Render.Formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("render.formats: unknown format %q", f)
		}
	}
	return nil
}

// TranslatorPath returns the configured translator executable, or the
// tool's default name when none is set.
func (c Config) TranslatorPath() string {
	if c.Translator.Path != "" {
		return c.Translator.Path
	}
	tool, err := translator.ParseTool(c.Translator.Name)
	if err != nil {
		return c.Translator.Name
	}
	return tool.DefaultPath()
}
