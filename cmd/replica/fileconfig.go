package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/eval"
	"github.com/signadot/tony-format/replica/format"

	"github.com/goccy/go-yaml"
)

// FileConfig is the structure of the -config file. Command line flags take
// precedence over it.
type FileConfig struct {
	// Origin is the default origin of script mutations, local or remote.
	Origin string `yaml:"origin"`
	// Format is the output format, json or yaml. Empty means one line per
	// event.
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
	// Filter is an event filter expression.
	Filter string `yaml:"filter"`
	Diff   bool   `yaml:"diff"`
	Delta  bool   `yaml:"delta"`
	Dump   bool   `yaml:"dump"`
	// Gops starts the gops diagnostics agent when serving.
	Gops bool      `yaml:"gops"`
	Log  LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads and validates a configuration file in YAML format.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns a FileConfig with sensible defaults.
func DefaultConfig() *FileConfig {
	return &FileConfig{
		Origin: "local",
		Log:    LogConfig{Level: "warn"},
	}
}

func (c *FileConfig) Validate() error {
	if _, err := replica.ParseOrigin(c.Origin); err != nil {
		return err
	}
	if c.Format != "" {
		if _, err := format.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	if c.Filter != "" {
		if _, err := eval.Compile(c.Filter); err != nil {
			return err
		}
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func (c *FileConfig) origin() replica.Origin {
	o, _ := replica.ParseOrigin(c.Origin)
	return o
}

func (c *FileConfig) level() slog.Level {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(c.Log.Level))
	return lvl
}

func (c *FileConfig) outFormat() *format.Format {
	if c.Format == "" {
		return nil
	}
	f, _ := format.ParseFormat(c.Format)
	return &f
}
