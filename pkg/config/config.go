// Package config loads the optional render configuration file, TOML or YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-batch-raytracer/pkg/renderer"
)

// Config is the render configuration. Command-line flags override file values.
type Config struct {
	Render Render `toml:"render" yaml:"render"`
	Log    Log    `toml:"log" yaml:"log"`
}

// Render holds the trace and output settings
type Render struct {
	MaxDistance float64 `toml:"max_distance" yaml:"max_distance"`
	Format      string  `toml:"format" yaml:"format"`
	Output      string  `toml:"output" yaml:"output"` // "-" is stdout
}

// Log holds the logging settings
type Log struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn or error
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Render: Render{
			MaxDistance: renderer.DefaultTraceConfig().MaxDistance,
			Format:      string(renderer.FormatPPM),
			Output:      "-",
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads a config file over the defaults. Files ending in .yaml or .yml
// are YAML, anything else TOML. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(filename string) (Config, error) {
	cfg := Default()

	file, err := os.Open(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = decodeYAML(file, &cfg)
	default:
		err = decodeTOML(file, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}

	return cfg, cfg.Validate()
}

func decodeTOML(r io.Reader, cfg *Config) error {
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(cfg)

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return errors.New(strict.String())
	}
	return err
}

func decodeYAML(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	if !(c.Render.MaxDistance > 0) {
		return fmt.Errorf("render.max_distance must be positive, got %g", c.Render.MaxDistance)
	}
	if _, err := renderer.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("render.format: %w", err)
	}
	if c.Render.Output == "" {
		return errors.New("render.output must not be empty")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level name
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// TraceConfig returns the renderer settings
func (c Config) TraceConfig() renderer.TraceConfig {
	return renderer.TraceConfig{MaxDistance: c.Render.MaxDistance}
}
