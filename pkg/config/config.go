// Package config loads scan profiles from YAML.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/TheApac/stringcheese/pkg/search"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultMaxInputSize is the input size above which an interactive scan asks
// for confirmation.
const DefaultMaxInputSize = 50000

var (
	formats    = []string{FormatHuman, FormatJSON, FormatSARIF}
	colorModes = []string{ColorAuto, ColorAlways, ColorNever}
)

// Config is a scan profile. Every key is optional in the YAML file.
type Config struct {
	Closing       string `yaml:"closing"`
	MaxFlagLength int    `yaml:"max_flag_length"`
	Fast          bool   `yaml:"fast"`
	MaxStep       int    `yaml:"max_step"`
	Workers       int    `yaml:"workers"`
	First         bool   `yaml:"first"`
	Dedupe        string `yaml:"dedupe"`
	Filter        string `yaml:"filter"`
	Format        string `yaml:"format"`
	Color         string `yaml:"color"`
	MaxInputSize  int    `yaml:"max_input_size"`
}

// Default returns the built-in profile.
func Default() Config {
	return Config{
		Closing:       search.DefaultClosing,
		MaxFlagLength: search.DefaultMaxFlagLength,
		Workers:       1,
		Dedupe:        search.DedupeNone.String(),
		Format:        FormatHuman,
		Color:         ColorAuto,
		MaxInputSize:  DefaultMaxInputSize,
	}
}

// Parse overlays YAML data on the built-in profile and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a profile from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no scan can run with.
func (c Config) Validate() error {
	if c.MaxFlagLength <= 0 {
		return fmt.Errorf("max_flag_length must be positive, got %d", c.MaxFlagLength)
	}
	if c.MaxStep != 0 && c.MaxStep < 2 {
		return fmt.Errorf("max_step must be at least 2, got %d", c.MaxStep)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative, got %d", c.MaxInputSize)
	}
	if _, err := search.ParseDedupeMode(c.Dedupe); err != nil {
		return err
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("unknown format %q (want one of %v)", c.Format, formats)
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("unknown color mode %q (want one of %v)", c.Color, colorModes)
	}
	return nil
}

// Search converts the profile into engine settings.
func (c Config) Search() (search.Config, error) {
	mode, err := search.ParseDedupeMode(c.Dedupe)
	if err != nil {
		return search.Config{}, err
	}
	return search.Config{
		MaxFlagLength:  c.MaxFlagLength,
		Closing:        c.Closing,
		Fast:           c.Fast,
		MaxStep:        c.MaxStep,
		Workers:        max(c.Workers, 1),
		StopAfterFirst: c.First,
		Dedupe:         mode,
		Filter:         c.Filter,
	}, nil
}
