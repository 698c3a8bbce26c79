// Package config loads optional YAML tuning for the weaving engine.
// Everything has a default; a config file only overrides what it names.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quietpine/murmur/pkg/weave"
)

const (
	defaultClipsDir = "clips"
	defaultOutDir   = "."
	defaultPrefix   = "soundscape_"
)

// Config is the resolved tool configuration: where clips live, where
// output goes, and how the engine is tuned.
type Config struct {
	ClipsDir         string    `yaml:"clips_dir"`
	OutDir           string    `yaml:"out_dir"`
	Prefix           string    `yaml:"prefix"`
	SampleRate       int       `yaml:"sample_rate"`
	PanSequence      []float64 `yaml:"pan_sequence"`
	MinPanSeparation float64   `yaml:"min_pan_separation"`
	OverlapMin       float64   `yaml:"overlap_min"`
	OverlapMax       float64   `yaml:"overlap_max"`
	FadeInMs         int       `yaml:"fade_in_ms"`
	FadeOutMs        int       `yaml:"fade_out_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	engine := weave.DefaultConfig()
	return Config{
		ClipsDir:         defaultClipsDir,
		OutDir:           defaultOutDir,
		Prefix:           defaultPrefix,
		SampleRate:       engine.SampleRate,
		PanSequence:      engine.PanSequence,
		MinPanSeparation: engine.MinPanSeparation,
		OverlapMin:       engine.OverlapMin,
		OverlapMax:       engine.OverlapMax,
		FadeInMs:         int(engine.FadeIn.Milliseconds()),
		FadeOutMs:        int(engine.FadeOut.Milliseconds()),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects settings the engine cannot honor.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if len(c.PanSequence) == 0 {
		return fmt.Errorf("pan_sequence must not be empty")
	}
	for _, pan := range c.PanSequence {
		if pan < -1 || pan > 1 {
			return fmt.Errorf("pan position %v outside [-1, 1]", pan)
		}
	}
	if c.OverlapMin <= 0 || c.OverlapMax >= 1 || c.OverlapMin > c.OverlapMax {
		return fmt.Errorf("overlap bounds must satisfy 0 < min <= max < 1, got [%v, %v]", c.OverlapMin, c.OverlapMax)
	}
	if c.MinPanSeparation < 0 {
		return fmt.Errorf("min_pan_separation must not be negative, got %v", c.MinPanSeparation)
	}
	if c.FadeInMs < 0 || c.FadeOutMs < 0 {
		return fmt.Errorf("fade lengths must not be negative")
	}
	return nil
}

// Engine converts the resolved configuration into engine tuning.
func (c Config) Engine() weave.Config {
	return weave.Config{
		PanSequence:      c.PanSequence,
		MinPanSeparation: c.MinPanSeparation,
		OverlapMin:       c.OverlapMin,
		OverlapMax:       c.OverlapMax,
		SampleRate:       c.SampleRate,
		FadeIn:           time.Duration(c.FadeInMs) * time.Millisecond,
		FadeOut:          time.Duration(c.FadeOutMs) * time.Millisecond,
	}
}
