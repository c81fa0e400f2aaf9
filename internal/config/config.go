// Package config holds the preview render settings shared by the CLI,
// the preview pipeline and the scroll simulator.
package config

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ScenePath    string  `mapstructure:"scene" yaml:"scene"`
	OutputVideo  string  `mapstructure:"output" yaml:"output"`
	Width        int     `mapstructure:"width" yaml:"width"`
	Height       int     `mapstructure:"height" yaml:"height"`
	FPS          int     `mapstructure:"fps" yaml:"fps"`
	Workers      int     `mapstructure:"workers" yaml:"workers"`
	Tail         float64 `mapstructure:"tail" yaml:"tail"`     // hold after the last event, seconds
	Cycles       float64 `mapstructure:"cycles" yaml:"cycles"` // masthead loops kept running after the intro, seconds
	Backdrop     string  `mapstructure:"backdrop" yaml:"backdrop"`
	DPI          int     `mapstructure:"dpi" yaml:"dpi"`
	Preset       string  `mapstructure:"preset" yaml:"preset"`
	VideoEncoder string  `mapstructure:"encoder" yaml:"encoder"`
	Quality      int     `mapstructure:"quality" yaml:"quality"`
	ShowStats    bool    `mapstructure:"stats" yaml:"stats"`
	Seed         int64   `mapstructure:"seed" yaml:"seed"`   // 0 seeds from the clock
	Scrub        float64 `mapstructure:"scrub" yaml:"scrub"` // scroll smoothing lag, seconds
	Verbose      bool    `mapstructure:"verbose" yaml:"verbose"`
	BuildVersion string  `mapstructure:"-" yaml:"-"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Width:        1280,
		Height:       720,
		FPS:          30,
		Workers:      4,
		Tail:         1,
		Cycles:       6,
		DPI:          150,
		VideoEncoder: "libx264",
		Scrub:        1,
	}
}

// Presets are the named output formats.
var Presets = map[string][2]int{
	"16:9": {1280, 720},
	"9:16": {720, 1280},
	"4:5":  {1080, 1350},
}

// ApplyPreset overrides the frame size with a named preset. An empty name
// keeps the current size.
func (c *Config) ApplyPreset(name string) error {
	if name == "" {
		return nil
	}
	size, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	c.Preset = name
	c.Width, c.Height = size[0], size[1]
	return nil
}

// DefaultQuality returns the quality value suited to the encoder: a
// bitrate factor for VideoToolbox, CQ for NVENC, CRF otherwise.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// Validate rejects settings the pipeline cannot render.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Width%2 != 0 || c.Height%2 != 0:
		return fmt.Errorf("%w: yuv420p needs even dimensions, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.Tail < 0:
		return fmt.Errorf("%w: tail %f", ErrInvalidConfig, c.Tail)
	case c.Cycles < 0:
		return fmt.Errorf("%w: cycles %f", ErrInvalidConfig, c.Cycles)
	case c.Scrub < 0:
		return fmt.Errorf("%w: scrub %f", ErrInvalidConfig, c.Scrub)
	case c.Quality < 0:
		return fmt.Errorf("%w: quality %d", ErrInvalidConfig, c.Quality)
	}
	return nil
}
