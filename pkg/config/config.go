// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/mediapress/pkg/transcode"
)

// Config represents the full configuration for mediapress.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Transcoding
	Quality string `yaml:"quality"`
	FPS     int    `yaml:"fps"`

	// Tools
	FFmpegDir string `yaml:"ffmpeg_dir"`

	// Storage
	StoreDir string `yaml:"store_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Quality:  string(transcode.DefaultQuality),
		FPS:      transcode.DefaultFPS,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline would reject.
func (c Config) Validate() error {
	if c.FPS < 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Quality != "" && !transcode.Quality(c.Quality).Valid() {
		return fmt.Errorf("unknown quality tier %q", c.Quality)
	}
	return nil
}

// ToOptions converts the configuration to transcode options. The progress
// callback is wired by the caller.
func (c Config) ToOptions() transcode.Options {
	return transcode.Options{
		Quality: transcode.Quality(c.Quality),
		FPS:     c.FPS,
	}
}
