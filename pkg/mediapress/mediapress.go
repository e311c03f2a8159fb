// Package mediapress provides a high-level API for transcoding media bytes
// into compressed H.264 MP4 artifacts.
package mediapress

import (
	"context"

	"github.com/user/mediapress/pkg/adapters/ffmpegdecoder"
	"github.com/user/mediapress/pkg/adapters/ffmpegencoder"
	"github.com/user/mediapress/pkg/adapters/ggsurface"
	"github.com/user/mediapress/pkg/adapters/logger"
	"github.com/user/mediapress/pkg/ports"
	"github.com/user/mediapress/pkg/transcode"
)

// Config represents the configuration for one transcode run.
type Config struct {
	// Encoding
	Quality transcode.Quality // Target bitrate tier (default: performance)
	FPS     int               // Output sampling frame rate (default: 15)

	// Tools
	FFmpegDir string // Directory holding ffmpeg/ffprobe ("" = search PATH)

	// Observability
	Logger     ports.Logger      // Pipeline logger (default: no-op)
	OnProgress func(percent int) // Progress callback (optional)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			Quality: transcode.DefaultQuality,
			FPS:     transcode.DefaultFPS,
		},
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if !cfg.Quality.Valid() {
		cfg.Quality = transcode.DefaultQuality
	}
	if cfg.FPS < 1 {
		cfg.FPS = transcode.DefaultFPS
	}

	return cfg
}

// WithQuality sets the target bitrate tier.
func (b *ConfigBuilder) WithQuality(q transcode.Quality) *ConfigBuilder {
	b.config.Quality = q
	return b
}

// WithFPS sets the output sampling frame rate.
// Values below 1 fall back to the default.
func (b *ConfigBuilder) WithFPS(fps int) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithFFmpegDir sets the directory holding the ffmpeg and ffprobe binaries.
func (b *ConfigBuilder) WithFFmpegDir(dir string) *ConfigBuilder {
	b.config.FFmpegDir = dir
	return b
}

// WithLogger sets the pipeline logger.
func (b *ConfigBuilder) WithLogger(l ports.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// WithOnProgress sets the progress callback.
func (b *ConfigBuilder) WithOnProgress(fn func(percent int)) *ConfigBuilder {
	b.config.OnProgress = fn
	return b
}

// newController wires the real adapters for the given config.
func newController(cfg Config) *transcode.Controller {
	if cfg.FFmpegDir != "" {
		ffmpegdecoder.SetToolDir(cfg.FFmpegDir)
		ffmpegencoder.SetFFmpegDir(cfg.FFmpegDir)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoop()
	}

	return transcode.NewController(
		ffmpegdecoder.NewFactory(),
		ffmpegencoder.NewFactory(),
		ggsurface.NewFactory(),
		log,
	)
}

// Transcode runs one transcode over the source bytes with real adapters.
func Transcode(ctx context.Context, src []byte, cfg Config) (*transcode.Artifact, error) {
	return newController(cfg).Transcode(ctx, src, transcode.Options{
		Quality:    cfg.Quality,
		FPS:        cfg.FPS,
		OnProgress: cfg.OnProgress,
	})
}

// NewJob prepares an abandonable transcode job with real adapters.
func NewJob(src []byte, cfg Config) *transcode.Job {
	return transcode.NewJob(newController(cfg), src, transcode.Options{
		Quality:    cfg.Quality,
		FPS:        cfg.FPS,
		OnProgress: cfg.OnProgress,
	})
}
