// Package main provides the CLI entry point for mediapress.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/mediapress/pkg/adapters/logger"
	"github.com/user/mediapress/pkg/adapters/osfilesystem"
	"github.com/user/mediapress/pkg/config"
	"github.com/user/mediapress/pkg/mediapress"
	"github.com/user/mediapress/pkg/ports"
	"github.com/user/mediapress/pkg/transcode"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "mediapress",
		Usage:   "Downsample and re-encode a video into a compact MP4",
		Version: version,
		Commands: []*cli.Command{
			transcodeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func transcodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "transcode",
		Usage:     "Transcode a source video file",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Output MP4 file path"},
			&cli.StringFlag{Name: "quality", Aliases: []string{"q"}, Usage: "Quality tier (performance, low, medium, high, highest)"},
			&cli.IntFlag{Name: "fps", Usage: "Sampling frame rate"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "ffmpeg-dir", Usage: "Directory containing ffmpeg and ffprobe"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "Log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output"},
		},
		Action: runTranscode,
	}
}

func runTranscode(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}
	inputPath := c.Args().First()

	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if c.IsSet("quality") {
		cfg.Quality = c.String("quality")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("ffmpeg-dir") {
		cfg.FFmpegDir = c.String("ffmpeg-dir")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") || cfg.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	fs := osfilesystem.New()
	src, err := fs.ReadFile(inputPath)
	if err != nil {
		log.Error(l10n.F("Failed to read input: %s", err))
		return err
	}

	mcfg := mediapress.NewConfigBuilder().
		WithQuality(transcode.Quality(cfg.Quality)).
		WithFPS(cfg.FPS).
		WithFFmpegDir(cfg.FFmpegDir).
		WithLogger(log).
		WithOnProgress(func(percent int) {
			log.Info(l10n.F("Progress: %d%%", percent))
		}).
		Build()
	job := mediapress.NewJob(src, mcfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if !job.Done() {
			log.Warn(l10n.T("Interrupted, cancelling..."))
			job.Abandon()
		}
	}()

	log.Info(l10n.F("Transcoding %s...", inputPath))
	artifact, err := job.Run(ctx)
	if err != nil {
		log.Error(l10n.F("Transcode failed: %s", err))
		return err
	}

	outputPath := c.String("output")
	if err := fs.WriteFile(outputPath, artifact.Data); err != nil {
		log.Error(l10n.F("Failed to write output: %s", err))
		return err
	}

	log.Info(l10n.F("Output saved to %s", outputPath))
	return nil
}
