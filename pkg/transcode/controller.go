// Package transcode implements the media transcoding pipeline: a source
// video is downsampled in resolution and frame rate and re-encoded into a
// single H.264 MP4 artifact, with throttled progress reporting and
// guaranteed resource cleanup on every exit path.
package transcode

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/mediapress/pkg/ports"
)

// DefaultFPS is the sampling frame rate used when none is specified.
const DefaultFPS = 15

// Options configures one transcode job.
type Options struct {
	// Quality selects the target bitrate tier. Empty means performance.
	Quality Quality

	// FPS is the output sampling frame rate. Zero means DefaultFPS;
	// negative values are rejected.
	FPS int

	// OnProgress, when set, receives monotonically non-decreasing
	// percentages. Calls are throttled to at least 3 point changes plus a
	// final call at 100.
	OnProgress func(percent int)
}

// Artifact is one finalized transcode result.
type Artifact struct {
	Data       []byte
	Width      int
	Height     int
	DurationMs int64
	FrameCount int64
}

// Controller orchestrates decoder, sampler, surface and encoder into one
// job. It owns every intermediate resource for the duration of a Transcode
// call and releases all of them before returning, on success and failure
// alike.
type Controller struct {
	decoders ports.DecoderFactory
	encoders ports.EncoderFactory
	surfaces ports.SurfaceFactory
	logger   ports.Logger
}

// NewController creates a Controller from its ports.
func NewController(decoders ports.DecoderFactory, encoders ports.EncoderFactory, surfaces ports.SurfaceFactory, logger ports.Logger) *Controller {
	return &Controller{
		decoders: decoders,
		encoders: encoders,
		surfaces: surfaces,
		logger:   logger.WithComponent("transcode"),
	}
}

// Transcode runs one complete job over the source bytes and returns the
// finalized artifact. Exactly one of artifact and error is non-nil; no
// partial artifacts are ever returned.
func (c *Controller) Transcode(ctx context.Context, src []byte, opts Options) (*Artifact, error) {
	if opts.FPS < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFPS, opts.FPS)
	}
	fps := opts.FPS
	if fps == 0 {
		fps = DefaultFPS
	}
	quality := opts.Quality
	if quality == "" {
		quality = DefaultQuality
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}

	sampler := NewSampler(c.logger)
	if err := sampler.Attach(); err != nil {
		return nil, err
	}

	dec, err := c.decoders.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: open decoder: %v", ErrUnsupportedSource, err)
	}
	defer func() {
		if cerr := dec.Close(); cerr != nil {
			c.logger.Warn("Failed to release decoder: %s", cerr)
		}
	}()

	meta, err := dec.LoadMetadata(ctx)
	if err != nil {
		err = c.classify(ctx, err, ErrUnsupportedSource, "load metadata")
		sampler.Fail(err)
		return nil, err
	}

	ts, err := sampler.Begin(meta, fps)
	if err != nil {
		return nil, err
	}
	geom := sampler.Geometry()
	c.logger.Debug("Source %dx%d %dms, target %dx%d at %d fps (%s)",
		meta.Width, meta.Height, meta.DurationMs, geom.Width, geom.Height, fps, quality)

	surface := c.surfaces.NewSurface(geom.Width, geom.Height)
	enc := c.encoders.NewEncoder()

	// The encoder session is started only after the first draw and stopped
	// at most once, on whichever path exits first.
	started := false
	stopped := false
	defer func() {
		if started && !stopped {
			if _, serr := enc.Stop(); serr != nil {
				c.logger.Warn("Failed to stop encoder: %s", serr)
			}
		}
	}()

	for {
		if cerr := ctx.Err(); cerr != nil {
			err := fmt.Errorf("%w: %v", ErrCancelled, cerr)
			sampler.Fail(err)
			return nil, err
		}

		if err := dec.Seek(ctx, ts); err != nil {
			err = c.classify(ctx, err, ErrDecodeFailure, fmt.Sprintf("seek to %dms", ts))
			sampler.Fail(err)
			return nil, err
		}
		if err := sampler.FinishSeek(); err != nil {
			sampler.Fail(err)
			return nil, err
		}

		frame, err := dec.CurrentFrame()
		if err != nil {
			err = c.classify(ctx, err, ErrDecodeFailure, "read frame")
			sampler.Fail(err)
			return nil, err
		}
		surface.DrawFrame(frame)

		if !started {
			if err := enc.Start(geom.Width, geom.Height, fps, quality.Bitrate()); err != nil {
				err = c.classify(ctx, err, ErrEncodeStart, "start encoder")
				sampler.Fail(err)
				return nil, err
			}
			started = true
		}
		if err := enc.WriteFrame(surface.Image(), ts); err != nil {
			err = c.classify(ctx, err, ErrEncodeRuntime, fmt.Sprintf("encode frame at %dms", ts))
			sampler.Fail(err)
			return nil, err
		}

		c.report(sampler, opts.OnProgress)

		next, done, err := sampler.FinishDraw()
		if err != nil {
			sampler.Fail(err)
			return nil, err
		}
		if done {
			break
		}
		ts = next
	}

	data, err := enc.Stop()
	stopped = true
	if err != nil {
		err = c.classify(ctx, err, ErrEncodeRuntime, "stop encoder")
		sampler.Fail(err)
		return nil, err
	}
	if len(data) == 0 {
		err := fmt.Errorf("%w: stop returned no data", ErrEncodeEmpty)
		sampler.Fail(err)
		return nil, err
	}

	if err := sampler.Complete(); err != nil {
		return nil, err
	}
	if opts.OnProgress != nil && sampler.Clock().ShouldReport(100) {
		opts.OnProgress(100)
	}

	frames := sampler.Clock().FrameIndex() + 1
	c.logger.Debug("Encoded %d frames, %d bytes", frames, len(data))

	return &Artifact{
		Data:       data,
		Width:      geom.Width,
		Height:     geom.Height,
		DurationMs: frames * 1000 / int64(fps),
		FrameCount: frames,
	}, nil
}

// report forwards the current progress through the clock's throttle.
func (c *Controller) report(sampler *Sampler, onProgress func(int)) {
	if onProgress == nil {
		return
	}
	p := int(sampler.Progress())
	if sampler.Clock().ShouldReport(p) {
		onProgress(p)
	}
}

// classify maps a stage error onto the pipeline taxonomy, preferring
// ErrCancelled when the failure was caused by context cancellation.
func (c *Controller) classify(ctx context.Context, err error, kind error, stage string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return fmt.Errorf("%w: %s: %v", ErrCancelled, stage, err)
	}
	return fmt.Errorf("%w: %s: %v", kind, stage, err)
}
