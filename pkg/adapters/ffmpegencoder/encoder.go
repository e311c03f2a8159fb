// Package ffmpegencoder implements ports.StreamEncoder on an external
// ffmpeg process. Frames are streamed as raw RGBA planes over stdin and
// finalized into a single H.264 MP4 with faststart layout. The output
// container/codec pairing is fixed for the whole system.
package ffmpegencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/user/mediapress/pkg/ports"
)

// Encoder is one encoding session. Sessions are created per job via
// Factory and must not be reused after Stop.
type Encoder struct {
	mu sync.Mutex

	width  int
	height int

	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	tempPath string

	started    bool
	stopped    bool
	frameCount int
	output     []byte
}

// New creates an idle encoder session.
func New() *Encoder {
	return &Encoder{}
}

// BuildArgs returns the ffmpeg argument list for the given session
// parameters. Split out for testability.
func BuildArgs(width, height, fps, bitrateBps int, outputPath string) []string {
	return []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%d", fps),
		"-i", "pipe:0",
		"-an", // audio is dropped
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-b:v", fmt.Sprintf("%d", bitrateBps),
		"-profile:v", "baseline",
		"-level", "3.1",
		"-movflags", "+faststart",
		outputPath,
	}
}

// Start spawns the ffmpeg process for this session.
func (e *Encoder) Start(width, height, fps, bitrateBps int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}
	if width <= 0 || height <= 0 || fps <= 0 {
		return fmt.Errorf("ffmpegencoder: invalid session %dx%d at %d fps", width, height, fps)
	}

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp("", "mediapress_*.mp4")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	e.cmd = exec.Command(ffmpegPath, BuildArgs(width, height, fps, bitrateBps, e.tempPath)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	e.width = width
	e.height = height
	e.started = true
	return nil
}

// WriteFrame streams one frame to the session.
func (e *Encoder) WriteFrame(img image.Image, timestampMs int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started || e.stopped {
		return ErrNotStarted
	}

	// rgba.Pix streams to ffmpeg verbatim, so the fast path also requires a
	// zero origin and a packed stride; sub-images and padded buffers would
	// leak row padding into the stream.
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds().Dx() != e.width || rgba.Bounds().Dy() != e.height ||
		rgba.Stride != 4*e.width || rgba.Rect.Min != (image.Point{}) {
		converted := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
		draw.Draw(converted, converted.Bounds(), img, img.Bounds().Min, draw.Src)
		rgba = converted
	}

	if _, err := e.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("write frame at %dms: %w\nstderr: %s", timestampMs, err, e.stderr.String())
	}
	e.frameCount++
	return nil
}

// Stop finalizes the session. The first call closes the stream, waits for
// ffmpeg and reads back the MP4; later calls return the same bytes. Stop
// on a never-started session returns ErrEmpty.
func (e *Encoder) Stop() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		if len(e.output) == 0 {
			return nil, ErrEmpty
		}
		return e.output, nil
	}
	if !e.started {
		e.stopped = true
		return nil, ErrEmpty
	}
	e.stopped = true

	e.stdin.Close()
	e.stdin = nil

	if err := e.cmd.Wait(); err != nil {
		os.Remove(e.tempPath)
		return nil, fmt.Errorf("ffmpeg failed: %w\nstderr: %s", err, e.stderr.String())
	}

	data, err := os.ReadFile(e.tempPath)
	os.Remove(e.tempPath)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	e.output = data
	return data, nil
}

var _ ports.StreamEncoder = (*Encoder)(nil)

// Factory creates one Encoder per job.
type Factory struct{}

// NewFactory returns a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewEncoder returns a fresh session.
func (f *Factory) NewEncoder() ports.StreamEncoder {
	return New()
}

var _ ports.EncoderFactory = (*Factory)(nil)
