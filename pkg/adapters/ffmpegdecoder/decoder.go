// Package ffmpegdecoder implements ports.FrameDecoder on external ffmpeg
// and ffprobe processes. The source bytes are staged into a temporary file
// (the byte-backing handle for one job); each seek decodes exactly the
// frame at the requested timestamp.
package ffmpegdecoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/mediapress/pkg/adapters/mp4probe"
	"github.com/user/mediapress/pkg/ports"
)

var (
	// ErrNoFrame is returned by CurrentFrame before the first seek.
	ErrNoFrame = errors.New("ffmpegdecoder: no frame decoded yet")

	// ErrClosed is returned when the decoder was already released.
	ErrClosed = errors.New("ffmpegdecoder: decoder closed")
)

// Decoder decodes frames of one source. Created per job via Factory.
type Decoder struct {
	mu sync.Mutex

	ffmpegPath  string
	ffprobePath string
	sourcePath  string
	source      []byte

	durationMs int64
	frame      image.Image
	closed     bool
}

// Open stages the source bytes into a temp file and returns a decoder.
func Open(data []byte) (*Decoder, error) {
	ffmpegPath, err := findTool("ffmpeg")
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "mediapress_src_*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("write source: %w", err)
	}
	tmpFile.Close()

	// ffprobe is optional at open time; MP4 sources are probed with mp4ff.
	ffprobePath, _ := findTool("ffprobe")

	return &Decoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		sourcePath:  tmpFile.Name(),
		source:      data,
	}, nil
}

// LoadMetadata probes the source dimensions and duration. MP4 containers
// are parsed structurally; everything else goes through ffprobe.
func (d *Decoder) LoadMetadata(ctx context.Context) (ports.Metadata, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ports.Metadata{}, ErrClosed
	}

	if mp4probe.IsMP4(d.source) {
		if meta, err := mp4probe.Probe(d.source); err == nil && meta.DurationMs > 0 && meta.Width > 0 {
			d.durationMs = meta.DurationMs
			return meta, nil
		}
	}

	meta, err := d.probe(ctx)
	if err != nil {
		return meta, err
	}
	d.durationMs = meta.DurationMs
	return meta, nil
}

// ffprobeOutput is the subset of ffprobe JSON output we consume.
type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (d *Decoder) probe(ctx context.Context) (ports.Metadata, error) {
	var meta ports.Metadata

	if d.ffprobePath == "" {
		return meta, fmt.Errorf("ffmpegdecoder: ffprobe not found")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		d.sourcePath,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return meta, fmt.Errorf("ffprobe: %w\nstderr: %s", err, stderr.String())
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return meta, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		meta.Width = s.Width
		meta.Height = s.Height
		if ms := parseDurationMs(s.Duration); ms > 0 {
			meta.DurationMs = ms
		}
		break
	}
	if meta.DurationMs == 0 {
		meta.DurationMs = parseDurationMs(out.Format.Duration)
	}
	if meta.Width == 0 || meta.Height == 0 {
		return meta, fmt.Errorf("ffmpegdecoder: no video stream found")
	}

	return meta, nil
}

// parseDurationMs converts ffprobe's seconds string to milliseconds.
// Returns 0 for empty or malformed values.
func parseDurationMs(s string) int64 {
	if s == "" {
		return 0
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(sec * 1000)
}

// Seek decodes the frame at the given timestamp. The decoded image
// replaces the current frame.
func (d *Decoder) Seek(ctx context.Context, timestampMs int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	// A seek at or past the stream end would discard every frame and emit
	// nothing, so requests there land on the last frame instead. The sampler
	// schedules a final timestamp equal to the duration for any source whose
	// length is a whole number of frame intervals.
	seekMs := clampSeekMs(timestampMs, d.durationMs)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-ss", formatSeconds(seekMs),
		"-i", d.sourcePath,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("seek to %dms: %w\nstderr: %s", timestampMs, err, stderr.String())
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return fmt.Errorf("decode frame at %dms: %w", timestampMs, err)
	}

	d.frame = img
	return nil
}

// clampSeekMs keeps a seek target strictly inside the stream. Timestamps at
// or past the known duration map to the final millisecond; with an unknown
// duration the request passes through untouched.
func clampSeekMs(timestampMs, durationMs int64) int64 {
	if durationMs > 0 && timestampMs >= durationMs {
		return durationMs - 1
	}
	return timestampMs
}

// formatSeconds renders a millisecond timestamp as a seconds value for
// ffmpeg's -ss flag.
func formatSeconds(timestampMs int64) string {
	return fmt.Sprintf("%d.%03d", timestampMs/1000, timestampMs%1000)
}

// CurrentFrame returns the most recently decoded frame.
func (d *Decoder) CurrentFrame() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if d.frame == nil {
		return nil, ErrNoFrame
	}
	return d.frame, nil
}

// Close releases the byte-backing temp file. Safe to call more than once.
func (d *Decoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.frame = nil
	d.source = nil

	if err := os.Remove(d.sourcePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove source temp file: %w", err)
	}
	return nil
}

var _ ports.FrameDecoder = (*Decoder)(nil)

// Factory opens decoders over raw source bytes.
type Factory struct{}

// NewFactory returns a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open implements ports.DecoderFactory.
func (f *Factory) Open(data []byte) (ports.FrameDecoder, error) {
	return Open(data)
}

var _ ports.DecoderFactory = (*Factory)(nil)
