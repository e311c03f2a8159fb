// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
)

// Metadata describes a decodable video source.
type Metadata struct {
	Width      int   // Natural width in pixels
	Height     int   // Natural height in pixels
	DurationMs int64 // Total duration in milliseconds (0 if unknown)
}

// FrameDecoder abstracts random access decoding of one video source.
// A decoder is created per job and released at job end; it holds the
// temporary byte-backing handle for the source bytes.
type FrameDecoder interface {
	// LoadMetadata probes the source and returns its natural dimensions
	// and duration. Must be called before Seek.
	LoadMetadata(ctx context.Context) (Metadata, error)

	// Seek decodes the frame at the given timestamp. It blocks until the
	// frame is ready; on return CurrentFrame yields the decoded image.
	Seek(ctx context.Context, timestampMs int64) error

	// CurrentFrame returns the most recently decoded frame.
	CurrentFrame() (image.Image, error)

	// Close releases decoder resources including the byte-backing file.
	// Safe to call more than once.
	Close() error
}

// DecoderFactory opens a FrameDecoder over raw source bytes.
type DecoderFactory interface {
	Open(data []byte) (FrameDecoder, error)
}
