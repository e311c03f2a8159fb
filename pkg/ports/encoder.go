package ports

import (
	"image"
)

// StreamEncoder abstracts a live video encoding session. Frames are pushed
// explicitly with their timestamps; the session produces one finalized
// artifact on Stop.
type StreamEncoder interface {
	// Start initializes an encoding session for the given output geometry,
	// frame rate and target bitrate in bits per second.
	Start(width, height, fps int, bitrateBps int) error

	// WriteFrame submits one frame at the given timestamp. Frames must be
	// submitted in strictly increasing timestamp order.
	WriteFrame(img image.Image, timestampMs int64) error

	// Stop finalizes the session and returns the encoded bytes. Calling
	// Stop on an already stopped session returns the same bytes again.
	Stop() ([]byte, error)
}

// EncoderFactory creates one StreamEncoder session per job.
type EncoderFactory interface {
	NewEncoder() StreamEncoder
}

