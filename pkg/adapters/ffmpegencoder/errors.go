package ffmpegencoder

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found")

	// ErrAlreadyStarted is returned when Start is called on a live session.
	ErrAlreadyStarted = errors.New("ffmpegencoder: session already started")

	// ErrNotStarted is returned when WriteFrame is called outside a live
	// session.
	ErrNotStarted = errors.New("ffmpegencoder: session not started")

	// ErrEmpty is returned when Stop has no encoded bytes to return.
	ErrEmpty = errors.New("ffmpegencoder: no encoded data")
)
