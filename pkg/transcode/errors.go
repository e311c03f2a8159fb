package transcode

import "errors"

var (
	// ErrUnsupportedSource is returned when metadata never loads or the
	// reported duration or dimensions are zero or unknown.
	ErrUnsupportedSource = errors.New("transcode: unsupported source")

	// ErrDecodeFailure is returned on seek or frame read errors mid-stream.
	ErrDecodeFailure = errors.New("transcode: decode failure")

	// ErrEncodeStart is returned when the encoder session could not be
	// initialized.
	ErrEncodeStart = errors.New("transcode: encoder start failure")

	// ErrEncodeRuntime is returned when the encoder fails during capture.
	ErrEncodeRuntime = errors.New("transcode: encoder runtime failure")

	// ErrEncodeEmpty is returned when finalizing produced zero bytes.
	ErrEncodeEmpty = errors.New("transcode: encoder produced no data")

	// ErrCancelled is returned when the job was abandoned.
	ErrCancelled = errors.New("transcode: cancelled")

	// ErrInvalidFPS is returned when the requested frame rate is not a
	// positive integer.
	ErrInvalidFPS = errors.New("transcode: fps must be a positive integer")

	// ErrInvalidTransition is returned on out-of-order sampler calls.
	// It indicates a controller bug, never a bad source.
	ErrInvalidTransition = errors.New("transcode: invalid sampler transition")
)
