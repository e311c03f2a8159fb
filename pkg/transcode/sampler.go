package transcode

import (
	"fmt"

	"github.com/user/mediapress/pkg/ports"
)

// State is a sampler lifecycle state. The Seeking state doubles as the
// re-entrancy guard: it means exactly one seek is outstanding, and a new
// seek can only be issued by the Drawing -> Seeking transition.
type State int

const (
	StateIdle State = iota
	StateMetadataPending
	StateSeeking
	StateDrawing
	StateFinalizing
	StateCompleted
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMetadataPending:
		return "metadata-pending"
	case StateSeeking:
		return "seeking"
	case StateDrawing:
		return "drawing"
	case StateFinalizing:
		return "finalizing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sampler schedules frame capture for one job. It decides each sample
// timestamp from the frame rate and source duration and enforces the
// single-outstanding-seek ordering invariant through explicit states.
type Sampler struct {
	state      State
	clock      *SampleClock
	geometry   Geometry
	durationMs int64
	err        error
	logger     ports.Logger
}

// NewSampler returns an idle sampler.
func NewSampler(logger ports.Logger) *Sampler {
	return &Sampler{
		state:  StateIdle,
		logger: logger.WithComponent("sampler"),
	}
}

// State returns the current state.
func (s *Sampler) State() State {
	return s.state
}

// Geometry returns the computed output geometry. Valid after Begin.
func (s *Sampler) Geometry() Geometry {
	return s.geometry
}

// Clock returns the sample clock. Valid after Begin.
func (s *Sampler) Clock() *SampleClock {
	return s.clock
}

// Err returns the terminal error after a Fail transition.
func (s *Sampler) Err() error {
	return s.err
}

// Attach moves the sampler to MetadataPending when the controller attaches
// a source.
func (s *Sampler) Attach() error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: attach in state %s", ErrInvalidTransition, s.state)
	}
	s.state = StateMetadataPending
	return nil
}

// Begin consumes the source metadata, computes the output geometry and
// issues the first seek at timestamp 0. On return the sampler is Seeking:
// the controller must drive the decoder to timestamp 0 and call FinishSeek.
// A source with unknown or zero duration or dimensions fails immediately
// rather than looping forever.
func (s *Sampler) Begin(meta ports.Metadata, fps int) (firstTimestampMs int64, err error) {
	if s.state != StateMetadataPending {
		return 0, fmt.Errorf("%w: begin in state %s", ErrInvalidTransition, s.state)
	}
	if meta.DurationMs <= 0 {
		s.fail(fmt.Errorf("%w: duration %dms", ErrUnsupportedSource, meta.DurationMs))
		return 0, s.err
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		s.fail(fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedSource, meta.Width, meta.Height))
		return 0, s.err
	}

	s.durationMs = meta.DurationMs
	s.geometry = FitGeometry(meta.Width, meta.Height, MaxOutputWidth, MaxOutputHeight)
	s.clock = NewSampleClock(fps)
	s.state = StateSeeking

	s.logger.Debug("Sampling %dms at %d fps into %dx%d", meta.DurationMs, fps, s.geometry.Width, s.geometry.Height)
	return s.clock.TargetTimestampMs(), nil
}

// FinishSeek records that the decoder reached the requested timestamp.
// The controller may now draw the current frame.
func (s *Sampler) FinishSeek() error {
	if s.state != StateSeeking {
		return fmt.Errorf("%w: finish seek in state %s", ErrInvalidTransition, s.state)
	}
	s.state = StateDrawing
	return nil
}

// FinishDraw records that the current frame was drawn and captured. When
// more of the source remains it advances the clock and issues the next
// seek (returning its timestamp); otherwise the sampler enters Finalizing
// and no further seeks are issued.
func (s *Sampler) FinishDraw() (nextTimestampMs int64, done bool, err error) {
	if s.state != StateDrawing {
		return 0, false, fmt.Errorf("%w: finish draw in state %s", ErrInvalidTransition, s.state)
	}

	next := (s.clock.FrameIndex() + 1) * 1000 / int64(s.clock.fps)
	if next > s.durationMs {
		s.state = StateFinalizing
		return 0, true, nil
	}

	s.state = StateSeeking
	return s.clock.Advance(), false, nil
}

// Complete finishes a finalized job.
func (s *Sampler) Complete() error {
	if s.state != StateFinalizing {
		return fmt.Errorf("%w: complete in state %s", ErrInvalidTransition, s.state)
	}
	s.state = StateCompleted
	return nil
}

// Fail forces the sampler into the Failed terminal state. Idempotent:
// failing an already failed or completed sampler keeps the first error.
func (s *Sampler) Fail(err error) {
	if s.state == StateFailed || s.state == StateCompleted {
		return
	}
	s.fail(err)
}

func (s *Sampler) fail(err error) {
	s.state = StateFailed
	s.err = err
}

// Progress returns the completed fraction as a percentage in [0,100].
func (s *Sampler) Progress() float64 {
	if s.durationMs <= 0 || s.clock == nil {
		return 0
	}
	p := float64(s.clock.TargetTimestampMs()) / float64(s.durationMs)
	if p > 1 {
		p = 1
	}
	return p * 100
}
