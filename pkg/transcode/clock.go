package transcode

// SampleClock tracks which frame timestamp is being captured and the last
// progress value reported to the caller. It lives for one job and is owned
// by the Sampler; the Controller only consults the reporting throttle.
type SampleClock struct {
	fps          int
	frameIndex   int64
	lastReported int
}

// progressStep is the minimum percentage point advance between progress
// callbacks, except for the mandatory final call at 100.
const progressStep = 3

// NewSampleClock returns a clock at frame 0 for the given frame rate.
func NewSampleClock(fps int) *SampleClock {
	return &SampleClock{fps: fps, lastReported: -progressStep}
}

// FrameIndex returns the current frame index, starting at 0.
func (c *SampleClock) FrameIndex() int64 {
	return c.frameIndex
}

// TargetTimestampMs returns the timestamp of the current frame,
// frameIndex * 1000 / fps.
func (c *SampleClock) TargetTimestampMs() int64 {
	return c.frameIndex * 1000 / int64(c.fps)
}

// Advance moves the clock to the next frame and returns its timestamp.
func (c *SampleClock) Advance() int64 {
	c.frameIndex++
	return c.TargetTimestampMs()
}

// ShouldReport applies the progress throttle: a value is forwarded when it
// advances at least progressStep points past the last reported value, or
// when it reaches 100 for the first time. Reported values are monotonically
// non-decreasing.
func (c *SampleClock) ShouldReport(percent int) bool {
	if percent < c.lastReported {
		return false
	}
	if percent >= 100 {
		if c.lastReported >= 100 {
			return false
		}
		c.lastReported = 100
		return true
	}
	if percent-c.lastReported < progressStep {
		return false
	}
	c.lastReported = percent
	return true
}

// LastReported returns the last progress value forwarded to the caller,
// or -1 when nothing has been reported yet.
func (c *SampleClock) LastReported() int {
	if c.lastReported < 0 {
		return -1
	}
	return c.lastReported
}
