package transcode

import "testing"

func TestSampleClock_Timestamps(t *testing.T) {
	c := NewSampleClock(10)

	if got := c.TargetTimestampMs(); got != 0 {
		t.Errorf("initial timestamp = %d, want 0", got)
	}
	for i := 1; i <= 25; i++ {
		got := c.Advance()
		want := int64(i) * 1000 / 10
		if got != want {
			t.Errorf("frame %d: timestamp = %d, want %d", i, got, want)
		}
		if c.FrameIndex() != int64(i) {
			t.Errorf("frame index = %d, want %d", c.FrameIndex(), i)
		}
	}
}

func TestSampleClock_TimestampsNonDivisibleFPS(t *testing.T) {
	c := NewSampleClock(15)

	// Integer millisecond truncation: 1000/15 is not integral, so the
	// timestamps must come from i*1000/15, not repeated step addition.
	want := []int64{0, 66, 133, 200, 266, 333, 400}
	for i, w := range want {
		if got := c.TargetTimestampMs(); got != w {
			t.Errorf("frame %d: timestamp = %d, want %d", i, got, w)
		}
		c.Advance()
	}
}

func TestSampleClock_ShouldReport(t *testing.T) {
	c := NewSampleClock(10)

	if !c.ShouldReport(0) {
		t.Error("first report at 0 should fire")
	}
	if c.ShouldReport(1) || c.ShouldReport(2) {
		t.Error("advances below 3 points should be throttled")
	}
	if !c.ShouldReport(3) {
		t.Error("a 3 point advance should fire")
	}
	if c.ShouldReport(5) {
		t.Error("5 is only 2 points past 3")
	}
	if !c.ShouldReport(50) {
		t.Error("a large advance should fire")
	}
	if !c.ShouldReport(100) {
		t.Error("100 must always fire once")
	}
	if c.ShouldReport(100) {
		t.Error("100 must fire only once")
	}
	if c.LastReported() != 100 {
		t.Errorf("last reported = %d, want 100", c.LastReported())
	}
}

func TestSampleClock_ShouldReportFinalAfterNearComplete(t *testing.T) {
	c := NewSampleClock(10)

	if !c.ShouldReport(99) {
		t.Fatal("99 should fire")
	}
	// 100 is only 1 point past 99 but is mandatory.
	if !c.ShouldReport(100) {
		t.Error("final 100 must fire despite the 3 point throttle")
	}
}

func TestSampleClock_ShouldReportNeverDecreases(t *testing.T) {
	c := NewSampleClock(10)
	c.ShouldReport(50)
	if c.ShouldReport(10) {
		t.Error("a regressing value must not be reported")
	}
	if c.LastReported() != 50 {
		t.Errorf("last reported = %d, want 50", c.LastReported())
	}
}
