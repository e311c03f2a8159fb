package ffmpegdecoder

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/mediapress/pkg/adapters/ffmpegencoder"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		timestampMs int64
		want        string
	}{
		{0, "0.000"},
		{66, "0.066"},
		{500, "0.500"},
		{1000, "1.000"},
		{1250, "1.250"},
		{61_001, "61.001"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.timestampMs); got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.timestampMs, got, tt.want)
		}
	}
}

func TestClampSeekMs(t *testing.T) {
	tests := []struct {
		timestampMs int64
		durationMs  int64
		want        int64
	}{
		{0, 2000, 0},
		{1900, 2000, 1900},
		{1999, 2000, 1999},
		{2000, 2000, 1999}, // final whole-interval sample
		{2500, 2000, 1999},
		{2000, 0, 2000}, // unknown duration passes through
	}
	for _, tt := range tests {
		if got := clampSeekMs(tt.timestampMs, tt.durationMs); got != tt.want {
			t.Errorf("clampSeekMs(%d, %d) = %d, want %d", tt.timestampMs, tt.durationMs, got, tt.want)
		}
	}
}

func TestParseDurationMs(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"garbage", 0},
		{"0", 0},
		{"2.000000", 2000},
		{"1.5", 1500},
		{"0.066", 66},
		{"120.250000", 120_250},
	}
	for _, tt := range tests {
		if got := parseDurationMs(tt.in); got != tt.want {
			t.Errorf("parseDurationMs(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecoder_ClosedState(t *testing.T) {
	if !IsAvailable() {
		t.Skip("ffmpeg not available")
	}

	dec, err := Open([]byte("not a real video, staging only"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := dec.CurrentFrame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("CurrentFrame before seek = %v, want ErrNoFrame", err)
	}

	if err := dec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := dec.Close(); err != nil {
		t.Errorf("second Close: %v, want nil", err)
	}

	if _, err := dec.LoadMetadata(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadMetadata after close = %v, want ErrClosed", err)
	}
	if err := dec.Seek(context.Background(), 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Seek after close = %v, want ErrClosed", err)
	}
	if _, err := dec.CurrentFrame(); !errors.Is(err, ErrClosed) {
		t.Errorf("CurrentFrame after close = %v, want ErrClosed", err)
	}
}

func TestDecoder_SeekAtExactDuration(t *testing.T) {
	if !IsAvailable() || !ffmpegencoder.IsAvailable() {
		t.Skip("ffmpeg not available")
	}

	// 2 seconds at 10 fps: a whole number of frame intervals, so the
	// pipeline's final sample lands exactly at the duration.
	enc := ffmpegencoder.New()
	if err := enc.Start(64, 48, 10, 500_000); err != nil {
		t.Fatalf("encode source: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := 0; i < 20; i++ {
		if err := enc.WriteFrame(img, int64(i*100)); err != nil {
			t.Fatalf("write source frame %d: %v", i, err)
		}
	}
	source, err := enc.Stop()
	if err != nil {
		t.Fatalf("finalize source: %v", err)
	}

	dec, err := Open(source)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dec.Close()

	meta, err := dec.LoadMetadata(context.Background())
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if meta.DurationMs <= 0 {
		t.Fatalf("duration = %dms, want positive", meta.DurationMs)
	}

	for _, ts := range []int64{0, meta.DurationMs / 2, meta.DurationMs} {
		if err := dec.Seek(context.Background(), ts); err != nil {
			t.Fatalf("Seek(%d) with duration %dms: %v", ts, meta.DurationMs, err)
		}
		frame, err := dec.CurrentFrame()
		if err != nil {
			t.Fatalf("CurrentFrame after Seek(%d): %v", ts, err)
		}
		if frame.Bounds().Empty() {
			t.Errorf("empty frame at %dms", ts)
		}
	}
}

func TestDecoder_GarbageMetadata(t *testing.T) {
	if !IsAvailable() {
		t.Skip("ffmpeg not available")
	}

	dec, err := Open([]byte("this is not any kind of media container"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dec.Close()

	if _, err := dec.LoadMetadata(context.Background()); err == nil {
		t.Error("LoadMetadata succeeded on garbage, want error")
	}
}
