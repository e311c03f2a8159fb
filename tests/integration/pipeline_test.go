// Package integration exercises the transcoding pipeline end to end over
// mock ports, verifying the cross-component properties that single-package
// tests cannot see.
package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/user/mediapress/pkg/adapters/logger"
	"github.com/user/mediapress/pkg/adapters/memstore"
	"github.com/user/mediapress/pkg/mocks"
	"github.com/user/mediapress/pkg/ports"
	"github.com/user/mediapress/pkg/transcode"
)

func newPipeline(meta ports.Metadata) (*transcode.Controller, *mocks.FrameDecoder, *mocks.StreamEncoder) {
	decoder := &mocks.FrameDecoder{Meta: meta}
	encoder := &mocks.StreamEncoder{}
	ctrl := transcode.NewController(
		&mocks.DecoderFactory{Decoder: decoder},
		&mocks.EncoderFactory{Encoder: encoder},
		&mocks.SurfaceFactory{},
		logger.NewNoop(),
	)
	return ctrl, decoder, encoder
}

var source = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}

func TestPipeline_FullRun(t *testing.T) {
	ctrl, decoder, encoder := newPipeline(ports.Metadata{Width: 2000, Height: 1500, DurationMs: 2000})

	var progress []int
	artifact, err := ctrl.Transcode(context.Background(), source, transcode.Options{
		FPS:        10,
		Quality:    transcode.QualityMedium,
		OnProgress: func(p int) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}

	// 2000ms at 10 fps samples timestamps 0..2000 inclusive.
	if artifact.FrameCount != 21 {
		t.Errorf("frame count = %d, want 21", artifact.FrameCount)
	}
	seeks := decoder.Seeks()
	if len(seeks) != 21 {
		t.Fatalf("seeks = %d, want 21", len(seeks))
	}
	if seeks[0] != 0 || seeks[len(seeks)-1] != 2000 {
		t.Errorf("seek range = [%d, %d], want [0, 2000]", seeks[0], seeks[len(seeks)-1])
	}
	for i := 1; i < len(seeks); i++ {
		if seeks[i] <= seeks[i-1] {
			t.Errorf("seek timestamps not strictly increasing at %d: %d after %d", i, seeks[i], seeks[i-1])
		}
	}
	if decoder.MaxInFlightSeeks > 1 {
		t.Errorf("max concurrent seeks = %d, want at most 1", decoder.MaxInFlightSeeks)
	}

	// Geometry: 2000x1500 clamps to 1440x1080.
	if artifact.Width != 1440 || artifact.Height != 1080 {
		t.Errorf("geometry = %dx%d, want 1440x1080", artifact.Width, artifact.Height)
	}
	start := encoder.StartCalls[0]
	if start.Width != 1440 || start.Height != 1080 || start.FPS != 10 {
		t.Errorf("encoder session %dx%d at %d fps, want 1440x1080 at 10", start.Width, start.Height, start.FPS)
	}
	if start.BitrateBps != transcode.QualityMedium.Bitrate() {
		t.Errorf("bitrate = %d, want %d", start.BitrateBps, transcode.QualityMedium.Bitrate())
	}

	// Progress: monotone, throttled, ending in exactly one 100.
	if len(progress) == 0 || progress[len(progress)-1] != 100 {
		t.Fatalf("progress = %v, want trailing 100", progress)
	}
	hundreds := 0
	for i, p := range progress {
		if p == 100 {
			hundreds++
		}
		if i > 0 && p < progress[i-1] {
			t.Errorf("progress regressed: %v", progress)
		}
		if i > 0 && p != 100 && p-progress[i-1] < 3 {
			t.Errorf("progress step under 3 points: %v", progress)
		}
	}
	if hundreds != 1 {
		t.Errorf("100 reported %d times, want exactly once", hundreds)
	}

	if encoder.Stops() != 1 {
		t.Errorf("encoder stopped %d times, want 1", encoder.Stops())
	}
	if decoder.CloseCalls != 1 {
		t.Errorf("decoder closed %d times, want 1", decoder.CloseCalls)
	}
}

func TestPipeline_ArtifactRoundTripThroughStore(t *testing.T) {
	ctrl, _, _ := newPipeline(ports.Metadata{Width: 640, Height: 480, DurationMs: 500})

	artifact, err := ctrl.Transcode(context.Background(), source, transcode.Options{FPS: 10})
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}

	store := memstore.New()
	id, err := store.Put(artifact.Data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(data) != len(artifact.Data) {
		t.Errorf("stored %d bytes, want %d", len(data), len(artifact.Data))
	}
}

func TestPipeline_AbandonReleasesEverything(t *testing.T) {
	ctrl, decoder, encoder := newPipeline(ports.Metadata{Width: 640, Height: 480, DurationMs: 600_000})

	blocked := make(chan struct{})
	release := make(chan struct{})
	var once bool
	decoder.SeekFunc = func(ctx context.Context, timestampMs int64) error {
		if timestampMs >= 2000 && !once {
			once = true
			close(blocked)
			<-release
		}
		return ctx.Err()
	}

	job := transcode.NewJob(ctrl, source, transcode.Options{FPS: 10})
	result := make(chan error, 1)
	go func() {
		_, err := job.Run(context.Background())
		result <- err
	}()

	<-blocked
	job.Abandon()
	close(release)

	if err := <-result; !errors.Is(err, transcode.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
	if encoder.Stops() != 1 {
		t.Errorf("encoder stopped %d times, want 1", encoder.Stops())
	}
	if decoder.CloseCalls != 1 {
		t.Errorf("decoder closed %d times, want 1", decoder.CloseCalls)
	}
}

func TestPipeline_QualityTiersShareFrameSchedule(t *testing.T) {
	meta := ports.Metadata{Width: 640, Height: 480, DurationMs: 1000}

	var frameCounts []int64
	var bitrates []int
	for _, q := range []transcode.Quality{transcode.QualityPerformance, transcode.QualityHighest} {
		ctrl, _, encoder := newPipeline(meta)
		artifact, err := ctrl.Transcode(context.Background(), source, transcode.Options{FPS: 10, Quality: q})
		if err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		frameCounts = append(frameCounts, artifact.FrameCount)
		bitrates = append(bitrates, encoder.StartCalls[0].BitrateBps)
	}

	// Quality changes the bitrate, never the sampling schedule.
	if frameCounts[0] != frameCounts[1] {
		t.Errorf("frame counts differ across tiers: %v", frameCounts)
	}
	if bitrates[0]*10 != bitrates[1]*3 {
		t.Errorf("bitrate ratio not 3/10: performance=%d highest=%d", bitrates[0], bitrates[1])
	}
}
