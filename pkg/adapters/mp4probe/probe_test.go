package mp4probe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

// buildFixture encodes a minimal ftyp+moov container with one track.
func buildFixture(t *testing.T, mediaType string, width, height int, durationMs int64, timescale uint32) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, mediaType, "en")

	trak := init.Moov.Trak
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)
	trak.Mdia.Mdhd.Duration = uint64(durationMs) * uint64(timescale) / 1000

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	return buf.Bytes()
}

func TestIsMP4(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"nil", nil, false},
		{"short", []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, false},
		{"garbage", bytes.Repeat([]byte{0xAB}, 64), false},
		{"ftyp", append([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, make([]byte, 16)...), true},
	}
	for _, tt := range tests {
		if got := IsMP4(tt.data); got != tt.want {
			t.Errorf("%s: IsMP4 = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProbe_NotMP4(t *testing.T) {
	_, err := Probe([]byte("definitely not a video container at all"))
	if !errors.Is(err, ErrNotMP4) {
		t.Errorf("error = %v, want ErrNotMP4", err)
	}
}

func TestProbe_VideoTrack(t *testing.T) {
	data := buildFixture(t, "video", 1280, 720, 4000, 90000)

	meta, err := Probe(data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if meta.Width != 1280 || meta.Height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", meta.Width, meta.Height)
	}
	if meta.DurationMs != 4000 {
		t.Errorf("duration = %dms, want 4000", meta.DurationMs)
	}
}

func TestProbe_NoVideoTrack(t *testing.T) {
	data := buildFixture(t, "audio", 0, 0, 4000, 48000)

	_, err := Probe(data)
	if !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("error = %v, want ErrNoVideoTrack", err)
	}
}

func TestProbe_TruncatedContainer(t *testing.T) {
	data := buildFixture(t, "video", 640, 480, 1000, 90000)

	if _, err := Probe(data[:len(data)/2]); err == nil {
		t.Error("Probe succeeded on a truncated container, want error")
	}
}
