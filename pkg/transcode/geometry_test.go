package transcode

import (
	"math"
	"testing"
)

func TestFitGeometry(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		wantW      int
		wantH      int
	}{
		{"within bounds unchanged", 1280, 720, 1280, 720},
		{"exact bounds unchanged", 1920, 1080, 1920, 1080},
		{"4k landscape", 3840, 2160, 1920, 1080},
		{"wide landscape", 4000, 2000, 1920, 960},
		{"landscape needs second clamp", 2000, 1500, 1440, 1080},
		{"portrait", 1080, 1920, 608, 1080},
		{"small source kept", 100, 50, 100, 50},
		{"very wide", 5000, 100, 1920, 38},
		{"degenerate height floors at 1", 10000, 2, 1920, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitGeometry(tt.srcW, tt.srcH, MaxOutputWidth, MaxOutputHeight)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("FitGeometry(%d, %d) = %dx%d, want %dx%d",
					tt.srcW, tt.srcH, got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitGeometry_NeverExceedsBounds(t *testing.T) {
	sizes := []struct{ w, h int }{
		{7680, 4320}, {1921, 1080}, {1920, 1081}, {640, 4000}, {3000, 3000},
	}
	for _, s := range sizes {
		g := FitGeometry(s.w, s.h, MaxOutputWidth, MaxOutputHeight)
		if g.Width > MaxOutputWidth || g.Height > MaxOutputHeight {
			t.Errorf("FitGeometry(%d, %d) = %dx%d exceeds bounds", s.w, s.h, g.Width, g.Height)
		}
		if g.Width < 1 || g.Height < 1 {
			t.Errorf("FitGeometry(%d, %d) = %dx%d has non-positive dimension", s.w, s.h, g.Width, g.Height)
		}
	}
}

func TestFitGeometry_PreservesAspectRatio(t *testing.T) {
	sizes := []struct{ w, h int }{
		{3840, 2160}, {1080, 1920}, {2560, 1440}, {4096, 1714},
	}
	for _, s := range sizes {
		g := FitGeometry(s.w, s.h, MaxOutputWidth, MaxOutputHeight)
		srcRatio := float64(s.w) / float64(s.h)

		// Within 1 pixel of rounding on the scaled axis.
		ideal := float64(g.Height) * srcRatio
		if math.Abs(float64(g.Width)-ideal) > 1.0 {
			t.Errorf("FitGeometry(%d, %d) = %dx%d: width off by %.2f px from aspect ratio",
				s.w, s.h, g.Width, g.Height, math.Abs(float64(g.Width)-ideal))
		}
	}
}
