package transcode

import "math"

// Default output bounds. The longer source dimension is clamped to its
// bound first and the other scaled to preserve aspect ratio.
const (
	MaxOutputWidth  = 1920
	MaxOutputHeight = 1080
)

// Geometry is the output resolution of one job. Computed once from the
// source's natural dimensions and immutable afterwards.
type Geometry struct {
	Width  int
	Height int
}

// FitGeometry scales (srcWidth, srcHeight) down to fit within
// (maxWidth, maxHeight) preserving aspect ratio. Sources already within
// bounds keep their natural size. Both result dimensions are at least 1.
func FitGeometry(srcWidth, srcHeight, maxWidth, maxHeight int) Geometry {
	w := float64(srcWidth)
	h := float64(srcHeight)

	// Clamp the longer dimension first, then scale the other.
	if srcWidth >= srcHeight {
		if srcWidth > maxWidth {
			h = h * float64(maxWidth) / w
			w = float64(maxWidth)
		}
		if h > float64(maxHeight) {
			w = w * float64(maxHeight) / h
			h = float64(maxHeight)
		}
	} else {
		if srcHeight > maxHeight {
			w = w * float64(maxHeight) / h
			h = float64(maxHeight)
		}
		if w > float64(maxWidth) {
			h = h * float64(maxWidth) / w
			w = float64(maxWidth)
		}
	}

	g := Geometry{
		Width:  int(math.Round(w)),
		Height: int(math.Round(h)),
	}
	if g.Width < 1 {
		g.Width = 1
	}
	if g.Height < 1 {
		g.Height = 1
	}
	return g
}
