// Package ggsurface implements ports.Surface using the gg library as the
// raster target and golang.org/x/image for frame scaling.
package ggsurface

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/mediapress/pkg/ports"
)

// Surface is an off-screen canvas of exactly the output geometry. Each
// DrawFrame replaces the whole content; the surface holds one frame at a
// time.
type Surface struct {
	dc     *gg.Context
	width  int
	height int
}

// New creates a surface at the given dimensions.
func New(width, height int) *Surface {
	return &Surface{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
	}
}

// DrawFrame scales the frame to fill the surface exactly. The geometry
// already preserves the source aspect ratio, so no letterboxing happens
// here.
func (s *Surface) DrawFrame(img image.Image) {
	target := image.Rect(0, 0, s.width, s.height)
	scaled := image.NewRGBA(target)
	draw.ApproxBiLinear.Scale(scaled, target, img, img.Bounds(), draw.Src, nil)
	s.dc.DrawImage(scaled, 0, 0)
}

// Image returns the current surface content.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// Bounds returns the surface dimensions.
func (s *Surface) Bounds() (int, int) {
	return s.width, s.height
}

var _ ports.Surface = (*Surface)(nil)

// Factory creates surfaces per job.
type Factory struct{}

// NewFactory returns a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewSurface implements ports.SurfaceFactory.
func (f *Factory) NewSurface(width, height int) ports.Surface {
	return New(width, height)
}

var _ ports.SurfaceFactory = (*Factory)(nil)
