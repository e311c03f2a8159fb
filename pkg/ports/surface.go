package ports

import (
	"image"
)

// Surface is an off-screen raster target holding exactly one scaled frame
// at a time. A surface is created per job at the computed output geometry.
type Surface interface {
	// DrawFrame scales the frame to fill the surface bounds exactly.
	// The previous content is replaced.
	DrawFrame(img image.Image)

	// Image returns the current surface content.
	Image() image.Image

	// Bounds returns the surface dimensions.
	Bounds() (width, height int)
}

// SurfaceFactory creates surfaces at a fixed output geometry.
type SurfaceFactory interface {
	NewSurface(width, height int) Surface
}
