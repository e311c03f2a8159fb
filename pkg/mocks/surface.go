package mocks

import (
	"image"
	"sync"

	"github.com/user/mediapress/pkg/ports"
)

// Surface is a mock implementation of ports.Surface.
type Surface struct {
	Width  int
	Height int

	mu sync.Mutex

	// Recorded calls for verification
	DrawCalls int
	LastFrame image.Image
}

func (m *Surface) DrawFrame(img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DrawCalls++
	m.LastFrame = img
}

func (m *Surface) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

func (m *Surface) Bounds() (int, int) {
	return m.Width, m.Height
}

// Draws returns the number of DrawFrame calls.
func (m *Surface) Draws() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DrawCalls
}

var _ ports.Surface = (*Surface)(nil)

// SurfaceFactory is a mock implementation of ports.SurfaceFactory.
type SurfaceFactory struct {
	Surfaces []*Surface
}

func (f *SurfaceFactory) NewSurface(width, height int) ports.Surface {
	s := &Surface{Width: width, Height: height}
	f.Surfaces = append(f.Surfaces, s)
	return s
}

var _ ports.SurfaceFactory = (*SurfaceFactory)(nil)
