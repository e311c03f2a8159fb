package mocks

import (
	"image"
	"sync"

	"github.com/user/mediapress/pkg/ports"
)

// StreamEncoder is a mock implementation of ports.StreamEncoder.
type StreamEncoder struct {
	StartFunc      func(width, height, fps, bitrateBps int) error
	WriteFrameFunc func(img image.Image, timestampMs int64) error
	StopFunc       func() ([]byte, error)

	mu sync.Mutex

	// Recorded calls for verification
	StartCalls      []StartCall
	WriteFrameCalls []int64
	StopCalls       int
}

// StartCall records the parameters of one Start call.
type StartCall struct {
	Width      int
	Height     int
	FPS        int
	BitrateBps int
}

func (m *StreamEncoder) Start(width, height, fps, bitrateBps int) error {
	m.mu.Lock()
	m.StartCalls = append(m.StartCalls, StartCall{Width: width, Height: height, FPS: fps, BitrateBps: bitrateBps})
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc(width, height, fps, bitrateBps)
	}
	return nil
}

func (m *StreamEncoder) WriteFrame(img image.Image, timestampMs int64) error {
	m.mu.Lock()
	m.WriteFrameCalls = append(m.WriteFrameCalls, timestampMs)
	m.mu.Unlock()
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(img, timestampMs)
	}
	return nil
}

func (m *StreamEncoder) Stop() ([]byte, error) {
	m.mu.Lock()
	m.StopCalls++
	m.mu.Unlock()
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	// Minimal MP4 ftyp header
	return []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, nil
}

// Stops returns the number of Stop calls.
func (m *StreamEncoder) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StopCalls
}

var _ ports.StreamEncoder = (*StreamEncoder)(nil)

// EncoderFactory is a mock implementation of ports.EncoderFactory that
// hands out one fixed session.
type EncoderFactory struct {
	Encoder *StreamEncoder

	NewEncoderCalls int
}

func (f *EncoderFactory) NewEncoder() ports.StreamEncoder {
	f.NewEncoderCalls++
	if f.Encoder == nil {
		f.Encoder = &StreamEncoder{}
	}
	return f.Encoder
}

var _ ports.EncoderFactory = (*EncoderFactory)(nil)
