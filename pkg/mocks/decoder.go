package mocks

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/user/mediapress/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder. It is
// instrumented to verify the single-outstanding-seek invariant: the
// in-flight counter is incremented for the duration of each Seek call and
// the observed maximum is recorded.
type FrameDecoder struct {
	Meta ports.Metadata

	LoadMetadataFunc func(ctx context.Context) (ports.Metadata, error)
	SeekFunc         func(ctx context.Context, timestampMs int64) error
	CurrentFrameFunc func() (image.Image, error)
	CloseFunc        func() error

	mu sync.Mutex

	// Recorded calls for verification
	MetadataLoaded bool
	SeekCalls      []int64
	CloseCalls     int

	inFlightSeeks    int32
	MaxInFlightSeeks int32
}

func (m *FrameDecoder) LoadMetadata(ctx context.Context) (ports.Metadata, error) {
	m.mu.Lock()
	m.MetadataLoaded = true
	m.mu.Unlock()
	if m.LoadMetadataFunc != nil {
		return m.LoadMetadataFunc(ctx)
	}
	return m.Meta, nil
}

func (m *FrameDecoder) Seek(ctx context.Context, timestampMs int64) error {
	n := atomic.AddInt32(&m.inFlightSeeks, 1)
	defer atomic.AddInt32(&m.inFlightSeeks, -1)
	for {
		max := atomic.LoadInt32(&m.MaxInFlightSeeks)
		if n <= max || atomic.CompareAndSwapInt32(&m.MaxInFlightSeeks, max, n) {
			break
		}
	}

	m.mu.Lock()
	m.SeekCalls = append(m.SeekCalls, timestampMs)
	m.mu.Unlock()

	if m.SeekFunc != nil {
		return m.SeekFunc(ctx, timestampMs)
	}
	return nil
}

func (m *FrameDecoder) CurrentFrame() (image.Image, error) {
	if m.CurrentFrameFunc != nil {
		return m.CurrentFrameFunc()
	}
	return image.NewRGBA(image.Rect(0, 0, m.Meta.Width, m.Meta.Height)), nil
}

func (m *FrameDecoder) Close() error {
	m.mu.Lock()
	m.CloseCalls++
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Seeks returns a copy of the recorded seek timestamps.
func (m *FrameDecoder) Seeks() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, len(m.SeekCalls))
	copy(out, m.SeekCalls)
	return out
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)

// DecoderFactory is a mock implementation of ports.DecoderFactory.
type DecoderFactory struct {
	Decoder *FrameDecoder
	OpenErr error

	OpenCalls int
	LastData  []byte
}

func (f *DecoderFactory) Open(data []byte) (ports.FrameDecoder, error) {
	f.OpenCalls++
	f.LastData = data
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	if f.Decoder == nil {
		return nil, fmt.Errorf("mocks: no decoder configured")
	}
	return f.Decoder, nil
}

var _ ports.DecoderFactory = (*DecoderFactory)(nil)
