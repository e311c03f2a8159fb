// Package mp4probe extracts video metadata directly from MP4 structure
// without spawning a decoder process. It is the fast path for metadata
// loading; non-MP4 containers go through ffprobe instead.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/mediapress/pkg/ports"
)

var (
	// ErrNotMP4 is returned when the bytes do not carry an ftyp box.
	ErrNotMP4 = errors.New("mp4probe: not an MP4 container")

	// ErrNoVideoTrack is returned when the container has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track")
)

// IsMP4 sniffs for an ftyp box at the start of the data.
func IsMP4(data []byte) bool {
	return len(data) >= 12 && string(data[4:8]) == "ftyp"
}

// Probe parses the moov box and returns the video track's natural
// dimensions and the presentation duration.
func Probe(data []byte) (ports.Metadata, error) {
	var meta ports.Metadata

	if !IsMP4(data) {
		return meta, ErrNotMP4
	}

	f, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return meta, fmt.Errorf("decode mp4: %w", err)
	}

	moov := f.Moov
	if moov == nil && f.Init != nil {
		moov = f.Init.Moov
	}
	if moov == nil {
		return meta, fmt.Errorf("mp4probe: no moov box")
	}

	var video *mp4.TrakBox
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			video = trak
			break
		}
	}
	if video == nil {
		return meta, ErrNoVideoTrack
	}

	// Track header dimensions are 16.16 fixed point.
	if video.Tkhd != nil {
		meta.Width = int(uint32(video.Tkhd.Width) >> 16)
		meta.Height = int(uint32(video.Tkhd.Height) >> 16)
	}

	// Prefer the media header duration, fall back to the movie header.
	if video.Mdia.Mdhd != nil && video.Mdia.Mdhd.Timescale > 0 && video.Mdia.Mdhd.Duration > 0 {
		meta.DurationMs = int64(video.Mdia.Mdhd.Duration * 1000 / uint64(video.Mdia.Mdhd.Timescale))
	} else if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		meta.DurationMs = int64(moov.Mvhd.Duration * 1000 / uint64(moov.Mvhd.Timescale))
	}

	return meta, nil
}
