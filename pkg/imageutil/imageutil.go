// Package imageutil provides the one-shot image helpers consumed by
// collaborators of the transcoding pipeline: cropping, recompression and
// thumbnailing. Unlike the pipeline these are best-effort utilities.
package imageutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Crop returns the portion of img covered by rect. The rectangle is
// clipped to the image bounds; an empty intersection yields a 1x1 image.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		rect = image.Rect(0, 0, 1, 1)
	}

	dc := gg.NewContext(rect.Dx(), rect.Dy())
	dc.DrawImage(img, -rect.Min.X, -rect.Min.Y)
	return dc.Image()
}

// Thumbnail scales img down to fit within (maxWidth, maxHeight) preserving
// aspect ratio. Images already within bounds are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	tw := int(float64(w) * scale)
	th := int(float64(h) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	target := image.Rect(0, 0, tw, th)
	scaled := image.NewRGBA(target)
	draw.ApproxBiLinear.Scale(scaled, target, img, b, draw.Src, nil)
	return scaled
}

// Recompress re-encodes image bytes as JPEG at the given quality (1-100).
// On decode failure the original bytes are returned untouched.
func Recompress(data []byte, quality int) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return data
	}
	if buf.Len() >= len(data) {
		return data
	}
	return buf.Bytes()
}

// EncodeJPEG encodes an image as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
