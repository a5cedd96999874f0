// Package frame owns the CPU-side pixel buffer, the test patterns that
// repaint it, and the frame-rate limiter that paces the display loop.
package frame

import (
	"fmt"
	"image"
)

// Pixel is one RGBA color sample. Alpha is carried as padding for the
// 4-byte texture layout and is always opaque.
type Pixel struct {
	R, G, B, A uint8
}

// RGB returns an opaque pixel.
func RGB(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 255}
}

var (
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
	Black = RGB(0, 0, 0)
)

// Buffer is a fixed-size, row-major RGBA pixel buffer. The backing slice is
// contiguous with no per-row padding, so Bytes/Pitch map directly onto a
// streaming texture upload.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

// NewBuffer allocates a zeroed width×height buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Pitch is the byte length of one scanline.
func (b *Buffer) Pitch() int { return b.width * 4 }

// Bytes exposes the backing storage in R,G,B,A byte order. Returns nil after
// Release.
func (b *Buffer) Bytes() []byte { return b.pix }

// At reads the pixel at (x, y). The caller is responsible for bounds; the
// fill operations only ever write inside the buffer's own dimensions.
func (b *Buffer) At(x, y int) Pixel {
	i := (y*b.width + x) * 4
	return Pixel{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// Release drops the backing storage. Safe to call more than once.
func (b *Buffer) Release() {
	b.pix = nil
	b.width = 0
	b.height = 0
}

// FillSolid sets every pixel to c.
func (b *Buffer) FillSolid(c Pixel) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// FillBands paints three vertical bands: blue for x < width/3, green for
// x < 2*width/3, red for the rest. Boundaries use integer division, so the
// bands are deterministic but not exactly equal when the width is not a
// multiple of three.
func (b *Buffer) FillBands() {
	blueMax := b.width / 3
	greenMax := b.width * 2 / 3

	i := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := Red
			if x < blueMax {
				c = Blue
			} else if x < greenMax {
				c = Green
			}
			b.pix[i] = c.R
			b.pix[i+1] = c.G
			b.pix[i+2] = c.B
			b.pix[i+3] = c.A
			i += 4
		}
	}
}

// RGBA copies the buffer into a stdlib image for encoding. The returned
// image shares no memory with the buffer.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}
