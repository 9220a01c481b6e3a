package sigpad

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Buffer is the backing pixel grid of a Surface: premultiplied RGBA,
// 4 bytes per pixel, never smaller than 1x1.
type Buffer struct {
	img *image.RGBA
}

// NewBuffer creates a transparent buffer. Dimensions below 1 are raised to 1.
func NewBuffer(width, height int) *Buffer {
	width = max(width, 1)
	height = max(height, 1)
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width of the buffer in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the height of the buffer in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

// Size returns width and height as a convenience.
func (b *Buffer) Size() (width, height int) {
	return b.Width(), b.Height()
}

// Bounds returns the pixel rectangle of the buffer.
func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Rect
}

// Pix returns the raw premultiplied RGBA data. The slice aliases the buffer.
func (b *Buffer) Pix() []uint8 {
	return b.img.Pix
}

// RGBA returns the buffer as an image. The image aliases the buffer.
func (b *Buffer) RGBA() *image.RGBA {
	return b.img
}

// At returns the premultiplied color of a pixel; out-of-range reads are
// transparent.
func (b *Buffer) At(x, y int) color.RGBA {
	return b.img.RGBAAt(x, y)
}

// Clear erases every pixel of the buffer.
func (b *Buffer) Clear() {
	clear(b.img.Pix)
}

// IsEmpty reports whether every pixel is fully transparent.
func (b *Buffer) IsEmpty() bool {
	for i := 3; i < len(b.img.Pix); i += 4 {
		if b.img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

// NonTransparent counts pixels with nonzero alpha.
func (b *Buffer) NonTransparent() int {
	n := 0
	for i := 3; i < len(b.img.Pix); i += 4 {
		if b.img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	img := image.NewRGBA(b.img.Rect)
	copy(img.Pix, b.img.Pix)
	return &Buffer{img: img}
}

// ScaleFrom replaces the content of b with src scaled to fill b entirely.
// Catmull-Rom is used, the highest quality kernel available, matching the
// always-on high quality image smoothing of the surface.
// src is only read.
func (b *Buffer) ScaleFrom(src *Buffer) {
	b.Clear()
	if src.Bounds().Eq(b.Bounds()) {
		copy(b.img.Pix, src.img.Pix)
		return
	}
	xdraw.CatmullRom.Scale(b.img, b.img.Rect, src.img, src.img.Rect, xdraw.Src, nil)
}
