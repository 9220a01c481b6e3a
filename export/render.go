package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/sigpad"
	xdraw "golang.org/x/image/draw"
)

// Defaults used when Options fields are zero.
const (
	DefaultPixelRatio = 2
	DefaultFilename   = "infinity-invitation.png"
)

// DefaultBackground is the near-black card color behind the signatures.
var DefaultBackground color.Color = color.NRGBA{R: 0x0b, G: 0x0b, B: 0x0b, A: 0xff}

// ErrInvalidPage is returned when a page cannot be rasterized.
var ErrInvalidPage = errors.New("export: invalid page")

// Source provides the pixels of a layer. *sigpad.Surface implements it.
type Source interface {
	Snapshot() (*image.RGBA, error)
}

var _ Source = (*sigpad.Surface)(nil)

// Layer places a source on the page. The rectangle is in CSS pixels,
// relative to the page origin. A layer with a zero size covers the page.
type Layer struct {
	Source        Source
	X, Y          float64
	Width, Height float64
}

// Page is the region being exported.
type Page struct {
	// Width and Height are the page size in CSS pixels.
	Width, Height float64

	// Background fills the page before layers are drawn.
	// Nil leaves the page transparent.
	Background color.Color

	// Layers are drawn in order, each composited over the previous ones.
	Layers []Layer
}

// Options controls rasterization and naming.
type Options struct {
	// PixelRatio is the number of output pixels per CSS pixel.
	// Zero selects DefaultPixelRatio.
	PixelRatio float64

	// Filename is the suggested name of the saved image.
	// Empty selects DefaultFilename.
	Filename string
}

func (o Options) withDefaults() Options {
	if !(o.PixelRatio > 0) || math.IsInf(o.PixelRatio, 0) {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	return o
}

// Render rasterizes the page. The result measures the page size times the
// pixel ratio, floored. Layers are scaled into place with Catmull-Rom and
// composited with source-over.
func Render(page Page, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	w, h, ok := sigpad.TargetSize(page.Width, page.Height, opts.PixelRatio)
	if !ok {
		return nil, fmt.Errorf("%w: size %vx%v", ErrInvalidPage, page.Width, page.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if page.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(page.Background), image.Point{}, draw.Src)
	}

	for i, l := range page.Layers {
		if l.Source == nil {
			return nil, fmt.Errorf("%w: layer %d has no source", ErrInvalidPage, i)
		}
		snap, err := l.Source.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("export: layer %d: %w", i, err)
		}
		r := layerRect(l, page, opts.PixelRatio).Intersect(dst.Bounds())
		if r.Empty() {
			continue
		}
		xdraw.CatmullRom.Scale(dst, r, snap, snap.Bounds(), xdraw.Over, nil)
	}

	sigpad.Logger().Debug("export: page rendered",
		"width", w, "height", h, "pixel_ratio", opts.PixelRatio, "layers", len(page.Layers))
	return dst, nil
}

// layerRect converts the layer box to output pixels.
func layerRect(l Layer, page Page, ratio float64) image.Rectangle {
	x, y, lw, lh := l.X, l.Y, l.Width, l.Height
	if lw <= 0 || lh <= 0 {
		x, y, lw, lh = 0, 0, page.Width, page.Height
	}
	return image.Rect(
		int(math.Floor(x*ratio)), int(math.Floor(y*ratio)),
		int(math.Ceil((x+lw)*ratio)), int(math.Ceil((y+lh)*ratio)),
	)
}
