package sigpad

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWidth is returned when a stroke width is not positive or exceeds
// MaxStrokeWidth.
var ErrInvalidWidth = errors.New("sigpad: stroke width must be positive and at most MaxStrokeWidth")

// Fixed stroke parameters. Joins and caps are always round.
const (
	// MiterLimit is the miter limit of the ink outline.
	MiterLimit = 2.0

	// MaxStrokeWidth is the widest accepted stroke, in CSS pixels.
	MaxStrokeWidth = 10000.0

	// DefaultStrokeWidth is the stroke width in CSS pixels.
	DefaultStrokeWidth = 0.7
)

// DefaultStrokeColor is white ink, matching the dark invitation card.
var DefaultStrokeColor = White

// Style is the host-controlled part of the ink.
// Width is in CSS pixels and is multiplied by the device pixel ratio at
// paint time.
type Style struct {
	Color RGBA
	Width float64
}

// DefaultStyle returns white ink of DefaultStrokeWidth.
func DefaultStyle() Style {
	return Style{Color: DefaultStrokeColor, Width: DefaultStrokeWidth}
}

// WithColor returns a copy of the style with the given color.
func (s Style) WithColor(c RGBA) Style {
	s.Color = c
	return s
}

// WithWidth returns a copy of the style with the given width.
func (s Style) WithWidth(w float64) Style {
	s.Width = w
	return s
}

// Validate reports whether the style can be painted.
func (s Style) Validate() error {
	return validateWidth(s.Width)
}

func validateWidth(w float64) error {
	if !(w > 0 && w <= MaxStrokeWidth) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, w)
	}
	return nil
}

// PaintConfig is the complete, explicit input of a single paint operation.
// It is derived from a Style and the device pixel ratio of the buffer being
// painted, so paint code never reads mutable surface state.
type PaintConfig struct {
	Color RGBA

	// LineWidth is the stroke width in buffer pixels.
	LineWidth float64

	// DPR is the device pixel ratio the buffer was provisioned for.
	DPR float64
}

// PaintConfig resolves the style against a device pixel ratio.
func (s Style) PaintConfig(dpr float64) PaintConfig {
	dpr = normalizeDPR(dpr)
	return PaintConfig{
		Color:     s.Color,
		LineWidth: math.Min(s.Width*dpr, maxCoordinate),
		DPR:       dpr,
	}
}

// DotRadius is the radius of the disc left by a tap: half the line width,
// never less than one buffer pixel.
func (pc PaintConfig) DotRadius() float64 {
	return math.Max(1, pc.LineWidth/2)
}

// normalizeDPR maps missing or nonsensical ratios to 1.
func normalizeDPR(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		return 1
	}
	return dpr
}
