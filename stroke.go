package sigpad

import (
	"image"
	"math"
)

// PrimaryPointer is the pointer ID used by the direct stroke methods,
// the ID browsers assign to the mouse.
const PrimaryPointer = 1

// maxCoordinate bounds stroke points (CSS pixels) and line widths (buffer
// pixels), keeping outline geometry far from the float64 limits.
const maxCoordinate = 1e9

// BeginStroke starts a stroke at p (container CSS pixels) on behalf of the
// primary pointer. It returns ErrStrokeActive if a stroke already owns the
// surface. Without a render target it does nothing.
func (s *Surface) BeginStroke(p Point) error {
	return s.beginStroke(PrimaryPointer, p)
}

func (s *Surface) beginStroke(id int, p Point) error {
	if s.active {
		return ErrStrokeActive
	}
	if !s.mounted || s.closed || !p.IsFinite() {
		return nil
	}
	// The buffer may lag one frame behind layout; a stroke must start on
	// a buffer that matches the container.
	if s.needsResize() {
		s.resize()
	}
	if s.buf == nil {
		return nil
	}

	bp := s.inkPoint(p)
	s.active = true
	s.owner = id
	if s.capturer != nil {
		s.capturer.SetPointerCapture(id)
	}

	s.points = append(s.points[:0], bp)
	s.pen = bp
	return nil
}

// ExtendStroke appends p to the active stroke and paints exactly one new
// piece of ink. The first two points are joined by a straight segment;
// from the third point on the ink follows a quadratic curve through the
// previous point as control, ending halfway to p. Without an active stroke
// it does nothing.
func (s *Surface) ExtendStroke(p Point) {
	if !s.active || !s.ready() || !p.IsFinite() {
		return
	}
	bp := s.inkPoint(p)
	s.points = append(s.points, bp)

	if len(s.points) < 3 {
		s.markPainted(paintSegment(s.buf, s.paint, s.pen, bp))
		s.pen = bp
		return
	}

	prev := s.points[len(s.points)-2]
	mid := prev.Midpoint(bp)
	s.markPainted(paintQuad(s.buf, s.paint, s.pen, prev, mid))
	s.pen = mid
}

// EndStroke finishes the active stroke. A stroke made of a single point
// leaves a disc of radius max(1, width*dpr/2); otherwise the ink is
// completed up to the last point. Ownership is released in both cases.
// Calling EndStroke without an active stroke does nothing.
func (s *Surface) EndStroke() {
	if !s.active {
		return
	}
	defer s.release()
	if !s.ready() {
		return
	}

	switch n := len(s.points); {
	case n == 1:
		s.markPainted(paintDot(s.buf, s.paint, s.points[0]))
	case n > 1:
		last := s.points[n-1]
		if last != s.pen {
			s.markPainted(paintSegment(s.buf, s.paint, s.pen, last))
		}
		s.pen = last
	}
}

// EndStrokeAt finishes the active stroke at p. If p differs from the last
// recorded point it is added first, exactly like ExtendStroke.
func (s *Surface) EndStrokeAt(p Point) {
	if !s.active {
		return
	}
	if s.ready() && p.IsFinite() && len(s.points) > 0 && s.inkPoint(p) != s.points[len(s.points)-1] {
		s.ExtendStroke(p)
	}
	s.EndStroke()
}

// CancelStroke finishes the active stroke on a pointer-cancel. The ink
// painted so far is kept and ownership is released, so the next
// BeginStroke succeeds.
func (s *Surface) CancelStroke() {
	s.EndStroke()
}

// Clear erases the whole buffer and re-applies sizing, so afterwards the
// buffer is empty and matches the current container even if a resize was
// pending. Clear always succeeds and is idempotent.
func (s *Surface) Clear() {
	if s.buf != nil {
		s.buf.Clear()
		s.markPainted(s.buf.Bounds())
	}
	s.resize()
}

// release drops stroke ownership and the point accumulator.
func (s *Surface) release() {
	if s.capturer != nil {
		s.capturer.ReleasePointerCapture(s.owner)
	}
	s.active = false
	s.owner = 0
	s.points = s.points[:0]
}

// inkPoint maps a stroke point to buffer pixels. Points beyond
// maxCoordinate are pulled back towards the pen.
func (s *Surface) inkPoint(p Point) Point {
	var anchor Point
	if s.active {
		anchor = s.toDisplay(s.pen)
	}
	return s.toBuffer(limitPoint(anchor, p))
}

// limitPoint moves p along the line from anchor until both coordinates
// lie within maxCoordinate. A straight segment from anchor keeps its
// direction, so its visible part does not change.
func limitPoint(anchor, p Point) Point {
	t := 1.0
	for _, c := range [...][2]float64{{anchor.X, p.X}, {anchor.Y, p.Y}} {
		a, v := c[0], c[1]
		switch {
		case v > maxCoordinate:
			t = math.Min(t, (maxCoordinate-a)/(v-a))
		case v < -maxCoordinate:
			t = math.Min(t, (-maxCoordinate-a)/(v-a))
		}
	}
	if t >= 1 {
		return p
	}
	t = math.Max(t, 0)
	return Point{X: anchor.X + (p.X-anchor.X)*t, Y: anchor.Y + (p.Y-anchor.Y)*t}
}

// toDisplay is the inverse of toBuffer.
func (s *Surface) toDisplay(p Point) Point {
	if s.buf == nil || s.displayW <= 0 || s.displayH <= 0 {
		return p
	}
	return p.Scale(s.displayW/float64(s.buf.Width()), s.displayH/float64(s.buf.Height()))
}

// toBuffer maps container CSS pixels to buffer pixels using the size the
// buffer is currently displayed at.
func (s *Surface) toBuffer(p Point) Point {
	if s.buf == nil || s.displayW <= 0 || s.displayH <= 0 {
		return p
	}
	return p.Scale(float64(s.buf.Width())/s.displayW, float64(s.buf.Height())/s.displayH)
}

func (s *Surface) markPainted(r image.Rectangle) {
	if r.Empty() {
		return
	}
	s.damage = s.damage.Union(r)
	s.version++
}
