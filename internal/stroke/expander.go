package stroke

import "math"

// Cap specifies the shape of open path endpoints.
type Cap int

const (
	// CapButt ends the outline exactly at the endpoint.
	CapButt Cap = iota
	// CapRound ends the outline with a half disc of radius width/2.
	CapRound
)

// Join specifies the shape of the outline where path pieces meet.
type Join int

const (
	// JoinMiter extends the outer edges to a point, limited by MiterLimit.
	JoinMiter Join = iota
	// JoinRound fills the corner with a circular arc.
	JoinRound
	// JoinBevel cuts the corner with a straight edge.
	JoinBevel
)

// Style describes the outline produced by an Expander.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// Element is one path command.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

// LineTo adds a straight segment.
type LineTo struct{ Point Point }

// QuadTo adds a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

// CubicTo adds a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

// Close closes the subpath.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Expander converts stroked paths to fill outlines. An Expander is reusable
// but not safe for concurrent use.
type Expander struct {
	style     Style
	tolerance float64

	forward  *builder
	backward *builder
	output   *builder

	startPt   Point
	startNorm Vec2
	startTan  Vec2
	lastPt    Point
	lastTan   Vec2
	lastNorm  Vec2

	// Joins whose angle is below this threshold are drawn as plain lines.
	joinThresh float64
}

// NewExpander returns an expander for the given style.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: Tolerance,
	}
}

// SetTolerance sets the curve flattening tolerance. Non-positive values are
// ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the fill outline of path. Zero-length subpaths produce no
// outline.
func (e *Expander) Expand(path []Element) []Element {
	e.reset()

	for _, el := range path {
		switch el := el.(type) {
		case MoveTo:
			e.finish()
			e.startPt = el.Point
			e.lastPt = el.Point
		case LineTo:
			if el.Point != e.lastPt {
				e.lineTo(el.Point)
			}
		case QuadTo:
			if el.Control != e.lastPt || el.Point != e.lastPt {
				e.polylineTo(FlattenQuad(nil, e.lastPt, el.Control, el.Point, e.tolerance))
			}
		case CubicTo:
			if el.Control1 != e.lastPt || el.Control2 != e.lastPt || el.Point != e.lastPt {
				e.polylineTo(FlattenCubic(nil, e.lastPt, el.Control1, el.Control2, el.Point, e.tolerance))
			}
		case Close:
			if e.lastPt != e.startPt {
				e.lineTo(e.startPt)
			}
			e.finishClosed()
		}
	}

	e.finish()
	return e.output.elements
}

func (e *Expander) reset() {
	e.forward = newBuilder()
	e.backward = newBuilder()
	e.output = newBuilder()
	e.startPt = Point{}
	e.startNorm = Vec2{}
	e.startTan = Vec2{}
	e.lastPt = Point{}
	e.lastTan = Vec2{}
	e.lastNorm = Vec2{}
	e.joinThresh = 2 * e.tolerance / e.style.Width
}

func (e *Expander) lineTo(p Point) {
	tangent := p.Sub(e.lastPt)
	e.join(tangent)
	e.lastTan = tangent
	e.line(tangent, p)
}

func (e *Expander) polylineTo(points []Point) {
	for _, p := range points {
		if p.Sub(e.lastPt).Dot(p.Sub(e.lastPt)) > 1e-10 {
			e.lineTo(p)
		}
	}
}

// normal returns the left normal of tangent, scaled to half the width.
func (e *Expander) normal(tangent Vec2) Vec2 {
	return tangent.Perp().Scale(0.5 * e.style.Width / tangent.Length())
}

// join connects the piece ending at lastPt to a piece leaving along tan0.
func (e *Expander) join(tan0 Vec2) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if len(e.forward.elements) == 0 {
		e.forward.moveTo(p0.Add(norm.Neg()))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly collinear pieces are connected without a join so the two
	// offset paths stay continuous.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinBevel:
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
	case JoinMiter:
		if 2*hypot < (hypot+dot)*e.style.MiterLimit*e.style.MiterLimit {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
	case JoinRound:
		// The arc goes on the outer side of the turn, from the previous
		// normal to the current one.
		lastNorm := e.normal(e.lastTan)
		angle := math.Atan2(cross, dot)
		if angle > 0 {
			e.backward.lineTo(p0.Add(norm))
			e.arc(e.forward, p0, lastNorm.Neg(), angle)
		} else {
			e.forward.lineTo(p0.Add(norm.Neg()))
			e.arc(e.backward, p0, lastNorm, angle)
		}
	}
}

func (e *Expander) miter(p0 Point, norm, ab, cd Vec2, cross float64) {
	lastNorm := e.normal(ab)

	switch {
	case cross > 0:
		fpLast := p0.Add(lastNorm.Neg())
		fpThis := p0.Add(norm.Neg())
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.forward.lineTo(fpThis.Add(cd.Scale(-h)))
		e.backward.lineTo(p0)
	case cross < 0:
		fpLast := p0.Add(lastNorm)
		fpThis := p0.Add(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.backward.lineTo(fpThis.Add(cd.Scale(-h)))
		e.forward.lineTo(p0)
	}
}

func (e *Expander) line(tangent Vec2, p1 Point) {
	norm := e.normal(tangent)
	e.forward.lineTo(p1.Add(norm.Neg()))
	e.backward.lineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish closes an open subpath with caps.
func (e *Expander) finish() {
	if len(e.forward.elements) == 0 {
		return
	}

	e.output.extend(e.forward)
	// lastNorm points at the backward side; the end cap starts on the
	// forward side.
	e.cap(e.lastPt, e.lastNorm.Neg())
	e.appendReversed(e.backward)
	e.cap(e.startPt, e.startNorm)
	e.output.close()

	e.forward = newBuilder()
	e.backward = newBuilder()
}

// finishClosed emits a closed subpath as two rings.
func (e *Expander) finishClosed() {
	if len(e.forward.elements) == 0 {
		return
	}

	e.join(e.startTan)
	e.output.extend(e.forward)
	e.output.close()

	back := e.backward.elements
	e.output.moveTo(endPoint(back[len(back)-1]))
	e.appendReversed(e.backward)
	e.output.close()

	e.forward = newBuilder()
	e.backward = newBuilder()
}

// cap continues the output from center+norm around the endpoint to
// center-norm.
func (e *Expander) cap(center Point, norm Vec2) {
	switch e.style.Cap {
	case CapButt:
		e.output.lineTo(center.Add(norm.Neg()))
	case CapRound:
		e.arc(e.output, center, norm, math.Pi)
	}
}

// arc adds a circular arc around center, starting at center+norm and
// sweeping angle radians, approximated by cubic segments of at most 90
// degrees.
func (e *Expander) arc(out *builder, center Point, norm Vec2, angle float64) {
	n := max(1, int(math.Ceil(math.Abs(angle)/(math.Pi/2))))
	step := angle / float64(n)
	a := norm.Angle()
	r := norm.Length()

	for range n {
		a0, a1 := a, a+step
		k := 4.0 / 3 * math.Tan((a1-a0)/4)

		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		p1 := Point{X: center.X + r*cos0, Y: center.Y + r*sin0}
		p2 := Point{X: center.X + r*cos1, Y: center.Y + r*sin1}
		c1 := Point{X: p1.X - k*r*sin0, Y: p1.Y + k*r*cos0}
		c2 := Point{X: p2.X + k*r*sin1, Y: p2.Y - k*r*cos1}
		out.cubicTo(c1, c2, p2)
		a = a1
	}
}

// appendReversed appends the path of b walked backwards, without its
// initial MoveTo.
func (e *Expander) appendReversed(b *builder) {
	els := b.elements
	for i := len(els) - 1; i >= 1; i-- {
		to := endPoint(els[i-1])
		switch el := els[i].(type) {
		case LineTo:
			e.output.lineTo(to)
		case CubicTo:
			e.output.cubicTo(el.Control2, el.Control1, to)
		}
	}
}

func endPoint(el Element) Point {
	switch el := el.(type) {
	case MoveTo:
		return el.Point
	case LineTo:
		return el.Point
	case QuadTo:
		return el.Point
	case CubicTo:
		return el.Point
	}
	return Point{}
}

// builder accumulates path elements.
type builder struct {
	elements []Element
}

func newBuilder() *builder {
	return &builder{elements: make([]Element, 0, 64)}
}

func (b *builder) moveTo(p Point)          { b.elements = append(b.elements, MoveTo{Point: p}) }
func (b *builder) lineTo(p Point)          { b.elements = append(b.elements, LineTo{Point: p}) }
func (b *builder) cubicTo(c1, c2, p Point) { b.elements = append(b.elements, CubicTo{c1, c2, p}) }
func (b *builder) close()                  { b.elements = append(b.elements, Close{}) }

func (b *builder) extend(other *builder) {
	b.elements = append(b.elements, other.elements...)
}
