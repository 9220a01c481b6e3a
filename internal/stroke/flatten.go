package stroke

import "math"

// Tolerance is the maximum distance, in buffer pixels, between a curve and
// its flattened polyline.
const Tolerance = 0.1

// maxDepth bounds the subdivision of degenerate or huge curves.
const maxDepth = 16

// FlattenQuad appends to dst the polyline approximating the quadratic
// Bezier curve p0-p1-p2. The start point p0 is not appended; the end point
// p2 always is, so consecutive segments chain without duplicates.
func FlattenQuad(dst []Point, p0, p1, p2 Point, tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	return flattenQuadRec(dst, p0, p1, p2, tolerance, 0)
}

func flattenQuadRec(dst []Point, p0, p1, p2 Point, tolerance float64, depth int) []Point {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		return append(dst, p2)
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	dst = flattenQuadRec(dst, p0, q0, q2, tolerance, depth+1)
	return flattenQuadRec(dst, q2, q1, p2, tolerance, depth+1)
}

// FlattenCubic is FlattenQuad for the cubic Bezier curve p0-p1-p2-p3.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	return flattenCubicRec(dst, p0, p1, p2, p3, tolerance, 0)
}

func flattenCubicRec(dst []Point, p0, p1, p2, p3 Point, tolerance float64, depth int) []Point {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || d < tolerance {
		return append(dst, p3)
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	dst = flattenCubicRec(dst, p0, q0, r0, s, tolerance, depth+1)
	return flattenCubicRec(dst, s, r1, q2, p3, tolerance, depth+1)
}

// distanceToLine returns the distance from p to the segment a-b.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Distance(a)
	}

	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Scale(t)))
}
