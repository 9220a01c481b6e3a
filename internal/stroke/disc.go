package stroke

import "math"

// Disc segment count bounds.
const (
	minDiscSegments = 8
	maxDiscSegments = 256
)

// Disc returns a polygon approximating the circle of radius r around c.
// The number of vertices is chosen so the chord error stays within
// Tolerance.
func Disc(c Point, r float64) Polygon {
	n := discSegments(r)
	pg := make(Polygon, n)
	step := 2 * math.Pi / float64(n)
	for i := range pg {
		a := float64(i) * step
		pg[i] = Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pg
}

func discSegments(r float64) int {
	if r <= Tolerance {
		return minDiscSegments
	}
	// chord error of an n-gon: r * (1 - cos(pi/n))
	n := int(math.Ceil(math.Pi / math.Acos(1-Tolerance/r)))
	return min(max(n, minDiscSegments), maxDiscSegments)
}
