package stroke

// Polygons flattens an outline into rings. Every MoveTo or Close starts a
// new ring; rings with fewer than three points are dropped.
func Polygons(outline []Element, tolerance float64) []Polygon {
	var (
		rings []Polygon
		ring  Polygon
	)
	flush := func() {
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
		ring = nil
	}
	last := func() Point {
		if len(ring) == 0 {
			return Point{}
		}
		return ring[len(ring)-1]
	}

	for _, el := range outline {
		switch el := el.(type) {
		case MoveTo:
			flush()
			ring = Polygon{el.Point}
		case LineTo:
			ring = append(ring, el.Point)
		case QuadTo:
			ring = FlattenQuad(ring, last(), el.Control, el.Point, tolerance)
		case CubicTo:
			ring = FlattenCubic(ring, last(), el.Control1, el.Control2, el.Point, tolerance)
		case Close:
			flush()
		}
	}
	flush()
	return rings
}
