// Package raster composites ink polygons onto an RGBA buffer.
//
// Coverage is computed by golang.org/x/image/vector. The rasterizer
// accumulates signed area and clamps its absolute value, so overlapping
// polygons only form a union when they share a winding direction; Fill
// normalizes every ring before handing it over.
//
// Rings are clipped to a guard band around the rasterized rectangle first,
// so the float32 coordinates the rasterizer sees stay small whatever the
// size of the input geometry.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/sigpad/internal/stroke"
	"golang.org/x/image/vector"
)

// guard is how far, in pixels, clipped rings may extend beyond the
// rasterized rectangle.
const guard = 1

// Bounds returns the pixel rectangle covered by the polygons, clipped to
// clip. The result is empty when nothing would be painted.
func Bounds(polys []stroke.Polygon, clip image.Rectangle) image.Rectangle {
	var r image.Rectangle
	for _, pg := range polys {
		if len(pg) < 3 {
			continue
		}
		lo, hi := pg.Bounds()
		pr := image.Rect(
			pixel(math.Floor(lo.X), clip.Min.X, clip.Max.X), pixel(math.Floor(lo.Y), clip.Min.Y, clip.Max.Y),
			pixel(math.Ceil(hi.X), clip.Min.X, clip.Max.X), pixel(math.Ceil(hi.Y), clip.Min.Y, clip.Max.Y),
		)
		r = r.Union(pr)
	}
	return r.Intersect(clip)
}

// pixel converts v to an integer coordinate clamped to [lo-guard, hi+guard].
func pixel(v float64, lo, hi int) int {
	switch {
	case !(v >= float64(lo-guard)):
		return lo - guard
	case v > float64(hi+guard):
		return hi + guard
	}
	return int(v)
}

// Fill paints the union of polys with c using source-over compositing and
// returns the damaged rectangle. Only the clipped bounding box of the
// shapes is rasterized.
func Fill(dst *image.RGBA, polys []stroke.Polygon, c color.Color) image.Rectangle {
	r := Bounds(polys, dst.Bounds())
	if r.Empty() {
		return image.Rectangle{}
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	lo := stroke.Point{X: ox - guard, Y: oy - guard}
	hi := stroke.Point{X: float64(r.Max.X) + guard, Y: float64(r.Max.Y) + guard}
	for _, pg := range polys {
		if pg.SignedArea() < 0 {
			pg = pg.Reversed()
		}
		if pg = clipRing(pg, lo, hi); len(pg) < 3 {
			continue
		}
		z.MoveTo(float32(pg[0].X-ox), float32(pg[0].Y-oy))
		for _, p := range pg[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}

	z.Draw(dst, r, image.NewUniform(c), image.Point{})
	return r
}

// clipRing clips pg to the rectangle lo-hi, one edge at a time
// (Sutherland-Hodgman). Coverage inside the rectangle is unchanged.
func clipRing(pg stroke.Polygon, lo, hi stroke.Point) stroke.Polygon {
	if len(pg) < 3 {
		return nil
	}
	lo0, hi0 := pg.Bounds()
	if lo0.X >= lo.X && lo0.Y >= lo.Y && hi0.X <= hi.X && hi0.Y <= hi.Y {
		return pg
	}
	pg = clipHalf(pg, func(p stroke.Point) float64 { return p.X - lo.X })
	pg = clipHalf(pg, func(p stroke.Point) float64 { return hi.X - p.X })
	pg = clipHalf(pg, func(p stroke.Point) float64 { return p.Y - lo.Y })
	return clipHalf(pg, func(p stroke.Point) float64 { return hi.Y - p.Y })
}

// clipHalf keeps the part of pg where dist is not negative.
func clipHalf(pg stroke.Polygon, dist func(stroke.Point) float64) stroke.Polygon {
	if len(pg) == 0 {
		return nil
	}
	out := make(stroke.Polygon, 0, len(pg)+2)
	prev := pg[len(pg)-1]
	dp := dist(prev)
	for _, p := range pg {
		d := dist(p)
		if (d >= 0) != (dp >= 0) {
			// Interpolate from the inside end to keep the crossing exact
			// when the other end is far away.
			if dp >= 0 {
				out = append(out, prev.Lerp(p, dp/(dp-d)))
			} else {
				out = append(out, p.Lerp(prev, d/(d-dp)))
			}
		}
		if d >= 0 {
			out = append(out, p)
		}
		prev, dp = p, d
	}
	return out
}
