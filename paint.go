package sigpad

import (
	"image"

	"github.com/gogpu/sigpad/internal/raster"
	"github.com/gogpu/sigpad/internal/stroke"
)

// Paint primitives. Each one rasterizes a single piece of ink into dst with
// the given configuration and returns the damaged rectangle. Coordinates
// are buffer pixels.

func paintSegment(dst *Buffer, pc PaintConfig, from, to Point) image.Rectangle {
	if from == to {
		return fillInk(dst, pc, []stroke.Polygon{stroke.Disc(toStrokePoint(from), pc.LineWidth/2)})
	}
	return strokeInk(dst, pc,
		stroke.MoveTo{Point: toStrokePoint(from)},
		stroke.LineTo{Point: toStrokePoint(to)},
	)
}

func paintQuad(dst *Buffer, pc PaintConfig, from, ctrl, to Point) image.Rectangle {
	if from == ctrl && ctrl == to {
		return paintSegment(dst, pc, from, to)
	}
	return strokeInk(dst, pc,
		stroke.MoveTo{Point: toStrokePoint(from)},
		stroke.QuadTo{Control: toStrokePoint(ctrl), Point: toStrokePoint(to)},
	)
}

func paintDot(dst *Buffer, pc PaintConfig, at Point) image.Rectangle {
	disc := stroke.Disc(toStrokePoint(at), pc.DotRadius())
	return fillInk(dst, pc, []stroke.Polygon{disc})
}

func strokeInk(dst *Buffer, pc PaintConfig, path ...stroke.Element) image.Rectangle {
	e := stroke.NewExpander(inkStyle(pc))
	e.SetTolerance(stroke.Tolerance)
	return fillInk(dst, pc, stroke.Polygons(e.Expand(path), stroke.Tolerance))
}

// inkStyle is the outline style of every piece of ink.
func inkStyle(pc PaintConfig) stroke.Style {
	return stroke.Style{
		Width:      pc.LineWidth,
		Cap:        stroke.CapRound,
		Join:       stroke.JoinRound,
		MiterLimit: MiterLimit,
	}
}

func fillInk(dst *Buffer, pc PaintConfig, polys []stroke.Polygon) image.Rectangle {
	if len(polys) == 0 {
		return image.Rectangle{}
	}
	return raster.Fill(dst.RGBA(), polys, pc.Color.Premultiplied())
}

func toStrokePoint(p Point) stroke.Point {
	return stroke.Point{X: p.X, Y: p.Y}
}
