// Package stroke turns ink paths into fillable outlines.
//
// An ink path is a short open path (a line, or a quadratic Bezier curve
// produced by stroke smoothing). The Expander converts it into a closed
// outline by building two offset paths:
//   - forward: offset by -width/2 along the normal
//   - backward: offset by +width/2 along the normal
//
// The outline is the forward path, the end cap, the reversed backward path
// and the start cap. Joins between flattened curve pieces are added on the
// outer side of each turn.
//
// Outlines may overlap themselves on the inner side of tight turns. They
// are meant for a nonzero fill; see internal/raster.
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Style{
//	    Width:      2.8,
//	    Cap:        stroke.CapRound,
//	    Join:       stroke.JoinRound,
//	    MiterLimit: 2,
//	})
//	e.SetTolerance(stroke.Tolerance)
//
//	outline := e.Expand([]stroke.Element{
//	    stroke.MoveTo{Point: stroke.Point{X: 10, Y: 10}},
//	    stroke.QuadTo{Control: stroke.Point{X: 30, Y: 0}, Point: stroke.Point{X: 50, Y: 10}},
//	})
//	rings := stroke.Polygons(outline, stroke.Tolerance)
//
// Taps have no direction and are painted with Disc instead.
package stroke
