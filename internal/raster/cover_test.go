package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/sigpad/internal/stroke"
)

var white = color.RGBA{255, 255, 255, 255}

func square(x0, y0, x1, y1 float64) stroke.Polygon {
	return stroke.Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestBounds(t *testing.T) {
	clip := image.Rect(0, 0, 20, 20)
	tests := []struct {
		name  string
		polys []stroke.Polygon
		want  image.Rectangle
	}{
		{"empty", nil, image.Rectangle{}},
		{"fractional", []stroke.Polygon{square(1.5, 2.2, 3.1, 4)}, image.Rect(1, 2, 4, 4)},
		{"union", []stroke.Polygon{square(1, 1, 2, 2), square(5, 6, 7, 8)}, image.Rect(1, 1, 7, 8)},
		{"clipped", []stroke.Polygon{square(-5, -5, 30, 3)}, image.Rect(0, 0, 20, 3)},
		{"outside", []stroke.Polygon{square(40, 40, 50, 50)}, image.Rectangle{}},
		{"too few vertices", []stroke.Polygon{{{X: 1, Y: 1}, {X: 5, Y: 5}}}, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bounds(tt.polys, clip); !got.Eq(tt.want) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFillSquare(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	r := Fill(dst, []stroke.Polygon{square(2, 2, 6, 6)}, white)

	if !r.Eq(image.Rect(2, 2, 6, 6)) {
		t.Errorf("Fill() damage = %v, want (2,2)-(6,6)", r)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			a := dst.RGBAAt(x, y).A
			if inside && a < 254 {
				t.Errorf("pixel (%d,%d) alpha = %d, want opaque", x, y, a)
			}
			if !inside && a != 0 {
				t.Errorf("pixel (%d,%d) alpha = %d, want transparent", x, y, a)
			}
		}
	}
}

func TestFillMixedWindingIsUnion(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	a := square(1, 1, 6, 6)
	b := square(4, 4, 9, 9).Reversed()
	Fill(dst, []stroke.Polygon{a, b}, white)

	for _, p := range []image.Point{{2, 2}, {4, 4}, {5, 5}, {7, 7}} {
		if got := dst.RGBAAt(p.X, p.Y).A; got < 254 {
			t.Errorf("pixel %v alpha = %d, want opaque union", p, got)
		}
	}
}

func TestFillComposites(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	Fill(dst, []stroke.Polygon{square(0, 0, 4, 4)}, color.RGBA{R: 255, A: 255})
	Fill(dst, []stroke.Polygon{square(0, 0, 2, 4)}, color.RGBA{B: 128, A: 128})

	left := dst.RGBAAt(0, 0)
	if left.B < 120 || left.R < 120 || left.R > 135 || left.A < 254 {
		t.Errorf("half-transparent blue over red = %v", left)
	}
	if right := dst.RGBAAt(3, 0); right.B != 0 || right.R < 254 {
		t.Errorf("untouched pixel = %v, want red", right)
	}
}

func TestFillDisc(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Fill(dst, []stroke.Polygon{stroke.Disc(stroke.Point{X: 10, Y: 10}, 4)}, white)

	if dst.RGBAAt(10, 10).A < 254 {
		t.Error("disc center not filled")
	}
	if dst.RGBAAt(10, 15).A != 0 || dst.RGBAAt(3, 10).A != 0 {
		t.Error("disc filled outside its radius")
	}
}

func TestFillOutsideIsNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if r := Fill(dst, []stroke.Polygon{square(10, 10, 20, 20)}, white); !r.Empty() {
		t.Errorf("Fill() damage = %v, want empty", r)
	}
	if r := Fill(dst, nil, white); !r.Empty() {
		t.Errorf("Fill(nil) damage = %v, want empty", r)
	}
}

func TestFillHugeGeometry(t *testing.T) {
	tests := []struct {
		name    string
		poly    stroke.Polygon
		covered image.Point
		empty   image.Point
	}{
		{
			name:    "beyond float32",
			poly:    square(-1e39, 5, 1e39, 10),
			covered: image.Point{10, 7},
			empty:   image.Point{10, 2},
		},
		{
			name:    "sliver from far away",
			poly:    stroke.Polygon{{X: 2, Y: 2}, {X: 1e30, Y: 2}, {X: 1e30, Y: 6}, {X: 2, Y: 6}},
			covered: image.Point{15, 3},
			empty:   image.Point{1, 3},
		},
		{
			name:    "covers everything",
			poly:    stroke.Disc(stroke.Point{X: 10, Y: 10}, 1e12),
			covered: image.Point{0, 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
			r := Fill(dst, []stroke.Polygon{tt.poly}, white)
			if r.Empty() {
				t.Fatal("Fill() painted nothing")
			}
			if a := dst.RGBAAt(tt.covered.X, tt.covered.Y).A; a < 254 {
				t.Errorf("pixel %v alpha = %d, want opaque", tt.covered, a)
			}
			if tt.empty != (image.Point{}) && dst.RGBAAt(tt.empty.X, tt.empty.Y).A != 0 {
				t.Errorf("pixel %v has ink", tt.empty)
			}
		})
	}
}

func TestClipRingKeepsInside(t *testing.T) {
	lo, hi := stroke.Point{X: 0, Y: 0}, stroke.Point{X: 10, Y: 10}

	inside := square(1, 1, 4, 4)
	if got := clipRing(inside, lo, hi); len(got) != 4 {
		t.Errorf("clipRing(inside) = %v, want unchanged", got)
	}

	got := clipRing(square(-1e20, 2, 5, 8), lo, hi)
	if area := got.SignedArea(); area < 29.999 || area > 30.001 {
		t.Errorf("clipped area = %v, want 30", area)
	}
	for _, p := range got {
		if p.X < lo.X-1e-9 || p.X > hi.X+1e-9 || p.Y < lo.Y-1e-9 || p.Y > hi.Y+1e-9 {
			t.Fatalf("vertex %v outside the clip rectangle", p)
		}
	}

	if got := clipRing(square(20, 20, 30, 30), lo, hi); len(got) != 0 {
		t.Errorf("clipRing(outside) = %v, want empty", got)
	}
}
