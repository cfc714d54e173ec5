package core

import "image/color"

// PointF is a point in logical surface units.
type PointF struct {
	X, Y float64
}

// Canvas is a 2D drawing surface addressed in logical units.
// Colors are non-premultiplied; the alpha channel is the draw opacity.
// Implementations decide how logical units map to cells or pixels.
type Canvas interface {
	// Size returns the logical width and height of the surface.
	Size() (w, h float64)

	// FillRect fills an axis-aligned rectangle.
	FillRect(r RectF, c color.NRGBA)

	// FillCircle fills a circle centered at (cx, cy).
	FillCircle(cx, cy, radius float64, c color.NRGBA)

	// FillPolygon fills a simple polygon given in drawing order.
	FillPolygon(pts []PointF, c color.NRGBA)

	// Text draws a single line of text with its top-left corner at (x, y).
	Text(x, y float64, s string, c color.NRGBA)

	// TextWidth returns the logical width Text would use for s.
	TextWidth(s string) float64
}

// PointInPolygon reports whether (x, y) lies inside the polygon (even-odd rule).
func PointInPolygon(pts []PointF, x, y float64) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) {
			cross := (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if x < cross {
				inside = !inside
			}
		}
	}
	return inside
}
