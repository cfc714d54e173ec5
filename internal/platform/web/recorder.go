package web

import (
	"image/color"

	"github.com/dronehub/fpv-mini/internal/core"
)

// Op kinds.
const (
	OpRect   = "rect"
	OpCircle = "circle"
	OpPoly   = "poly"
	OpText   = "text"
)

// Op is one draw call replayed by the browser onto a 2D canvas context.
// Points holds x,y pairs for polygons; Color is [r, g, b, a] with a in 0..255.
type Op struct {
	Kind   string    `json:"k"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	W      float64   `json:"w,omitempty"`
	H      float64   `json:"h,omitempty"`
	R      float64   `json:"r,omitempty"`
	Points []float64 `json:"p,omitempty"`
	Text   string    `json:"t,omitempty"`
	Color  [4]uint8  `json:"c"`
}

// Recorder is a core.Canvas that records draw calls as a display list.
type Recorder struct {
	w, h float64
	ops  []Op
}

// Glyph width of the browser font, in logical units.
const glyphWidth = 11

// NewRecorder creates a recorder with the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h, ops: make([]Op, 0, 256)}
}

// Size returns the logical size.
func (r *Recorder) Size() (float64, float64) {
	return r.w, r.h
}

// FillRect records a rectangle.
func (r *Recorder) FillRect(rect core.RectF, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r.ops = append(r.ops, Op{Kind: OpRect, X: rect.X, Y: rect.Y, W: rect.W, H: rect.H, Color: rgba(c)})
}

// FillCircle records a circle.
func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if c.A == 0 || radius <= 0 {
		return
	}
	r.ops = append(r.ops, Op{Kind: OpCircle, X: cx, Y: cy, R: radius, Color: rgba(c)})
}

// FillPolygon records a polygon.
func (r *Recorder) FillPolygon(pts []core.PointF, c color.NRGBA) {
	if c.A == 0 || len(pts) < 3 {
		return
	}
	flat := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	r.ops = append(r.ops, Op{Kind: OpPoly, Points: flat, Color: rgba(c)})
}

// Text records a line of text.
func (r *Recorder) Text(x, y float64, s string, c color.NRGBA) {
	if s == "" || c.A == 0 {
		return
	}
	r.ops = append(r.ops, Op{Kind: OpText, X: x, Y: y, Text: s, Color: rgba(c)})
}

// TextWidth matches the monospace font the page draws with.
func (r *Recorder) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * glyphWidth
}

// Flush returns the recorded ops and starts a new list.
func (r *Recorder) Flush() []Op {
	ops := r.ops
	r.ops = make([]Op, 0, cap(ops))
	return ops
}

// Len is the number of ops recorded since the last Flush.
func (r *Recorder) Len() int {
	return len(r.ops)
}

func rgba(c color.NRGBA) [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}
