package gfx

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dronehub/fpv-mini/internal/core"
)

// Debug font cell size in pixels, before textScale.
const (
	glyphW    = 6
	glyphH    = 16
	textScale = 2
)

var (
	whitePixel     *ebiten.Image
	whitePixelOnce sync.Once
)

// solidSource returns a 1x1 white source image for DrawTriangles.
func solidSource() *ebiten.Image {
	whitePixelOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whitePixel
}

// Canvas adapts an ebiten image to core.Canvas. Logical units are pixels:
// the window host lays the screen out at the surface size and lets ebiten
// scale it to the window.
type Canvas struct {
	dst     *ebiten.Image
	w, h    float64
	scratch *ebiten.Image
	verts   []ebiten.Vertex
	indices []uint16
}

// NewCanvas creates a canvas with a logical size of w by h.
func NewCanvas(w, h float64) *Canvas {
	return &Canvas{w: w, h: h}
}

// Target points the canvas at the image the next draws go to.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

// Size returns the logical size.
func (c *Canvas) Size() (float64, float64) {
	return c.w, c.h
}

// FillRect fills r.
func (c *Canvas) FillRect(r core.RectF, col color.NRGBA) {
	if col.A == 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(cx, cy, radius float64, col color.NRGBA) {
	if col.A == 0 || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(radius), col, true)
}

// FillPolygon fills pts as a triangle fan, which is exact for convex shapes.
func (c *Canvas) FillPolygon(pts []core.PointF, col color.NRGBA) {
	if col.A == 0 || len(pts) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	c.verts, c.indices = path.AppendVerticesAndIndicesForFilling(c.verts[:0], c.indices[:0])
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	for i := range c.verts {
		c.verts[i].SrcX = 1
		c.verts[i].SrcY = 1
		c.verts[i].ColorR = r
		c.verts[i].ColorG = g
		c.verts[i].ColorB = b
		c.verts[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.dst.DrawTriangles(c.verts, c.indices, solidSource(), op)
}

// Text draws s with the debug font, tinted by col.
func (c *Canvas) Text(x, y float64, s string, col color.NRGBA) {
	if s == "" || col.A == 0 {
		return
	}

	w := len(s) * glyphW
	if c.scratch == nil || c.scratch.Bounds().Dx() < w {
		c.scratch = ebiten.NewImage(max(w, 256), glyphH)
	}
	c.scratch.Clear()
	ebitenutil.DebugPrintAt(c.scratch, s, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	c.dst.DrawImage(c.scratch.SubImage(image.Rect(0, 0, w, glyphH)).(*ebiten.Image), op)
}

// TextWidth returns the drawn width of s.
func (c *Canvas) TextWidth(s string) float64 {
	return TextWidth(s)
}

// TextWidth is the width in pixels of s drawn with the scaled debug font.
func TextWidth(s string) float64 {
	return float64(len(s) * glyphW * textScale)
}
