package core

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// Darkness below this Lab lightness clears the cell instead of painting it,
// so backdrops render as the terminal's own background.
const blankLightness = 0.12

// palette holds the RGB appearance of each terminal color.
var palette = map[Color]colorful.Color{
	ColorRed:           mustHex("#cd3131"),
	ColorGreen:         mustHex("#0dbc79"),
	ColorYellow:        mustHex("#e5e510"),
	ColorBlue:          mustHex("#2472c8"),
	ColorMagenta:       mustHex("#bc3fbc"),
	ColorCyan:          mustHex("#11a8cd"),
	ColorWhite:         mustHex("#e5e5e5"),
	ColorBrightRed:     mustHex("#f14c4c"),
	ColorBrightGreen:   mustHex("#23d18b"),
	ColorBrightYellow:  mustHex("#f5f543"),
	ColorBrightBlue:    mustHex("#3b8eea"),
	ColorBrightMagenta: mustHex("#d670d6"),
	ColorBrightCyan:    mustHex("#29b8db"),
	ColorBrightWhite:   mustHex("#ffffff"),
	ColorOrange:        mustHex("#ff8700"),
	ColorGray:          mustHex("#8a8a8a"),
	ColorNavy:          mustHex("#1c2a4a"),
	ColorDarkGray:      mustHex("#3a3a3a"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CellCanvas draws logical-unit shapes onto a character Screen.
// A cell is painted when its center falls inside a shape; shapes smaller than
// one cell still paint the cell under their center. Opacity picks the shade glyph.
type CellCanvas struct {
	screen  *Screen
	logW    float64
	logH    float64
	scaleX  float64
	scaleY  float64
	nearest map[color.NRGBA]Color
}

// NewCellCanvas maps a logical surface of logW x logH units onto the whole screen.
func NewCellCanvas(s *Screen, logW, logH float64) *CellCanvas {
	return &CellCanvas{
		screen:  s,
		logW:    logW,
		logH:    logH,
		scaleX:  float64(s.Width()) / logW,
		scaleY:  float64(s.Height()) / logH,
		nearest: make(map[color.NRGBA]Color),
	}
}

// Size returns the logical size of the surface.
func (c *CellCanvas) Size() (float64, float64) {
	return c.logW, c.logH
}

// CellAt converts a logical point to the cell that contains it.
func (c *CellCanvas) CellAt(x, y float64) (int, int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// FillRect paints every cell whose center lies inside r.
func (c *CellCanvas) FillRect(r RectF, col color.NRGBA) {
	c.fill(r.X, r.Y, r.Right(), r.Bottom(), col, func(x, y float64) bool {
		return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
	})
}

// FillCircle paints every cell whose center lies inside the circle.
func (c *CellCanvas) FillCircle(cx, cy, radius float64, col color.NRGBA) {
	r2 := radius * radius
	c.fill(cx-radius, cy-radius, cx+radius, cy+radius, col, func(x, y float64) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r2
	})
}

// FillPolygon paints every cell whose center lies inside the polygon.
func (c *CellCanvas) FillPolygon(pts []PointF, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	c.fill(minX, minY, maxX, maxY, col, func(x, y float64) bool {
		return PointInPolygon(pts, x, y)
	})
}

// Text writes s one rune per cell starting at the cell containing (x, y).
func (c *CellCanvas) Text(x, y float64, s string, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	cx, cy := c.CellAt(x, y)
	c.screen.DrawTextWithColor(cx, cy, s, c.colorFor(col))
}

// TextWidth returns the logical width of s at one rune per cell.
func (c *CellCanvas) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) / c.scaleX
}

// fill walks the cells overlapping the bounds and paints those accepted by inside.
func (c *CellCanvas) fill(x0, y0, x1, y1 float64, col color.NRGBA, inside func(x, y float64) bool) {
	glyph, ok := shade(col.A)
	if !ok {
		return
	}
	tc := c.colorFor(col)
	if c.isBlank(col) {
		glyph, tc = ' ', ColorDefault
	}

	cx0, cy0 := c.CellAt(x0, y0)
	cx1, cy1 := c.CellAt(x1, y1)
	painted := false
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			lx := (float64(cx) + 0.5) / c.scaleX
			ly := (float64(cy) + 0.5) / c.scaleY
			if inside(lx, ly) {
				c.screen.SetWithColor(cx, cy, glyph, tc)
				painted = true
			}
		}
	}
	if !painted {
		cx, cy := c.CellAt((x0+x1)/2, (y0+y1)/2)
		c.screen.SetWithColor(cx, cy, glyph, tc)
	}
}

// shade maps opacity to a block glyph; fully transparent draws nothing.
func shade(alpha uint8) (rune, bool) {
	switch {
	case alpha >= 192:
		return '█', true
	case alpha >= 128:
		return '▓', true
	case alpha >= 64:
		return '▒', true
	case alpha >= 12:
		return '░', true
	default:
		return ' ', false
	}
}

func (c *CellCanvas) isBlank(col color.NRGBA) bool {
	l, _, _ := toColorful(col).Lab()
	return l < blankLightness
}

// colorFor returns the palette entry closest to col in Lab space.
func (c *CellCanvas) colorFor(col color.NRGBA) Color {
	key := col
	key.A = 255
	if tc, ok := c.nearest[key]; ok {
		return tc
	}
	want := toColorful(col)
	best, bestDist := ColorDefault, math.MaxFloat64
	for tc, pc := range palette {
		if d := want.DistanceLab(pc); d < bestDist || (d == bestDist && tc < best) {
			best, bestDist = tc, d
		}
	}
	c.nearest[key] = best
	return best
}

func toColorful(col color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(col.R) / 255,
		G: float64(col.G) / 255,
		B: float64(col.B) / 255,
	}
}
