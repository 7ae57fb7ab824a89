package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/sapling"
)

// Default pixel size of one terminal cell. Cells are roughly twice as tall
// as they are wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// fillRune is drawn for every painted cell, in the stroke or fill color.
const fillRune = '█'

// Surface draws sapling primitives onto a tcell screen. Pixel coordinates
// map to cells of CellWidth x CellHeight pixels; a cell is painted when the
// shape covers its center.
type Surface struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64

	style sapling.StyleStack
	path  sapling.PathBuilder
}

// NewSurface returns a surface on screen with the given cell size in
// pixels. Non-positive sizes fall back to the defaults.
func NewSurface(screen tcell.Screen, cellW, cellH int) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Surface{
		screen: screen,
		cellW:  float64(cellW),
		cellH:  float64(cellH),
		style:  sapling.NewStyleStack(),
	}
}

// CellSize returns the pixel size of one cell.
func (s *Surface) CellSize() (float64, float64) { return s.cellW, s.cellH }

// ToCell returns the cell containing the pixel (x, y).
func (s *Surface) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// ToPixel returns the pixel at the center of a cell.
func (s *Surface) ToPixel(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *Surface) Size() (int, int) {
	cols, rows := s.screen.Size()
	return int(float64(cols) * s.cellW), int(float64(rows) * s.cellH)
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	c0, r0, c1, r1, ok := s.cellSpan(x, y, w, h)
	if !ok {
		return
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (s *Surface) Save()    { s.style.Save() }
func (s *Surface) Restore() { s.style.Restore() }

func (s *Surface) SetFillColor(c sapling.Color)   { s.style.Current.Fill = c }
func (s *Surface) SetStrokeColor(c sapling.Color) { s.style.Current.Stroke = c }
func (s *Surface) SetLineWidth(w float64)         { s.style.Current.LineWidth = w }
func (s *Surface) SetFontSize(px float64)         { s.style.Current.FontSize = px }

// FillText writes text one rune per cell, on the row holding the middle of
// the glyphs.
func (s *Surface) FillText(text string, x, y float64) {
	st := s.style.Current
	if st.Fill.A <= 0 {
		return
	}
	col, row := s.ToCell(x, y-st.FontSize/2)
	style := tcell.StyleDefault.Foreground(toTcell(st.Fill))
	cols, rows := s.screen.Size()
	if row < 0 || row >= rows {
		return
	}
	for _, r := range text {
		if col >= cols {
			return
		}
		if col >= 0 {
			s.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	s.path.Reset()
	s.path.Rect(x, y, w, h)
	s.Stroke()
	s.path.Reset()
}

func (s *Surface) BeginPath()               { s.path.Reset() }
func (s *Surface) MoveTo(x, y float64)      { s.path.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64)      { s.path.LineTo(x, y) }
func (s *Surface) Rect(x, y, w, h float64)  { s.path.Rect(x, y, w, h) }
func (s *Surface) Arc(x, y, radius float64) { s.path.Arc(x, y, radius) }

// Stroke paints the cells crossed by every shape's outline.
func (s *Surface) Stroke() {
	c := s.style.Current.Stroke
	if c.A <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(c))
	for _, sh := range s.path.Shapes() {
		if sh.Circle {
			s.strokeCircle(sh.Center, sh.Radius, style)
			continue
		}
		pts := sh.Points
		if len(pts) == 1 {
			s.plot(pts[0].X, pts[0].Y, style)
		}
		for i := 1; i < len(pts); i++ {
			s.line(pts[i-1], pts[i], style)
		}
		if sh.Closed && len(pts) > 2 {
			s.line(pts[len(pts)-1], pts[0], style)
		}
	}
}

// Fill paints the cells whose centers lie inside each shape. Shapes smaller
// than a cell paint the cell holding their center.
func (s *Surface) Fill() {
	c := s.style.Current.Fill
	if c.A <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(c))
	for _, sh := range s.path.Shapes() {
		if sh.Circle {
			s.fillCircle(sh.Center, sh.Radius, style)
			continue
		}
		if len(sh.Points) < 3 {
			continue
		}
		s.fillPolygon(sh.Points, style)
	}
}

func (s *Surface) plot(x, y float64, style tcell.Style) {
	col, row := s.ToCell(x, y)
	s.set(col, row, style)
}

func (s *Surface) set(col, row int, style tcell.Style) {
	cols, rows := s.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.screen.SetContent(col, row, fillRune, nil, style)
}

// line rasterizes a segment on the cell grid with Bresenham's algorithm.
func (s *Surface) line(a, b sapling.Vec2, style tcell.Style) {
	x0, y0 := s.ToCell(a.X, a.Y)
	x1, y1 := s.ToCell(b.X, b.Y)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		s.set(x0, y0, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (s *Surface) strokeCircle(c sapling.Vec2, r float64, style tcell.Style) {
	// One sample per half cell of circumference.
	n := max(8, int(math.Ceil(2*math.Pi*r/(s.cellW/2))))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s.plot(c.X+r*math.Cos(a), c.Y+r*math.Sin(a), style)
	}
}

func (s *Surface) fillCircle(c sapling.Vec2, r float64, style tcell.Style) {
	c0, r0, c1, r1, ok := s.cellSpan(c.X-r, c.Y-r, 2*r, 2*r)
	if !ok {
		return
	}
	painted := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			px, py := s.ToPixel(col, row)
			if math.Hypot(px-c.X, py-c.Y) <= r {
				s.set(col, row, style)
				painted = true
			}
		}
	}
	if !painted {
		s.plot(c.X, c.Y, style)
	}
}

func (s *Surface) fillPolygon(pts []sapling.Vec2, style tcell.Style) {
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	c0, r0, c1, r1, ok := s.cellSpan(minX, minY, maxX-minX, maxY-minY)
	if !ok {
		return
	}
	painted := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			px, py := s.ToPixel(col, row)
			if insidePolygon(pts, px, py) {
				s.set(col, row, style)
				painted = true
			}
		}
	}
	if !painted {
		s.plot((minX+maxX)/2, (minY+maxY)/2, style)
	}
}

// cellSpan returns the on-screen cell range covering a pixel rectangle.
func (s *Surface) cellSpan(x, y, w, h float64) (c0, r0, c1, r1 int, ok bool) {
	cols, rows := s.screen.Size()
	c0, r0 = s.ToCell(x, y)
	c1, r1 = s.ToCell(x+w, y+h)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, cols-1), min(r1, rows-1)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}

// insidePolygon is the even-odd point-in-polygon test.
func insidePolygon(pts []sapling.Vec2, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
		j = i
	}
	return in
}

func toTcell(c sapling.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
