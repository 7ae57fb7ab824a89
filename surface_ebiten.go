package sapling

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugGlyphHeight is the line height of ebitenutil's debug font.
const debugGlyphHeight = 16

// EbitenSurface draws onto an *ebiten.Image. The target is rebound every
// frame by EbitenHost.Draw; drawing with no target is a no-op.
//
// Text goes through ebitenutil.DebugPrintAt, which has a fixed font and
// color; FillText ignores the fill color and font size.
type EbitenSurface struct {
	target *ebiten.Image
	style  StyleStack
	path   PathBuilder

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenSurface returns a surface with no target bound.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{style: NewStyleStack()}
}

// SetTarget binds the image subsequent calls draw onto.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) { s.target = img }

// Target returns the bound image, or nil.
func (s *EbitenSurface) Target() *ebiten.Image { return s.target }

func (s *EbitenSurface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) ClearRect(x, y, w, h float64) {
	if s.target == nil {
		return
	}
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(s.target.Bounds())
	if r.Empty() {
		return
	}
	if r == s.target.Bounds() {
		s.target.Clear()
		return
	}
	s.target.SubImage(r).(*ebiten.Image).Clear()
}

func (s *EbitenSurface) Save()    { s.style.Save() }
func (s *EbitenSurface) Restore() { s.style.Restore() }

func (s *EbitenSurface) SetFillColor(c Color)   { s.style.Current.Fill = c }
func (s *EbitenSurface) SetStrokeColor(c Color) { s.style.Current.Stroke = c }
func (s *EbitenSurface) SetLineWidth(w float64) { s.style.Current.LineWidth = w }
func (s *EbitenSurface) SetFontSize(px float64) { s.style.Current.FontSize = px }

func (s *EbitenSurface) FillText(text string, x, y float64) {
	if s.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(s.target, text, int(x), int(y)-debugGlyphHeight)
}

func (s *EbitenSurface) StrokeRect(x, y, w, h float64) {
	if s.target == nil {
		return
	}
	st := s.style.Current
	vector.StrokeRect(s.target, float32(x), float32(y), float32(w), float32(h),
		float32(st.LineWidth), st.Stroke.RGBA(), false)
}

func (s *EbitenSurface) BeginPath()               { s.path.Reset() }
func (s *EbitenSurface) MoveTo(x, y float64)      { s.path.MoveTo(x, y) }
func (s *EbitenSurface) LineTo(x, y float64)      { s.path.LineTo(x, y) }
func (s *EbitenSurface) Rect(x, y, w, h float64)  { s.path.Rect(x, y, w, h) }
func (s *EbitenSurface) Arc(x, y, radius float64) { s.path.Arc(x, y, radius) }

// Stroke outlines every shape of the current path.
func (s *EbitenSurface) Stroke() {
	if s.target == nil {
		return
	}
	st := s.style.Current
	clr := st.Stroke.RGBA()
	lw := float32(st.LineWidth)
	for _, sh := range s.path.Shapes() {
		if sh.Circle {
			vector.StrokeCircle(s.target, float32(sh.Center.X), float32(sh.Center.Y),
				float32(sh.Radius), lw, clr, true)
			continue
		}
		pts := sh.Points
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(s.target, float32(pts[i-1].X), float32(pts[i-1].Y),
				float32(pts[i].X), float32(pts[i].Y), lw, clr, false)
		}
		if sh.Closed && len(pts) > 2 {
			last := pts[len(pts)-1]
			vector.StrokeLine(s.target, float32(last.X), float32(last.Y),
				float32(pts[0].X), float32(pts[0].Y), lw, clr, false)
		}
	}
}

// Fill paints the interior of every shape of the current path. Open
// polylines are closed implicitly, as on a canvas.
func (s *EbitenSurface) Fill() {
	if s.target == nil {
		return
	}
	c := s.style.Current.Fill
	for _, sh := range s.path.Shapes() {
		if sh.Circle {
			vector.DrawFilledCircle(s.target, float32(sh.Center.X), float32(sh.Center.Y),
				float32(sh.Radius), c.RGBA(), true)
			continue
		}
		if len(sh.Points) < 3 {
			continue
		}
		var p vector.Path
		p.MoveTo(float32(sh.Points[0].X), float32(sh.Points[0].Y))
		for _, pt := range sh.Points[1:] {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
		p.Close()
		s.vertices, s.indices = p.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
		r, g, b, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
		for i := range s.vertices {
			s.vertices[i].SrcX = 0.5
			s.vertices[i].SrcY = 0.5
			s.vertices[i].ColorR = r
			s.vertices[i].ColorG = g
			s.vertices[i].ColorB = b
			s.vertices[i].ColorA = a
		}
		op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero}
		s.target.DrawTriangles(s.vertices, s.indices, whitePixelImage(), op)
	}
}
