package sapling

// Surface is the 2D drawing context the engine renders onto. It follows the
// canvas model: style state (colors, font size, line width) is set before
// drawing and can be pushed and popped with Save and Restore; paths are
// built with BeginPath/MoveTo/LineTo/Rect/Arc and drawn with Stroke or Fill.
//
// The engine itself only clears the surface and draws the debug overlay.
// Game content is drawn by each instance's Painter.
type Surface interface {
	// Size returns the backing size in pixels.
	Size() (width, height int)

	ClearRect(x, y, width, height float64)

	Save()
	Restore()

	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	SetFontSize(px float64)

	// FillText draws text with its baseline at y.
	FillText(text string, x, y float64)
	StrokeRect(x, y, width, height float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, width, height float64)
	Arc(x, y, radius float64)
	Stroke()
	Fill()
}

// SurfaceStyle is the style state a surface saves and restores.
type SurfaceStyle struct {
	Fill      Color
	Stroke    Color
	LineWidth float64
	FontSize  float64
}

// DefaultSurfaceStyle matches a fresh canvas context: black fill and stroke,
// 1px lines and a 10px font.
func DefaultSurfaceStyle() SurfaceStyle {
	return SurfaceStyle{
		Fill:      ColorBlack,
		Stroke:    ColorBlack,
		LineWidth: 1,
		FontSize:  10,
	}
}

// StyleStack implements Save and Restore over a current SurfaceStyle.
type StyleStack struct {
	Current SurfaceStyle
	saved   []SurfaceStyle
}

// NewStyleStack returns a stack holding DefaultSurfaceStyle.
func NewStyleStack() StyleStack {
	return StyleStack{Current: DefaultSurfaceStyle()}
}

// Save pushes the current style.
func (s *StyleStack) Save() {
	s.saved = append(s.saved, s.Current)
}

// Restore pops the last saved style. Unbalanced calls are ignored.
func (s *StyleStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.Current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// PathShape is one element of a path under construction: a polyline
// (closed for Rect) or a circle from Arc.
type PathShape struct {
	Points []Vec2
	Closed bool
	Circle bool
	Center Vec2
	Radius float64
}

// PathBuilder collects canvas-style path calls. Surfaces embed one and
// consume Shapes on Stroke or Fill.
type PathBuilder struct {
	shapes []PathShape
}

// Reset discards the current path.
func (b *PathBuilder) Reset() {
	for i := range b.shapes {
		b.shapes[i] = PathShape{}
	}
	b.shapes = b.shapes[:0]
}

// MoveTo starts a new polyline at (x, y).
func (b *PathBuilder) MoveTo(x, y float64) {
	b.shapes = append(b.shapes, PathShape{Points: []Vec2{{x, y}}})
}

// LineTo extends the current polyline, or starts one if there is none.
func (b *PathBuilder) LineTo(x, y float64) {
	n := len(b.shapes)
	if n == 0 || b.shapes[n-1].Circle || b.shapes[n-1].Closed {
		b.MoveTo(x, y)
		return
	}
	b.shapes[n-1].Points = append(b.shapes[n-1].Points, Vec2{x, y})
}

// Rect adds a closed rectangle.
func (b *PathBuilder) Rect(x, y, w, h float64) {
	b.shapes = append(b.shapes, PathShape{
		Points: []Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
		Closed: true,
	})
}

// Arc adds a full circle.
func (b *PathBuilder) Arc(x, y, radius float64) {
	b.shapes = append(b.shapes, PathShape{Circle: true, Center: Vec2{x, y}, Radius: radius})
}

// Shapes returns the accumulated shapes. The returned slice is only valid
// until the next Reset.
func (b *PathBuilder) Shapes() []PathShape { return b.shapes }
