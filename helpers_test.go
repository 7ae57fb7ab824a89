package sapling

import (
	"fmt"
	"time"
)

// fakeHost is a Host driven by hand: time only moves when a test says so.
type fakeHost struct {
	now      float64
	frame    func(now float64)
	timers   TimerQueue
	surface  Surface
	touch    bool
	requests int
}

func newFakeHost() *fakeHost {
	return &fakeHost{surface: newRecordingSurface(640, 480)}
}

func (h *fakeHost) RequestFrame(fn func(now float64)) {
	h.frame = fn
	h.requests++
}

func (h *fakeHost) After(d time.Duration, fn func()) {
	h.timers.Add(h.now+float64(d)/float64(time.Millisecond), fn)
}

func (h *fakeHost) Now() float64     { return h.now }
func (h *fakeHost) Surface() Surface { return h.surface }
func (h *fakeHost) TouchInput() bool { return h.touch }

func (h *fakeHost) recorder() *recordingSurface {
	return h.surface.(*recordingSurface)
}

// advance moves time forward by dt milliseconds and runs due timers.
func (h *fakeHost) advance(dt float64) {
	h.now += dt
	h.timers.RunDue(h.now)
}

// runFrame moves time forward by dt and runs the requested frame, if any.
// Reports whether a frame ran.
func (h *fakeHost) runFrame(dt float64) bool {
	h.advance(dt)
	fn := h.frame
	if fn == nil {
		return false
	}
	h.frame = nil
	fn(h.now)
	return true
}

// recordingSurface logs every drawing call as a string.
type recordingSurface struct {
	w, h  int
	style StyleStack
	calls []string
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h, style: NewStyleStack()}
}

func (s *recordingSurface) log(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *recordingSurface) reset() { s.calls = s.calls[:0] }

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) ClearRect(x, y, w, h float64) {
	s.log("clear %v %v %v %v", x, y, w, h)
}

func (s *recordingSurface) Save()    { s.style.Save() }
func (s *recordingSurface) Restore() { s.style.Restore() }

func (s *recordingSurface) SetFillColor(c Color)   { s.style.Current.Fill = c }
func (s *recordingSurface) SetStrokeColor(c Color) { s.style.Current.Stroke = c }
func (s *recordingSurface) SetLineWidth(w float64) { s.style.Current.LineWidth = w }
func (s *recordingSurface) SetFontSize(px float64) { s.style.Current.FontSize = px }

func (s *recordingSurface) FillText(text string, x, y float64) {
	s.log("text %q %v %v size=%v fill=%s", text, x, y, s.style.Current.FontSize, colorName(s.style.Current.Fill))
}

func (s *recordingSurface) StrokeRect(x, y, w, h float64) {
	s.log("strokeRect %v %v %v %v", x, y, w, h)
}

func (s *recordingSurface) BeginPath()          { s.log("begin") }
func (s *recordingSurface) MoveTo(x, y float64) { s.log("moveTo %v %v", x, y) }
func (s *recordingSurface) LineTo(x, y float64) { s.log("lineTo %v %v", x, y) }

func (s *recordingSurface) Rect(x, y, w, h float64) {
	s.log("rect %v %v %v %v", x, y, w, h)
}

func (s *recordingSurface) Arc(x, y, r float64) { s.log("arc %v %v %v", x, y, r) }

func (s *recordingSurface) Stroke() {
	s.log("stroke %s", colorName(s.style.Current.Stroke))
}

func (s *recordingSurface) Fill() {
	s.log("fill %s", colorName(s.style.Current.Fill))
}

func colorName(c Color) string {
	switch c {
	case ColorRed:
		return "red"
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	}
	return fmt.Sprintf("%v", c)
}

// newTestEngine returns an engine on a fresh fakeHost.
func newTestEngine(cfg Config) (*Engine, *fakeHost) {
	h := newFakeHost()
	e, err := New(cfg, h)
	if err != nil {
		panic(err)
	}
	return e, h
}
