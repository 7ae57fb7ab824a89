package sapling

import (
	"fmt"
	"math"
	"time"
)

// statsInterval is the number of frames between debug stats lines.
const statsInterval = 60

type debugMarkKind uint8

const (
	markLineX debugMarkKind = iota // horizontal line at y
	markLineY                      // vertical line at x
	markDot
)

// debugMark is a one-frame overlay marker. Marks are cleared at the start of
// every frame and drawn after everything else, in debug mode only.
type debugMark struct {
	kind debugMarkKind
	x, y float64
}

// frameTimes holds the timed stages of one frame.
type frameTimes struct {
	update time.Duration
	paint  time.Duration
	commit time.Duration
}

// frameStats accumulates frameTimes between stats lines.
type frameStats struct {
	frames int
	sum    frameTimes
	max    frameTimes
}

// DebugLineX marks a horizontal line across the surface at y for the current
// frame.
func (e *Engine) DebugLineX(y float64) {
	e.debugMarks = append(e.debugMarks, debugMark{kind: markLineX, y: y})
}

// DebugLineY marks a vertical line down the surface at x for the current
// frame.
func (e *Engine) DebugLineY(x float64) {
	e.debugMarks = append(e.debugMarks, debugMark{kind: markLineY, x: x})
}

// DebugDot marks the point (x, y) for the current frame.
func (e *Engine) DebugDot(x, y float64) {
	e.debugMarks = append(e.debugMarks, debugMark{kind: markDot, x: x, y: y})
}

// showFPS draws the rounded frame rate in the top-left corner.
func (e *Engine) showFPS() {
	s := e.surface
	s.Save()
	s.SetFillColor(ColorRed)
	if e.cfg.HighResolution {
		s.SetFontSize(32)
		s.FillText(fpsText(e.clock.FPS()), 5, 40)
	} else {
		s.SetFontSize(16)
		s.FillText(fpsText(e.clock.FPS()), 5, 20)
	}
	s.Restore()
}

func fpsText(fps float64) string {
	return fmt.Sprintf("FPS: %d", int(math.Round(fps)))
}

// drawDebug draws the frame's marks, then outlines every visible reactive
// instance.
func (e *Engine) drawDebug() {
	for _, m := range e.debugMarks {
		switch m.kind {
		case markLineX:
			e.drawDebugLine(0, m.y, e.width, m.y)
		case markLineY:
			e.drawDebugLine(m.x, 0, m.x, e.height)
		case markDot:
			e.drawDebugDot(m.x, m.y)
		}
	}

	s := e.surface
	s.Save()
	s.SetStrokeColor(ColorRed)
	for _, inst := range e.layers.Reactive() {
		if !inst.Visible {
			continue
		}
		s.BeginPath()
		s.Rect(inst.X, inst.Y, inst.Width, inst.Height)
		s.Stroke()
	}
	s.Restore()
}

func (e *Engine) drawDebugLine(x0, y0, x1, y1 float64) {
	s := e.surface
	s.Save()
	s.SetStrokeColor(ColorRed)
	s.BeginPath()
	s.MoveTo(x0, y0)
	s.LineTo(x1, y1)
	s.Stroke()
	s.Restore()
}

func (e *Engine) drawDebugDot(x, y float64) {
	s := e.surface
	s.Save()
	s.SetFillColor(ColorRed)
	s.BeginPath()
	s.Arc(x, y, 2)
	s.Fill()
	s.SetFillColor(ColorWhite)
	s.BeginPath()
	s.Arc(x, y, 1)
	s.Fill()
	s.Restore()
}

// recordStats adds one frame's timings and logs averages and maxima every
// statsInterval frames.
func (e *Engine) recordStats(ft frameTimes) {
	st := &e.stats
	st.frames++
	st.sum.update += ft.update
	st.sum.paint += ft.paint
	st.sum.commit += ft.commit
	st.max.update = max(st.max.update, ft.update)
	st.max.paint = max(st.max.paint, ft.paint)
	st.max.commit = max(st.max.commit, ft.commit)
	if st.frames < statsInterval {
		return
	}

	n := time.Duration(st.frames)
	e.debugf("update: %v (max %v) | paint: %v (max %v) | movements: %v (max %v)",
		st.sum.update/n, st.max.update, st.sum.paint/n, st.max.paint,
		st.sum.commit/n, st.max.commit)
	e.debugf("fps: %.1f | layers: %d | instances: %d | reactive: %d | movements: %d",
		e.clock.FPS(), e.layers.Len(), e.layers.Count(), len(e.layers.Reactive()), e.movements.Len())
	*st = frameStats{}
}
