// Package term runs a sapling engine in a terminal through tcell.
//
// Pixels map onto character cells (8x16 by default), so games written for a
// window keep their coordinates. Shapes are rasterized as block characters
// and text is written one rune per cell.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/sapling"
)

// frameInterval paces the loop at about 60 frames per second.
const frameInterval = 16 * time.Millisecond

// Host implements sapling.Host on a tcell screen. Terminals report no key
// releases, so every key event dispatches keydown, then keypress for
// printable runes, then keyup.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	engine  *sapling.Engine
	start   time.Time

	frame  func(now float64)
	timers sapling.TimerQueue

	mouseDown bool
	lastCol   int
	lastRow   int
}

// NewHost returns a host on an initialized screen, with mouse reporting
// enabled and cells of cellW x cellH pixels.
func NewHost(screen tcell.Screen, cellW, cellH int) *Host {
	screen.EnableMouse()
	return &Host{
		screen:  screen,
		surface: NewSurface(screen, cellW, cellH),
		start:   time.Now(),
		lastCol: -1,
		lastRow: -1,
	}
}

func (h *Host) RequestFrame(fn func(now float64)) { h.frame = fn }

func (h *Host) After(d time.Duration, fn func()) {
	h.timers.Add(h.Now()+float64(d)/float64(time.Millisecond), fn)
}

func (h *Host) Now() float64 {
	return float64(time.Since(h.start)) / float64(time.Millisecond)
}

func (h *Host) Surface() sapling.Surface { return h.surface }

// TouchInput is always false; terminals deliver mouse events.
func (h *Host) TouchInput() bool { return false }

// Run drives e until ctx is done or the user presses Ctrl+C. It does not
// start the engine and does not finalize the screen.
func (h *Host) Run(ctx context.Context, e *sapling.Engine) error {
	h.engine = e

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.step()
		}
	}
}

// step runs due timers and the pending frame, then shows the screen.
func (h *Host) step() {
	h.timers.RunDue(h.Now())
	if fn := h.frame; fn != nil {
		h.frame = nil
		fn(h.Now())
	}
	h.screen.Show()
}

// handleEvent feeds one tcell event to the engine. Returns false when the
// loop should exit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	code, ok := KeyCode(ev)
	if ok {
		h.engine.DispatchKey(code, sapling.KeyDown)
	}
	if ev.Key() == tcell.KeyRune {
		h.engine.DispatchKey(int(ev.Rune()), sapling.KeyPress)
	}
	if ok {
		h.engine.DispatchKey(code, sapling.KeyUp)
	}
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	pe := h.pointerEvent(col, row)

	if col != h.lastCol || row != h.lastRow {
		h.lastCol, h.lastRow = col, row
		h.engine.DispatchPointer(sapling.PointerMove, pe)
	}

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !h.mouseDown:
		h.mouseDown = true
		h.engine.DispatchPointer(sapling.PointerStart, pe)
	case !down && h.mouseDown:
		h.mouseDown = false
		h.engine.DispatchPointer(sapling.PointerEnd, pe)
	}
}

// pointerEvent maps a cell to the displayed coordinates of its center.
func (h *Host) pointerEvent(col, row int) sapling.PointerEvent {
	x, y := h.surface.ToPixel(col, row)
	if h.engine.HighResolution() {
		x /= 2
		y /= 2
	}
	return sapling.PointerEvent{X: x, Y: y}
}

// KeyCode maps a tcell key event to a dispatcher key code. Runes without a
// key code (punctuation and the like) report false.
func KeyCode(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return sapling.CodeEnter, true
	case tcell.KeyTab:
		return sapling.CodeTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return sapling.CodeBackspace, true
	case tcell.KeyEscape:
		return sapling.CodeEscape, true
	case tcell.KeyLeft:
		return sapling.CodeArrowLeft, true
	case tcell.KeyUp:
		return sapling.CodeArrowUp, true
	case tcell.KeyRight:
		return sapling.CodeArrowRight, true
	case tcell.KeyDown:
		return sapling.CodeArrowDown, true
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			return sapling.CodeSpace, true
		case r >= 'a' && r <= 'z':
			return sapling.CodeA + int(r-'a'), true
		case r >= 'A' && r <= 'Z':
			return sapling.CodeA + int(r-'A'), true
		case r >= '0' && r <= '9':
			return sapling.CodeDigit0 + int(r-'0'), true
		}
	}
	return 0, false
}
