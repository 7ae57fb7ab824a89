package term

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/sapling"
)

func newTestHost(t *testing.T, cfg sapling.Config) (*Host, *sapling.Engine, tcell.SimulationScreen) {
	t.Helper()
	scr := newTestScreen(t, 80, 25)
	h := NewHost(scr, 0, 0)
	e, err := sapling.New(cfg, h)
	if err != nil {
		t.Fatal(err)
	}
	h.engine = e
	return h, e, scr
}

func TestHostEngineSize(t *testing.T) {
	_, e, _ := newTestHost(t, sapling.Config{})
	if e.Width() != 640 || e.Height() != 400 {
		t.Errorf("size = %vx%v, want 640x400", e.Width(), e.Height())
	}
	if e.TouchInput() {
		t.Error("terminal input is never touch")
	}
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want int
		ok   bool
	}{
		{tcell.KeyEnter, 0, sapling.CodeEnter, true},
		{tcell.KeyTab, 0, sapling.CodeTab, true},
		{tcell.KeyBackspace2, 0, sapling.CodeBackspace, true},
		{tcell.KeyEscape, 0, sapling.CodeEscape, true},
		{tcell.KeyLeft, 0, sapling.CodeArrowLeft, true},
		{tcell.KeyUp, 0, sapling.CodeArrowUp, true},
		{tcell.KeyRight, 0, sapling.CodeArrowRight, true},
		{tcell.KeyDown, 0, sapling.CodeArrowDown, true},
		{tcell.KeyRune, ' ', sapling.CodeSpace, true},
		{tcell.KeyRune, 'a', sapling.CodeA, true},
		{tcell.KeyRune, 'Z', sapling.CodeA + 25, true},
		{tcell.KeyRune, '7', sapling.CodeDigit0 + 7, true},
		{tcell.KeyRune, '!', 0, false},
		{tcell.KeyF1, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := KeyCode(tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone))
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyCode(%v, %q) = %d, %v, want %d, %v", tt.key, tt.ch, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHostKeyEvents(t *testing.T) {
	h, e, _ := newTestHost(t, sapling.Config{})
	var events []string
	e.OnKeyDown("65", func(*sapling.Engine) { events = append(events, "down") })
	e.OnKeyPress("97", func(*sapling.Engine) { events = append(events, "press") })
	e.OnKeyUp("65", func(*sapling.Engine) { events = append(events, "up") })
	e.OnKeyDown(sapling.KeyEnter, func(*sapling.Engine) { events = append(events, "enter") })

	h.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if !slices.Equal(events, []string{"down", "press", "up"}) {
		t.Errorf("events = %v, want [down press up]", events)
	}

	events = nil
	h.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !slices.Equal(events, []string{"enter"}) {
		t.Errorf("events = %v, want [enter]", events)
	}
}

func TestHostCtrlCStops(t *testing.T) {
	h, _, _ := newTestHost(t, sapling.Config{})
	if h.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("Ctrl+C should end the loop")
	}
	if !h.handleEvent(tcell.NewEventResize(80, 25)) {
		t.Error("resize should not end the loop")
	}
}

func TestHostMouseEvents(t *testing.T) {
	h, e, _ := newTestHost(t, sapling.Config{})
	var got []string
	var last sapling.PointerEvent
	e.PointerMove = func(_ *sapling.Engine, ev sapling.PointerEvent) { got = append(got, "move"); last = ev }
	e.PointerStart = func(_ *sapling.Engine, ev sapling.PointerEvent) { got = append(got, "start"); last = ev }
	e.PointerEnd = func(_ *sapling.Engine, ev sapling.PointerEvent) { got = append(got, "end"); last = ev }

	h.handleEvent(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone))
	if !slices.Equal(got, []string{"move", "start"}) {
		t.Errorf("events = %v, want [move start]", got)
	}
	if last.X != 28 || last.Y != 40 {
		t.Errorf("position = (%v, %v), want the center of cell (3, 2)", last.X, last.Y)
	}

	got = nil
	h.handleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	if !slices.Equal(got, []string{"end"}) {
		t.Errorf("events = %v, want [end]", got)
	}
}

func TestHostMouseHighResolution(t *testing.T) {
	h, e, _ := newTestHost(t, sapling.Config{HighResolution: true})
	var last sapling.PointerEvent
	e.PointerMove = func(_ *sapling.Engine, ev sapling.PointerEvent) { last = ev }

	h.handleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	if last.X != 14 || last.Y != 20 {
		t.Errorf("position = (%v, %v), want (14, 20)", last.X, last.Y)
	}
}

func TestHostTimersAndFrames(t *testing.T) {
	h, _, _ := newTestHost(t, sapling.Config{})
	fired := false
	h.After(0, func() { fired = true })
	ran := false
	h.RequestFrame(func(float64) { ran = true })

	h.step()
	if !fired || !ran {
		t.Errorf("fired=%v ran=%v, want both", fired, ran)
	}
	ran = false
	h.step()
	if ran {
		t.Error("a frame should run once per request")
	}
}

func TestHostRunDrivesEngine(t *testing.T) {
	h, e, scr := newTestHost(t, sapling.Config{})
	frames := 0
	e.StartFrame = func(*sapling.Engine, float64) { frames++ }
	e.PaintAbove = func(e *sapling.Engine) {
		s := e.Surface()
		s.SetFillColor(sapling.ColorWhite)
		s.BeginPath()
		s.Rect(0, 0, 8, 16)
		s.Fill()
	}
	e.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx, e); err != nil {
		t.Fatal(err)
	}
	if frames == 0 {
		t.Fatal("no frames ran")
	}
	if r := cellRune(scr, 0, 0); r != fillRune {
		t.Errorf("cell (0, 0) = %q, want filled", r)
	}
}

func TestHostRunCtrlC(t *testing.T) {
	h, e, scr := newTestHost(t, sapling.Config{})
	if err := scr.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	if err := h.Run(ctx, e); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > 4*time.Second {
		t.Error("Run should return on Ctrl+C")
	}
}
