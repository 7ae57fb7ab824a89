package sapling

import (
	"errors"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyCodes maps ebiten keys to the key codes the dispatcher understands.
var keyCodes = map[ebiten.Key]int{
	ebiten.KeyBackspace:    CodeBackspace,
	ebiten.KeyTab:          CodeTab,
	ebiten.KeyEnter:        CodeEnter,
	ebiten.KeyNumpadEnter:  CodeEnter,
	ebiten.KeyShiftLeft:    CodeShift,
	ebiten.KeyShiftRight:   CodeShift,
	ebiten.KeyControlLeft:  CodeControl,
	ebiten.KeyControlRight: CodeControl,
	ebiten.KeyAltLeft:      CodeAlt,
	ebiten.KeyAltRight:     CodeAlt,
	ebiten.KeyEscape:       CodeEscape,
	ebiten.KeySpace:        CodeSpace,
	ebiten.KeyArrowLeft:    CodeArrowLeft,
	ebiten.KeyArrowUp:      CodeArrowUp,
	ebiten.KeyArrowRight:   CodeArrowRight,
	ebiten.KeyArrowDown:    CodeArrowDown,
}

func init() {
	digits := [...]ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	for i, k := range digits {
		keyCodes[k] = CodeDigit0 + i
	}
	letters := [...]ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	for i, k := range letters {
		keyCodes[k] = CodeA + i
	}
}

// KeyCode returns the dispatcher key code for an ebiten key.
func KeyCode(k ebiten.Key) (int, bool) {
	code, ok := keyCodes[k]
	return code, ok
}

// EbitenHost runs an Engine inside an Ebitengine game loop. It implements
// both Host and ebiten.Game: Update runs due timers and feeds input to the
// engine, Draw runs the requested frame onto the screen.
type EbitenHost struct {
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	engine  *Engine
	surface *EbitenSurface
	start   time.Time
	touch   bool
	quit    bool

	frame  func(now float64)
	timers TimerQueue

	keys    []ebiten.Key
	chars   []rune
	touches []ebiten.TouchID

	cursorX, cursorY int
	touchPos         map[ebiten.TouchID][2]int

	screenshotQueue []string
	shots           int
}

// NewEbitenHost returns a host reading touch input on mobile platforms and
// mouse input elsewhere.
func NewEbitenHost() *EbitenHost {
	return &EbitenHost{
		ScreenshotDir: "screenshots",
		surface:       NewEbitenSurface(),
		start:         time.Now(),
		touch:         runtime.GOOS == "android" || runtime.GOOS == "ios",
		touchPos:      make(map[ebiten.TouchID][2]int),
	}
}

func (h *EbitenHost) RequestFrame(fn func(now float64)) { h.frame = fn }

func (h *EbitenHost) After(d time.Duration, fn func()) {
	h.timers.Add(h.Now()+float64(d)/float64(time.Millisecond), fn)
}

func (h *EbitenHost) Now() float64 {
	return float64(time.Since(h.start)) / float64(time.Millisecond)
}

func (h *EbitenHost) Surface() Surface { return h.surface }

func (h *EbitenHost) TouchInput() bool { return h.touch }

// Quit ends the game loop after the current tick.
func (h *EbitenHost) Quit() { h.quit = true }

// Update implements ebiten.Game.
func (h *EbitenHost) Update() error {
	if h.quit {
		return ebiten.Termination
	}
	h.timers.RunDue(h.Now())
	if h.engine == nil {
		return nil
	}
	h.pollKeys()
	if h.touch {
		h.pollTouches()
	} else {
		h.pollMouse()
	}
	return nil
}

func (h *EbitenHost) pollKeys() {
	e := h.engine
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if code, ok := KeyCode(k); ok {
			e.DispatchKey(code, KeyDown)
		}
	}
	h.chars = ebiten.AppendInputChars(h.chars[:0])
	for _, r := range h.chars {
		e.DispatchKey(int(r), KeyPress)
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		if code, ok := KeyCode(k); ok {
			e.DispatchKey(code, KeyUp)
		}
	}
}

func (h *EbitenHost) pollMouse() {
	e := h.engine
	x, y := ebiten.CursorPosition()
	if x != h.cursorX || y != h.cursorY {
		h.cursorX, h.cursorY = x, y
		e.DispatchPointer(PointerMove, h.pointerEvent(x, y, 0))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.DispatchPointer(PointerStart, h.pointerEvent(x, y, 0))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.DispatchPointer(PointerEnd, h.pointerEvent(x, y, 0))
	}
}

func (h *EbitenHost) pollTouches() {
	e := h.engine
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	for _, id := range h.touches {
		x, y := ebiten.TouchPosition(id)
		h.touchPos[id] = [2]int{x, y}
		e.DispatchPointer(PointerStart, h.pointerEvent(x, y, int(id)))
	}
	h.touches = ebiten.AppendTouchIDs(h.touches[:0])
	for _, id := range h.touches {
		x, y := ebiten.TouchPosition(id)
		if last, ok := h.touchPos[id]; ok && (last[0] != x || last[1] != y) {
			h.touchPos[id] = [2]int{x, y}
			e.DispatchPointer(PointerMove, h.pointerEvent(x, y, int(id)))
		}
	}
	h.touches = inpututil.AppendJustReleasedTouchIDs(h.touches[:0])
	for _, id := range h.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		delete(h.touchPos, id)
		e.DispatchPointer(PointerEnd, h.pointerEvent(x, y, int(id)))
	}
}

// pointerEvent converts screen coordinates, which ebiten reports in the
// backing resolution, to displayed coordinates.
func (h *EbitenHost) pointerEvent(x, y, id int) PointerEvent {
	ev := PointerEvent{X: float64(x), Y: float64(y), ID: id}
	if h.engine.HighResolution() {
		ev.X /= 2
		ev.Y /= 2
	}
	return ev
}

// Draw implements ebiten.Game. The screen is not cleared between frames, so
// a paused engine keeps showing its last frame.
func (h *EbitenHost) Draw(screen *ebiten.Image) {
	h.surface.SetTarget(screen)
	if fn := h.frame; fn != nil {
		h.frame = nil
		fn(h.Now())
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game and returns the engine's backing size.
func (h *EbitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.engine == nil {
		return outsideWidth, outsideHeight
	}
	return int(h.engine.Width()), int(h.engine.Height())
}

// ErrNotEbitenHost is returned by Run for an engine created on another host.
var ErrNotEbitenHost = errors.New("sapling: engine does not run on an EbitenHost")

// Run opens a window at the engine's displayed size and blocks running the
// game loop. The engine is not started; call Start or Load first. Returns
// nil once the host quits.
func Run(e *Engine, title string) error {
	h, ok := e.host.(*EbitenHost)
	if !ok {
		return ErrNotEbitenHost
	}
	h.engine = e

	w, ht := int(e.Width()), int(e.Height())
	if e.HighResolution() {
		w, ht = w/2, ht/2
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, ht)
	ebiten.SetScreenClearedEveryFrame(false)
	return ebiten.RunGame(h)
}
