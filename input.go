package sapling

import "strconv"

// Logical key names for the codes the dispatcher maps by name.
const (
	KeyEnter      = "Enter"
	KeySpace      = "Space"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowUp    = "ArrowUp"
	KeyArrowRight = "ArrowRight"
	KeyArrowDown  = "ArrowDown"
)

// Key codes (DOM keyCode values) delivered by hosts.
const (
	CodeBackspace  = 8
	CodeTab        = 9
	CodeEnter      = 13
	CodeShift      = 16
	CodeControl    = 17
	CodeAlt        = 18
	CodeEscape     = 27
	CodeSpace      = 32
	CodeArrowLeft  = 37
	CodeArrowUp    = 38
	CodeArrowRight = 39
	CodeArrowDown  = 40
	CodeDigit0     = 48
	CodeA          = 65
)

// KeyName maps a key code to its logical name. Codes outside the named set
// map to their decimal string, so a handler for "65" receives the A key.
func KeyName(code int) string {
	switch code {
	case CodeEnter:
		return KeyEnter
	case CodeSpace:
		return KeySpace
	case CodeArrowLeft:
		return KeyArrowLeft
	case CodeArrowRight:
		return KeyArrowRight
	case CodeArrowUp:
		return KeyArrowUp
	case CodeArrowDown:
		return KeyArrowDown
	}
	return strconv.Itoa(code)
}

// PointerEvent carries a pointer or touch position in logical (displayed)
// coordinates.
type PointerEvent struct {
	X, Y float64
	// ID is 0 for the mouse and the touch ID for touches.
	ID int
}

// EntityStore is the interface for optional ECS integration. When set on an
// Engine, trigger, key and pointer events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries input data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	Instance string
	EntityID uint32
	X, Y     float64
	Key      string
	Code     int
}

type keyHandler func(e *Engine)

// keyRegistry holds at most one handler per logical key and event kind.
type keyRegistry struct {
	down  map[string]keyHandler
	up    map[string]keyHandler
	press map[string]keyHandler
}

func newKeyRegistry() keyRegistry {
	return keyRegistry{
		down:  make(map[string]keyHandler),
		up:    make(map[string]keyHandler),
		press: make(map[string]keyHandler),
	}
}

func (r *keyRegistry) table(kind KeyEvent) map[string]keyHandler {
	switch kind {
	case KeyUp:
		return r.up
	case KeyPress:
		return r.press
	default:
		return r.down
	}
}

func (r *keyRegistry) set(kind KeyEvent, key string, fn func(e *Engine)) {
	t := r.table(kind)
	if fn == nil {
		delete(t, key)
		return
	}
	t[key] = fn
}

// OnKeyDown registers the key-down handler for a logical key, replacing any
// previous one. A nil fn unregisters.
func (e *Engine) OnKeyDown(key string, fn func(e *Engine)) {
	e.keys.set(KeyDown, key, fn)
}

// OnKeyUp registers the key-up handler for a logical key, replacing any
// previous one. A nil fn unregisters.
func (e *Engine) OnKeyUp(key string, fn func(e *Engine)) {
	e.keys.set(KeyUp, key, fn)
}

// OnKeyPress registers the key-press handler for a logical key, replacing
// any previous one. A nil fn unregisters.
func (e *Engine) OnKeyPress(key string, fn func(e *Engine)) {
	e.keys.set(KeyPress, key, fn)
}

// DispatchKey runs the handler registered for code and kind. Reports whether
// a handler ran.
func (e *Engine) DispatchKey(code int, kind KeyEvent) bool {
	key := KeyName(code)
	e.emitInteraction(InteractionEvent{Type: keyEventType(kind), Key: key, Code: code})
	fn, ok := e.keys.table(kind)[key]
	if !ok {
		return false
	}
	fn(e)
	return true
}

func keyEventType(kind KeyEvent) EventType {
	switch kind {
	case KeyUp:
		return EventKeyUp
	case KeyPress:
		return EventKeyPress
	default:
		return EventKeyDown
	}
}

// DispatchPointer runs the pointer hook for phase.
func (e *Engine) DispatchPointer(phase PointerPhase, ev PointerEvent) {
	var fn func(*Engine, PointerEvent)
	var typ EventType
	switch phase {
	case PointerStart:
		fn, typ = e.PointerStart, EventPointerStart
	case PointerEnd:
		fn, typ = e.PointerEnd, EventPointerEnd
	case PointerMove:
		fn, typ = e.PointerMove, EventPointerMove
	default:
		return
	}
	e.emitInteraction(InteractionEvent{Type: typ, X: ev.X, Y: ev.Y})
	if fn != nil {
		fn(e, ev)
	}
}

// TouchInput reports whether pointer hooks are fed by touch rather than the
// mouse. Decided once, when the engine is created.
func (e *Engine) TouchInput() bool { return e.touch }

// TriggerReaction hit-tests the point (x, y), given in displayed
// coordinates, against every visible reactive instance and fires each one
// that contains it. Overlapping instances all fire. Hits run in
// registration order: the order of AddInstance calls across all layers,
// which is not the paint order once layers are swapped. A trigger may call
// TriggerReaction again. Returns the number of triggers fired.
func (e *Engine) TriggerReaction(x, y float64) int {
	if e.cfg.HighResolution {
		x *= 2
		y *= 2
	}

	// Snapshot so triggers can add or remove instances safely. The buffer is
	// taken for the duration of the call; nested calls allocate their own.
	hits := append(e.hitBuf[:0], e.layers.Reactive()...)
	e.hitBuf = nil
	fired := 0
	for _, inst := range hits {
		if !inst.Visible || inst.Trigger == nil {
			continue
		}
		if !inst.Contains(x, y) {
			continue
		}
		inst.Trigger(inst, e)
		e.emitInteraction(InteractionEvent{
			Type:     EventTrigger,
			Instance: inst.Name,
			EntityID: inst.EntityID,
			X:        x,
			Y:        y,
		})
		fired++
	}
	clear(hits)
	e.hitBuf = hits[:0]
	return fired
}

// SetEntityStore sets the optional ECS bridge.
func (e *Engine) SetEntityStore(store EntityStore) {
	e.store = store
}

func (e *Engine) emitInteraction(ev InteractionEvent) {
	if e.store == nil {
		return
	}
	e.store.EmitEvent(ev)
}
