package sapling

type injectKind uint8

const (
	injectKey injectKind = iota
	injectPointer
	injectPause
)

// injectedEvent is a synthetic input event, delivered one per frame.
type injectedEvent struct {
	kind  injectKind
	code  int
	key   KeyEvent
	phase PointerPhase
	x, y  float64
}

// InjectKey queues a key event. It is dispatched at the start of a later
// frame exactly as host input would be.
func (e *Engine) InjectKey(code int, kind KeyEvent) {
	e.injectQueue = append(e.injectQueue, injectedEvent{kind: injectKey, code: code, key: kind})
}

// InjectPointer queues a pointer event at displayed coordinates (x, y).
func (e *Engine) InjectPointer(phase PointerPhase, x, y float64) {
	e.injectQueue = append(e.injectQueue, injectedEvent{kind: injectPointer, phase: phase, x: x, y: y})
}

// InjectTap queues a pointer start followed by a pointer end at the same
// point. Consumes two frames.
func (e *Engine) InjectTap(x, y float64) {
	e.InjectPointer(PointerStart, x, y)
	e.InjectPointer(PointerEnd, x, y)
}

// deliverInjected advances the script, then delivers at most one queued
// event. Runs at the start of every frame, paused or not.
func (e *Engine) deliverInjected() {
	if e.script != nil {
		e.script.step(e)
	}
	if len(e.injectQueue) == 0 {
		return
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch ev.kind {
	case injectKey:
		e.DispatchKey(ev.code, ev.key)
	case injectPointer:
		e.DispatchPointer(ev.phase, PointerEvent{X: ev.x, Y: ev.y})
	case injectPause:
		e.TogglePause()
	}
}
