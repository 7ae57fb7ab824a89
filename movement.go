package sapling

// DefaultVariant is the store key used when MoveOptions.Variant is empty.
const DefaultVariant = "default"

// MoveOptions configures a single Advance call.
type MoveOptions struct {
	// Easing names a registered easing function. Empty means linear.
	Easing string
	// Variant selects an independent value store on the same timeline, so
	// position and opacity can share one clock with their own bounds.
	Variant string
	// Before runs once, right after a variant's store is first filled.
	Before func()
	// After runs once per variant, after its terminal render.
	After func()
}

type span struct {
	start, end float64
}

// Movement is a named, time-bounded animation envelope. Values are produced
// by Advance; the movement itself only holds timing and per-variant bounds.
type Movement struct {
	Start    float64
	End      float64
	Duration float64

	processing   bool
	startQueued  bool
	finishQueued bool
	store        map[string][]span
	done         map[string]bool
}

// Processing reports whether the movement's start transition has been
// applied by a frame commit.
func (m *Movement) Processing() bool { return m.processing }

// Variants returns the number of initialized variant stores.
func (m *Movement) Variants() int { return len(m.store) }

type namedMovement struct {
	name string
	m    *Movement
}

// Movements owns the movement table and its deferred start and finish
// queues. Queues are applied by Commit, once per frame, so the table is
// never mutated while a frame is still rendering from it.
type Movements struct {
	now   func() float64
	table map[string]*Movement

	starting  []*Movement
	finishing []namedMovement

	// warn reports recoverable misuse such as an unknown easing name.
	warn func(format string, args ...any)
}

// NewMovements returns an empty movement table reading time from now.
func NewMovements(now func() float64) *Movements {
	return &Movements{
		now:   now,
		table: make(map[string]*Movement),
	}
}

// Set creates the movement name lasting duration milliseconds, starting now.
// An existing movement with the same name is replaced.
func (ms *Movements) Set(name string, duration float64) {
	now := ms.now()
	ms.table[name] = &Movement{
		Start:    now,
		End:      now + duration,
		Duration: duration,
		store:    make(map[string][]span),
		done:     make(map[string]bool),
	}
}

// Get returns the movement registered under name.
func (ms *Movements) Get(name string) (*Movement, bool) {
	m, ok := ms.table[name]
	return m, ok
}

// Len returns the number of live movements.
func (ms *Movements) Len() int { return len(ms.table) }

// Advance renders the movement name at the current time. pairs holds one
// [start, end] bound per rendered value; render receives the eased values in
// pair order. Advancing an unknown movement does nothing.
//
// The first call for a variant fills its store from pairs; later calls ignore
// pairs. When the current time passes the movement's end, the call renders
// the exact end values, queues removal and runs opts.After.
func (ms *Movements) Advance(name string, pairs [][2]float64, render func(values ...float64), opts MoveOptions) {
	m, ok := ms.table[name]
	if !ok {
		return
	}

	easeFn := ms.easing(opts.Easing)
	variant := opts.Variant
	if variant == "" {
		variant = DefaultVariant
	}

	if !m.processing && !m.startQueued {
		m.startQueued = true
		ms.starting = append(ms.starting, m)
	}

	spans, ok := m.store[variant]
	if !ok {
		spans = make([]span, len(pairs))
		for i, p := range pairs {
			spans[i] = span{start: p[0], end: p[1]}
		}
		m.store[variant] = spans
		if opts.Before != nil {
			opts.Before()
		}
	}

	now := ms.now()
	finished := now > m.End
	elapsed := m.Duration
	if !finished {
		elapsed = now - m.Start
	}

	values := make([]float64, len(spans))
	for i, s := range spans {
		values[i] = easeFn(elapsed, s.start, s.end-s.start, m.Duration)
	}

	if finished && !m.finishQueued {
		m.finishQueued = true
		ms.finishing = append(ms.finishing, namedMovement{name: name, m: m})
	}

	if render != nil {
		render(values...)
	}

	if finished && !m.done[variant] {
		m.done[variant] = true
		if opts.After != nil {
			opts.After()
		}
	}
}

// Commit applies the queued start and finish transitions. A finish only
// removes the table entry it was queued for, so a movement restarted with Set
// during the frame survives.
func (ms *Movements) Commit() {
	for i, m := range ms.starting {
		m.processing = true
		m.startQueued = false
		ms.starting[i] = nil
	}
	ms.starting = ms.starting[:0]

	for i, f := range ms.finishing {
		if cur, ok := ms.table[f.name]; ok && cur == f.m {
			delete(ms.table, f.name)
		}
		ms.finishing[i] = namedMovement{}
	}
	ms.finishing = ms.finishing[:0]
}

func (ms *Movements) easing(name string) EaseFunc {
	if name == "" {
		return Linear
	}
	fn, ok := easings[name]
	if !ok {
		if ms.warn != nil {
			ms.warn("unknown easing %q, using linear", name)
		}
		return Linear
	}
	return fn
}
