package sapling

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnsupported is returned by New when the host cannot provide a drawing
// surface.
var ErrUnsupported = errors.New("sapling: host has no drawing surface")

// pausePoll is how often a paused engine checks whether it was resumed.
const pausePoll = 100 * time.Millisecond

// Host supplies the platform services an Engine runs on. Every callback a
// host invokes must run on the same goroutine.
type Host interface {
	// RequestFrame schedules fn for the next frame. now is the host's
	// monotonic time in milliseconds.
	RequestFrame(fn func(now float64))
	// After runs fn once, no earlier than d from now.
	After(d time.Duration, fn func())
	// Now returns the host's monotonic time in milliseconds.
	Now() float64
	// Surface returns the drawing surface, or nil if there is none.
	Surface() Surface
	// TouchInput reports whether pointer input comes from touches.
	TouchInput() bool
}

// Engine composes the clock, the movement table, the layer registry, the
// input dispatcher and the asset loader, and drives the frame pipeline.
//
// Every method must be called from the host's goroutine.
type Engine struct {
	// StartFrame runs at the start of each frame, after the surface is
	// cleared, with the simulation time.
	StartFrame func(e *Engine, t float64)
	// PaintUnder runs before instances are updated and painted.
	PaintUnder func(e *Engine)
	// PaintAbove runs after instances are painted.
	PaintAbove func(e *Engine)
	// EndFrame runs after PaintAbove and before movements are committed.
	EndFrame func(e *Engine, t float64)

	// PointerStart, PointerEnd and PointerMove receive pointer input in
	// displayed coordinates. See TouchInput for the source.
	PointerStart func(e *Engine, ev PointerEvent)
	PointerEnd   func(e *Engine, ev PointerEvent)
	PointerMove  func(e *Engine, ev PointerEvent)

	cfg     Config
	host    Host
	surface Surface
	width   float64
	height  float64
	touch   bool

	clock     *Clock
	movements *Movements
	layers    *Layers
	loader    *Loader
	keys      keyRegistry
	store     EntityStore
	variables map[string]any
	script    *Script

	running     bool
	pending     bool
	hitBuf      []*Instance
	injectQueue []injectedEvent

	debugMarks []debugMark
	stats      frameStats
	debugOut   io.Writer
}

// New creates an engine on host. The backing size is cfg.Width x
// cfg.Height, or the surface size when those are zero, or 640x480; it is
// doubled when cfg.HighResolution is set.
func New(cfg Config, host Host) (*Engine, error) {
	if host == nil || host.Surface() == nil {
		return nil, ErrUnsupported
	}
	cfg = cfg.withDefaults()
	surface := host.Surface()

	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		sw, sh := surface.Size()
		if w == 0 {
			w = sw
		}
		if h == 0 {
			h = sh
		}
	}
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}
	if cfg.HighResolution {
		w *= 2
		h *= 2
	}

	e := &Engine{
		cfg:       cfg,
		host:      host,
		surface:   surface,
		width:     float64(w),
		height:    float64(h),
		touch:     host.TouchInput(),
		clock:     NewClock(host.Now),
		layers:    NewLayers(),
		keys:      newKeyRegistry(),
		variables: make(map[string]any),
		debugOut:  os.Stderr,
	}
	e.movements = NewMovements(e.clock.Now)
	e.movements.warn = e.debugf
	e.loader = NewLoader(NewFileTransport("."), cfg.LoadLimit, cfg.SoundOn)
	e.loader.debugf = e.debugf
	return e, nil
}

// Config returns the configuration the engine was created with, with
// defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Surface returns the drawing surface.
func (e *Engine) Surface() Surface { return e.surface }

// Width returns the backing width in pixels.
func (e *Engine) Width() float64 { return e.width }

// Height returns the backing height in pixels.
func (e *Engine) Height() float64 { return e.height }

// Center returns the midpoint of the backing surface.
func (e *Engine) Center() (float64, float64) { return e.width / 2, e.height / 2 }

// HighResolution reports whether the backing size is doubled.
func (e *Engine) HighResolution() bool { return e.cfg.HighResolution }

// Start schedules the first frame. Calling Start on a running engine does
// nothing.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.debugf("start %vx%v", e.width, e.height)
	if !e.pending {
		e.pending = true
		e.host.RequestFrame(e.animate)
	}
}

// Stop ends frame scheduling once the current frame completes.
func (e *Engine) Stop() { e.running = false }

// Running reports whether frames are being scheduled.
func (e *Engine) Running() bool { return e.running }

// TogglePause pauses or resumes the simulation and returns the new state.
func (e *Engine) TogglePause() bool {
	paused := e.clock.TogglePause()
	e.debugf("paused=%v", paused)
	return paused
}

// Paused reports whether the simulation is paused.
func (e *Engine) Paused() bool { return e.clock.Paused() }

// FPS returns the frame rate measured at the last frame.
func (e *Engine) FPS() float64 { return e.clock.FPS() }

// Now returns the current simulation time in milliseconds.
func (e *Engine) Now() float64 { return e.clock.Now() }

// PixelsPerFrame converts a per-second velocity into a per-frame step.
func (e *Engine) PixelsPerFrame(velocity float64) float64 {
	return e.clock.PixelsPerFrame(velocity)
}

// animate runs one frame. raw is the host timestamp of the frame.
func (e *Engine) animate(raw float64) {
	e.pending = false
	if !e.running {
		return
	}
	e.deliverInjected()

	if e.clock.Paused() {
		e.pending = true
		e.host.After(pausePoll, func() {
			e.host.RequestFrame(e.animate)
		})
		return
	}

	t := e.clock.SimTime(raw)
	e.clock.Tick(t)
	e.clean()

	if e.StartFrame != nil {
		e.StartFrame(e, t)
	}
	if e.PaintUnder != nil {
		e.PaintUnder(e)
	}

	updateStart := time.Now()
	e.updateInstances(t)
	paintStart := time.Now()
	e.paintInstances()
	paintEnd := time.Now()

	if e.PaintAbove != nil {
		e.PaintAbove(e)
	}
	if e.EndFrame != nil {
		e.EndFrame(e, t)
	}

	commitStart := time.Now()
	e.movements.Commit()

	if e.cfg.Debug {
		e.showFPS()
		e.drawDebug()
		e.recordStats(frameTimes{
			update: paintStart.Sub(updateStart),
			paint:  paintEnd.Sub(paintStart),
			commit: time.Since(commitStart),
		})
	}

	if e.running {
		e.pending = true
		e.host.RequestFrame(e.animate)
	}
}

// clean clears the whole surface and the debug marks of the last frame.
func (e *Engine) clean() {
	e.surface.ClearRect(0, 0, e.width, e.height)
	clear(e.debugMarks)
	e.debugMarks = e.debugMarks[:0]
}

func (e *Engine) updateInstances(t float64) {
	for _, name := range e.layers.Names() {
		for _, inst := range e.layers.Instances(name) {
			inst.Update(e, t)
		}
	}
}

func (e *Engine) paintInstances() {
	for _, name := range e.layers.Names() {
		for _, inst := range e.layers.Instances(name) {
			inst.Paint(e)
		}
	}
}

// --- Layers ---

// Layers returns the layer registry.
func (e *Engine) Layers() *Layers { return e.layers }

// AddLayer appends a layer. Returns false if it already exists.
func (e *Engine) AddLayer(name string) bool { return e.layers.Add(name) }

// RemoveLayer deletes a layer and discards every instance in it.
func (e *Engine) RemoveLayer(name string) bool { return e.layers.Remove(name) }

// SwapLayer exchanges the paint order of two layers.
func (e *Engine) SwapLayer(i, j int) error { return e.layers.Swap(i, j) }

// AddInstance adds inst to layer ("" for DefaultLayer).
func (e *Engine) AddInstance(inst *Instance, layer string) error {
	return e.layers.AddInstance(inst, layer)
}

// GetInstance returns the first instance named name in layer, or nil.
func (e *Engine) GetInstance(name, layer string) *Instance {
	return e.layers.Instance(name, layer)
}

// RemoveInstance removes the first instance named name from layer.
func (e *Engine) RemoveInstance(name, layer string) bool {
	return e.layers.RemoveInstance(name, layer)
}

// --- Movements ---

// Movements returns the movement table.
func (e *Engine) Movements() *Movements { return e.movements }

// SetTimeMovement creates or restarts the movement name, lasting duration
// milliseconds from now.
func (e *Engine) SetTimeMovement(name string, duration float64) {
	e.movements.Set(name, duration)
}

// TimeMovement advances the movement name and renders its values.
// See Movements.Advance.
func (e *Engine) TimeMovement(name string, pairs [][2]float64, render func(values ...float64), opts MoveOptions) {
	e.movements.Advance(name, pairs, render, opts)
}

// --- Variables ---

// SetVariable stores a value under key.
func (e *Engine) SetVariable(key string, value any) {
	e.variables[key] = value
}

// Variable returns the value stored under key. When there is none and
// fallback is non-nil, fallback is stored and returned.
func (e *Engine) Variable(key string, fallback any) any {
	if v, ok := e.variables[key]; ok {
		return v
	}
	if fallback != nil {
		e.variables[key] = fallback
	}
	return fallback
}

// --- Assets ---

// Loader returns the asset loader.
func (e *Engine) Loader() *Loader { return e.loader }

// SetAssetTransport replaces the transport used by later load attempts,
// retries included. The default reads from the working directory.
func (e *Engine) SetAssetTransport(t AssetTransport) {
	e.loader.SetTransport(t)
}

// AddImage requests an image.
func (e *Engine) AddImage(name, src string) {
	e.loader.Request(AssetImage, name, src)
}

// AddAudio requests an audio clip. Ignored unless sound is on.
func (e *Engine) AddAudio(name, src string) {
	e.loader.Request(AssetAudio, name, src)
}

// RequestManifest requests every entry of m.
func (e *Engine) RequestManifest(m Manifest) {
	for _, ent := range m.Images {
		e.AddImage(ent.Name, ent.Src)
	}
	for _, ent := range m.Audio {
		e.AddAudio(ent.Name, ent.Src)
	}
}

// Image returns a loaded image, or nil.
func (e *Engine) Image(name string) *ebiten.Image {
	img, _ := e.loader.Image(name)
	return img
}

// Audio returns a loaded sound, or nil.
func (e *Engine) Audio(name string) *Sound {
	s, _ := e.loader.Audio(name)
	return s
}

// PlayAudio plays a loaded sound. Does nothing when sound is off or the
// sound is not loaded.
func (e *Engine) PlayAudio(name string, loop bool) {
	if !e.cfg.SoundOn {
		return
	}
	s := e.Audio(name)
	if s == nil {
		return
	}
	if err := s.Play(loop); err != nil {
		e.debugf("play %q: %v", name, err)
	}
}

// PauseAudio pauses a playing sound.
func (e *Engine) PauseAudio(name string) {
	if s := e.Audio(name); s != nil {
		s.Pause()
	}
}

// Load polls the loader every PollInterval until every requested asset has
// loaded or permanently failed, reporting progress on each poll. It then
// calls onLoad once with the joined permanent failures, or calls Start if
// onLoad is nil.
func (e *Engine) Load(onLoad func(e *Engine, err error), onProgress func(e *Engine, p Progress)) {
	var progress func(Progress)
	if onProgress != nil {
		progress = func(p Progress) { onProgress(e, p) }
	}
	var poll func()
	poll = func() {
		if !e.loader.Poll(progress) {
			e.host.After(e.cfg.PollInterval, poll)
			return
		}
		err := e.loader.Err()
		if err != nil {
			e.debugf("load finished with failures: %v", err)
		}
		if onLoad != nil {
			onLoad(e, err)
			return
		}
		e.Start()
	}
	e.host.After(e.cfg.PollInterval, poll)
}

// Screenshotter is implemented by hosts that can capture a frame.
type Screenshotter interface {
	Screenshot(label string)
}

// Screenshot asks the host to capture the next rendered frame under label.
// Hosts that cannot capture frames ignore it.
func (e *Engine) Screenshot(label string) {
	sc, ok := e.host.(Screenshotter)
	if !ok {
		e.debugf("screenshot %q: host cannot capture frames", label)
		return
	}
	sc.Screenshot(label)
}

// SetDebugOutput redirects debug logging. Nil discards it.
func (e *Engine) SetDebugOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	e.debugOut = w
}

func (e *Engine) debugf(format string, args ...any) {
	if !e.cfg.Debug {
		return
	}
	_, _ = fmt.Fprintf(e.debugOut, "[sapling] "+format+"\n", args...)
}
