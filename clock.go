package sapling

const (
	defaultFPS = 60
	msPerSec   = 1000
)

// Clock tracks frame timing and pause state. All times are milliseconds on
// the host's monotonic timeline.
//
// While paused, simulation time is frozen: real time keeps elapsing but the
// pause duration is added to pausedTotal on resume and subtracted from every
// later timestamp, so game logic never sees the gap.
type Clock struct {
	now func() float64

	last   float64
	ticked bool
	fps    float64

	paused      bool
	pausedAt    float64
	pausedTotal float64
}

// NewClock returns a clock that reads real time from now.
func NewClock(now func() float64) *Clock {
	return &Clock{now: now}
}

// Tick records a frame at simulation time t and recomputes the FPS.
// The first tick reports 60 FPS since there is no prior sample.
func (c *Clock) Tick(t float64) {
	switch {
	case !c.ticked:
		c.fps = defaultFPS
	case t > c.last:
		c.fps = msPerSec / (t - c.last)
	}
	c.last = t
	c.ticked = true
}

// TogglePause flips the paused state and returns the new value.
func (c *Clock) TogglePause() bool {
	now := c.now()
	c.paused = !c.paused
	if c.paused {
		c.pausedAt = now
	} else {
		c.pausedTotal += now - c.pausedAt
	}
	return c.paused
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool { return c.paused }

// FPS returns the frames per second measured at the last tick.
func (c *Clock) FPS() float64 { return c.fps }

// LastTick returns the simulation time of the last tick.
func (c *Clock) LastTick() float64 { return c.last }

// PausedTotal returns the accumulated duration of completed pauses.
func (c *Clock) PausedTotal() float64 { return c.pausedTotal }

// SimTime converts a raw host timestamp into simulation time.
func (c *Clock) SimTime(raw float64) float64 {
	return raw - c.pausedTotal
}

// Now returns the current simulation time. It does not advance while paused.
func (c *Clock) Now() float64 {
	if c.paused {
		return c.pausedAt - c.pausedTotal
	}
	return c.now() - c.pausedTotal
}

// PixelsPerFrame converts a per-second velocity into a per-frame step at the
// current frame rate.
func (c *Clock) PixelsPerFrame(velocity float64) float64 {
	if c.fps == 0 {
		return velocity / defaultFPS
	}
	return velocity / c.fps
}
