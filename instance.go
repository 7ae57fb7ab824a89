package sapling

// Instance is a drawable, updatable and triggerable entity. A single flat
// struct covers every capability combination; the hook fields are nil when
// the capability is absent and cost nothing.
//
// An instance belongs to at most one layer at a time.
type Instance struct {
	Name string

	X, Y          float64
	Width, Height float64
	AX, AY        float64
	VX, VY        float64

	Visible bool
	Ready   bool

	// Metadata
	UserData any
	EntityID uint32

	// Painter draws the instance. Called only while Visible.
	Painter func(inst *Instance, e *Engine)
	// Action updates the instance once per frame with the simulation time.
	Action func(inst *Instance, e *Engine, t float64)
	// Trigger fires when a pointer hits the instance's bounds. Only checked
	// when the instance is added to a layer.
	Trigger func(inst *Instance, e *Engine)

	halfWidth  float64
	halfHeight float64

	layer    string
	attached bool
	removed  bool
}

// NewInstance creates a visible instance with the given name.
func NewInstance(name string) *Instance {
	return &Instance{Name: name, Visible: true}
}

// Paint runs the Painter hook if the instance is visible.
func (i *Instance) Paint(e *Engine) {
	if i.Painter != nil && i.Visible {
		i.Painter(i, e)
	}
}

// Update runs the Action hook.
func (i *Instance) Update(e *Engine, t float64) {
	if i.Action != nil {
		i.Action(i, e, t)
	}
}

// SetWidth sets Width and caches its half.
func (i *Instance) SetWidth(w float64) {
	i.Width = w
	i.halfWidth = w / 2
}

// SetHeight sets Height and caches its half.
func (i *Instance) SetHeight(h float64) {
	i.Height = h
	i.halfHeight = h / 2
}

// HalfSize returns half the width and height as last set through SetWidth
// and SetHeight.
func (i *Instance) HalfSize() (float64, float64) {
	return i.halfWidth, i.halfHeight
}

// Center returns the midpoint of the instance's bounds.
func (i *Instance) Center() (float64, float64) {
	return i.X + i.Width/2, i.Y + i.Height/2
}

// Bounds returns the instance's axis-aligned bounding box.
func (i *Instance) Bounds() Rect {
	return Rect{X: i.X, Y: i.Y, Width: i.Width, Height: i.Height}
}

// Contains reports whether (x, y) lies inside the bounds, edges included.
func (i *Instance) Contains(x, y float64) bool {
	return i.Bounds().Contains(x, y)
}

// Step integrates acceleration into velocity and velocity into position,
// both expressed per second and scaled to the engine's current frame rate.
func (i *Instance) Step(e *Engine) {
	i.VX += e.PixelsPerFrame(i.AX)
	i.VY += e.PixelsPerFrame(i.AY)
	i.X += e.PixelsPerFrame(i.VX)
	i.Y += e.PixelsPerFrame(i.VY)
}

// Layer returns the name of the owning layer, if any.
func (i *Instance) Layer() (string, bool) {
	return i.layer, i.attached
}

// Removed reports whether the instance was removed from a layer and not
// added to another since.
func (i *Instance) Removed() bool { return i.removed }
