package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of an Instance at once.
// Create one with TweenPosition, TweenSize or TweenVelocity and call Update
// each frame, typically from the instance's Action. Durations and deltas are
// in milliseconds, like every other time in the engine.
//
// If the target instance is removed from its layer, the group stops
// without writing.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Instance
	after  func(inst *Instance)
	Done   bool
}

// Update advances all tweens by dt milliseconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.Removed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.after != nil {
		g.after(g.target)
	}
}

// Reset rewinds every tween to its start.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenPosition animates inst.X and inst.Y to (toX, toY).
func TweenPosition(inst *Instance, toX, toY, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: inst}
	g.tweens[0] = gween.New(float32(inst.X), float32(toX), float32(duration), fn)
	g.tweens[1] = gween.New(float32(inst.Y), float32(toY), float32(duration), fn)
	g.fields[0] = &inst.X
	g.fields[1] = &inst.Y
	return g
}

// TweenSize animates inst.Width and inst.Height, keeping the cached half
// sizes in step.
func TweenSize(inst *Instance, toW, toH, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: inst}
	g.tweens[0] = gween.New(float32(inst.Width), float32(toW), float32(duration), fn)
	g.tweens[1] = gween.New(float32(inst.Height), float32(toH), float32(duration), fn)
	g.fields[0] = &inst.Width
	g.fields[1] = &inst.Height
	g.after = func(inst *Instance) {
		inst.SetWidth(inst.Width)
		inst.SetHeight(inst.Height)
	}
	return g
}

// TweenVelocity animates inst.VX and inst.VY, for easing into or out of
// motion driven by Instance.Step.
func TweenVelocity(inst *Instance, toVX, toVY, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: inst}
	g.tweens[0] = gween.New(float32(inst.VX), float32(toVX), float32(duration), fn)
	g.tweens[1] = gween.New(float32(inst.VY), float32(toVY), float32(duration), fn)
	g.fields[0] = &inst.VX
	g.fields[1] = &inst.VY
	return g
}
