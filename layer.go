package sapling

import (
	"errors"
	"fmt"
)

// DefaultLayer is created with every registry and used when a layer name is
// left empty.
const DefaultLayer = "default"

var (
	// ErrUnknownLayer is returned when an operation names a layer that does
	// not exist.
	ErrUnknownLayer = errors.New("sapling: unknown layer")
	// ErrLayerIndex is returned by Swap for an out-of-range index.
	ErrLayerIndex = errors.New("sapling: layer index out of range")
)

// Layers is an ordered set of named layers, each holding an ordered slice of
// instances. Layer order is paint and update order. Instances that had a
// Trigger when added are also kept in a reactive slice, in registration
// order, for hit testing.
//
// Lookups by name are linear scans and return the first match in insertion
// order; names need not be unique.
type Layers struct {
	order     []string
	instances map[string][]*Instance
	reactive  []*Instance
}

// NewLayers returns a registry containing only DefaultLayer.
func NewLayers() *Layers {
	return &Layers{
		order:     []string{DefaultLayer},
		instances: map[string][]*Instance{DefaultLayer: nil},
	}
}

// Add appends a new empty layer. Adding an existing name does nothing and
// returns false.
func (l *Layers) Add(name string) bool {
	if _, ok := l.instances[name]; ok {
		return false
	}
	l.order = append(l.order, name)
	l.instances[name] = nil
	return true
}

// Remove deletes a layer together with every instance it holds. The
// instances are dropped from the reactive slice as well; they are not moved
// anywhere.
func (l *Layers) Remove(name string) bool {
	insts, ok := l.instances[name]
	if !ok {
		return false
	}
	for _, inst := range insts {
		l.dropReactive(inst)
		inst.attached = false
		inst.removed = true
		inst.layer = ""
	}
	delete(l.instances, name)
	for i, n := range l.order {
		if n == name {
			copy(l.order[i:], l.order[i+1:])
			l.order[len(l.order)-1] = ""
			l.order = l.order[:len(l.order)-1]
			break
		}
	}
	return true
}

// Swap exchanges the order of the layers at indices i and j.
func (l *Layers) Swap(i, j int) error {
	if i < 0 || i >= len(l.order) || j < 0 || j >= len(l.order) {
		return fmt.Errorf("swap %d and %d of %d layers: %w", i, j, len(l.order), ErrLayerIndex)
	}
	l.order[i], l.order[j] = l.order[j], l.order[i]
	return nil
}

// Names returns the layer names in paint order. The returned slice MUST NOT
// be mutated.
func (l *Layers) Names() []string { return l.order }

// Len returns the number of layers.
func (l *Layers) Len() int { return len(l.order) }

// Has reports whether a layer exists.
func (l *Layers) Has(name string) bool {
	_, ok := l.instances[name]
	return ok
}

// AddInstance appends inst to layer ("" means DefaultLayer). An instance
// already owned by a layer is moved. Panics if inst is nil.
func (l *Layers) AddInstance(inst *Instance, layer string) error {
	if inst == nil {
		panic("sapling: cannot add nil instance")
	}
	layer = layerName(layer)
	if _, ok := l.instances[layer]; !ok {
		return fmt.Errorf("add instance %q to %q: %w", inst.Name, layer, ErrUnknownLayer)
	}
	if inst.attached {
		l.detach(inst)
	}
	l.instances[layer] = append(l.instances[layer], inst)
	if inst.Trigger != nil {
		l.reactive = append(l.reactive, inst)
	}
	inst.layer = layer
	inst.attached = true
	inst.removed = false
	return nil
}

// Instance returns the first instance in layer named name, or nil.
func (l *Layers) Instance(name, layer string) *Instance {
	for _, inst := range l.instances[layerName(layer)] {
		if inst.Name == name {
			return inst
		}
	}
	return nil
}

// RemoveInstance removes the first instance in layer named name from the
// layer and from the reactive slice. Reports whether one was found.
func (l *Layers) RemoveInstance(name, layer string) bool {
	inst := l.Instance(name, layer)
	if inst == nil {
		return false
	}
	l.detach(inst)
	inst.removed = true
	return true
}

// Instances returns a layer's instances in insertion order. The returned
// slice MUST NOT be mutated.
func (l *Layers) Instances(layer string) []*Instance {
	return l.instances[layerName(layer)]
}

// Reactive returns the hit-testable instances in registration order. The
// returned slice MUST NOT be mutated.
func (l *Layers) Reactive() []*Instance { return l.reactive }

// Count returns the total number of instances across all layers.
func (l *Layers) Count() int {
	n := 0
	for _, insts := range l.instances {
		n += len(insts)
	}
	return n
}

// detach removes inst from its owning layer and the reactive slice.
func (l *Layers) detach(inst *Instance) {
	insts := l.instances[inst.layer]
	for i, c := range insts {
		if c == inst {
			copy(insts[i:], insts[i+1:])
			insts[len(insts)-1] = nil
			l.instances[inst.layer] = insts[:len(insts)-1]
			break
		}
	}
	l.dropReactive(inst)
	inst.attached = false
	inst.layer = ""
}

func (l *Layers) dropReactive(inst *Instance) {
	for i, c := range l.reactive {
		if c == inst {
			copy(l.reactive[i:], l.reactive[i+1:])
			l.reactive[len(l.reactive)-1] = nil
			l.reactive = l.reactive[:len(l.reactive)-1]
			return
		}
	}
}

func layerName(name string) string {
	if name == "" {
		return DefaultLayer
	}
	return name
}
