package ecs

import (
	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type carrying sapling input.
var InteractionEventType = events.NewEventType[sapling.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Events
// are queued on InteractionEventType until ProcessEvents runs.
func NewDonburiStore(world donburi.World) sapling.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sapling.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// OnTrigger subscribes fn to trigger events only.
func OnTrigger(world donburi.World, fn func(w donburi.World, ev sapling.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(w donburi.World, ev sapling.InteractionEvent) {
		if ev.Type == sapling.EventTrigger {
			fn(w, ev)
		}
	})
}
