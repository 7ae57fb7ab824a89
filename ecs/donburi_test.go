package ecs

import (
	"testing"

	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []sapling.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e sapling.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(sapling.InteractionEvent{
		Type:     sapling.EventTrigger,
		Instance: "button",
		EntityID: 42,
		X:        100,
		Y:        200,
	})
	store.EmitEvent(sapling.InteractionEvent{
		Type: sapling.EventKeyDown,
		Key:  sapling.KeyEnter,
		Code: sapling.CodeEnter,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != sapling.EventTrigger || e0.EntityID != 42 || e0.Instance != "button" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}
	e1 := received[1]
	if e1.Type != sapling.EventKeyDown || e1.Key != sapling.KeyEnter {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store sapling.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e sapling.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e sapling.InteractionEvent) {
		count2++
	})

	store.EmitEvent(sapling.InteractionEvent{Type: sapling.EventPointerStart})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestOnTriggerFiltersEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var names []string
	OnTrigger(world, func(w donburi.World, e sapling.InteractionEvent) {
		names = append(names, e.Instance)
	})

	store.EmitEvent(sapling.InteractionEvent{Type: sapling.EventPointerMove})
	store.EmitEvent(sapling.InteractionEvent{Type: sapling.EventTrigger, Instance: "a"})
	store.EmitEvent(sapling.InteractionEvent{Type: sapling.EventKeyUp})
	store.EmitEvent(sapling.InteractionEvent{Type: sapling.EventTrigger, Instance: "b"})
	InteractionEventType.ProcessEvents(world)

	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("triggered = %v, want [a b]", names)
	}
}
