// Package ecs bridges sapling input into a [Donburi] world.
//
// [NewDonburiStore] publishes every trigger, key and pointer event the engine
// dispatches as a typed Donburi event. Subscribe to [InteractionEventType]
// in your systems and drain it once per frame, for example from
// Engine.EndFrame:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEntityStore(store)
//	engine.EndFrame = func(e *sapling.Engine, t float64) {
//		ecs.InteractionEventType.ProcessEvents(world)
//	}
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
