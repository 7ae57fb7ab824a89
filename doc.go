// Package sapling is a small real-time 2D loop for [Ebitengine] and the
// terminal.
//
// An [Engine] owns a pausable [Clock], a table of named time [Movements], a
// [Layers] registry of [Instance] values, a key and pointer dispatcher and
// an asset [Loader]. Every frame it clears the surface, runs the frame
// hooks, updates and paints each layer in order, then commits the movement
// start and finish queues.
//
// # Quick start
//
//	host := sapling.NewEbitenHost()
//	e, err := sapling.New(sapling.Config{Width: 640, Height: 480}, host)
//	if err != nil {
//		log.Fatal(err)
//	}
//	box := sapling.NewInstance("box")
//	box.Painter = func(i *sapling.Instance, e *sapling.Engine) {
//		s := e.Surface()
//		s.SetFillColor(sapling.ColorWhite)
//		s.BeginPath()
//		s.Rect(i.X, i.Y, 40, 40)
//		s.Fill()
//	}
//	e.AddInstance(box, "")
//	e.Start()
//	sapling.Run(e, "My Game")
//
// The term subpackage provides a [Host] backed by a tcell screen, and the
// ecs subpackage forwards interaction events to a [Donburi] world.
//
// # Time
//
// Every time is in milliseconds. While paused, simulation time stands
// still: the paused span is subtracted from every later frame timestamp and
// from [Engine.Now], so movements resume exactly where they stopped.
//
// # Movements
//
// [Engine.SetTimeMovement] starts a named envelope; [Engine.TimeMovement]
// renders eased values from it every frame. Each [MoveOptions.Variant]
// keeps its own bounds on the same timeline. Easing functions are looked
// up by name; the built-in set comes from [gween].
//
// # Assets
//
// Images and WAV audio are requested with [Engine.AddImage],
// [Engine.AddAudio] or [Engine.RequestManifest] and loaded concurrently
// through an [AssetTransport]. A failed load is retried up to
// [Config.LoadLimit] times. [Engine.Load] reports progress and calls back
// once every request has loaded or permanently failed.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sapling
