// Package hexfield animates a field of hexagons for [Ebitengine].
//
// The field is a grid of flat-topped hexagons drawn on a square canvas that
// covers the window. Hexagons near the pointer shrink, every hexagon breathes
// with a slow randomized "jiggle", and colors cross-fade between entries of a
// palette.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	g := hexfield.NewGame(hexfield.DefaultOptions())
//	hexfield.Run(g, hexfield.RunConfig{
//		Title: "Hex field", Width: 1280, Height: 720,
//	})
//
// For full control, build the pieces yourself: a [Scheduler] that owns all
// timing, a [Viewport] that reports size and pointer events, and a [Surface]
// to draw on.
//
//	sched := hexfield.NewScheduler()
//	vp := hexfield.NewStaticViewport(800, 600)
//	eng := hexfield.NewEngine(hexfield.DefaultOptions(), sched, vp)
//	eng.Attach(surface, nil)
//	eng.Start()
//	// every frame:
//	sched.Tick(dt)
//
// # Scheduler
//
// [Scheduler] runs property tweens and per-frame callbacks. A field holds at
// most one tween: [Scheduler.To] retargets an in-flight tween without a
// visible jump, [Scheduler.Tween] replaces it, and [Scheduler.Yoyo] runs an
// endless back-and-forth whose target is drawn afresh on every outbound leg.
// Tweens are grouped by owner so [Scheduler.KillTweensOf] can cancel them
// together.
//
// # Configuration
//
// [Options] holds the engine configuration. [LoadOptions] reads a YAML or
// TOML file over [DefaultOptions]; [Engine.UpdateOptions] applies a sparse
// [PartialOptions] at runtime and rebuilds the grid only when a geometry
// field is present.
//
// # Automated testing
//
// [LoadTestScript] parses a JSON script of pointer moves, sweeps, waits,
// option changes and screenshots. Attach it with [Game.SetTestRunner]; the
// runner injects synthetic pointer events in place of the real cursor and
// [Game.Screenshot] writes PNG files to [Game.ScreenshotDir].
package hexfield
