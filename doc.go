// Package polymesh generates an animated polygon mesh for decorative
// backgrounds.
//
// A [Mesh] scatters nodes over a canvas, links every node to its k nearest
// neighbors and derives per-node opacity from how tightly that neighbor
// cycle is packed, so dense clusters render as filled fog and sparse regions
// fade out. A [Scheduler] moves every node toward a fresh random target on a
// repeating move/rest cycle using one of the [Easing] curves, and an optional
// pseudo-3D rotation turns nodes around a vertical axis with depth fading.
//
// # Quick start
//
//	cfg := polymesh.DefaultConfig()
//	mesh, err := polymesh.NewMesh(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	mesh.Scheduler().OnFrame(func() { mesh.Draw(surface) })
//	mesh.Start(frames)
//
// The mesh never rasterizes itself. It assembles [DrawCommand]s and submits
// them to a [Surface]; the sub-packages provide surfaces for Ebitengine
// windows (ebitensurface), PNG frames (ggsurface), SVG documents
// (svgsurface) and terminals (termsurface).
//
// # Frames
//
// Hosts deliver frames through a [FrameSource]. [ManualFrames] fires only
// when told to and drives tests and offline export; [LoopFrames] fires from
// a wall-clock ticker. Hosts with their own loop can skip both and call
// [Scheduler.Tick] with a monotonic timestamp.
//
// # Configuration
//
// [Config] can be built in code from [DefaultConfig] or loaded from TOML or
// YAML with [LoadConfig].
package polymesh
