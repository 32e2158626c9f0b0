// Package ember is a CPU-simulated 3D point-sprite particle engine for
// [Ebitengine].
//
// # Quick start
//
//	scene := ember.NewScene()
//	sys := ember.DefaultSystem(scene.Root())
//	scene.AddSystem(sys)
//	ember.Run(scene, ember.RunConfig{Title: "particles", Width: 800, Height: 600})
//
// # Model
//
// An [Emitter] owns a fixed pool of particles sized ParticlesPerSecond ×
// DeathAge. Every particle is allocated up front with a random spawn delay
// so the pool looks like a continuous stream. A particle travels in a straight
// line from its origin and is recycled in place once it outlives DeathAge.
// After each update, slot i of the emitter's [PointBuffers] mirrors particle i.
//
// Opacity, size and color are either fixed per particle (drawn from ranges)
// or driven by a keyframe [Tween] sampled at the particle's age.
//
// A [System] groups named emitters under a scene node and is the driver:
// System.Update advances each emitter once per tick with an explicit delta.
// Pause freezes emitters; Play resumes them with a fixed [NominalStep] so
// the first frame after a pause does not jump. [Scene] pauses and resumes its
// systems when the window loses and regains focus.
//
// # Rendering
//
// [Scene.Draw] projects every visible particle through the perspective
// [Camera], sorts each emitter's sprites back to front, and draws them with a
// Kage point-sprite shader in one call per emitter.
//
// # Configuration
//
// Systems can be described in YAML ([ParseConfig], [LoadConfig]) and reloaded
// live with [WatchConfig]. [SettingsStore] persists user preferences with
// [gdata]. The term sub-package renders a system to a terminal and the ecs
// module bridges lifecycle events into [Donburi].
//
// [Ebitengine]: https://ebitengine.org
// [gdata]: https://github.com/quasilyte/gdata
// [Donburi]: https://github.com/yohamta/donburi
package ember
