// Package ecs bridges ember particle systems into a [Donburi] world.
//
// [NewDonburiSink] publishes system lifecycle events (fire, play, pause,
// visibility) as typed Donburi events. Subscribe to [LifecycleEventType] in
// your ECS systems to receive them:
//
//	sys := ember.DefaultSystem(scene.Root(), ember.WithEventSink(ecs.NewDonburiSink(world)))
//
// Emitters can also live on entities through [EmitterComponent] and be
// driven by [UpdateEmitters] from an ECS update loop.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
