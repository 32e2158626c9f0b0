package ecs

import (
	"github.com/phanxgames/ember"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// LifecycleEventType is the Donburi event type for ember lifecycle events.
var LifecycleEventType = events.NewEventType[ember.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on LifecycleEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) ember.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event ember.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}

// EmitterData attaches an ember emitter to an entity.
type EmitterData struct {
	Emitter *ember.Emitter
}

// EmitterComponent is the Donburi component holding an EmitterData.
var EmitterComponent = donburi.NewComponentType[EmitterData]()

var emitterQuery = donburi.NewQuery(filter.Contains(EmitterComponent))

// AddEmitter creates an entity carrying e.
func AddEmitter(world donburi.World, e *ember.Emitter) donburi.Entity {
	entity := world.Create(EmitterComponent)
	EmitterComponent.SetValue(world.Entry(entity), EmitterData{Emitter: e})
	return entity
}

// UpdateEmitters advances every emitter attached to an entity by dt seconds
// and returns how many were updated.
func UpdateEmitters(world donburi.World, dt float64) int {
	n := 0
	emitterQuery.Each(world, func(entry *donburi.Entry) {
		data := EmitterComponent.Get(entry)
		if data.Emitter == nil {
			return
		}
		data.Emitter.Update(dt)
		n++
	})
	return n
}
