package ember

// EventSink is the interface for optional ECS integration.
// When set on a System, emitter lifecycle changes are forwarded to it.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

// EventType identifies a kind of lifecycle event.
type EventType uint8

const (
	EventFire       EventType = iota // emitter started with real elapsed time
	EventPlay                        // emitter resumed with a nominal step
	EventPause                       // emitter suspended
	EventVisibility                  // host visibility changed (Emitter is empty)
)

var eventTypeNames = [...]string{
	EventFire:       "fire",
	EventPlay:       "play",
	EventPause:      "pause",
	EventVisibility: "visibility",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// LifecycleEvent carries lifecycle data for the ECS bridge.
type LifecycleEvent struct {
	Type    EventType
	Emitter string
	// Visible is the new host visibility for EventVisibility.
	Visible bool
	// Clock is the emitter's simulated time when the event fired.
	Clock float64
}
