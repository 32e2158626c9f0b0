package ember

import (
	"errors"
	"fmt"
)

// ErrDuplicateEmitter is returned when two emitter specs share a name.
var ErrDuplicateEmitter = errors.New("ember: duplicate emitter name")

// EmitterSpec names an emitter configuration and places it in the scene.
type EmitterSpec struct {
	Name   string
	Config EmitterConfig
	// Offset is the emitter node's position relative to the system root.
	Offset Vec3
}

// SystemOption configures NewSystem.
type SystemOption func(*System)

// WithRand injects the generator shared by every emitter of the system.
func WithRand(rng Rand) SystemOption {
	return func(s *System) { s.rng = rng }
}

// WithEventSink forwards lifecycle events to sink.
func WithEventSink(sink EventSink) SystemOption {
	return func(s *System) { s.sink = sink }
}

// System composes named emitters, attaches their renderables to a root node,
// and fans lifecycle calls out to all of them. It is also the driver: Update
// advances every emitter once, in registration order.
type System struct {
	root     *Node
	emitters []*Emitter
	byName   map[string]*Emitter
	rng      Rand
	sink     EventSink
	visible  bool
}

// NewSystem builds one emitter per spec, adds each renderable under root at
// its offset, and fires them all.
func NewSystem(root *Node, specs []EmitterSpec, opts ...SystemOption) (*System, error) {
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if _, dup := seen[spec.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEmitter, spec.Name)
		}
		seen[spec.Name] = struct{}{}
	}
	return buildSystem(root, specs, opts), nil
}

// DefaultSystem builds the stars, flame, snow and firefly emitters at their
// standard offsets under root.
func DefaultSystem(root *Node, opts ...SystemOption) *System {
	return buildSystem(root, DefaultSpecs(), opts)
}

func buildSystem(root *Node, specs []EmitterSpec, opts []SystemOption) *System {
	s := &System{
		root:    root,
		byName:  make(map[string]*Emitter, len(specs)),
		rng:     DefaultRand,
		visible: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, spec := range specs {
		e := NewEmitter(spec.Name, spec.Config, s.rng)
		e.node.Position = spec.Offset
		if root != nil {
			root.AddChild(e.node)
		}
		s.emitters = append(s.emitters, e)
		s.byName[spec.Name] = e
	}
	s.Fire()
	return s
}

// Root returns the node the system's renderables are attached to.
func (s *System) Root() *Node {
	return s.root
}

// Emitter returns the emitter with the given name, or nil.
func (s *System) Emitter(name string) *Emitter {
	return s.byName[name]
}

// Emitters returns the emitters in registration order. The returned slice
// MUST NOT be mutated.
func (s *System) Emitters() []*Emitter {
	return s.emitters
}

// Names returns emitter names in registration order.
func (s *System) Names() []string {
	names := make([]string, len(s.emitters))
	for i, e := range s.emitters {
		names[i] = e.name
	}
	return names
}

// Update advances every emitter by dt seconds.
func (s *System) Update(dt float64) {
	for _, e := range s.emitters {
		e.Update(dt)
	}
}

// Play resumes every emitter with a nominal first step.
func (s *System) Play() {
	for _, e := range s.emitters {
		e.Play()
		s.emit(LifecycleEvent{Type: EventPlay, Emitter: e.name, Clock: e.clock})
	}
}

// Pause suspends every emitter.
func (s *System) Pause() {
	for _, e := range s.emitters {
		e.Pause()
		s.emit(LifecycleEvent{Type: EventPause, Emitter: e.name, Clock: e.clock})
	}
}

// Fire starts every emitter with real elapsed time.
func (s *System) Fire() {
	for _, e := range s.emitters {
		e.Fire()
		s.emit(LifecycleEvent{Type: EventFire, Emitter: e.name, Clock: e.clock})
	}
}

// Visible reports the last visibility passed to SetVisible.
func (s *System) Visible() bool {
	return s.visible
}

// SetVisible is the host visibility hook: hiding pauses every emitter and
// showing plays them again. Repeated calls with the same value are no-ops.
func (s *System) SetVisible(visible bool) {
	if visible == s.visible {
		return
	}
	s.visible = visible
	s.emit(LifecycleEvent{Type: EventVisibility, Visible: visible})
	if visible {
		s.Play()
	} else {
		s.Pause()
	}
}

// Dispose detaches and releases every emitter.
func (s *System) Dispose() {
	for _, e := range s.emitters {
		e.Dispose()
	}
	s.emitters = nil
	s.byName = map[string]*Emitter{}
}

func (s *System) emit(ev LifecycleEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}
