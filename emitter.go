package ember

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// NominalStep is the delta applied on the first update after Play, so a
// resumed emitter does not jump by the wall-clock time spent paused.
const NominalStep = 1.0 / 60.0

// EmitterConfig controls how particles are spawned and animated. Start from
// DefaultEmitterConfig and override fields; NewEmitter uses the config as
// given.
type EmitterConfig struct {
	// ParticlesPerSecond together with DeathAge sizes the pool.
	ParticlesPerSecond int `yaml:"particlesPerSecond"`
	// DeathAge is the simulated lifetime in seconds after which a particle
	// is recycled.
	DeathAge float64 `yaml:"deathAge"`
	// Shell is the spawn region, relative to the emitter node.
	Shell Shell `yaml:"position"`
	// Direction bounds the initial travel direction.
	Direction DirectionRange `yaml:"direction"`
	// Speed is the range of travel speeds in units per second.
	Speed Range `yaml:"speed"`
	// Size is the range of fixed point sizes, used when SizeTween is nil.
	Size Range `yaml:"size"`
	// Opacity is the range of fixed opacities, used when OpacityTween is nil.
	Opacity Range `yaml:"opacity"`
	// Color is the fixed color region, used when ColorTween is nil.
	Color ColorRange `yaml:"color"`

	// Optional age-driven animation. When set, they replace the fixed values.
	OpacityTween *Tween[float64] `yaml:"-"`
	SizeTween    *Tween[float64] `yaml:"-"`
	ColorTween   *Tween[Color]   `yaml:"-"`

	BlendMode BlendMode `yaml:"blend"`
	// Texture is the sprite drawn for every point. Nil uses a soft disc.
	Texture *ebiten.Image `yaml:"-"`

	// RespawnDelay redraws a particle's spawn delay on every recycle and hides
	// it until the new delay elapses. By default the delay only staggers the
	// first life.
	RespawnDelay bool `yaml:"respawnDelay"`
}

// DefaultColorRange is the color region used by DefaultEmitterConfig: any
// offset of length up to 1 from black.
var DefaultColorRange = ColorRange{Radius: 1}

// DefaultDirection is an upward cone 18 degrees either side of +Y.
var DefaultDirection = DirectionRange{
	Polar:   Range{-math.Pi / 10, math.Pi / 10},
	Azimuth: FullAzimuth,
}

// DefaultEmitterConfig returns the documented defaults: 100 particles per
// second, a 3 second death age, a radius 20 spawn sphere, an upward cone of
// directions, speed in [5,150], size in [20,50], opacity in [0.5,1] and
// normal blending.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		ParticlesPerSecond: 100,
		DeathAge:           3,
		Shell:              Shell{Radius: Range{0, 20}, Polar: FullPolar, Azimuth: FullAzimuth},
		Direction:          DefaultDirection,
		Speed:              Range{5, 150},
		Size:               Range{20, 50},
		Opacity:            Range{0.5, 1},
		Color:              DefaultColorRange,
		BlendMode:          BlendNormal,
	}
}

// PoolSize returns the number of particles an emitter with this config owns.
func (c EmitterConfig) PoolSize() int {
	n := math.Round(float64(c.ParticlesPerSecond) * c.DeathAge)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// Emitter owns a fixed pool of particles and the attribute buffers a renderer
// reads them from. It does not schedule itself: a driver (System or Scene)
// calls Update once per tick.
type Emitter struct {
	name      string
	config    EmitterConfig
	rng       Rand
	particles []particle
	buffers   PointBuffers
	node      *Node

	paused    bool
	fixedStep bool
	clock     float64 // total simulated seconds
	lastDelta float64
}

// NewEmitter creates an emitter with a preallocated pool and a points node
// bound to its buffers. The emitter starts paused; call Fire to start it.
// A nil rng uses DefaultRand.
func NewEmitter(name string, cfg EmitterConfig, rng Rand) *Emitter {
	if rng == nil {
		rng = DefaultRand
	}
	n := cfg.PoolSize()
	e := &Emitter{
		name:      name,
		config:    cfg,
		rng:       rng,
		particles: make([]particle, n),
		buffers:   newPointBuffers(n),
		paused:    true,
	}
	for i := range e.particles {
		p := &e.particles[i]
		p.init(e, rng)
		e.buffers.write(i, p)
	}
	e.node = newPointsNode(name, e)
	return e
}

// Name returns the emitter's name.
func (e *Emitter) Name() string {
	return e.name
}

// Config returns a pointer to the emitter's config. Tween and color fields
// may be tuned live; changing ParticlesPerSecond or DeathAge does not resize
// the pool.
func (e *Emitter) Config() *EmitterConfig {
	return &e.config
}

// Node returns the renderable handle bound to the emitter's buffers.
func (e *Emitter) Node() *Node {
	return e.node
}

// Buffers returns the attribute buffers. The returned value MUST NOT be
// resized by the caller.
func (e *Emitter) Buffers() *PointBuffers {
	return &e.buffers
}

// Len returns the pool size.
func (e *Emitter) Len() int {
	return len(e.particles)
}

// Particle returns a snapshot of particle i.
func (e *Emitter) Particle(i int) ParticleState {
	return e.particles[i].state()
}

// VisibleCount returns the number of particles currently drawn.
func (e *Emitter) VisibleCount() int {
	n := 0
	for i := range e.particles {
		if e.particles[i].opacity > 0 {
			n++
		}
	}
	return n
}

// Paused reports whether updates are currently suspended.
func (e *Emitter) Paused() bool {
	return e.paused
}

// Clock returns the total simulated time in seconds.
func (e *Emitter) Clock() float64 {
	return e.clock
}

// LastDelta returns the delta applied by the most recent update, or zero if
// that update was skipped.
func (e *Emitter) LastDelta() float64 {
	return e.lastDelta
}

// Update advances every particle by dt seconds and writes the results into
// the attribute buffers. It returns the delta actually applied: zero while
// paused, NominalStep on the first update after Play, dt otherwise.
func (e *Emitter) Update(dt float64) float64 {
	if e.paused {
		e.lastDelta = 0
		return 0
	}
	delta := dt
	if e.fixedStep {
		delta = NominalStep
		e.fixedStep = false
	}
	for i := range e.particles {
		p := &e.particles[i]
		p.move(delta, e.rng)
		e.buffers.write(i, p)
	}
	e.buffers.markDirty()
	e.clock += delta
	e.lastDelta = delta
	return delta
}

// Play resumes a paused emitter. The next update uses NominalStep.
func (e *Emitter) Play() {
	e.paused = false
	e.fixedStep = true
}

// Pause suspends updates. Particles freeze until Play or Fire.
func (e *Emitter) Pause() {
	e.paused = true
	e.fixedStep = false
}

// Fire starts the emitter. The next update uses the real elapsed time.
func (e *Emitter) Fire() {
	e.paused = false
	e.fixedStep = false
}

// Dispose detaches the renderable and releases the pool.
func (e *Emitter) Dispose() {
	if e.node != nil {
		e.node.Dispose()
		e.node = nil
	}
	e.particles = nil
	e.buffers = PointBuffers{}
	e.paused = true
}
