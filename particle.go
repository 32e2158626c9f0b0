package ember

// particle holds per-particle simulation state. Unexported; managed by Emitter.
// Particles live in a fixed slice owned by the emitter and are recycled in
// place, never allocated or freed after construction.
type particle struct {
	position  Vec3
	origin    Vec3
	direction Vec3 // unit length
	speed     float64

	delay      float64 // seconds of simulated time before the particle shows
	delayClock float64 // accumulated time toward delay
	age        float64 // seconds since (re)spawn
	visible    bool

	opacity     float64 // effective opacity: zero while hidden
	baseOpacity float64 // fixed opacity when no tween is configured
	size        float64
	color       Color

	emitter *Emitter
}

// ParticleState is a read-only snapshot of one particle.
type ParticleState struct {
	Position  Vec3
	Origin    Vec3
	Direction Vec3
	Speed     float64
	Delay     float64
	Age       float64
	Visible   bool
	Opacity   float64
	Size      float64
	Color     Color
}

// init draws the particle's spawn parameters from the emitter config.
func (p *particle) init(e *Emitter, rng Rand) {
	cfg := &e.config
	p.emitter = e

	p.origin = cfg.Shell.Sample(rng)
	p.position = p.origin
	p.speed = cfg.Speed.Random(rng)
	p.direction = cfg.Direction.Sample(rng)
	p.delay = Range{0, cfg.DeathAge}.Random(rng)

	p.baseOpacity = cfg.Opacity.Random(rng)
	p.size = cfg.Size.Random(rng)
	p.color = cfg.Color.Random(rng)

	p.age = 0
	p.delayClock = 0
	p.visible = false
	p.opacity = 0
}

// recycle resets the particle in place once it outlives the death age.
func (p *particle) recycle(rng Rand) {
	p.position = p.origin
	p.age = 0
	if p.emitter.config.RespawnDelay {
		p.delay = Range{0, p.emitter.config.DeathAge}.Random(rng)
		p.delayClock = 0
		p.visible = false
	}
}

// move advances the particle by delta seconds of simulated time.
func (p *particle) move(delta float64, rng Rand) {
	cfg := &p.emitter.config

	if p.age > cfg.DeathAge {
		p.recycle(rng)
	}
	p.age += delta

	// Age is held at zero until the delay has passed, so a particle shows up
	// at its origin with its tweens at their first keyframe.
	if !p.visible {
		if p.delayClock > p.delay {
			p.visible = true
		} else {
			p.age = 0
			p.delayClock += delta
		}
	}

	opacity := p.baseOpacity
	if cfg.OpacityTween != nil {
		opacity = cfg.OpacityTween.Sample(p.age)
	}
	if p.visible {
		p.opacity = opacity
	} else {
		p.opacity = 0
	}

	if cfg.SizeTween != nil {
		p.size = cfg.SizeTween.Sample(p.age)
	}
	if cfg.ColorTween != nil {
		p.color = cfg.ColorTween.Sample(p.age)
	}

	p.position = p.origin.Add(p.direction.Scale(p.age * p.speed))
}

func (p *particle) state() ParticleState {
	return ParticleState{
		Position:  p.position,
		Origin:    p.origin,
		Direction: p.direction,
		Speed:     p.speed,
		Delay:     p.delay,
		Age:       p.age,
		Visible:   p.visible,
		Opacity:   p.opacity,
		Size:      p.size,
		Color:     p.color,
	}
}
