package ember

import (
	"errors"
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// SystemConfig is the YAML description of a particle system:
//
//	seed: 7
//	emitters:
//	  - preset: stars
//	  - name: embers
//	    preset: flame
//	    offset: [-120, 0, 0]
//	    config:
//	      particlesPerSecond: 60
//	      speed: [10, 30]
//	      blend: add
//	      sizeTween: {times: [0, 1.5], values: [30, 4], ease: outQuad}
//
// Each entry starts from its preset (or DefaultEmitterConfig when Preset is
// empty or "custom") and the config block overrides only the fields it sets.
type SystemConfig struct {
	// Seed makes particle placement reproducible. Zero uses the global source.
	Seed     uint64         `yaml:"seed"`
	Emitters []EmitterEntry `yaml:"emitters"`
}

// EmitterEntry is one emitter in a SystemConfig.
type EmitterEntry struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Offset Vec3      `yaml:"offset"`
	Config yaml.Node `yaml:"config"`
}

// tweenOverrides carries the tween fields of an emitter config block.
type tweenOverrides struct {
	OpacityTween *keySpec[float64] `yaml:"opacityTween"`
	SizeTween    *keySpec[float64] `yaml:"sizeTween"`
	ColorTween   *keySpec[Color]   `yaml:"colorTween"`
}

// keySpec is the YAML form of a tween.
type keySpec[V any] struct {
	Times  []float64 `yaml:"times"`
	Values []V       `yaml:"values"`
	Ease   string    `yaml:"ease"`
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":     nil,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
}

func buildTween[V any](spec *keySpec[V], build func(...Keyframe[V]) (*Tween[V], error)) (*Tween[V], error) {
	keys, err := Keys(spec.Times, spec.Values)
	if err != nil {
		return nil, err
	}
	tw, err := build(keys...)
	if err != nil {
		return nil, err
	}
	if spec.Ease != "" {
		fn, ok := easeFuncs[spec.Ease]
		if !ok {
			return nil, fmt.Errorf("ember: unknown ease %q", spec.Ease)
		}
		tw = tw.Eased(fn)
	}
	return tw, nil
}

// ParseConfig decodes and validates a YAML system config. An empty emitter
// list selects the four stock emitters.
func ParseConfig(data []byte) (*SystemConfig, error) {
	var cfg SystemConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ember: failed to parse config: %w", err)
	}
	if _, err := cfg.Specs(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML system config file.
func LoadConfig(path string) (*SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ember: failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// Specs resolves every entry to an EmitterSpec.
func (c *SystemConfig) Specs() ([]EmitterSpec, error) {
	if len(c.Emitters) == 0 {
		return DefaultSpecs(), nil
	}
	specs := make([]EmitterSpec, 0, len(c.Emitters))
	seen := make(map[string]bool, len(c.Emitters))
	for i := range c.Emitters {
		spec, err := c.Emitters[i].spec()
		if err != nil {
			return nil, fmt.Errorf("ember: emitter %d: %w", i, err)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEmitter, spec.Name)
		}
		seen[spec.Name] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

// NewSystem builds a System from the config under root. A non-zero Seed
// injects a seeded generator ahead of opts.
func (c *SystemConfig) NewSystem(root *Node, opts ...SystemOption) (*System, error) {
	specs, err := c.Specs()
	if err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		opts = append([]SystemOption{WithRand(NewRand(c.Seed))}, opts...)
	}
	return NewSystem(root, specs, opts...)
}

func (e *EmitterEntry) spec() (EmitterSpec, error) {
	base := DefaultEmitterConfig()
	if e.Preset != "" && e.Preset != "custom" {
		p, err := Preset(e.Preset)
		if err != nil {
			return EmitterSpec{}, err
		}
		base = p
	}
	name := e.Name
	if name == "" {
		name = e.Preset
	}
	if name == "" {
		return EmitterSpec{}, errors.New("emitter needs a name or a preset")
	}

	if e.Config.Kind != 0 {
		if err := e.Config.Decode(&base); err != nil {
			return EmitterSpec{}, fmt.Errorf("%s: %w", name, err)
		}
		var tw tweenOverrides
		if err := e.Config.Decode(&tw); err != nil {
			return EmitterSpec{}, fmt.Errorf("%s: %w", name, err)
		}
		if err := tw.apply(&base); err != nil {
			return EmitterSpec{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	return EmitterSpec{Name: name, Config: base, Offset: e.Offset}, nil
}

func (o *tweenOverrides) apply(cfg *EmitterConfig) error {
	var err error
	if o.OpacityTween != nil {
		if cfg.OpacityTween, err = buildTween(o.OpacityTween, NewScalarTween); err != nil {
			return fmt.Errorf("opacityTween: %w", err)
		}
	}
	if o.SizeTween != nil {
		if cfg.SizeTween, err = buildTween(o.SizeTween, NewScalarTween); err != nil {
			return fmt.Errorf("sizeTween: %w", err)
		}
	}
	if o.ColorTween != nil {
		if cfg.ColorTween, err = buildTween(o.ColorTween, NewColorTween); err != nil {
			return fmt.Errorf("colorTween: %w", err)
		}
	}
	return nil
}

// --- YAML forms of the value types ---

// UnmarshalYAML accepts a scalar (fixed value), a two-element sequence
// [min, max], or a mapping {min, max}.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*r = Range{v, v}
	case yaml.SequenceNode:
		var v []float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		if len(v) != 2 {
			return fmt.Errorf("line %d: range needs 2 values, got %d", value.Line, len(v))
		}
		*r = Range{v[0], v[1]}
	default:
		type plain Range
		p := plain(*r)
		if err := value.Decode(&p); err != nil {
			return err
		}
		*r = Range(p)
	}
	return nil
}

// UnmarshalYAML accepts [x, y, z] or a mapping {x, y, z}.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var xs []float64
		if err := value.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 3 {
			return fmt.Errorf("line %d: vector needs 3 values, got %d", value.Line, len(xs))
		}
		*v = Vec3{xs[0], xs[1], xs[2]}
		return nil
	}
	type plain Vec3
	p := plain(*v)
	if err := value.Decode(&p); err != nil {
		return err
	}
	*v = Vec3(p)
	return nil
}

// UnmarshalYAML accepts [r, g, b] or a mapping {r, g, b}.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var xs []float64
		if err := value.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 3 {
			return fmt.Errorf("line %d: color needs 3 values, got %d", value.Line, len(xs))
		}
		*c = Color{xs[0], xs[1], xs[2]}
		return nil
	}
	type plain Color
	p := plain(*c)
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}

// UnmarshalYAML decodes a blend mode name.
func (b *BlendMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for i, n := range blendModeNames {
		if n == name {
			*b = BlendMode(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown blend mode %q", value.Line, name)
}

// MarshalYAML encodes the blend mode by name.
func (b BlendMode) MarshalYAML() (any, error) {
	return b.String(), nil
}
