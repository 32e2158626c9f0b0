package ember

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("ember: unknown emitter preset")

// Presets maps preset names to config constructors. Each call returns a fresh
// config so callers may modify it freely.
var Presets = map[string]func() EmitterConfig{
	"stars":   StarsConfig,
	"flame":   FlameConfig,
	"snow":    SnowConfig,
	"firefly": FireflyConfig,
}

// Preset returns the named preset config.
func Preset(name string) (EmitterConfig, error) {
	fn, ok := Presets[name]
	if !ok {
		return EmitterConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultSpecs returns the four stock emitters at their standard offsets.
func DefaultSpecs() []EmitterSpec {
	return []EmitterSpec{
		{Name: "stars", Config: StarsConfig(), Offset: Vec3{0, 0, 0}},
		{Name: "flame", Config: FlameConfig(), Offset: Vec3{100, 0, 0}},
		{Name: "snow", Config: SnowConfig(), Offset: Vec3{300, 200, 0}},
		{Name: "firefly", Config: FireflyConfig(), Offset: Vec3{0, 200, 300}},
	}
}

// fullTurn spans a whole revolution. Shells whose polar range covers a full
// turn fill the sphere from both sides of the Y axis.
var fullTurn = Range{0, 2 * math.Pi}

// StarsConfig scatters additive sparkles from an equatorial ring of radius 20,
// flying out in an upward cone.
func StarsConfig() EmitterConfig {
	cfg := DefaultEmitterConfig()
	cfg.ParticlesPerSecond = 100
	cfg.DeathAge = 3
	cfg.Shell = Shell{Radius: Range{0, 20}, Polar: Range{math.Pi / 2, math.Pi / 2}, Azimuth: fullTurn}
	cfg.Direction = DefaultDirection
	cfg.Speed = Range{5, 150}
	cfg.Size = Range{20, 70}
	cfg.Color = ColorRange{Radius: 1}
	cfg.Opacity = Range{0.5, 1}
	cfg.BlendMode = BlendAdd
	return cfg
}

// FlameConfig rises from a single point, swelling then shrinking while it
// cools from orange through red.
func FlameConfig() EmitterConfig {
	cfg := DefaultEmitterConfig()
	cfg.ParticlesPerSecond = 100
	cfg.DeathAge = 4
	cfg.Shell = Shell{Polar: Range{math.Pi / 2, math.Pi / 2}, Azimuth: fullTurn}
	cfg.Direction = DefaultDirection
	cfg.Speed = Range{20, 70}
	cfg.SizeTween = MustScalarTween(
		Keyframe[float64]{0, 80},
		Keyframe[float64]{1, 150},
		Keyframe[float64]{2, 0},
	)
	cfg.ColorTween = MustColorTween(
		Keyframe[Color]{0, Color{0.58, 0.376, 0}},
		Keyframe[Color]{1.8, Color{1, 0, 0}},
		Keyframe[Color]{2, Color{0.458, 0.392, 0}},
	)
	cfg.OpacityTween = MustScalarTween(
		Keyframe[float64]{0, 1},
		Keyframe[float64]{2, 0},
	)
	cfg.BlendMode = BlendAdd
	return cfg
}

// SnowConfig fills a radius 150 sphere with white flakes drifting downward
// and fading over their whole life.
func SnowConfig() EmitterConfig {
	cfg := DefaultEmitterConfig()
	cfg.ParticlesPerSecond = 50
	cfg.DeathAge = 5
	cfg.Shell = Shell{Radius: Range{0, 150}, Polar: fullTurn, Azimuth: fullTurn}
	cfg.Direction = DirectionRange{Polar: Range{math.Pi / 2, 3 * math.Pi / 2}, Azimuth: fullTurn}
	cfg.Speed = Range{20, 50}
	cfg.Size = Range{10, 20}
	cfg.Color = FixedColor(ColorWhite)
	cfg.OpacityTween = MustScalarTween(
		Keyframe[float64]{0, 1},
		Keyframe[float64]{5, 0},
	)
	cfg.BlendMode = BlendNormal
	return cfg
}

// FireflyConfig drifts slow green points around a radius 150 sphere, blinking
// twice per life.
func FireflyConfig() EmitterConfig {
	cfg := DefaultEmitterConfig()
	cfg.ParticlesPerSecond = 10
	cfg.DeathAge = 6
	cfg.Shell = Shell{Radius: Range{0, 150}, Polar: fullTurn, Azimuth: fullTurn}
	cfg.Direction = DirectionRange{Polar: fullTurn, Azimuth: fullTurn}
	cfg.Speed = Range{5, 5}
	cfg.Size = Range{20, 50}
	cfg.Color = ColorRange{Center: Color{0.3, 1, 0.6}, Radius: 1}
	cfg.OpacityTween = MustScalarTween(
		Keyframe[float64]{0, 0},
		Keyframe[float64]{1, 1},
		Keyframe[float64]{2, 0.2},
		Keyframe[float64]{4, 1},
		Keyframe[float64]{6, 0},
	)
	cfg.BlendMode = BlendNormal
	return cfg
}
