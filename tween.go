package ember

import (
	"errors"

	"github.com/tanema/gween/ease"
)

var (
	// ErrEmptyTween is returned when a tween is built without keyframes.
	ErrEmptyTween = errors.New("ember: tween has no keyframes")
	// ErrTweenOrder is returned when keyframe times are not strictly increasing.
	ErrTweenOrder = errors.New("ember: tween keyframe times must be strictly increasing")
	// ErrTweenLength is returned when times and values differ in length.
	ErrTweenLength = errors.New("ember: tween times and values differ in length")
)

// Keyframe pairs a time in seconds with a value.
type Keyframe[V any] struct {
	Time  float64
	Value V
}

// Tween maps elapsed time to a value interpolated between sparse keyframes.
// A Tween is immutable once built and safe to sample from many particles.
type Tween[V any] struct {
	keys []Keyframe[V]
	lerp func(a, b V, t float64) V
	ease ease.TweenFunc
}

func newTween[V any](lerp func(a, b V, t float64) V, keys []Keyframe[V]) (*Tween[V], error) {
	if len(keys) == 0 {
		return nil, ErrEmptyTween
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Time <= keys[i-1].Time {
			return nil, ErrTweenOrder
		}
	}
	owned := make([]Keyframe[V], len(keys))
	copy(owned, keys)
	return &Tween[V]{keys: owned, lerp: lerp}, nil
}

// NewScalarTween builds a tween over float64 values.
func NewScalarTween(keys ...Keyframe[float64]) (*Tween[float64], error) {
	return newTween(lerp, keys)
}

// NewVec3Tween builds a tween over Vec3 values, interpolated per component.
func NewVec3Tween(keys ...Keyframe[Vec3]) (*Tween[Vec3], error) {
	return newTween(lerpVec3, keys)
}

// NewColorTween builds a tween over Color values, interpolated per channel.
func NewColorTween(keys ...Keyframe[Color]) (*Tween[Color], error) {
	return newTween(lerpColor, keys)
}

// Keys zips parallel time and value slices into keyframes.
func Keys[V any](times []float64, values []V) ([]Keyframe[V], error) {
	if len(times) != len(values) {
		return nil, ErrTweenLength
	}
	keys := make([]Keyframe[V], len(times))
	for i := range times {
		keys[i] = Keyframe[V]{Time: times[i], Value: values[i]}
	}
	return keys, nil
}

// MustScalarTween is like NewScalarTween but panics on error. Intended for
// package-level preset tables.
func MustScalarTween(keys ...Keyframe[float64]) *Tween[float64] {
	t, err := NewScalarTween(keys...)
	if err != nil {
		panic(err)
	}
	return t
}

// MustColorTween is like NewColorTween but panics on error.
func MustColorTween(keys ...Keyframe[Color]) *Tween[Color] {
	t, err := NewColorTween(keys...)
	if err != nil {
		panic(err)
	}
	return t
}

// Eased returns a copy of the tween that shapes the ratio inside each segment
// with fn (e.g. ease.OutQuad). A nil fn means linear.
func (tw *Tween[V]) Eased(fn ease.TweenFunc) *Tween[V] {
	if tw == nil {
		return nil
	}
	c := *tw
	c.ease = fn
	return &c
}

// Len returns the number of keyframes.
func (tw *Tween[V]) Len() int {
	if tw == nil {
		return 0
	}
	return len(tw.keys)
}

// Times returns a copy of the keyframe times.
func (tw *Tween[V]) Times() []float64 {
	if tw == nil {
		return nil
	}
	out := make([]float64, len(tw.keys))
	for i, k := range tw.keys {
		out[i] = k.Time
	}
	return out
}

// Values returns a copy of the keyframe values.
func (tw *Tween[V]) Values() []V {
	if tw == nil {
		return nil
	}
	out := make([]V, len(tw.keys))
	for i, k := range tw.keys {
		out[i] = k.Value
	}
	return out
}

// Sample returns the value at time t. Times before the first keyframe clamp
// to the first value and times after the last clamp to the last value.
// Sampling a nil Tween returns the zero value.
func (tw *Tween[V]) Sample(t float64) V {
	if tw == nil || len(tw.keys) == 0 {
		var zero V
		return zero
	}
	keys := tw.keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := len(keys) - 1
	if t >= keys[last].Time {
		return keys[last].Value
	}
	// Keyframe counts are small; a linear scan beats a binary search here.
	i := 0
	for i < last-1 && t >= keys[i+1].Time {
		i++
	}
	k0, k1 := keys[i], keys[i+1]
	span := k1.Time - k0.Time
	var ratio float64
	if tw.ease != nil {
		ratio = float64(tw.ease(float32(t-k0.Time), 0, 1, float32(span)))
	} else {
		ratio = (t - k0.Time) / span
	}
	return tw.lerp(k0.Value, k1.Value, ratio)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t), lerp(a.Z, b.Z, t)}
}

func lerpColor(a, b Color, t float64) Color {
	return Color{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t)}
}
