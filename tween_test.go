package ember

import (
	"errors"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenLinearSample(t *testing.T) {
	tw := MustScalarTween(Keyframe[float64]{0, 0}, Keyframe[float64]{10, 100})
	assertNear(t, "Sample(5)", tw.Sample(5), 50)
	assertNear(t, "Sample(2.5)", tw.Sample(2.5), 25)
	assertNear(t, "Sample(0)", tw.Sample(0), 0)
	assertNear(t, "Sample(10)", tw.Sample(10), 100)
}

func TestTweenClampsOutsideRange(t *testing.T) {
	tw := MustScalarTween(Keyframe[float64]{1, 3}, Keyframe[float64]{2, 7})
	assertNear(t, "before", tw.Sample(-100), 3)
	assertNear(t, "after", tw.Sample(100), 7)
}

func TestTweenMultipleSegments(t *testing.T) {
	tw := MustScalarTween(
		Keyframe[float64]{0, 0},
		Keyframe[float64]{1, 10},
		Keyframe[float64]{3, 30},
		Keyframe[float64]{4, 0},
	)
	assertNear(t, "seg0", tw.Sample(0.5), 5)
	assertNear(t, "on key", tw.Sample(1), 10)
	assertNear(t, "seg1", tw.Sample(2), 20)
	assertNear(t, "seg2", tw.Sample(3.5), 15)
}

func TestTweenSingleKeyIsConstant(t *testing.T) {
	tw := MustScalarTween(Keyframe[float64]{2, 42})
	for _, at := range []float64{-1, 2, 5} {
		assertNear(t, "Sample", tw.Sample(at), 42)
	}
	if tw.Len() != 1 {
		t.Errorf("Len = %d, want 1", tw.Len())
	}
}

func TestTweenErrors(t *testing.T) {
	if _, err := NewScalarTween(); !errors.Is(err, ErrEmptyTween) {
		t.Errorf("empty: err = %v, want ErrEmptyTween", err)
	}
	_, err := NewScalarTween(Keyframe[float64]{1, 0}, Keyframe[float64]{1, 1})
	if !errors.Is(err, ErrTweenOrder) {
		t.Errorf("equal times: err = %v, want ErrTweenOrder", err)
	}
	_, err = NewScalarTween(Keyframe[float64]{2, 0}, Keyframe[float64]{1, 1})
	if !errors.Is(err, ErrTweenOrder) {
		t.Errorf("decreasing times: err = %v, want ErrTweenOrder", err)
	}
	if _, err := Keys([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrTweenLength) {
		t.Errorf("Keys mismatch: err = %v, want ErrTweenLength", err)
	}
}

func TestMustScalarTweenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty tween")
		}
	}()
	MustScalarTween()
}

func TestTweenNilSamplesZero(t *testing.T) {
	var tw *Tween[float64]
	if tw.Sample(1) != 0 {
		t.Error("nil tween should sample zero")
	}
	if tw.Len() != 0 {
		t.Error("nil tween should have Len 0")
	}
	if tw.Eased(ease.InQuad) != nil {
		t.Error("Eased on nil should return nil")
	}
	if tw.Times() != nil || tw.Values() != nil {
		t.Error("nil tween should have no keyframes")
	}
}

func TestTweenTimesAndValuesAreCopies(t *testing.T) {
	tw := MustScalarTween(Keyframe[float64]{0, 1}, Keyframe[float64]{2, 0})
	times, values := tw.Times(), tw.Values()
	if len(times) != 2 || times[1] != 2 || values[0] != 1 {
		t.Fatalf("Times/Values = %v/%v", times, values)
	}
	times[1] = 9
	values[0] = 9
	assertNear(t, "Sample(0)", tw.Sample(0), 1)
	assertNear(t, "Sample(2)", tw.Sample(2), 0)
}

func TestTweenOwnsKeys(t *testing.T) {
	keys := []Keyframe[float64]{{0, 0}, {1, 10}}
	tw := MustScalarTween(keys...)
	keys[1].Value = 1000
	assertNear(t, "Sample(1)", tw.Sample(1), 10)
}

func TestTweenEased(t *testing.T) {
	linear := MustScalarTween(Keyframe[float64]{0, 0}, Keyframe[float64]{1, 1})
	eased := linear.Eased(ease.InQuad)

	if math.Abs(eased.Sample(0.5)-0.25) > 1e-6 {
		t.Errorf("InQuad Sample(0.5) = %v, want 0.25", eased.Sample(0.5))
	}
	// Endpoints are unaffected by easing.
	assertNear(t, "eased start", eased.Sample(0), 0)
	assertNear(t, "eased end", eased.Sample(1), 1)
	// The original stays linear.
	assertNear(t, "linear", linear.Sample(0.5), 0.5)
}

func TestTweenEasedPerSegment(t *testing.T) {
	tw := MustScalarTween(
		Keyframe[float64]{0, 0},
		Keyframe[float64]{2, 10},
		Keyframe[float64]{4, 20},
	).Eased(ease.InQuad)
	// Halfway through the second segment: 10 + 10 * 0.25.
	if math.Abs(tw.Sample(3)-12.5) > 1e-5 {
		t.Errorf("Sample(3) = %v, want 12.5", tw.Sample(3))
	}
}

func TestColorTween(t *testing.T) {
	tw := MustColorTween(
		Keyframe[Color]{0, Color{1, 0, 0}},
		Keyframe[Color]{2, Color{0, 0, 1}},
	)
	c := tw.Sample(1)
	assertNear(t, "R", c.R, 0.5)
	assertNear(t, "G", c.G, 0)
	assertNear(t, "B", c.B, 0.5)
}

func TestVec3Tween(t *testing.T) {
	tw, err := NewVec3Tween(
		Keyframe[Vec3]{0, Vec3{0, 0, 0}},
		Keyframe[Vec3]{4, Vec3{4, -8, 12}},
	)
	if err != nil {
		t.Fatal(err)
	}
	assertVec3(t, "Sample(1)", tw.Sample(1), Vec3{1, -2, 3})
}

func TestKeysZips(t *testing.T) {
	keys, err := Keys([]float64{0, 1, 2}, []float64{5, 6, 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 || keys[2].Time != 2 || keys[2].Value != 7 {
		t.Errorf("Keys = %+v", keys)
	}
}
