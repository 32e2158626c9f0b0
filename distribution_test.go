package ember

import (
	"math"
	"testing"
)

func TestSphericalToCartesianAxes(t *testing.T) {
	assertVec3(t, "pole", sphericalToCartesian(1, 0, 1.3), Vec3{0, 1, 0})
	assertVec3(t, "south", sphericalToCartesian(2, math.Pi, 0), Vec3{0, -2, 0})
	assertVec3(t, "+Z", sphericalToCartesian(1, math.Pi/2, 0), Vec3{0, 0, 1})
	assertVec3(t, "+X", sphericalToCartesian(1, math.Pi/2, math.Pi/2), Vec3{1, 0, 0})
	assertVec3(t, "zero radius", sphericalToCartesian(0, 1, 2), Vec3{})
}

func TestDirectionSampleIsUnit(t *testing.T) {
	d := DirectionRange{Polar: FullPolar, Azimuth: FullAzimuth}
	rng := NewRand(3)
	for i := 0; i < 500; i++ {
		v := d.Sample(rng)
		l := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if math.Abs(l-1) > 1e-9 {
			t.Fatalf("direction %+v has length %v", v, l)
		}
	}
}

func TestDirectionSampleRespectsCone(t *testing.T) {
	cone := math.Pi / 8
	d := DirectionRange{Polar: Range{0, cone}, Azimuth: FullAzimuth}
	rng := NewRand(5)
	for i := 0; i < 500; i++ {
		v := d.Sample(rng)
		if v.Y < math.Cos(cone)-1e-9 {
			t.Fatalf("direction %+v outside %v rad cone", v, cone)
		}
	}
}

func TestShellSampleWithinRadius(t *testing.T) {
	s := Shell{
		Center:  Vec3{10, 20, 30},
		Radius:  Range{5, 8},
		Polar:   FullPolar,
		Azimuth: FullAzimuth,
	}
	rng := NewRand(9)
	for i := 0; i < 500; i++ {
		d := s.Sample(rng).Sub(s.Center)
		r := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
		if r < 5-1e-9 || r > 8+1e-9 {
			t.Fatalf("sample at distance %v outside [5, 8]", r)
		}
	}
}

func TestZeroShellIsCenter(t *testing.T) {
	s := Shell{Center: Vec3{1, 2, 3}}
	rng := &countingRand{v: 0.7}
	if got := s.Sample(rng); got != s.Center {
		t.Errorf("Sample = %+v, want center", got)
	}
	if rng.draws != 0 {
		t.Errorf("draws = %d, want 0 for a degenerate shell", rng.draws)
	}
}

func TestUpperHemisphereShell(t *testing.T) {
	s := Shell{Radius: Range{1, 1}, Polar: Range{0, math.Pi / 2}, Azimuth: FullAzimuth}
	rng := NewRand(13)
	for i := 0; i < 500; i++ {
		if p := s.Sample(rng); p.Y < -1e-9 {
			t.Fatalf("sample %+v below the equator", p)
		}
	}
}
