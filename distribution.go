package ember

import "math"

// Shell describes where particles are born: a spherical shell sector around
// Center. Radius bounds the distance from Center; Polar (from +Y, radians)
// and Azimuth (around Y from +Z toward +X, radians) bound the angular sector. A zero
// Radius collapses the shell to the Center point.
type Shell struct {
	Center  Vec3  `yaml:"center"`
	Radius  Range `yaml:"radius"`
	Polar   Range `yaml:"polar"`
	Azimuth Range `yaml:"azimuth"`
}

// Angular ranges covering every direction.
var (
	FullPolar   = Range{0, math.Pi}
	FullAzimuth = Range{0, 2 * math.Pi}
)

// Sample draws a point from the shell.
func (s Shell) Sample(rng Rand) Vec3 {
	r := s.Radius.Random(rng)
	theta := s.Polar.Random(rng)
	phi := s.Azimuth.Random(rng)
	return s.Center.Add(sphericalToCartesian(r, theta, phi))
}

// DirectionRange bounds the initial travel direction of particles by polar
// and azimuthal angle, using the same convention as Shell.
type DirectionRange struct {
	Polar   Range `yaml:"polar"`
	Azimuth Range `yaml:"azimuth"`
}

// Sample draws the two angles independently and returns a unit vector.
func (d DirectionRange) Sample(rng Rand) Vec3 {
	theta := d.Polar.Random(rng)
	phi := d.Azimuth.Random(rng)
	return sphericalToCartesian(1, theta, phi)
}

// sphericalToCartesian converts radius r, polar angle theta (from +Y) and
// azimuth phi (around Y, from +Z toward +X) to a Cartesian offset.
func sphericalToCartesian(r, theta, phi float64) Vec3 {
	sinTheta := math.Sin(theta)
	return Vec3{
		X: r * sinTheta * math.Sin(phi),
		Y: r * math.Cos(theta),
		Z: r * sinTheta * math.Cos(phi),
	}
}
