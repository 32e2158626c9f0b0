package ember

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// orbitAnim holds active tweens moving the camera eye.
type orbitAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

type vec3f [3]float32

func toVec3f(v Vec3) vec3f {
	return vec3f{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (a vec3f) sub(b vec3f) vec3f { return vec3f{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec3f) dot(b vec3f) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
func (a vec3f) cross(b vec3f) vec3f {
	return vec3f{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
func (a vec3f) normalize() vec3f {
	l := math32.Sqrt(a.dot(a))
	if l == 0 {
		return a
	}
	return vec3f{a[0] / l, a[1] / l, a[2] / l}
}

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	// Position is the eye in world space.
	Position Vec3
	// Target is the point the camera looks at.
	Target Vec3
	// Up is the world up direction, normally +Y.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the visible depth range.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// AutoRotate spins the eye around Target about the Y axis, in radians
	// per second. Zero disables it.
	AutoRotate float64

	eye, right, up, forward vec3f
	tanHalfFOV              float32
	dirty                   bool

	orbit *orbitAnim
}

// NewCamera creates a camera at (400, 400, 400) looking at the origin with a
// 45° field of view, rendering into viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Position: Vec3{400, 400, 400},
		Up:       Vec3{0, 1, 0},
		FOV:      45,
		Near:     0.1,
		Far:      10000,
		Viewport: viewport,
		dirty:    true,
	}
}

// MarkDirty forces the view basis to be recomputed. Call after changing
// Position, Target, Up or FOV directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// OrbitTo animates the eye to pos over duration seconds.
func (c *Camera) OrbitTo(pos Vec3, duration float32, easeFn ease.TweenFunc) {
	c.orbit = &orbitAnim{tweens: [3]*gween.Tween{
		gween.New(float32(c.Position.X), float32(pos.X), duration, easeFn),
		gween.New(float32(c.Position.Y), float32(pos.Y), duration, easeFn),
		gween.New(float32(c.Position.Z), float32(pos.Z), duration, easeFn),
	}}
}

// Orbiting reports whether an OrbitTo animation is in progress.
func (c *Camera) Orbiting() bool {
	return c.orbit != nil
}

// Update advances orbit animation and auto rotation by dt seconds. Scene
// calls it once per tick.
func (c *Camera) Update(dt float32) {
	if c.orbit != nil {
		o := c.orbit
		var vals [3]float32
		for i, tw := range o.tweens {
			if o.done[i] {
				vals[i], _ = tw.Update(0)
				continue
			}
			vals[i], o.done[i] = tw.Update(dt)
		}
		c.Position = Vec3{float64(vals[0]), float64(vals[1]), float64(vals[2])}
		if o.done[0] && o.done[1] && o.done[2] {
			c.orbit = nil
		}
		c.dirty = true
	}
	if c.AutoRotate != 0 {
		angle := c.AutoRotate * float64(dt)
		sin, cos := math.Sincos(angle)
		off := c.Position.Sub(c.Target)
		off = Vec3{
			X: off.X*cos + off.Z*sin,
			Y: off.Y,
			Z: -off.X*sin + off.Z*cos,
		}
		c.Position = c.Target.Add(off)
		c.dirty = true
	}
}

// computeBasis rebuilds the cached view basis if needed.
func (c *Camera) computeBasis() {
	if !c.dirty {
		return
	}
	c.eye = toVec3f(c.Position)
	c.forward = toVec3f(c.Target).sub(c.eye).normalize()
	c.right = c.forward.cross(toVec3f(c.Up)).normalize()
	c.up = c.right.cross(c.forward)
	c.tanHalfFOV = math32.Tan(float32(c.FOV) * math32.Pi / 360)
	c.dirty = false
}

// Project maps a world point to screen coordinates. depth is the distance
// along the view direction; ok is false when the point lies outside the
// near/far range.
func (c *Camera) Project(p Vec3) (sx, sy, depth float32, ok bool) {
	c.computeBasis()
	d := toVec3f(p).sub(c.eye)
	z := d.dot(c.forward)
	if z < float32(c.Near) || z > float32(c.Far) {
		return 0, 0, z, false
	}
	x := d.dot(c.right)
	y := d.dot(c.up)

	vw := float32(c.Viewport.Width)
	vh := float32(c.Viewport.Height)
	aspect := float32(1)
	if vh > 0 {
		aspect = vw / vh
	}
	ndcX := x / (z * c.tanHalfFOV * aspect)
	ndcY := y / (z * c.tanHalfFOV)
	sx = float32(c.Viewport.X) + (ndcX+1)*vw/2
	sy = float32(c.Viewport.Y) + (1-ndcY)*vh/2
	return sx, sy, z, true
}

// PointScale returns the pixel size of a one-unit point at depth, matching
// size attenuation of point sprites (half the viewport height over depth).
func (c *Camera) PointScale(depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return float32(c.Viewport.Height) / 2 / depth
}

// Distance returns the eye's distance from Target.
func (c *Camera) Distance() float64 {
	d := c.Position.Sub(c.Target)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
