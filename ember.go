package ember

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Vec3 is a 3D vector used for positions, offsets and directions. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Color is an RGB color with components in [0, 1]. Opacity is carried
// separately by the particle system.
type Color struct {
	R, G, B float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1}

// Rect is an axis-aligned screen rectangle with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Range is a general-purpose min/max range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a value in [Min, Max] drawn from rng.
func (r Range) Random(rng Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// ColorRange describes where fixed particle colors are drawn from. By default
// it is an RGB sector around Center: an offset of length up to Radius whose
// components are all non-negative, sampled the way a Shell is. Components may
// end up above 1; renderers clamp. When HSL is set it replaces the RGB sector.
type ColorRange struct {
	Center Color     `yaml:"center"`
	Radius float64   `yaml:"radius"`
	HSL    *HSLRange `yaml:"hsl"`
}

// colorSector is the positive octant the RGB offset is drawn from.
var colorSector = Range{0, math.Pi / 2}

// Random draws a color from the range.
func (c ColorRange) Random(rng Rand) Color {
	if c.HSL != nil {
		return c.HSL.Random(rng)
	}
	if c.Radius == 0 {
		return c.Center
	}
	off := Shell{Radius: Range{0, c.Radius}, Polar: colorSector, Azimuth: colorSector}.Sample(rng)
	return Color{R: c.Center.R + off.X, G: c.Center.G + off.Y, B: c.Center.B + off.Z}
}

// FixedColor returns a ColorRange that always yields c.
func FixedColor(c Color) ColorRange {
	return ColorRange{Center: c}
}

// HSLRange describes a region of HSL space. Hue is in [0, 1] (a full turn),
// Saturation and Lightness are in [0, 1].
type HSLRange struct {
	Hue        Range `yaml:"hue"`
	Saturation Range `yaml:"saturation"`
	Lightness  Range `yaml:"lightness"`
}

// Random draws a color uniformly from each HSL channel and converts to RGB.
func (c HSLRange) Random(rng Rand) Color {
	h := math.Mod(c.Hue.Random(rng)*360, 360)
	if h < 0 {
		h += 360
	}
	s := c.Saturation.Random(rng)
	l := c.Lightness.Random(rng)
	rgb := colorful.Hsl(h, s, l).Clamped()
	return Color{R: rgb.R, G: rgb.G, B: rgb.B}
}

// FixedHSL returns an HSLRange that always yields c.
func FixedHSL(c Color) HSLRange {
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return HSLRange{
		Hue:        Range{h / 360, h / 360},
		Saturation: Range{s, s},
		Lightness:  Range{l, l},
	}
}

// BlendMode selects a compositing operation for an emitter's sprites.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (only darkens)
	BlendScreen                    // screen (only brightens)
)

var blendModeNames = [...]string{
	BlendNormal:   "normal",
	BlendAdd:      "add",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
}

// String returns the lower-case name used in config files.
func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return "normal"
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypePoints                    // point cloud bound to an Emitter's buffers
)
