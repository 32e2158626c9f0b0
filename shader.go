package ember

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// pointSpriteShaderSrc draws one sprite quad per point. The vertex color
// carries the point's rgb tint and its opacity in alpha; fragments of hidden
// points are discarded. The sprite's own color is multiplied by the tint and
// clamped to the sprite alpha so the output stays premultiplied.
const pointSpriteShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	if color.a <= 0 {
		discard()
	}
	t := imageSrc0At(src)
	rgb := clamp(t.rgb*color.rgb, vec3(0), vec3(t.a))
	return vec4(rgb, t.a) * color.a
}
`

// Lazily created GPU resources. Ember renders on one goroutine.
var (
	pointSpriteShader *ebiten.Shader
	discImage         *ebiten.Image
)

func ensurePointSpriteShader() *ebiten.Shader {
	if pointSpriteShader == nil {
		s, err := ebiten.NewShader([]byte(pointSpriteShaderSrc))
		if err != nil {
			panic("ember: failed to compile point sprite shader: " + err.Error())
		}
		pointSpriteShader = s
	}
	return pointSpriteShader
}

const discSize = 64

// ensureDiscImage returns the default sprite: a white disc whose alpha falls
// off quadratically toward the edge.
func ensureDiscImage() *ebiten.Image {
	if discImage == nil {
		discImage = ebiten.NewImage(discSize, discSize)
		discImage.WritePixels(discPixels(discSize))
	}
	return discImage
}

// discPixels returns premultiplied RGBA pixels for a soft white disc.
func discPixels(size int) []byte {
	pix := make([]byte, 4*size*size)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - c) / c
			dy := (float64(y) + 0.5 - c) / c
			d := math.Sqrt(dx*dx + dy*dy)
			a := 0.0
			if d < 1 {
				a = (1 - d) * (1 - d)
			}
			v := byte(math.Round(a * 255))
			i := 4 * (y*size + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	return pix
}
