package ember

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointSpriteShaderCompiles(t *testing.T) {
	if _, err := ebiten.NewShader([]byte(pointSpriteShaderSrc)); err != nil {
		t.Fatalf("NewShader: %v", err)
	}
}

func TestPointSpriteShaderTintsSpriteColor(t *testing.T) {
	// Colored sprites keep their own rgb, multiplied by the point tint.
	if !strings.Contains(pointSpriteShaderSrc, "t.rgb*color.rgb") {
		t.Error("fragment should multiply the sprite rgb by the tint")
	}
	if !strings.Contains(pointSpriteShaderSrc, "discard()") {
		t.Error("fragment should discard hidden points")
	}
}

func TestDiscPixels(t *testing.T) {
	const size = 8
	pix := discPixels(size)
	if len(pix) != 4*size*size {
		t.Fatalf("len = %d, want %d", len(pix), 4*size*size)
	}
	alpha := func(x, y int) byte { return pix[4*(y*size+x)+3] }

	if alpha(0, 0) != 0 {
		t.Errorf("corner alpha = %d, want 0", alpha(0, 0))
	}
	if center, edge := alpha(size/2, size/2), alpha(size/2, 0); center <= edge {
		t.Errorf("alpha should fall off: center %d, edge %d", center, edge)
	}
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != pix[i+3] || pix[i+1] != pix[i+3] || pix[i+2] != pix[i+3] {
			t.Fatalf("pixel %d is not premultiplied white: %v", i/4, pix[i:i+4])
		}
	}
}
