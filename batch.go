package ember

import "github.com/hajimehoshi/ebiten/v2"

// submitCommands draws every queued command with one DrawTrianglesShader32
// call each, in tree order.
func (s *Scene) submitCommands(target *ebiten.Image) int {
	calls := 0
	for i := range s.commands {
		if s.submitPoints(target, &s.commands[i]) {
			calls++
		}
	}
	return calls
}

// submitPoints builds one screen-aligned quad per sprite and draws them with
// the point-sprite shader.
func (s *Scene) submitPoints(target *ebiten.Image, cmd *pointCommand) bool {
	sprites := s.sprites[cmd.start:cmd.end]
	if len(sprites) == 0 {
		return false
	}

	b := cmd.texture.Bounds()
	su0, sv0 := float32(b.Min.X), float32(b.Min.Y)
	su1, sv1 := float32(b.Max.X), float32(b.Max.Y)
	psx := [4]float32{su0, su1, su0, su1}
	psy := [4]float32{sv0, sv0, sv1, sv1}
	qx := [4]float32{-1, 1, -1, 1}
	qy := [4]float32{-1, -1, 1, 1}

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]

	for i := range sprites {
		sp := &sprites[i]
		half := sp.size / 2
		base := uint32(len(s.batchVerts))
		for j := 0; j < 4; j++ {
			s.batchVerts = append(s.batchVerts, ebiten.Vertex{
				DstX:   sp.x + qx[j]*half,
				DstY:   sp.y + qy[j]*half,
				SrcX:   psx[j],
				SrcY:   psy[j],
				ColorR: sp.r,
				ColorG: sp.g,
				ColorB: sp.b,
				ColorA: sp.a,
			})
		}
		s.batchInds = append(s.batchInds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	var op ebiten.DrawTrianglesShaderOptions
	op.Blend = cmd.blend.EbitenBlend()
	op.Images[0] = cmd.texture
	target.DrawTrianglesShader32(s.batchVerts, s.batchInds, ensurePointSpriteShader(), &op)

	s.batchVerts = s.batchVerts[:0]
	s.batchInds = s.batchInds[:0]
	return true
}
