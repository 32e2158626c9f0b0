package ember

import "github.com/hajimehoshi/ebiten/v2"

// pointSprite is one projected, visible particle ready for submission.
type pointSprite struct {
	x, y    float32 // screen center
	depth   float32
	size    float32 // screen pixels
	r, g, b float32
	a       float32 // opacity after node alpha
}

// pointCommand is the draw request for one points node. Its sprites are the
// range [start, end) of Scene.sprites, sorted back to front.
type pointCommand struct {
	emitter    *Emitter
	texture    *ebiten.Image
	blend      BlendMode
	start, end int
}

// traverse walks the node tree depth-first and emits one command per visible
// points node with at least one drawable particle.
func (s *Scene) traverse(n *Node, parentPos Vec3, parentAlpha float64) {
	if !n.Visible {
		return
	}
	world := parentPos.Add(n.Position)
	alpha := parentAlpha * n.Alpha

	if n.Type == NodeTypePoints && n.emitter != nil && alpha > 0 {
		s.emitPoints(n.emitter, world, alpha)
	}

	for _, child := range n.children {
		s.traverse(child, world, alpha)
	}
}

// emitPoints projects every visible particle of e and queues a command.
func (s *Scene) emitPoints(e *Emitter, world Vec3, alpha float64) {
	buf := e.Buffers()
	cam := s.camera
	start := len(s.sprites)
	a32 := float32(alpha)

	for i := 0; i < buf.Len(); i++ {
		opacity := buf.Opacities[i] * a32
		if opacity <= 0 {
			continue
		}
		x, y, z := buf.Position(i)
		sx, sy, depth, ok := cam.Project(Vec3{
			X: world.X + float64(x),
			Y: world.Y + float64(y),
			Z: world.Z + float64(z),
		})
		if !ok {
			continue
		}
		size := buf.Sizes[i] * cam.PointScale(depth)
		if size <= 0 {
			continue
		}
		r, g, b := buf.Color(i)
		s.sprites = append(s.sprites, pointSprite{
			x: sx, y: sy, depth: depth, size: size,
			r: r, g: g, b: b, a: opacity,
		})
	}
	buf.ClearDirty()

	end := len(s.sprites)
	if end == start {
		return
	}
	tex := e.config.Texture
	if tex == nil {
		tex = ensureDiscImage()
	}
	s.commands = append(s.commands, pointCommand{
		emitter: e,
		texture: tex,
		blend:   e.config.BlendMode,
		start:   start,
		end:     end,
	})
}

// spriteBehind reports whether a should be drawn before b (farther or equal).
func spriteBehind(a, b pointSprite) bool {
	return a.depth >= b.depth
}

// sortSprites stably sorts each command's sprite range back to front using a
// bottom-up merge sort over a reused buffer (zero allocations after warmup).
func (s *Scene) sortSprites() {
	if cap(s.sortBuf) < len(s.sprites) {
		s.sortBuf = make([]pointSprite, len(s.sprites))
	}
	s.sortBuf = s.sortBuf[:len(s.sprites)]

	for _, cmd := range s.commands {
		mergeSortRange(s.sprites[cmd.start:cmd.end], s.sortBuf[cmd.start:cmd.end])
	}
}

func mergeSortRange(a, buf []pointSprite) {
	n := len(a)
	if n <= 1 {
		return
	}
	src, dst := a, buf
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
	}
	// After the final swap the sorted data lives in src.
	if &src[0] != &a[0] {
		copy(a, src)
	}
}

func mergeRun(src, dst []pointSprite, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if spriteBehind(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
