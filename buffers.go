package ember

// Attribute identifies one of the per-point buffers.
type Attribute uint8

const (
	AttrPosition Attribute = iota
	AttrColor
	AttrOpacity
	AttrSize
	attrCount
)

// PointBuffers are the renderer-facing attribute arrays of an emitter. Slot i
// of every array belongs to particle i. Lengths are fixed for the emitter's
// lifetime.
type PointBuffers struct {
	Positions []float32 // xyz per point
	Colors    []float32 // rgb per point
	Opacities []float32
	Sizes     []float32

	dirty   [attrCount]bool
	version uint64
}

func newPointBuffers(n int) PointBuffers {
	return PointBuffers{
		Positions: make([]float32, 3*n),
		Colors:    make([]float32, 3*n),
		Opacities: make([]float32, n),
		Sizes:     make([]float32, n),
	}
}

// Len returns the number of points.
func (b *PointBuffers) Len() int {
	return len(b.Opacities)
}

// write copies particle p into slot i.
func (b *PointBuffers) write(i int, p *particle) {
	j := 3 * i
	b.Positions[j] = float32(p.position.X)
	b.Positions[j+1] = float32(p.position.Y)
	b.Positions[j+2] = float32(p.position.Z)
	b.Colors[j] = float32(p.color.R)
	b.Colors[j+1] = float32(p.color.G)
	b.Colors[j+2] = float32(p.color.B)
	b.Opacities[i] = float32(p.opacity)
	b.Sizes[i] = float32(p.size)
}

// markDirty flags every attribute for upload and bumps the version.
func (b *PointBuffers) markDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.version++
}

// NeedsUpdate reports whether attr changed since the last ClearDirty.
func (b *PointBuffers) NeedsUpdate(attr Attribute) bool {
	return b.dirty[attr]
}

// ClearDirty acknowledges all pending attribute changes. Called by renderers
// after they consume the buffers.
func (b *PointBuffers) ClearDirty() {
	b.dirty = [attrCount]bool{}
}

// Version increases once per update pass that wrote the buffers.
func (b *PointBuffers) Version() uint64 {
	return b.version
}

// Position returns the position stored in slot i.
func (b *PointBuffers) Position(i int) (x, y, z float32) {
	j := 3 * i
	return b.Positions[j], b.Positions[j+1], b.Positions[j+2]
}

// Color returns the color stored in slot i.
func (b *PointBuffers) Color(i int) (r, g, bl float32) {
	j := 3 * i
	return b.Colors[j], b.Colors[j+1], b.Colors[j+2]
}
