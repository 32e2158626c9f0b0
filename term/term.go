// Package term renders ember particle systems to a terminal with tcell.
//
// Each cell is treated as two vertical pixels so the camera keeps roughly
// square proportions. Particles are drawn as glyphs whose density follows
// their opacity, nearest particle wins per cell.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/ember"
)

// Glyph ramp from faint to opaque.
var ramp = []rune{'.', ':', '*', 'o', '@'}

// Renderer draws a node tree to a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *ember.Camera

	// Background is the style used for empty cells.
	Background tcell.Style

	width, height int
	depth         []float32
}

// NewRenderer creates a renderer for screen with a camera sized to it.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{
		screen:     screen,
		camera:     ember.NewCamera(ember.Rect{}),
		Background: tcell.StyleDefault.Background(tcell.ColorBlack),
	}
	r.resize()
	return r
}

// Camera returns the renderer's camera.
func (r *Renderer) Camera() *ember.Camera {
	return r.camera
}

// Update advances the camera by dt seconds.
func (r *Renderer) Update(dt float64) {
	r.camera.Update(float32(dt))
}

// resize syncs the camera viewport and depth buffer with the screen size.
func (r *Renderer) resize() {
	w, h := r.screen.Size()
	if w == r.width && h == r.height && r.depth != nil {
		return
	}
	r.width, r.height = w, h
	r.depth = make([]float32, w*h)
	r.camera.Viewport = ember.Rect{Width: float64(w), Height: float64(h * 2)}
	r.camera.MarkDirty()
}

// Draw clears the screen, draws every visible points node under root and
// shows the result. It returns the number of cells written.
func (r *Renderer) Draw(root *ember.Node) int {
	r.resize()
	r.screen.SetStyle(r.Background)
	r.screen.Clear()
	for i := range r.depth {
		r.depth[i] = 0
	}
	n := r.drawNode(root, ember.Vec3{}, 1)
	r.screen.Show()
	return n
}

func (r *Renderer) drawNode(node *ember.Node, parent ember.Vec3, parentAlpha float64) int {
	if node == nil || !node.Visible {
		return 0
	}
	world := parent.Add(node.Position)
	alpha := parentAlpha * node.Alpha
	n := 0
	if e := node.Emitter(); e != nil && alpha > 0 {
		n += r.drawPoints(e.Buffers(), world, float32(alpha))
	}
	for _, child := range node.Children() {
		n += r.drawNode(child, world, alpha)
	}
	return n
}

func (r *Renderer) drawPoints(buf *ember.PointBuffers, world ember.Vec3, alpha float32) int {
	n := 0
	for i := 0; i < buf.Len(); i++ {
		opacity := buf.Opacities[i] * alpha
		if opacity <= 0 {
			continue
		}
		x, y, z := buf.Position(i)
		sx, sy, depth, ok := r.camera.Project(ember.Vec3{
			X: world.X + float64(x),
			Y: world.Y + float64(y),
			Z: world.Z + float64(z),
		})
		if !ok {
			continue
		}
		col, row := int(sx), int(sy/2)
		if col < 0 || row < 0 || col >= r.width || row >= r.height {
			continue
		}
		k := row*r.width + col
		if r.depth[k] != 0 && r.depth[k] <= depth {
			continue
		}
		if r.depth[k] == 0 {
			n++
		}
		r.depth[k] = depth
		cr, cg, cb := buf.Color(i)
		style := r.Background.Foreground(tcell.NewRGBColor(channel(cr), channel(cg), channel(cb)))
		r.screen.SetContent(col, row, glyph(opacity), nil, style)
	}
	buf.ClearDirty()
	return n
}

// glyph picks a ramp rune for an opacity in (0, 1].
func glyph(opacity float32) rune {
	i := int(opacity * float32(len(ramp)))
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	if i < 0 {
		i = 0
	}
	return ramp[i]
}

func channel(v float32) int32 {
	c := int32(v*255 + 0.5)
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return c
}
