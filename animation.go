package ember

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 float64 fields on a Node simultaneously, e.g.
// sliding an emitter to a new offset or fading a whole subtree. Create one
// with TweenPosition or TweenAlpha and call Update(dt) each tick. If the
// target node is disposed, the group stops immediately.
//
// There is no global animation manager; callers run Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition moves node.Position to `to` over duration seconds.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.Position.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Position.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Position.Z), float32(to.Z), duration, fn)
	g.fields[0] = &node.Position.X
	g.fields[1] = &node.Position.Y
	g.fields[2] = &node.Position.Z
	return g
}

// TweenAlpha fades node.Alpha to `to` over duration seconds.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}
