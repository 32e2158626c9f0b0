package ember

import (
	"sort"
	"testing"
)

// visibleScene returns a scene with one fired emitter holding n opaque,
// motionless particles at the origin, updated until all are visible.
func visibleScene(t *testing.T, n int) (*Scene, *Emitter) {
	t.Helper()
	s := NewScene()
	s.FocusFunc = nil
	cfg := straightUp()
	cfg.ParticlesPerSecond = n
	cfg.Speed = Range{}
	e := firedEmitter(cfg, NewRand(1))
	e.Update(1.5) // every delay counter passes its delay
	e.Update(0.5)
	s.Root().AddChild(e.Node())
	return s, e
}

func TestSingleEmitterEmitsOneCommand(t *testing.T) {
	s, e := visibleScene(t, 5)
	s.prepare()
	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if cmd.emitter != e || cmd.start != 0 || cmd.end != 5 {
		t.Errorf("command = %+v", cmd)
	}
	if cmd.texture == nil {
		t.Error("command should fall back to the disc texture")
	}
	if cmd.blend != BlendNormal {
		t.Errorf("blend = %v, want normal", cmd.blend)
	}
}

func TestInvisibleNodeNoCommands(t *testing.T) {
	s, e := visibleScene(t, 3)
	e.Node().Visible = false
	s.prepare()
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	s.Root().AddChild(group)
	e := revealed(straightUp())
	e.Update(0.1)
	group.AddChild(e.Node())

	group.Visible = false
	s.prepare()
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
	group.Visible = true
	s.prepare()
	if len(s.commands) != 1 {
		t.Errorf("commands = %d, want 1", len(s.commands))
	}
}

func TestZeroAlphaSkipped(t *testing.T) {
	s, e := visibleScene(t, 3)
	e.Node().Alpha = 0
	s.prepare()
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestHiddenParticlesNotEmitted(t *testing.T) {
	s := NewScene()
	e := NewEmitter("hidden", smallConfig(), NewRand(1))
	s.Root().AddChild(e.Node())
	s.prepare()
	if len(s.sprites) != 0 || len(s.commands) != 0 {
		t.Errorf("sprites/commands = %d/%d, want 0/0", len(s.sprites), len(s.commands))
	}
}

func TestContainerNoCommand(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewContainer("empty"))
	s.prepare()
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestWorldAlphaInSprites(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.Alpha = 0.5
	s.Root().AddChild(group)
	e := revealed(straightUp())
	e.Update(0.1)
	group.AddChild(e.Node())
	e.Node().Alpha = 0.5

	s.prepare()
	if len(s.sprites) != 1 {
		t.Fatalf("sprites = %d, want 1", len(s.sprites))
	}
	if !approxEqual(float64(s.sprites[0].a), 0.25, 1e-6) {
		t.Errorf("sprite alpha = %v, want 0.25", s.sprites[0].a)
	}
}

func TestSpriteSizeAttenuates(t *testing.T) {
	s, e := visibleScene(t, 1)
	s.prepare()
	near := s.sprites[0].size

	e.Node().Position = Vec3{-200, -200, -200}
	s.prepare()
	far := s.sprites[0].size
	if far >= near {
		t.Errorf("farther sprite size %v should be smaller than %v", far, near)
	}
}

func TestPrepareClearsDirtyFlags(t *testing.T) {
	s, e := visibleScene(t, 2)
	if !e.Buffers().NeedsUpdate(AttrPosition) {
		t.Fatal("buffers should be dirty after update")
	}
	s.prepare()
	if e.Buffers().NeedsUpdate(AttrPosition) {
		t.Error("traversal should consume dirty flags")
	}
}

func TestCommandPerEmitterInTreeOrder(t *testing.T) {
	s := NewScene()
	sys := DefaultSystem(s.Root(), WithRand(NewRand(1)))
	// The first update only counts down delays. After the second, particles
	// whose delay was under a second show with age 1, where every preset's
	// opacity is above zero.
	sys.Update(1)
	sys.Update(1)
	s.prepare()
	if len(s.commands) != 4 {
		t.Fatalf("commands = %d, want 4", len(s.commands))
	}
	for i, name := range sys.Names() {
		if s.commands[i].emitter.Name() != name {
			t.Errorf("command %d = %s, want %s", i, s.commands[i].emitter.Name(), name)
		}
		if i > 0 && s.commands[i].start != s.commands[i-1].end {
			t.Errorf("command %d range not contiguous", i)
		}
	}
	if s.commands[0].blend != BlendAdd || s.commands[2].blend != BlendNormal {
		t.Error("commands should carry each emitter's blend mode")
	}
}

// --- Sorting ---

func TestSortSpritesBackToFront(t *testing.T) {
	s := NewScene()
	cfg := DefaultEmitterConfig()
	cfg.ParticlesPerSecond = 200
	cfg.DeathAge = 1
	e := firedEmitter(cfg, NewRand(17))
	e.Update(0.6)
	e.Update(0.3)
	s.Root().AddChild(e.Node())

	s.prepare()
	if len(s.sprites) < 2 {
		t.Fatalf("sprites = %d, want several", len(s.sprites))
	}
	s.sortSprites()
	for _, cmd := range s.commands {
		for i := cmd.start + 1; i < cmd.end; i++ {
			if s.sprites[i-1].depth < s.sprites[i].depth {
				t.Fatalf("sprite %d (depth %v) before farther sprite (depth %v)", i-1, s.sprites[i-1].depth, s.sprites[i].depth)
			}
		}
	}
}

func TestMergeSortMatchesStdlib(t *testing.T) {
	rng := NewRand(23)
	for _, n := range []int{2, 3, 7, 64, 257} {
		a := make([]pointSprite, n)
		for i := range a {
			a[i] = pointSprite{depth: float32(rng.Float64() * 100), x: float32(i)}
		}
		want := make([]pointSprite, n)
		copy(want, a)
		sort.SliceStable(want, func(i, j int) bool { return want[i].depth > want[j].depth })

		mergeSortRange(a, make([]pointSprite, n))
		for i := range a {
			if a[i] != want[i] {
				t.Fatalf("n=%d: index %d = %+v, want %+v", n, i, a[i], want[i])
			}
		}
	}
}

func TestMergeSortStable(t *testing.T) {
	a := []pointSprite{
		{depth: 1, x: 0},
		{depth: 2, x: 1},
		{depth: 1, x: 2},
		{depth: 2, x: 3},
	}
	mergeSortRange(a, make([]pointSprite, len(a)))
	want := []float32{1, 3, 0, 2}
	for i, x := range want {
		if a[i].x != x {
			t.Fatalf("order = %v, want x order %v", a, want)
		}
	}
}

func TestMergeSortEmptyAndSingle(t *testing.T) {
	mergeSortRange(nil, nil)
	one := []pointSprite{{depth: 5}}
	mergeSortRange(one, make([]pointSprite, 1))
	if one[0].depth != 5 {
		t.Error("single element changed")
	}
}
