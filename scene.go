package ember

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultSpriteCap = 4096

// Scene is the top-level object that owns the node tree, the camera, the
// particle systems driven each tick, and render buffers.
type Scene struct {
	root    *Node
	camera  *Camera
	systems []*System
	debug   bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor color.RGBA
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string
	// FocusFunc reports whether the host window is visible to the user.
	// Focus changes pause and resume every system. Defaults to
	// ebiten.IsFocused.
	FocusFunc func() bool

	focused    bool
	focusKnown bool

	reloads <-chan *SystemConfig
	script  *Script

	screenshotQueue []string

	// Render state
	sprites    []pointSprite
	sortBuf    []pointSprite
	commands   []pointCommand
	batchVerts []ebiten.Vertex
	batchInds  []uint32

	lastStats debugStats
}

// NewScene creates a scene with a root container and a default camera.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		camera:        NewCamera(Rect{Width: 800, Height: 600}),
		ClearColor:    color.RGBA{A: 255},
		ScreenshotDir: "screenshots",
		FocusFunc:     ebiten.IsFocused,
		sprites:       make([]pointSprite, 0, defaultSpriteCap),
		sortBuf:       make([]pointSprite, 0, defaultSpriteCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// AddSystem registers a system to be driven by Update. Its renderables should
// already be attached under Root.
func (s *Scene) AddSystem(sys *System) {
	s.systems = append(s.systems, sys)
	if s.focusKnown {
		sys.SetVisible(s.focused)
	}
}

// RemoveSystem stops driving sys. It does not dispose it.
func (s *Scene) RemoveSystem(sys *System) {
	for i, c := range s.systems {
		if c == sys {
			s.systems = append(s.systems[:i], s.systems[i+1:]...)
			return
		}
	}
}

// Systems returns the driven systems. The returned slice MUST NOT be mutated.
func (s *Scene) Systems() []*System {
	return s.systems
}

// SetReloadSource makes the scene apply every config received on ch at the
// start of the next Update. See WatchConfig.
func (s *Scene) SetReloadSource(ch <-chan *SystemConfig) {
	s.reloads = ch
}

// ApplyConfig replaces every driven system with one built from cfg. The new
// system inherits the scene's current visibility.
func (s *Scene) ApplyConfig(cfg *SystemConfig, opts ...SystemOption) error {
	sys, err := cfg.NewSystem(s.root, opts...)
	if err != nil {
		return err
	}
	for _, old := range s.systems {
		old.Dispose()
	}
	s.systems = s.systems[:0]
	s.AddSystem(sys)
	return nil
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree warnings are printed, and per-frame timing stats are
// logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Update polls host visibility, applies pending reloads, steps the script
// runner, and advances the camera and every system by one tick.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	s.step(dt)
}

func (s *Scene) step(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.FocusFunc != nil {
		s.setFocused(s.FocusFunc())
	}
	s.drainReloads()
	if s.script != nil {
		s.script.step(s)
	}

	s.camera.Update(float32(dt))
	for _, sys := range s.systems {
		sys.Update(dt)
	}

	if s.debug {
		s.lastStats.simulateTime = time.Since(t0)
	}
}

// setFocused forwards focus transitions to every system's visibility hook.
func (s *Scene) setFocused(focused bool) {
	if s.focusKnown && focused == s.focused {
		return
	}
	s.focusKnown = true
	s.focused = focused
	for _, sys := range s.systems {
		sys.SetVisible(focused)
	}
}

func (s *Scene) drainReloads() {
	if s.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-s.reloads:
			if !ok {
				s.reloads = nil
				return
			}
			if err := s.ApplyConfig(cfg); err != nil {
				log.Printf("ember: config reload rejected: %v", err)
			}
		default:
			return
		}
	}
}

// Draw projects every visible particle, sorts each emitter's sprites back to
// front, and submits one draw call per emitter.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor)
	}
	s.camera.computeBasis()

	stats := s.lastStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.prepare()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sortSprites()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.pointCount = countPoints(s.commands)
		t0 = time.Now()
	}

	calls := s.submitCommands(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = calls
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// prepare resets per-frame buffers and traverses the tree.
func (s *Scene) prepare() {
	s.sprites = s.sprites[:0]
	s.commands = s.commands[:0]
	s.traverse(s.root, Vec3{}, 1.0)
}

// Layout resizes the camera viewport to the outside size.
func (s *Scene) Layout(width, height int) {
	vp := &s.camera.Viewport
	if vp.Width != float64(width) || vp.Height != float64(height) {
		vp.Width = float64(width)
		vp.Height = float64(height)
		s.camera.MarkDirty()
	}
}
