package ember

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// StatsText formats FPS/TPS and a visible/pool count per emitter.
func (s *Scene) StatsText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	for _, sys := range s.systems {
		for _, e := range sys.Emitters() {
			state := "running"
			if e.Paused() {
				state = "paused"
			}
			fmt.Fprintf(&b, "%s: %d/%d %s\n", e.Name(), e.VisibleCount(), e.Len(), state)
		}
	}
	return b.String()
}

// DrawStats prints StatsText in the top-left corner of screen.
func (s *Scene) DrawStats(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.StatsText())
}
