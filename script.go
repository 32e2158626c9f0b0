package ember

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a replay script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays lifecycle actions and screenshots across frames, for
// automated visual checks of particle scenes. Actions:
//
//	wait        skip Frames ticks
//	screenshot  queue a capture named Label
//	pause/play/fire  forward to every system
//	hide/show   drive the visibility hook as a focus change would
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"wait": true, "screenshot": true,
	"pause": true, "play": true, "fire": true,
	"hide": true, "show": true,
}

// LoadScript parses a JSON replay script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script to the scene. It is stepped once per Update
// before systems advance.
func (s *Scene) SetScript(script *Script) {
	s.script = script
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// step runs at most one action per tick.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "pause":
		for _, sys := range s.systems {
			sys.Pause()
		}
	case "play":
		for _, sys := range s.systems {
			sys.Play()
		}
	case "fire":
		for _, sys := range s.systems {
			sys.Fire()
		}
	case "hide":
		for _, sys := range s.systems {
			sys.SetVisible(false)
		}
	case "show":
		for _, sys := range s.systems {
			sys.SetVisible(true)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
