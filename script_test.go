package ember

import (
	"strings"
	"testing"
)

func TestLoadScriptValid(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps":[{"action":"wait","frames":2},{"action":"screenshot","label":"x"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.steps) != 2 || s.steps[0].Frames != 2 || s.steps[1].Label != "x" {
		t.Errorf("steps = %+v", s.steps)
	}
	if s.Done() {
		t.Error("new script should not be done")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{steps`, "parse script"},
		{"empty", `{"steps":[]}`, "no steps"},
		{"unknown action", `{"steps":[{"action":"explode"}]}`, `unknown action "explode"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func scriptScene(t *testing.T, script string) (*Scene, *System, *Script) {
	t.Helper()
	s := NewScene()
	s.FocusFunc = nil
	sys := DefaultSystem(s.Root(), WithRand(NewRand(3)))
	s.AddSystem(sys)
	r, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)
	return s, sys, r
}

func TestScriptWaitAndPause(t *testing.T) {
	s, sys, r := scriptScene(t, `{"steps":[
		{"action":"wait","frames":3},
		{"action":"pause"}
	]}`)
	stars := sys.Emitter("stars")

	for i := 0; i < 3; i++ {
		s.step(0.1)
		if stars.Paused() {
			t.Fatalf("tick %d: paused during wait", i)
		}
	}
	s.step(0.1)
	if !stars.Paused() {
		t.Fatal("pause should run after the wait")
	}
	if !r.Done() {
		t.Error("script should be done after its last step")
	}
	assertNear(t, "clock", stars.Clock(), 0.3)
}

func TestScriptPlayAndFire(t *testing.T) {
	s, sys, _ := scriptScene(t, `{"steps":[
		{"action":"pause"},
		{"action":"play"},
		{"action":"pause"},
		{"action":"fire"}
	]}`)
	flame := sys.Emitter("flame")

	s.step(0.5) // pause
	assertNear(t, "after pause", flame.Clock(), 0)
	s.step(0.5) // play uses the nominal step
	assertNear(t, "after play", flame.Clock(), NominalStep)
	s.step(0.5) // pause
	s.step(0.5) // fire uses the real delta
	assertNear(t, "after fire", flame.Clock(), NominalStep+0.5)
}

func TestScriptHideShow(t *testing.T) {
	s, sys, _ := scriptScene(t, `{"steps":[{"action":"hide"},{"action":"show"}]}`)
	s.step(0.1)
	if sys.Visible() {
		t.Fatal("hide should drive the visibility hook")
	}
	s.step(0.1)
	if !sys.Visible() {
		t.Fatal("show should restore visibility")
	}
	assertNear(t, "clock", sys.Emitter("snow").Clock(), NominalStep)
}

func TestScriptQueuesScreenshots(t *testing.T) {
	s, _, r := scriptScene(t, `{"steps":[
		{"action":"screenshot","label":"first"},
		{"action":"screenshot"}
	]}`)
	s.step(0.1)
	s.step(0.1)
	if len(s.screenshotQueue) != 2 || s.screenshotQueue[0] != "first" || s.screenshotQueue[1] != "" {
		t.Errorf("queue = %q", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("script should be done")
	}
	s.step(0.1)
	if len(s.screenshotQueue) != 2 {
		t.Error("finished script should not queue more")
	}
}
