package hexfield

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string          `json:"action"`
	Label   string          `json:"label,omitempty"`
	X       float64         `json:"x,omitempty"`
	Y       float64         `json:"y,omitempty"`
	FromX   float64         `json:"fromX,omitempty"`
	FromY   float64         `json:"fromY,omitempty"`
	ToX     float64         `json:"toX,omitempty"`
	ToY     float64         `json:"toY,omitempty"`
	Frames  int             `json:"frames,omitempty"`
	Options *PartialOptions `json:"options,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// scriptTarget is what a TestRunner drives each frame. Game implements it.
type scriptTarget interface {
	InjectMove(x, y float64)
	InjectLeave()
	InjectSweep(fromX, fromY, toX, toY float64, frames int)
	PendingInjected() int
	Screenshot(label string)
	UpdateOptions(p PartialOptions)
}

// TestRunner sequences injected pointer events, option changes and
// screenshots across frames for automated visual testing. Attach to a Game
// via SetTestRunner.
//
// Supported actions:
//
//	{"action": "move", "x": 100, "y": 200}
//	{"action": "leave"}
//	{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 800, "toY": 600, "frames": 60}
//	{"action": "wait", "frames": 30}
//	{"action": "screenshot", "label": "hover"}
//	{"action": "options", "options": {"rows": 4, "animateJiggle": false}}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var knownActions = map[string]bool{
	"move": true, "leave": true, "sweep": true,
	"wait": true, "screenshot": true, "options": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "options" && st.Options == nil {
			return nil, fmt.Errorf("parse test script: step %d: options action without options", i)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g scriptTarget) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if g.PendingInjected() > 0 {
		return
	}
	// Count down wait frames.
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
		g.Screenshot(st.Label)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "leave":
		g.InjectLeave()
	case "sweep":
		g.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "options":
		g.UpdateOptions(*st.Options)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && g.PendingInjected() == 0 {
		r.done = true
	}
}
