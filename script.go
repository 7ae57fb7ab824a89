package sapling

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Code   int     `json:"code,omitempty"`
	Kind   string  `json:"kind,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure of an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a sequence of input events and screenshots across frames,
// for demos and automated visual checks. Attach it with Engine.SetScript.
//
// Actions:
//
//	{"action": "key", "code": 13}               keydown then keyup
//	{"action": "key", "code": 65, "kind": "press"}  a single event of that kind
//	{"action": "tap", "x": 10, "y": 20}          pointer start then end
//	{"action": "move", "x": 10, "y": 20}         pointer move
//	{"action": "pause"}                          toggle pause
//	{"action": "wait", "frames": 30}             idle for n frames
//	{"action": "screenshot", "label": "title"}   capture the next frame
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses and validates a JSON input script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "key":
		if st.Code <= 0 {
			return fmt.Errorf("key needs a positive code")
		}
		switch st.Kind {
		case "", "down", "up", "press":
		default:
			return fmt.Errorf("unknown key kind %q", st.Kind)
		}
	case "tap", "move", "pause", "screenshot":
	case "wait":
		if st.Frames < 0 {
			return fmt.Errorf("wait needs a non-negative frame count")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool { return s.done }

// SetScript attaches a script. Its steps run at the start of each frame,
// before the pause check, so a script can resume a paused engine.
// Nil detaches.
func (e *Engine) SetScript(s *Script) { e.script = s }

// step advances the script by one frame.
func (s *Script) step(e *Engine) {
	if s.done {
		return
	}
	// Let queued events drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "key":
		switch st.Kind {
		case "down":
			e.InjectKey(st.Code, KeyDown)
		case "up":
			e.InjectKey(st.Code, KeyUp)
		case "press":
			e.InjectKey(st.Code, KeyPress)
		default:
			e.InjectKey(st.Code, KeyDown)
			e.InjectKey(st.Code, KeyUp)
		}
	case "tap":
		e.InjectTap(st.X, st.Y)
	case "move":
		e.InjectPointer(PointerMove, st.X, st.Y)
	case "pause":
		e.injectQueue = append(e.injectQueue, injectedEvent{kind: injectPause})
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(e.injectQueue) == 0 {
		s.done = true
	}
}
