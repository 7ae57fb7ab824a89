package sapling

import (
	"strings"
	"testing"
)

// screenshotHost is a fakeHost that records screenshot requests.
type screenshotHost struct {
	*fakeHost
	labels []string
}

func (h *screenshotHost) Screenshot(label string) {
	h.labels = append(h.labels, label)
}

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "tap", "x": 100, "y": 200},
			{"action": "key", "code": 65, "kind": "press"},
			{"action": "wait", "frames": 3},
			{"action": "pause"}
		]
	}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(s.steps))
	}
	if st := s.steps[1]; st.Action != "tap" || st.X != 100 || st.Y != 200 {
		t.Errorf("step 1 = %+v", st)
	}
	if st := s.steps[2]; st.Code != 65 || st.Kind != "press" {
		t.Errorf("step 2 = %+v", st)
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
		{"invalid json", `not json`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, "unknown action"},
		{"key without code", `{"steps": [{"action": "key"}]}`, "positive code"},
		{"bad key kind", `{"steps": [{"action": "key", "code": 13, "kind": "hold"}]}`, "unknown key kind"},
		{"negative wait", `{"steps": [{"action": "wait", "frames": -1}]}`, "non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptKeyDeliversOneEventPerFrame(t *testing.T) {
	e, h := newTestEngine(Config{})
	s, err := LoadScript([]byte(`{"steps": [{"action": "key", "code": 13}]}`))
	if err != nil {
		t.Fatal(err)
	}
	var events []string
	e.OnKeyDown(KeyEnter, func(*Engine) { events = append(events, "down") })
	e.OnKeyUp(KeyEnter, func(*Engine) { events = append(events, "up") })
	e.SetScript(s)
	e.Start()

	h.runFrame(16)
	if len(events) != 1 || events[0] != "down" {
		t.Fatalf("after frame 1: events = %v, want [down]", events)
	}
	if s.Done() {
		t.Error("script should wait for queued events")
	}
	h.runFrame(16)
	if len(events) != 2 || events[1] != "up" {
		t.Fatalf("after frame 2: events = %v, want [down up]", events)
	}
	h.runFrame(16)
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScriptTapTriggersInstance(t *testing.T) {
	e, h := newTestEngine(Config{})
	inst := reactiveInstance("btn")
	inst.Width, inst.Height = 50, 50
	e.AddInstance(inst, "")
	hits := 0
	e.PointerStart = func(e *Engine, ev PointerEvent) {
		hits += e.TriggerReaction(ev.X, ev.Y)
	}
	var ends int
	e.PointerEnd = func(*Engine, PointerEvent) { ends++ }

	s, err := LoadScript([]byte(`{"steps": [{"action": "tap", "x": 10, "y": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetScript(s)
	e.Start()
	for i := 0; i < 3; i++ {
		h.runFrame(16)
	}
	if hits != 1 || ends != 1 {
		t.Errorf("hits=%d ends=%d, want 1 and 1", hits, ends)
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScriptResumesPausedEngine(t *testing.T) {
	e, h := newTestEngine(Config{})
	frames := 0
	e.StartFrame = func(*Engine, float64) { frames++ }
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "pause"},
		{"action": "wait", "frames": 3},
		{"action": "pause"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetScript(s)
	e.Start()

	h.runFrame(16)
	if !e.Paused() || frames != 0 {
		t.Fatalf("paused=%v frames=%d, want paused with no frames", e.Paused(), frames)
	}
	for i := 0; i < 3; i++ {
		h.runFrame(100)
	}
	if !e.Paused() {
		t.Fatal("engine resumed before the wait finished")
	}
	h.runFrame(100)
	if e.Paused() {
		t.Fatal("script should have resumed the engine")
	}
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
	if e.Now() != 16 {
		t.Errorf("Now = %v, want 16", e.Now())
	}
	h.runFrame(16)
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScriptScreenshot(t *testing.T) {
	h := &screenshotHost{fakeHost: newFakeHost()}
	e, err := New(Config{}, h)
	if err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "title"},
		{"action": "wait", "frames": 2},
		{"action": "screenshot", "label": "later"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetScript(s)
	e.Start()
	for i := 0; i < 5 && !s.Done(); i++ {
		h.runFrame(16)
	}
	if len(h.labels) != 2 || h.labels[0] != "title" || h.labels[1] != "later" {
		t.Errorf("labels = %v, want [title later]", h.labels)
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScreenshotWithoutSupportIsIgnored(t *testing.T) {
	e, _ := newTestEngine(Config{})
	e.Screenshot("nothing") // should not panic
}
