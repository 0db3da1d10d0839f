package polymesh

import (
	"errors"
	"testing"
)

func TestLoadScript(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "advance", "frames": 2},
		{"action": "capture", "label": "a"}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if sc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", sc.Len())
	}
}

func TestLoadScriptErrors(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": []}`)); !errors.Is(err, ErrEmptyScript) {
		t.Errorf("empty script err = %v, want ErrEmptyScript", err)
	}
	if _, err := LoadScript([]byte(`{"steps": [{"action": "teleport"}]}`)); err == nil {
		t.Error("unknown action accepted")
	}
	if _, err := LoadScript([]byte(`not json`)); err == nil {
		t.Error("invalid JSON accepted")
	}
}

func TestScriptRun(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "advance", "frames": 3},
		{"action": "capture", "label": "first"},
		{"action": "advance", "ms": 250},
		{"action": "capture", "label": "second"},
		{"action": "stop"},
		{"action": "advance", "frames": 5},
		{"action": "capture", "label": "stopped"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Seed = 8
	cfg.NumberOfNodes = 6
	m, err := NewMesh(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var ticks int
	m.Scheduler().OnFrame(func() { ticks++ })

	var labels []string
	var atCapture []int
	frames := NewManualFrames()
	err = sc.Run(m, frames, func(label string) error {
		labels = append(labels, label)
		atCapture = append(atCapture, ticks)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"first", "second", "stopped"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}
	// 250ms at 30 fps rounds up to 8 frames.
	if atCapture[0] != 3 || atCapture[1] != 11 || atCapture[2] != 11 {
		t.Errorf("ticks at captures = %v, want [3 11 11]", atCapture)
	}
	if m.Scheduler().Running() {
		t.Error("mesh still running after stop step")
	}
}

func TestScriptRunCaptureError(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [{"action": "capture", "label": "x"}, {"action": "advance", "frames": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMesh(scenarioConfig())
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk full")
	err = sc.Run(m, NewManualFrames(), func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Run err = %v, want wrapped capture error", err)
	}
}
