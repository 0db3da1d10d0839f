package polymesh

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("polymesh: script has no steps")

// scriptStep represents a single action in a frame script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Ms     float64 `json:"ms,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a frame script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences clock advances, captures and scheduler control for
// deterministic offline rendering.
//
// Actions: "advance" (by frames, or by ms of wall time), "capture" (invokes
// the capture callback with the step label), "start", "stop" and "refresh".
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON frame script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "advance", "capture", "start", "stop", "refresh":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (sc *Script) Len() int {
	return len(sc.steps)
}

// CaptureFunc receives the label of a capture step.
type CaptureFunc func(label string) error

// Run executes the script against m using frames as the clock. The mesh is
// started on frames if it is not running. Advances move the clock one frame
// interval at a time so every interval produces a tick. Run stops at the
// first capture error.
func (sc *Script) Run(m *Mesh, frames *ManualFrames, capture CaptureFunc) error {
	if !m.sched.Running() {
		m.Start(frames)
	}
	interval := m.sched.FrameInterval()

	for i, st := range sc.steps {
		switch st.Action {
		case "advance":
			n := st.Frames
			if st.Ms > 0 {
				total := time.Duration(st.Ms * float64(time.Millisecond))
				n = int((total + interval - 1) / interval)
			}
			for f := 0; f < n; f++ {
				frames.Advance(interval)
			}
		case "capture":
			if capture == nil {
				continue
			}
			if err := capture(st.Label); err != nil {
				return fmt.Errorf("script step %d capture %q: %w", i, st.Label, err)
			}
		case "start":
			m.Start(frames)
		case "stop":
			m.Stop()
		case "refresh":
			m.Refresh()
		}
	}
	return nil
}
