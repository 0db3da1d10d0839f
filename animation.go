package polymesh

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a mesh's master alpha. Create one with Mesh.FadeTo and call
// Update(dt) each frame; it writes the alpha until the tween finishes.
//
// There is no global animation manager; users call Update themselves.
type Fade struct {
	tween *gween.Tween
	mesh  *Mesh
	Done  bool
}

// FadeTo creates a Fade from the current master alpha to the target value
// over duration seconds using the easing function. A nil fn eases linearly.
func (m *Mesh) FadeTo(to float64, duration float32, fn ease.TweenFunc) *Fade {
	if fn == nil {
		fn = ease.Linear
	}
	return &Fade{
		tween: gween.New(float32(m.alpha), float32(clamp01(to)), duration, fn),
		mesh:  m,
	}
}

// Update advances the fade by dt seconds and applies the value.
func (f *Fade) Update(dt float32) {
	if f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.mesh.SetAlpha(float64(val))
	f.Done = finished
}
