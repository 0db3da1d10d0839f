package polymesh

import (
	"math/rand/v2"
	"testing"
)

// recordedCall is one call made on a recordingSurface.
type recordedCall struct {
	kind   string
	points []Vec2
	fill   Fill
	width  float64
	radius float64
	glow   float64
	text   string
}

// recordingSurface captures draw calls and counts non-finite coordinates.
type recordingSurface struct {
	clears    int
	calls     []recordedCall
	nonFinite int
}

func (r *recordingSurface) check(points ...Vec2) {
	for _, p := range points {
		if !p.Finite() {
			r.nonFinite++
		}
	}
}

func (r *recordingSurface) Clear(Rect) { r.clears++ }

func (r *recordingSurface) StrokeLine(a, b Vec2, width float64, c Color) {
	r.check(a, b)
	r.calls = append(r.calls, recordedCall{kind: "line", points: []Vec2{a, b}, fill: Fill{Color: c}, width: width})
}

func (r *recordingSurface) FillPolygon(points []Vec2, fill Fill) {
	r.check(points...)
	if fill.UseGradient {
		r.check(fill.Gradient.From, fill.Gradient.To)
	}
	cp := append([]Vec2(nil), points...)
	r.calls = append(r.calls, recordedCall{kind: "polygon", points: cp, fill: fill})
}

func (r *recordingSurface) FillCircle(center Vec2, radius float64, c Color, glow float64) {
	r.check(center)
	r.calls = append(r.calls, recordedCall{kind: "circle", points: []Vec2{center}, fill: Fill{Color: c}, radius: radius, glow: glow})
}

func (r *recordingSurface) DrawText(at Vec2, text string, c Color) {
	r.check(at)
	r.calls = append(r.calls, recordedCall{kind: "text", points: []Vec2{at}, fill: Fill{Color: c}, text: text})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

// fixedFormation places nodes at the given points in order.
func fixedFormation(points []Vec2) FormationFunc {
	return func(i int, _ Config, _ *rand.Rand) Vec2 {
		return points[i]
	}
}

// newFixedMesh builds a seeded mesh whose nodes sit at points.
func newFixedMesh(t *testing.T, points []Vec2, mutate func(*Config)) *Mesh {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.NumberOfNodes = len(points)
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewMesh(cfg)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	m.Formation = fixedFormation(points)
	m.Refresh()
	return m
}

// squarePoints is a 100px square; with k=2 every node lands in the
// (0.7, 0.8) density band on an 800x600 canvas.
var squarePoints = []Vec2{{100, 100}, {200, 100}, {100, 200}, {200, 200}}

func approx(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
