package polymesh

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestSampleDepthRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		z := SampleDepth(rng, 100)
		if z < 0 || z > 200 {
			t.Fatalf("SampleDepth = %f, want within [0, 200]", z)
		}
	}
	if z := SampleDepth(rng, 0); z != 0 {
		t.Errorf("SampleDepth with zero distance = %f, want 0", z)
	}
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	for _, p := range [][2]float64{{120, 40}, {-75, 180}, {0, 0}, {300, 0}} {
		x, z := Rotate(p[0], p[1], 2*math.Pi)
		if !approx(x, p[0], 1e-9) || !approx(z, p[1], 1e-9) {
			t.Errorf("Rotate(%v, 2π) = (%f, %f)", p, x, z)
		}
	}
	x, z := Rotate(10, 0, math.Pi/2)
	if !approx(x, 0, 1e-9) || !approx(z, 10, 1e-9) {
		t.Errorf("Rotate(10, 0, π/2) = (%f, %f), want (0, 10)", x, z)
	}
}

func TestDepthAlpha(t *testing.T) {
	tests := []struct {
		depth, axis, min, want float64
	}{
		{0, 400, 0.2, 1},
		{100, 400, 0.2, 0.5},
		{190, 400, 0.2, 0.2},
		{-50, 400, 0.2, 1},
		{50, 0, 0.2, 1},
		{50, -10, 0.2, 1},
		{math.NaN(), 400, 0.2, 1},
	}
	for _, tt := range tests {
		if got := DepthAlpha(tt.depth, tt.axis, tt.min); !approx(got, tt.want, 1e-12) {
			t.Errorf("DepthAlpha(%v, %v, %v) = %f, want %f", tt.depth, tt.axis, tt.min, got, tt.want)
		}
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AxisMedian, AxisCenter, AxisLeft, AxisRight} {
		if got := ParseAxis(a.String()); got != a {
			t.Errorf("ParseAxis(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if got := ParseAxis("diagonal"); got != AxisMedian {
		t.Errorf("ParseAxis(unknown) = %v, want median", got)
	}
}

func newRotatingMesh(t *testing.T, mutate func(*Config)) *Mesh {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 21
	cfg.NumberOfNodes = 12
	cfg.FPS = 10
	cfg.Duration = 1
	cfg.Rotation.Enabled = true
	cfg.Rotation.Axis = "center"
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewMesh(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRotationWindowReturnsToBaseline(t *testing.T) {
	m := newRotatingMesh(t, nil)
	baseline := make([]float64, len(m.Nodes()))
	for i, n := range m.Nodes() {
		baseline[i] = n.ZAlpha
	}
	m.retarget(0)
	if !m.rot.active {
		t.Fatal("rotation window did not open on cycle 0")
	}

	m.interpolate(0, 1, false)
	for i, n := range m.Nodes() {
		if !approx(n.Current.X, n.Start.X, 1e-9) {
			t.Errorf("node %d moved at angle 0: %f vs %f", i, n.Current.X, n.Start.X)
		}
	}

	for f := 1; f <= 10; f++ {
		m.interpolate(float64(f)/10, 1, false)
	}
	if !approx(m.rot.angle, 2*math.Pi, 1e-12) {
		t.Errorf("angle at end of window = %f, want 2π", m.rot.angle)
	}
	if m.rot.active {
		t.Error("rotation window still open after a full turn")
	}
	for i, n := range m.Nodes() {
		if baseline[i] != 1 {
			t.Errorf("node %d zAlpha before rotation = %f, want 1", i, baseline[i])
		}
		if !approx(n.ZAlpha, baseline[i], 1e-9) {
			t.Errorf("node %d zAlpha = %f, want baseline %f", i, n.ZAlpha, baseline[i])
		}
		if !approx(n.Current.X, n.Target.X, 1e-9) {
			t.Errorf("node %d x = %f, want target %f", i, n.Current.X, n.Target.X)
		}
	}

	// The next cycle without a window leaves zAlpha alone.
	m.interpolate(0.5, 1, false)
	for i, n := range m.Nodes() {
		if n.ZAlpha != 1 {
			t.Errorf("node %d zAlpha = %f after the window, want 1", i, n.ZAlpha)
		}
	}
}

func TestRotationAxisModes(t *testing.T) {
	tests := []struct {
		axis string
		want float64
	}{
		{"center", 400},
		{"left", 0},
		{"right", 800},
	}
	for _, tt := range tests {
		m := newRotatingMesh(t, func(c *Config) { c.Rotation.Axis = tt.axis })
		m.retarget(0)
		if got := m.rot.axis; got != tt.want {
			t.Errorf("axis %s = %f, want %f", tt.axis, got, tt.want)
		}
	}

	m := newFixedMesh(t, []Vec2{{10, 0}, {50, 0}, {30, 0}, {90, 0}}, func(c *Config) {
		c.Rotation.Enabled = true
		c.Rotation.Axis = "median"
		c.NodeMovementDistance = 0
	})
	m.retarget(0)
	if m.rot.axis != 40 {
		t.Errorf("median axis = %f, want 40", m.rot.axis)
	}
}

func TestRotationCadence(t *testing.T) {
	m := newRotatingMesh(t, func(c *Config) { c.Rotation.EveryNCycles = 2 })
	m.retarget(1)
	if m.rot.active {
		t.Error("cycle 1 opened a window with EveryNCycles=2")
	}
	m.retarget(2)
	if !m.rot.active {
		t.Error("cycle 2 did not open a window with EveryNCycles=2")
	}

	off := newRotatingMesh(t, func(c *Config) { c.Rotation.Enabled = false })
	off.retarget(0)
	off.interpolate(0.5, 1, false)
	for i, n := range off.Nodes() {
		if n.ZAlpha != 1 {
			t.Errorf("node %d zAlpha = %f without rotation, want 1", i, n.ZAlpha)
		}
	}
}

func TestRotationClampsWithoutOverflow(t *testing.T) {
	m := newRotatingMesh(t, func(c *Config) {
		c.AllowOverflow = false
		c.Rotation.DepthDistance = 400
	})
	m.retarget(0)
	for f := 0; f <= 10; f++ {
		m.interpolate(float64(f)/10, 1, false)
		for i, n := range m.Nodes() {
			if n.Current.X < 0 || n.Current.X > 800 {
				t.Fatalf("frame %d node %d x = %f outside canvas", f, i, n.Current.X)
			}
			if n.ZAlpha < 0.2 || n.ZAlpha > 1 {
				t.Fatalf("frame %d node %d zAlpha = %f outside [0.2, 1]", f, i, n.ZAlpha)
			}
		}
	}
}
