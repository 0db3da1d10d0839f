package polymesh

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

// Axis selects the vertical line nodes rotate around.
type Axis uint8

const (
	AxisMedian Axis = iota // median of the cycle's new target X values
	AxisCenter             // canvas center
	AxisLeft               // left canvas edge
	AxisRight              // right canvas edge
)

var axisNames = [...]string{
	AxisMedian: "median",
	AxisCenter: "center",
	AxisLeft:   "left",
	AxisRight:  "right",
}

// String returns the configuration name of the axis.
func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return axisNames[AxisMedian]
}

// ParseAxis maps a configuration name to an Axis. Unknown names select
// AxisMedian.
func ParseAxis(name string) Axis {
	for i, n := range axisNames {
		if strings.EqualFold(n, name) {
			return Axis(i)
		}
	}
	return AxisMedian
}

// SampleDepth draws a pseudo-depth in [0, 2*distance] from the polar angle of
// a point on a sphere, phi = acos(2u - 1).
func SampleDepth(rng *rand.Rand, distance float64) float64 {
	phi := math.Acos(2*rng.Float64() - 1)
	return distance + distance*math.Cos(phi)
}

// DepthAlpha scales a rotated depth against half the axis position and clamps
// the result to [minAlpha, 1]. Deeper points fade. A non-positive axis has no
// scale to measure against and yields 1.
func DepthAlpha(depth, axis, minAlpha float64) float64 {
	half := axis / 2
	if half <= 0 || !finite(half) || !finite(depth) {
		return 1
	}
	return clamp(1-depth/half, minAlpha, 1)
}

// Rotate turns the (offset-from-axis, depth) pair by angle radians.
func Rotate(offset, depth, angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return offset*c - depth*s, offset*s + depth*c
}

// rotator owns the state of a rotation window: the axis chosen when the
// window began and the frame counter the angle is derived from.
type rotator struct {
	active bool
	axis   float64
	angle  float64
	frame  int
	frames float64
	ease   easer
}

// begin opens a window of the given length in frames around axis.
func (r *rotator) begin(axis, frames float64, e easer) {
	r.active = true
	r.axis = axis
	r.angle = 0
	r.frame = 0
	r.frames = frames
	r.ease = e
}

// advance returns the angle for the current frame and moves the counter on.
// done reports that the window is exhausted: the angle is a full turn and the
// window closes.
func (r *rotator) advance() (angle float64, done bool) {
	f := float64(r.frame)
	r.frame++
	if f >= r.frames {
		r.angle = 2 * math.Pi
		r.active = false
		return r.angle, true
	}
	r.angle = r.ease.ease(f, 0, 2*math.Pi, r.frames)
	return r.angle, false
}

// reset closes any open window.
func (r *rotator) reset() {
	*r = rotator{}
}

// rotationAxis computes the axis position for a window that starts now.
func (m *Mesh) rotationAxis() float64 {
	switch ParseAxis(m.cfg.Rotation.Axis) {
	case AxisCenter:
		return m.cfg.Width / 2
	case AxisLeft:
		return 0
	case AxisRight:
		return m.cfg.Width
	}
	if len(m.nodes) == 0 {
		return m.cfg.Width / 2
	}
	xs := make([]float64, len(m.nodes))
	for i := range m.nodes {
		xs[i] = m.nodes[i].Target.X
	}
	slices.Sort(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 1 {
		return xs[mid]
	}
	return (xs[mid-1] + xs[mid]) / 2
}

// beginRotation opens a rotation window when the cycle count hits the
// configured cadence.
func (m *Mesh) beginRotation(cycle int) {
	rc := m.cfg.Rotation
	if !rc.Enabled || cycle%rc.EveryNCycles != 0 {
		return
	}
	axis := m.rotationAxis()
	m.rot.begin(axis, m.cfg.Duration*m.cfg.FPS, resolveEasing(rc.Easing))
	if m.debug {
		m.logf("cycle %d: rotation window start axis=%.1f frames=%.0f", cycle, axis, m.rot.frames)
	}
}

// applyRotation rotates every node's freshly interpolated X around the
// window axis and derives its depth alpha. A full turn leaves X untouched, so
// the closing frame only restores zAlpha to 1.
func (m *Mesh) applyRotation() {
	if !m.rot.active {
		return
	}
	angle, done := m.rot.advance()
	if done {
		for i := range m.nodes {
			m.nodes[i].ZAlpha = 1
		}
		return
	}
	axis := m.rot.axis
	minAlpha := m.cfg.Rotation.MinDepthAlpha
	for i := range m.nodes {
		n := &m.nodes[i]
		rx, rz := Rotate(n.Current.X-axis, n.OriginZ, angle)
		x := axis + rx
		if !m.cfg.AllowOverflow {
			x = clamp(x, 0, m.cfg.Width)
		}
		if finite(x) {
			n.Current.X = x
		}
		n.ZAlpha = DepthAlpha(rz, axis, minAlpha)
	}
}
