package polymesh

import (
	"math"
	"math/rand/v2"
	"time"
)

// maxTargetAttempts bounds the rejection sampling of in-canvas targets.
const maxTargetAttempts = 100

// glowRadius is the blur radius used for glowing dots.
const glowRadius = 10

// FormationFunc places node i of a mesh at setup time.
type FormationFunc func(i int, cfg Config, rng *rand.Rand) Vec2

// Mesh owns a set of nodes, their neighbor graph and the scheduler that
// animates them. A Mesh is not safe for concurrent use; all mutation happens
// inside scheduler ticks on the host's frame callback.
type Mesh struct {
	cfg   Config
	nodes []Node
	rng   *rand.Rand
	seed  uint64
	pal   palettes
	move  easer
	rot   rotator
	sched *Scheduler

	// alpha is the master opacity applied on top of every node alpha.
	alpha float64

	commands []DrawCommand
	stats    FrameStats
	debug    bool

	// Formation overrides Config.Formation when non-nil. Changing it takes
	// effect on the next Refresh.
	Formation FormationFunc
}

// NewMesh builds a mesh from cfg: nodes are placed, the neighbor graph and
// density alphas computed, and a stopped scheduler attached. Only malformed
// palette colors produce an error; other out-of-range options are clamped.
func NewMesh(cfg Config) (*Mesh, error) {
	cfg.normalize()
	pal, err := newPalettes(cfg.Colors)
	if err != nil {
		return nil, err
	}
	m := &Mesh{
		cfg:   cfg,
		pal:   pal,
		alpha: 1,
		debug: cfg.Debug,
	}
	m.reseed(cfg.Seed)
	m.sched = newScheduler(m)
	m.sched.configure(cfg)
	m.setup()
	return m, nil
}

func (m *Mesh) reseed(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m.seed = seed
	m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Config returns the mesh's current configuration after normalization.
func (m *Mesh) Config() Config {
	return m.cfg
}

// Seed returns the seed the mesh's randomness was started from.
func (m *Mesh) Seed() uint64 {
	return m.seed
}

// Nodes returns the node slice. Callers may read it between ticks but must
// not retain it across Refresh.
func (m *Mesh) Nodes() []Node {
	return m.nodes
}

// Scheduler returns the scheduler that animates this mesh.
func (m *Mesh) Scheduler() *Scheduler {
	return m.sched
}

// Alpha returns the master opacity.
func (m *Mesh) Alpha() float64 {
	return m.alpha
}

// SetAlpha sets the master opacity, clamped to [0, 1].
func (m *Mesh) SetAlpha(a float64) {
	m.alpha = clamp01(a)
}

// Start begins animating on the given frame source. A nil source leaves the
// host responsible for calling Scheduler().Tick.
func (m *Mesh) Start(src FrameSource) {
	m.sched.Start(src)
}

// Stop halts animation and resets scheduler timing.
func (m *Mesh) Stop() {
	m.sched.Stop()
}

// Refresh discards every node and rebuilds the mesh with fresh randomness.
// A running scheduler is stopped first and restarted on the same source
// afterwards, so two mutation passes never overlap. The rebuilt mesh starts
// over like a new one: cycle zero, entrance armed, fresh targets.
func (m *Mesh) Refresh() {
	running := m.sched.Running()
	src := m.sched.src
	m.sched.Stop()
	m.sched.rewind()
	m.setup()
	if running {
		m.sched.Start(src)
	}
}

// UpdateConfig replaces the configuration and performs a full Refresh.
// A different non-zero seed restarts the random sequence.
func (m *Mesh) UpdateConfig(cfg Config) error {
	cfg.normalize()
	pal, err := newPalettes(cfg.Colors)
	if err != nil {
		return err
	}
	reseed := cfg.Seed != 0 && cfg.Seed != m.seed
	m.cfg = cfg
	m.pal = pal
	m.debug = cfg.Debug
	if reseed {
		m.reseed(cfg.Seed)
	}
	m.sched.configure(cfg)
	m.Refresh()
	return nil
}

// bounds returns the canvas rectangle.
func (m *Mesh) bounds() Rect {
	return Rect{Width: m.cfg.Width, Height: m.cfg.Height}
}

// setup places nodes and derives everything that is static for the mesh's
// lifetime: neighbor lists, density alphas, colors and depth.
func (m *Mesh) setup() {
	cfg := m.cfg
	m.rot.reset()
	m.move = resolveEasing(cfg.Easing)
	m.nodes = make([]Node, cfg.NumberOfNodes)
	m.commands = m.commands[:0]

	positions := make([]Vec2, len(m.nodes))
	for i := range m.nodes {
		p := m.place(i)
		positions[i] = p
		m.nodes[i] = Node{
			Index:   i,
			Current: p,
			Origin:  p,
			Start:   p,
			Target:  p,
			OriginZ: SampleDepth(m.rng, cfg.Rotation.DepthDistance),
			ZAlpha:  1,
		}
	}

	if cfg.UnconnectedNodes > 0 {
		for _, idx := range m.rng.Perm(len(m.nodes))[:cfg.UnconnectedNodes] {
			m.nodes[idx].Unconnected = true
		}
	}

	for i, closest := range BuildNeighbors(positions, cfg.NodeRelations) {
		m.nodes[i].Closest = closest
	}
	m.assignAlpha()
	m.assignColors()

	if m.debug {
		m.logf("setup: %d nodes, %d relations, seed %d, easing %s", len(m.nodes), cfg.NodeRelations, m.seed, m.move.name())
	}
}

// place returns the setup position of node i.
func (m *Mesh) place(i int) Vec2 {
	if m.Formation != nil {
		return m.Formation(i, m.cfg, m.rng)
	}
	w, h := m.cfg.Width, m.cfg.Height
	if m.cfg.Formation == FormationEllipse {
		n := float64(m.cfg.NumberOfNodes)
		fi := float64(i)
		return Vec2{
			X: w - (w/2+(h/2)*math.Cos(fi*(2*math.Pi/n)))*m.rng.Float64(),
			Y: h - h*(fi/n),
		}
	}
	return Vec2{X: m.rng.Float64() * w, Y: m.rng.Float64() * h}
}

func (m *Mesh) assignColors() {
	for i := range m.nodes {
		n := &m.nodes[i]
		n.Colors.Dot = m.pal.dot.Pick(i, m.rng)
		n.Colors.Line = m.pal.line.Pick(i, m.rng)
		n.Colors.Fill = m.pal.fill.Pick(i, m.rng)
		n.Colors.GradientFrom, n.Colors.GradientTo, n.Colors.HasGradient = m.pal.gradient.PickPair(i, m.rng)
	}
}

// retarget starts a new motion cycle: every node picks a fresh target around
// its origin and its current position becomes the interpolation start.
func (m *Mesh) retarget(cycle int) {
	cfg := m.cfg
	for i := range m.nodes {
		n := &m.nodes[i]
		n.Start = n.Current
		n.Target = Vec2{
			X: m.sampleTarget(n.Origin.X, cfg.Width),
			Y: m.sampleTarget(n.Origin.Y, cfg.Height),
		}
		n.HasPrediction = cfg.PredictionChance > 0 && m.rng.Float64() < cfg.PredictionChance
	}
	if m.debug {
		m.logf("cycle %d: retarget", cycle)
	}
	m.beginRotation(cycle)
}

// sampleTarget draws origin ± random*distance with an unbiased sign. When
// overflow is disallowed candidates outside (0, extent) are rejected.
func (m *Mesh) sampleTarget(origin, extent float64) float64 {
	dist := m.cfg.NodeMovementDistance
	var v float64
	for attempt := 0; attempt < maxTargetAttempts; attempt++ {
		offset := m.rng.Float64()
		if m.rng.Float64() < 0.5 {
			offset = -offset
		}
		v = origin + offset*dist
		if m.cfg.AllowOverflow || (v > 0 && v < extent) {
			return v
		}
	}
	if extent <= 0 {
		return 0
	}
	return clamp(v, math.Nextafter(0, extent), math.Nextafter(extent, 0))
}

// interpolate moves every node toward its target for the given elapsed time
// of the move phase. Non-finite results leave the node where it was.
func (m *Mesh) interpolate(elapsed, duration float64, entrance bool) {
	e := m.move
	if entrance {
		e = easer{mode: EaseDescendingEntrance}
	}
	for i := range m.nodes {
		n := &m.nodes[i]
		if x := e.ease(elapsed, n.Start.X, n.Target.X, duration); finite(x) {
			n.Current.X = x
		}
		if y := e.ease(elapsed, n.Start.Y, n.Target.Y, duration); finite(y) {
			n.Current.Y = y
		}
	}
	m.applyRotation()
}
