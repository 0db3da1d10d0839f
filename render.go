package polymesh

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// proximityFadeGain is the tuned visual constant of the proximity fade.
const proximityFadeGain = 1.8

// CommandType identifies the kind of draw command. The numeric order is the
// draw order: fills sit under lines, lines under dots, labels on top.
type CommandType uint8

const (
	CommandFill  CommandType = iota // filled connection triangle
	CommandLine                     // connection line
	CommandDot                      // node dot
	CommandLabel                    // target prediction annotation
)

// DrawCommand is a single draw instruction assembled by the renderer pass.
type DrawCommand struct {
	Type CommandType
	// Node is the index of the node that emitted the command.
	Node int
	// Points holds the segment (0, 1), triangle (0, 1, 2) or anchor (0).
	Points [3]Vec2
	Fill   Fill
	Width  float64
	Radius float64
	Glow   float64
	Text   string
}

// FrameStats summarizes one renderer pass.
type FrameStats struct {
	Commands  int
	Lines     int
	Fills     int
	Gradients int
	Dots      int
	Labels    int
	// Culled counts nodes with every alpha at zero.
	Culled int
	// Skipped counts primitives dropped for non-finite coordinates.
	Skipped  int
	Duration time.Duration
}

// Draw runs the renderer pass: it assembles draw commands from the current
// node state, clears the canvas and submits the commands to s in layer
// order.
func (m *Mesh) Draw(s Surface) FrameStats {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	m.assemble()
	slices.SortStableFunc(m.commands, func(a, b DrawCommand) int {
		return int(a.Type) - int(b.Type)
	})

	s.Clear(m.bounds())
	submitCommands(s, m.commands)

	m.stats.Commands = len(m.commands)
	if m.debug {
		m.stats.Duration = time.Since(t0)
		m.debugLog(m.stats)
	}
	return m.stats
}

// Commands returns the commands of the last Draw in submission order. The
// slice is reused by the next Draw.
func (m *Mesh) Commands() []DrawCommand {
	return m.commands
}

// assemble rebuilds m.commands and m.stats from the node state.
func (m *Mesh) assemble() {
	m.commands = m.commands[:0]
	m.stats = FrameStats{}
	cfg := m.cfg

	for i := range m.nodes {
		n := &m.nodes[i]
		if !n.visible() {
			m.stats.Culled++
			continue
		}
		za := n.ZAlpha * m.alpha

		for j, ci := range n.Closest {
			nb := &m.nodes[ci]
			m.emitLine(n, nb, za)
			if cfg.NodeFillSpace && n.FillAlpha > 0 && !n.Unconnected && !nb.Unconnected {
				next := &m.nodes[n.Closest[(j+1)%len(n.Closest)]]
				m.emitFill(n, nb, next, za)
			}
		}

		m.emitDot(n, za)
	}
}

// emitLine adds the connection line from n to nb when it is eligible: both
// ends connected, or the proximity rule applies. Proximity lines fade out
// toward the threshold.
func (m *Mesh) emitLine(n, nb *Node, za float64) {
	alpha := n.LineAlpha
	if alpha <= 0 {
		return
	}
	if n.Unconnected || nb.Unconnected {
		if !m.cfg.ConnectUnconnected || m.cfg.ProximityThreshold <= 0 {
			return
		}
		d := n.Current.Dist(nb.Current)
		if !finite(d) || d > m.cfg.ProximityThreshold {
			return
		}
		alpha *= math.Min(1, (1-d/m.cfg.ProximityThreshold)*proximityFadeGain)
	}
	alpha *= za
	if alpha <= 0 {
		return
	}
	if !n.Current.Finite() || !nb.Current.Finite() {
		m.stats.Skipped++
		return
	}
	m.commands = append(m.commands, DrawCommand{
		Type:   CommandLine,
		Node:   n.Index,
		Points: [3]Vec2{n.Current, nb.Current},
		Fill:   Fill{Color: n.Colors.Line.WithAlpha(alpha)},
		Width:  m.cfg.NodeLineWidth,
	})
	m.stats.Lines++
}

// emitFill adds the triangle n, nb, next. The gradient runs from n to nb and
// is only used when all four of its coordinates are finite.
func (m *Mesh) emitFill(n, nb, next *Node, za float64) {
	alpha := n.FillAlpha * za
	if alpha <= 0 {
		return
	}
	fill := Fill{Color: n.Colors.Fill.WithAlpha(alpha)}
	if n.Colors.HasGradient && n.Current.Finite() && nb.Current.Finite() {
		fill.UseGradient = true
		fill.Gradient = LinearGradient{
			From:      n.Current,
			To:        nb.Current,
			FromColor: n.Colors.GradientFrom.WithAlpha(alpha),
			ToColor:   n.Colors.GradientTo.WithAlpha(alpha),
		}
	}
	if !n.Current.Finite() || !nb.Current.Finite() || !next.Current.Finite() {
		m.stats.Skipped++
		return
	}
	m.commands = append(m.commands, DrawCommand{
		Type:   CommandFill,
		Node:   n.Index,
		Points: [3]Vec2{n.Current, nb.Current, next.Current},
		Fill:   fill,
	})
	m.stats.Fills++
	if fill.UseGradient {
		m.stats.Gradients++
	}
}

// emitDot adds the node dot and, when the node predicts this cycle, the
// annotation of its target coordinates.
func (m *Mesh) emitDot(n *Node, za float64) {
	alpha := n.DotAlpha * za
	if alpha <= 0 {
		return
	}
	if !n.Current.Finite() {
		m.stats.Skipped++
		return
	}
	var glow float64
	if m.cfg.NodeGlowing {
		glow = glowRadius
	}
	m.commands = append(m.commands, DrawCommand{
		Type:   CommandDot,
		Node:   n.Index,
		Points: [3]Vec2{n.Current},
		Fill:   Fill{Color: n.Colors.Dot.WithAlpha(alpha)},
		Radius: m.cfg.NodeDotSize,
		Glow:   glow,
	})
	m.stats.Dots++

	if !n.HasPrediction || !n.Target.Finite() {
		return
	}
	off := m.cfg.NodeDotSize + 2
	m.commands = append(m.commands, DrawCommand{
		Type:   CommandLabel,
		Node:   n.Index,
		Points: [3]Vec2{{X: n.Target.X + off, Y: n.Target.Y - off}},
		Fill:   Fill{Color: n.Colors.Dot.WithAlpha(alpha)},
		Text:   fmt.Sprintf("%.0f, %.0f", n.Target.X, n.Target.Y),
	})
	m.stats.Labels++
}

// submitCommands replays commands onto a surface.
func submitCommands(s Surface, commands []DrawCommand) {
	var tri [3]Vec2
	for i := range commands {
		cmd := &commands[i]
		switch cmd.Type {
		case CommandLine:
			s.StrokeLine(cmd.Points[0], cmd.Points[1], cmd.Width, cmd.Fill.Color)
		case CommandFill:
			tri = cmd.Points
			s.FillPolygon(tri[:], cmd.Fill)
		case CommandDot:
			s.FillCircle(cmd.Points[0], cmd.Radius, cmd.Fill.Color, cmd.Glow)
		case CommandLabel:
			s.DrawText(cmd.Points[0], cmd.Text, cmd.Fill.Color)
		}
	}
}
