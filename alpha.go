package polymesh

// AlphaLevels holds the configured base opacities that the density model
// scales per node.
type AlphaLevels struct {
	Dot  float64
	Line float64
	Fill float64
}

// Density returns 1 - cycle/diagonal, the fraction of the screen diagonal a
// neighbor cycle does not span. Tight clusters approach 1; sparse ones can go
// negative. The second result is false when the diagonal is zero or the
// inputs are not finite, in which case the node must be treated as fully
// transparent.
func Density(cycle, diagonal float64) (float64, bool) {
	if diagonal <= 0 || !finite(diagonal) || !finite(cycle) {
		return 0, false
	}
	return 1 - cycle/diagonal, true
}

// BandAlpha fans a density value out into dot, line and fill opacities.
//
// Above 0.85 lines and dots take the full configured alpha and the fill is
// density-scaled. Strictly between 0.7 and 0.8 lines and dots are full and
// the fill is halved. Strictly between 0.4 and 0.7 lines and dots stay
// density-scaled and the fill drops to a fifth. Everything else, including
// the exact boundary values, gets no fill. Results are clamped to [0, 1].
func BandAlpha(density float64, base AlphaLevels) (dot, line, fill float64) {
	line = density * base.Line
	dot = density * base.Dot

	switch {
	case density > 0.85:
		fill = density * base.Fill
		line = base.Line
		dot = base.Dot
	case density < 0.8 && density > 0.7:
		fill = 0.5 * density * base.Fill
		line = base.Line
		dot = base.Dot
	case density < 0.7 && density > 0.4:
		fill = 0.2 * density * base.Fill
	default:
		fill = 0
	}
	return clamp01(dot), clamp01(line), clamp01(fill)
}

// assignAlpha computes the static density opacities for every node from the
// neighbor layout at construction time.
func (m *Mesh) assignAlpha() {
	diagonal := m.bounds().Diagonal()
	base := AlphaLevels{Dot: m.cfg.NodeDotAlpha, Line: m.cfg.NodeLineAlpha, Fill: m.cfg.NodeFillAlpha}

	points := make([]Vec2, len(m.nodes))
	for i := range m.nodes {
		points[i] = m.nodes[i].Current
	}

	for i := range m.nodes {
		n := &m.nodes[i]
		density, ok := Density(neighborCycleLength(points, n.Closest), diagonal)
		if !ok {
			n.Density = 0
			n.DotAlpha, n.LineAlpha, n.FillAlpha = 0, 0, 0
			continue
		}
		n.Density = density
		n.DotAlpha, n.LineAlpha, n.FillAlpha = BandAlpha(density, base)
	}
}
