package polymesh

// Surface is the rasterizer a mesh draws onto. Coordinates are pixels with
// the origin at the top-left. Implementations never receive non-finite
// coordinates from a Mesh.
type Surface interface {
	// Clear erases the region to transparent (or the surface background).
	Clear(r Rect)
	// StrokeLine draws a segment from a to b.
	StrokeLine(a, b Vec2, width float64, c Color)
	// FillPolygon fills a closed polygon.
	FillPolygon(points []Vec2, fill Fill)
	// FillCircle fills a circle. A positive glow adds a soft halo of that
	// radius in the same color.
	FillCircle(center Vec2, radius float64, c Color, glow float64)
	// DrawText draws a short annotation with its baseline-left at the point.
	DrawText(at Vec2, text string, c Color)
}

// Fill is a flat color or a two-stop linear gradient.
type Fill struct {
	Color       Color
	Gradient    LinearGradient
	UseGradient bool
}

// LinearGradient runs from FromColor at From to ToColor at To.
type LinearGradient struct {
	From, To           Vec2
	FromColor, ToColor Color
}

// At returns the gradient color at point p, projected onto the gradient
// axis and clamped to the end stops.
func (g LinearGradient) At(p Vec2) Color {
	dx := g.To.X - g.From.X
	dy := g.To.Y - g.From.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 || !finite(l2) {
		return g.FromColor
	}
	t := ((p.X-g.From.X)*dx + (p.Y-g.From.Y)*dy) / l2
	return Blend(g.FromColor, g.ToColor, t)
}

// GlowRing is one halo circle drawn behind a glowing dot.
type GlowRing struct {
	Radius float64
	Alpha  float64
}

// GlowRings approximates a blur of the given radius around a dot with three
// concentric circles, outermost and faintest first. Surfaces without a blur
// primitive draw these under the dot. A non-positive glow yields nil.
func GlowRings(radius, glow float64) []GlowRing {
	if glow <= 0 || !finite(glow) {
		return nil
	}
	rings := make([]GlowRing, 0, 3)
	for i := 3; i > 0; i-- {
		rings = append(rings, GlowRing{
			Radius: radius + glow*float64(i)/3,
			Alpha:  0.08 * float64(4-i),
		})
	}
	return rings
}
