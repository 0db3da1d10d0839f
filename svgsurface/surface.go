// Package svgsurface writes polymesh frames as SVG documents with svgo.
//
// Coordinates are rounded to whole pixels. Gradients become linearGradient
// definitions in the polygon's bounding box and glowing dots use a Gaussian
// blur filter.
package svgsurface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/phanxgames/polymesh"
)

// Surface implements polymesh.Surface as a single SVG document.
type Surface struct {
	canvas *svg.SVG
	width  int
	height int

	// Background paints cleared regions. Nil leaves them transparent.
	Background color.Color

	gradients int
	filters   map[int]string
	closed    bool
}

// New starts a width x height SVG document on w. Close must be called to
// finish it.
func New(w io.Writer, width, height int) *Surface {
	s := &Surface{
		canvas:  svg.New(w),
		width:   max(1, width),
		height:  max(1, height),
		filters: make(map[int]string),
	}
	s.canvas.Start(s.width, s.height)
	return s
}

// Close ends the document. Further draws are ignored.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.canvas.End()
	s.closed = true
}

// Clear implements polymesh.Surface. An SVG stream cannot erase, so only a
// non-nil Background produces output.
func (s *Surface) Clear(r polymesh.Rect) {
	if s.closed || s.Background == nil {
		return
	}
	s.canvas.Rect(px(r.X), px(r.Y), px(r.Width), px(r.Height), fillStyle(s.Background))
}

// StrokeLine implements polymesh.Surface.
func (s *Surface) StrokeLine(a, b polymesh.Vec2, width float64, c polymesh.Color) {
	if s.closed {
		return
	}
	s.canvas.Line(px(a.X), px(a.Y), px(b.X), px(b.Y),
		fmt.Sprintf("%s;stroke-width:%s", strokeStyle(c), num(width)))
}

// FillPolygon implements polymesh.Surface.
func (s *Surface) FillPolygon(points []polymesh.Vec2, fill polymesh.Fill) {
	if s.closed || len(points) < 3 {
		return
	}
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	if !fill.UseGradient {
		s.canvas.Polygon(xs, ys, fillStyle(fill.Color))
		return
	}
	id := s.defineGradient(points, fill.Gradient)
	s.canvas.Polygon(xs, ys, fmt.Sprintf("fill:url(#%s)", id))
}

// defineGradient emits a linearGradient whose end points are expressed as
// percentages of the polygon's bounding box and returns its id.
func (s *Surface) defineGradient(points []polymesh.Vec2, g polymesh.LinearGradient) string {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	id := fmt.Sprintf("grad%d", s.gradients)
	s.gradients++

	s.canvas.Def()
	s.canvas.LinearGradient(id,
		percent(g.From.X, minX, maxX), percent(g.From.Y, minY, maxY),
		percent(g.To.X, minX, maxX), percent(g.To.Y, minY, maxY),
		[]svg.Offcolor{
			{Offset: 0, Color: rgb(g.FromColor), Opacity: g.FromColor.A},
			{Offset: 100, Color: rgb(g.ToColor), Opacity: g.ToColor.A},
		})
	s.canvas.DefEnd()
	return id
}

// FillCircle implements polymesh.Surface. A positive glow draws a blurred
// halo behind the dot.
func (s *Surface) FillCircle(center polymesh.Vec2, radius float64, c polymesh.Color, glow float64) {
	if s.closed {
		return
	}
	x, y := px(center.X), px(center.Y)
	if glow > 0 && !math.IsInf(glow, 0) {
		id := s.glowFilter(glow)
		s.canvas.Circle(x, y, px(radius+glow/2),
			fmt.Sprintf("%s;filter:url(#%s)", fillStyle(c.WithAlpha(0.6)), id))
	}
	if radius <= 0 {
		return
	}
	s.canvas.Circle(x, y, max(1, px(radius)), fillStyle(c))
}

// glowFilter returns the id of a blur filter for the glow radius, defining
// it on first use.
func (s *Surface) glowFilter(glow float64) string {
	r := max(1, px(glow))
	if id, ok := s.filters[r]; ok {
		return id
	}
	id := fmt.Sprintf("glow%d", r)
	s.canvas.Def()
	s.canvas.Filter(id)
	s.canvas.FeGaussianBlur(svg.Filterspec{In: "SourceGraphic"}, float64(r)/3, float64(r)/3)
	s.canvas.Fend()
	s.canvas.DefEnd()
	s.filters[r] = id
	return id
}

// DrawText implements polymesh.Surface.
func (s *Surface) DrawText(at polymesh.Vec2, text string, c polymesh.Color) {
	if s.closed {
		return
	}
	s.canvas.Text(px(at.X), px(at.Y), text, fillStyle(c)+";font-family:monospace;font-size:12px")
}

func px(v float64) int {
	return int(math.Round(v))
}

func num(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}

// percent maps v into [lo, hi] as a 0-100 percentage.
func percent(v, lo, hi float64) uint8 {
	if hi-lo <= 0 {
		return 0
	}
	p := (v - lo) / (hi - lo) * 100
	return uint8(math.Round(math.Max(0, math.Min(100, p))))
}

func rgb(c polymesh.Color) string {
	n := c.NRGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", n.R, n.G, n.B)
}

func fillStyle(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%s", n.R, n.G, n.B, num(float64(n.A)/255))
}

func strokeStyle(c polymesh.Color) string {
	n := c.NRGBA()
	return fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%s", n.R, n.G, n.B, num(float64(n.A)/255))
}
