// Package ebitensurface draws polymesh meshes with Ebitengine and drives
// their schedulers from the game loop.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/polymesh"
)

// debugGlyphHeight is the line height of ebitenutil's debug font.
const debugGlyphHeight = 16

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage is the center pixel of whiteImage; sampling it avoids
	// bleeding from the image edge.
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface implements polymesh.Surface on an *ebiten.Image. Polygons are
// submitted with DrawTriangles so gradient fills become vertex colors.
type Surface struct {
	target *ebiten.Image

	// Background fills cleared regions. Nil clears to transparent.
	Background color.Color
	// Antialias smooths lines, circles and polygons.
	Antialias bool

	verts []ebiten.Vertex
	inds  []uint16
}

// New returns a surface drawing onto target.
func New(target *ebiten.Image) *Surface {
	return &Surface{target: target, Antialias: true}
}

// SetTarget redirects drawing, typically to the screen passed to Draw.
func (s *Surface) SetTarget(target *ebiten.Image) {
	s.target = target
}

// Target returns the current target image.
func (s *Surface) Target() *ebiten.Image {
	return s.target
}

// Clear implements polymesh.Surface.
func (s *Surface) Clear(r polymesh.Rect) {
	if s.target == nil {
		return
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width+0.5), int(r.Y+r.Height+0.5))
	bounds := s.target.Bounds()
	rect = rect.Intersect(bounds)
	if rect.Empty() {
		return
	}
	dst := s.target
	if rect != bounds {
		dst = s.target.SubImage(rect).(*ebiten.Image)
	}
	if s.Background != nil {
		dst.Fill(s.Background)
		return
	}
	dst.Clear()
}

// StrokeLine implements polymesh.Surface.
func (s *Surface) StrokeLine(a, b polymesh.Vec2, width float64, c polymesh.Color) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, s.Antialias)
}

// FillPolygon implements polymesh.Surface.
func (s *Surface) FillPolygon(points []polymesh.Vec2, fill polymesh.Fill) {
	if s.target == nil || len(points) < 3 {
		return
	}
	s.verts, s.inds = fanVertices(s.verts[:0], s.inds[:0], points, fill)

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = s.Antialias
	s.target.DrawTriangles(s.verts, s.inds, whiteSubImage, &op)
}

// FillCircle implements polymesh.Surface. Glow is drawn as translucent rings
// under the dot.
func (s *Surface) FillCircle(center polymesh.Vec2, radius float64, c polymesh.Color, glow float64) {
	if s.target == nil {
		return
	}
	cx, cy := float32(center.X), float32(center.Y)
	for _, ring := range polymesh.GlowRings(radius, glow) {
		vector.DrawFilledCircle(s.target, cx, cy, float32(ring.Radius), c.WithAlpha(ring.Alpha), s.Antialias)
	}
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target, cx, cy, float32(radius), c, s.Antialias)
}

// DrawText implements polymesh.Surface with the debug font. The debug font
// is always white; the color is ignored.
func (s *Surface) DrawText(at polymesh.Vec2, text string, _ polymesh.Color) {
	if s.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(s.target, text, int(at.X), int(at.Y)-debugGlyphHeight)
}

// fanVertices appends a triangle fan over points to verts and inds. Vertex
// colors are straight alpha; gradient fills sample the gradient at every
// vertex, which is exact for a linear gradient inside its end stops.
func fanVertices(verts []ebiten.Vertex, inds []uint16, points []polymesh.Vec2, fill polymesh.Fill) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	for _, p := range points {
		c := fill.Color
		if fill.UseGradient {
			c = fill.Gradient.At(p)
		}
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: float32(c.A),
		})
	}
	for i := 1; i+1 < len(points); i++ {
		inds = append(inds, base, base+uint16(i), base+uint16(i+1))
	}
	return verts, inds
}
