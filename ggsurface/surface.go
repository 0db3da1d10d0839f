// Package ggsurface rasterizes polymesh meshes into in-memory images with
// the gg 2D library. A Surface is also a polymesh.FrameEncoder, so a
// polymesh.Exporter can write its image as numbered PNG frames.
package ggsurface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"git.sr.ht/~sbinet/gg"

	"github.com/phanxgames/polymesh"
)

// Surface implements polymesh.Surface on an *image.RGBA.
type Surface struct {
	img *image.RGBA
	dc  *gg.Context

	// Background fills cleared regions. Nil clears to transparent.
	Background color.Color
}

// New returns a surface with a transparent width x height image.
func New(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, max(1, width), max(1, height)))
	return &Surface{img: img, dc: gg.NewContextForRGBA(img)}
}

// Image returns the backing image. It is updated in place by every draw.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the current image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Ext implements polymesh.FrameEncoder.
func (s *Surface) Ext() string {
	return "png"
}

// Encode implements polymesh.FrameEncoder by writing the current image as
// PNG.
func (s *Surface) Encode(w io.Writer) error {
	return s.EncodePNG(w)
}

// Clear implements polymesh.Surface.
func (s *Surface) Clear(r polymesh.Rect) {
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width+0.5), int(r.Y+r.Height+0.5)).Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	var src image.Image = image.Transparent
	if s.Background != nil {
		src = image.NewUniform(s.Background)
	}
	draw.Draw(s.img, rect, src, image.Point{}, draw.Src)
}

// StrokeLine implements polymesh.Surface.
func (s *Surface) StrokeLine(a, b polymesh.Vec2, width float64, c polymesh.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.dc.Stroke()
}

// FillPolygon implements polymesh.Surface.
func (s *Surface) FillPolygon(points []polymesh.Vec2, fill polymesh.Fill) {
	if len(points) < 3 {
		return
	}
	s.dc.NewSubPath()
	s.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()

	if fill.UseGradient {
		g := fill.Gradient
		grad := gg.NewLinearGradient(g.From.X, g.From.Y, g.To.X, g.To.Y)
		grad.AddColorStop(0, g.FromColor.NRGBA())
		grad.AddColorStop(1, g.ToColor.NRGBA())
		s.dc.SetFillStyle(grad)
	} else {
		s.dc.SetColor(fill.Color)
	}
	s.dc.Fill()
}

// FillCircle implements polymesh.Surface. Glow is drawn as translucent rings
// under the dot.
func (s *Surface) FillCircle(center polymesh.Vec2, radius float64, c polymesh.Color, glow float64) {
	for _, ring := range polymesh.GlowRings(radius, glow) {
		s.dc.SetColor(c.WithAlpha(ring.Alpha))
		s.dc.DrawCircle(center.X, center.Y, ring.Radius)
		s.dc.Fill()
	}
	if radius <= 0 {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawCircle(center.X, center.Y, radius)
	s.dc.Fill()
}

// DrawText implements polymesh.Surface with gg's default face.
func (s *Surface) DrawText(at polymesh.Vec2, text string, c polymesh.Color) {
	s.dc.SetColor(c)
	s.dc.DrawString(text, at.X, at.Y)
}
