// Package termsurface draws polymesh meshes in a terminal with tcell.
//
// Every character cell holds two vertically stacked subpixels rendered as an
// upper half block, so a cols x rows terminal gives a cols x 2*rows raster.
// Subpixels are blended in RGB with go-colorful.
package termsurface

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/polymesh"
)

const halfBlock = '▀'

type label struct {
	col, row int
	text     string
	color    colorful.Color
}

// Surface implements polymesh.Surface on a tcell.Screen. Drawing only fills
// the subpixel buffer; Show pushes it to the screen.
type Surface struct {
	screen tcell.Screen

	canvasW, canvasH float64
	cols, rows       int
	sx, sy           float64

	px     []colorful.Color
	labels []label

	// Background is the color cleared regions are reset to.
	Background colorful.Color
}

// New returns a surface mapping a canvasWidth x canvasHeight mesh onto the
// whole screen.
func New(screen tcell.Screen, canvasWidth, canvasHeight float64) *Surface {
	s := &Surface{
		screen:  screen,
		canvasW: canvasWidth,
		canvasH: canvasHeight,
	}
	s.Resize()
	return s
}

// Resize reallocates the buffer for the current screen size.
func (s *Surface) Resize() {
	s.cols, s.rows = s.screen.Size()
	s.cols, s.rows = max(0, s.cols), max(0, s.rows)
	s.px = make([]colorful.Color, s.cols*s.rows*2)
	for i := range s.px {
		s.px[i] = s.Background
	}
	s.labels = s.labels[:0]
	s.sx, s.sy = 0, 0
	if s.canvasW > 0 {
		s.sx = float64(s.cols) / s.canvasW
	}
	if s.canvasH > 0 {
		s.sy = float64(s.rows*2) / s.canvasH
	}
}

// Size returns the subpixel raster size.
func (s *Surface) Size() (w, h int) {
	return s.cols, s.rows * 2
}

func (s *Surface) at(x, y int) colorful.Color {
	return s.px[y*s.cols+x]
}

func (s *Surface) toGrid(p polymesh.Vec2) (float64, float64) {
	return p.X * s.sx, p.Y * s.sy
}

func (s *Surface) toCanvas(x, y float64) polymesh.Vec2 {
	return polymesh.Vec2{X: x / s.sx, Y: y / s.sy}
}

// blend composites c over the subpixel at x, y.
func (s *Surface) blend(x, y int, c polymesh.Color) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 || c.A <= 0 {
		return
	}
	i := y*s.cols + x
	s.px[i] = s.px[i].BlendRgb(colorful.Color{R: c.R, G: c.G, B: c.B}, math.Min(c.A, 1))
}

// Clear implements polymesh.Surface.
func (s *Surface) Clear(r polymesh.Rect) {
	x0, y0 := s.toGrid(polymesh.Vec2{X: r.X, Y: r.Y})
	x1, y1 := s.toGrid(polymesh.Vec2{X: r.X + r.Width, Y: r.Y + r.Height})
	ix0, iy0 := max(0, int(math.Floor(x0))), max(0, int(math.Floor(y0)))
	ix1, iy1 := min(s.cols, int(math.Ceil(x1))), min(s.rows*2, int(math.Ceil(y1)))
	for y := iy0; y < iy1; y++ {
		for x := ix0; x < ix1; x++ {
			s.px[y*s.cols+x] = s.Background
		}
	}
	s.labels = slices.DeleteFunc(s.labels, func(l label) bool {
		return l.col >= ix0 && l.col < ix1 && l.row*2 >= iy0 && l.row*2 < iy1
	})
}

// StrokeLine implements polymesh.Surface. Lines are one subpixel wide.
func (s *Surface) StrokeLine(a, b polymesh.Vec2, _ float64, c polymesh.Color) {
	x0, y0 := s.toGrid(a)
	x1, y1 := s.toGrid(b)
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		s.blend(int(math.Floor(x0)), int(math.Floor(y0)), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.blend(int(math.Floor(x0+(x1-x0)*t)), int(math.Floor(y0+(y1-y0)*t)), c)
	}
}

// FillPolygon implements polymesh.Surface with an even-odd scanline fill
// sampled at subpixel centers.
func (s *Surface) FillPolygon(points []polymesh.Vec2, fill polymesh.Fill) {
	if len(points) < 3 || s.sx == 0 || s.sy == 0 {
		return
	}
	grid := make([]polymesh.Vec2, len(points))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		x, y := s.toGrid(p)
		grid[i] = polymesh.Vec2{X: x, Y: y}
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	var xs []float64
	for y := max(0, int(math.Floor(minY))); y < min(s.rows*2, int(math.Ceil(maxY))); y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := range grid {
			a, b := grid[i], grid[(i+1)%len(grid)]
			if (a.Y <= cy) == (b.Y <= cy) {
				continue
			}
			xs = append(xs, a.X+(cy-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := max(0, int(math.Ceil(xs[i]-0.5)))
			end := min(s.cols-1, int(math.Floor(xs[i+1]-0.5)))
			for x := start; x <= end; x++ {
				c := fill.Color
				if fill.UseGradient {
					c = fill.Gradient.At(s.toCanvas(float64(x)+0.5, cy))
				}
				s.blend(x, y, c)
			}
		}
	}
}

// FillCircle implements polymesh.Surface. A dot smaller than a subpixel
// still marks the subpixel under its center.
func (s *Surface) FillCircle(center polymesh.Vec2, radius float64, c polymesh.Color, glow float64) {
	for _, ring := range polymesh.GlowRings(radius, glow) {
		s.disc(center, ring.Radius, c.WithAlpha(ring.Alpha))
	}
	if radius <= 0 || s.sx == 0 || s.sy == 0 {
		return
	}
	if s.disc(center, radius, c) == 0 {
		x, y := s.toGrid(center)
		s.blend(int(math.Floor(x)), int(math.Floor(y)), c)
	}
}

// disc blends every subpixel whose center lies within radius canvas pixels
// of center and returns how many it touched.
func (s *Surface) disc(center polymesh.Vec2, radius float64, c polymesh.Color) int {
	if s.sx == 0 || s.sy == 0 {
		return 0
	}
	x0, y0 := s.toGrid(polymesh.Vec2{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := s.toGrid(polymesh.Vec2{X: center.X + radius, Y: center.Y + radius})
	n := 0
	for y := max(0, int(math.Floor(y0))); y <= min(s.rows*2-1, int(math.Floor(y1))); y++ {
		for x := max(0, int(math.Floor(x0))); x <= min(s.cols-1, int(math.Floor(x1))); x++ {
			if s.toCanvas(float64(x)+0.5, float64(y)+0.5).Dist(center) <= radius {
				s.blend(x, y, c)
				n++
			}
		}
	}
	return n
}

// DrawText implements polymesh.Surface. Text is laid over the cell grid at
// the cell containing the point and clipped at the right edge.
func (s *Surface) DrawText(at polymesh.Vec2, text string, c polymesh.Color) {
	x, y := s.toGrid(at)
	col, row := int(math.Floor(x)), int(math.Floor(y))/2
	if row < 0 || row >= s.rows || col >= s.cols || text == "" {
		return
	}
	s.labels = append(s.labels, label{
		col:   col,
		row:   row,
		text:  text,
		color: colorful.Color{R: c.R, G: c.G, B: c.B},
	})
}

// Show writes the buffer and labels to the screen and flushes it.
func (s *Surface) Show() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top, bottom := s.at(col, row*2), s.at(col, row*2+1)
			style := tcell.StyleDefault.Foreground(termColor(top)).Background(termColor(bottom))
			s.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	for _, l := range s.labels {
		col := l.col
		for _, r := range l.text {
			if col >= s.cols {
				break
			}
			if col >= 0 {
				bg := s.at(col, l.row*2+1)
				style := tcell.StyleDefault.Foreground(termColor(l.color)).Background(termColor(bg))
				s.screen.SetContent(col, l.row, r, nil, style)
			}
			col++
		}
	}
	s.screen.Show()
}

func termColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
