package ggsurface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/phanxgames/polymesh"
)

var red = polymesh.Color{R: 1, A: 1}

func rgbaAt(s *Surface, x, y int) color.RGBA {
	return s.Image().RGBAAt(x, y)
}

func TestFillPolygonFlat(t *testing.T) {
	s := New(20, 20)
	s.FillPolygon([]polymesh.Vec2{{X: 2, Y: 2}, {X: 18, Y: 2}, {X: 18, Y: 18}, {X: 2, Y: 18}}, polymesh.Fill{Color: red})

	if got := rgbaAt(s, 10, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("center = %v, want opaque red", got)
	}
	if got := rgbaAt(s, 0, 0); got.A != 0 {
		t.Errorf("corner = %v, want transparent", got)
	}
}

func TestFillPolygonDegenerate(t *testing.T) {
	s := New(10, 10)
	s.FillPolygon([]polymesh.Vec2{{X: 0, Y: 0}, {X: 9, Y: 9}}, polymesh.Fill{Color: red})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if rgbaAt(s, x, y).A != 0 {
				t.Fatalf("pixel %d,%d painted by a two-point polygon", x, y)
			}
		}
	}
}

func TestFillPolygonGradient(t *testing.T) {
	s := New(100, 20)
	pts := []polymesh.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 20}, {X: 0, Y: 20}}
	s.FillPolygon(pts, polymesh.Fill{
		UseGradient: true,
		Gradient: polymesh.LinearGradient{
			From: polymesh.Vec2{X: 0, Y: 10}, To: polymesh.Vec2{X: 100, Y: 10},
			FromColor: red,
			ToColor:   polymesh.Color{B: 1, A: 1},
		},
	})

	left, right := rgbaAt(s, 2, 10), rgbaAt(s, 97, 10)
	if left.R <= left.B {
		t.Errorf("left = %v, want red dominant", left)
	}
	if right.B <= right.R {
		t.Errorf("right = %v, want blue dominant", right)
	}
}

func TestClearUsesBackground(t *testing.T) {
	s := New(10, 10)
	s.FillPolygon([]polymesh.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, polymesh.Fill{Color: red})

	s.Clear(polymesh.Rect{Width: 5, Height: 10})
	if got := rgbaAt(s, 2, 5); got.A != 0 {
		t.Errorf("cleared pixel = %v, want transparent", got)
	}
	if got := rgbaAt(s, 7, 5); got.R != 255 {
		t.Errorf("pixel outside clear rect = %v, want red kept", got)
	}

	s.Background = color.Black
	s.Clear(polymesh.Rect{X: -5, Y: -5, Width: 100, Height: 100})
	if got := rgbaAt(s, 7, 5); got != (color.RGBA{A: 255}) {
		t.Errorf("after background clear = %v, want opaque black", got)
	}
}

func TestFillCircleGlow(t *testing.T) {
	s := New(100, 100)
	s.FillCircle(polymesh.Vec2{X: 50, Y: 50}, 4, red, 12)

	if got := rgbaAt(s, 50, 50); got.A != 255 {
		t.Errorf("dot center alpha = %d, want 255", got.A)
	}
	halo := rgbaAt(s, 60, 50)
	if halo.A == 0 || halo.A == 255 {
		t.Errorf("halo alpha = %d, want translucent", halo.A)
	}
	if got := rgbaAt(s, 80, 50); got.A != 0 {
		t.Errorf("beyond glow alpha = %d, want 0", got.A)
	}
}

func TestFillCircleNoGlow(t *testing.T) {
	s := New(40, 40)
	s.FillCircle(polymesh.Vec2{X: 20, Y: 20}, 3, red, 0)
	if got := rgbaAt(s, 28, 20); got.A != 0 {
		t.Errorf("alpha outside dot = %d, want 0", got.A)
	}
}

func TestMeshDrawPaints(t *testing.T) {
	cfg := polymesh.DefaultConfig()
	cfg.Seed = 9
	cfg.Width = 200
	cfg.Height = 150
	cfg.NumberOfNodes = 40
	m, err := polymesh.NewMesh(cfg)
	if err != nil {
		t.Fatal(err)
	}

	s := New(200, 150)
	s.Background = color.Black
	stats := m.Draw(s)
	if stats.Commands == 0 {
		t.Fatal("mesh emitted no commands")
	}

	lit := 0
	img := s.Image()
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			c := img.RGBAAt(x, y)
			if c.R|c.G|c.B != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no pixels painted")
	}
}

func TestEncodePNG(t *testing.T) {
	s := New(8, 6)
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}
}
