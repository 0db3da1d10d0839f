package polymesh

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a palette entry cannot be parsed.
var ErrInvalidColor = errors.New("polymesh: invalid color")

// ColorSchema selects how a node picks its color from a palette.
type ColorSchema uint8

const (
	SchemaOrdered ColorSchema = iota // node index modulo palette length
	SchemaRandom                     // uniform random entry
)

// String returns the configuration name of the schema.
func (s ColorSchema) String() string {
	if s == SchemaRandom {
		return "random"
	}
	return "ordered"
}

// MarshalText implements encoding.TextMarshaler for config files.
func (s ColorSchema) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names select
// SchemaOrdered.
func (s *ColorSchema) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), "random") {
		*s = SchemaRandom
	} else {
		*s = SchemaOrdered
	}
	return nil
}

// ParseColor parses "#rrggbb", "#rgb", "r, g, b" or "r, g, b, a" where
// r, g and b are 0-255 and a is 0-1.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !finite(v) {
			return Color{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
		}
		if i < 3 {
			v /= 255
		}
		ch[i] = clamp01(v)
	}
	c := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: ch[3]}, nil
}

// Palette is a parsed channel color list.
type Palette struct {
	Colors []Color
	Schema ColorSchema
}

// NewPalette parses every value of a channel config.
func NewPalette(cc ChannelColors) (Palette, error) {
	p := Palette{Schema: cc.Schema, Colors: make([]Color, 0, len(cc.Values))}
	for _, v := range cc.Values {
		c, err := ParseColor(v)
		if err != nil {
			return Palette{}, err
		}
		p.Colors = append(p.Colors, c)
	}
	return p, nil
}

// Empty reports whether the palette has no colors.
func (p Palette) Empty() bool {
	return len(p.Colors) == 0
}

// index picks the palette slot for node i.
func (p Palette) index(i int, rng *rand.Rand) int {
	if len(p.Colors) == 0 {
		return -1
	}
	if p.Schema == SchemaRandom {
		return rng.IntN(len(p.Colors))
	}
	return i % len(p.Colors)
}

// Pick returns the color for node i, or ColorWhite when the palette is empty.
func (p Palette) Pick(i int, rng *rand.Rand) Color {
	idx := p.index(i, rng)
	if idx < 0 {
		return ColorWhite
	}
	return p.Colors[idx]
}

// PickPair returns two consecutive palette entries for node i, used as the
// stops of a two-stop gradient.
func (p Palette) PickPair(i int, rng *rand.Rand) (Color, Color, bool) {
	idx := p.index(i, rng)
	if idx < 0 {
		return Color{}, Color{}, false
	}
	return p.Colors[idx], p.Colors[(idx+1)%len(p.Colors)], true
}

// Blend mixes a toward b in RGB space by t and interpolates alpha linearly.
func Blend(a, b Color, t float64) Color {
	t = clamp01(t)
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendRgb(cb, t)
	return Color{R: m.R, G: m.G, B: m.B, A: a.A + (b.A-a.A)*t}
}

// palettes groups the parsed palettes of every channel.
type palettes struct {
	dot, line, fill, gradient Palette
}

func newPalettes(cc ColorsConfig) (palettes, error) {
	var ps palettes
	var err error
	if ps.dot, err = NewPalette(cc.Dot); err != nil {
		return palettes{}, fmt.Errorf("dot colors: %w", err)
	}
	if ps.line, err = NewPalette(cc.Line); err != nil {
		return palettes{}, fmt.Errorf("line colors: %w", err)
	}
	if ps.fill, err = NewPalette(cc.Fill); err != nil {
		return palettes{}, fmt.Errorf("fill colors: %w", err)
	}
	if ps.gradient, err = NewPalette(cc.FillGradient); err != nil {
		return palettes{}, fmt.Errorf("fill gradient colors: %w", err)
	}
	return ps, nil
}
