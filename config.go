package polymesh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigFormat is returned when a config file extension or format
// name is neither TOML nor YAML.
var ErrUnknownConfigFormat = errors.New("polymesh: unknown config format")

// Formation names accepted by Config.Formation.
const (
	FormationRandom  = "random"
	FormationEllipse = "ellipse"
)

// Config holds every mesh option. Durations are in seconds. The zero value is
// not useful; start from DefaultConfig and override fields.
type Config struct {
	// Seed drives all randomness. Zero picks a time-based seed.
	Seed uint64 `toml:"seed" yaml:"seed"`

	// Canvas extents in pixels.
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`

	NumberOfNodes    int `toml:"number_of_nodes" yaml:"number_of_nodes"`
	UnconnectedNodes int `toml:"unconnected_nodes" yaml:"unconnected_nodes"`
	NodeRelations    int `toml:"node_relations" yaml:"node_relations"`

	// Formation is "random" or "ellipse".
	Formation string `toml:"formation" yaml:"formation"`

	NodeMovementDistance float64 `toml:"node_movement_distance" yaml:"node_movement_distance"`
	Duration             float64 `toml:"duration" yaml:"duration"`
	RestDuration         float64 `toml:"rest_duration" yaml:"rest_duration"`
	FPS                  float64 `toml:"fps" yaml:"fps"`

	// Easing is a built-in mode name (linear, easeIn, easeOut, easeInOut,
	// accelerateDecelerate) or a gween curve name such as inOutSine.
	// Unknown names fall back to linear.
	Easing        string `toml:"easing" yaml:"easing"`
	FancyEntrance bool   `toml:"fancy_entrance" yaml:"fancy_entrance"`

	// AllowOverflow lets targets and rotated positions leave the canvas.
	AllowOverflow bool `toml:"allow_overflow" yaml:"allow_overflow"`

	Rotation RotationConfig `toml:"rotation" yaml:"rotation"`

	ConnectUnconnected bool    `toml:"connect_unconnected" yaml:"connect_unconnected"`
	ProximityThreshold float64 `toml:"proximity_threshold" yaml:"proximity_threshold"`

	NodeDotSize   float64 `toml:"node_dot_size" yaml:"node_dot_size"`
	NodeDotAlpha  float64 `toml:"node_dot_alpha" yaml:"node_dot_alpha"`
	NodeGlowing   bool    `toml:"node_glowing" yaml:"node_glowing"`
	NodeLineAlpha float64 `toml:"node_line_alpha" yaml:"node_line_alpha"`
	NodeLineWidth float64 `toml:"node_line_width" yaml:"node_line_width"`
	NodeFillAlpha float64 `toml:"node_fill_alpha" yaml:"node_fill_alpha"`
	NodeFillSpace bool    `toml:"node_fill_space" yaml:"node_fill_space"`

	Colors ColorsConfig `toml:"colors" yaml:"colors"`

	// PredictionChance is the per-cycle probability that a node's target is
	// annotated on screen.
	PredictionChance float64 `toml:"prediction_chance" yaml:"prediction_chance"`

	Debug bool `toml:"debug" yaml:"debug"`
}

// RotationConfig controls the optional pseudo-3D rotation.
type RotationConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Axis is "median", "center", "left" or "right".
	Axis string `toml:"axis" yaml:"axis"`
	// EveryNCycles rotates once per this many motion cycles.
	EveryNCycles  int     `toml:"every_n_cycles" yaml:"every_n_cycles"`
	Easing        string  `toml:"easing" yaml:"easing"`
	MinDepthAlpha float64 `toml:"min_depth_alpha" yaml:"min_depth_alpha"`
	// DepthDistance scales the pseudo-depth sampled for every node.
	DepthDistance float64 `toml:"depth_distance" yaml:"depth_distance"`
}

// ColorsConfig holds one palette per drawing channel.
type ColorsConfig struct {
	Dot          ChannelColors `toml:"dot" yaml:"dot"`
	Line         ChannelColors `toml:"line" yaml:"line"`
	Fill         ChannelColors `toml:"fill" yaml:"fill"`
	FillGradient ChannelColors `toml:"fill_gradient" yaml:"fill_gradient"`
}

// ChannelColors is an ordered color list plus the schema that picks from it.
// Values accept "#rrggbb" or the plugin's "r, g, b" notation.
type ChannelColors struct {
	Values []string    `toml:"values" yaml:"values"`
	Schema ColorSchema `toml:"schema" yaml:"schema"`
}

// DefaultConfig returns the plugin defaults on an 800x600 canvas.
func DefaultConfig() Config {
	return Config{
		Width:                800,
		Height:               600,
		NumberOfNodes:        25,
		NodeRelations:        3,
		Formation:            FormationRandom,
		NodeMovementDistance: 100,
		Duration:             3,
		RestDuration:         1,
		FPS:                  30,
		Easing:               "easeOut",
		AllowOverflow:        true,
		Rotation: RotationConfig{
			Axis:          AxisMedian.String(),
			EveryNCycles:  1,
			Easing:        "linear",
			MinDepthAlpha: 0.2,
			DepthDistance: 100,
		},
		ProximityThreshold: 150,
		NodeDotSize:        2.5,
		NodeDotAlpha:       1,
		NodeLineAlpha:      0.5,
		NodeLineWidth:      1,
		NodeFillAlpha:      0.5,
		NodeFillSpace:      true,
		Colors: ColorsConfig{
			Dot:  ChannelColors{Values: []string{"240, 255, 250"}},
			Line: ChannelColors{Values: []string{"240, 255, 250"}},
			Fill: ChannelColors{Values: []string{"240, 255, 250"}},
		},
	}
}

// normalize clamps out-of-range values to safe ones. Nothing here fails.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.NumberOfNodes < 0 {
		c.NumberOfNodes = 0
	}
	c.UnconnectedNodes = int(clamp(float64(c.UnconnectedNodes), 0, float64(c.NumberOfNodes)))
	if c.NodeRelations < 0 {
		c.NodeRelations = 0
	}
	if !finite(c.Width) || c.Width < 0 {
		c.Width = 0
	}
	if !finite(c.Height) || c.Height < 0 {
		c.Height = 0
	}
	if !finite(c.FPS) || c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if !finite(c.Duration) || c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if !finite(c.RestDuration) || c.RestDuration < 0 {
		c.RestDuration = 0
	}
	if !finite(c.NodeMovementDistance) || c.NodeMovementDistance < 0 {
		c.NodeMovementDistance = 0
	}
	if c.Formation != FormationEllipse {
		c.Formation = FormationRandom
	}
	if c.Rotation.EveryNCycles < 1 {
		c.Rotation.EveryNCycles = 1
	}
	c.Rotation.MinDepthAlpha = clamp01(c.Rotation.MinDepthAlpha)
	if !finite(c.Rotation.DepthDistance) || c.Rotation.DepthDistance < 0 {
		c.Rotation.DepthDistance = 0
	}
	if !finite(c.ProximityThreshold) || c.ProximityThreshold < 0 {
		c.ProximityThreshold = 0
	}
	c.NodeDotAlpha = clamp01(c.NodeDotAlpha)
	c.NodeLineAlpha = clamp01(c.NodeLineAlpha)
	c.NodeFillAlpha = clamp01(c.NodeFillAlpha)
	c.PredictionChance = clamp01(c.PredictionChance)
	if c.NodeLineWidth <= 0 {
		c.NodeLineWidth = def.NodeLineWidth
	}
	if c.NodeDotSize < 0 {
		c.NodeDotSize = 0
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file and decodes it
// over DefaultConfig, so omitted keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := DecodeConfig(bytes.NewReader(data), format)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a config document in the named format ("toml",
// "yaml" or "yml") over DefaultConfig.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, format)
	}
	return cfg, nil
}

// EncodeConfig writes cfg in the named format.
func EncodeConfig(w io.Writer, cfg Config, format string) error {
	switch format {
	case "toml":
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConfigFormat, format)
	}
	return nil
}
