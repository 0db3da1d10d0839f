package polymesh

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTOML = `
seed = 9
number_of_nodes = 40
easing = "easeInOut"
fancy_entrance = true

[rotation]
enabled = true
axis = "left"

[colors.dot]
values = ["#ff0000", "0, 255, 0"]
schema = "random"
`

const sampleYAML = `
seed: 9
number_of_nodes: 40
easing: easeInOut
rotation:
  enabled: true
  axis: left
colors:
  dot:
    values: ["#ff0000", "0, 255, 0"]
    schema: random
`

func checkSample(t *testing.T, cfg Config) {
	t.Helper()
	if cfg.Seed != 9 || cfg.NumberOfNodes != 40 || cfg.Easing != "easeInOut" {
		t.Errorf("top level = seed %d nodes %d easing %q", cfg.Seed, cfg.NumberOfNodes, cfg.Easing)
	}
	if !cfg.Rotation.Enabled || cfg.Rotation.Axis != "left" {
		t.Errorf("rotation = %+v", cfg.Rotation)
	}
	if cfg.Rotation.EveryNCycles != 1 || cfg.Rotation.MinDepthAlpha != 0.2 {
		t.Errorf("omitted rotation keys lost their defaults: %+v", cfg.Rotation)
	}
	if cfg.Duration != 3 || cfg.NodeLineAlpha != 0.5 {
		t.Errorf("omitted keys lost their defaults: duration %v line alpha %v", cfg.Duration, cfg.NodeLineAlpha)
	}
	if cfg.Colors.Dot.Schema != SchemaRandom || len(cfg.Colors.Dot.Values) != 2 {
		t.Errorf("dot colors = %+v", cfg.Colors.Dot)
	}
	if len(cfg.Colors.Line.Values) != 1 {
		t.Errorf("line colors = %+v, want default", cfg.Colors.Line)
	}
}

func TestDecodeConfigTOML(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(sampleTOML), "toml")
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	checkSample(t, cfg)
	if !cfg.FancyEntrance {
		t.Error("fancy_entrance not decoded")
	}
}

func TestDecodeConfigYAML(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(sampleYAML), "yaml")
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	checkSample(t, cfg)
}

func TestDecodeEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""), "yml")
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.NumberOfNodes != DefaultConfig().NumberOfNodes {
		t.Errorf("NumberOfNodes = %d, want default", cfg.NumberOfNodes)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	if _, err := DecodeConfig(strings.NewReader("a=1"), "ini"); !errors.Is(err, ErrUnknownConfigFormat) {
		t.Errorf("unknown format err = %v, want ErrUnknownConfigFormat", err)
	}
	if _, err := DecodeConfig(strings.NewReader("seed = ["), "toml"); err == nil {
		t.Error("malformed toml decoded without error")
	}
	if _, err := DecodeConfig(strings.NewReader("seed: [1, 2"), "yaml"); err == nil {
		t.Error("malformed yaml decoded without error")
	}
	if err := EncodeConfig(&bytes.Buffer{}, DefaultConfig(), "json"); !errors.Is(err, ErrUnknownConfigFormat) {
		t.Errorf("EncodeConfig(json) = %v, want ErrUnknownConfigFormat", err)
	}
}

func TestEncodeConfigRoundTrip(t *testing.T) {
	want := DefaultConfig()
	want.Seed = 77
	want.Colors.Fill.Schema = SchemaRandom
	for _, format := range []string{"toml", "yaml"} {
		var buf bytes.Buffer
		if err := EncodeConfig(&buf, want, format); err != nil {
			t.Fatalf("%s: EncodeConfig: %v", format, err)
		}
		got, err := DecodeConfig(&buf, format)
		if err != nil {
			t.Fatalf("%s: DecodeConfig: %v", format, err)
		}
		if got.Seed != 77 || got.Colors.Fill.Schema != SchemaRandom || got.Rotation.Axis != "median" {
			t.Errorf("%s: round trip = seed %d schema %v axis %q", format, got.Seed, got.Colors.Fill.Schema, got.Rotation.Axis)
		}
	}
}

func TestLoadConfigByExtension(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "mesh.toml")
	yamlPath := filepath.Join(dir, "mesh.YML")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{tomlPath, yamlPath} {
		cfg, err := LoadConfig(p)
		if err != nil {
			t.Fatalf("LoadConfig(%s): %v", p, err)
		}
		checkSample(t, cfg)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
	txt := filepath.Join(dir, "mesh.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(txt); !errors.Is(err, ErrUnknownConfigFormat) {
		t.Errorf("txt err = %v, want ErrUnknownConfigFormat", err)
	}
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumberOfNodes = -3
	cfg.UnconnectedNodes = 4
	cfg.Duration = 0
	cfg.RestDuration = -1
	cfg.Formation = "spiral"
	cfg.Rotation.EveryNCycles = 0
	cfg.Rotation.MinDepthAlpha = 2
	cfg.NodeLineWidth = 0
	cfg.PredictionChance = -0.5
	cfg.normalize()

	if cfg.NumberOfNodes != 0 || cfg.UnconnectedNodes != 0 {
		t.Errorf("nodes = %d unconnected = %d, want 0/0", cfg.NumberOfNodes, cfg.UnconnectedNodes)
	}
	if cfg.Duration != 3 || cfg.RestDuration != 0 {
		t.Errorf("duration = %v rest = %v, want 3/0", cfg.Duration, cfg.RestDuration)
	}
	if cfg.Formation != FormationRandom {
		t.Errorf("formation = %q, want random", cfg.Formation)
	}
	if cfg.Rotation.EveryNCycles != 1 || cfg.Rotation.MinDepthAlpha != 1 {
		t.Errorf("rotation = %+v", cfg.Rotation)
	}
	if cfg.NodeLineWidth != 1 || cfg.PredictionChance != 0 {
		t.Errorf("line width = %v prediction = %v", cfg.NodeLineWidth, cfg.PredictionChance)
	}
}
