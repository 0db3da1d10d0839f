package cli

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/polymesh"
)

// execute runs the command tree with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "polymesh "+version+"\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigFlagsOverrideDefaults(t *testing.T) {
	out, err := execute(t, "config", "--seed", "9", "--nodes", "12")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"seed = 9", "number_of_nodes = 12", "easing = \"easeOut\""} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigYAML(t *testing.T) {
	out, err := execute(t, "config", "--format", "yaml", "--width", "320")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "width: 320") || !strings.Contains(out, "number_of_nodes: 25") {
		t.Errorf("yaml output:\n%s", out)
	}
}

func TestConfigUnknownFormat(t *testing.T) {
	_, err := execute(t, "config", "--format", "json")
	if !errors.Is(err, polymesh.ErrUnknownConfigFormat) {
		t.Errorf("err = %v, want ErrUnknownConfigFormat", err)
	}
}

func TestConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.yaml")
	if err := os.WriteFile(path, []byte("number_of_nodes: 7\nfps: 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "config", "--config", path, "--nodes", "9")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "number_of_nodes = 9") || !strings.Contains(out, "fps = 24.0") {
		t.Errorf("output:\n%s", out)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "inspect", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestInspect(t *testing.T) {
	out, err := execute(t, "inspect", "--seed", "42", "--nodes", "6")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"polymesh - inspect", "seed:", "42", "DENSITY", "CLOSEST", "bands:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n  5 "); n != 1 {
		t.Errorf("row for node 5 found %d times:\n%s", n, out)
	}
}

func TestDensityBand(t *testing.T) {
	tests := []struct {
		d    float64
		want string
	}{
		{0.9, bandDense},
		{0.85, bandFaint},
		{0.8, bandFaint},
		{0.75, bandMid},
		{0.7, bandFaint},
		{0.5, bandSparse},
		{0.4, bandFaint},
		{-1, bandFaint},
	}
	for _, tt := range tests {
		if got := densityBand(tt.d); got != tt.want {
			t.Errorf("densityBand(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestRenderPNGSequence(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "--out", dir, "--frames", "3", "--every", "5",
		"--seed", "1", "--nodes", "10", "--width", "120", "--height", "80")
	if err != nil {
		t.Fatal(err)
	}
	names := listDir(t, dir)
	if len(names) != 3 {
		t.Fatalf("files = %v, want 3", names)
	}
	if names[0] != "frame_0000_t000000ms.png" {
		t.Errorf("first frame = %q, want frame_0000_t000000ms.png", names[0])
	}
	if !strings.Contains(out, "3 frames written") {
		t.Errorf("output:\n%s", out)
	}

	f, err := os.Open(filepath.Join(dir, names[2]))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("bounds = %v, want 120x80", b)
	}
}

func TestRenderSVG(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "render", "--format", "svg", "--out", dir, "--prefix", "bg",
		"--seed", "2", "--nodes", "8", "--width", "100", "--height", "100")
	if err != nil {
		t.Fatal(err)
	}
	names := listDir(t, dir)
	if len(names) != 1 || names[0] != "bg_0000_t000000ms.svg" {
		t.Fatalf("files = %v", names)
	}
	data, err := os.ReadFile(filepath.Join(dir, names[0]))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("svg document not closed")
	}
}

func TestRenderScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.json")
	body := `{"steps": [
		{"action": "capture", "label": "start"},
		{"action": "advance", "frames": 3},
		{"action": "capture", "label": "after"}
	]}`
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "frames")
	report, err := execute(t, "render", "--script", script, "--out", out, "--frames", "5",
		"--seed", "3", "--nodes", "5", "--width", "64", "--height", "64")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report, "⚠ --script set, ignoring --frames") {
		t.Errorf("output missing override warning:\n%s", report)
	}
	names := listDir(t, out)
	want := []string{"frame_0000_start.png", "frame_0001_after.png"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("files = %v, want %v", names, want)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"render", "--format", "gif"}},
		{"frames", []string{"render", "--frames", "0"}},
		{"script", []string{"render", "--script", "does-not-exist.json"}},
	}
	for _, tt := range tests {
		args := append(tt.args, "--out", t.TempDir(), "--nodes", "3", "--seed", "1")
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%s: err = nil, want failure", tt.name)
		}
	}
}

func TestTermRunsOnSimulationScreen(t *testing.T) {
	prev := newScreen
	newScreen = func() (tcell.Screen, error) {
		return tcell.NewSimulationScreen("UTF-8"), nil
	}
	t.Cleanup(func() { newScreen = prev })

	if _, err := execute(t, "term", "--duration", "60ms", "--refresh", "100", "--seed", "4", "--nodes", "10"); err != nil {
		t.Fatalf("term = %v, want nil", err)
	}
}
