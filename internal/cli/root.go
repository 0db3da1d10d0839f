// Package cli implements the polymesh command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/polymesh"
	"github.com/phanxgames/polymesh/internal/ui"
)

var version = "0.1.0"

// meshFlags are the persistent flags every mesh-building command shares.
type meshFlags struct {
	configPath string
	seed       uint64
	nodes      int
	width      float64
	height     float64
	debug      bool
}

func (f *meshFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "TOML or YAML config file")
	pf.Uint64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVarP(&f.nodes, "nodes", "n", 0, "number of nodes")
	pf.Float64Var(&f.width, "width", 0, "canvas width in pixels")
	pf.Float64Var(&f.height, "height", 0, "canvas height in pixels")
	pf.BoolVar(&f.debug, "debug", false, "log per-frame draw stats to stderr")
}

// config loads the config file, if any, and applies the flags the user set.
func (f *meshFlags) config(cmd *cobra.Command) (polymesh.Config, error) {
	cfg := polymesh.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = polymesh.LoadConfig(f.configPath); err != nil {
			return polymesh.Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("nodes") {
		cfg.NumberOfNodes = f.nodes
	}
	if flags.Changed("width") {
		cfg.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Height = f.height
	}
	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}
	return cfg, nil
}

// mesh builds a mesh from the effective config.
func (f *meshFlags) mesh(cmd *cobra.Command) (*polymesh.Mesh, error) {
	cfg, err := f.config(cmd)
	if err != nil {
		return nil, err
	}
	m, err := polymesh.NewMesh(cfg)
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	return m, nil
}

// NewRootCmd returns the polymesh command tree.
func NewRootCmd() *cobra.Command {
	flags := &meshFlags{}
	root := &cobra.Command{
		Use:   "polymesh",
		Short: "polymesh - animated polygon mesh backgrounds",
		Long: ui.Brand.Sprint(ui.Mark+" polymesh") + " - procedurally animated node meshes\n" +
			ui.Subtle.Sprint("Preview in a window or terminal, render PNG/SVG frames, inspect the density model"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("polymesh {{ .Version }}\n")
	flags.register(root)

	root.AddCommand(
		runCmd(flags),
		renderCmd(flags),
		termCmd(flags),
		configCmd(flags),
		inspectCmd(flags),
	)
	return root
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "polymesh: %v\n", err)
		return err
	}
	return nil
}
