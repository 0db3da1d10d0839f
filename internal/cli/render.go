package cli

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/polymesh"
	"github.com/phanxgames/polymesh/ggsurface"
	"github.com/phanxgames/polymesh/internal/ui"
	"github.com/phanxgames/polymesh/svgsurface"
)

type renderOptions struct {
	format      string
	out         string
	prefix      string
	frames      int
	every       int
	script      string
	transparent bool
	// overridden lists the sequence flags the user set that --script ignores.
	overridden []string
}

func renderCmd(flags *meshFlags) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render mesh frames to PNG or SVG files",
		Long: "Steps the mesh on a deterministic clock and writes numbered frames.\n" +
			"With --script, a JSON frame script decides when to advance and capture.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.mesh(cmd)
			if err != nil {
				return err
			}
			if opts.script != "" {
				for _, name := range []string{"frames", "every"} {
					if cmd.Flags().Changed(name) {
						opts.overridden = append(opts.overridden, "--"+name)
					}
				}
			}
			return render(cmd.OutOrStdout(), m, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "png", "frame format: png or svg")
	f.StringVarP(&opts.out, "out", "o", "frames", "output directory")
	f.StringVar(&opts.prefix, "prefix", "frame", "file name prefix")
	f.IntVar(&opts.frames, "frames", 1, "number of frames to capture")
	f.IntVar(&opts.every, "every", 1, "scheduler frames between captures")
	f.StringVar(&opts.script, "script", "", "JSON frame script (overrides --frames and --every)")
	f.BoolVar(&opts.transparent, "transparent", false, "leave the background transparent")
	return cmd
}

// render captures frames of m according to opts and reports each file on w.
func render(w io.Writer, m *polymesh.Mesh, opts renderOptions) error {
	encoder, err := newFrameEncoder(m, opts)
	if err != nil {
		return err
	}
	exp := &polymesh.Exporter{Dir: opts.out, Prefix: opts.prefix}
	frames := polymesh.NewManualFrames()

	capture := func(label string) error {
		path, err := exp.Capture(encoder, label)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s %s\n", ui.StatusIcon(true), path)
		return nil
	}

	ui.Banner(w, "render "+opts.format)
	if len(opts.overridden) > 0 {
		fmt.Fprintf(w, "  %s --script set, ignoring %s\n", ui.WarnIcon(), strings.Join(opts.overridden, " and "))
	}
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		sc, err := polymesh.LoadScript(data)
		if err != nil {
			return err
		}
		if err := sc.Run(m, frames, capture); err != nil {
			return err
		}
	} else if err := renderSequence(m, frames, opts, capture); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n  %s frames written to %s\n", ui.Good.Sprint(exp.Count()), opts.out)
	return nil
}

// renderSequence captures opts.frames frames, advancing the clock by
// opts.every frame intervals between them. Labels carry the clock in ms.
func renderSequence(m *polymesh.Mesh, frames *polymesh.ManualFrames, opts renderOptions, capture polymesh.CaptureFunc) error {
	if opts.frames < 1 {
		return fmt.Errorf("render: --frames must be at least 1, got %d", opts.frames)
	}
	every := max(1, opts.every)
	interval := m.Scheduler().FrameInterval()

	m.Start(frames)
	defer m.Stop()
	frames.Fire(0)
	for i := 0; i < opts.frames; i++ {
		if i > 0 {
			for j := 0; j < every; j++ {
				frames.Advance(interval)
			}
		}
		if err := capture(clockLabel(frames.Now())); err != nil {
			return err
		}
	}
	return nil
}

func clockLabel(now time.Duration) string {
	return fmt.Sprintf("t%06dms", now.Milliseconds())
}

// newFrameEncoder returns the encoder for the requested format. PNG frames
// redraw the mesh into a gg surface on every Encode.
func newFrameEncoder(m *polymesh.Mesh, opts renderOptions) (polymesh.FrameEncoder, error) {
	var bg color.Color = color.Black
	if opts.transparent {
		bg = nil
	}
	switch opts.format {
	case "png":
		cfg := m.Config()
		s := ggsurface.New(int(cfg.Width), int(cfg.Height))
		s.Background = bg
		return &meshPNG{mesh: m, surface: s}, nil
	case "svg":
		return svgsurface.Frame{Mesh: m, Background: bg}, nil
	default:
		return nil, fmt.Errorf("render: unknown format %q (want png or svg)", opts.format)
	}
}

// meshPNG draws the mesh before encoding so each capture shows the current
// frame.
type meshPNG struct {
	mesh    *polymesh.Mesh
	surface *ggsurface.Surface
}

func (p *meshPNG) Ext() string { return p.surface.Ext() }

func (p *meshPNG) Encode(w io.Writer) error {
	p.mesh.Draw(p.surface)
	return p.surface.Encode(w)
}
