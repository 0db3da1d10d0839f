package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phanxgames/polymesh"
	"github.com/phanxgames/polymesh/internal/ui"
)

func inspectCmd(flags *meshFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the node table and density bands of a mesh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.mesh(cmd)
			if err != nil {
				return err
			}
			inspect(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

// Density bands in the order BandAlpha tests them.
const (
	bandDense  = "dense"
	bandMid    = "mid"
	bandSparse = "sparse"
	bandFaint  = "faint"
)

var bandOrder = []string{bandDense, bandMid, bandSparse, bandFaint}

// densityBand names the BandAlpha branch a density falls in.
func densityBand(d float64) string {
	switch {
	case d > 0.85:
		return bandDense
	case d < 0.8 && d > 0.7:
		return bandMid
	case d < 0.7 && d > 0.4:
		return bandSparse
	default:
		return bandFaint
	}
}

func bandColor(band string) *color.Color {
	switch band {
	case bandDense:
		return ui.Good
	case bandMid:
		return ui.Info
	case bandSparse:
		return ui.Warn
	default:
		return ui.Subtle
	}
}

func inspect(w io.Writer, m *polymesh.Mesh) {
	cfg := m.Config()
	nodes := m.Nodes()

	ui.Banner(w, "inspect")
	ui.KeyValue(w, "seed", m.Seed())
	ui.KeyValue(w, "canvas", fmt.Sprintf("%gx%g", cfg.Width, cfg.Height))
	ui.KeyValue(w, "nodes", len(nodes))
	ui.KeyValue(w, "relations", cfg.NodeRelations)
	ui.KeyValue(w, "formation", cfg.Formation)
	fmt.Fprintln(w)

	headers := []string{"#", "X", "Y", "Z", "CLOSEST", "DENSITY", "DOT", "LINE", "FILL", "FLAGS"}
	rows := make([][]string, len(nodes))
	bands := make([]string, len(nodes))
	counts := make(map[string]int, len(bandOrder))
	for i, n := range nodes {
		closest := make([]string, len(n.Closest))
		for j, c := range n.Closest {
			closest[j] = strconv.Itoa(c)
		}
		var flags []string
		if n.Unconnected {
			flags = append(flags, "unconnected")
		}
		if n.HasPrediction {
			flags = append(flags, "predict")
		}
		rows[i] = []string{
			strconv.Itoa(n.Index),
			fmt.Sprintf("%.1f", n.Current.X),
			fmt.Sprintf("%.1f", n.Current.Y),
			fmt.Sprintf("%.1f", n.OriginZ),
			strings.Join(closest, ","),
			fmt.Sprintf("%.3f", n.Density),
			fmt.Sprintf("%.2f", n.DotAlpha),
			fmt.Sprintf("%.2f", n.LineAlpha),
			fmt.Sprintf("%.2f", n.FillAlpha),
			strings.Join(flags, " "),
		}
		bands[i] = densityBand(n.Density)
		counts[bands[i]]++
	}

	ui.Table(w, headers, rows, func(row, col int, cell string) string {
		if col != 5 {
			return cell
		}
		return bandColor(bands[row]).Sprint(cell)
	})

	fmt.Fprintln(w)
	parts := make([]string, 0, len(bandOrder))
	for _, b := range bandOrder {
		parts = append(parts, bandColor(b).Sprintf("%s %d", b, counts[b]))
	}
	ui.KeyValue(w, "bands", strings.Join(parts, "  "))
}
