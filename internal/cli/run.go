package cli

import (
	"image/color"

	"github.com/spf13/cobra"

	"github.com/phanxgames/polymesh/ebitensurface"
)

func runCmd(flags *meshFlags) *cobra.Command {
	var (
		title     string
		showStats bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate a mesh in a window",
		Long:  "Opens an Ebitengine window. R rebuilds the mesh with a fade-in, Escape quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.mesh(cmd)
			if err != nil {
				return err
			}
			return ebitensurface.Run(m, ebitensurface.RunConfig{
				Title:      title,
				Background: color.Black,
				ShowStats:  showStats,
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "polymesh", "window title")
	cmd.Flags().BoolVar(&showStats, "stats", false, "show the FPS and draw stats overlay")
	return cmd
}
