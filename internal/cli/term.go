package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/polymesh"
	"github.com/phanxgames/polymesh/termsurface"
)

// newScreen opens the terminal. Tests replace it with a simulation screen.
var newScreen = func() (tcell.Screen, error) {
	return tcell.NewScreen()
}

func termCmd(flags *meshFlags) *cobra.Command {
	var (
		fps       float64
		duration  time.Duration
		showStats bool
	)
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Animate a mesh in the terminal",
		Long: "Draws the mesh with half-block characters, two pixels per cell.\n" +
			"q or Escape quits, r rebuilds the mesh, p pauses.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			m, err := polymesh.NewMesh(cfg)
			if err != nil {
				return fmt.Errorf("build mesh: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return runTerm(ctx, m, termsurface.RunConfig{
				Refresh:   time.Duration(float64(time.Second) / max(1, fps)),
				ShowStats: showStats,
			})
		},
	}
	cmd.Flags().Float64Var(&fps, "refresh", 30, "terminal redraws per second")
	cmd.Flags().DurationVar(&duration, "duration", 0, "exit after this long (0 runs until quit)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "show cycle and draw stats on the top row")
	return cmd
}

func runTerm(ctx context.Context, m *polymesh.Mesh, cfg termsurface.RunConfig) error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	return termsurface.Run(ctx, screen, m, cfg)
}
