package termsurface

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/polymesh"
)

// RunConfig configures Run.
type RunConfig struct {
	// Refresh is the redraw interval. Zero means 30 Hz.
	Refresh time.Duration
	// ShowStats prints cycle, phase and draw stats on the top row.
	ShowStats bool
}

// viewer owns the terminal loop state. All of its methods run on the
// LoopFrames goroutine.
type viewer struct {
	screen  tcell.Screen
	surface *Surface
	mesh    *polymesh.Mesh
	loop    *polymesh.LoopFrames
	cfg     RunConfig
	events  chan tcell.Event
	cancel  context.CancelFunc
	stats   polymesh.FrameStats
}

// Run animates mesh on an initialized screen until ctx is done or the user
// quits with q, Escape or Ctrl-C. r refreshes the mesh and p pauses or
// resumes it. The caller owns the screen and calls Fini afterwards.
func Run(ctx context.Context, screen tcell.Screen, mesh *polymesh.Mesh, cfg RunConfig) error {
	if cfg.Refresh <= 0 {
		cfg.Refresh = time.Second / 30
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mc := mesh.Config()
	v := &viewer{
		screen:  screen,
		surface: New(screen, mc.Width, mc.Height),
		mesh:    mesh,
		loop:    polymesh.NewLoopFrames(cfg.Refresh),
		cfg:     cfg,
		events:  make(chan tcell.Event, 16),
		cancel:  cancel,
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case v.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	mesh.Start(v.loop)
	defer mesh.Stop()
	v.loop.RequestFrame(v.frame)

	err := v.loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// frame drains pending input, redraws and schedules itself again.
func (v *viewer) frame(_ time.Duration) {
drain:
	for {
		select {
		case ev := <-v.events:
			if !v.handle(ev) {
				v.cancel()
				return
			}
		default:
			break drain
		}
	}
	v.draw()
	v.loop.RequestFrame(v.frame)
}

// handle applies one event and reports whether the loop should continue.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'r', 'R':
			v.mesh.Refresh()
		case 'p', 'P':
			if v.mesh.Scheduler().Running() {
				v.mesh.Stop()
			} else {
				v.mesh.Start(v.loop)
			}
		}
	case *tcell.EventResize:
		v.surface.Resize()
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	v.stats = v.mesh.Draw(v.surface)
	if v.cfg.ShowStats {
		v.surface.DrawText(polymesh.Vec2{}, statusLine(v.mesh, v.stats), polymesh.ColorWhite)
	}
	v.surface.Show()
}

func statusLine(m *polymesh.Mesh, stats polymesh.FrameStats) string {
	sched := m.Scheduler()
	state := sched.Phase().String()
	if !sched.Running() {
		state = "paused"
	}
	return fmt.Sprintf(" cycle %d %s | cmds %d | culled %d ", sched.Cycle(), state, stats.Commands, stats.Culled)
}
