package ebitensurface

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/polymesh"
)

// refreshFade is how long a mesh fades in after a keyboard refresh, in
// seconds.
const refreshFade = 0.6

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// WindowWidth and WindowHeight set the window size. Zero uses the mesh
	// canvas size.
	WindowWidth  int
	WindowHeight int
	// Background is drawn under the mesh. Nil leaves the screen black.
	Background color.Color
	// ShowStats draws the FPS and draw-stats overlay.
	ShowStats bool
}

// Game is an ebiten.Game that renders one mesh. It is also the mesh's
// polymesh.FrameSource: pending frame requests fire once per Update with
// the time since the first Update.
//
// Keys: R refreshes the mesh with a fade-in, Escape quits.
type Game struct {
	*polymesh.ManualFrames

	mesh    *polymesh.Mesh
	surface *Surface
	cfg     RunConfig
	overlay *statsOverlay
	fade    *polymesh.Fade
	stats   polymesh.FrameStats

	start   time.Time
	started bool
}

// NewGame returns a game drawing mesh. The caller starts the mesh on the
// returned game.
func NewGame(mesh *polymesh.Mesh, cfg RunConfig) *Game {
	g := &Game{
		ManualFrames: polymesh.NewManualFrames(),
		mesh:         mesh,
		surface:      New(nil),
		cfg:          cfg,
	}
	g.surface.Background = cfg.Background
	if cfg.ShowStats {
		g.overlay = newStatsOverlay()
	}
	return g
}

// Mesh returns the mesh the game draws.
func (g *Game) Mesh() *polymesh.Mesh {
	return g.mesh
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.refresh()
	}
	if !g.started {
		g.start = time.Now()
		g.started = true
	}
	g.advance(time.Since(g.start), 1/float64(ebiten.TPS()))
	return nil
}

// advance fires pending frames at now and steps the fade and overlay by dt
// seconds.
func (g *Game) advance(now time.Duration, dt float64) {
	if g.fade != nil {
		g.fade.Update(float32(dt))
		if g.fade.Done {
			g.fade = nil
		}
	}
	g.Fire(now)
	if g.overlay != nil {
		g.overlay.update(dt, g.stats)
	}
}

// refresh rebuilds the mesh and fades it in from transparent.
func (g *Game) refresh() {
	g.mesh.Refresh()
	g.mesh.SetAlpha(0)
	g.fade = g.mesh.FadeTo(1, refreshFade, nil)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.stats = g.mesh.Draw(g.surface)
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is the mesh canvas.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.mesh.Config()
	return max(1, int(cfg.Width)), max(1, int(cfg.Height))
}

// Run opens a window and animates mesh until the window closes or Escape is
// pressed.
func Run(mesh *polymesh.Mesh, cfg RunConfig) error {
	g := NewGame(mesh, cfg)
	w, h := g.Layout(0, 0)
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		w, h = cfg.WindowWidth, cfg.WindowHeight
	}
	title := cfg.Title
	if title == "" {
		title = "polymesh"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	mesh.Start(g)
	defer mesh.Stop()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
