package ebitensurface

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/polymesh"
)

// statsRefresh is how often the overlay text is re-rendered, in seconds.
const statsRefresh = 0.5

// statsOverlay displays FPS, TPS and the last frame's draw stats in the
// top-left corner. It re-renders its image every ~0.5 seconds.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newStatsOverlay() *statsOverlay {
	// 150x64 fits four debug-font lines.
	return &statsOverlay{img: ebiten.NewImage(150, 64), elapsed: statsRefresh}
}

func (o *statsOverlay) update(dt float64, stats polymesh.FrameStats) {
	o.elapsed += dt
	if o.elapsed < statsRefresh {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), stats))
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

func overlayText(fps, tps float64, stats polymesh.FrameStats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nCMDS: %d\nCULLED: %d", fps, tps, stats.Commands, stats.Culled)
}
