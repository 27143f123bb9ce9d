package hexfield

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshSec = 0.5

// fpsOverlay draws the current FPS and TPS in the top-left corner. The text
// is redrawn about twice a second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.img != nil && o.elapsed < fpsRefreshSec {
		return
	}
	o.elapsed = 0
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}
