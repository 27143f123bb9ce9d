package hexfield

import "time"

// debugStats holds per-frame timing and draw metrics.
// Only populated when Game.Debug is true.
type debugStats struct {
	tickTime time.Duration
	drawTime time.Duration
	shapes   int
	tweens   int
	vertices int
}

// debugMaxShapes is the grid size above which a warning is logged.
const debugMaxShapes = 2000

// debugLogInterval limits how often frame stats are logged, in frames.
const debugLogInterval = 60

// debugLog logs frame stats at debug level every debugLogInterval frames.
func (g *Game) debugLog(stats debugStats) {
	if !g.Debug {
		return
	}
	g.debugFrame++
	if g.debugFrame%debugLogInterval != 0 {
		return
	}
	g.Logger.Debug("frame",
		"tick", stats.tickTime,
		"draw", stats.drawTime,
		"shapes", stats.shapes,
		"tweens", stats.tweens,
		"vertices", stats.vertices,
	)
}

// debugCheckGrid warns when the configured grid is large enough to hurt
// frame times.
func (g *Game) debugCheckGrid() {
	o := g.Engine.Options()
	if n := GridTotal(o.Rows, o.Columns); n > debugMaxShapes {
		g.Logger.Warn("large grid", "shapes", n, "threshold", debugMaxShapes)
	}
}
