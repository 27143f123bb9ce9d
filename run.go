package hexfield

import (
	"fmt"
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Game hosts an Engine in an ebiten window. It implements ebiten.Game: the
// scheduler is ticked from Update, the surface image is composited in Draw.
type Game struct {
	Engine    *Engine
	Scheduler *Scheduler
	Viewport  *WindowViewport
	Surface   *ImageSurface

	// ClearColor fills the window behind the surface.
	ClearColor color.Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowFPS draws an FPS/TPS overlay.
	ShowFPS bool
	// Debug logs per-frame stats at debug level.
	Debug bool
	// ExitOnScriptDone ends the run loop once the test runner finishes.
	ExitOnScriptDone bool

	Logger *log.Logger

	runner          *TestRunner
	screenshotQueue []string
	fps             fpsOverlay
	debugFrame      int
	lastDraw        time.Duration
	quit            atomic.Bool
}

// NewGame creates a window viewport, an image surface and an engine with
// opts, then attaches and starts the engine.
func NewGame(opts Options) *Game {
	logger := log.Default().WithPrefix("hexfield")
	sched := NewScheduler()
	vp := NewWindowViewport()
	surface := NewImageSurface(vp)
	eng := NewEngine(opts, sched, vp)
	eng.Logger = logger

	g := &Game{
		Engine:        eng,
		Scheduler:     sched,
		Viewport:      vp,
		Surface:       surface,
		ClearColor:    color.RGBA{0x0f, 0x0f, 0x1a, 0xff},
		ScreenshotDir: "screenshots",
		Logger:        logger,
	}
	eng.Attach(surface, nil)
	eng.Start()
	g.debugCheckGrid()
	return g
}

// SetTestRunner attaches a script to be stepped every Update.
func (g *Game) SetTestRunner(r *TestRunner) { g.runner = r }

// TestRunner returns the attached script runner, or nil.
func (g *Game) TestRunner() *TestRunner { return g.runner }

// InjectMove queues a synthetic pointer move to (x, y) in window coordinates.
func (g *Game) InjectMove(x, y float64) { g.Viewport.InjectMove(x, y) }

// InjectLeave queues a synthetic pointer leave.
func (g *Game) InjectLeave() { g.Viewport.InjectLeave() }

// PendingInjected returns the number of queued synthetic events.
func (g *Game) PendingInjected() int { return g.Viewport.PendingInjected() }

// InjectSweep queues a straight-line drag of frames moves from (fromX, fromY)
// to (toX, toY), one per frame.
func (g *Game) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	g.Viewport.InjectSweep(fromX, fromY, toX, toY, frames)
}

// UpdateOptions forwards p to the engine.
func (g *Game) UpdateOptions(p PartialOptions) {
	g.Engine.UpdateOptions(p)
	g.debugCheckGrid()
}

// Update polls input and advances one tick.
func (g *Game) Update() error {
	g.Viewport.Poll()
	return g.advance(1 / float64(ebiten.TPS()))
}

// Quit ends the run loop at the next Update. Safe to call from any
// goroutine.
func (g *Game) Quit() { g.quit.Store(true) }

// advance steps the script runner and ticks the scheduler by dt seconds.
func (g *Game) advance(dt float64) error {
	if g.quit.Load() {
		return ebiten.Termination
	}
	if g.runner != nil {
		// Exit one frame after the last step so pending screenshots flush.
		if g.runner.Done() && g.ExitOnScriptDone && len(g.screenshotQueue) == 0 {
			return ebiten.Termination
		}
		g.runner.step(g)
	}

	var t0 time.Time
	if g.Debug {
		t0 = time.Now()
	}
	g.Scheduler.Tick(float32(dt))
	if g.Debug {
		g.debugLog(debugStats{
			tickTime: time.Since(t0),
			drawTime: g.lastDraw,
			shapes:   len(g.Engine.Shapes()),
			tweens:   g.Scheduler.Active(),
			vertices: g.Surface.Pending(),
		})
	}
	if g.ShowFPS {
		g.fps.update(dt)
	}
	return nil
}

// Draw composites the surface onto screen. screen is sized in device
// pixels; see Layout.
func (g *Game) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if g.Debug {
		t0 = time.Now()
	}

	screen.Fill(g.ClearColor)
	if img := g.Surface.Image(); img != nil {
		dsf := g.Viewport.DeviceScaleFactor()
		pr := g.Engine.pixelRatio()
		b := g.Engine.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(dsf/pr, dsf/pr)
		op.GeoM.Translate(b.X*dsf, b.Y*dsf)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, &op)
	}
	if g.ShowFPS {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)

	if g.Debug {
		g.lastDraw = time.Since(t0)
	}
}

// Layout is the integer form of LayoutF. ebiten prefers LayoutF when a
// game implements both.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// LayoutF records the window size in logical pixels and renders at device
// resolution.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.Viewport.Layout(outsideWidth, outsideHeight)
	dsf := g.Viewport.DeviceScaleFactor()
	return outsideWidth * dsf, outsideHeight * dsf
}

// Destroy tears down the engine.
func (g *Game) Destroy() { g.Engine.Destroy() }

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the tick rate. Zero keeps ebiten's default of 60.
	TPS int
}

// Run opens a resizable window and runs g until the window is closed or the
// test runner finishes with ExitOnScriptDone set.
func Run(g *Game, cfg RunConfig) error {
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	defer g.Destroy()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
