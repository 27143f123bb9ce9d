package hexfield

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"
)

const (
	hoverDuration   = 3
	pointerDuration = 0.25
	leaveDuration   = 0.5
)

var (
	hoverEase   = mustEase("power3.out")
	pointerEase = mustEase("power2.out")
)

// Engine animates a grid of hexagons on a Surface. It scales shapes near the
// pointer, jiggles them continuously and cross-fades their colors.
//
// All timing goes through the Scheduler: the engine registers a frame
// function and requests tweens, it never interpolates on its own. The engine
// is not safe for concurrent use; call it from the goroutine that ticks the
// scheduler.
type Engine struct {
	// Logger receives warnings about unusable surfaces.
	Logger *log.Logger
	// Rand drives palette picks and jiggle targets. Replace it for
	// deterministic runs.
	Rand *rand.Rand

	opts     Options
	sched    *Scheduler
	viewport Viewport

	surface     Surface
	ctx         Context
	bounds      Rect
	hasBounds   bool
	maxViewport float64

	shapes []*Shape
	mouse  Mouse

	frames    []FrameHandle
	listeners []CallbackHandle

	pts []Vec2
}

// NewEngine creates a detached engine. Call Attach, then Start.
func NewEngine(opts Options, sched *Scheduler, vp Viewport) *Engine {
	return &Engine{
		Logger:   log.Default().WithPrefix("hexfield"),
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		opts:     opts,
		sched:    sched,
		viewport: vp,
		pts:      make([]Vec2, 0, 6),
	}
}

// Attach binds the engine to surface, merging opts when non-nil, and lays out
// the grid. A surface without a drawing context leaves the engine inert
// until the next Attach.
func (e *Engine) Attach(surface Surface, opts *PartialOptions) {
	if opts != nil {
		e.opts = e.opts.Merge(*opts)
	}
	e.surface = surface
	e.ctx = nil
	if surface != nil {
		e.ctx = surface.Context()
	}
	if e.ctx == nil {
		e.Logger.Warn("surface has no drawing context, engine is inert")
		e.teardown()
		return
	}
	e.layout()
}

// Start registers the frame function and viewport listeners. It does nothing
// while the engine is inert. Calling Start twice without Stop registers
// everything twice; Stop removes both sets.
func (e *Engine) Start() {
	if e.ctx == nil {
		return
	}
	e.frames = append(e.frames, e.sched.AddFrameFunc(e.render))
	ev := e.viewport.Events()
	e.listeners = append(e.listeners,
		ev.OnResize(e.onResize),
		ev.OnPointerMove(e.onPointerMove),
		ev.OnPointerLeave(e.onPointerLeave),
	)
}

// Stop removes everything Start registered. Running tweens continue.
func (e *Engine) Stop() {
	for _, h := range e.frames {
		h.Remove()
	}
	for _, h := range e.listeners {
		h.Remove()
	}
	e.frames = e.frames[:0]
	e.listeners = e.listeners[:0]
}

// UpdateOptions merges p into the current options. Setting a geometry field
// rebuilds the grid; switching AnimateJiggle restarts per-shape animations.
func (e *Engine) UpdateOptions(p PartialOptions) {
	wasJiggling := e.opts.AnimateJiggle
	e.opts = e.opts.Merge(p)

	if e.opts.AnimateJiggle != wasJiggling && e.ctx != nil {
		for _, s := range e.shapes {
			e.cancelShape(s)
			if e.opts.AnimateJiggle {
				e.startJiggle(s)
			} else {
				s.Jiggle = 1
			}
		}
	}

	if p.AffectsGeometry() && e.ctx != nil {
		e.layout()
	}
}

// Destroy stops the engine, cancels every tween on shapes and the mouse
// proxy, and releases the surface. Destroying twice is harmless.
func (e *Engine) Destroy() {
	e.Stop()
	e.teardown()
	e.surface = nil
	e.ctx = nil
}

// teardown cancels every shape and mouse tween and forgets the grid.
func (e *Engine) teardown() {
	for _, s := range e.shapes {
		e.cancelShape(s)
	}
	e.sched.KillTweensOf(&e.mouse)
	clear(e.shapes)
	e.shapes = e.shapes[:0]
	e.bounds = Rect{}
	e.hasBounds = false
}

// Shapes returns the live shape slice. Callers must not modify it.
func (e *Engine) Shapes() []*Shape { return e.shapes }

// Mouse returns the pointer proxy.
func (e *Engine) Mouse() Mouse { return e.mouse }

// Options returns the current options.
func (e *Engine) Options() Options { return e.opts }

// MaxViewport returns the canvas side length in logical pixels.
func (e *Engine) MaxViewport() float64 { return e.maxViewport }

// Bounds returns the last measured surface rectangle.
func (e *Engine) Bounds() Rect { return e.bounds }

// Attached reports whether the engine has a usable surface.
func (e *Engine) Attached() bool { return e.ctx != nil }

func (e *Engine) pixelRatio() float64 {
	if e.opts.PixelRatio >= 1 {
		return e.opts.PixelRatio
	}
	return math.Max(1, e.viewport.DeviceScaleFactor())
}

func (e *Engine) radius() float64 {
	if e.opts.MouseRadiusDivisor <= 0 {
		return 0
	}
	return e.maxViewport / e.opts.MouseRadiusDivisor
}

// layout sizes the canvas to the viewport and fits the shape slice to the
// grid, reusing existing shapes in place.
func (e *Engine) layout() {
	if e.surface == nil || e.ctx == nil {
		return
	}

	vw, vh := e.viewport.Size()
	maxV := math.Max(vw, vh)
	pr := e.pixelRatio()
	backing := int(math.Floor(maxV * pr))
	e.surface.Resize(backing, backing, maxV, maxV)
	e.ctx.SetScale(pr)

	e.maxViewport = maxV
	e.bounds = e.surface.Bounds()
	e.hasBounds = true
	e.mouse.R = e.radius()

	total := GridTotal(e.opts.Rows, e.opts.Columns)
	for i := total; i < len(e.shapes); i++ {
		e.cancelShape(e.shapes[i])
		e.shapes[i] = nil
	}
	if total < len(e.shapes) {
		e.shapes = e.shapes[:total]
	}

	geo := NewGridGeometry(maxV, e.opts.Columns)
	for i := range total {
		cell := geo.Cell(i)
		if i >= len(e.shapes) {
			e.shapes = append(e.shapes, e.newShape())
		}
		s := e.shapes[i]
		s.X, s.Y = cell.X, cell.Y
		s.Size = geo.HexSize
		s.Row, s.Col = cell.Row, cell.Col
	}

	e.sched.KillTweensOf(&e.mouse)
	c := Rect{Width: maxV, Height: maxV}.Center()
	e.mouse.X, e.mouse.Y = c.X, c.Y
}

func (e *Engine) newShape() *Shape {
	s := &Shape{
		Scale:  e.opts.BaseScale,
		Jiggle: 1,
		Color:  e.randomColor(),
	}
	if e.opts.AnimateJiggle {
		e.startJiggle(s)
	}
	return s
}

func (e *Engine) randomColor() Color {
	if len(e.opts.Colors) == 0 {
		return ColorWhite
	}
	return e.opts.Colors[e.Rand.IntN(len(e.opts.Colors))]
}

// render is the frame function: retarget hover scales and redraw.
func (e *Engine) render(float32) {
	if e.ctx == nil {
		return
	}
	e.ctx.Clear()
	for _, s := range e.shapes {
		d := math.Hypot(e.mouse.X-s.X, e.mouse.Y-s.Y)
		target := HoverScale(d, e.mouse.R, e.opts.BaseScale, e.opts.MinScale)
		e.sched.To(s, &s.Scale, target, hoverDuration, hoverEase)

		e.pts = HexagonPoints(e.pts[:0], s.X, s.Y, s.RenderSize())
		e.ctx.FillPolygon(e.pts, s.FillColor())
	}
}

// recolor starts a transition to a random palette color unless the pick
// equals the current color.
func (e *Engine) recolor(s *Shape) {
	if len(e.opts.Colors) == 0 {
		return
	}
	next := e.opts.Colors[e.Rand.IntN(len(e.opts.Colors))]
	cur := s.FillColor()
	if next == cur {
		return
	}

	if s.transition != nil {
		e.sched.Kill(&s.transition.Progress)
	}
	tr := &colorTransition{From: cur, To: next, interp: Lerp(cur, next)}
	s.transition = tr
	e.sched.Tween(s, &tr.Progress, 0, 1,
		float32(e.opts.ColorTransitionSec),
		easeOr(e.opts.ColorEase, ease.InOutCubic),
		func() {
			if s.transition != tr {
				return
			}
			s.Color = tr.To
			s.transition = nil
		})
}

func (e *Engine) startJiggle(s *Shape) {
	s.Jiggle = 1
	y := e.sched.Yoyo(s, &s.Jiggle, YoyoConfig{
		Duration: float32(e.opts.JiggleDurationSec),
		Ease:     easeOr(e.opts.JiggleEase, ease.InOutSine),
		Target:   e.jiggleTarget,
		OnRepeat: func() {
			if e.opts.JiggleRecolor {
				e.recolor(s)
			}
		},
	})
	y.Seek(float32(e.Rand.Float64() * 99))
}

// jiggleTarget draws from JiggleScaleRange, snapped to 0.001.
func (e *Engine) jiggleTarget() float64 {
	lo, hi := e.opts.JiggleScaleRange[0], e.opts.JiggleScaleRange[1]
	v := lo + e.Rand.Float64()*(hi-lo)
	return math.Round(v*1000) / 1000
}

// cancelShape kills every tween owned by s. An in-flight color transition is
// frozen at its current color.
func (e *Engine) cancelShape(s *Shape) {
	e.sched.KillTweensOf(s)
	if s.transition != nil {
		s.Color = s.FillColor()
		s.transition = nil
	}
}

func (e *Engine) onPointerMove(ev PointerEvent) {
	if e.ctx == nil || !e.hasBounds {
		return
	}
	x := ev.ClientX - e.bounds.X
	y := ev.ClientY - e.bounds.Y
	e.sched.To(&e.mouse, &e.mouse.X, x, pointerDuration, pointerEase)
	e.sched.To(&e.mouse, &e.mouse.Y, y, pointerDuration, pointerEase)
}

func (e *Engine) onPointerLeave() {
	if e.ctx == nil || !e.hasBounds {
		return
	}
	c := Rect{Width: e.maxViewport, Height: e.maxViewport}.Center()
	e.sched.To(&e.mouse, &e.mouse.X, c.X, leaveDuration, pointerEase)
	e.sched.To(&e.mouse, &e.mouse.Y, c.Y, leaveDuration, pointerEase)
}

func (e *Engine) onResize(ResizeEvent) {
	if e.surface == nil || e.ctx == nil {
		return
	}
	vw, vh := e.viewport.Size()
	if cssW, _ := e.surface.CSSSize(); cssW != math.Max(vw, vh) {
		e.layout()
		return
	}
	e.bounds = e.surface.Bounds()
	e.mouse.R = e.radius()
}
