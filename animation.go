package hexfield

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const tweenEpsilon = 1e-9

// tween is a single scheduled animation writing to one float64 field.
type tween interface {
	header() *tweenBase
	step(dt float32) (finished bool)
}

type tweenBase struct {
	owner any
	field *float64
	dead  bool
}

func (b *tweenBase) header() *tweenBase { return b }

// propTween eases a field toward a target. The gween tween drives eased
// progress from 0 to 1; the field value is derived from it so the target can
// move without resetting elapsed time:
//
//	v(g) = to + (anchor - to) * (1 - g) / (1 - g0)
//
// where anchor and g0 are the field value and progress at the last retarget.
type propTween struct {
	tweenBase
	progress   *gween.Tween
	left       float32
	fn         ease.TweenFunc
	g, g0      float64
	anchor, to float64
	oneShot    bool
	onComplete func()
}

func newPropTween(owner any, field *float64, to float64, duration float32, fn ease.TweenFunc) *propTween {
	if fn == nil {
		fn = ease.Linear
	}
	return &propTween{
		tweenBase: tweenBase{owner: owner, field: field},
		progress:  gween.New(0, 1, duration, fn),
		left:      duration,
		fn:        fn,
		anchor:    *field,
		to:        to,
	}
}

// retarget points the tween at a new value, keeping elapsed time.
func (t *propTween) retarget(to float64) {
	t.anchor = *t.field
	t.to = to
	if 1-t.g < 1e-6 {
		// Progress is saturated (or overshooting); the remaining curve has no
		// room left, so replay the ease over the time that is left.
		t.progress = gween.New(0, 1, max(t.left, 0), t.fn)
		t.g, t.g0 = 0, 0
		return
	}
	t.g0 = t.g
}

func (t *propTween) step(dt float32) bool {
	t.left -= dt
	g, finished := t.progress.Update(dt)
	if finished {
		*t.field = t.to
		return true
	}
	t.g = float64(g)
	*t.field = t.to + (t.anchor-t.to)*(1-t.g)/(1-t.g0)
	return false
}

// YoyoConfig configures a perpetual back-and-forth tween.
type YoyoConfig struct {
	// Duration of one leg (out or back) in seconds.
	Duration float32
	// Ease is played forward on the way out and time-reversed on the way back.
	Ease ease.TweenFunc
	// Target is evaluated at creation and again at the start of every
	// outbound leg. Nil holds the field at its current value.
	Target func() float64
	// OnRepeat fires at every leg boundary.
	OnRepeat func()
}

// YoyoTween oscillates a field between its value at creation and a target
// that is re-drawn on every outbound leg. It repeats until killed.
type YoyoTween struct {
	tweenBase
	cfg      YoyoConfig
	progress *gween.Tween
	base, to float64
	elapsed  float32
	reverse  bool
}

func (t *YoyoTween) refresh() {
	if t.cfg.Target != nil {
		t.to = t.cfg.Target()
	}
}

func (t *YoyoTween) apply() {
	at := t.elapsed
	if t.reverse {
		at = t.cfg.Duration - t.elapsed
	}
	g, _ := t.progress.Set(at)
	*t.field = t.base + (t.to-t.base)*float64(g)
}

func (t *YoyoTween) step(dt float32) bool {
	if t.cfg.Duration <= 0 {
		*t.field = t.to
		return false
	}
	t.elapsed += dt
	for t.elapsed >= t.cfg.Duration {
		t.elapsed -= t.cfg.Duration
		t.reverse = !t.reverse
		if !t.reverse {
			t.refresh()
		}
		if t.cfg.OnRepeat != nil {
			t.cfg.OnRepeat()
		}
		if t.dead {
			return false
		}
	}
	t.apply()
	return false
}

// Seek jumps to the given time (seconds from creation) without firing
// OnRepeat. Used to desynchronize many yoyos started in the same frame.
func (t *YoyoTween) Seek(at float32) *YoyoTween {
	d := t.cfg.Duration
	if d <= 0 || at <= 0 {
		return t
	}
	legs := math.Floor(float64(at / d))
	t.elapsed = at - float32(legs)*d
	if t.elapsed >= d || t.elapsed < 0 {
		t.elapsed = 0
	}
	t.reverse = int64(legs)%2 == 1
	t.apply()
	return t
}

// Reversed reports whether the tween is on its way back to the base value.
func (t *YoyoTween) Reversed() bool { return t.reverse }

// Target returns the value the current round trip heads toward.
func (t *YoyoTween) Target() float64 { return t.to }

// --- Scheduler ---

type frameFunc struct {
	id uint32
	fn func(dt float32)
}

// FrameHandle allows removing a registered frame callback.
type FrameHandle struct {
	id uint32
	s  *Scheduler
}

// Remove unregisters the frame callback. Removing twice is a no-op.
func (h FrameHandle) Remove() {
	if h.s == nil {
		return
	}
	frames := h.s.frames
	for i := range frames {
		if frames[i].id == h.id {
			copy(frames[i:], frames[i+1:])
			frames[len(frames)-1] = frameFunc{}
			h.s.frames = frames[:len(frames)-1]
			return
		}
	}
}

// Scheduler is the ticker and tween manager the engine animates through.
// Tick advances every tween and then calls each registered frame function.
//
// Tweens are keyed by the field they write: a field has at most one tween.
// Owners group tweens for bulk cancellation and must be comparable
// (typically a pointer).
//
// Scheduler is not safe for concurrent use; drive it from the game loop.
type Scheduler struct {
	tweens   []tween
	byField  map[*float64]tween
	frames   []frameFunc
	frameBuf []frameFunc
	nextID   uint32
	updating bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{byField: make(map[*float64]tween)}
}

// AddFrameFunc registers fn to run once per Tick, after tweens advance.
func (s *Scheduler) AddFrameFunc(fn func(dt float32)) FrameHandle {
	s.nextID++
	s.frames = append(s.frames, frameFunc{id: s.nextID, fn: fn})
	return FrameHandle{id: s.nextID, s: s}
}

// FrameFuncs returns the number of registered frame functions.
func (s *Scheduler) FrameFuncs() int {
	return len(s.frames)
}

// Tick advances all tweens by dt seconds and then runs the frame functions.
func (s *Scheduler) Tick(dt float32) {
	s.update(dt)

	s.frameBuf = append(s.frameBuf[:0], s.frames...)
	for _, f := range s.frameBuf {
		f.fn(dt)
	}
	clear(s.frameBuf)
}

func (s *Scheduler) update(dt float32) {
	// Tweens added by callbacks start on the next tick. Clear from a callback
	// only marks tweens dead; the slice is compacted below.
	s.updating = true
	defer func() { s.updating = false }()
	n := len(s.tweens)
	for i := 0; i < n; i++ {
		t := s.tweens[i]
		if t.header().dead {
			continue
		}
		if !t.step(dt) {
			continue
		}
		s.kill(t)
		if p, ok := t.(*propTween); ok && p.onComplete != nil {
			p.onComplete()
		}
	}

	live := s.tweens[:0]
	for _, t := range s.tweens {
		if !t.header().dead {
			live = append(live, t)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}

func (s *Scheduler) add(t tween) {
	h := t.header()
	if prev, ok := s.byField[h.field]; ok {
		s.kill(prev)
	}
	s.tweens = append(s.tweens, t)
	s.byField[h.field] = t
}

func (s *Scheduler) kill(t tween) {
	h := t.header()
	h.dead = true
	if s.byField[h.field] == t {
		delete(s.byField, h.field)
	}
}

// To eases field toward target without overwriting: while a coalescing tween
// on field is running, an identical target is ignored and a new target is
// adopted without restarting elapsed time. No tween is created when the field
// already holds the target.
func (s *Scheduler) To(owner any, field *float64, target float64, duration float32, fn ease.TweenFunc) {
	if cur, ok := s.byField[field].(*propTween); ok && !cur.oneShot {
		if math.Abs(cur.to-target) > tweenEpsilon {
			cur.retarget(target)
		}
		return
	}
	if _, busy := s.byField[field]; !busy && math.Abs(*field-target) <= tweenEpsilon {
		return
	}
	s.add(newPropTween(owner, field, target, duration, fn))
}

// Tween sets field to from and eases it to to, replacing any tween already
// running on field. onComplete, if non-nil, runs once the field reaches to.
func (s *Scheduler) Tween(owner any, field *float64, from, to float64, duration float32, fn ease.TweenFunc, onComplete func()) {
	if prev, ok := s.byField[field]; ok {
		s.kill(prev)
	}
	*field = from
	t := newPropTween(owner, field, to, duration, fn)
	t.oneShot = true
	t.onComplete = onComplete
	s.add(t)
}

// Yoyo starts a perpetual yoyo tween on field, replacing any tween already
// running on it.
func (s *Scheduler) Yoyo(owner any, field *float64, cfg YoyoConfig) *YoyoTween {
	fn := cfg.Ease
	if fn == nil {
		fn = ease.Linear
	}
	t := &YoyoTween{
		tweenBase: tweenBase{owner: owner, field: field},
		cfg:       cfg,
		progress:  gween.New(0, 1, cfg.Duration, fn),
		base:      *field,
		to:        *field,
	}
	t.refresh()
	s.add(t)
	return t
}

// KillTweensOf cancels every tween registered with owner. Fields keep
// whatever value they had; no completion callbacks fire.
func (s *Scheduler) KillTweensOf(owner any) {
	for _, t := range s.tweens {
		h := t.header()
		if !h.dead && h.owner == owner {
			s.kill(t)
		}
	}
}

// Kill cancels the tween writing field, if any.
func (s *Scheduler) Kill(field *float64) {
	if t, ok := s.byField[field]; ok {
		s.kill(t)
	}
}

// IsTweening reports whether owner has any live tween.
func (s *Scheduler) IsTweening(owner any) bool {
	for _, t := range s.tweens {
		h := t.header()
		if !h.dead && h.owner == owner {
			return true
		}
	}
	return false
}

// Active returns the number of live tweens.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.tweens {
		if !t.header().dead {
			n++
		}
	}
	return n
}

// Clear cancels every tween. Frame functions stay registered.
func (s *Scheduler) Clear() {
	for _, t := range s.tweens {
		t.header().dead = true
	}
	clear(s.byField)
	if s.updating {
		return
	}
	clear(s.tweens)
	s.tweens = s.tweens[:0]
}
