package hexfield

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestSchedulerToReachesTarget(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0

	s.To(owner, &v, 10, 1, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	s.Tick(0.5)
	if !approx(v, 5) {
		t.Errorf("v = %f, want 5", v)
	}
	s.Tick(0.5)
	if v != 10 {
		t.Errorf("v = %f, want 10", v)
	}
	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0 after completion", s.Active())
	}
}

func TestSchedulerToSameTargetKeepsElapsed(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0

	s.To(owner, &v, 10, 1, ease.Linear)
	s.Tick(0.5)
	s.To(owner, &v, 10, 1, ease.Linear)
	s.To(owner, &v, 10, 1, ease.Linear)
	s.Tick(0.5)

	if v != 10 {
		t.Errorf("v = %f, want 10 (repeated request must not restart)", v)
	}
	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0", s.Active())
	}
}

func TestSchedulerToRetarget(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0

	s.To(owner, &v, 10, 1, ease.Linear)
	s.Tick(0.5)

	s.To(owner, &v, 20, 1, ease.Linear)
	if !approx(v, 5) {
		t.Fatalf("retarget moved value to %f, want 5", v)
	}
	if s.Active() != 1 {
		t.Fatalf("Active = %d, want 1 (coalesced)", s.Active())
	}

	s.Tick(0.25)
	// g=0.75, g0=0.5: 20 + (5-20) * 0.25/0.5
	if !approx(v, 12.5) {
		t.Errorf("v = %f, want 12.5", v)
	}
	s.Tick(0.25)
	if v != 20 {
		t.Errorf("v = %f, want 20", v)
	}
}

func TestSchedulerToAtTargetCreatesNothing(t *testing.T) {
	s := NewScheduler()
	v := 3.0
	s.To(&v, &v, 3, 1, ease.Linear)
	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0", s.Active())
	}
}

func TestSchedulerTweenOverwrites(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	p := 0.0
	first, second := 0, 0

	s.Tween(owner, &p, 0, 1, 1, ease.Linear, func() { first++ })
	s.Tick(0.5)
	if !approx(p, 0.5) {
		t.Fatalf("p = %f, want 0.5", p)
	}

	s.Tween(owner, &p, 0, 1, 1, ease.Linear, func() { second++ })
	if p != 0 {
		t.Errorf("p = %f, want 0 after restart", p)
	}
	if s.Active() != 1 {
		t.Errorf("Active = %d, want 1", s.Active())
	}

	s.Tick(0.5)
	s.Tick(0.5)
	if first != 0 || second != 1 {
		t.Errorf("completions = %d/%d, want 0/1", first, second)
	}
	if p != 1 {
		t.Errorf("p = %f, want 1", p)
	}
}

func TestSchedulerToReplacesOneShot(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0
	done := false

	s.Tween(owner, &v, 0, 1, 1, ease.Linear, func() { done = true })
	s.To(owner, &v, 5, 1, ease.Linear)
	s.Tick(0.5)
	s.Tick(0.5)

	if done {
		t.Error("replaced one-shot tween should not complete")
	}
	if v != 5 {
		t.Errorf("v = %f, want 5", v)
	}
}

func TestSchedulerKillTweensOf(t *testing.T) {
	s := NewScheduler()
	a, b := new(int), new(int)
	va, vb := 0.0, 0.0

	s.To(a, &va, 10, 1, ease.Linear)
	s.To(b, &vb, 10, 1, ease.Linear)
	s.Tick(0.5)
	s.KillTweensOf(a)

	if s.IsTweening(a) {
		t.Error("a should have no tweens after kill")
	}
	if !s.IsTweening(b) {
		t.Error("b should still be tweening")
	}

	s.Tick(0.5)
	if !approx(va, 5) {
		t.Errorf("killed field moved to %f, want 5", va)
	}
	if vb != 10 {
		t.Errorf("vb = %f, want 10", vb)
	}
}

func TestSchedulerKillSkipsOnComplete(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0
	called := false

	s.Tween(owner, &v, 0, 1, 1, ease.Linear, func() { called = true })
	s.KillTweensOf(owner)
	s.Tick(1)

	if called {
		t.Error("onComplete fired for killed tween")
	}
}

func TestSchedulerFrameFuncOrder(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0
	var order []string
	var seen float64

	s.To(owner, &v, 10, 1, ease.Linear)
	s.AddFrameFunc(func(float32) {
		order = append(order, "a")
		seen = v
	})
	s.AddFrameFunc(func(float32) { order = append(order, "b") })

	s.Tick(0.5)

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}
	if !approx(seen, 5) {
		t.Errorf("frame func saw %f, want 5 (tweens advance first)", seen)
	}
}

func TestFrameHandleRemove(t *testing.T) {
	s := NewScheduler()
	calls := 0
	h := s.AddFrameFunc(func(float32) { calls++ })
	s.AddFrameFunc(func(float32) {})

	s.Tick(0.1)
	h.Remove()
	h.Remove()
	s.Tick(0.1)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.FrameFuncs() != 1 {
		t.Errorf("FrameFuncs = %d, want 1", s.FrameFuncs())
	}

	var zero FrameHandle
	zero.Remove()
}

func TestFrameFuncRemovedDuringTick(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var h FrameHandle
	s.AddFrameFunc(func(float32) { h.Remove() })
	h = s.AddFrameFunc(func(float32) { calls++ })

	s.Tick(0.1)
	s.Tick(0.1)

	// The removal lands after the snapshot for the first tick was taken.
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSchedulerTweenAddedFromCallback(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	a, b := 0.0, 0.0

	s.Tween(owner, &a, 0, 1, 0.5, ease.Linear, func() {
		s.To(owner, &b, 10, 1, ease.Linear)
	})
	s.Tick(0.5)

	if s.Active() != 1 {
		t.Fatalf("Active = %d, want 1", s.Active())
	}
	if b != 0 {
		t.Errorf("b = %f, want 0 (new tweens start next tick)", b)
	}
	s.Tick(0.5)
	if !approx(b, 5) {
		t.Errorf("b = %f, want 5", b)
	}
}

func TestYoyoDirectionAndRefresh(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 1.0
	targets := []float64{2, 3}
	drawn := 0
	repeats := 0

	y := s.Yoyo(owner, &v, YoyoConfig{
		Duration: 1,
		Ease:     ease.Linear,
		Target: func() float64 {
			tg := targets[drawn]
			drawn++
			return tg
		},
		OnRepeat: func() { repeats++ },
	})
	if y.Target() != 2 {
		t.Fatalf("Target = %f, want 2", y.Target())
	}

	s.Tick(0.5)
	if !approx(v, 1.5) {
		t.Errorf("out leg: v = %f, want 1.5", v)
	}

	s.Tick(0.5)
	if !y.Reversed() || repeats != 1 {
		t.Errorf("after first leg: reversed=%v repeats=%d", y.Reversed(), repeats)
	}
	if !approx(v, 2) {
		t.Errorf("at turn: v = %f, want 2", v)
	}

	s.Tick(0.5)
	if !approx(v, 1.5) {
		t.Errorf("back leg: v = %f, want 1.5", v)
	}

	s.Tick(0.5)
	if y.Reversed() || repeats != 2 {
		t.Errorf("after second leg: reversed=%v repeats=%d", y.Reversed(), repeats)
	}
	if drawn != 2 || y.Target() != 3 {
		t.Errorf("drawn=%d target=%f, want fresh target 3", drawn, y.Target())
	}
	if !approx(v, 1) {
		t.Errorf("at base: v = %f, want 1", v)
	}

	s.Tick(0.5)
	if !approx(v, 2) {
		t.Errorf("second out leg: v = %f, want 2", v)
	}
}

func TestYoyoBackLegReversesEase(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Yoyo(&v, &v, YoyoConfig{
		Duration: 1,
		Ease:     ease.InQuad,
		Target:   func() float64 { return 1 },
	})

	s.Tick(0.25)
	out := v
	s.Tick(0.75)
	s.Tick(0.75)
	back := v

	// Time-reversed: 0.25s before the end of the back leg mirrors 0.25s into
	// the out leg.
	if !approx(out, back) {
		t.Errorf("out=%f back=%f, want equal", out, back)
	}
}

func TestYoyoSeekDoesNotFire(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	repeats := 0
	y := s.Yoyo(&v, &v, YoyoConfig{
		Duration: 1,
		Ease:     ease.Linear,
		Target:   func() float64 { return 4 },
		OnRepeat: func() { repeats++ },
	})

	y.Seek(2.5)
	if y.Reversed() {
		t.Error("Seek(2.5) should land on an outbound leg")
	}
	if !approx(v, 2) {
		t.Errorf("v = %f, want 2", v)
	}

	y.Seek(1.5)
	if !y.Reversed() {
		t.Error("Seek(1.5) should land on a back leg")
	}
	if !approx(v, 2) {
		t.Errorf("v = %f, want 2", v)
	}
	if repeats != 0 {
		t.Errorf("repeats = %d, want 0", repeats)
	}
}

func TestYoyoKilledFromOnRepeat(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0
	s.Yoyo(owner, &v, YoyoConfig{
		Duration: 1,
		Ease:     ease.Linear,
		Target:   func() float64 { return 1 },
		OnRepeat: func() { s.KillTweensOf(owner) },
	})

	s.Tick(1)
	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0", s.Active())
	}
}

func TestSchedulerClearFromCallback(t *testing.T) {
	s := NewScheduler()
	a, b, c := 0.0, 0.0, 0.0
	s.Tween(&a, &a, 0, 1, 0.1, ease.Linear, func() {
		s.Clear()
		s.To(&c, &c, 1, 1, ease.Linear)
	})
	s.To(&b, &b, 1, 1, ease.Linear)

	s.Tick(0.2)

	if b != 0 {
		t.Errorf("b = %v, want 0 (cleared before it stepped)", b)
	}
	if s.Active() != 1 || !s.IsTweening(&c) {
		t.Errorf("Active = %d, want only the tween added after Clear", s.Active())
	}
	s.Tick(0.5)
	if c != 0.5 {
		t.Errorf("c = %v, want 0.5", c)
	}
}

func TestToRetargetAfterOvershootKeepsDuration(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	v := 0.0
	s.To(owner, &v, 1, 1, ease.OutBack)
	s.Tick(0.7)
	if v <= 1 {
		t.Fatalf("v = %v, want overshoot past 1", v)
	}

	s.To(owner, &v, 2, 1, ease.OutBack)
	s.Tick(0.31)

	if v != 2 || s.Active() != 0 {
		t.Errorf("v = %v active = %d, want 2 and finished", v, s.Active())
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	a, b := 0.0, 0.0
	s.To(&a, &a, 1, 1, ease.Linear)
	s.Yoyo(&b, &b, YoyoConfig{Duration: 1, Target: func() float64 { return 1 }})
	s.AddFrameFunc(func(float32) {})

	s.Clear()

	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0", s.Active())
	}
	if s.FrameFuncs() != 1 {
		t.Errorf("FrameFuncs = %d, want 1", s.FrameFuncs())
	}
	s.To(&a, &a, 1, 1, ease.Linear)
	if s.Active() != 1 {
		t.Errorf("Active = %d after Clear+To, want 1", s.Active())
	}
}

func TestSchedulerTickZeroAlloc(t *testing.T) {
	s := NewScheduler()
	vals := make([]float64, 32)
	for i := range vals {
		s.Yoyo(&vals[i], &vals[i], YoyoConfig{Duration: 1, Ease: ease.InOutSine})
	}
	s.AddFrameFunc(func(float32) {})

	allocs := testing.AllocsPerRun(100, func() {
		s.Tick(1.0 / 60)
	})
	if allocs > 0 {
		t.Errorf("Tick allocated %.0f times, want 0", allocs)
	}
}

func TestSchedulerKillField(t *testing.T) {
	s := NewScheduler()
	owner := new(int)
	a, b := 0.0, 0.0
	s.To(owner, &a, 1, 1, ease.Linear)
	s.To(owner, &b, 1, 1, ease.Linear)

	s.Kill(&a)
	s.Kill(&a)
	s.Tick(0.5)

	if a != 0 {
		t.Errorf("a = %f, want 0 after Kill", a)
	}
	if !approx(b, 0.5) {
		t.Errorf("b = %f, want 0.5", b)
	}
}
