package hexfield

import "testing"

func TestDispatcherOrderAndRemove(t *testing.T) {
	var d Dispatcher
	var got []string

	h1 := d.OnPointerMove(func(ev PointerEvent) { got = append(got, "a") })
	d.OnPointerMove(func(ev PointerEvent) { got = append(got, "b") })

	d.DispatchPointerMove(PointerEvent{ClientX: 1, ClientY: 2})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}

	h1.Remove()
	h1.Remove()
	got = nil
	d.DispatchPointerMove(PointerEvent{})
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("after remove got %v, want [b]", got)
	}
	if n := d.Listeners(EventPointerMove); n != 1 {
		t.Errorf("Listeners = %d, want 1", n)
	}
}

func TestDispatcherEventKindsAreIndependent(t *testing.T) {
	var d Dispatcher
	var resized ResizeEvent
	left := 0

	hr := d.OnResize(func(ev ResizeEvent) { resized = ev })
	hl := d.OnPointerLeave(func() { left++ })

	d.DispatchResize(ResizeEvent{Width: 800, Height: 600})
	d.DispatchPointerLeave()

	if resized.Width != 800 || resized.Height != 600 {
		t.Errorf("resize = %+v", resized)
	}
	if left != 1 {
		t.Errorf("left = %d, want 1", left)
	}

	hr.Remove()
	if d.Listeners(EventResize) != 0 || d.Listeners(EventPointerLeave) != 1 {
		t.Error("removing a resize handle affected other kinds")
	}
	hl.Remove()
	if d.Listeners(EventPointerLeave) != 0 {
		t.Error("leave handler not removed")
	}
}

func TestDispatcherRemoveDuringDispatch(t *testing.T) {
	var d Dispatcher
	calls := 0
	var h CallbackHandle
	h = d.OnPointerLeave(func() {
		calls++
		h.Remove()
	})
	d.OnPointerLeave(func() { calls++ })

	d.DispatchPointerLeave()
	d.DispatchPointerLeave()

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestCallbackHandleZeroValue(t *testing.T) {
	var h CallbackHandle
	h.Remove()
}

func TestStaticViewport(t *testing.T) {
	v := NewStaticViewport(800, 600)
	if v.DeviceScaleFactor() != 1 {
		t.Errorf("dsf = %f, want 1", v.DeviceScaleFactor())
	}

	var moves []PointerEvent
	resizes := 0
	v.Events().OnPointerMove(func(ev PointerEvent) { moves = append(moves, ev) })
	v.Events().OnResize(func(ResizeEvent) { resizes++ })

	v.PointerMove(10, 20)
	v.SetSize(1024, 768)

	if len(moves) != 1 || moves[0].ClientX != 10 || moves[0].ClientY != 20 {
		t.Errorf("moves = %+v", moves)
	}
	if w, h := v.Size(); w != 1024 || h != 768 || resizes != 1 {
		t.Errorf("size = %vx%v resizes=%d", w, h, resizes)
	}
}
