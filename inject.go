package hexfield

// syntheticPointerEvent is a single injected pointer event in viewport
// coordinates. A leave event ignores the coordinates.
type syntheticPointerEvent struct {
	x, y  float64
	leave bool
}

// InjectMove queues a pointer move to (x, y). The event is consumed by the
// next Poll, in place of the real cursor.
func (v *WindowViewport) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues the pointer leaving the window.
func (v *WindowViewport) InjectLeave() {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY), one move per frame. The sequence consumes `frames` frames,
// minimum 2 (start and end).
func (v *WindowViewport) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := range frames {
		t := float64(i) / float64(frames-1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjected returns the number of queued synthetic events.
func (v *WindowViewport) PendingInjected() int { return len(v.injectQueue) }

// processInjectedInput pops one event from the inject queue and dispatches
// it. Returns true if an event was consumed (real cursor input is skipped).
func (v *WindowViewport) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if evt.leave {
		v.track(0, 0, false)
	} else {
		// Force dispatch even if the position repeats.
		v.hovering = false
		v.track(evt.x, evt.y, true)
	}
	return true
}
