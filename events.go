package hexfield

import "slices"

// PointerEvent carries a pointer position in viewport (client) coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
}

// ResizeEvent carries the new viewport size in logical pixels.
type ResizeEvent struct {
	Width, Height float64
}

type resizeHandler struct {
	id uint32
	fn func(ResizeEvent)
}

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type leaveHandler struct {
	id uint32
	fn func()
}

// Dispatcher holds viewport event listeners. Handlers run synchronously in
// registration order; a handler may remove itself or others while running.
type Dispatcher struct {
	resize       []resizeHandler
	pointerMove  []pointerHandler
	pointerLeave []leaveHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	d     *Dispatcher
	event EventType
}

// Remove unregisters this listener so it no longer fires.
// Removing an already-removed handle is a no-op.
func (h CallbackHandle) Remove() {
	if h.d == nil {
		return
	}
	switch h.event {
	case EventResize:
		h.d.resize = removeHandler(h.d.resize, func(r resizeHandler) bool { return r.id == h.id })
	case EventPointerMove:
		h.d.pointerMove = removeHandler(h.d.pointerMove, func(p pointerHandler) bool { return p.id == h.id })
	case EventPointerLeave:
		h.d.pointerLeave = removeHandler(h.d.pointerLeave, func(l leaveHandler) bool { return l.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnResize registers fn for viewport size changes.
func (d *Dispatcher) OnResize(fn func(ResizeEvent)) CallbackHandle {
	d.nextID++
	d.resize = append(d.resize, resizeHandler{id: d.nextID, fn: fn})
	return CallbackHandle{id: d.nextID, d: d, event: EventResize}
}

// OnPointerMove registers fn for pointer movement inside the viewport.
func (d *Dispatcher) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	d.nextID++
	d.pointerMove = append(d.pointerMove, pointerHandler{id: d.nextID, fn: fn})
	return CallbackHandle{id: d.nextID, d: d, event: EventPointerMove}
}

// OnPointerLeave registers fn for the pointer leaving the viewport.
func (d *Dispatcher) OnPointerLeave(fn func()) CallbackHandle {
	d.nextID++
	d.pointerLeave = append(d.pointerLeave, leaveHandler{id: d.nextID, fn: fn})
	return CallbackHandle{id: d.nextID, d: d, event: EventPointerLeave}
}

// Listeners returns the number of handlers registered for event.
func (d *Dispatcher) Listeners(event EventType) int {
	switch event {
	case EventResize:
		return len(d.resize)
	case EventPointerMove:
		return len(d.pointerMove)
	case EventPointerLeave:
		return len(d.pointerLeave)
	}
	return 0
}

// DispatchResize notifies resize listeners.
func (d *Dispatcher) DispatchResize(ev ResizeEvent) {
	for _, h := range slices.Clone(d.resize) {
		h.fn(ev)
	}
}

// DispatchPointerMove notifies pointer move listeners.
func (d *Dispatcher) DispatchPointerMove(ev PointerEvent) {
	for _, h := range slices.Clone(d.pointerMove) {
		h.fn(ev)
	}
}

// DispatchPointerLeave notifies pointer leave listeners.
func (d *Dispatcher) DispatchPointerLeave() {
	for _, h := range slices.Clone(d.pointerLeave) {
		h.fn()
	}
}
