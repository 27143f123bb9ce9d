package hexfield

import "github.com/hajimehoshi/ebiten/v2"

// WindowViewport is the ebiten window as a Viewport. Game feeds it the
// outside size from Layout and calls Poll once per update; Poll turns cursor
// position and focus changes into pointer events.
type WindowViewport struct {
	w, h   float64
	events Dispatcher

	injectQueue []syntheticPointerEvent
	hovering    bool
	lastX       float64
	lastY       float64
}

// NewWindowViewport creates a window viewport. Its size is unknown until the
// first Layout.
func NewWindowViewport() *WindowViewport {
	return &WindowViewport{}
}

func (v *WindowViewport) Size() (w, h float64) { return v.w, v.h }
func (v *WindowViewport) Events() *Dispatcher  { return &v.events }

// DeviceScaleFactor returns the scale factor of the window's monitor.
func (v *WindowViewport) DeviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// Layout records the outside size and dispatches a resize when it changed.
func (v *WindowViewport) Layout(outsideW, outsideH float64) {
	if outsideW == v.w && outsideH == v.h {
		return
	}
	v.w, v.h = outsideW, outsideH
	v.events.DispatchResize(ResizeEvent{Width: outsideW, Height: outsideH})
}

// Poll dispatches at most one pointer event. Injected events take priority
// over the real cursor.
func (v *WindowViewport) Poll() {
	if v.processInjectedInput() {
		return
	}

	// The screen is laid out in device pixels.
	dsf := v.DeviceScaleFactor()
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/dsf, float64(cy)/dsf
	inside := ebiten.IsFocused() && Rect{Width: v.w, Height: v.h}.Contains(x, y)
	v.track(x, y, inside)
}

// track turns a sampled pointer state into move/leave events.
func (v *WindowViewport) track(x, y float64, inside bool) {
	if !inside {
		if v.hovering {
			v.hovering = false
			v.events.DispatchPointerLeave()
		}
		return
	}
	if v.hovering && x == v.lastX && y == v.lastY {
		return
	}
	v.hovering = true
	v.lastX, v.lastY = x, y
	v.events.DispatchPointerMove(PointerEvent{ClientX: x, ClientY: y})
}
