package hexfield

// Viewport is the window the surface lives in: its logical size, its device
// scale factor and its input events.
type Viewport interface {
	Size() (w, h float64)
	DeviceScaleFactor() float64
	Events() *Dispatcher
}

// StaticViewport is a viewport whose size and pointer are set directly.
// Events dispatch immediately. Useful headless and in tests.
type StaticViewport struct {
	w, h   float64
	dsf    float64
	events Dispatcher
}

// NewStaticViewport creates a viewport of the given size with a device scale
// factor of 1.
func NewStaticViewport(w, h float64) *StaticViewport {
	return &StaticViewport{w: w, h: h, dsf: 1}
}

func (v *StaticViewport) Size() (w, h float64)       { return v.w, v.h }
func (v *StaticViewport) DeviceScaleFactor() float64 { return v.dsf }
func (v *StaticViewport) Events() *Dispatcher        { return &v.events }

// SetDeviceScaleFactor changes the reported device scale factor. No event is
// dispatched.
func (v *StaticViewport) SetDeviceScaleFactor(f float64) { v.dsf = f }

// SetSize resizes the viewport and dispatches a resize event.
func (v *StaticViewport) SetSize(w, h float64) {
	v.w, v.h = w, h
	v.events.DispatchResize(ResizeEvent{Width: w, Height: h})
}

// PointerMove dispatches a pointer move at client coordinates (x, y).
func (v *StaticViewport) PointerMove(x, y float64) {
	v.events.DispatchPointerMove(PointerEvent{ClientX: x, ClientY: y})
}

// PointerLeave dispatches a pointer leave.
func (v *StaticViewport) PointerLeave() {
	v.events.DispatchPointerLeave()
}
