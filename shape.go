package hexfield

// colorTransition is an in-flight fill color morph.
type colorTransition struct {
	From, To Color
	Progress float64
	interp   func(t float64) Color
}

// Shape is one hexagon of the grid.
type Shape struct {
	// X and Y are the center in logical pixels.
	X, Y float64
	// Size is the base radius before scaling.
	Size float64
	// Scale is the hover-driven multiplier.
	Scale float64
	// Jiggle is the ambient multiplier.
	Jiggle float64

	Row, Col int

	// Color is the static fill. It is authoritative only while no
	// transition is active.
	Color Color

	transition *colorTransition
}

// FillColor returns the color the shape is drawn with.
func (s *Shape) FillColor() Color {
	if s.transition != nil {
		return s.transition.interp(s.transition.Progress)
	}
	return s.Color
}

// Transitioning reports whether a color transition is in flight.
func (s *Shape) Transitioning() bool { return s.transition != nil }

// Transition returns the in-flight color transition.
func (s *Shape) Transition() (from, to Color, progress float64, ok bool) {
	if s.transition == nil {
		return Color{}, Color{}, 0, false
	}
	tr := s.transition
	return tr.From, tr.To, tr.Progress, true
}

// RenderSize is the radius the shape is drawn at this frame.
func (s *Shape) RenderSize() float64 {
	return s.Size * s.Scale * s.Jiggle
}

// Mouse is the smoothed pointer proxy. X and Y are canvas-local.
type Mouse struct {
	X, Y float64
	// R is the influence radius.
	R float64
}
