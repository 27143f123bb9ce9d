package hexfield

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses a CSS-style hex color ("#rgb" or "#rrggbb").
// The returned color is fully opaque.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for package-level palette literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb". Alpha is dropped.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// MarshalText encodes the color as a hex string so palettes round-trip
// through YAML and TOML config files.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes a hex string.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Lerp returns a function interpolating from a to b in RGB space.
// The endpoints are returned exactly at t <= 0 and t >= 1 so that a finished
// interpolation compares equal to its target.
func Lerp(a, b Color) func(t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	return func(t float64) Color {
		switch {
		case t <= 0:
			return a
		case t >= 1:
			return b
		}
		m := ca.BlendRgb(cb, t)
		return Color{R: m.R, G: m.G, B: m.B, A: a.A + (b.A-a.A)*t}
	}
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and polygon vertices.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// EventType identifies a kind of viewport event.
type EventType uint8

const (
	EventResize       EventType = iota // fires when the viewport size changes
	EventPointerMove                   // fires when the pointer moves inside the viewport
	EventPointerLeave                  // fires when the pointer leaves the viewport
)
