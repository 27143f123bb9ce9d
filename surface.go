package hexfield

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Context is the 2D drawing context of a Surface. Coordinates passed to
// FillPolygon are logical pixels; the context multiplies them by the scale
// set with SetScale.
type Context interface {
	SetScale(k float64)
	Clear()
	FillPolygon(points []Vec2, c Color)
}

// Surface is a drawable canvas the engine attaches to.
type Surface interface {
	// Context returns the drawing context, or nil if the surface cannot be
	// drawn to.
	Context() Context
	// Resize sets the backing store size in device pixels and the displayed
	// size in logical pixels.
	Resize(backingW, backingH int, cssW, cssH float64)
	// CSSSize returns the displayed size in logical pixels.
	CSSSize() (w, h float64)
	// Bounds returns the surface rectangle in viewport coordinates.
	Bounds() Rect
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// ImageSurface is a Surface backed by an ebiten image. It is displayed
// centered in its viewport, so its bounds may have a negative origin when
// it is larger than the viewport along one axis.
//
// Filled polygons are batched and submitted in a single DrawTriangles32 call
// when Image is called.
type ImageSurface struct {
	viewport   Viewport
	img        *ebiten.Image
	cssW, cssH float64
	scale      float64

	pendingClear bool
	verts        []ebiten.Vertex
	inds         []uint32
}

// NewImageSurface creates an empty surface centered in vp.
func NewImageSurface(vp Viewport) *ImageSurface {
	return &ImageSurface{viewport: vp, scale: 1}
}

// Context returns the surface itself.
func (s *ImageSurface) Context() Context { return s }

// Resize reallocates the backing image when its size changes.
func (s *ImageSurface) Resize(backingW, backingH int, cssW, cssH float64) {
	s.cssW, s.cssH = cssW, cssH
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == backingW && b.Dy() == backingH {
			return
		}
		s.img.Deallocate()
		s.img = nil
	}
	if backingW > 0 && backingH > 0 {
		s.img = ebiten.NewImage(backingW, backingH)
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// CSSSize returns the displayed size in logical pixels.
func (s *ImageSurface) CSSSize() (w, h float64) { return s.cssW, s.cssH }

// Bounds returns the surface rectangle centered in the viewport.
func (s *ImageSurface) Bounds() Rect {
	var vw, vh float64
	if s.viewport != nil {
		vw, vh = s.viewport.Size()
	}
	return Rect{
		X:      (vw - s.cssW) / 2,
		Y:      (vh - s.cssH) / 2,
		Width:  s.cssW,
		Height: s.cssH,
	}
}

// SetScale sets the logical-to-device pixel multiplier.
func (s *ImageSurface) SetScale(k float64) { s.scale = k }

// Clear discards queued polygons and clears the image on the next flush.
func (s *ImageSurface) Clear() {
	s.pendingClear = true
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// FillPolygon queues a filled convex polygon.
func (s *ImageSurface) FillPolygon(points []Vec2, c Color) {
	s.verts, s.inds = appendPolygonFan(s.verts, s.inds, points, s.scale, c)
}

// Pending returns the number of queued vertices.
func (s *ImageSurface) Pending() int { return len(s.verts) }

// Image flushes queued drawing and returns the backing image, or nil before
// the first Resize.
func (s *ImageSurface) Image() *ebiten.Image {
	if s.img == nil {
		return nil
	}
	if s.pendingClear {
		s.img.Clear()
		s.pendingClear = false
	}
	if len(s.verts) > 0 {
		var op ebiten.DrawTrianglesOptions
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		op.AntiAlias = true
		s.img.DrawTriangles32(s.verts, s.inds, ensureWhitePixel(), &op)
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
	}
	return s.img
}
