package hexfield

import "testing"

func TestImageSurfaceResize(t *testing.T) {
	s := NewImageSurface(NewStaticViewport(800, 600))
	if s.Image() != nil {
		t.Fatal("image should be nil before Resize")
	}

	s.Resize(1600, 1600, 800, 800)
	img := s.Image()
	if img == nil {
		t.Fatal("expected backing image")
	}
	if b := img.Bounds(); b.Dx() != 1600 || b.Dy() != 1600 {
		t.Errorf("backing = %dx%d, want 1600x1600", b.Dx(), b.Dy())
	}
	if w, h := s.CSSSize(); w != 800 || h != 800 {
		t.Errorf("css = %vx%v, want 800x800", w, h)
	}

	s.Resize(1600, 1600, 800, 800)
	if s.Image() != img {
		t.Error("same-size Resize should keep the image")
	}

	s.Resize(0, 0, 0, 0)
	if s.Image() != nil {
		t.Error("zero-size Resize should drop the image")
	}
}

func TestImageSurfaceBoundsCentered(t *testing.T) {
	s := NewImageSurface(NewStaticViewport(800, 600))
	s.Resize(800, 800, 800, 800)

	b := s.Bounds()
	want := Rect{X: 0, Y: -100, Width: 800, Height: 800}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
}

func TestImageSurfaceBatchesPolygons(t *testing.T) {
	s := NewImageSurface(NewStaticViewport(100, 100))
	s.Resize(200, 200, 100, 100)
	ctx := s.Context()
	ctx.SetScale(2)

	ctx.Clear()
	ctx.FillPolygon(HexagonPoints(nil, 50, 50, 10), ColorWhite)
	ctx.FillPolygon(HexagonPoints(nil, 20, 20, 10), ColorWhite)
	if s.Pending() != 12 {
		t.Errorf("Pending = %d, want 12", s.Pending())
	}

	s.Image()
	if s.Pending() != 0 {
		t.Errorf("Pending after flush = %d, want 0", s.Pending())
	}

	ctx.FillPolygon(HexagonPoints(nil, 50, 50, 10), ColorWhite)
	ctx.Clear()
	if s.Pending() != 0 {
		t.Error("Clear should discard queued polygons")
	}
}
