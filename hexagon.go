package hexfield

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// HexagonPoints appends the six vertices of a regular hexagon centered at
// (cx, cy) to dst. Vertices start at angle 0 and advance by 60°.
func HexagonPoints(dst []Vec2, cx, cy, radius float64) []Vec2 {
	for i := range 6 {
		a := float64(i) * math.Pi / 3
		dst = append(dst, Vec2{
			X: cx + radius*math.Cos(a),
			Y: cy + radius*math.Sin(a),
		})
	}
	return dst
}

// appendPolygonFan appends a solid-color triangle fan for a convex polygon to
// verts/inds, scaling every point by k. Vertex colors are premultiplied and
// sample the center of a white pixel. Polygons with fewer than three points
// are skipped.
func appendPolygonFan(verts []ebiten.Vertex, inds []uint32, points []Vec2, k float64, c Color) ([]ebiten.Vertex, []uint32) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}

	a := clamp01(c.A)
	r := float32(clamp01(c.R) * a)
	g := float32(clamp01(c.G) * a)
	b := float32(clamp01(c.B) * a)

	base := uint32(len(verts))
	for _, p := range points {
		verts = append(verts, ebiten.Vertex{
			DstX:   float32(p.X * k),
			DstY:   float32(p.Y * k),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: float32(a),
		})
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds = append(inds, base, base+uint32(i+1), base+uint32(i+2))
	}
	return verts, inds
}
