package hexfield

import "math"

// tan30 is tan(30°); rows are spaced hexSize/tan30 apart so they interlock.
var tan30 = math.Tan(math.Pi / 6)

// Cell is the computed placement of one grid index.
type Cell struct {
	X, Y     float64
	Row, Col int
}

// GridGeometry holds the layout constants derived from the canvas size.
type GridGeometry struct {
	Columns  int
	HexSize  float64
	VSpacing float64
}

// NewGridGeometry computes the geometry of a square canvas of side maxViewport
// split into the given number of columns.
func NewGridGeometry(maxViewport float64, columns int) GridGeometry {
	hex := maxViewport / float64(columns+1)
	return GridGeometry{
		Columns:  columns,
		HexSize:  hex,
		VSpacing: hex / tan30,
	}
}

// Cell returns the placement of linear index i. Odd columns are pushed down
// by half a row.
func (g GridGeometry) Cell(i int) Cell {
	row := i / g.Columns
	col := i % g.Columns
	return Cell{
		X:   float64(col)*g.HexSize*1.5 + g.HexSize*0.5,
		Y:   float64(row)*g.VSpacing + float64(col%2)*(g.VSpacing/2) + g.HexSize*0.5,
		Row: row,
		Col: col,
	}
}

// GridTotal returns the number of cells of a rows x columns grid. Degenerate
// dimensions yield zero.
func GridTotal(rows, columns int) int {
	if rows <= 0 || columns <= 0 {
		return 0
	}
	return rows * columns
}

// HoverScale returns the target scale of a shape at distance d from the
// pointer with influence radius r:
//
//	d <= r: min(base, 1 + (minScale-1)*(1-d/r))
//	d >  r: base
//
// The formula is kept literally. With minScale < 1 it rises from minScale at
// the pointer to 1 at the radius edge, then jumps to base outside it.
// A non-positive radius yields base.
func HoverScale(d, r, base, minScale float64) float64 {
	if r <= 0 || d > r {
		return base
	}
	return math.Min(base, 1+(minScale-1)*(1-d/r))
}
