// Package systems implements the per-tick rules of the simulation: perception,
// recognition, movement and the spatial index used to find candidate agents.
package systems

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// SpatialGrid buckets agent indices by position for radius queries.
// Indices refer to the caller's ordered agent slice.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	originX  float64
	originY  float64
	cells    [][]int
	points   []r2.Vec // position per inserted index
}

// NewSpatialGrid creates a grid covering the arena.
func NewSpatialGrid(arena Arena, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 40
	}
	cols := int(arena.Width()/cellSize) + 1
	rows := int(arena.Height()/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		originX:  arena.MinX,
		originY:  arena.MinY,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.points = g.points[:0]
}

// Insert adds index i at position p. Indices must be inserted in order
// starting from zero after each Clear.
func (g *SpatialGrid) Insert(i int, p r2.Vec) {
	g.points = append(g.points, p)
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], i)
}

// QueryRadiusInto appends to dst the indices within radius of p, sorted
// ascending, and returns the updated slice. Reuse dst across calls to avoid
// allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []int, p r2.Vec, radius float64) []int {
	start := len(dst)
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(p)
	radiusSq := radius * radius

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, i := range g.cells[row*g.cols+col] {
				if distanceSq(p, g.points[i]) <= radiusSq {
					dst = append(dst, i)
				}
			}
		}
	}

	sort.Ints(dst[start:])
	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(p r2.Vec) (col, row int) {
	col = int((p.X - g.originX) / g.cellSize)
	row = int((p.Y - g.originY) / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(p r2.Vec) int {
	col, row := g.cellCoords(p)
	return row*g.cols + col
}
