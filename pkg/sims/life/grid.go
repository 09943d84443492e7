package life

import (
	"fmt"

	"cellmachine/internal/core"
)

// Grid stores a 2D field of binary cells in row-major order. Callers validate
// externally supplied coordinates before calling Get or Set.
type Grid struct {
	W, H  int
	cells []bool
}

// NewGrid allocates an all-dead grid with the given dimensions. It panics on
// non-positive dimensions; callers validate sizes before allocating.
func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("life: invalid grid size %dx%d", w, h))
	}
	return &Grid{W: w, H: h, cells: make([]bool, w*h)}
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.W, H: g.H} }

// Cells exposes the backing slice.
func (g *Grid) Cells() []bool { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the state of cell (x, y).
func (g *Grid) Get(x, y int) bool { return g.cells[g.Index(x, y)] }

// Alive is Get under the core.Frame name.
func (g *Grid) Alive(x, y int) bool { return g.cells[g.Index(x, y)] }

// Set updates the state of cell (x, y).
func (g *Grid) Set(x, y int, alive bool) { g.cells[g.Index(x, y)] = alive }

// AliveCount returns the number of live cells.
func (g *Grid) AliveCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same size and cell values.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.W != o.W || g.H != o.H {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Neighbors counts the live cells among the 8 neighbors of (x, y). With wrap
// the field is a torus; without it out-of-range neighbors are skipped.
func (g *Grid) Neighbors(x, y int, wrap bool) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if wrap {
				nx, ny = g.Wrap(nx, ny)
			} else if !g.InBounds(nx, ny) {
				continue
			}
			if g.cells[ny*g.W+nx] {
				n++
			}
		}
	}
	return n
}
