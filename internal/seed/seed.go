// Package seed builds initial grids. All randomness comes from an explicitly
// seeded core.RNG so identical inputs always produce identical grids.
package seed

import (
	"errors"
	"fmt"
	"math"

	pcore "cellmachine/pkg/core"
	"cellmachine/pkg/sims/life"
)

const (
	// DefaultDensity is used for uniform random seeding when none is given.
	DefaultDensity = 0.15
	// DefaultRandomSeed is the RNG seed used when the caller supplies none.
	DefaultRandomSeed uint64 = 0x5EED5EED
)

var (
	ErrDensityRange = errors.New("density must be between 0.0 and 1.0 inclusive")
	ErrGridSize     = errors.New("grid dimensions must be positive")
	ErrGridTooSmall = errors.New("grid must be at least 3x3 for init mask")
	ErrEmptyMask    = errors.New("init mask must contain at least one active cell when density is greater than zero")
	ErrOutOfBounds  = errors.New("seed cell outside grid")
)

// Cell is a grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func checkDensity(density float64) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return fmt.Errorf("%w: got %v", ErrDensityRange, density)
	}
	return nil
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrGridSize, w, h)
	}
	return nil
}

// Random marks each cell alive when an independent uniform draw falls below
// density. Cells are visited in row-major order.
func Random(w, h int, density float64, rng *pcore.RNG) (*life.Grid, error) {
	if err := checkDensity(density); err != nil {
		return nil, err
	}
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	g := life.NewGrid(w, h)
	cells := g.Cells()
	for i := range cells {
		if rng.Float64() < density {
			cells[i] = true
		}
	}
	return g, nil
}

// FromCells marks every listed coordinate alive.
func FromCells(w, h int, cells []Cell) (*life.Grid, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	g := life.NewGrid(w, h)
	for _, c := range cells {
		if !g.InBounds(c.X, c.Y) {
			return nil, fmt.Errorf("%w: (%d, %d) is outside the %dx%d grid", ErrOutOfBounds, c.X, c.Y, w, h)
		}
		g.Set(c.X, c.Y, true)
	}
	return g, nil
}

// Centered stamps mask once at the middle of the grid.
func Centered(w, h int, mask Mask) (*life.Grid, error) {
	if w < 3 || h < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, w, h)
	}
	g := life.NewGrid(w, h)
	stamp(g, (w-3)/2, (h-3)/2, mask.Offsets())
	return g, nil
}

// Scatter stamps mask at random anchors until about w*h*density cells are
// alive. This is a best-effort packer: stamps may overlap, and once the attempt
// budget of ceil(target/active)*10+100 stamps is spent the grid is returned as
// is, possibly short of the target.
func Scatter(w, h int, mask Mask, density float64, rng *pcore.RNG) (*life.Grid, error) {
	if w < 3 || h < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, w, h)
	}
	if err := checkDensity(density); err != nil {
		return nil, err
	}
	active := mask.Active()
	if active == 0 && density > 0 {
		return nil, ErrEmptyMask
	}

	g := life.NewGrid(w, h)
	if density == 0 {
		return g, nil
	}
	target := int(math.Round(float64(w*h) * density))
	if target == 0 {
		return g, nil
	}

	shapesNeeded := (target + active - 1) / active
	maxAttempts := shapesNeeded*10 + 100
	offsets := mask.Offsets()
	alive := 0
	for attempts := 0; attempts < maxAttempts && alive < target; attempts++ {
		x0 := rng.IntRange(0, w-3)
		y0 := rng.IntRange(0, h-3)
		alive += stamp(g, x0, y0, offsets)
	}
	return g, nil
}

// stamp sets the offsets relative to (x0, y0) and returns how many cells were
// newly brought to life.
func stamp(g *life.Grid, x0, y0 int, offsets []Cell) int {
	added := 0
	for _, o := range offsets {
		x, y := x0+o.X, y0+o.Y
		if !g.Get(x, y) {
			g.Set(x, y, true)
			added++
		}
	}
	return added
}
