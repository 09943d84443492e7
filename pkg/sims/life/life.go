package life

import (
	"runtime"

	"cellmachine/internal/core"

	"golang.org/x/sync/errgroup"
)

// Advance computes the next generation of g under rule. g is never modified;
// the result is written into a fresh buffer.
func Advance(g *Grid, rule core.Evaluator, wrap bool) *Grid {
	next := NewGrid(g.W, g.H)
	advanceRows(g, next, rule, wrap, 0, g.H)
	return next
}

func advanceRows(cur, nxt *Grid, rule core.Evaluator, wrap bool, y0, y1 int) {
	w := cur.W
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			nxt.cells[idx] = rule.ShouldLive(cur.cells[idx], cur.Neighbors(x, y, wrap))
		}
	}
}

// Stepper advances grids under a fixed rule and topology.
type Stepper struct {
	Rule core.Evaluator
	Wrap bool
	// Workers splits each generation by rows across goroutines when > 1.
	// Zero uses runtime.NumCPU. The result does not depend on the value.
	Workers int
}

// NewStepper returns a serial Stepper.
func NewStepper(rule core.Evaluator, wrap bool) *Stepper {
	return &Stepper{Rule: rule, Wrap: wrap, Workers: 1}
}

// Step returns the generation following g.
func (s *Stepper) Step(g *Grid) *Grid {
	rule := s.Rule
	if rule == nil {
		rule = DefaultRule()
	}
	workers := s.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > g.H {
		workers = g.H
	}
	if workers <= 1 {
		return Advance(g, rule, s.Wrap)
	}

	next := NewGrid(g.W, g.H)
	rowsPerWorker := (g.H + workers - 1) / workers
	var eg errgroup.Group
	for i := 0; i < workers; i++ {
		y0 := i * rowsPerWorker
		y1 := min(y0+rowsPerWorker, g.H)
		if y0 >= g.H {
			break
		}
		eg.Go(func() error {
			advanceRows(g, next, rule, s.Wrap, y0, y1)
			return nil
		})
	}
	// Row workers never return an error.
	eg.Wait()
	return next
}
