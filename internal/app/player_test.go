package app

import (
	"errors"
	"testing"

	"cellmachine/internal/seed"
	"cellmachine/internal/sim"
)

func blinkerOptions(steps int) sim.Options {
	o := sim.DefaultOptions()
	o.Dimensions = sim.Dimensions{Width: 5, Height: 5, Scale: 1}
	o.Steps = steps
	o.Cells = []seed.Cell{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	return o
}

func TestPlayerLoopsAfterBudget(t *testing.T) {
	p, err := NewPlayer(blinkerOptions(2), nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	initial := p.Grid().Clone()
	if p.Previous() != nil {
		t.Fatal("no previous generation right after seeding")
	}
	for i := 0; i < 2; i++ {
		if err := p.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if !p.Done() || p.Generation() != 2 {
		t.Fatalf("done=%v generation=%d", p.Done(), p.Generation())
	}
	if p.Previous() == nil || p.Previous().Equal(p.Grid()) {
		t.Fatal("previous generation should differ for an oscillator")
	}
	if err := p.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if p.Generation() != 0 || !p.Grid().Equal(initial) {
		t.Fatal("player should restart from the seed after the budget")
	}
}

func TestPlayerStopsAtFixedPoint(t *testing.T) {
	o := blinkerOptions(100)
	o.Cells = []seed.Cell{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	p, err := NewPlayer(o, nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := p.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !p.Done() || p.Generation() != 1 {
		t.Fatalf("block should be stable after one step, generation=%d", p.Generation())
	}
	if v, _ := p.Parameters().Lookup("state"); v != "fixed point" {
		t.Fatalf("state = %q", v)
	}
	if v, _ := p.Parameters().Lookup("alive"); v != "4" {
		t.Fatalf("alive = %q", v)
	}
}

func TestPlayerReseed(t *testing.T) {
	o := sim.DefaultOptions()
	o.Dimensions = sim.Dimensions{Width: 20, Height: 20, Scale: 1}
	p, err := NewPlayer(o, nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	first := p.Grid().Clone()
	if err := p.Reseed(o.RNGSeed + 1); err != nil {
		t.Fatalf("Reseed: %v", err)
	}
	if p.Grid().Equal(first) {
		t.Fatal("a new seed should produce a different grid")
	}
	if err := p.Reseed(o.RNGSeed); err != nil {
		t.Fatalf("Reseed: %v", err)
	}
	if !p.Grid().Equal(first) {
		t.Fatal("reseeding with the original seed should reproduce the grid")
	}
}

func TestNewPlayerValidates(t *testing.T) {
	o := blinkerOptions(5)
	o.Cells = []seed.Cell{{X: 5, Y: 0}}
	if _, err := NewPlayer(o, nil); !errors.Is(err, seed.ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
	o = blinkerOptions(-1)
	if _, err := NewPlayer(o, nil); !errors.Is(err, sim.ErrInvalidSteps) {
		t.Fatalf("err = %v", err)
	}
}
