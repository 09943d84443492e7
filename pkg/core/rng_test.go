package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(0x5EED5EED)
	b := NewRNG(0x5EED5EED)
	for i := 0; i < 64; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestIntRangeBounds(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 500; i++ {
		v := r.IntRange(0, 3)
		if v < 0 || v > 3 {
			t.Fatalf("IntRange(0,3) returned %d", v)
		}
	}
	if got := r.IntRange(5, 5); got != 5 {
		t.Fatalf("IntRange(5,5) = %d, want 5", got)
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
}
