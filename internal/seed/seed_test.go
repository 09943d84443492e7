package seed

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	pcore "cellmachine/pkg/core"
)

func TestRandomDeterministic(t *testing.T) {
	a, err := Random(40, 30, 0.3, pcore.NewRNG(99))
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, err := Random(40, 30, 0.3, pcore.NewRNG(99))
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("identical seed and density must yield identical grids")
	}
	c, _ := Random(40, 30, 0.3, pcore.NewRNG(100))
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds should yield different grids")
	}
}

func TestRandomRespectsDensity(t *testing.T) {
	g, err := Random(10, 10, 0.5, pcore.NewRNG(42))
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if n := g.AliveCount(); n == 0 || n == 100 {
		t.Fatalf("alive = %d, expected a partial fill", n)
	}
	empty, _ := Random(10, 10, 0, pcore.NewRNG(42))
	if empty.AliveCount() != 0 {
		t.Fatal("density 0 must produce an empty grid")
	}
	full, _ := Random(10, 10, 1, pcore.NewRNG(42))
	if full.AliveCount() != 100 {
		t.Fatal("density 1 must fill the grid")
	}
}

func TestRandomRejectsBadDensity(t *testing.T) {
	for _, d := range []float64{-0.1, 1.01} {
		if _, err := Random(5, 5, d, pcore.NewRNG(1)); !errors.Is(err, ErrDensityRange) {
			t.Fatalf("density %v: err = %v, want ErrDensityRange", d, err)
		}
	}
}

func TestFromCells(t *testing.T) {
	g, err := FromCells(5, 5, []Cell{{1, 1}, {2, 2}})
	if err != nil {
		t.Fatalf("FromCells: %v", err)
	}
	if !g.Get(1, 1) || !g.Get(2, 2) || g.AliveCount() != 2 {
		t.Fatal("expected exactly the listed cells alive")
	}
	_, err = FromCells(5, 5, []Cell{{5, 0}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	if !strings.Contains(err.Error(), "(5, 0)") {
		t.Fatalf("error should name the coordinate: %v", err)
	}
}

func TestMaskRoundTrip(t *testing.T) {
	for _, label := range []string{"101010101", "000111000", "111101111", "000000000"} {
		m, err := ParseMask(label)
		if err != nil {
			t.Fatalf("ParseMask(%q): %v", label, err)
		}
		if m.String() != label {
			t.Fatalf("round trip %q -> %q", label, m.String())
		}
	}
	m, err := ParseMask("111 101 111")
	if err != nil {
		t.Fatalf("ParseMask with spaces: %v", err)
	}
	if m.Active() != 8 {
		t.Fatalf("active = %d, want 8", m.Active())
	}
}

func TestParseMaskErrors(t *testing.T) {
	_, err := ParseMask("1010")
	if !errors.Is(err, ErrMaskFormat) || !strings.Contains(err.Error(), "exactly 9") {
		t.Fatalf("short mask err = %v", err)
	}
	if _, err := ParseMask("1010101012"); !errors.Is(err, ErrMaskFormat) {
		t.Fatalf("bad char err = %v", err)
	}
	if _, err := ParseMask("1111111111"); !errors.Is(err, ErrMaskFormat) {
		t.Fatalf("long mask err = %v", err)
	}
}

func TestCenteredPlacesMask(t *testing.T) {
	m, _ := ParseMask("000111000")
	g, err := Centered(5, 5, m)
	if err != nil {
		t.Fatalf("Centered: %v", err)
	}
	if g.AliveCount() != 3 || !g.Get(1, 2) || !g.Get(2, 2) || !g.Get(3, 2) {
		t.Fatal("expected a horizontal line through the center")
	}
	if _, err := Centered(2, 5, m); !errors.Is(err, ErrGridTooSmall) {
		t.Fatalf("err = %v, want ErrGridTooSmall", err)
	}
}

func TestScatter(t *testing.T) {
	m, _ := ParseMask("000111000")
	g, err := Scatter(10, 10, m, 0.1, pcore.NewRNG(1234))
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	if g.AliveCount() < 3 {
		t.Fatalf("alive = %d, expected at least one stamp", g.AliveCount())
	}
	again, _ := Scatter(10, 10, m, 0.1, pcore.NewRNG(1234))
	if !g.Equal(again) {
		t.Fatal("Scatter must be deterministic for a fixed seed")
	}
}

func TestScatterStopsNearTarget(t *testing.T) {
	m, _ := ParseMask("100000000")
	g, err := Scatter(20, 20, m, 0.25, pcore.NewRNG(7))
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	// Single-cell stamps never overshoot.
	if g.AliveCount() != 100 {
		t.Fatalf("alive = %d, want 100", g.AliveCount())
	}
}

func TestScatterUnderfillIsAccepted(t *testing.T) {
	// Anchors stay within [0, w-3], so a corner-only mask can reach 4 cells of a
	// 4x4 grid no matter how many attempts are made.
	m, _ := ParseMask("100000000")
	g, err := Scatter(4, 4, m, 1, pcore.NewRNG(7))
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	if g.AliveCount() != 4 {
		t.Fatalf("alive = %d, want 4", g.AliveCount())
	}
}

func TestScatterValidation(t *testing.T) {
	var empty Mask
	if _, err := Scatter(10, 10, empty, 0.2, pcore.NewRNG(1)); !errors.Is(err, ErrEmptyMask) {
		t.Fatalf("err = %v, want ErrEmptyMask", err)
	}
	g, err := Scatter(10, 10, empty, 0, pcore.NewRNG(1))
	if err != nil || g.AliveCount() != 0 {
		t.Fatalf("empty mask at density 0 should give an empty grid, err=%v", err)
	}
	m, _ := ParseMask("010010010")
	if _, err := Scatter(2, 10, m, 0.2, pcore.NewRNG(1)); !errors.Is(err, ErrGridTooSmall) {
		t.Fatalf("err = %v, want ErrGridTooSmall", err)
	}
	if _, err := Scatter(10, 10, m, 2, pcore.NewRNG(1)); !errors.Is(err, ErrDensityRange) {
		t.Fatalf("err = %v, want ErrDensityRange", err)
	}
}

func TestReadCells(t *testing.T) {
	cells, err := ReadCells(strings.NewReader("1 2\n# comment\n\n  3   4  \n"), 5, 5)
	if err != nil {
		t.Fatalf("ReadCells: %v", err)
	}
	if !slices.Equal(cells, []Cell{{1, 2}, {3, 4}}) {
		t.Fatalf("cells = %v", cells)
	}
}

func TestReadCellsWithoutCoordinates(t *testing.T) {
	cells, err := ReadCells(strings.NewReader("# nothing here\n\n"), 5, 5)
	if err != nil {
		t.Fatalf("ReadCells: %v", err)
	}
	if cells == nil || len(cells) != 0 {
		t.Fatalf("cells = %#v, want empty non-nil list", cells)
	}
}

func TestReadCellsErrorsNameLine(t *testing.T) {
	cases := []struct {
		in   string
		want error
		line string
	}{
		{"1 1\n5 0\n", ErrOutOfBounds, "line 2"},
		{"1\n", ErrSeedLine, "line 1"},
		{"# x\n1 2 3\n", ErrSeedLine, "line 2"},
		{"a 1\n", ErrSeedLine, "line 1"},
		{"1 -1\n", ErrSeedLine, "line 1"},
	}
	for _, tc := range cases {
		_, err := ReadCells(strings.NewReader(tc.in), 5, 5)
		if !errors.Is(err, tc.want) {
			t.Fatalf("ReadCells(%q) err = %v, want %v", tc.in, err, tc.want)
		}
		if !strings.Contains(err.Error(), tc.line) {
			t.Fatalf("ReadCells(%q) err %q should mention %s", tc.in, err, tc.line)
		}
	}
}

func TestLoadCellsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.txt")
	if err := os.WriteFile(path, []byte("0 0\n4 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cells, err := LoadCells(path, 5, 5)
	if err != nil {
		t.Fatalf("LoadCells: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("cells = %v", cells)
	}
	if _, err := LoadCells(filepath.Join(t.TempDir(), "missing"), 5, 5); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSelectPrecedence(t *testing.T) {
	m, _ := ParseMask("010010010")
	d := 0.2

	if s := Select([]Cell{{0, 0}}, &m, &d, 1); s.Kind != KindCells || s.UsesRandomness() {
		t.Fatalf("cells must win: %+v", s)
	}
	if s := Select([]Cell{}, &m, &d, 1); s.Kind != KindCells {
		t.Fatalf("an empty but given cell list must still win: %+v", s)
	}
	if s := Select(nil, &m, &d, 1); s.Kind != KindScatter || !s.UsesRandomness() {
		t.Fatalf("mask+density must scatter: %+v", s)
	}
	if s := Select(nil, &m, nil, 1); s.Kind != KindCentered || s.UsesRandomness() {
		t.Fatalf("mask alone must center: %+v", s)
	}
	s := Select(nil, nil, nil, 1)
	if s.Kind != KindRandom || s.Density != DefaultDensity {
		t.Fatalf("fallback must be random at default density: %+v", s)
	}
}

func TestDescribe(t *testing.T) {
	m, _ := ParseMask("010010010")
	d := 0.25
	cases := map[string]Spec{
		"manual coordinates (2 points)":     Select([]Cell{{0, 0}, {1, 1}}, nil, nil, 0),
		"mask 010010010 randomized at 25.0%": Select(nil, &m, &d, 0),
		"mask 010010010 centered":            Select(nil, &m, nil, 0),
		"random 15.0% density":               Select(nil, nil, nil, 0),
	}
	for want, spec := range cases {
		if got := spec.Describe(); got != want {
			t.Fatalf("Describe() = %q, want %q", got, want)
		}
	}
}

func TestSpecBuildDeterministic(t *testing.T) {
	s := Select(nil, nil, nil, DefaultRandomSeed)
	a, err := s.Build(30, 30)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, _ := s.Build(30, 30)
	if !a.Equal(b) {
		t.Fatal("Build must be reproducible")
	}
}
