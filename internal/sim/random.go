package sim

import (
	"cellmachine/internal/render"
	"cellmachine/internal/seed"
	pcore "cellmachine/pkg/core"
	"cellmachine/pkg/sims/life"
)

// RandomDensity is the scatter density used by RandomOptions.
const RandomDensity = 0.05

// RandomOptions picks a random life-like rule with non-empty born and
// survive sets and a random mask with at least one active cell, scattered at
// RandomDensity. The result renders as an AVI clip in the paperback2 palette.
func RandomOptions(rng *pcore.RNG) Options {
	rule := life.NewRule(randomDigits(rng), randomDigits(rng))
	label := rule.String()

	var mask seed.Mask
	active := 0
	for i := range mask {
		mask[i] = rng.Bool()
		if mask[i] {
			active++
		}
	}
	if active == 0 {
		mask[rng.IntN(len(mask))] = true
	}

	density := RandomDensity
	o := DefaultOptions()
	o.Rule = rule
	o.RuleLabel = label
	o.Mask = &mask
	o.Density = &density
	o.Format = render.FormatAVI
	if p, err := render.ParsePalette("paperback2"); err == nil {
		o.Palette = p
	}
	return o
}

// randomDigits returns a non-empty neighbor-count table.
func randomDigits(rng *pcore.RNG) [9]bool {
	bits := rng.IntRange(1, 1<<9-1)
	var t [9]bool
	for n := range t {
		t[n] = bits&(1<<n) != 0
	}
	return t
}
