package sim

import (
	"errors"
	"fmt"

	"cellmachine/internal/core"
	"cellmachine/internal/render"
	"cellmachine/internal/seed"
	"cellmachine/pkg/sims/life"
)

const (
	DefaultWidth  = 200
	DefaultHeight = 200
	DefaultScale  = 6
	DefaultSteps  = 100
	// DefaultDelay is the per-frame delay in hundredths of a second.
	DefaultDelay = 6
	MaxDelay     = 0xFFFF
)

var (
	ErrInvalidSteps      = errors.New("steps must not be negative")
	ErrInvalidDimensions = errors.New("width, height and scale must be positive")
	ErrInvalidDelay      = errors.New("delay must be within 0-65535 centiseconds")
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrNoRule            = errors.New("rule is required")
)

// Dimensions describes the grid size and the pixel scale of each cell.
type Dimensions struct {
	Width  int
	Height int
	Scale  int
}

// DefaultDimensions returns a 200x200 grid rendered at scale 6.
func DefaultDimensions() Dimensions {
	return Dimensions{Width: DefaultWidth, Height: DefaultHeight, Scale: DefaultScale}
}

// Size returns the grid size.
func (d Dimensions) Size() core.Size { return core.Size{W: d.Width, H: d.Height} }

// Options controls one simulation run. Density, Mask and Cells are
// interpreted by seed precedence; see SeedSpec. A non-nil Cells overrides the
// other seed fields even when empty.
type Options struct {
	Steps     int
	Rule      core.Evaluator
	RuleLabel string

	Density *float64
	Mask    *seed.Mask
	Cells   []seed.Cell

	Wrap       bool
	Delay      int
	Dimensions Dimensions
	RNGSeed    uint64

	Format  string
	Palette render.Palette
	// Workers is passed to the stepper: 0 uses every CPU, 1 runs serially.
	Workers int
}

// DefaultOptions returns Conway's rule on a wrapped 200x200 grid for 100
// steps, seeded randomly at the default density.
func DefaultOptions() Options {
	return Options{
		Steps:      DefaultSteps,
		Rule:       life.DefaultRule(),
		RuleLabel:  life.DefaultRuleLabel,
		Wrap:       true,
		Delay:      DefaultDelay,
		Dimensions: DefaultDimensions(),
		RNGSeed:    seed.DefaultRandomSeed,
		Format:     render.FormatGIF,
		Palette:    render.DefaultPalette(),
		Workers:    1,
	}
}

// Validate checks every field that can be checked without building the grid.
func (o Options) Validate() error {
	if o.Steps < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, o.Steps)
	}
	if o.Rule == nil {
		return ErrNoRule
	}
	d := o.Dimensions
	if d.Width <= 0 || d.Height <= 0 || d.Scale <= 0 {
		return fmt.Errorf("%w: %dx%d scale %d", ErrInvalidDimensions, d.Width, d.Height, d.Scale)
	}
	if o.Delay < 0 || o.Delay > MaxDelay {
		return fmt.Errorf("%w: got %d", ErrInvalidDelay, o.Delay)
	}
	if _, _, err := render.ScaledSize(core.SinkConfig{Size: d.Size(), Scale: d.Scale, Delay: o.Delay}); err != nil {
		return err
	}
	if o.Density != nil && (*o.Density < 0 || *o.Density > 1) {
		return fmt.Errorf("%w: got %v", seed.ErrDensityRange, *o.Density)
	}
	if _, err := o.format(); err != nil {
		return err
	}
	return nil
}

// SeedSpec resolves the seeding strategy for this run.
func (o Options) SeedSpec() seed.Spec {
	return seed.Select(o.Cells, o.Mask, o.Density, o.RNGSeed)
}

// EffectiveDensity is the density actually used for seeding: nil for explicit
// cells, the requested density for masks, and the requested or default
// density otherwise.
func (o Options) EffectiveDensity() *float64 {
	if o.Cells != nil {
		return nil
	}
	if o.Mask != nil {
		return o.Density
	}
	d := seed.DefaultDensity
	if o.Density != nil {
		d = *o.Density
	}
	return &d
}

func (o Options) format() (core.Format, error) {
	name := o.Format
	if name == "" {
		name = render.FormatGIF
	}
	f, ok := core.Formats()[name]
	if !ok {
		return core.Format{}, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return f, nil
}

func (o Options) label() string {
	if o.RuleLabel != "" {
		return o.RuleLabel
	}
	if s, ok := o.Rule.(fmt.Stringer); ok {
		return s.String()
	}
	return life.DefaultRuleLabel
}
