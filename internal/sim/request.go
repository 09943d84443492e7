package sim

import (
	"fmt"
	"strings"

	"cellmachine/internal/render"
	"cellmachine/internal/seed"
	"cellmachine/pkg/sims/life"
)

// Request is the user-facing form of Options shared by the command line and
// the HTTP API. Unset fields take the defaults of DefaultOptions.
type Request struct {
	Steps      *int        `json:"steps,omitempty"`
	Rule       string      `json:"rule,omitempty"`
	Density    *float64    `json:"density,omitempty"`
	InitMask   string      `json:"init_mask,omitempty"`
	SeedCells  []seed.Cell `json:"seed_cells,omitempty"`
	Wrap       *bool       `json:"wrap,omitempty"`
	Delay      *int        `json:"delay,omitempty"`
	Width      *int        `json:"width,omitempty"`
	Height     *int        `json:"height,omitempty"`
	Scale      *int        `json:"scale,omitempty"`
	RandomSeed *uint64     `json:"random_seed,omitempty"`
	Format     string      `json:"format,omitempty"`
	Palette    string      `json:"palette,omitempty"`
	Workers    *int        `json:"workers,omitempty"`
	Caption    string      `json:"caption,omitempty"`
}

// Options parses and validates the request.
func (r Request) Options() (Options, error) {
	o := DefaultOptions()
	if r.Steps != nil {
		o.Steps = *r.Steps
	}
	if label := strings.TrimSpace(r.Rule); label != "" {
		rule, err := life.ParseRule(label)
		if err != nil {
			return Options{}, fmt.Errorf("rule: %w", err)
		}
		o.Rule = rule
		o.RuleLabel = label
	}
	if r.Density != nil {
		d := *r.Density
		o.Density = &d
	}
	if strings.TrimSpace(r.InitMask) != "" {
		m, err := seed.ParseMask(r.InitMask)
		if err != nil {
			return Options{}, err
		}
		o.Mask = &m
	}
	if len(r.SeedCells) > 0 {
		o.Cells = append([]seed.Cell(nil), r.SeedCells...)
	}
	if r.Wrap != nil {
		o.Wrap = *r.Wrap
	}
	if r.Delay != nil {
		o.Delay = *r.Delay
	}
	if r.Width != nil {
		o.Dimensions.Width = *r.Width
	}
	if r.Height != nil {
		o.Dimensions.Height = *r.Height
	}
	if r.Scale != nil {
		o.Dimensions.Scale = *r.Scale
	}
	if r.RandomSeed != nil {
		o.RNGSeed = *r.RandomSeed
	}
	if r.Format != "" {
		o.Format = strings.ToLower(strings.TrimSpace(r.Format))
	}
	if r.Palette != "" {
		p, err := render.ParsePalette(r.Palette)
		if err != nil {
			return Options{}, err
		}
		o.Palette = p
	}
	if r.Workers != nil {
		o.Workers = *r.Workers
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
