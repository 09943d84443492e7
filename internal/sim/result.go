package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cellmachine/internal/core"
	"cellmachine/internal/seed"
)

// Result is the outcome of a single run.
type Result struct {
	Bytes     []byte
	FileName  string
	MediaType string

	StepsRequested int
	StepsSimulated int
	FinalAlive     int

	RuleLabel  string
	Dimensions Dimensions
	Delay      int
	Wrap       bool

	RequestedDensity *float64
	EffectiveDensity *float64
	// MaskLabel is empty when no mask was supplied.
	MaskLabel     string
	SeedCellCount int
	RNGSeed       uint64
	UsedRandom    bool

	SeedDescription string
	Summary         string
}

func newResult(opts Options, spec seed.Spec, format core.Format, simulated, alive int, data []byte) *Result {
	label := opts.label()
	maskLabel := ""
	if opts.Mask != nil {
		maskLabel = opts.Mask.String()
	}
	name := AppendStepSuffix(OutputName(label, opts.Mask, opts.Density, format.Extension), simulated)
	res := &Result{
		Bytes:            data,
		FileName:         name,
		MediaType:        format.MediaType,
		StepsRequested:   opts.Steps,
		StepsSimulated:   simulated,
		FinalAlive:       alive,
		RuleLabel:        label,
		Dimensions:       opts.Dimensions,
		Delay:            opts.Delay,
		Wrap:             opts.Wrap,
		RequestedDensity: opts.Density,
		EffectiveDensity: opts.EffectiveDensity(),
		MaskLabel:        maskLabel,
		SeedCellCount:    len(opts.Cells),
		RNGSeed:          opts.RNGSeed,
		UsedRandom:       spec.UsesRandomness(),
		SeedDescription:  spec.Describe(),
	}
	res.Summary = res.summary()
	return res
}

func (r *Result) summary() string {
	topology := "bounded edges"
	if r.Wrap {
		topology = "toroidal wrap"
	}
	parts := []string{
		fmt.Sprintf("Simulated %d generations (requested %d) using rule %s.", r.StepsSimulated, r.StepsRequested, r.RuleLabel),
		fmt.Sprintf("Final alive cells: %d.", r.FinalAlive),
		fmt.Sprintf("Grid %dx%d (scale %d, %s).", r.Dimensions.Width, r.Dimensions.Height, r.Dimensions.Scale, topology),
		fmt.Sprintf("Frame delay: %dcs.", r.Delay),
		fmt.Sprintf("Seed: %s.", r.SeedDescription),
	}
	if r.UsedRandom {
		parts = append(parts, fmt.Sprintf("RNG seed: %d.", r.RNGSeed))
	}
	parts = append(parts, fmt.Sprintf("File tag: %s.", r.FileName))
	return strings.Join(parts, " ")
}

// OutputName derives "<rule>[_<mask>][_<percent>].<ext>" from the rule label
// and the seed inputs. Rule characters other than ASCII letters and digits
// become underscores; an empty result falls back to "life".
func OutputName(ruleLabel string, mask *seed.Mask, density *float64, ext string) string {
	parts := []string{sanitizeRule(ruleLabel)}
	if parts[0] == "" {
		parts[0] = "life"
	}
	if mask != nil {
		parts = append(parts, mask.String())
	}
	if density != nil {
		parts = append(parts, formatPercent(*density))
	}
	name := strings.Join(parts, "_")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// AppendStepSuffix inserts "_<steps>s" before the file extension.
func AppendStepSuffix(name string, steps int) string {
	suffix := "_" + strconv.Itoa(steps) + "s"
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return name[:i] + suffix + name[i:]
	}
	return name + suffix
}

func sanitizeRule(rule string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, strings.TrimSpace(rule))
	return strings.Trim(s, "_")
}

func formatPercent(density float64) string {
	p := math.Round(density * 100)
	p = math.Max(0, math.Min(100, p))
	return strconv.Itoa(int(p))
}
