package sim

import (
	"bytes"
	"fmt"
	"io"

	"cellmachine/internal/core"
	"cellmachine/pkg/sims/life"

	"github.com/charmbracelet/log"
)

// Stepper advances a grid by one generation without mutating it.
type Stepper interface {
	Step(g *life.Grid) *life.Grid
}

// Runner executes simulations. A nil Stepper is built from the options of
// each run; a nil Logger discards output.
type Runner struct {
	Stepper Stepper
	Logger  *log.Logger
}

var discard = log.New(io.Discard)

// Run executes opts with a default Runner.
func Run(opts Options) (*Result, error) {
	return (&Runner{}).Run(opts)
}

// Run seeds the grid, streams the initial frame and one frame per generation
// into the configured sink, and stops early once a generation equals its
// predecessor. No result is returned when any stage fails.
func (r *Runner) Run(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = discard
	}
	format, err := opts.format()
	if err != nil {
		return nil, err
	}

	spec := opts.SeedSpec()
	dims := opts.Dimensions
	current, err := spec.Build(dims.Width, dims.Height)
	if err != nil {
		return nil, fmt.Errorf("seeding grid: %w", err)
	}
	logger.Debug("seeded grid", "kind", spec.Kind, "alive", current.AliveCount(), "w", dims.Width, "h", dims.Height)

	var buf bytes.Buffer
	sink, err := format.New(&buf, core.SinkConfig{
		Size:       dims.Size(),
		Scale:      dims.Scale,
		Delay:      opts.Delay,
		Background: opts.Palette.Background,
		Foreground: opts.Palette.Foreground,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s encoder: %w", format.Name, err)
	}
	if err := sink.WriteFrame(current); err != nil {
		sink.Close()
		return nil, fmt.Errorf("writing initial frame: %w", err)
	}

	stepper := r.Stepper
	if stepper == nil {
		stepper = &life.Stepper{Rule: opts.Rule, Wrap: opts.Wrap, Workers: opts.Workers}
	}

	simulated := 0
	for i := 0; i < opts.Steps; i++ {
		next := stepper.Step(current)
		if err := sink.WriteFrame(next); err != nil {
			sink.Close()
			return nil, fmt.Errorf("writing frame %d: %w", i+1, err)
		}
		simulated = i + 1
		stable := next.Equal(current)
		current = next
		if stable {
			logger.Debug("reached fixed point", "generation", simulated)
			break
		}
	}

	if err := sink.Close(); err != nil {
		return nil, fmt.Errorf("finalizing %s: %w", format.Name, err)
	}

	res := newResult(opts, spec, format, simulated, current.AliveCount(), buf.Bytes())
	logger.Info("simulation complete",
		"rule", res.RuleLabel,
		"steps", res.StepsSimulated,
		"requested", res.StepsRequested,
		"alive", res.FinalAlive,
		"bytes", len(res.Bytes),
	)
	return res, nil
}
