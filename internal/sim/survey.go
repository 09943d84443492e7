package sim

import (
	"fmt"

	"cellmachine/pkg/sims/life"
)

// Outcome summarizes a run that was stepped without encoding frames.
type Outcome struct {
	RuleLabel   string
	MaskLabel   string
	Generations int
	Stable      bool
	InitialLive int
	FinalAlive  int
	PeakAlive   int
}

func (o Outcome) String() string {
	state := "active"
	if o.Stable {
		state = "stable"
	}
	return fmt.Sprintf("rule=%s mask=%s gens=%d %s alive=%d->%d peak=%d",
		o.RuleLabel, o.MaskLabel, o.Generations, state, o.InitialLive, o.FinalAlive, o.PeakAlive)
}

// Evaluate seeds and steps opts with the same early-stop policy as Run but
// skips the frame sink, for surveying many rules quickly.
func Evaluate(opts Options) (Outcome, error) {
	if err := opts.Validate(); err != nil {
		return Outcome{}, err
	}
	cur, err := opts.SeedSpec().Build(opts.Dimensions.Width, opts.Dimensions.Height)
	if err != nil {
		return Outcome{}, fmt.Errorf("seeding grid: %w", err)
	}
	out := Outcome{RuleLabel: opts.label(), InitialLive: cur.AliveCount()}
	if opts.Mask != nil {
		out.MaskLabel = opts.Mask.String()
	}
	out.PeakAlive = out.InitialLive

	stepper := &life.Stepper{Rule: opts.Rule, Wrap: opts.Wrap, Workers: opts.Workers}
	for i := 0; i < opts.Steps; i++ {
		next := stepper.Step(cur)
		out.Generations = i + 1
		if n := next.AliveCount(); n > out.PeakAlive {
			out.PeakAlive = n
		}
		stable := next.Equal(cur)
		cur = next
		if stable {
			out.Stable = true
			break
		}
	}
	out.FinalAlive = cur.AliveCount()
	return out, nil
}
