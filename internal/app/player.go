package app

import (
	"io"
	"strconv"

	"cellmachine/internal/core"
	"cellmachine/internal/sim"
	"cellmachine/pkg/sims/life"

	"github.com/charmbracelet/log"
)

// Player steps a simulation for live viewing. It follows the same seed and
// fixed-point rules as sim.Run and starts over from the seed once the step
// budget is spent or the grid stops changing, mirroring a looping animation.
type Player struct {
	opts    sim.Options
	stepper *life.Stepper
	logger  *log.Logger

	grid       *life.Grid
	prev       *life.Grid
	generation int
	stable     bool
	loops      int
}

// NewPlayer validates opts and seeds the first generation.
func NewPlayer(opts sim.Options, logger *log.Logger) (*Player, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{
		opts:    opts,
		stepper: &life.Stepper{Rule: opts.Rule, Wrap: opts.Wrap, Workers: opts.Workers},
		logger:  logger,
	}
	if err := p.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset reseeds the grid from the current options.
func (p *Player) Reset() error {
	g, err := p.opts.SeedSpec().Build(p.opts.Dimensions.Width, p.opts.Dimensions.Height)
	if err != nil {
		return err
	}
	p.grid, p.prev = g, nil
	p.generation = 0
	p.stable = false
	return nil
}

// Reseed switches to a new RNG seed and resets.
func (p *Player) Reseed(seed uint64) error {
	p.opts.RNGSeed = seed
	return p.Reset()
}

// Done reports whether the current loop has finished.
func (p *Player) Done() bool {
	return p.stable || p.generation >= p.opts.Steps
}

// Advance moves one generation forward, or back to the seed when the loop
// has finished.
func (p *Player) Advance() error {
	if p.Done() {
		p.loops++
		p.logger.Debug("restarting loop", "generation", p.generation, "stable", p.stable, "loop", p.loops)
		return p.Reset()
	}
	next := p.stepper.Step(p.grid)
	p.generation++
	p.stable = next.Equal(p.grid)
	p.prev, p.grid = p.grid, next
	return nil
}

// Grid returns the current generation.
func (p *Player) Grid() *life.Grid { return p.grid }

// Previous returns the generation before Grid, or nil right after a reset.
func (p *Player) Previous() *life.Grid { return p.prev }

// Generation returns how many steps have been taken in the current loop.
func (p *Player) Generation() int { return p.generation }

// Options returns the options the player runs with.
func (p *Player) Options() sim.Options { return p.opts }

// Parameters reports the run configuration plus live playback state.
func (p *Player) Parameters() core.ParameterSnapshot {
	snap := p.opts.Parameters()
	state := "running"
	if p.stable {
		state = "fixed point"
	}
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Playback",
		Params: []core.Parameter{
			{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(p.generation)},
			{Key: "alive", Label: "Alive", Type: core.ParamTypeInt, Value: strconv.Itoa(p.grid.AliveCount())},
			{Key: "state", Label: "State", Type: core.ParamTypeString, Value: state},
		},
	})
	return snap
}
