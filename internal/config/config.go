package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"cellmachine/internal/seed"
	"cellmachine/internal/sim"
	pcore "cellmachine/pkg/core"

	"github.com/charmbracelet/log"
)

// CLIScale is the pixel scale used by the command line tools.
const CLIScale = 3

// Config represents the command-line parameters for a simulation run.
type Config struct {
	Steps    int
	Rule     string
	SeedFile string
	Density  *float64
	InitMask string
	NoWrap   bool
	Delay    int
	Width    int
	Height   int
	Scale    int
	RNGSeed  uint64
	Output   string
	Format   string
	Palette  string
	Workers  int
	Random   bool
	LogLevel string
}

// NewConfig returns a Config populated with the command-line defaults.
func NewConfig() *Config {
	return &Config{
		Steps:    sim.DefaultSteps,
		Rule:     "B3/S23",
		Delay:    sim.DefaultDelay,
		Width:    sim.DefaultWidth,
		Height:   sim.DefaultHeight,
		Scale:    CLIScale,
		RNGSeed:  seed.DefaultRandomSeed,
		Format:   "gif",
		Workers:  1,
		LogLevel: envOr("LOG_LEVEL", "info"),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Steps, "steps", c.Steps, "generations to simulate")
	fs.StringVar(&c.Rule, "rule", c.Rule, "life-like rule in B<digits>/S<digits> form")
	fs.StringVar(&c.SeedFile, "seed", c.SeedFile, "file of 'x y' coordinates to seed")
	fs.Func("density", "initial live-cell density in [0,1] (default 0.15 for random seeding)", func(v string) error {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.Density = &d
		return nil
	})
	fs.StringVar(&c.InitMask, "init-mask", c.InitMask, "3x3 seed mask as nine 0/1 characters")
	fs.BoolVar(&c.NoWrap, "no-wrap", c.NoWrap, "use bounded edges instead of toroidal wrap")
	fs.IntVar(&c.Delay, "delay", c.Delay, "frame delay in hundredths of a second")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Uint64Var(&c.RNGSeed, "rng-seed", c.RNGSeed, "seed for random initialization")
	fs.StringVar(&c.Output, "output", c.Output, "output path (default derived from the rule and seed)")
	fs.StringVar(&c.Format, "format", c.Format, "output format: gif or avi")
	fs.StringVar(&c.Palette, "palette", c.Palette, "color palette name")
	fs.IntVar(&c.Workers, "workers", c.Workers, "stepping goroutines (0 = one per CPU)")
	fs.BoolVar(&c.Random, "random", c.Random, "pick a random rule and mask (uses -rng-seed)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// Request converts the flags into a simulation request. The seed file, when
// given, is loaded and checked against the grid bounds.
func (c *Config) Request() (sim.Request, error) {
	wrap := !c.NoWrap
	req := sim.Request{
		Steps:      &c.Steps,
		Rule:       c.Rule,
		Density:    c.Density,
		InitMask:   c.InitMask,
		Wrap:       &wrap,
		Delay:      &c.Delay,
		Width:      &c.Width,
		Height:     &c.Height,
		Scale:      &c.Scale,
		RandomSeed: &c.RNGSeed,
		Format:     c.Format,
		Palette:    c.Palette,
		Workers:    &c.Workers,
	}
	if c.SeedFile != "" {
		cells, err := seed.LoadCells(c.SeedFile, c.Width, c.Height)
		if err != nil {
			return sim.Request{}, err
		}
		req.SeedCells = cells
	}
	return req, nil
}

// Options resolves the configuration into validated simulation options.
// With Random set the rule, mask and density are drawn from RNGSeed while
// the grid, steps and output settings still come from the flags.
func (c *Config) Options() (sim.Options, error) {
	req, err := c.Request()
	if err != nil {
		return sim.Options{}, err
	}
	opts, err := req.Options()
	if err != nil {
		return sim.Options{}, err
	}
	if c.SeedFile != "" {
		// An empty request list counts as absent; a given seed file does not.
		opts.Cells = req.SeedCells
	}
	if c.Random {
		r := sim.RandomOptions(pcore.NewRNG(c.RNGSeed))
		opts.Rule, opts.RuleLabel = r.Rule, r.RuleLabel
		opts.Mask, opts.Density = r.Mask, r.Density
		opts.Cells = nil
	}
	return opts, nil
}

// NewLogger builds the structured logger shared by the commands.
func NewLogger(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          prefix,
		ReportTimestamp: true,
	}), nil
}

// DefaultPort is used when neither APP_BIND_ADDR nor PORT is set.
const DefaultPort = 3000

// BindAddr resolves the HTTP listen address: APP_BIND_ADDR verbatim when set,
// otherwise 0.0.0.0 on PORT (default 3000).
func BindAddr(getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if addr := strings.TrimSpace(getenv("APP_BIND_ADDR")); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return "", fmt.Errorf("APP_BIND_ADDR %q: %w", addr, err)
		}
		return addr, nil
	}
	port := DefaultPort
	if raw := strings.TrimSpace(getenv("PORT")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 || p > 65535 {
			return "", fmt.Errorf("PORT %q is not a valid port", raw)
		}
		port = p
	}
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(port)), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
