package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"cellmachine/internal/config"
	"cellmachine/internal/sim"
	pcore "cellmachine/pkg/core"
)

type sweepResult struct {
	seed    uint64
	outcome sim.Outcome
	err     error
}

func main() {
	count := flag.Int("rules", 64, "number of random rules to try")
	steps := flag.Int("steps", 200, "generations to simulate per rule")
	width := flag.Int("width", 96, "grid width")
	height := flag.Int("height", 96, "grid height")
	base := flag.Uint64("seed", 1, "first RNG seed; rule i uses seed+i")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 10, "results to print")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *level, "sweep")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Info("sweeping random rules", "rules", *count, "workers", *workers, "steps", *steps)

	jobs := make(chan uint64)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				opts := sim.RandomOptions(pcore.NewRNG(seed))
				opts.RNGSeed = seed
				opts.Steps = *steps
				opts.Dimensions.Width = *width
				opts.Dimensions.Height = *height
				out, err := sim.Evaluate(opts)
				results <- sweepResult{seed: seed, outcome: out, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *count; i++ {
			jobs <- *base + uint64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	for res := range results {
		if res.err != nil {
			logger.Warn("rule failed", "seed", res.seed, "err", res.err)
			continue
		}
		logger.Debug("evaluated", "seed", res.seed, "rule", res.outcome.RuleLabel, "gens", res.outcome.Generations)
		all = append(all, res)
	}

	// Longest-lived first; ties favor the busier final grid.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].outcome, all[j].outcome
		if a.Generations != b.Generations {
			return a.Generations > b.Generations
		}
		if a.Stable != b.Stable {
			return !a.Stable
		}
		return a.FinalAlive > b.FinalAlive
	})

	fmt.Printf("\nTop %d of %d rules (elapsed %s):\n", min(*top, len(all)), len(all), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		fmt.Printf("%2d) seed=%d %s\n", i+1, all[i].seed, all[i].outcome)
	}
}
