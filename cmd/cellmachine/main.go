package main

import (
	"flag"
	"fmt"
	"os"

	"cellmachine/internal/config"
	"cellmachine/internal/sim"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, "cellmachine")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts, err := cfg.Options()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	runner := &sim.Runner{Logger: logger}
	res, err := runner.Run(opts)
	if err != nil {
		logger.Fatal("simulation failed", "err", err)
	}

	path := res.FileName
	if cfg.Output != "" {
		path = sim.AppendStepSuffix(cfg.Output, res.StepsSimulated)
	}
	if err := os.WriteFile(path, res.Bytes, 0o644); err != nil {
		logger.Fatal("writing output", "path", path, "err", err)
	}
	logger.Debug("wrote output", "path", path, "bytes", len(res.Bytes))
	fmt.Printf("%s Output written to %s.\n", res.Summary, path)
}
