//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"cellmachine/internal/app"
	"cellmachine/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, "preview")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts, err := cfg.Options()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	player, err := app.NewPlayer(opts, logger)
	if err != nil {
		logger.Fatal("seeding failed", "err", err)
	}

	game := app.New(player)
	d := opts.Dimensions

	ebiten.SetWindowTitle("cellmachine: " + opts.RuleLabel)
	ebiten.SetWindowSize(d.Width*d.Scale+app.HUDWidth, d.Height*d.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("preview stopped", "err", err)
	}
}
