//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"powder/internal/app"
	_ "powder/internal/sims/powder"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, closer, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	world, err := cfg.Open(logger)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(world, cfg, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("powder: " + world.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
