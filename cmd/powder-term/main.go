package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"powder/internal/app"
	_ "powder/internal/sims/powder"
	"powder/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.W, cfg.H = 60, 30
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The screen owns stdout, so logs are dropped unless -log-file is set.
	logger, closer, err := cfg.Logger(io.Discard)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	world, err := cfg.Open(logger)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fe := term.New(screen, world, term.Options{Brush: cfg.Brush, Logger: logger})
	err = fe.Run(ctx, cfg.TPS)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
