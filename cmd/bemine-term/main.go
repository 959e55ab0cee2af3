// Command bemine-term plays Be Mine in a terminal with mouse support.
package main

import (
	"context"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"bemine/internal/config"
	"bemine/internal/logging"
	"bemine/internal/loop"
	"bemine/internal/round"
	"bemine/internal/term"
)

func main() {
	cfg, err := config.Load("bemine-term", os.Args[1:])
	if err != nil {
		logging.Fatalf("%v", err)
	}
	logFile, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		logging.Fatalf("%v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logging.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		logging.Fatalf("initializing screen: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	// A terminal mouse is always a fine pointer unless forced otherwise.
	coarse := cfg.Coarse(false)
	opts := round.Options{
		Game:   cfg.Game.ForPointer(coarse),
		Coarse: coarse,
		OnEnd: func(s round.State) {
			if s == round.Lost {
				screen.Beep()
			}
		},
	}
	if cfg.Seed != 0 {
		opts.Source = rand.New(rand.NewSource(cfg.Seed))
	}

	w, h := term.NewCanvas(screen).Surface()
	r, err := round.New(w, h, opts)
	if err != nil {
		screen.Fini()
		logging.Fatalf("%v", err)
	}
	session := term.NewSession(screen, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	sched := loop.NewScheduler(cfg.FrameInterval(), session.Frame)
	g.Go(func() error {
		defer cancel()
		return sched.Run(ctx)
	})
	g.Go(func() error {
		// The pump also ends when the terminal goes away underneath us.
		defer sched.Stop()
		return session.Pump(ctx)
	})

	// PollEvent only returns nil after Fini, so unblock the pump once the loop ends.
	go func() {
		<-ctx.Done()
		screen.Fini()
	}()

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Printf("bemine-term: %v", err)
	}
}
