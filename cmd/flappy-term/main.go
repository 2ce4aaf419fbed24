package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/terminal"
)

func main() {
	os.Exit(start(os.Args[1:], os.Stderr))
}

// start parses args and plays one game, returning the process exit code.
func start(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("flappy-term", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(fs)
	fps := fs.Int("fps", 30, "Frames per second.")
	mute := fs.Bool("mute", false, "Disable sound.")
	autopilot := fs.Bool("autopilot", false, "Let the autopilot play.")
	logFile := fs.String("log", "", "Write logs to this file instead of discarding them.")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// The screen owns the terminal while the game runs.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(cfg, terminal.Options{FPS: *fps, Mute: *mute, Autopilot: *autopilot}); err != nil {
		fmt.Fprintln(stderr, err)
		log.Printf("exit: %v", err)
		return 1
	}
	return 0
}

func run(cfg game.Config, opts terminal.Options) error {
	world, err := game.NewWorld(cfg, nil)
	if err != nil {
		return err
	}
	log.Printf("Starting with seed %d", world.Seed)

	term, err := terminal.New(world, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.Run(ctx)
	term.Close()
	fmt.Printf("score %d\n", world.Game.Get().Score)
	return err
}
