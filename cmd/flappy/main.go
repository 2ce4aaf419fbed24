package main

import (
	"flag"
	"log"

	"github.com/plus3/flapper/desktop"
	"github.com/plus3/flapper/game"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	mute := flag.Bool("mute", false, "Disable sound.")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot play.")
	flag.Parse()

	registry := game.NewRegistry()
	desktop.RegisterComponents(registry)

	world, err := game.NewWorld(cfg, registry)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}
	log.Printf("Starting with seed %d", world.Seed)

	app, err := desktop.NewApp(world, desktop.Options{
		Title:     "Flapper",
		Debug:     *debug,
		Mute:      *mute,
		Autopilot: *autopilot,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	if err := app.Run(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("Final score: %d", world.Game.Get().Score)
}
