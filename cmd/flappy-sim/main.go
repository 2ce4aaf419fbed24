package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/flapper/game"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	duration := flag.Duration("duration", 60*time.Second, "Simulated time to run for.")
	fps := flag.Int("fps", 60, "Simulated frames per second.")
	autopilot := flag.Bool("autopilot", true, "Let the autopilot play.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log.Printf("Simulating %s at %d fps with seed %d...", *duration, *fps, cfg.Seed)
	report, err := simulate(cfg, *duration, *fps, *autopilot)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// simulate steps a headless world at a fixed rate until duration of game
// time has passed or the game is over.
func simulate(cfg game.Config, duration time.Duration, fps int, autopilot bool) (*Report, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}

	world, err := game.NewWorld(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	if autopilot {
		world.Install(&game.AutopilotSystem{Config: cfg})
	} else {
		world.Install(nil)
	}

	report := &Report{
		Duration:  duration,
		FPS:       fps,
		Seed:      world.Seed,
		Autopilot: autopilot,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	dt := 1 / float64(fps)
	frames := int64(duration.Seconds() * float64(fps))
	start := time.Now()
	for range frames {
		updateStart := time.Now()
		world.Step(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if world.State() == game.GameOver {
			break
		}
	}
	report.WallTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	g := world.Game.Get()
	report.State = g.State.String()
	report.Score = g.Score
	report.Metrics = *world.Metrics.Get()
	report.LivePipes = len(g.Pipes.Entities)
	report.Storage = world.Storage.CollectStats()
	report.Systems = world.Scheduler.GetStats().Systems
	return report, nil
}
