package game

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// World bundles the storage, scheduler and resources of one run.
type World struct {
	Config    Config
	Seed      uint64
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	Game    *ecs.Singleton[Game]
	Window  *ecs.Singleton[Window]
	Input   *ecs.Singleton[Input]
	Cues    *ecs.Singleton[Cues]
	Metrics *ecs.Singleton[Metrics]
}

// NewWorld validates cfg and creates the resources. A nil registry means
// NewRegistry(). Systems are added by Install.
func NewWorld(cfg Config, registry *ecs.ComponentRegistry) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewRegistry()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	storage := ecs.NewStorage(registry)
	return &World{
		Config:    cfg,
		Seed:      seed,
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Game:      ecs.NewSingleton(storage, Game{State: Playing}),
		Window:    ecs.NewSingleton(storage, Window{Width: cfg.WindowWidth, Height: cfg.WindowHeight}),
		Input:     ecs.NewSingleton(storage, Input{}),
		Cues:      ecs.NewSingleton(storage, Cues{}),
		Metrics:   ecs.NewSingleton(storage, Metrics{}),
	}, nil
}

// Install registers the game's systems. input runs first and may be nil;
// sinks run after the gameplay stages and see the frame's cues before they
// are cleared.
func (w *World) Install(input ecs.System, sinks ...ecs.System) {
	s := w.Scheduler
	cfg := w.Config

	s.RegisterStartup(&SetupPlayer{Config: cfg})
	s.RegisterStartup(&SetupPipes{Config: cfg})
	s.RegisterStartup(&SetupFloor{Config: cfg})

	if input != nil {
		s.Register(input)
	}
	s.RegisterSet([]ecs.System{
		&MovementSystem{Config: cfg},
		&PipeSystem{Config: cfg, Rand: rand.New(rand.NewPCG(w.Seed, w.Seed^0x9e3779b97f4a7c15))},
		&CollisionSystem{},
		&ScoreSystem{},
		&AnimationSystem{},
	}, ecs.RunIf(GameRunning))
	s.Register(&MetricsSystem{})
	for _, sink := range sinks {
		s.Register(sink)
	}
	s.Register(&CueResetSystem{})
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

func (w *World) State() State {
	return w.Game.Get().State
}

// PlayerTransform is nil until the first Step.
func (w *World) PlayerTransform() *geom.Transform {
	return playerTransform(w.Storage, w.Game.Get())
}
