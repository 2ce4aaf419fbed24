package game

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of a run. Lengths are world units, which the
// desktop front-end maps one to one onto pixels.
type Config struct {
	WindowWidth  float32
	WindowHeight float32

	Gravity      float32
	JumpVelocity float32
	Ceiling      bool

	PipeWidth  float32
	PipeGap    float32
	PipeSpeed  float32
	PipeOffset float32
	GapMin     float32
	GapMax     float32

	FloorHeight float32

	PlayerSize      float32
	CollisionSize   float32
	AnimationFrames int
	FrameSeconds    float64

	// Seed 0 picks a time based seed.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		WindowWidth:     800,
		WindowHeight:    600,
		Gravity:         -900,
		JumpVelocity:    320,
		Ceiling:         true,
		PipeWidth:       80,
		PipeGap:         150,
		PipeSpeed:       150,
		PipeOffset:      300,
		GapMin:          0.2,
		GapMax:          0.8,
		FloorHeight:     50,
		PlayerSize:      75,
		CollisionSize:   50,
		AnimationFrames: 8,
		FrameSeconds:    0.1,
	}
}

func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"window width", c.WindowWidth},
		{"window height", c.WindowHeight},
		{"jump velocity", c.JumpVelocity},
		{"pipe width", c.PipeWidth},
		{"pipe gap", c.PipeGap},
		{"pipe speed", c.PipeSpeed},
		{"floor height", c.FloorHeight},
		{"player size", c.PlayerSize},
		{"collision size", c.CollisionSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.Gravity >= 0 {
		return fmt.Errorf("%w: gravity must pull down, got %g", ErrInvalidConfig, c.Gravity)
	}
	if c.PipeGap >= c.WindowHeight {
		return fmt.Errorf("%w: pipe gap %g does not fit window height %g", ErrInvalidConfig, c.PipeGap, c.WindowHeight)
	}
	if c.PipeOffset < 0 {
		return fmt.Errorf("%w: pipe offset must not be negative, got %g", ErrInvalidConfig, c.PipeOffset)
	}
	if c.GapMin < 0 || c.GapMax > 1 || c.GapMin > c.GapMax {
		return fmt.Errorf("%w: gap range [%g, %g] must lie within [0, 1]", ErrInvalidConfig, c.GapMin, c.GapMax)
	}
	if c.AnimationFrames <= 0 || c.FrameSeconds <= 0 {
		return fmt.Errorf("%w: animation needs frames and a positive frame time", ErrInvalidConfig)
	}
	return nil
}

// RegisterFlags binds the gameplay tunables to fs, using the current values
// of c as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	float32Var(fs, &c.WindowWidth, "width", "window width")
	float32Var(fs, &c.WindowHeight, "height", "window height")
	float32Var(fs, &c.Gravity, "gravity", "vertical acceleration of the player")
	float32Var(fs, &c.JumpVelocity, "jump", "upward velocity set by a jump")
	fs.BoolVar(&c.Ceiling, "ceiling", c.Ceiling, "stop the player at the top of the window")
	float32Var(fs, &c.PipeWidth, "pipe-width", "pipe width")
	float32Var(fs, &c.PipeGap, "pipe-gap", "vertical gap between a pipe pair")
	float32Var(fs, &c.PipeSpeed, "pipe-speed", "pipe scroll speed")
	float32Var(fs, &c.PipeOffset, "pipe-offset", "spawn distance before the right edge")
	float32Var(fs, &c.GapMin, "gap-min", "lowest gap position, as a fraction of the window")
	float32Var(fs, &c.GapMax, "gap-max", "highest gap position, as a fraction of the window")
	float32Var(fs, &c.FloorHeight, "floor-height", "floor height")
	float32Var(fs, &c.PlayerSize, "player-size", "edge of the player sprite")
	float32Var(fs, &c.CollisionSize, "collision-size", "edge of the player collision box")
	fs.IntVar(&c.AnimationFrames, "frames", c.AnimationFrames, "frames in the player animation")
	fs.Float64Var(&c.FrameSeconds, "frame-seconds", c.FrameSeconds, "seconds per animation frame")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "pipe RNG seed (0 = time based)")
}

type float32Value struct{ p *float32 }

func (v float32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return fmt.Sprint(*v.p)
}

func (v float32Value) Set(s string) error {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*v.p = float32(f)
	return nil
}

func float32Var(fs *flag.FlagSet, p *float32, name, usage string) {
	fs.Var(float32Value{p}, name, usage)
}
