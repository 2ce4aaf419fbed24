package game_test

import (
	"flag"
	"io"
	"testing"

	"github.com/plus3/flapper/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, game.DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*game.Config)
	}{
		{"zero width", func(c *game.Config) { c.WindowWidth = 0 }},
		{"negative pipe speed", func(c *game.Config) { c.PipeSpeed = -1 }},
		{"upward gravity", func(c *game.Config) { c.Gravity = 10 }},
		{"no gravity", func(c *game.Config) { c.Gravity = 0 }},
		{"no jump", func(c *game.Config) { c.JumpVelocity = 0 }},
		{"gap taller than window", func(c *game.Config) { c.PipeGap = c.WindowHeight }},
		{"inverted gap range", func(c *game.Config) { c.GapMin, c.GapMax = 0.8, 0.2 }},
		{"gap range above one", func(c *game.Config) { c.GapMax = 1.5 }},
		{"negative offset", func(c *game.Config) { c.PipeOffset = -5 }},
		{"no frames", func(c *game.Config) { c.AnimationFrames = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := game.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), game.ErrInvalidConfig)
		})
	}
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.PipeGap = 0

	w, err := game.NewWorld(cfg, nil)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
	assert.ErrorContains(t, err, "pipe gap")
}

func TestRegisterFlags(t *testing.T) {
	cfg := game.DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{"-gravity", "-500", "-pipe-gap", "120.5", "-seed", "7", "-ceiling=false"})
	require.NoError(t, err)

	assert.Equal(t, float32(-500), cfg.Gravity)
	assert.Equal(t, float32(120.5), cfg.PipeGap)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.False(t, cfg.Ceiling)
	assert.Equal(t, float32(800), cfg.WindowWidth)

	assert.Error(t, fs.Parse([]string{"-width", "wide"}))
}

func TestRegisterFlagsCoversEveryTunable(t *testing.T) {
	cfg := game.DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{
		"-gap-min", "0.3", "-gap-max", "0.6",
		"-floor-height", "40", "-player-size", "60", "-collision-size", "30",
		"-frames", "4", "-frame-seconds", "0.05",
	})
	require.NoError(t, err)

	assert.Equal(t, float32(0.3), cfg.GapMin)
	assert.Equal(t, float32(0.6), cfg.GapMax)
	assert.Equal(t, float32(40), cfg.FloorHeight)
	assert.Equal(t, float32(60), cfg.PlayerSize)
	assert.Equal(t, float32(30), cfg.CollisionSize)
	assert.Equal(t, 4, cfg.AnimationFrames)
	assert.Equal(t, 0.05, cfg.FrameSeconds)
	assert.NoError(t, cfg.Validate())

	// Every validated field can be set from the command line.
	for _, name := range []string{
		"width", "height", "gravity", "jump", "ceiling", "pipe-width", "pipe-gap",
		"pipe-speed", "pipe-offset", "gap-min", "gap-max", "floor-height",
		"player-size", "collision-size", "frames", "frame-seconds", "seed",
	} {
		assert.NotNil(t, fs.Lookup(name), name)
	}
}
