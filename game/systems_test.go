package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartupSpawnsPlayerAndFloor(t *testing.T) {
	w, _ := newWorld(t, nil)
	assert.Nil(t, w.PlayerTransform())

	w.Step(0)

	player := w.PlayerTransform()
	require.NotNil(t, player)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, player.Translation)

	g := w.Game.Get()
	sprite := ecs.ReadComponent[game.Sprite](w.Storage, g.Player.Entity.Id)
	require.NotNil(t, sprite)
	assert.Equal(t, mgl32.Vec2{75, 75}, sprite.Size)
	assert.Equal(t, float32(50), g.Player.CollisionBox.Width())
	assert.Equal(t, mgl32.Vec2{0, -900}, g.Player.Acceleration)

	require.True(t, g.Floor.Valid())
	floor := ecs.ReadComponent[geom.Transform](w.Storage, g.Floor.Id)
	assert.Equal(t, float32(-275), floor.Translation[1])
	mesh := ecs.ReadComponent[game.Mesh2D](w.Storage, g.Floor.Id)
	assert.Equal(t, game.FloorColor, mesh.Color)

	box, ok := g.Pipes.Mesh.ComputeAABB()
	require.True(t, ok)
	assert.Equal(t, float32(600), box.Max[1]-box.Min[1])
	assert.Equal(t, float32(80), box.Max[0]-box.Min[0])
}

func TestGravityAndJump(t *testing.T) {
	w, recorder := newWorld(t, nil, centredGaps)

	w.Step(0.1)
	g := w.Game.Get()
	assert.InDelta(t, -90, g.Player.Velocity[1], 1e-3)
	assert.InDelta(t, -9, w.PlayerTransform().Translation[1], 1e-3)

	w.Input.Get().Jump = true
	w.Step(0.1)

	assert.False(t, w.Input.Get().Jump, "a jump is consumed")
	assert.InDelta(t, 230, g.Player.Velocity[1], 1e-3)
	assert.InDelta(t, 14, w.PlayerTransform().Translation[1], 1e-3)
	assert.Equal(t, 1, recorder.count(game.CueJump))

	w.Step(0.1)
	assert.InDelta(t, 140, g.Player.Velocity[1], 1e-3)
	assert.Equal(t, 1, recorder.count(game.CueJump))
}

func TestCeiling(t *testing.T) {
	for _, ceiling := range []bool{true, false} {
		w, _ := newWorld(t, nil, centredGaps, func(c *game.Config) { c.Ceiling = ceiling })
		w.Step(0)

		w.PlayerTransform().Translation[1] = 280
		w.Game.Get().Player.Velocity = mgl32.Vec2{0, 500}
		w.Step(0.01)

		y := w.PlayerTransform().Translation[1]
		if ceiling {
			assert.Equal(t, float32(275), y)
			assert.Zero(t, w.Game.Get().Player.Velocity[1])
		} else {
			assert.InDelta(t, 284.91, y, 1e-3)
		}
	}
}

func TestHasCollided(t *testing.T) {
	player := geom.RectFromCenterSize(mgl32.Vec2{}, mgl32.Vec2{50, 50})
	block := geom.NewRectangleMesh(50, 50)

	tests := []struct {
		name string
		mesh *geom.Mesh
		at   geom.Transform
		want bool
	}{
		{"overlapping", block, geom.FromXYZ(30, 10, 0), true},
		{"touching edge", block, geom.FromXYZ(50, 0, 0), false},
		{"far away", block, geom.FromXYZ(400, 0, 0), false},
		{"tall pipe over player", geom.NewRectangleMesh(80, 600), geom.FromXYZ(0, 320, 0), true},
		{"tall pipe above player", geom.NewRectangleMesh(80, 600), geom.FromXYZ(0, 325, 0), false},
		{"empty mesh", &geom.Mesh{}, geom.FromXYZ(0, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.HasCollided(player, tt.mesh, tt.at))
		})
	}
}

func TestCollisionWithPipeEndsGame(t *testing.T) {
	// Gap at the very top: the bottom pipe reaches up to y = 150.
	w, recorder := newWorld(t, nil, func(c *game.Config) { c.GapMin, c.GapMax = 0, 0 })
	w.Step(0)
	hover(w)

	w.Step(1)
	w.Step(1)
	require.Equal(t, game.Playing, w.State())

	w.Step(1)
	assert.Equal(t, game.GameOver, w.State())
	assert.Equal(t, 1, recorder.count(game.CueHit))

	frozen := pipeXs(t, w)
	for range 3 {
		w.Input.Get().Jump = true
		w.Step(1)
	}
	assert.Equal(t, game.GameOver, w.State(), "game over is final")
	assert.Equal(t, frozen, pipeXs(t, w))
	assert.Equal(t, 1, recorder.count(game.CueHit))
	assert.Zero(t, recorder.count(game.CueJump))
	assert.Equal(t, int64(7), w.Metrics.Get().Frames)
}

func TestFallingOntoFloorEndsGame(t *testing.T) {
	w, recorder := newWorld(t, nil, centredGaps)

	for range 200 {
		w.Step(1.0 / 60)
		if w.State() == game.GameOver {
			break
		}
	}
	require.Equal(t, game.GameOver, w.State())
	assert.Less(t, w.PlayerTransform().Translation[1], float32(-225))
	assert.Equal(t, 1, recorder.count(game.CueHit))
	assert.Zero(t, w.Game.Get().Score)
}

func TestGameRunning(t *testing.T) {
	storage := ecs.NewStorage(game.NewRegistry())
	assert.False(t, game.GameRunning(storage))

	g := ecs.NewSingleton(storage, game.Game{})
	assert.True(t, game.GameRunning(storage))

	g.Get().State = game.GameOver
	assert.False(t, game.GameRunning(storage))
}

func TestAnimationCyclesFrames(t *testing.T) {
	w, _ := newWorld(t, nil, centredGaps, func(c *game.Config) { c.FrameSeconds = 0.125 })
	w.Step(0)
	hover(w)

	id := w.Game.Get().Player.Entity.Id
	frame := func() int { return ecs.ReadComponent[game.Sprite](w.Storage, id).Frame }

	assert.Equal(t, 0, frame())
	w.Step(0.0625)
	assert.Equal(t, 0, frame())
	w.Step(0.0625)
	assert.Equal(t, 1, frame())
	w.Step(0.25)
	assert.Equal(t, 3, frame())
	w.Step(0.625)
	assert.Equal(t, 0, frame(), "frames wrap around")
	assert.Equal(t, 0, ecs.ReadComponent[game.FrameAnimation](w.Storage, id).Current)
}

func TestAutopilotKeepsFlying(t *testing.T) {
	cfg := game.DefaultConfig()
	w, recorder := newWorld(t, &game.AutopilotSystem{Config: cfg}, centredGaps)

	for range 60 * 20 {
		w.Step(1.0 / 60)
	}

	assert.Equal(t, game.Playing, w.State())
	assert.GreaterOrEqual(t, w.Game.Get().Score, 4)
	assert.Positive(t, recorder.count(game.CueJump))
}

func TestAutopilotJumpsOnlyBelowTarget(t *testing.T) {
	cfg := game.DefaultConfig()
	w, _ := newWorld(t, &game.AutopilotSystem{Config: cfg}, centredGaps)
	w.Step(0)
	hover(w)

	w.PlayerTransform().Translation[1] = 100
	w.Step(0)
	assert.Zero(t, w.Game.Get().Player.Velocity[1])

	w.PlayerTransform().Translation[1] = -100
	w.Step(0)
	assert.Equal(t, cfg.JumpVelocity, w.Game.Get().Player.Velocity[1])
}
