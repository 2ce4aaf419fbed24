package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/stretchr/testify/require"
)

// cueRecorder is a sink that keeps every cue it sees.
type cueRecorder struct {
	Cues ecs.Singleton[game.Cues]
	seen []game.Cue
}

func (r *cueRecorder) Execute(frame *ecs.UpdateFrame) {
	r.seen = append(r.seen, r.Cues.Get().Pending...)
}

func (r *cueRecorder) count(cue game.Cue) int {
	n := 0
	for _, c := range r.seen {
		if c == cue {
			n++
		}
	}
	return n
}

// centredGaps always places the gap around y = 0.
func centredGaps(cfg *game.Config) {
	cfg.GapMin, cfg.GapMax = 0.5, 0.5
}

func newWorld(t *testing.T, input ecs.System, mutate ...func(*game.Config)) (*game.World, *cueRecorder) {
	t.Helper()

	cfg := game.DefaultConfig()
	cfg.Seed = 42
	for _, m := range mutate {
		m(&cfg)
	}

	w, err := game.NewWorld(cfg, nil)
	require.NoError(t, err)

	recorder := &cueRecorder{}
	w.Install(input, recorder)
	return w, recorder
}

// hover stops the player from falling.
func hover(w *game.World) {
	w.Game.Get().Player.Acceleration = mgl32.Vec2{}
}
