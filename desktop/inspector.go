package desktop

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flapper/game"
)

// Inspector is a debug window showing the game resources.
type Inspector struct {
	World *game.World
}

func (i *Inspector) Render() {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	g := i.World.Game.Get()
	imgui.Text(fmt.Sprintf("State: %s", g.State))
	imgui.Text(fmt.Sprintf("Score: %d", g.Score))
	imgui.Text(fmt.Sprintf("Seed: %d", i.World.Seed))

	if t := i.World.PlayerTransform(); t != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Player: (%.1f, %.1f)", t.Translation[0], t.Translation[1]))
		imgui.Text(fmt.Sprintf("Velocity: (%.1f, %.1f)", g.Player.Velocity[0], g.Player.Velocity[1]))
	}

	m := i.World.Metrics.Get()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Live pipes: %d (peak %d)", len(g.Pipes.Entities), m.PeakPipes))
	imgui.Text(fmt.Sprintf("Spawned: %d  Despawned: %d", m.PipesSpawned, m.PipesDespawned))
	imgui.Text(fmt.Sprintf("Frames: %d  Time: %.1fs", m.Frames, m.Elapsed))

	imgui.End()
}
