package game

import (
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// ScoreSystem awards a point for each pipe pair the player clears. A pair
// counts once its top pipe is entirely behind the player's collision box.
type ScoreSystem struct {
	Game  ecs.Singleton[Game]
	Cues  ecs.Singleton[Cues]
	Pipes ecs.Query[struct {
		*geom.Transform
		*Mesh2D
		*Pipe
	}]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	if game == nil || game.State != Playing {
		return
	}
	transform := playerTransform(frame.Storage, game)
	if transform == nil {
		return
	}
	left := game.Player.CollisionBox.Translate(transform.Translation2D()).Min[0]

	for pipe := range s.Pipes.Values() {
		if !pipe.Pipe.Top || pipe.Pipe.Scored {
			continue
		}
		rect, ok := pipe.Mesh2D.Mesh.WorldRect(*pipe.Transform)
		if !ok || rect.Max[0] >= left {
			continue
		}
		pipe.Pipe.Scored = true
		game.Score++
		if cues := s.Cues.Get(); cues != nil {
			cues.Emit(CueScore)
		}
	}
}
