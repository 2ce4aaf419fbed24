package game

import (
	"math"

	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// AutopilotSystem plays the game. It aims for the centre of the next gap
// and jumps whenever the player sinks half a jump's height below it, which
// keeps the bird bobbing around the target.
type AutopilotSystem struct {
	Config Config
	Game   ecs.Singleton[Game]
	Input  ecs.Singleton[Input]
	Pipes  ecs.Query[struct {
		*geom.Transform
		*Mesh2D
		*Pipe
	}]
}

func (s *AutopilotSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	input := s.Input.Get()
	if game == nil || input == nil || game.State != Playing {
		return
	}
	transform := playerTransform(frame.Storage, game)
	if transform == nil {
		return
	}

	box := game.Player.CollisionBox.Translate(transform.Translation2D())
	target := s.target(box)
	if transform.Translation[1] < target-s.margin() {
		input.Jump = true
	}
}

// target is the centre of the gap of the nearest pair not yet behind the
// player, or the window centre when there is none.
func (s *AutopilotSystem) target(box geom.Rect) float32 {
	target := float32(0)
	nearest := float32(math.Inf(1))
	for pipe := range s.Pipes.Values() {
		if !pipe.Pipe.Top {
			continue
		}
		rect, ok := pipe.Mesh2D.Mesh.WorldRect(*pipe.Transform)
		if !ok || rect.Max[0] < box.Min[0] {
			continue
		}
		if rect.Min[0] < nearest {
			nearest = rect.Min[0]
			target = rect.Min[1] - s.Config.PipeGap/2
		}
	}
	return target
}

// margin is half the height a jump gains from rest.
func (s *AutopilotSystem) margin() float32 {
	v := s.Config.JumpVelocity
	return v * v / (-4 * s.Config.Gravity)
}
