package game

import "github.com/plus3/flapper/ecs"

// MovementSystem integrates the player. A pending jump replaces the
// vertical velocity before gravity is applied for the frame.
type MovementSystem struct {
	Config Config
	Game   ecs.Singleton[Game]
	Window ecs.Singleton[Window]
	Input  ecs.Singleton[Input]
	Cues   ecs.Singleton[Cues]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	input := s.Input.Get()
	if game == nil || input == nil {
		return
	}

	transform := playerTransform(frame.Storage, game)
	if transform == nil {
		return
	}

	player := &game.Player
	if input.Jump {
		input.Jump = false
		player.Velocity[1] = s.Config.JumpVelocity
		if cues := s.Cues.Get(); cues != nil {
			cues.Emit(CueJump)
		}
	}

	dt := float32(frame.DeltaTime)
	player.Velocity = player.Velocity.Add(player.Acceleration.Mul(dt))
	transform.Translation = transform.Translation.Add(player.Velocity.Mul(dt).Vec3(0))

	if window := s.Window.Get(); s.Config.Ceiling && window != nil {
		limit := window.Height/2 - player.CollisionBox.Max[1]
		if transform.Translation[1] > limit {
			transform.Translation[1] = limit
			player.Velocity[1] = min(player.Velocity[1], 0)
		}
	}
}
