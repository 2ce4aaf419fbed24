package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// SetupPlayer spawns the bird at the origin.
type SetupPlayer struct {
	Config Config
	Game   ecs.Singleton[Game]
}

func (s *SetupPlayer) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	if game == nil {
		return
	}

	size := s.Config.PlayerSize
	entity := frame.Commands.Spawn(
		geom.FromXYZ(0, 0, 0),
		Sprite{Size: mgl32.Vec2{size, size}},
		FrameAnimation{
			Frames: s.Config.AnimationFrames,
			Timer:  NewRepeatingTimer(s.Config.FrameSeconds),
		},
		PlayerTag{},
	)

	box := s.Config.CollisionSize
	game.Player = Player{
		Entity:       entity,
		Acceleration: mgl32.Vec2{0, s.Config.Gravity},
		CollisionBox: geom.RectFromCenterSize(mgl32.Vec2{}, mgl32.Vec2{box, box}),
	}
}

// SetupPipes prepares the mesh every pipe shares. Pipes span the full
// window height so that one end is always off-screen.
type SetupPipes struct {
	Config Config
	Game   ecs.Singleton[Game]
	Window ecs.Singleton[Window]
}

func (s *SetupPipes) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	window := s.Window.Get()
	if game == nil || window == nil {
		return
	}

	game.Pipes.Mesh = geom.NewRectangleMesh(s.Config.PipeWidth, window.Height)
	game.Pipes.Color = PipeColor
}

type SetupFloor struct {
	Config Config
	Game   ecs.Singleton[Game]
	Window ecs.Singleton[Window]
}

func (s *SetupFloor) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	window := s.Window.Get()
	if game == nil || window == nil {
		return
	}

	h := s.Config.FloorHeight
	game.Floor = frame.Commands.Spawn(
		geom.FromXYZ(0, -window.Height/2+h/2, 0.5),
		Mesh2D{Mesh: geom.NewRectangleMesh(window.Width, h), Color: FloorColor},
		Floor{},
	)
}

// playerTransform resolves the player's transform, or nil before the
// startup commands are flushed.
func playerTransform(storage *ecs.Storage, game *Game) *geom.Transform {
	id, ok := storage.ResolveEntityRef(game.Player.Entity)
	if !ok {
		return nil
	}
	return ecs.ReadComponent[geom.Transform](storage, id)
}
