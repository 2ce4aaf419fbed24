package game

import (
	"log"

	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// HasCollided reports whether playerBox, in world space, overlaps the
// bounding rectangle of mesh placed by transform. A mesh without vertices
// never collides.
func HasCollided(playerBox geom.Rect, mesh *geom.Mesh, transform geom.Transform) bool {
	rect, ok := mesh.WorldRect(transform)
	return ok && playerBox.Overlaps(rect)
}

// CollisionSystem ends the game on the first overlap between the player and
// a pipe or the floor.
type CollisionSystem struct {
	Game ecs.Singleton[Game]
	Cues ecs.Singleton[Cues]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	if game == nil || game.State != Playing {
		return
	}

	transform := playerTransform(frame.Storage, game)
	if transform == nil {
		return
	}
	box := game.Player.CollisionBox.Translate(transform.Translation2D())

	for _, ref := range game.Pipes.Entities {
		if s.hits(frame.Storage, box, ref) {
			s.end(game, "pipe", transform)
			return
		}
	}
	if s.hits(frame.Storage, box, game.Floor) {
		s.end(game, "floor", transform)
	}
}

func (s *CollisionSystem) hits(storage *ecs.Storage, box geom.Rect, ref *ecs.EntityRef) bool {
	id, ok := storage.ResolveEntityRef(ref)
	if !ok {
		return false
	}
	transform := ecs.ReadComponent[geom.Transform](storage, id)
	mesh := ecs.ReadComponent[Mesh2D](storage, id)
	if transform == nil || mesh == nil {
		return false
	}
	return HasCollided(box, mesh.Mesh, *transform)
}

func (s *CollisionSystem) end(game *Game, what string, at *geom.Transform) {
	game.State = GameOver
	if cues := s.Cues.Get(); cues != nil {
		cues.Emit(CueHit)
	}
	log.Printf("hit %s at (%.1f, %.1f), game over with score %d", what, at.Translation[0], at.Translation[1], game.Score)
}
