package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// Sprite is drawn centred on the entity's transform. Frame selects the
// animation frame; front-ends decide what a frame looks like.
type Sprite struct {
	Size  mgl32.Vec2
	Frame int
	FlipY bool
}

// FrameAnimation cycles Sprite.Frame through Frames frames, one per timer
// lap.
type FrameAnimation struct {
	Frames  int
	Current int
	Timer   Timer
}

// Mesh2D is a flat coloured mesh. Pipes share one mesh.
type Mesh2D struct {
	Mesh  *geom.Mesh
	Color color.RGBA
}

type PlayerTag struct{}

type Pipe struct {
	Top    bool
	Scored bool
}

type Floor struct{}

// NewRegistry registers every component the game spawns.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[geom.Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[FrameAnimation](registry)
	ecs.RegisterComponent[Mesh2D](registry)
	ecs.RegisterComponent[PlayerTag](registry)
	ecs.RegisterComponent[Pipe](registry)
	ecs.RegisterComponent[Floor](registry)
	return registry
}
