package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

type State int

const (
	Playing State = iota
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Player keeps the kinematics outside the entity; only the transform lives
// in storage.
type Player struct {
	Entity       *ecs.EntityRef
	Velocity     mgl32.Vec2
	Acceleration mgl32.Vec2
	// CollisionBox is in the player's local space.
	CollisionBox geom.Rect
}

// Pipes lists live pipe entities in spawn order, top before bottom.
type Pipes struct {
	Entities []*ecs.EntityRef
	Mesh     *geom.Mesh
	Color    color.RGBA
}

// Game is the shared state of one run.
type Game struct {
	Player Player
	Pipes  Pipes
	Floor  *ecs.EntityRef
	State  State
	Score  int
}

// Window is the visible world area, centred on the origin.
type Window struct {
	Width  float32
	Height float32
}

// Input is written by front-ends before the movement stage and consumed by
// it.
type Input struct {
	Jump bool
}

type Cue int

const (
	CueJump Cue = iota
	CueScore
	CueHit
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueScore:
		return "score"
	case CueHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Cues collects the events of the current frame for sound and effects.
// The list is cleared at the end of every frame.
type Cues struct {
	Pending []Cue
}

func (c *Cues) Emit(cue Cue) {
	c.Pending = append(c.Pending, cue)
}

type Metrics struct {
	Frames         int64
	Elapsed        float64
	PipesSpawned   int
	PipesDespawned int
	PeakPipes      int
}

var (
	PipeColor  = color.RGBA{0, 255, 0, 255}
	FloorColor = color.RGBA{139, 69, 19, 255}
)
