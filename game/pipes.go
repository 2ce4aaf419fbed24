package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/geom"
)

// PipeHeights places a pipe pair for gap parameter h in [0, 1]. Both pipes
// are windowHeight tall; the returned values are their centres. h = 0 puts
// the gap at the top of the window, h = 1 at the bottom.
func PipeHeights(h, windowHeight, gap float32) (top, bottom float32) {
	span := windowHeight - gap
	top = (1-h)*span + gap
	bottom = -gap - h*span
	return top, bottom
}

// PipeSystem scrolls pipes left, despawns those that have fully left the
// window and spawns a new pair at the right edge once the rightmost pipe
// has travelled PipeOffset.
type PipeSystem struct {
	Config  Config
	Rand    *rand.Rand
	Game    ecs.Singleton[Game]
	Window  ecs.Singleton[Window]
	Metrics ecs.Singleton[Metrics]
}

func (s *PipeSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	window := s.Window.Get()
	metrics := s.Metrics.Get()
	if game == nil || window == nil || metrics == nil {
		return
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	halfWidth := window.Width / 2
	halfPipe := s.Config.PipeWidth / 2
	step := s.Config.PipeSpeed * float32(frame.DeltaTime)

	rightmost := float32(math.Inf(-1))
	live := game.Pipes.Entities[:0]
	for _, ref := range game.Pipes.Entities {
		id, ok := frame.Storage.ResolveEntityRef(ref)
		if !ok {
			continue
		}
		transform := ecs.ReadComponent[geom.Transform](frame.Storage, id)
		if transform == nil {
			continue
		}

		if transform.Translation[0]+halfPipe < -halfWidth {
			frame.Commands.Delete(id)
			metrics.PipesDespawned++
			continue
		}

		transform.Translation[0] -= step
		rightmost = max(rightmost, transform.Translation[0])
		live = append(live, ref)
	}
	clear(game.Pipes.Entities[len(live):])

	if rightmost < halfWidth-s.Config.PipeOffset {
		h := s.Config.GapMin + s.Rand.Float32()*(s.Config.GapMax-s.Config.GapMin)
		top, bottom := PipeHeights(h, window.Height, s.Config.PipeGap)
		live = append(live,
			s.spawn(frame, game, halfWidth, top, true),
			s.spawn(frame, game, halfWidth, bottom, false),
		)
		metrics.PipesSpawned += 2
	}

	game.Pipes.Entities = live
	metrics.PeakPipes = max(metrics.PeakPipes, len(live))
}

func (s *PipeSystem) spawn(frame *ecs.UpdateFrame, game *Game, x, y float32, top bool) *ecs.EntityRef {
	return frame.Commands.Spawn(
		geom.FromXYZ(x, y, 0),
		Mesh2D{Mesh: game.Pipes.Mesh, Color: game.Pipes.Color},
		Pipe{Top: top},
	)
}
