package game

import "github.com/plus3/flapper/ecs"

// GameRunning holds while the game is in the Playing state.
func GameRunning(storage *ecs.Storage) bool {
	var game *Game
	return storage.ReadSingleton(&game) && game.State == Playing
}

// MetricsSystem counts every frame, including those after game over.
type MetricsSystem struct {
	Metrics ecs.Singleton[Metrics]
}

func (s *MetricsSystem) Execute(frame *ecs.UpdateFrame) {
	metrics := s.Metrics.Get()
	if metrics == nil {
		return
	}
	metrics.Frames++
	metrics.Elapsed += frame.DeltaTime
}

// CueResetSystem runs last and drops the frame's cues.
type CueResetSystem struct {
	Cues ecs.Singleton[Cues]
}

func (s *CueResetSystem) Execute(frame *ecs.UpdateFrame) {
	if cues := s.Cues.Get(); cues != nil {
		cues.Pending = cues.Pending[:0]
	}
}
