package game

import "github.com/plus3/flapper/ecs"

type AnimationSystem struct {
	Sprites ecs.Query[struct {
		*Sprite
		*FrameAnimation
	}]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Sprites.Values() {
		anim := item.FrameAnimation
		anim.Timer.Tick(frame.DeltaTime)

		laps := anim.Timer.TimesFinishedThisTick()
		if laps == 0 || anim.Frames <= 0 {
			continue
		}
		anim.Current = (anim.Current + laps) % anim.Frames
		item.Sprite.Frame = anim.Current
	}
}
