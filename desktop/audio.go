package desktop

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/sound"
)

// AudioSystem starts a new player for every cue of the frame. The bank's
// sample rate must match the context's.
type AudioSystem struct {
	Context *audio.Context
	Bank    *sound.Bank
	Cues    ecs.Singleton[game.Cues]
}

func (s *AudioSystem) Execute(frame *ecs.UpdateFrame) {
	cues := s.Cues.Get()
	if cues == nil {
		return
	}
	for _, cue := range cues.Pending {
		if pcm := s.Bank.PCM(cue); pcm != nil {
			s.Context.NewPlayerFromBytes(pcm).Play()
		}
	}
}
