package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
)

// InitSpeaker opens the default output device with a 50ms buffer.
func InitSpeaker(rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// SpeakerSystem plays the frame's cues on the speaker. InitSpeaker must
// have succeeded with the bank's sample rate.
type SpeakerSystem struct {
	Bank *Bank
	Cues ecs.Singleton[game.Cues]
}

func (s *SpeakerSystem) Execute(frame *ecs.UpdateFrame) {
	cues := s.Cues.Get()
	if cues == nil {
		return
	}
	for _, cue := range cues.Pending {
		if clip := s.Bank.Streamer(cue); clip != nil {
			speaker.Play(clip)
		}
	}
}
