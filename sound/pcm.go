package sound

import (
	"github.com/gopxl/beep"
	"github.com/plus3/flapper/game"
)

// Format is 16-bit signed stereo, what ebiten/audio expects.
func Format(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// EncodePCM drains s into little-endian signed PCM. s must be finite.
func EncodePCM(s beep.Streamer, format beep.Format) []byte {
	var (
		buf   [512][2]float64
		out   []byte
		frame = make([]byte, format.Width())
	)
	for {
		n, ok := s.Stream(buf[:])
		for _, sample := range buf[:n] {
			format.EncodeSigned(frame, sample)
			out = append(out, frame...)
		}
		if !ok {
			return out
		}
	}
}

// Bank holds every cue rendered once, both as PCM for byte based players
// and as a beep buffer for the speaker.
type Bank struct {
	Format  beep.Format
	pcm     map[game.Cue][]byte
	buffers map[game.Cue]*beep.Buffer
}

var cues = []game.Cue{game.CueJump, game.CueScore, game.CueHit}

func NewBank(rate beep.SampleRate) *Bank {
	b := &Bank{
		Format:  Format(rate),
		pcm:     make(map[game.Cue][]byte, len(cues)),
		buffers: make(map[game.Cue]*beep.Buffer, len(cues)),
	}
	for _, cue := range cues {
		b.pcm[cue] = EncodePCM(Synth(cue, rate), b.Format)

		buffer := beep.NewBuffer(b.Format)
		buffer.Append(Synth(cue, rate))
		b.buffers[cue] = buffer
	}
	return b
}

// PCM is nil for unknown cues.
func (b *Bank) PCM(cue game.Cue) []byte {
	return b.pcm[cue]
}

// Streamer replays cue from the start, or returns nil for unknown cues.
func (b *Bank) Streamer(cue game.Cue) beep.StreamSeeker {
	buffer := b.buffers[cue]
	if buffer == nil {
		return nil
	}
	return buffer.Streamer(0, buffer.Len())
}
