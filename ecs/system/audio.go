package system

import (
	"time"

	"github.com/milk9111/bossgen/ecs"
)

// SoundPlayer plays a named cue at a base frequency.
type SoundPlayer interface {
	Play(name string, frequency float64, duration time.Duration)
}

// AudioSystem forwards queued sound events to the player.
type AudioSystem struct {
	player SoundPlayer
}

func NewAudioSystem(player SoundPlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

func (a *AudioSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().DrainType(EventSound) {
		snd, ok := evt.Data.(SoundEvent)
		if !ok || a.player == nil {
			continue
		}
		a.player.Play(snd.Name, snd.Frequency, snd.Duration)
	}
}
