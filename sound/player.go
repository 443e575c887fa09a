package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player plays synthesized cues through ebiten's audio context. Rendered
// tones are cached per (name, freq, duration).
type Player struct {
	ctx   *audio.Context
	mu    sync.Mutex
	cache map[string][]byte
	live  []*audio.Player
}

func NewPlayer() *Player {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(SampleRate))
	}
	return &Player{ctx: ctx, cache: make(map[string][]byte)}
}

// Play implements the sound collaborator used by the director and systems.
func (p *Player) Play(name string, freq float64, duration time.Duration) {
	if p == nil || p.ctx == nil || duration <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	key := fmt.Sprintf("%s/%.1f/%d", name, freq, duration.Milliseconds())
	data, ok := p.cache[key]
	if !ok {
		data = Render(Tone(name, freq, duration))
		p.cache[key] = data
	}

	pl := p.ctx.NewPlayerFromBytes(data)
	pl.Play()

	kept := p.live[:0]
	for _, old := range p.live {
		if old.IsPlaying() {
			kept = append(kept, old)
			continue
		}
		if err := old.Close(); err != nil {
			log.Printf("sound: close player: %v", err)
		}
	}
	p.live = append(kept, pl)
}
