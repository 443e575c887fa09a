package director

import (
	"log"
	"math/rand/v2"

	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/content"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/entity"
	"github.com/milk9111/bossgen/ecs/system"
	"github.com/milk9111/bossgen/prefabs"
)

// SoundPlayer plays the boss arrival cue.
type SoundPlayer = system.SoundPlayer

// Spawner turns pending descriptors into boss entities.
type Spawner struct {
	World  *ecs.World
	State  *content.State
	Interp *content.Interpreter
	Spec   *prefabs.BossSpec
	Sound  SoundPlayer
	Rand   *rand.Rand

	Width, Height float64
}

func (s *Spawner) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = common.NewRand()
	}
	return s.Rand
}

// EnsurePending queues a fallback descriptor when nothing is pending.
func (s *Spawner) EnsurePending() {
	if len(s.State.Pending) == 0 {
		s.Interp.Fallback()
	}
}

// Spawn creates the oldest pending boss, using a fallback when the queue is
// empty. It reports false only if the entity could not be built.
func (s *Spawner) Spawn() (ecs.Entity, bool) {
	s.EnsurePending()
	d, ok := s.State.Dequeue()
	if !ok {
		log.Printf("director: no boss to spawn")
		return 0, false
	}

	e, err := entity.NewBoss(s.World, d, entity.BossOptions{
		Spec:   s.Spec,
		Width:  s.Width,
		Height: s.Height,
		Rand:   s.rng(),
	})
	if err != nil {
		log.Printf("director: spawn %q: %v", d.Name, err)
		return 0, false
	}

	s.announce(d.Name, d.Entrance, d.Difficulty, d.Provenance.String())
	return e, true
}

func (s *Spawner) announce(name, entrance string, difficulty int, provenance string) {
	log.Printf("boss: %s arrives (difficulty %d/10, %s): %q", name, difficulty, provenance, entrance)

	if s.Spec == nil {
		return
	}
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = common.BaseWidth, common.BaseHeight
	}
	if _, err := entity.NewAnnouncementBurst(s.World, s.Spec.Announcement, width, height, s.rng()); err != nil {
		log.Printf("director: announcement: %v", err)
	}
	if s.Sound != nil {
		snd := s.Spec.Sounds.Arrival
		s.Sound.Play(snd.Name, snd.Frequency, snd.Duration())
	}
}
