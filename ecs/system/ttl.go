package system

import (
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
)

// TTLSystem counts down projectile and particle lifetimes and destroys the
// entity on the tick its TTL runs out.
type TTLSystem struct {
	expired int
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 1 {
			ttl.Frames--
			return
		}
		ecs.DestroyEntity(w, e)
		s.expired++
	})
}

// Expired is the number of entities removed so far.
func (s *TTLSystem) Expired() int {
	return s.expired
}
