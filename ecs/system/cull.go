package system

import (
	"log"

	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
)

// CullSystem destroys bosses, bullets and particles that drift more than
// Margin beyond the playfield.
type CullSystem struct {
	Width, Height float64
	Margin        float64
}

func NewCullSystem(width, height, margin float64) *CullSystem {
	return &CullSystem{Width: width, Height: height, Margin: margin}
}

func (s *CullSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if s.inside(t) {
			return
		}
		if b, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok {
			log.Printf("boss: %s left the field", b.Descriptor.Name)
			ecs.DestroyEntity(w, e)
			return
		}
		if ecs.Has(w, e, component.BulletComponent.Kind()) || ecs.Has(w, e, component.ParticleComponent.Kind()) {
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *CullSystem) inside(t *component.Transform) bool {
	return t.X >= -s.Margin && t.X <= s.Width+s.Margin &&
		t.Y >= -s.Margin && t.Y <= s.Height+s.Margin
}
