package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/prefabs"
)

// NewBullet creates a boss projectile centered at (x, y) that expires after
// life ticks.
func NewBullet(w *ecs.World, x, y, vx, vy float64, b component.Bullet, life int) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("bullet: nil world")
	}
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("bullet: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{VX: vx, VY: vy}); err != nil {
		return 0, fmt.Errorf("bullet: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.BulletComponent.Kind(), &b); err != nil {
		return 0, fmt.Errorf("bullet: add bullet: %w", err)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Amount: b.Damage}); err != nil {
		return 0, fmt.Errorf("bullet: add damage: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: life}); err != nil {
		return 0, fmt.Errorf("bullet: add ttl: %w", err)
	}

	return e, nil
}

// NewParticle creates a visual-only particle.
func NewParticle(w *ecs.World, x, y, vx, vy float64, p component.Particle) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("particle: nil world")
	}
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("particle: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{VX: vx, VY: vy}); err != nil {
		return 0, fmt.Errorf("particle: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleComponent.Kind(), &p); err != nil {
		return 0, fmt.Errorf("particle: add particle: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: p.MaxLife}); err != nil {
		return 0, fmt.Errorf("particle: add ttl: %w", err)
	}

	return e, nil
}

// NewAnnouncementBurst scatters the arrival burst across the whole field.
func NewAnnouncementBurst(w *ecs.World, spec prefabs.BossAnnouncementSpec, width, height float64, rng *rand.Rand) ([]ecs.Entity, error) {
	if rng == nil {
		return nil, fmt.Errorf("announcement: nil rand")
	}
	col := toRGBA(spec.Color.Or(defaultAnnouncementColor))

	out := make([]ecs.Entity, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		e, err := NewParticle(w,
			rng.Float64()*width,
			rng.Float64()*height,
			(rng.Float64()-0.5)*spec.Speed,
			(rng.Float64()-0.5)*spec.Speed,
			component.Particle{
				Size:    rng.Float64()*(spec.SizeMax-spec.SizeMin) + spec.SizeMin,
				Color:   col,
				MaxLife: spec.Life,
			})
		if err != nil {
			return out, fmt.Errorf("announcement: %w", err)
		}
		if err := ecs.Add(w, e, component.AnnouncementTagComponent.Kind(), &component.AnnouncementTag{}); err != nil {
			return out, fmt.Errorf("announcement: add tag: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
