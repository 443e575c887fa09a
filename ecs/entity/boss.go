package entity

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/milk9111/bossgen/assets"
	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/prefabs"
)

// BossOptions controls where and how a boss is placed. Zero values fall back
// to the prefab spec, the base screen size, a time-seeded generator and the
// procedural sprite.
type BossOptions struct {
	Spec   *prefabs.BossSpec
	Width  float64
	Height float64
	Rand   *rand.Rand
	Sprite image.Image
}

// NewBoss creates a boss entity just beyond the right edge of the field. The
// transform is the body center; the left edge starts at Width+OffsetX.
func NewBoss(w *ecs.World, d boss.Descriptor, opts BossOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("boss: nil world")
	}

	spec := opts.Spec
	if spec == nil {
		loaded, err := prefabs.LoadBossSpec()
		if err != nil {
			return 0, fmt.Errorf("boss: load spec: %w", err)
		}
		spec = loaded
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = common.BaseWidth, common.BaseHeight
	}
	rng := opts.Rand
	if rng == nil {
		rng = common.NewRand()
	}

	size := boss.ClampSize(d.Size)
	band := math.Max(height-2*spec.Spawn.BandMargin, 0)
	left := width + spec.Spawn.OffsetX
	top := rng.Float64()*band + spec.Spawn.BandMargin

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("boss: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{
		Descriptor: d.Clone(),
		Size:       size,
		Color:      boss.RGBA(d.Color),
	}); err != nil {
		return 0, fmt.Errorf("boss: add boss: %w", err)
	}

	if err := ecs.Add(w, e, component.BossRuntimeComponent.Kind(), &component.BossRuntime{
		Pattern:      component.MovementPattern(rng.IntN(component.MovementPatterns)),
		State:        component.AttackCharging,
		SpecialTimer: spec.AI.InitialSpecialFrames,
	}); err != nil {
		return 0, fmt.Errorf("boss: add runtime: %w", err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: left + size/2,
		Y: top + size/2,
	}); err != nil {
		return 0, fmt.Errorf("boss: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{VX: spec.Spawn.SpeedX}); err != nil {
		return 0, fmt.Errorf("boss: add velocity: %w", err)
	}

	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: spec.Spawn.Health,
		Max:     spec.Spawn.Health,
	}); err != nil {
		return 0, fmt.Errorf("boss: add health: %w", err)
	}

	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Amount: spec.Spawn.Damage}); err != nil {
		return 0, fmt.Errorf("boss: add damage: %w", err)
	}

	orbs := make([]component.Orb, spec.Aura.OrbCount)
	for i := range orbs {
		orbs[i] = component.Orb{
			Angle:  float64(i) * 2 * math.Pi / float64(len(orbs)),
			Radius: spec.Aura.OrbRadius,
		}
	}
	if err := ecs.Add(w, e, component.AuraComponent.Kind(), &component.Aura{Orbs: orbs}); err != nil {
		return 0, fmt.Errorf("boss: add aura: %w", err)
	}

	img := opts.Sprite
	if img == nil {
		img = assets.BossSprite(d)
	}
	b := img.Bounds()
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: float64(b.Dx()) / 2,
		OriginY: float64(b.Dy()) / 2,
	}); err != nil {
		return 0, fmt.Errorf("boss: add sprite: %w", err)
	}

	return e, nil
}
