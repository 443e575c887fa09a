package system

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/prefabs"
)

// BossVisualSystem animates boss auras and orbiting orbs.
type BossVisualSystem struct {
	spec *prefabs.BossSpec
	rng  *rand.Rand
}

func NewBossVisualSystem(spec *prefabs.BossSpec, rng *rand.Rand) *BossVisualSystem {
	if rng == nil {
		rng = common.NewRand()
	}
	return &BossVisualSystem{spec: spec, rng: rng}
}

func (s *BossVisualSystem) SetSpec(spec *prefabs.BossSpec) {
	if spec != nil {
		s.spec = spec
	}
}

func (s *BossVisualSystem) Update(w *ecs.World) {
	if w == nil || s.spec == nil {
		return
	}
	cfg := s.spec.Aura

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.AuraComponent.Kind(),
		component.TransformComponent.Kind(),
		func(_ ecs.Entity, b *component.Boss, aura *component.Aura, tr *component.Transform) {
			aura.Phase += cfg.PhaseStep
			aura.Intensity = math.Sin(aura.Phase)*0.5 + 0.5

			if s.rng.Float64() < cfg.ParticleChance {
				dir := cp.ForAngle(s.rng.Float64() * 2 * math.Pi)
				pos := cp.Vector{X: tr.X, Y: tr.Y}.Add(dir.Mult(b.Size + cfg.ParticleOffset))
				v := dir.Mult(cfg.ParticleSpeed)
				aura.Particles = append(aura.Particles, component.AuraParticle{
					X: pos.X, Y: pos.Y,
					VX: v.X, VY: v.Y,
					Life:    cfg.ParticleLife,
					MaxLife: cfg.ParticleLife,
					Size:    s.rng.Float64()*(cfg.ParticleMax-cfg.ParticleMin) + cfg.ParticleMin,
				})
			}

			kept := aura.Particles[:0]
			for _, p := range aura.Particles {
				p.X += p.VX
				p.Y += p.VY
				p.Life--
				if p.Life > 0 {
					kept = append(kept, p)
				}
			}
			aura.Particles = kept

			for i := range aura.Orbs {
				aura.Orbs[i].Angle = math.Mod(aura.Orbs[i].Angle+cfg.OrbSpeed, 2*math.Pi)
			}
		})
}
