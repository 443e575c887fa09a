package system

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/ecs/entity"
	"github.com/milk9111/bossgen/prefabs"
)

// BossAISystem drives boss movement, the special attack state machine and
// regular fire.
type BossAISystem struct {
	spec *prefabs.BossSpec
	rng  *rand.Rand
}

func NewBossAISystem(spec *prefabs.BossSpec, rng *rand.Rand) *BossAISystem {
	if rng == nil {
		rng = common.NewRand()
	}
	return &BossAISystem{spec: spec, rng: rng}
}

// SetSpec swaps the tuning used from the next tick on.
func (s *BossAISystem) SetSpec(spec *prefabs.BossSpec) {
	if spec != nil {
		s.spec = spec
	}
}

func (s *BossAISystem) Update(w *ecs.World) {
	if w == nil || s.spec == nil {
		return
	}

	for _, e := range ecs.Query(w,
		component.BossComponent.Kind().ID(),
		component.BossRuntimeComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
		component.VelocityComponent.Kind().ID(),
	) {
		b, _ := ecs.Get(w, e, component.BossComponent.Kind())
		rt, _ := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		if b == nil || rt == nil || tr == nil || vel == nil {
			continue
		}

		s.move(rt, vel)
		s.special(w, e, b, rt, tr)
		s.regularFire(w, e, b, rt, tr)
	}
}

func (s *BossAISystem) move(rt *component.BossRuntime, vel *component.Velocity) {
	ai := s.spec.AI
	rt.Phase++
	t := rt.Phase

	switch rt.Pattern {
	case component.MovementStraight:
		vel.VY = 0
	case component.MovementSinusoidal:
		vel.VY = math.Sin(t*ai.SineFrequency) * ai.SineAmplitude
	case component.MovementCircularDrift:
		vel.VY = math.Cos(t*ai.DriftFrequency) * ai.DriftAmplitude
		vel.VX = s.spec.Spawn.SpeedX + math.Sin(t*ai.DriftFrequency)*ai.DriftWobble
	}
}

func (s *BossAISystem) special(w *ecs.World, e ecs.Entity, b *component.Boss, rt *component.BossRuntime, tr *component.Transform) {
	switch rt.State {
	case component.AttackLockout:
		rt.LockoutTimer--
		if rt.LockoutTimer <= 0 {
			rt.LockoutTimer = 0
			rt.State = component.AttackCharging
		}
	case component.AttackCharging:
		if rt.SpecialTimer > 0 {
			rt.SpecialTimer--
			return
		}
		rt.State = component.AttackAttacking
		fallthrough
	case component.AttackAttacking:
		s.executeSpecial(w, e, b, rt, tr)

		ai := s.spec.AI
		rt.SpecialTimer = ai.SpecialResetMin + s.intN(ai.SpecialResetMax-ai.SpecialResetMin)
		rt.LockoutTimer = ai.LockoutFrames
		rt.State = component.AttackLockout
		if rt.LockoutTimer <= 0 {
			rt.State = component.AttackCharging
		}
	}
}

func (s *BossAISystem) executeSpecial(w *ecs.World, e ecs.Entity, b *component.Boss, rt *component.BossRuntime, tr *component.Transform) {
	attacks := b.Descriptor.Attacks
	if len(attacks) == 0 {
		return
	}
	attack := attacks[s.rng.IntN(len(attacks))]
	behavior := ClassifyAttack(attack.Name, s.spec.Keywords)

	fired, err := fireFan(w, tr.X, tr.Y,
		projectileFor(s.spec.Projectiles, behavior),
		attack.Name, s.damage(w, e), b.Color)
	if err != nil {
		log.Printf("boss: %s special %q: %v", b.Descriptor.Name, attack.Name, err)
	}
	log.Printf("boss: %s uses %s (%s)", b.Descriptor.Name, attack.Name, behavior)

	rt.LastAttack = attack.Name
	rt.SpecialCount++

	w.Events().Push(ecs.Event{Type: EventSpecialAttack, Data: SpecialAttackEvent{
		Entity:      e,
		Boss:        b.Descriptor.Name,
		Attack:      attack.Name,
		Behavior:    behavior,
		Projectiles: fired,
	}})
	snd := s.spec.Sounds.Special
	pushSound(w, SoundEvent{Name: snd.Name, Frequency: snd.Frequency, Duration: snd.Duration()})
}

func (s *BossAISystem) regularFire(w *ecs.World, e ecs.Entity, b *component.Boss, rt *component.BossRuntime, tr *component.Transform) {
	ai := s.spec.AI
	if s.rng.Float64() < ai.ShootChance && rt.ShootCooldown == 0 {
		ps := s.spec.Projectiles.Regular
		col := b.Color
		if ps.Color != "" {
			col = boss.RGBA(ps.Color)
		}
		if _, err := entity.NewBullet(w, tr.X, tr.Y,
			-ps.Speed,
			(s.rng.Float64()-0.5)*ps.Spread,
			component.Bullet{
				Attack: "regular",
				Damage: s.damage(w, e) * ps.DamageScale,
				Size:   ps.Size,
				Color:  col,
			}, ps.Life); err != nil {
			log.Printf("boss: %s regular fire: %v", b.Descriptor.Name, err)
		}
		rt.ShootCooldown = ai.ShootCooldownMin + s.intN(ai.ShootCooldownMax-ai.ShootCooldownMin)
	}

	if rt.ShootCooldown > 0 {
		rt.ShootCooldown--
	}
}

// damage prefers the entity's own damage over the spawn default.
func (s *BossAISystem) damage(w *ecs.World, e ecs.Entity) float64 {
	if d, ok := ecs.Get(w, e, component.DamageComponent.Kind()); ok && d != nil {
		return d.Amount
	}
	return s.spec.Spawn.Damage
}

func (s *BossAISystem) intN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}
