package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/ecs/entity"
	"github.com/milk9111/bossgen/prefabs"
)

// AttackBehavior is the projectile pattern a special attack maps to.
type AttackBehavior int

const (
	AttackTriple AttackBehavior = iota
	AttackMulti
	AttackBeam
	AttackHoming
)

func (b AttackBehavior) String() string {
	switch b {
	case AttackTriple:
		return "triple"
	case AttackMulti:
		return "multi"
	case AttackBeam:
		return "beam"
	case AttackHoming:
		return "homing"
	default:
		return fmt.Sprintf("attack_behavior(%d)", int(b))
	}
}

// ClassifyAttack maps an attack name to a behavior by case-insensitive
// keyword containment. Keyword sets are checked in the order multi, beam,
// homing; anything else is a triple shot.
func ClassifyAttack(name string, kw prefabs.BossKeywordSpec) AttackBehavior {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, kw.Multi):
		return AttackMulti
	case containsAny(lower, kw.Beam):
		return AttackBeam
	case containsAny(lower, kw.Homing):
		return AttackHoming
	default:
		return AttackTriple
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func projectileFor(specs prefabs.BossProjectileSpecs, b AttackBehavior) prefabs.ProjectileSpec {
	switch b {
	case AttackMulti:
		return specs.Multi
	case AttackBeam:
		return specs.Beam
	case AttackHoming:
		return specs.Homing
	default:
		return specs.Triple
	}
}

// fireFan spawns one projectile per configured angle. Angle 0 points left;
// positive angles point down.
func fireFan(w *ecs.World, x, y float64, ps prefabs.ProjectileSpec, attack string, damage float64, bossColor color.RGBA) (int, error) {
	angles := ps.AnglesDeg
	if len(angles) == 0 {
		angles = []float64{0}
	}
	col := bossColor
	if ps.Color != "" {
		col = boss.RGBA(ps.Color)
	}

	fired := 0
	for _, deg := range angles {
		dir := cp.ForAngle(deg * math.Pi / 180).Mult(ps.Speed)
		_, err := entity.NewBullet(w, x, y, -dir.X, dir.Y, component.Bullet{
			Attack:    attack,
			Damage:    damage * ps.DamageScale,
			Size:      ps.Size,
			Color:     col,
			Explosive: ps.Explosive,
			Piercing:  ps.Piercing,
			Homing:    ps.Homing,
		}, ps.Life)
		if err != nil {
			return fired, err
		}
		fired++
	}
	return fired, nil
}
