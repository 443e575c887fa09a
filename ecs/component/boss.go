package component

import (
	"fmt"
	"image/color"

	"github.com/milk9111/bossgen/boss"
)

// Boss links a live boss to the descriptor it was created from. The
// descriptor is read-only after creation.
type Boss struct {
	Descriptor boss.Descriptor
	Size       float64
	Color      color.RGBA
}

// MovementPattern selects how a boss moves vertically.
type MovementPattern int

const (
	MovementStraight MovementPattern = iota
	MovementSinusoidal
	MovementCircularDrift

	movementPatternCount
)

// MovementPatterns is the number of selectable patterns.
const MovementPatterns = int(movementPatternCount)

func (p MovementPattern) String() string {
	switch p {
	case MovementStraight:
		return "straight"
	case MovementSinusoidal:
		return "sinusoidal"
	case MovementCircularDrift:
		return "circular_drift"
	default:
		return fmt.Sprintf("movement(%d)", int(p))
	}
}

// AttackState is the special attack state of a boss.
type AttackState int

const (
	AttackCharging AttackState = iota
	AttackAttacking
	AttackLockout
)

func (s AttackState) String() string {
	switch s {
	case AttackCharging:
		return "charging"
	case AttackAttacking:
		return "attacking"
	case AttackLockout:
		return "lockout"
	default:
		return fmt.Sprintf("attack_state(%d)", int(s))
	}
}

// BossRuntime holds per-entity AI timers.
type BossRuntime struct {
	Pattern MovementPattern
	// Phase counts AI ticks and drives the movement patterns.
	Phase float64

	State         AttackState
	SpecialTimer  int
	LockoutTimer  int
	ShootCooldown int

	LastAttack   string
	SpecialCount int
}

var BossComponent = NewComponent[Boss]("boss")
var BossRuntimeComponent = NewComponent[BossRuntime]("boss_runtime")
