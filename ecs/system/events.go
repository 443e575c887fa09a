package system

import (
	"time"

	"github.com/milk9111/bossgen/ecs"
)

const (
	// EventSound carries a SoundEvent for the AudioSystem.
	EventSound ecs.EventType = "sound"
	// EventSpecialAttack carries a SpecialAttackEvent.
	EventSpecialAttack ecs.EventType = "special_attack"
)

type SoundEvent struct {
	Name      string
	Frequency float64
	Duration  time.Duration
}

// SpecialAttackEvent reports one executed special attack.
type SpecialAttackEvent struct {
	Entity      ecs.Entity
	Boss        string
	Attack      string
	Behavior    AttackBehavior
	Projectiles int
}

func pushSound(w *ecs.World, evt SoundEvent) {
	if evt.Name == "" {
		return
	}
	w.Events().Push(ecs.Event{Type: EventSound, Data: evt})
}
