package system

import (
	"image"
	"math"
	"testing"

	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/ecs/entity"
	"github.com/milk9111/bossgen/prefabs"
)

func loadSpec(t *testing.T) prefabs.BossSpec {
	t.Helper()
	spec, err := prefabs.LoadBossSpec()
	if err != nil {
		t.Fatalf("load boss spec: %v", err)
	}
	return *spec
}

func spawnBoss(t *testing.T, w *ecs.World, spec *prefabs.BossSpec, attacks ...string) ecs.Entity {
	t.Helper()
	d := boss.Descriptor{Name: "Test Boss", Color: "#00FF00", Size: 80, Difficulty: 5}
	for _, name := range attacks {
		d.Attacks = append(d.Attacks, boss.Attack{Name: name})
	}
	e, err := entity.NewBoss(w, d, entity.BossOptions{
		Spec:   spec,
		Width:  800,
		Height: 600,
		Rand:   common.SeededRand(11),
		Sprite: image.NewRGBA(image.Rect(0, 0, 2, 2)),
	})
	if err != nil {
		t.Fatalf("NewBoss: %v", err)
	}
	return e
}

func runtimeOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.BossRuntime {
	t.Helper()
	rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
	if !ok {
		t.Fatalf("expected boss runtime")
	}
	return rt
}

func bullets(w *ecs.World) []*component.Bullet {
	var out []*component.Bullet
	ecs.ForEach(w, component.BulletComponent.Kind(), func(_ ecs.Entity, b *component.Bullet) {
		out = append(out, b)
	})
	return out
}

func TestClassifyAttack(t *testing.T) {
	kw := loadSpec(t).Keywords
	tests := []struct {
		name string
		want AttackBehavior
	}{
		{"Rajada", AttackMulti},
		{"Plasma Barrage", AttackMulti},
		{"LASER", AttackBeam},
		{"Death Ray", AttackBeam},
		{"Míssil", AttackHoming},
		{"Seeker Missile", AttackHoming},
		{"Multi-Laser Volley", AttackMulti},
		{"Special Strike", AttackTriple},
		{"", AttackTriple},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyAttack(tc.name, kw); got != tc.want {
				t.Fatalf("ClassifyAttack(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestSpecialAttackStateMachine(t *testing.T) {
	spec := loadSpec(t)
	spec.AI.ShootChance = 0
	w := ecs.NewWorld()
	e := spawnBoss(t, w, &spec, "Laser Sweep")
	rt := runtimeOf(t, w, e)
	rt.SpecialTimer = 2

	sys := NewBossAISystem(&spec, common.SeededRand(5))

	sys.Update(w)
	sys.Update(w)
	if rt.State != component.AttackCharging || rt.SpecialTimer != 0 || len(bullets(w)) != 0 {
		t.Fatalf("expected charging with empty timer, got %+v", rt)
	}

	sys.Update(w)
	if rt.State != component.AttackLockout || rt.LockoutTimer != 60 {
		t.Fatalf("expected lockout after attack, got %+v", rt)
	}
	if rt.SpecialTimer < 180 || rt.SpecialTimer >= 300 {
		t.Fatalf("expected special timer in [180,300), got %d", rt.SpecialTimer)
	}
	if rt.LastAttack != "Laser Sweep" || rt.SpecialCount != 1 {
		t.Fatalf("unexpected attack record %+v", rt)
	}

	got := bullets(w)
	if len(got) != 1 {
		t.Fatalf("expected one beam projectile, got %d", len(got))
	}
	beam := got[0]
	if !beam.Piercing || beam.Size != 15 || beam.Damage != 45*1.5 {
		t.Fatalf("unexpected beam %+v", beam)
	}
	if beam.Color.R != 0xFF || beam.Color.G != 0 || beam.Color.B != 0xFF {
		t.Fatalf("expected magenta beam, got %+v", beam.Color)
	}

	sounds := w.Events().DrainType(EventSound)
	if len(sounds) != 1 {
		t.Fatalf("expected one sound event, got %d", len(sounds))
	}
	if snd := sounds[0].Data.(SoundEvent); snd.Name != "chainAttack" || snd.Frequency != 180 || snd.Duration.Milliseconds() != 600 {
		t.Fatalf("unexpected sound %+v", snd)
	}
	if attacks := w.Events().DrainType(EventSpecialAttack); len(attacks) != 1 {
		t.Fatalf("expected one special attack event, got %d", len(attacks))
	}

	timer := rt.SpecialTimer
	for i := 0; i < 60; i++ {
		sys.Update(w)
	}
	if rt.State != component.AttackCharging || rt.SpecialTimer != timer {
		t.Fatalf("expected lockout to hold the special timer, got %+v", rt)
	}
	sys.Update(w)
	if rt.SpecialTimer != timer-1 {
		t.Fatalf("expected charging to resume, got %d", rt.SpecialTimer)
	}
}

func TestSpecialAttackFans(t *testing.T) {
	tests := []struct {
		name   string
		attack string
		count  int
		speed  float64
		scale  float64
	}{
		{"multi", "Plasma Barrage", 5, 8, 0.8},
		{"triple", "Special Strike", 3, 7, 1},
		{"homing", "Seeker Missile", 1, 4, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := loadSpec(t)
			spec.AI.ShootChance = 0
			w := ecs.NewWorld()
			e := spawnBoss(t, w, &spec, tc.attack)
			runtimeOf(t, w, e).SpecialTimer = 0

			NewBossAISystem(&spec, common.SeededRand(1)).Update(w)

			var n int
			ecs.ForEach2(w, component.BulletComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, b *component.Bullet, v *component.Velocity) {
				n++
				if got := math.Hypot(v.VX, v.VY); math.Abs(got-tc.speed) > 1e-9 {
					t.Fatalf("expected speed %v, got %v", tc.speed, got)
				}
				if v.VX >= 0 {
					t.Fatalf("expected projectile moving left, got %+v", v)
				}
				if b.Damage != 45*tc.scale {
					t.Fatalf("expected damage %v, got %v", 45*tc.scale, b.Damage)
				}
			})
			if n != tc.count {
				t.Fatalf("expected %d projectiles, got %d", tc.count, n)
			}
		})
	}
}

func TestMultiFanAngles(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	if _, err := fireFan(w, 0, 0, spec.Projectiles.Multi, "Barrage", 45, boss.RGBA("#123456")); err != nil {
		t.Fatalf("fireFan: %v", err)
	}

	var vys []float64
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, b *component.Bullet, v *component.Velocity) {
		vys = append(vys, v.VY)
		if !b.Explosive || b.Color.R != 0x12 {
			t.Fatalf("expected explosive projectile in boss color, got %+v", b)
		}
	})
	want := map[float64]bool{}
	for _, deg := range []float64{-45, -22.5, 0, 22.5, 45} {
		want[math.Round(math.Sin(deg*math.Pi/180)*8*1e6)/1e6] = true
	}
	for _, vy := range vys {
		if !want[math.Round(vy*1e6)/1e6] {
			t.Fatalf("unexpected vertical velocity %v", vy)
		}
	}
}

func TestRegularFireCooldown(t *testing.T) {
	spec := loadSpec(t)
	spec.AI.ShootChance = 1
	spec.AI.InitialSpecialFrames = 10000
	w := ecs.NewWorld()
	e := spawnBoss(t, w, &spec, "Special Strike")
	rt := runtimeOf(t, w, e)

	sys := NewBossAISystem(&spec, common.SeededRand(9))
	var fired []int
	seen := 0
	for tick := 0; tick < 200; tick++ {
		sys.Update(w)
		if n := len(bullets(w)); n > seen {
			fired = append(fired, tick)
			seen = n
		}
		if rt.ShootCooldown < 0 {
			t.Fatalf("cooldown went negative")
		}
	}
	if len(fired) < 3 {
		t.Fatalf("expected repeated fire, got %v", fired)
	}
	for i := 1; i < len(fired); i++ {
		if gap := fired[i] - fired[i-1]; gap < 30 || gap > 60 {
			t.Fatalf("expected gap in [30,60], got %d (%v)", gap, fired)
		}
	}
	for _, b := range bullets(w) {
		if b.Attack != "regular" || b.Size != 5 || b.Damage != 45 {
			t.Fatalf("unexpected regular projectile %+v", b)
		}
	}
}

func TestMovementPatterns(t *testing.T) {
	tests := []struct {
		pattern component.MovementPattern
		vx, vy  float64
	}{
		{component.MovementStraight, -0.5, 0},
		{component.MovementSinusoidal, -0.5, math.Sin(0.02) * 3},
		{component.MovementCircularDrift, -0.5 + math.Sin(0.03)*0.3, math.Cos(0.03) * 2},
	}
	for _, tc := range tests {
		t.Run(tc.pattern.String(), func(t *testing.T) {
			spec := loadSpec(t)
			spec.AI.ShootChance = 0
			w := ecs.NewWorld()
			e := spawnBoss(t, w, &spec, "Special Strike")
			runtimeOf(t, w, e).Pattern = tc.pattern

			NewBossAISystem(&spec, common.SeededRand(2)).Update(w)

			v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
			if math.Abs(v.VX-tc.vx) > 1e-12 || math.Abs(v.VY-tc.vy) > 1e-12 {
				t.Fatalf("expected velocity (%v,%v), got %+v", tc.vx, tc.vy, v)
			}
		})
	}
}
