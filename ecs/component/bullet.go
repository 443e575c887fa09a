package component

import "image/color"

// Bullet is a projectile fired by a boss.
type Bullet struct {
	Attack    string
	Damage    float64
	Size      float64
	Color     color.RGBA
	Explosive bool
	Piercing  bool
	Homing    bool
}

var BulletComponent = NewComponent[Bullet]("bullet")

// Particle is a purely visual entity.
type Particle struct {
	Size    float64
	Color   color.RGBA
	MaxLife int
}

var ParticleComponent = NewComponent[Particle]("particle")
