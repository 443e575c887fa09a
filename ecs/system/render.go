package system

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
)

// RenderSystem draws bosses with their auras, projectiles and particles.
type RenderSystem struct {
	images map[image.Image]*ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{images: map[image.Image]*ebiten.Image{}}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.AuraComponent.Kind(),
		component.TransformComponent.Kind(),
		func(_ ecs.Entity, b *component.Boss, aura *component.Aura, t *component.Transform) {
			r.drawAura(screen, b, aura, t)
		})

	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, s *component.Sprite, t *component.Transform) {
		img := r.image(s.Image)
		if img == nil {
			return
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Translate(t.X, t.Y)
		screen.DrawImage(img, op)
	})

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.AuraComponent.Kind(),
		component.TransformComponent.Kind(),
		func(_ ecs.Entity, b *component.Boss, aura *component.Aura, t *component.Transform) {
			for _, orb := range aura.Orbs {
				x := t.X + math.Cos(orb.Angle)*orb.Radius
				y := t.Y + math.Sin(orb.Angle)*orb.Radius
				vector.FillCircle(screen, float32(x), float32(y), 4, withAlpha(b.Color, 0.85), true)
			}
		})

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Bullet, t *component.Transform) {
		if b.Piercing {
			vector.FillRect(screen, float32(t.X-b.Size*2), float32(t.Y-b.Size/4), float32(b.Size*4), float32(b.Size/2), b.Color, true)
			return
		}
		vector.FillCircle(screen, float32(t.X), float32(t.Y), float32(b.Size), b.Color, true)
		if b.Explosive {
			vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(b.Size+2), 1, color.White, true)
		}
	})

	ecs.ForEach3(w,
		component.ParticleComponent.Kind(),
		component.TransformComponent.Kind(),
		component.TTLComponent.Kind(),
		func(_ ecs.Entity, p *component.Particle, t *component.Transform, ttl *component.TTL) {
			life := 1.0
			if p.MaxLife > 0 {
				life = common.Clamp(float64(ttl.Frames)/float64(p.MaxLife), 0, 1)
			}
			vector.FillCircle(screen, float32(t.X), float32(t.Y), float32(p.Size), withAlpha(p.Color, life), true)
		})
}

func (r *RenderSystem) drawAura(screen *ebiten.Image, b *component.Boss, aura *component.Aura, t *component.Transform) {
	glow := common.Lerp(0.15, 0.45, aura.Intensity)
	vector.FillCircle(screen, float32(t.X), float32(t.Y), float32(b.Size*0.5+10+aura.Intensity*6), withAlpha(b.Color, glow), true)

	for _, p := range aura.Particles {
		life := 1.0
		if p.MaxLife > 0 {
			life = float64(p.Life) / float64(p.MaxLife)
		}
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), withAlpha(b.Color, life), true)
	}
}

// image converts a CPU image once and reuses the GPU copy.
func (r *RenderSystem) image(src image.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	if img, ok := src.(*ebiten.Image); ok {
		return img
	}
	if img, ok := r.images[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	r.images[src] = img
	return img
}

func withAlpha(c color.RGBA, a float64) color.Color {
	a = common.Clamp(a, 0, 1)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * a)}
}
