// Package assets renders the procedural art used for bosses.
package assets

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/milk9111/bossgen/boss"
)

// spritePadding leaves room for the glow around the body.
const spritePadding = 12

type spriteKey struct {
	name  string
	color string
	size  int
}

var (
	spriteMu    sync.Mutex
	spriteCache = map[spriteKey]image.Image{}
)

// BossSprite draws a boss body sized and tinted by its descriptor. Results
// are cached per name, color and size.
func BossSprite(d boss.Descriptor) image.Image {
	size := int(math.Round(boss.ClampSize(d.Size)))
	key := spriteKey{name: d.Name, color: d.Color, size: size}

	spriteMu.Lock()
	defer spriteMu.Unlock()
	if img, ok := spriteCache[key]; ok {
		return img
	}
	img := drawBoss(boss.RGBA(d.Color), size, spikeCount(d.Name))
	spriteCache[key] = img
	return img
}

// spikeCount gives bosses with different names a different silhouette.
func spikeCount(name string) int {
	var h uint32 = 2166136261
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= 16777619
	}
	return 5 + int(h%5)
}

func drawBoss(body color.RGBA, size, spikes int) image.Image {
	dim := size + spritePadding*2
	dc := gg.NewContext(dim, dim)
	cx, cy := float64(dim)/2, float64(dim)/2
	r := float64(size) / 2

	glow := gg.NewRadialGradient(cx, cy, r*0.6, cx, cy, r+spritePadding)
	glow.AddColorStop(0, color.RGBA{body.R, body.G, body.B, 140})
	glow.AddColorStop(1, color.RGBA{body.R, body.G, body.B, 0})
	dc.SetFillStyle(glow)
	dc.DrawCircle(cx, cy, r+spritePadding)
	dc.Fill()

	// Star-shaped hull.
	inner, outer := r*0.72, r
	for i := 0; i < spikes*2; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := float64(i)*math.Pi/float64(spikes) - math.Pi/2
		dc.LineTo(cx+math.Cos(a)*rad, cy+math.Sin(a)*rad)
	}
	dc.ClosePath()
	dc.SetColor(body)
	dc.FillPreserve()
	dc.SetColor(shade(body, 0.45))
	dc.SetLineWidth(2)
	dc.Stroke()

	core := gg.NewRadialGradient(cx, cy, 0, cx, cy, r*0.5)
	core.AddColorStop(0, color.RGBA{255, 255, 255, 230})
	core.AddColorStop(1, shade(body, 0.7))
	dc.SetFillStyle(core)
	dc.DrawCircle(cx, cy, r*0.45)
	dc.Fill()

	// Eyes face left, toward the player side.
	dc.SetColor(color.RGBA{255, 40, 40, 255})
	dc.DrawEllipse(cx-r*0.25, cy-r*0.12, r*0.1, r*0.06)
	dc.DrawEllipse(cx-r*0.25, cy+r*0.12, r*0.1, r*0.06)
	dc.Fill()

	return dc.Image()
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
