package scenario

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/bossgen/prefabs"
)

const (
	panelMargin   = 50
	panelMaxW     = 800
	panelMaxH     = 400
	panelPadding  = 30
	lineHeight    = 22
	progressBarH  = 4
	defaultLines  = 12
	defaultTitle  = "NEW SECTOR"
	defaultFooter = "This message closes automatically"
)

// Look is the overlay appearance.
type Look struct {
	Title    string
	Footer   string
	MaxLines int
	Backdrop color.Color
	Panel    color.Color
	Accent   color.Color
	Heading  color.Color
	Text     color.Color
	Muted    color.Color
}

func DefaultLook() Look {
	return Look{
		Title:    defaultTitle,
		Footer:   defaultFooter,
		MaxLines: defaultLines,
		Backdrop: color.NRGBA{A: 217},
		Panel:    color.NRGBA{R: 20, G: 20, B: 40, A: 242},
		Accent:   color.NRGBA{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF},
		Heading:  color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF},
		Text:     color.White,
		Muted:    color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
	}
}

// LookFromSpec fills unset spec values with defaults.
func LookFromSpec(spec *prefabs.OverlaySpec) Look {
	look := DefaultLook()
	if spec == nil {
		return look
	}
	if spec.Title != "" {
		look.Title = spec.Title
	}
	if spec.Footer != "" {
		look.Footer = spec.Footer
	}
	if spec.MaxLines > 0 {
		look.MaxLines = spec.MaxLines
	}
	look.Backdrop = spec.Backdrop.Or(look.Backdrop)
	look.Panel = spec.Panel.Or(look.Panel)
	look.Accent = spec.Accent.Or(look.Accent)
	look.Text = spec.Text.Or(look.Text)
	return look
}

// Renderer draws an Overlay.
type Renderer struct {
	Look Look
	face text.Face

	wrappedFor   string
	wrappedWidth float64
	wrapped      []string
}

func NewRenderer(look Look) *Renderer {
	return &Renderer{Look: look, face: text.NewGoXFace(basicfont.Face7x13)}
}

func (r *Renderer) Draw(screen *ebiten.Image, o *Overlay) {
	if o == nil || !o.Active() || o.Opacity() <= 0 {
		return
	}
	alpha := float32(o.Opacity())
	b := screen.Bounds()
	sw, sh := float32(b.Dx()), float32(b.Dy())

	vector.FillRect(screen, 0, 0, sw, sh, fade(r.Look.Backdrop, alpha), false)

	pw := min(sw-panelMargin*2, panelMaxW)
	ph := min(sh-panelMargin*2, panelMaxH)
	px := (sw - pw) / 2
	py := (sh - ph) / 2
	vector.FillRect(screen, px, py, pw, ph, fade(r.Look.Panel, alpha), false)
	vector.StrokeRect(screen, px, py, pw, ph, 3, fade(r.Look.Accent, alpha), false)

	r.drawText(screen, r.Look.Title, float64(sw/2), float64(py+30), text.AlignCenter, r.Look.Heading, alpha)

	lines := r.lines(o.Text(), float64(pw-panelPadding*2))
	for i, line := range lines {
		if i >= r.Look.MaxLines {
			break
		}
		r.drawText(screen, line, float64(px+panelPadding), float64(py+70)+float64(i*lineHeight), text.AlignStart, r.Look.Text, alpha)
	}

	barW := pw - panelPadding*2
	barX := px + panelPadding
	barY := py + ph - 30
	vector.FillRect(screen, barX, barY, barW, progressBarH, fade(color.NRGBA{R: 255, G: 255, B: 255, A: 77}, alpha), false)
	vector.FillRect(screen, barX, barY, barW*float32(o.Progress()), progressBarH, fade(r.Look.Accent, alpha), false)

	r.drawText(screen, r.Look.Footer, float64(sw/2), float64(py+ph-20), text.AlignCenter, r.Look.Muted, alpha)
}

func (r *Renderer) lines(s string, width float64) []string {
	if s != r.wrappedFor || width != r.wrappedWidth || r.wrapped == nil {
		r.wrapped = Wrap(s, width, func(line string) float64 { return text.Advance(line, r.face) })
		r.wrappedFor, r.wrappedWidth = s, width
	}
	return r.wrapped
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, align text.Align, c color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, s, r.face, op)
}

func fade(c color.Color, alpha float32) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * alpha)
	return n
}

// Wrap breaks s into lines no wider than width according to measure.
// Paragraph breaks are kept; a single word wider than width gets its own
// line.
func Wrap(s string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(lines) > 0 && lines[len(lines)-1] != "" {
				lines = append(lines, "")
			}
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if current != "" && measure(candidate) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
