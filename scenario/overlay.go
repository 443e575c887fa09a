// Package scenario shows generated scenario narration as a timed overlay.
package scenario

import (
	"fmt"
	"log"

	"github.com/milk9111/bossgen/prefabs"
)

// State is the overlay phase.
type State int

const (
	Hidden State = iota
	FadeIn
	Hold
	FadeOut
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case FadeIn:
		return "fade_in"
	case Hold:
		return "hold"
	case FadeOut:
		return "fade_out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config holds the overlay timings. Thresholds are fractions of
// TotalFrames measured on the remaining timer.
type Config struct {
	TotalFrames      int
	FadeInThreshold  float64
	FadeOutThreshold float64
	Step             float64
	FadeInRate       float64
	HoldRate         float64
	FadeOutRate      float64
}

func DefaultConfig() Config {
	return Config{
		TotalFrames:      600,
		FadeInThreshold:  0.8,
		FadeOutThreshold: 0.2,
		Step:             0.02,
		FadeInRate:       3,
		HoldRate:         1,
		FadeOutRate:      2,
	}
}

// ConfigFromSpec fills unset spec values with defaults.
func ConfigFromSpec(spec *prefabs.OverlaySpec) Config {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg
	}
	if spec.TotalFrames > 0 {
		cfg.TotalFrames = spec.TotalFrames
	}
	if spec.FadeInThreshold > 0 {
		cfg.FadeInThreshold = spec.FadeInThreshold
	}
	if spec.FadeOutThreshold > 0 {
		cfg.FadeOutThreshold = spec.FadeOutThreshold
	}
	if spec.Step > 0 {
		cfg.Step = spec.Step
	}
	if spec.FadeInRate > 0 {
		cfg.FadeInRate = spec.FadeInRate
	}
	if spec.HoldRate > 0 {
		cfg.HoldRate = spec.HoldRate
	}
	if spec.FadeOutRate > 0 {
		cfg.FadeOutRate = spec.FadeOutRate
	}
	return cfg
}

// Overlay is the scenario text overlay. Update once per tick.
type Overlay struct {
	cfg     Config
	state   State
	text    string
	timer   int
	opacity float64
}

func NewOverlay(cfg Config) *Overlay {
	if cfg.TotalFrames <= 0 {
		cfg = DefaultConfig()
	}
	return &Overlay{cfg: cfg}
}

// SetConfig swaps the timings. An overlay being shown keeps its timer.
func (o *Overlay) SetConfig(cfg Config) {
	if cfg.TotalFrames <= 0 {
		return
	}
	o.cfg = cfg
	if o.timer > cfg.TotalFrames {
		o.timer = cfg.TotalFrames
	}
}

func (o *Overlay) Config() Config {
	return o.cfg
}

// Show starts displaying text from zero opacity, replacing anything shown.
func (o *Overlay) Show(text string) {
	o.text = text
	o.timer = o.cfg.TotalFrames
	o.opacity = 0
	o.state = FadeIn
	log.Printf("scenario: new stage\n%s", text)
}

func (o *Overlay) Update() {
	if o.state == Hidden {
		return
	}
	if o.timer > 0 {
		o.timer--
	}

	total := float64(o.cfg.TotalFrames)
	remaining := float64(o.timer)
	switch {
	case remaining > total*o.cfg.FadeInThreshold:
		o.state = FadeIn
		o.opacity += o.cfg.Step * o.cfg.FadeInRate
	case remaining < total*o.cfg.FadeOutThreshold:
		o.state = FadeOut
		o.opacity -= o.cfg.Step * o.cfg.FadeOutRate
	default:
		o.state = Hold
		o.opacity += o.cfg.Step * o.cfg.HoldRate
	}
	o.opacity = min(max(o.opacity, 0), 1)

	if o.timer <= 0 {
		o.state = Hidden
		o.opacity = 0
	}
}

func (o *Overlay) Active() bool {
	return o.state != Hidden
}

func (o *Overlay) State() State {
	return o.state
}

func (o *Overlay) Text() string {
	return o.text
}

func (o *Overlay) Timer() int {
	return o.timer
}

func (o *Overlay) Opacity() float64 {
	return o.opacity
}

// Progress is the elapsed fraction of the display time.
func (o *Overlay) Progress() float64 {
	if o.cfg.TotalFrames <= 0 {
		return 0
	}
	return 1 - float64(o.timer)/float64(o.cfg.TotalFrames)
}
