// Package boss holds the boss descriptor model: interpretation of free-form
// generated text into descriptors, the fallback catalog and the JSON schema
// handed to the generator.
package boss

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinSize     = 60.0
	MaxSize     = 100.0
	DefaultSize = 80.0

	MinDifficulty     = 1
	MaxDifficulty     = 10
	DefaultDifficulty = 7

	DefaultColor       = "#8B00FF"
	DefaultDescription = "A powerful and menacing boss conjured by the machine"
	DefaultWeakness    = "Concentrated fire"
	DefaultSound       = "Intimidating metallic roar"
	DefaultEntrance    = "Prepare for destruction!"
)

// ErrInvalidDescriptor is returned by Validate.
var ErrInvalidDescriptor = errors.New("boss: invalid descriptor")

// Provenance tells whether a descriptor came from the generator or from the
// fallback catalog.
type Provenance int

const (
	ProvenanceGenerated Provenance = iota
	ProvenanceFallback
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceGenerated:
		return "generated"
	case ProvenanceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// Attack is one named special attack of a boss.
type Attack struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Descriptor is the immutable description of a boss. Treat values as
// read-only; Clone before handing a copy to code that may modify Attacks.
type Descriptor struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Color       string     `yaml:"color"`
	Size        float64    `yaml:"size"`
	Attacks     []Attack   `yaml:"attacks"`
	Weakness    string     `yaml:"weakness"`
	Sound       string     `yaml:"sound"`
	Entrance    string     `yaml:"entrance"`
	Difficulty  int        `yaml:"difficulty"`
	Provenance  Provenance `yaml:"-"`
}

// DefaultAttacks are inserted when no attack could be extracted.
func DefaultAttacks() []Attack {
	return []Attack{
		{Name: "Special Strike", Description: "A single devastating blow"},
		{Name: "Intense Barrage", Description: "Several projectiles at once"},
	}
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Attacks = append([]Attack(nil), d.Attacks...)
	return out
}

// Generated reports whether d came from the remote generator.
func (d Descriptor) Generated() bool {
	return d.Provenance == ProvenanceGenerated
}

// Validate checks the descriptor constraints.
func (d Descriptor) Validate() error {
	var problems []string
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "empty name")
	}
	if !IsHexColor(d.Color) {
		problems = append(problems, fmt.Sprintf("color %q is not a hex color", d.Color))
	}
	if d.Size < MinSize || d.Size > MaxSize {
		problems = append(problems, fmt.Sprintf("size %.1f outside [%.0f,%.0f]", d.Size, MinSize, MaxSize))
	}
	if d.Difficulty < MinDifficulty || d.Difficulty > MaxDifficulty {
		problems = append(problems, fmt.Sprintf("difficulty %d outside [%d,%d]", d.Difficulty, MinDifficulty, MaxDifficulty))
	}
	if len(d.Attacks) == 0 {
		problems = append(problems, "no attacks")
	}
	for i, a := range d.Attacks {
		if strings.TrimSpace(a.Name) == "" {
			problems = append(problems, fmt.Sprintf("attack %d has no name", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDescriptor, strings.Join(problems, "; "))
	}
	return nil
}

// ClampSize bounds a raw size to [MinSize, MaxSize].
func ClampSize(v float64) float64 {
	if v != v {
		return DefaultSize
	}
	return min(max(v, MinSize), MaxSize)
}

// ClampDifficulty bounds a raw difficulty to [MinDifficulty, MaxDifficulty].
func ClampDifficulty(v int) int {
	return min(max(v, MinDifficulty), MaxDifficulty)
}
