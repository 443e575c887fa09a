package boss

import (
	"fmt"
	"strings"
)

// Source records where an interpreted field value came from.
type Source int

const (
	SourceDefault Source = iota
	SourceHeuristic
	SourceStructured
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceHeuristic:
		return "heuristic"
	case SourceStructured:
		return "structured"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Field names a descriptor field.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldColor       Field = "color"
	FieldSize        Field = "size"
	FieldAttacks     Field = "attacks"
	FieldWeakness    Field = "weakness"
	FieldSound       Field = "sound"
	FieldEntrance    Field = "entrance"
	FieldDifficulty  Field = "difficulty"
)

// Fields lists every descriptor field in declaration order.
var Fields = []Field{
	FieldName, FieldDescription, FieldColor, FieldSize, FieldAttacks,
	FieldWeakness, FieldSound, FieldEntrance, FieldDifficulty,
}

// Sources maps each field to the source of its value.
type Sources map[Field]Source

// Count returns how many fields came from src.
func (s Sources) Count(src Source) int {
	n := 0
	for _, f := range Fields {
		if s[f] == src {
			n++
		}
	}
	return n
}

func (s Sources) String() string {
	parts := make([]string, 0, len(Fields))
	for _, f := range Fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f, s[f]))
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of interpreting generated text.
type Result struct {
	Descriptor Descriptor
	Sources    Sources
}

// Structured reports whether any field was taken from a structured block.
func (r Result) Structured() bool {
	return r.Sources.Count(SourceStructured) > 0
}

// DefaultName is the synthesized name used when none could be extracted.
// nowMillis keeps consecutive names distinct.
func DefaultName(nowMillis int64) string {
	return fmt.Sprintf("Generated Boss #%d", nowMillis)
}

func newResult(nowMillis int64) Result {
	res := Result{
		Descriptor: Descriptor{
			Name:        DefaultName(nowMillis),
			Description: DefaultDescription,
			Color:       DefaultColor,
			Size:        DefaultSize,
			Attacks:     DefaultAttacks(),
			Weakness:    DefaultWeakness,
			Sound:       DefaultSound,
			Entrance:    DefaultEntrance,
			Difficulty:  DefaultDifficulty,
			Provenance:  ProvenanceGenerated,
		},
		Sources: make(Sources, len(Fields)),
	}
	for _, f := range Fields {
		res.Sources[f] = SourceDefault
	}
	return res
}

// Interpret turns generated text into a descriptor. It never fails: the
// first balanced {...} block that decodes as an object is used, otherwise
// fields are extracted heuristically, and anything still missing falls back
// to its default. nowMillis feeds the synthesized default name.
func Interpret(text string, nowMillis int64) Result {
	if doc, err := decodeStructured(text); err == nil {
		return fromStructured(doc, nowMillis)
	}
	return fromHeuristic(text, nowMillis)
}
