package boss

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// balancedBlocks returns every top-level {...} block in text, in order of
// appearance. Braces inside double-quoted strings are ignored.
func balancedBlocks(text string) []string {
	var (
		blocks   []string
		depth    int
		start    = -1
		inString bool
		escaped  bool
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				blocks = append(blocks, text[start:i+1])
				start = -1
			}
		}
	}
	return blocks
}

// flexNumber accepts a JSON number or a numeric string. Anything else
// decodes to an unset value.
type flexNumber struct {
	value float64
	set   bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.value, n.set = f, true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, ok := leadingNumber(s); ok {
			n.value, n.set = f, true
		}
	}
	return nil
}

// flexString accepts a JSON string, number or bool. Other values decode to
// an unset value.
type flexString struct {
	value string
	set   bool
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.value, s.set = str, true
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		s.value, s.set = num.String(), true
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.value, s.set = strconv.FormatBool(b), true
	}
	return nil
}

// flexAttack accepts either {"name": ..., "description": ...} or a bare
// string naming the attack.
type flexAttack struct {
	Name        flexString `json:"name"`
	Description flexString `json:"description"`
}

func (a *flexAttack) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type plain flexAttack
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return nil
		}
		*a = flexAttack(p)
		return nil
	}
	return a.Name.UnmarshalJSON(data)
}

type flexAttacks struct {
	items []flexAttack
	set   bool
}

func (l *flexAttacks) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, item := range raw {
		var a flexAttack
		_ = a.UnmarshalJSON(item)
		if strings.TrimSpace(a.Name.value) == "" {
			continue
		}
		l.items = append(l.items, a)
	}
	l.set = true
	return nil
}

// wireDocument is the lenient decoding of document.
type wireDocument struct {
	Name        flexString  `json:"name"`
	Description flexString  `json:"description"`
	Color       flexString  `json:"color"`
	Size        flexNumber  `json:"size"`
	Attacks     flexAttacks `json:"attacks"`
	Weakness    flexString  `json:"weakness"`
	Sound       flexString  `json:"sound"`
	Entrance    flexString  `json:"entrance"`
	Difficulty  flexNumber  `json:"difficulty"`
}

// ErrParseFailure reports that no structured block could be decoded.
var ErrParseFailure = errors.New("boss: no decodable structured block")

// decodeStructured returns the first balanced block in text that decodes
// as a JSON object.
func decodeStructured(text string) (wireDocument, error) {
	blocks := balancedBlocks(text)
	var lastErr error
	for _, block := range blocks {
		var doc wireDocument
		err := json.Unmarshal([]byte(block), &doc)
		if err == nil {
			return doc, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return wireDocument{}, fmt.Errorf("%w: %d block(s), last: %v", ErrParseFailure, len(blocks), lastErr)
	}
	return wireDocument{}, ErrParseFailure
}

func fromStructured(doc wireDocument, now int64) Result {
	res := newResult(now)
	d := &res.Descriptor

	if v := strings.TrimSpace(doc.Name.value); v != "" {
		d.Name = v
		res.Sources[FieldName] = SourceStructured
	}
	if v := strings.TrimSpace(doc.Description.value); v != "" {
		d.Description = v
		res.Sources[FieldDescription] = SourceStructured
	}
	if c, ok := NormalizeColor(doc.Color.value); ok {
		d.Color = c
		res.Sources[FieldColor] = SourceStructured
	}
	if doc.Size.set && doc.Size.value != 0 {
		d.Size = ClampSize(doc.Size.value)
		res.Sources[FieldSize] = SourceStructured
	}
	if doc.Attacks.set && len(doc.Attacks.items) > 0 {
		d.Attacks = d.Attacks[:0]
		for _, a := range doc.Attacks.items {
			d.Attacks = append(d.Attacks, Attack{
				Name:        strings.TrimSpace(a.Name.value),
				Description: strings.TrimSpace(a.Description.value),
			})
		}
		res.Sources[FieldAttacks] = SourceStructured
	}
	if v := strings.TrimSpace(doc.Weakness.value); v != "" {
		d.Weakness = v
		res.Sources[FieldWeakness] = SourceStructured
	}
	if v := strings.TrimSpace(doc.Sound.value); v != "" {
		d.Sound = v
		res.Sources[FieldSound] = SourceStructured
	}
	if v := strings.TrimSpace(doc.Entrance.value); v != "" {
		d.Entrance = v
		res.Sources[FieldEntrance] = SourceStructured
	}
	if doc.Difficulty.set {
		if v := int(min(max(doc.Difficulty.value, -1e6), 1e6)); v != 0 {
			d.Difficulty = ClampDifficulty(v)
			res.Sources[FieldDifficulty] = SourceStructured
		}
	}
	return res
}

// leadingNumber parses the longest numeric prefix of s, the way a lenient
// integer parser would.
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f, true
		}
		end--
	}
	return 0, false
}
