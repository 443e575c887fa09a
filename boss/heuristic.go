package boss

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// fieldPatterns are tried in order; the first match wins.
type fieldPatterns []*regexp.Regexp

func newFieldPatterns(key, alt string) fieldPatterns {
	k, a := regexp.QuoteMeta(key), regexp.QuoteMeta(alt)
	return fieldPatterns{
		regexp.MustCompile(fmt.Sprintf(`(?i)"%s"\s*:\s*"([^"]+)"`, k)),
		regexp.MustCompile(fmt.Sprintf(`(?i)%s\s*:\s*([^,\n]+)`, k)),
		regexp.MustCompile(fmt.Sprintf(`(?i)%s\s*:\s*([^,\n]+)`, a)),
	}
}

func (p fieldPatterns) find(text string) (string, bool) {
	for _, re := range p {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := cleanValue(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

var heuristicKeys = map[Field]fieldPatterns{
	FieldName:       newFieldPatterns("name", "nome"),
	FieldColor:      newFieldPatterns("color", "cor"),
	FieldSize:       newFieldPatterns("size", "tamanho"),
	FieldWeakness:   newFieldPatterns("weakness", "fraqueza"),
	FieldSound:      newFieldPatterns("sound", "som"),
	FieldEntrance:   newFieldPatterns("entrance", "frase"),
	FieldDifficulty: newFieldPatterns("difficulty", "dificuldade"),
}

// cleanValue strips whitespace, quotes and markdown emphasis around a match.
func cleanValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), " \t\r\"'`*_")
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			return v
		}
	}
	return ""
}

func fromHeuristic(text string, nowMillis int64) Result {
	res := newResult(nowMillis)
	d := &res.Descriptor

	str := func(f Field, dst *string) {
		if v, ok := heuristicKeys[f].find(text); ok {
			*dst = v
			res.Sources[f] = SourceHeuristic
		}
	}
	str(FieldName, &d.Name)
	str(FieldWeakness, &d.Weakness)
	str(FieldSound, &d.Sound)
	str(FieldEntrance, &d.Entrance)

	if line := firstLine(text); line != "" {
		d.Description = line
		res.Sources[FieldDescription] = SourceHeuristic
	}
	if v, ok := heuristicKeys[FieldColor].find(text); ok {
		if c, ok := NormalizeColor(v); ok {
			d.Color = c
			res.Sources[FieldColor] = SourceHeuristic
		}
	}
	if v, ok := heuristicKeys[FieldSize].find(text); ok {
		if n, ok := leadingNumber(v); ok && math.Trunc(n) != 0 {
			d.Size = ClampSize(math.Trunc(n))
			res.Sources[FieldSize] = SourceHeuristic
		}
	}
	if v, ok := heuristicKeys[FieldDifficulty].find(text); ok {
		if n, ok := leadingNumber(v); ok {
			if i := int(min(max(n, -1e6), 1e6)); i != 0 {
				d.Difficulty = ClampDifficulty(i)
				res.Sources[FieldDifficulty] = SourceHeuristic
			}
		}
	}
	return res
}
