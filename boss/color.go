package boss

import (
	"image/color"
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

var (
	hexColorRe      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	embeddedColorRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
)

// IsHexColor reports whether s is a #rgb, #rrggbb or #rrggbbaa color.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// NormalizeColor turns a free-form color into a hex string. Hex input is kept
// verbatim; CSS names and functions are converted; a hex code embedded in
// prose ("deep red (#8B0000)") is extracted. The second result is false when
// nothing usable was found and DefaultColor is returned.
func NormalizeColor(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultColor, false
	}
	if IsHexColor(s) {
		return s, true
	}
	if c, err := csscolorparser.Parse(s); err == nil {
		return c.HexString(), true
	}
	if m := embeddedColorRe.FindString(s); m != "" {
		return m, true
	}
	return DefaultColor, false
}

// RGBA converts a descriptor color for rendering, falling back to
// DefaultColor.
func RGBA(hex string) color.RGBA {
	c, err := csscolorparser.Parse(hex)
	if err != nil {
		c, _ = csscolorparser.Parse(DefaultColor)
	}
	r, g, b, a := c.RGBA255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
