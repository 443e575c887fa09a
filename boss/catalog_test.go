package boss

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestDefaultCatalogPick(t *testing.T) {
	c := DefaultCatalog(rand.New(rand.NewPCG(7, 11)))
	if c.Len() < 2 {
		t.Fatalf("expected at least two entries, got %d", c.Len())
	}

	seen := make(map[string]int)
	for i := 0; i < 1000; i++ {
		d := c.Pick()
		if d.Provenance != ProvenanceFallback {
			t.Fatalf("pick %d: expected fallback provenance", i)
		}
		if err := d.Validate(); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		seen[d.Name]++
	}
	for _, e := range c.Entries() {
		if seen[e.Name] == 0 {
			t.Fatalf("entry %q never picked in 1000 draws", e.Name)
		}
	}
}

func TestCatalogPickReturnsCopy(t *testing.T) {
	c := DefaultCatalog(rand.New(rand.NewPCG(1, 1)))
	d := c.Pick()
	d.Attacks[0].Name = "mutated"
	for _, e := range c.Entries() {
		if e.Attacks[0].Name == "mutated" {
			t.Fatalf("Pick leaked internal attack slice")
		}
	}
}

func TestNewCatalogRejects(t *testing.T) {
	valid := builtinEntries()
	broken := valid[1]
	broken.Color = "green-ish"

	cases := []struct {
		name    string
		entries []Descriptor
		want    error
	}{
		{"empty", nil, ErrCatalogTooSmall},
		{"single", valid[:1], ErrCatalogTooSmall},
		{"invalid_entry", []Descriptor{valid[0], broken}, ErrInvalidDescriptor},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewCatalog(c.entries, nil)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestCatalogReplace(t *testing.T) {
	c := DefaultCatalog(nil)
	if err := c.Replace(builtinEntries()[:1]); err == nil {
		t.Fatalf("expected error replacing with a single entry")
	}
	if c.Len() != 2 {
		t.Fatalf("failed replace must keep old entries, got %d", c.Len())
	}

	next := builtinEntries()
	next = append(next, Descriptor{
		Name: "Third", Color: "#123456", Size: 60, Difficulty: 2,
		Attacks: []Attack{{Name: "Poke"}},
	})
	if err := c.Replace(next); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", c.Len())
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	var doc struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc.Type != "object" {
		t.Fatalf("expected object schema, got %q", doc.Type)
	}
	for _, f := range Fields {
		if _, ok := doc.Properties[string(f)]; !ok {
			t.Fatalf("schema missing property %q", f)
		}
	}
	if len(doc.Required) != len(Fields) {
		t.Fatalf("expected %d required fields, got %v", len(Fields), doc.Required)
	}
}

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#FF0000", "#FF0000", true},
		{"  #abc ", "#abc", true},
		{"red", "#ff0000", true},
		{"rgb(0, 255, 0)", "#00ff00", true},
		{"deep purple (#4B0082) with sparks", "#4B0082", true},
		{"", DefaultColor, false},
		{"the color of regret", DefaultColor, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, ok := NormalizeColor(c.in)
			if got != c.want || ok != c.ok {
				t.Fatalf("NormalizeColor(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestRGBAFallsBack(t *testing.T) {
	if got, want := RGBA("nonsense"), RGBA(DefaultColor); got != want {
		t.Fatalf("expected default color %v, got %v", want, got)
	}
	if got := RGBA("#00FF88"); got.G != 0xFF || got.B != 0x88 || got.A != 0xFF {
		t.Fatalf("unexpected conversion %v", got)
	}
}
