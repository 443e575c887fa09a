package boss

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// ErrCatalogTooSmall is returned when a catalog would hold fewer than two
// entries.
var ErrCatalogTooSmall = errors.New("boss: catalog needs at least two entries")

// Catalog is the hand-authored fallback set used when generation fails.
type Catalog struct {
	mu      sync.RWMutex
	entries []Descriptor
	rng     *rand.Rand
}

// NewCatalog validates entries and flags them as fallback descriptors.
func NewCatalog(entries []Descriptor, rng *rand.Rand) (*Catalog, error) {
	checked, err := checkEntries(entries)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Catalog{entries: checked, rng: rng}, nil
}

// DefaultCatalog returns the compiled-in catalog.
func DefaultCatalog(rng *rand.Rand) *Catalog {
	c, err := NewCatalog(builtinEntries(), rng)
	if err != nil {
		panic(err)
	}
	return c
}

func checkEntries(entries []Descriptor) ([]Descriptor, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrCatalogTooSmall, len(entries))
	}
	out := make([]Descriptor, 0, len(entries))
	for i, e := range entries {
		e = e.Clone()
		e.Provenance = ProvenanceFallback
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("boss: catalog entry %d (%q): %w", i, e.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Pick returns a uniformly chosen entry. The result is a copy.
func (c *Catalog) Pick() Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[c.rng.IntN(len(c.entries))].Clone()
}

// Entries returns a copy of the catalog contents.
func (c *Catalog) Entries() []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Descriptor, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Replace swaps the catalog contents, keeping the old set if entries are
// invalid.
func (c *Catalog) Replace(entries []Descriptor) error {
	checked, err := checkEntries(entries)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries = checked
	c.mu.Unlock()
	return nil
}

func builtinEntries() []Descriptor {
	return []Descriptor{
		{
			Name:        "Titan Destroyer",
			Description: "A colossal war machine with glowing red eyes and a heavy plasma cannon",
			Color:       "#FF0000",
			Size:        90,
			Attacks: []Attack{
				{Name: "Infernal Barrage", Description: "Fires a volley of fire projectiles"},
				{Name: "Devastating Laser", Description: "A beam that crosses the whole screen"},
			},
			Weakness:   "Exposed energy core",
			Sound:      "Deafening mechanical roar",
			Entrance:   "Your end has come, pathetic human!",
			Difficulty: 8,
		},
		{
			Name:        "Cyber Hydra",
			Description: "A biomechanical creature with three robotic heads and sparking tentacles",
			Color:       "#00FF88",
			Size:        85,
			Attacks: []Attack{
				{Name: "Digital Toxins", Description: "Spreads corrupting code projectiles"},
				{Name: "Electric Tentacles", Description: "Long range electric lashes"},
			},
			Weakness:   "Central synchronization",
			Sound:      "Distorted digital hiss",
			Entrance:   "Three minds, one purpose: your destruction!",
			Difficulty: 7,
		},
	}
}
