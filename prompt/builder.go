// Package prompt builds generator prompts from tengo scripts.
package prompt

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrNoPrompt is returned when a script finishes without setting prompt.
var ErrNoPrompt = errors.New("prompt: script did not set prompt")

// Vars are the values exposed to prompt scripts.
type Vars struct {
	Level           int
	EnemiesDefeated int
	Score           int
	// ThemeRoll picks a theme; scripts reduce it modulo their theme count.
	ThemeRoll int
	Schema    string
}

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// Builder compiles a prompt script once and runs it per request.
type Builder struct {
	name     string
	load     ScriptLoader
	fallback func(Vars) string

	mu       sync.Mutex
	compiled *tengo.Compiled
}

func NewBuilder(name string, load ScriptLoader, fallback func(Vars) string) *Builder {
	return &Builder{name: name, load: load, fallback: fallback}
}

// Reload drops the compiled script so the next Build recompiles it.
func (b *Builder) Reload() {
	b.mu.Lock()
	b.compiled = nil
	b.mu.Unlock()
}

// Build runs the script. When the script cannot be loaded or fails, the
// built-in fallback prompt is returned together with the error.
func (b *Builder) Build(vars Vars) (string, error) {
	out, err := b.run(vars)
	if err == nil {
		return out, nil
	}
	log.Printf("prompt: %s: %v", b.name, err)
	if b.fallback == nil {
		return "", err
	}
	return b.fallback(vars), err
}

func (b *Builder) run(vars Vars) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.compiled == nil {
		c, err := b.compile()
		if err != nil {
			return "", err
		}
		b.compiled = c
	}

	c := b.compiled.Clone()
	for name, v := range map[string]any{
		"level":            vars.Level,
		"enemies_defeated": vars.EnemiesDefeated,
		"score":            vars.Score,
		"theme_roll":       vars.ThemeRoll,
		"schema":           vars.Schema,
	} {
		if err := c.Set(name, v); err != nil {
			return "", fmt.Errorf("prompt: %s: set %s: %w", b.name, name, err)
		}
	}
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("prompt: %s: run: %w", b.name, err)
	}
	if !c.IsDefined("prompt") {
		return "", fmt.Errorf("%w (%s)", ErrNoPrompt, b.name)
	}
	out := strings.TrimSpace(c.Get("prompt").String())
	if out == "" {
		return "", fmt.Errorf("%w (%s)", ErrNoPrompt, b.name)
	}
	return out, nil
}

func (b *Builder) compile() (*tengo.Compiled, error) {
	if b.load == nil {
		return nil, fmt.Errorf("prompt: %s: no script loader", b.name)
	}
	src, err := b.load(b.name)
	if err != nil {
		return nil, fmt.Errorf("prompt: load %s: %w", b.name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("level", 0)
	_ = script.Add("enemies_defeated", 0)
	_ = script.Add("score", 0)
	_ = script.Add("theme_roll", 0)
	_ = script.Add("schema", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prompt: compile %s: %w", b.name, err)
	}
	return compiled, nil
}

// RollTheme returns a theme roll for Vars.ThemeRoll.
func RollTheme(rng *rand.Rand) int {
	if rng == nil {
		return rand.IntN(1 << 16)
	}
	return rng.IntN(1 << 16)
}

// FallbackBoss is used when the boss script is unavailable.
func FallbackBoss(v Vars) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a unique boss for a Contra-style 2D shooter. Boss number %d, level %d, score %d.\n",
		v.EnemiesDefeated/10+1, v.Level, v.Score)
	sb.WriteString("Answer with a single JSON object with name, description, color (hex), size (60-100), attacks (name and description), weakness, sound, entrance and difficulty (1-10).")
	if v.Schema != "" {
		sb.WriteString("\nSchema:\n")
		sb.WriteString(v.Schema)
	}
	return sb.String()
}

// FallbackScenario is used when the scenario script is unavailable.
func FallbackScenario(v Vars) string {
	return fmt.Sprintf("Describe a new stage for a Contra-style 2D action game at level %d after %d enemies defeated, in two or three atmospheric paragraphs.",
		v.Level, v.EnemiesDefeated)
}
