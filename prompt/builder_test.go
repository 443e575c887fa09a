package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/bossgen/prefabs"
)

func TestBuilderScripts(t *testing.T) {
	cases := []struct {
		name     string
		script   string
		vars     Vars
		contains []string
	}{
		{
			name:   "boss",
			script: "boss_prompt.tengo",
			vars:   Vars{Level: 4, EnemiesDefeated: 25, Score: 1200, ThemeRoll: 2, Schema: `{"type":"object"}`},
			contains: []string{
				"Boss number: 3",
				"Current level: 4",
				"Score: 1200",
				"advanced war robot",
				`{"type":"object"}`,
			},
		},
		{
			name:     "boss_theme_wraps",
			script:   "boss_prompt.tengo",
			vars:     Vars{ThemeRoll: 8 + 3},
			contains: []string{"hostile alien creature", "Boss number: 1"},
		},
		{
			name:     "scenario",
			script:   "scenario_prompt.tengo",
			vars:     Vars{Level: 2, EnemiesDefeated: 20, ThemeRoll: 7},
			contains: []string{"infected robot factory", "LEVEL: 2", "ENEMIES DEFEATED: 20"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBuilder(c.script, prefabs.LoadScript, nil)
			out, err := b.Build(c.vars)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			for _, want := range c.contains {
				if !strings.Contains(out, want) {
					t.Fatalf("prompt missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestBuilderReusesCompiledScript(t *testing.T) {
	loads := 0
	loader := func(name string) ([]byte, error) {
		loads++
		return []byte(`prompt := "level " + string(level)`), nil
	}
	b := NewBuilder("inline", loader, nil)
	for i := 1; i <= 3; i++ {
		out, err := b.Build(Vars{Level: i})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if want := "level " + string(rune('0'+i)); out != want {
			t.Fatalf("expected %q, got %q", want, out)
		}
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
	b.Reload()
	if _, err := b.Build(Vars{}); err != nil {
		t.Fatalf("Build after reload: %v", err)
	}
	if loads != 2 {
		t.Fatalf("expected reload to load again, got %d loads", loads)
	}
}

func TestBuilderFallback(t *testing.T) {
	cases := []struct {
		name   string
		loader ScriptLoader
		want   error
	}{
		{
			name:   "missing_script",
			loader: func(string) ([]byte, error) { return nil, errors.New("gone") },
		},
		{
			name:   "syntax_error",
			loader: func(string) ([]byte, error) { return []byte(`prompt := (`), nil },
		},
		{
			name:   "no_prompt",
			loader: func(string) ([]byte, error) { return []byte(`x := 1`), nil },
			want:   ErrNoPrompt,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBuilder(c.name, c.loader, FallbackBoss)
			out, err := b.Build(Vars{EnemiesDefeated: 10, Level: 2})
			if err == nil {
				t.Fatalf("expected an error")
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if !strings.Contains(out, "Boss number 2") {
				t.Fatalf("expected fallback prompt, got %q", out)
			}
		})
	}
}
