package scenario

import (
	"reflect"
	"testing"
)

func TestOverlayOpacityLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	o := NewOverlay(cfg)
	if o.Active() {
		t.Fatalf("new overlay must be hidden")
	}

	o.Show("A city of ash.")
	if o.Opacity() != 0 || o.Timer() != cfg.TotalFrames || o.State() != FadeIn {
		t.Fatalf("after Show: opacity=%v timer=%d state=%s", o.Opacity(), o.Timer(), o.State())
	}

	fullAt := -1
	prev := o.Opacity()
	for o.Active() {
		o.Update()
		op := o.Opacity()
		if op < 0 || op > 1 {
			t.Fatalf("opacity %v out of range at timer %d", op, o.Timer())
		}
		if d := op - prev; o.Active() && (d > cfg.Step*cfg.FadeInRate+1e-9 || d < -cfg.Step*cfg.FadeOutRate-1e-9) {
			t.Fatalf("opacity jumped by %v at timer %d", d, o.Timer())
		}
		if fullAt < 0 && op == 1 {
			fullAt = o.Timer()
		}
		prev = op
		if o.Timer() < 0 {
			t.Fatalf("timer went negative")
		}
	}

	if float64(fullAt) <= 0.8*float64(cfg.TotalFrames) {
		t.Fatalf("expected full opacity before 80%% of the timer remained, got timer %d", fullAt)
	}
	if o.Timer() != 0 || o.Opacity() != 0 || o.State() != Hidden {
		t.Fatalf("after expiry: timer=%d opacity=%v state=%s", o.Timer(), o.Opacity(), o.State())
	}
}

func TestOverlayStates(t *testing.T) {
	o := NewOverlay(DefaultConfig())
	o.Show("x")

	cases := []struct {
		ticks int
		state State
	}{
		{1, FadeIn},    // timer 599
		{118, FadeIn},  // timer 481
		{1, Hold},      // timer 480
		{360, Hold},    // timer 120
		{1, FadeOut},   // timer 119
		{118, FadeOut}, // timer 1
		{1, Hidden},    // timer 0
	}
	for i, c := range cases {
		for n := 0; n < c.ticks; n++ {
			o.Update()
		}
		if o.State() != c.state {
			t.Fatalf("step %d: expected %s at timer %d, got %s", i, c.state, o.Timer(), o.State())
		}
	}
	if o.Opacity() != 0 {
		t.Fatalf("opacity must reset on hide, got %v", o.Opacity())
	}
}

func TestOverlayShowRestarts(t *testing.T) {
	o := NewOverlay(DefaultConfig())
	o.Show("first")
	for i := 0; i < 200; i++ {
		o.Update()
	}
	o.Show("second")
	if o.Text() != "second" || o.Opacity() != 0 || o.Timer() != 600 || o.Progress() != 0 {
		t.Fatalf("Show did not restart the overlay")
	}
}

func TestOverlayHiddenUpdateIsNoop(t *testing.T) {
	o := NewOverlay(DefaultConfig())
	o.Update()
	if o.Active() || o.Opacity() != 0 || o.Timer() != 0 {
		t.Fatalf("hidden overlay changed on Update")
	}
}

func TestConfigFromSpecDefaults(t *testing.T) {
	if got := ConfigFromSpec(nil); got != DefaultConfig() {
		t.Fatalf("nil spec: got %+v", got)
	}
}

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	cases := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "one two", 10, []string{"one two"}},
		{"breaks", "one two three four", 9, []string{"one two", "three", "four"}},
		{"long_word", "supercalifragilistic ok", 5, []string{"supercalifragilistic", "ok"}},
		{"paragraphs", "a b\n\nc", 10, []string{"a b", "", "c"}},
		{"trailing_blank", "a\n\n", 10, []string{"a"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Wrap(c.in, c.width, measure); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Wrap(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
