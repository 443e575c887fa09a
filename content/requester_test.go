package content

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/bossgen/boss"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeDisplay struct {
	shown []string
}

func (d *fakeDisplay) Show(text string) { d.shown = append(d.shown, text) }

type fakeArchive struct {
	scenarios []ScenarioRecord
	bosses    []boss.Descriptor
}

func (a *fakeArchive) SaveScenario(rec ScenarioRecord) error {
	a.scenarios = append(a.scenarios, rec)
	return nil
}

func (a *fakeArchive) SaveBoss(d boss.Descriptor) error {
	a.bosses = append(a.bosses, d)
	return nil
}

type harness struct {
	clock   *fakeClock
	state   *State
	display *fakeDisplay
	archive *fakeArchive
	req     *Requester
}

func newHarness(t *testing.T, completer Completer) *harness {
	t.Helper()
	h := &harness{
		clock:   &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		state:   NewState(5 * time.Second),
		display: &fakeDisplay{},
		archive: &fakeArchive{},
	}
	interp := &Interpreter{
		State:    h.state,
		Catalog:  boss.DefaultCatalog(rand.New(rand.NewPCG(3, 4))),
		Progress: ProgressFunc(func() Progress { return Progress{Level: 3, EnemiesDefeated: 30, Score: 900} }),
		Display:  h.display,
		Archive:  h.archive,
	}
	h.req = NewRequester(h.state, completer, interp, RequesterConfig{
		Timeout: 10 * time.Second,
		Now:     h.clock.Now,
	})
	return h
}

// settle waits for the worker and runs one Update.
func (h *harness) settle(t *testing.T, call *Call) {
	t.Helper()
	select {
	case <-call.finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not finish")
	}
	h.req.Update()
	select {
	case <-call.Done():
	default:
		t.Fatalf("call not settled after Update")
	}
}

func textCompleter(text string) Completer {
	return CompleterFunc(func(context.Context, string) (string, error) { return text, nil })
}

func errCompleter(err error) Completer {
	return CompleterFunc(func(context.Context, string) (string, error) { return "", err })
}

func TestRequestCooldown(t *testing.T) {
	h := newHarness(t, textCompleter(`{"name": "A"}`))
	call, err := h.req.Request("p", KindBoss)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	h.settle(t, call)

	last, epoch := h.state.LastRequest, h.state.Epoch
	h.clock.Advance(4 * time.Second)
	if _, err := h.req.Request("p", KindBoss); !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("expected ErrCooldownActive, got %v", err)
	}
	if h.state.LastRequest != last || h.state.Epoch != epoch || h.state.InFlight {
		t.Fatalf("rejected request mutated state: %+v", h.state)
	}

	h.clock.Advance(time.Second)
	call, err = h.req.Request("p", KindBoss)
	if err != nil {
		t.Fatalf("request after cooldown: %v", err)
	}
	h.settle(t, call)
}

func TestRequestAlreadyInFlight(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, CompleterFunc(func(ctx context.Context, _ string) (string, error) {
		<-release
		return "{}", nil
	}))
	call, err := h.req.Request("p", KindBoss)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	h.clock.Advance(6 * time.Second)
	h.req.Update()
	last, epoch := h.state.LastRequest, h.state.Epoch
	if _, err := h.req.Request("p", KindScenario); !errors.Is(err, ErrAlreadyInFlight) {
		t.Fatalf("expected ErrAlreadyInFlight, got %v", err)
	}
	if h.state.LastRequest != last || h.state.Epoch != epoch {
		t.Fatalf("rejected request touched timestamp or epoch")
	}
	if !h.state.InFlight {
		t.Fatalf("in-flight flag cleared by rejected request")
	}

	close(release)
	h.settle(t, call)
	if h.state.InFlight {
		t.Fatalf("in-flight flag not cleared after settlement")
	}
}

func TestRequestSettlement(t *testing.T) {
	cases := []struct {
		name      string
		completer Completer
		kind      Kind
		check     func(t *testing.T, h *harness, call *Call)
	}{
		{
			name:      "boss_success",
			completer: textCompleter(`Sure! {"name": "Storm Engine", "difficulty": 5, "attacks": [{"name": "Laser Grid"}]}`),
			kind:      KindBoss,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.state.Pending) != 1 {
					t.Fatalf("expected 1 pending boss, got %d", len(h.state.Pending))
				}
				d := h.state.Pending[0]
				if d.Name != "Storm Engine" || d.Provenance != boss.ProvenanceGenerated {
					t.Fatalf("unexpected descriptor %+v", d)
				}
				if len(h.archive.bosses) != 1 {
					t.Fatalf("expected generated boss archived")
				}
				if text, err := call.Result(); err != nil || text == "" {
					t.Fatalf("Result = %q, %v", text, err)
				}
			},
		},
		{
			name:      "boss_network_failure",
			completer: errCompleter(ErrNetworkFailure),
			kind:      KindBoss,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.state.Pending) != 1 || h.state.Pending[0].Provenance != boss.ProvenanceFallback {
					t.Fatalf("expected one fallback boss, got %+v", h.state.Pending)
				}
				if _, err := call.Result(); !errors.Is(err, ErrNetworkFailure) {
					t.Fatalf("expected ErrNetworkFailure, got %v", err)
				}
			},
		},
		{
			name:      "boss_malformed",
			completer: errCompleter(ErrMalformedPayload),
			kind:      KindBoss,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.state.Pending) != 1 || h.state.Pending[0].Provenance != boss.ProvenanceFallback {
					t.Fatalf("expected one fallback boss, got %+v", h.state.Pending)
				}
			},
		},
		{
			name: "boss_completer_panic",
			completer: CompleterFunc(func(context.Context, string) (string, error) {
				panic("transport exploded")
			}),
			kind: KindBoss,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.state.Pending) != 1 || h.state.Pending[0].Provenance != boss.ProvenanceFallback {
					t.Fatalf("expected fallback after panic, got %+v", h.state.Pending)
				}
			},
		},
		{
			name:      "scenario_success",
			completer: textCompleter("Rain hisses on the broken neon."),
			kind:      KindScenario,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.state.Scenarios) != 1 {
					t.Fatalf("expected one scenario record, got %d", len(h.state.Scenarios))
				}
				rec := h.state.Scenarios[0]
				if rec.Text != "Rain hisses on the broken neon." || rec.Level != 3 || rec.EnemiesDefeated != 30 {
					t.Fatalf("unexpected record %+v", rec)
				}
				if !rec.Timestamp.Equal(h.clock.Now()) {
					t.Fatalf("expected timestamp %v, got %v", h.clock.Now(), rec.Timestamp)
				}
				if len(h.display.shown) != 1 || h.display.shown[0] != rec.Text {
					t.Fatalf("expected overlay shown, got %v", h.display.shown)
				}
				if len(h.archive.scenarios) != 1 {
					t.Fatalf("expected scenario archived")
				}
				if len(h.state.Pending) != 0 {
					t.Fatalf("scenario must not queue bosses")
				}
			},
		},
		{
			name:      "scenario_empty_text",
			completer: textCompleter(""),
			kind:      KindScenario,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.display.shown) != 1 || h.display.shown[0] != "" {
					t.Fatalf("expected empty overlay, got %v", h.display.shown)
				}
			},
		},
		{
			name:      "scenario_failure_dropped",
			completer: errCompleter(ErrNetworkFailure),
			kind:      KindScenario,
			check: func(t *testing.T, h *harness, call *Call) {
				if len(h.state.Scenarios) != 0 || len(h.display.shown) != 0 || len(h.state.Pending) != 0 {
					t.Fatalf("failed scenario must be dropped silently")
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, c.completer)
			call, err := h.req.Request("prompt", c.kind)
			if err != nil {
				t.Fatalf("Request: %v", err)
			}
			if _, err := call.Result(); !errors.Is(err, ErrPending) {
				t.Fatalf("expected ErrPending before settlement, got %v", err)
			}
			h.settle(t, call)
			if h.state.InFlight {
				t.Fatalf("in-flight flag must be cleared")
			}
			c.check(t, h, call)

			if _, err := h.req.Request("again", c.kind); !errors.Is(err, ErrCooldownActive) {
				t.Fatalf("settled call must still consume the cooldown, got %v", err)
			}
		})
	}
}

func TestRequestTimeoutDiscardsLateResponse(t *testing.T) {
	release := make(chan struct{})
	cancelled := make(chan bool, 1)
	h := newHarness(t, CompleterFunc(func(ctx context.Context, _ string) (string, error) {
		<-release
		select {
		case <-ctx.Done():
			cancelled <- true
		default:
			cancelled <- false
		}
		return `{"name": "Too Late"}`, nil
	}))

	call, err := h.req.Request("p", KindBoss)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	h.clock.Advance(9 * time.Second)
	h.req.Update()
	if call.Settled() {
		t.Fatalf("call settled before its deadline")
	}

	h.clock.Advance(time.Second)
	h.req.Update()
	if !call.Settled() || h.state.InFlight {
		t.Fatalf("expected call settled by timeout")
	}
	if _, err := call.Result(); !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("expected timeout as ErrNetworkFailure, got %v", err)
	}
	if len(h.state.Pending) != 1 || h.state.Pending[0].Provenance != boss.ProvenanceFallback {
		t.Fatalf("expected one fallback after timeout, got %+v", h.state.Pending)
	}

	close(release)
	if !<-cancelled {
		t.Fatalf("expected request context cancelled on timeout")
	}
	<-call.finished
	h.req.Update()

	if h.req.Discarded() != 1 {
		t.Fatalf("expected late response discarded, got %d", h.req.Discarded())
	}
	if len(h.state.Pending) != 1 {
		t.Fatalf("late response must not enqueue, pending=%d", len(h.state.Pending))
	}
	for _, d := range h.state.Pending {
		if d.Name == "Too Late" {
			t.Fatalf("late response applied")
		}
	}
}

func TestStatus(t *testing.T) {
	h := newHarness(t, textCompleter("{}"))
	if s := h.req.Status(); s.InFlight || s.Pending != 0 || s.CooldownRemaining != 0 {
		t.Fatalf("unexpected idle status %+v", s)
	}
	call, _ := h.req.Request("p", KindBoss)
	if s := h.req.Status(); !s.InFlight || s.Epoch != 1 {
		t.Fatalf("unexpected in-flight status %+v", s)
	}
	h.settle(t, call)
	h.clock.Advance(2 * time.Second)
	s := h.req.Status()
	if s.Pending != 1 || s.CooldownRemaining != 3*time.Second {
		t.Fatalf("unexpected settled status %+v", s)
	}
	if s.String() == "" {
		t.Fatalf("empty status string")
	}
}

func TestStateQueueIsFIFO(t *testing.T) {
	s := NewState(time.Second)
	for _, name := range []string{"a", "b", "c"} {
		s.Enqueue(boss.Descriptor{Name: name})
	}
	for _, want := range []string{"a", "b", "c"} {
		d, ok := s.Dequeue()
		if !ok || d.Name != want {
			t.Fatalf("expected %q, got %q (%v)", want, d.Name, ok)
		}
	}
	if _, ok := s.Dequeue(); ok {
		t.Fatalf("expected empty queue")
	}
}
