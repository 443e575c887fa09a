package content

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	DefaultCooldown = 5 * time.Second
	DefaultTimeout  = 10 * time.Second
)

// Call is one issued request. Done is closed once the call has been settled
// by Requester.Update; Result is valid after that.
type Call struct {
	kind     Kind
	epoch    uint64
	issued   time.Time
	deadline time.Time
	cancel   context.CancelFunc

	// written by the worker before finished is closed
	text     string
	err      error
	finished chan struct{}

	// written by the game thread
	settled bool
	outText string
	outErr  error
	done    chan struct{}
}

func (c *Call) Kind() Kind {
	return c.kind
}

func (c *Call) Epoch() uint64 {
	return c.epoch
}

// Done is closed when the call is settled.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Settled reports whether Update has settled the call.
func (c *Call) Settled() bool {
	return c.settled
}

// Result returns the response text or the settlement error, or ErrPending
// while the call is unsettled.
func (c *Call) Result() (string, error) {
	if !c.settled {
		return "", ErrPending
	}
	return c.outText, c.outErr
}

func (c *Call) workerFinished() bool {
	select {
	case <-c.finished:
		return true
	default:
		return false
	}
}

// RequesterConfig tunes a Requester. Zero durations use the defaults.
type RequesterConfig struct {
	Cooldown time.Duration
	Timeout  time.Duration
	Now      func() time.Time
}

// Requester issues at most one generator call at a time, rate limited by
// State.Cooldown and bounded by a timeout. Request and Update must be called
// from the game update goroutine.
type Requester struct {
	state     *State
	completer Completer
	interp    *Interpreter
	timeout   time.Duration
	now       func() time.Time

	current   *Call
	abandoned []*Call
	discarded int
}

func NewRequester(state *State, completer Completer, interp *Interpreter, cfg RequesterConfig) *Requester {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if state.Cooldown <= 0 {
		state.Cooldown = cfg.Cooldown
	}
	if interp != nil && interp.Now == nil {
		interp.Now = cfg.Now
	}
	return &Requester{
		state:     state,
		completer: completer,
		interp:    interp,
		timeout:   cfg.Timeout,
		now:       cfg.Now,
	}
}

func (r *Requester) State() *State {
	return r.state
}

// Current returns the call in flight, if any.
func (r *Requester) Current() *Call {
	return r.current
}

// Discarded counts responses dropped because their call had already been
// settled.
func (r *Requester) Discarded() int {
	return r.discarded
}

// Request issues prompt unless the cooldown is active or a call is already
// in flight. It never blocks.
func (r *Requester) Request(prompt string, kind Kind) (*Call, error) {
	now := r.now()
	if left := r.state.CooldownRemaining(now); left > 0 {
		log.Printf("gemini: cooldown active, %s left", left.Round(time.Second))
		return nil, fmt.Errorf("%w: %s left", ErrCooldownActive, left)
	}
	if r.state.InFlight {
		return nil, ErrAlreadyInFlight
	}

	r.state.InFlight = true
	r.state.LastRequest = now
	r.state.Epoch++

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	call := &Call{
		kind:     kind,
		epoch:    r.state.Epoch,
		issued:   now,
		deadline: now.Add(r.timeout),
		cancel:   cancel,
		finished: make(chan struct{}),
		done:     make(chan struct{}),
	}
	r.current = call

	log.Printf("gemini: sending %s request (epoch %d): %.100s", kind, call.epoch, prompt)
	go r.work(ctx, call, prompt)
	return call, nil
}

func (r *Requester) work(ctx context.Context, call *Call, prompt string) {
	defer close(call.finished)
	defer func() {
		if rec := recover(); rec != nil {
			call.err = fmt.Errorf("%w: completer panic: %v", ErrNetworkFailure, rec)
		}
	}()
	if r.completer == nil {
		call.err = fmt.Errorf("%w: no completer configured", ErrNetworkFailure)
		return
	}
	call.text, call.err = r.completer.Complete(ctx, prompt)
}

// Update settles the current call once its worker finished or its deadline
// passed, and drops late responses of calls settled earlier. Call once per
// tick.
func (r *Requester) Update() {
	r.reapAbandoned()

	call := r.current
	if call == nil {
		return
	}
	switch {
	case call.workerFinished():
		r.settle(call, call.text, call.err)
	case !r.now().Before(call.deadline):
		call.cancel()
		r.abandoned = append(r.abandoned, call)
		r.settle(call, "", fmt.Errorf("%w: timed out after %s", ErrNetworkFailure, r.timeout))
	}
}

func (r *Requester) settle(call *Call, text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("gemini: %s response handling panicked: %v", call.kind, rec)
			call.outErr = fmt.Errorf("%w: %v", ErrMalformedPayload, rec)
			if call.kind == KindBoss && r.interp != nil && err == nil {
				r.interp.Fallback()
			}
		}
		r.state.InFlight = false
		r.current = nil
		call.cancel()
		call.settled = true
		close(call.done)
	}()

	call.outText, call.outErr = text, err
	if err != nil {
		log.Printf("gemini: %s request failed: %v", call.kind, err)
		if call.kind == KindBoss && r.interp != nil {
			r.interp.Fallback()
		}
		return
	}

	log.Printf("gemini: %s response: %.150s", call.kind, text)
	if r.interp == nil {
		return
	}
	switch call.kind {
	case KindBoss:
		r.interp.InterpretBoss(text)
	case KindScenario:
		r.interp.InterpretScenario(text)
	}
}

// reapAbandoned drops responses that finished after their call timed out.
func (r *Requester) reapAbandoned() {
	kept := r.abandoned[:0]
	for _, call := range r.abandoned {
		if !call.workerFinished() {
			kept = append(kept, call)
			continue
		}
		if call.err == nil {
			r.discarded++
			log.Printf("gemini: discarding late %s response (epoch %d, current %d)", call.kind, call.epoch, r.state.Epoch)
		}
	}
	r.abandoned = kept
}

// Status is a diagnostic snapshot of the requester.
type Status struct {
	InFlight          bool
	Pending           int
	Scenarios         int
	Epoch             uint64
	Discarded         int
	LastRequest       time.Time
	CooldownRemaining time.Duration
}

func (r *Requester) Status() Status {
	now := r.now()
	return Status{
		InFlight:          r.state.InFlight,
		Pending:           len(r.state.Pending),
		Scenarios:         len(r.state.Scenarios),
		Epoch:             r.state.Epoch,
		Discarded:         r.discarded,
		LastRequest:       r.state.LastRequest,
		CooldownRemaining: r.state.CooldownRemaining(now),
	}
}

func (s Status) String() string {
	last := "never"
	if !s.LastRequest.IsZero() {
		last = s.LastRequest.Format(time.RFC3339)
	}
	return fmt.Sprintf("requesting=%t pending=%d scenarios=%d epoch=%d discarded=%d last_request=%s cooldown_left=%s",
		s.InFlight, s.Pending, s.Scenarios, s.Epoch, s.Discarded, last, s.CooldownRemaining.Round(time.Millisecond))
}
