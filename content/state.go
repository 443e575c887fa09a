// Package content drives requests to the generative-text service and turns
// responses into queued bosses and scenario records.
package content

import (
	"time"

	"github.com/milk9111/bossgen/boss"
)

// Kind selects what a request asks for.
type Kind int

const (
	KindBoss Kind = iota
	KindScenario
)

func (k Kind) String() string {
	switch k {
	case KindBoss:
		return "boss"
	case KindScenario:
		return "scenario"
	default:
		return "unknown"
	}
}

// ScenarioRecord is one narrated scenario with the progress it was
// generated for.
type ScenarioRecord struct {
	Text            string    `yaml:"text"`
	Timestamp       time.Time `yaml:"timestamp"`
	Level           int       `yaml:"level"`
	EnemiesDefeated int       `yaml:"enemies_defeated"`
}

// State is the request bookkeeping shared by the Requester and the
// Interpreter. It is only touched from the game update goroutine.
type State struct {
	LastRequest time.Time
	Cooldown    time.Duration
	InFlight    bool
	// Epoch increments with every issued request. A completion whose epoch
	// no longer matches is stale.
	Epoch uint64

	Pending   []boss.Descriptor
	Scenarios []ScenarioRecord
}

func NewState(cooldown time.Duration) *State {
	return &State{Cooldown: cooldown}
}

// Enqueue appends d to the pending boss queue.
func (s *State) Enqueue(d boss.Descriptor) {
	s.Pending = append(s.Pending, d)
}

// Dequeue pops the oldest pending descriptor.
func (s *State) Dequeue() (boss.Descriptor, bool) {
	if len(s.Pending) == 0 {
		return boss.Descriptor{}, false
	}
	d := s.Pending[0]
	s.Pending[0] = boss.Descriptor{}
	s.Pending = s.Pending[1:]
	return d, true
}

// CooldownRemaining returns how long until a new request is allowed.
func (s *State) CooldownRemaining(now time.Time) time.Duration {
	if s.LastRequest.IsZero() {
		return 0
	}
	left := s.Cooldown - now.Sub(s.LastRequest)
	if left < 0 {
		return 0
	}
	return left
}
