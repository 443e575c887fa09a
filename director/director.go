// Package director schedules content requests and boss spawns around the
// player's progress.
package director

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/content"
	"github.com/milk9111/bossgen/prefabs"
	"github.com/milk9111/bossgen/prompt"
)

// Config holds the cycle timings. Zero values disable the milestone trigger
// and schedule immediately.
type Config struct {
	MilestoneInterval int
	ScenarioDelay     time.Duration
	SpawnDelay        time.Duration
	// ScenarioWait bounds how long a due scenario request waits for a busy
	// requester before it is dropped.
	ScenarioWait time.Duration
}

func ConfigFromSpec(spec *prefabs.GeminiSpec) Config {
	if spec == nil {
		return Config{
			MilestoneInterval: 10,
			ScenarioDelay:     2 * time.Second,
			SpawnDelay:        3 * time.Second,
			ScenarioWait:      content.DefaultTimeout,
		}
	}
	return Config{
		MilestoneInterval: spec.MilestoneInterval,
		ScenarioDelay:     spec.ScenarioDelay(),
		SpawnDelay:        spec.SpawnDelay(),
		ScenarioWait:      spec.Timeout(),
	}
}

// Prompts builds the boss and scenario prompts.
type Prompts struct {
	Boss     *prompt.Builder
	Scenario *prompt.Builder
}

type Options struct {
	Config    Config
	Requester *content.Requester
	Progress  content.ProgressSource
	Prompts   Prompts
	Spawner   *Spawner
	Rand      *rand.Rand
	Now       func() time.Time
}

// Director runs the request cycle and the delayed spawns. All methods must
// be called from the game update goroutine.
type Director struct {
	cfg       Config
	requester *content.Requester
	progress  content.ProgressSource
	prompts   Prompts
	spawner   *Spawner
	rng       *rand.Rand
	now       func() time.Time
	schema    string

	milestone      int
	scenarioAt     time.Time
	scenarioGiveUp time.Time
	spawnAt        []time.Time
}

func New(opts Options) (*Director, error) {
	if opts.Requester == nil {
		return nil, fmt.Errorf("director: nil requester")
	}
	if opts.Spawner == nil {
		return nil, fmt.Errorf("director: nil spawner")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = common.NewRand()
	}
	if opts.Progress == nil {
		opts.Progress = content.ProgressFunc(func() content.Progress { return content.Progress{} })
	}

	schema, err := boss.Schema()
	if err != nil {
		log.Printf("director: boss schema: %v", err)
	}

	d := &Director{
		cfg:       opts.Config,
		requester: opts.Requester,
		progress:  opts.Progress,
		prompts:   opts.Prompts,
		spawner:   opts.Spawner,
		rng:       opts.Rand,
		now:       opts.Now,
		schema:    string(schema),
	}
	d.milestone = d.milestoneIndex(d.progress.CurrentProgress())
	return d, nil
}

func (d *Director) SetConfig(cfg Config) {
	d.cfg = cfg
}

func (d *Director) Config() Config {
	return d.cfg
}

func (d *Director) Requester() *content.Requester {
	return d.requester
}

// Update advances the requester, fires milestones, issues a due scenario
// request and performs due spawns. Call once per tick.
func (d *Director) Update() {
	d.requester.Update()
	now := d.now()

	if m := d.milestoneIndex(d.progress.CurrentProgress()); m > d.milestone {
		d.milestone = m
		log.Printf("director: milestone %d reached", m)
		d.QueueSpawn()
		_ = d.RequestCycle()
	}

	d.updateScenario(now)

	due := 0
	for _, at := range d.spawnAt {
		if now.Before(at) {
			break
		}
		due++
	}
	if due > 0 {
		d.spawnAt = append(d.spawnAt[:0], d.spawnAt[due:]...)
		for i := 0; i < due; i++ {
			d.spawner.Spawn()
		}
	}
}

func (d *Director) milestoneIndex(p content.Progress) int {
	if d.cfg.MilestoneInterval <= 0 || p.EnemiesDefeated <= 0 {
		return 0
	}
	return p.EnemiesDefeated / d.cfg.MilestoneInterval
}

// RequestCycle requests a boss now and schedules the scenario request for
// after the cooldown. The returned error is the boss request's.
func (d *Director) RequestCycle() error {
	log.Printf("director: requesting screen update")
	vars := d.vars()

	text, perr := d.build(d.prompts.Boss, vars, prompt.FallbackBoss)
	if perr != nil {
		log.Printf("director: boss prompt: %v", perr)
	}
	_, err := d.requester.Request(text, content.KindBoss)
	if err != nil {
		log.Printf("director: boss request: %v", err)
	}

	now := d.now()
	delay := max(d.cfg.ScenarioDelay, d.requester.State().CooldownRemaining(now))
	d.scenarioAt = now.Add(delay)
	d.scenarioGiveUp = d.scenarioAt.Add(d.cfg.ScenarioWait)
	return err
}

func (d *Director) updateScenario(now time.Time) {
	if d.scenarioAt.IsZero() || now.Before(d.scenarioAt) {
		return
	}
	if d.requester.State().InFlight {
		if now.After(d.scenarioGiveUp) {
			log.Printf("director: scenario request dropped, requester still busy")
			d.scenarioAt = time.Time{}
		}
		return
	}
	d.scenarioAt = time.Time{}

	text, perr := d.build(d.prompts.Scenario, d.vars(), prompt.FallbackScenario)
	if perr != nil {
		log.Printf("director: scenario prompt: %v", perr)
	}
	if _, err := d.requester.Request(text, content.KindScenario); err != nil {
		log.Printf("director: scenario request: %v", err)
	}
}

// QueueSpawn makes sure a boss is pending and spawns it after the spawn
// delay.
func (d *Director) QueueSpawn() {
	log.Printf("director: boss spawn in %s", d.cfg.SpawnDelay)
	d.spawner.EnsurePending()
	d.spawnAt = append(d.spawnAt, d.now().Add(d.cfg.SpawnDelay))
}

func (d *Director) vars() prompt.Vars {
	p := d.progress.CurrentProgress()
	return prompt.Vars{
		Level:           p.Level,
		EnemiesDefeated: p.EnemiesDefeated,
		Score:           p.Score,
		ThemeRoll:       prompt.RollTheme(d.rng),
		Schema:          d.schema,
	}
}

func (d *Director) build(b *prompt.Builder, vars prompt.Vars, fallback func(prompt.Vars) string) (string, error) {
	if b == nil {
		return fallback(vars), nil
	}
	return b.Build(vars)
}

// ScheduledSpawns is the number of spawns waiting for their delay.
func (d *Director) ScheduledSpawns() int {
	return len(d.spawnAt)
}

// ScenarioScheduled reports whether a scenario request is pending.
func (d *Director) ScenarioScheduled() bool {
	return !d.scenarioAt.IsZero()
}
