package director

import (
	"fmt"
	"log"
)

// Debug exposes manual triggers for testing the pipeline in a running game.
type Debug struct {
	d *Director
}

func (d *Director) Debug() Debug {
	return Debug{d: d}
}

// SpawnFallback queues a fallback boss and schedules its spawn.
func (g Debug) SpawnFallback() {
	log.Printf("director: debug fallback spawn")
	g.d.spawner.Interp.Fallback()
	g.d.QueueSpawn()
}

// RequestCycle forces a request cycle, ignoring milestones.
func (g Debug) RequestCycle() error {
	log.Printf("director: debug request cycle")
	return g.d.RequestCycle()
}

// Status logs and returns a one-line status summary.
func (g Debug) Status() string {
	s := fmt.Sprintf("%s scheduled_spawns=%d scenario_scheduled=%t",
		g.d.requester.Status(), g.d.ScheduledSpawns(), g.d.ScenarioScheduled())
	log.Printf("director: status %s", s)
	return s
}
