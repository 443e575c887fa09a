package main

import (
	"log"

	"github.com/milk9111/bossgen/director"
	"github.com/milk9111/bossgen/prefabs"
	"github.com/milk9111/bossgen/scenario"
)

// applyPrefabChanges drains the watcher without blocking and reloads the
// specs that changed. A spec that fails to load keeps the previous values.
func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(c)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(c prefabs.Change) {
	if c.Kind == prefabs.ChangeScript {
		g.prompts.Boss.Reload()
		g.prompts.Scenario.Reload()
		log.Printf("game: reloaded prompt script %s", c.Name)
		return
	}

	switch c.Name {
	case prefabs.BossFile:
		spec, err := prefabs.LoadBossSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			return
		}
		g.bossAI.SetSpec(spec)
		g.visuals.SetSpec(spec)
		g.spawner.Spec = spec
	case prefabs.OverlayFile:
		spec, err := prefabs.LoadOverlaySpec()
		if err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			return
		}
		g.overlay.SetConfig(scenario.ConfigFromSpec(spec))
		g.renderer.Look = scenario.LookFromSpec(spec)
	case prefabs.FallbackFile:
		spec, err := prefabs.LoadFallbackCatalogSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			return
		}
		if err := g.catalog.Replace(spec.Bosses); err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			return
		}
	case prefabs.GeminiFile:
		spec, err := prefabs.LoadGeminiSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			return
		}
		g.director.SetConfig(director.ConfigFromSpec(spec))
	default:
		return
	}
	log.Printf("game: reloaded %s", c.Name)
}
