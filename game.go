package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/bossgen/archive"
	"github.com/milk9111/bossgen/boss"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/content"
	"github.com/milk9111/bossgen/content/gemini"
	"github.com/milk9111/bossgen/director"
	"github.com/milk9111/bossgen/ecs"
	"github.com/milk9111/bossgen/ecs/component"
	"github.com/milk9111/bossgen/ecs/system"
	"github.com/milk9111/bossgen/prefabs"
	"github.com/milk9111/bossgen/prompt"
	"github.com/milk9111/bossgen/scenario"
	"github.com/milk9111/bossgen/sound"
)

// killsPerLevel is how many kills advance the displayed level.
const killsPerLevel = 30

type Options struct {
	Debug     bool
	Endpoint  string
	Archive   bool
	PrefabDir string
}

// progress is the host-side stand-in for the shooter's own score keeping.
type progress struct {
	kills int
	score int
}

func (p *progress) CurrentProgress() content.Progress {
	return content.Progress{
		Level:           p.kills/killsPerLevel + 1,
		EnemiesDefeated: p.kills,
		Score:           p.score,
	}
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	bossAI    *system.BossAISystem
	visuals   *system.BossVisualSystem

	state    *content.State
	catalog  *boss.Catalog
	director *director.Director
	spawner  *director.Spawner
	prompts  director.Prompts
	progress *progress

	overlay  *scenario.Overlay
	renderer *scenario.Renderer

	watcher  *prefabs.Watcher
	store    *archive.Store
	debugUI  *ebitenui.UI
	showUI   bool
	hasClip  bool
	lastInfo string
}

func NewGame(opts Options) (*Game, error) {
	geminiSpec, err := prefabs.LoadGeminiSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	bossSpec, err := prefabs.LoadBossSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	overlaySpec, err := prefabs.LoadOverlaySpec()
	if err != nil {
		log.Printf("game: overlay spec: %v, using defaults", err)
		overlaySpec = nil
	}

	rng := common.NewRand()
	g := &Game{
		world:    ecs.NewWorld(),
		state:    content.NewState(geminiSpec.Cooldown()),
		catalog:  loadCatalog(),
		progress: &progress{},
		overlay:  scenario.NewOverlay(scenario.ConfigFromSpec(overlaySpec)),
		renderer: scenario.NewRenderer(scenario.LookFromSpec(overlaySpec)),
		showUI:   opts.Debug,
	}

	if opts.Archive {
		store, err := archive.Open(archive.DefaultAppName, archive.DefaultLimit)
		if err != nil {
			log.Printf("game: %v (archive kept in memory)", err)
		}
		g.store = store
	}

	endpoint := geminiSpec.Endpoint
	if opts.Endpoint != "" {
		endpoint = opts.Endpoint
	}
	client := gemini.NewClient(endpoint, geminiSpec.APIKeyEnv)
	if client.APIKey == "" {
		log.Printf("game: %s not set, requests go to %s without a key", geminiSpec.APIKeyEnv, endpoint)
	}

	interp := &content.Interpreter{
		State:    g.state,
		Catalog:  g.catalog,
		Progress: g.progress,
		Display:  g.overlay,
	}
	if g.store != nil {
		interp.Archive = g.store
	}
	requester := content.NewRequester(g.state, client, interp, content.RequesterConfig{
		Cooldown: geminiSpec.Cooldown(),
		Timeout:  geminiSpec.Timeout(),
	})

	player := sound.NewPlayer()
	g.spawner = &director.Spawner{
		World:  g.world,
		State:  g.state,
		Interp: interp,
		Spec:   bossSpec,
		Sound:  player,
		Rand:   rng,
		Width:  common.BaseWidth,
		Height: common.BaseHeight,
	}
	g.prompts = director.Prompts{
		Boss:     prompt.NewBuilder(geminiSpec.BossScript, prefabs.LoadScript, prompt.FallbackBoss),
		Scenario: prompt.NewBuilder(geminiSpec.ScenarioScript, prefabs.LoadScript, prompt.FallbackScenario),
	}
	g.director, err = director.New(director.Options{
		Config:    director.ConfigFromSpec(geminiSpec),
		Requester: requester,
		Progress:  g.progress,
		Prompts:   g.prompts,
		Spawner:   g.spawner,
		Rand:      rng,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g.bossAI = system.NewBossAISystem(bossSpec, rng)
	g.visuals = system.NewBossVisualSystem(bossSpec, rng)
	g.scheduler = ecs.NewScheduler(
		g.bossAI,
		g.visuals,
		system.NewMotionSystem(),
		system.NewTTLSystem(),
		system.NewCullSystem(common.BaseWidth, common.BaseHeight, bossSpec.Spawn.CullMargin),
		system.NewAudioSystem(player),
		system.NewRenderSystem(),
	)

	if opts.PrefabDir != "" {
		w, err := prefabs.NewWatcher(opts.PrefabDir)
		if err != nil {
			log.Printf("game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.hasClip = true
	}

	g.debugUI = NewDebugUI(g)
	return g, nil
}

func loadCatalog() *boss.Catalog {
	spec, err := prefabs.LoadFallbackCatalogSpec()
	if err != nil {
		log.Printf("game: fallback catalog: %v, using built-in set", err)
		return boss.DefaultCatalog(nil)
	}
	c, err := boss.NewCatalog(spec.Bosses, nil)
	if err != nil {
		log.Printf("game: fallback catalog: %v, using built-in set", err)
		return boss.DefaultCatalog(nil)
	}
	return c
}

func (g *Game) Update() error {
	g.handleInput()
	g.applyPrefabChanges()

	g.director.Update()
	g.scheduler.Update(g.world)
	g.overlay.Update()
	for _, evt := range g.world.Events().DrainType(system.EventSpecialAttack) {
		if sa, ok := evt.Data.(system.SpecialAttackEvent); ok {
			g.lastInfo = fmt.Sprintf("%s: %s (%s, %d shots)", sa.Boss, sa.Attack, sa.Behavior, sa.Projectiles)
		}
	}

	if g.showUI {
		g.debugUI.Update()
	}
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.defeatEnemy()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debugSpawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.debugRequest()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debugStatus()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		g.showUI = !g.showUI
	}
}

// defeatEnemy stands in for the shooter's kill handling.
func (g *Game) defeatEnemy() {
	g.progress.kills++
	g.progress.score += 100
}

func (g *Game) debugSpawn() {
	g.director.Debug().SpawnFallback()
	g.lastInfo = "fallback boss queued"
}

func (g *Game) debugRequest() {
	if err := g.director.Debug().RequestCycle(); err != nil {
		g.lastInfo = err.Error()
		return
	}
	g.lastInfo = "request sent"
}

func (g *Game) debugStatus() {
	status := g.director.Debug().Status()
	g.lastInfo = "status logged"
	if g.hasClip {
		clipboard.Write(clipboard.FmtText, []byte(status))
		g.lastInfo = "status copied to clipboard"
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)

	p := g.progress.CurrentProgress()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.0f  level %d  kills %d  score %d  bosses %d  pending %d  last request %s\nK kill  F1 fallback  F2 request  F3 status  F4 panel  %s",
		ebiten.ActualFPS(), p.Level, p.EnemiesDefeated, p.Score,
		ecs.Count(g.world, component.BossComponent.Kind()), len(g.state.Pending), g.statusAge(), g.lastInfo))

	g.renderer.Draw(screen, g.overlay)

	if g.showUI {
		g.debugUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// statusAge is how long ago the last request was sent.
func (g *Game) statusAge() string {
	if g.state.LastRequest.IsZero() {
		return "never"
	}
	return time.Since(g.state.LastRequest).Round(time.Second).String() + " ago"
}
