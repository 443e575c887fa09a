package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bossgen/common"
	"github.com/milk9111/bossgen/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "open the debug panel at start")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose files override the embedded prefabs")
	endpoint := flag.String("endpoint", "", "generator endpoint, overrides gemini.yaml (point at cmd/contentproxy to keep the key server-side)")
	noArchive := flag.Bool("no-archive", false, "do not persist generated bosses and scenarios")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("bossgen")

	prefabs.SetDir(*prefabDir)

	game, err := NewGame(Options{
		Debug:     *debug,
		Endpoint:  *endpoint,
		Archive:   !*noArchive,
		PrefabDir: *prefabDir,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
