package main

import (
	"flag"
	"log"

	"github.com/bilelsahraoui/RemyGame/config"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatalf("failed to load game spec: %v", err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.Width, spec.Height)
	ebiten.SetWindowTitle(spec.Title)
	if spec.TPS > 0 {
		ebiten.SetTPS(spec.TPS)
	}

	game, err := NewGame(cfg, spec)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
