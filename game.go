package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bilelsahraoui/RemyGame/config"
	"github.com/bilelsahraoui/RemyGame/ecs/system"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"github.com/bilelsahraoui/RemyGame/sim"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"
)

type Game struct {
	spec *prefabs.GameSpec

	sim     *sim.Sim
	render  *system.RenderSystem
	watcher *prefabs.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	last time.Time
}

func NewGame(cfg config.Config, spec *prefabs.GameSpec) (*Game, error) {
	specs, err := sim.LoadSpecs()
	if err != nil {
		return nil, fmt.Errorf("load specs: %w", err)
	}

	s, err := sim.New(sim.Options{
		Specs:  specs,
		Config: cfg,
		Input:  system.NewKeyboardInputSystem(),
	})
	if err != nil {
		return nil, err
	}
	s.Start(context.Background())

	render := system.NewRenderSystem(spec.Zoom, s.Space())
	render.Background = spec.Background.Or(colornames.Darkslategray)
	render.HUDColor = spec.HUD.Color.Or(colornames.White)
	render.ShowHUD = spec.HUD.Enabled
	render.ShowPhysics = cfg.Debug

	g := &Game{
		spec:   spec,
		sim:    s,
		render: render,
		last:   time.Now(),
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if err := g.sim.Err(); err != nil {
		return err
	}
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.render.ShowHUD = !g.render.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.render.ShowPhysics = !g.render.ShowPhysics
	}

	if g.watcher != nil {
		if names := g.watcher.Drain(); len(names) > 0 {
			if err := g.sim.Reload(names); err != nil {
				log.Printf("reload: %v", err)
			}
		}
	}

	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > g.spec.MaxDT {
		dt = g.spec.MaxDT
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.sim.Step(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.sim.World(), screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.spec.Width), float64(g.spec.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
