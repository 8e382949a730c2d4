package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	gridSpacing   = 10.0
	hudLineHeight = 16
	hudMargin     = 8
)

// RenderSystem draws a top-down view of the world: X to the right and the
// character's initial forward (+Z) up the screen, centered on the player.
type RenderSystem struct {
	Zoom        float64
	Background  color.Color
	HUDColor    color.Color
	ShowHUD     bool
	ShowPhysics bool

	space *cp.Space
	face  text.Face
}

func NewRenderSystem(zoom float64, space *cp.Space) *RenderSystem {
	if zoom <= 0 {
		zoom = 1
	}
	return &RenderSystem{
		Zoom:       zoom,
		Background: colornames.Darkslategray,
		HUDColor:   colornames.White,
		ShowHUD:    true,
		space:      space,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// topDown maps world XZ onto the screen around center.
type topDown struct {
	center mgl64.Vec3
	zoom   float64
	w, h   float64
}

func (v topDown) toScreen(p mgl64.Vec3) (float32, float32) {
	x := v.w/2 + (p.X()-v.center.X())*v.zoom
	y := v.h/2 - (p.Z()-v.center.Z())*v.zoom
	return float32(x), float32(y)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(r.Background)

	bounds := screen.Bounds()
	view := topDown{zoom: r.Zoom, w: float64(bounds.Dx()), h: float64(bounds.Dy())}
	player, hasPlayer := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if hasPlayer {
		t, _ := ecs.Get(w, player, component.TransformComponent)
		view.center = t.Pose.Position
	}

	r.drawGrid(screen, view)
	for _, e := range w.Query(component.PropTagComponent.Kind(), component.AppearanceComponent.Kind()) {
		r.drawEntity(w, screen, view, e)
	}
	if hasPlayer {
		r.drawEntity(w, screen, view, player)
	}
	r.drawCamera(w, screen, view)

	if r.ShowPhysics && r.space != nil {
		DrawPhysicsDebug(r.space, screen, view.center, r.Zoom)
	}
	if r.ShowHUD {
		r.drawHUD(w, screen)
	}
}

func (r *RenderSystem) drawGrid(screen *ebiten.Image, view topDown) {
	step := gridSpacing * view.zoom
	if step < 4 {
		return
	}
	lineColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x18}
	ox, oy := view.toScreen(mgl64.Vec3{0, 0, 0})
	startX := math.Mod(float64(ox), step)
	for x := startX; x < view.w; x += step {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(view.h), 1, lineColor, false)
	}
	startY := math.Mod(float64(oy), step)
	for y := startY; y < view.h; y += step {
		vector.StrokeLine(screen, 0, float32(y), float32(view.w), float32(y), 1, lineColor, false)
	}
}

func (r *RenderSystem) drawEntity(w *ecs.World, screen *ebiten.Image, view topDown, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	look, ok := ecs.Get(w, e, component.AppearanceComponent)
	if !ok {
		return
	}
	fill := look.Color
	if fill == nil {
		fill = colornames.Gray
	}

	x, y := view.toScreen(t.Pose.Position)
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	sx := float32(look.Size.X() * scale * view.zoom)
	sz := float32(look.Size.Z() * scale * view.zoom)
	if look.Round {
		vector.FillCircle(screen, x, y, sx/2, fill, true)
		vector.StrokeCircle(screen, x, y, sx/2, 1, colornames.Black, true)
	} else {
		vector.FillRect(screen, x-sx/2, y-sz/2, sx, sz, fill, false)
		vector.StrokeRect(screen, x-sx/2, y-sz/2, sx, sz, 1, colornames.Black, false)
	}

	if look.Facing {
		tip := t.Pose.Position.Add(t.Pose.Forward().Mul(look.Size.Z() * scale))
		tx, ty := view.toScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 2, colornames.White, true)
	}
}

func (r *RenderSystem) drawCamera(w *ecs.World, screen *ebiten.Image, view topDown) {
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent)
	if !ok || cam.Rig == nil {
		return
	}
	cx, cy := view.toScreen(cam.Rig.Position())
	lx, ly := view.toScreen(cam.Rig.LookAtPoint())
	vector.StrokeLine(screen, cx, cy, lx, ly, 1, colornames.Yellow, true)
	vector.FillRect(screen, cx-3, cy-3, 6, 6, colornames.Yellow, false)
	vector.StrokeCircle(screen, lx, ly, 3, 1, colornames.Yellow, true)
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	lines := HUDLines(w)
	lines = append(lines, fmt.Sprintf("fps: %.1f  tps: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))

	op := &text.DrawOptions{}
	op.GeoM.Translate(hudMargin, hudMargin)
	op.LineSpacing = hudLineHeight
	op.ColorScale.ScaleWithColor(r.HUDColor)
	text.Draw(screen, strings.Join(lines, "\n"), r.face, op)
}

// HUDLines describes the player for the overlay.
func HUDLines(w *ecs.World) []string {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return []string{"no player"}
	}
	c, ok := ecs.Get(w, player, component.CharacterComponent)
	if !ok {
		return []string{"no character"}
	}
	if !c.Ready() {
		return []string{"loading " + c.Name + "..."}
	}

	lines := []string{fmt.Sprintf("%s: %v", c.Name, c.FSM.Current())}
	if c.Controller != nil {
		v := c.Controller.Velocity()
		p := c.Controller.Pose()
		lines = append(lines,
			fmt.Sprintf("velocity: %.2f %.2f %.2f", v.X(), v.Y(), v.Z()),
			fmt.Sprintf("position: %.1f %.1f %.1f", p.Position.X(), p.Position.Y(), p.Position.Z()),
		)
	}
	if anim, ok := ecs.Get(w, player, component.AnimationComponent); ok && anim.Set != nil {
		for _, wt := range anim.Set.Weights() {
			if wt.Weight == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-5s w=%.2f t=%.2f", wt.Name, wt.Weight, wt.Time))
		}
	}
	lines = append(lines, fmt.Sprintf("props: %d", len(w.Query(component.PropTagComponent.Kind()))))
	return lines
}
