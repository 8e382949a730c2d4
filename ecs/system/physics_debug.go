package system

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugInsetFraction  = 0.35
)

// DrawPhysicsDebug draws the prop space from the side (X right, Y up) in an
// inset at the bottom-right corner of screen.
func DrawPhysicsDebug(space *cp.Space, screen *ebiten.Image, center mgl64.Vec3, zoom float64) {
	if space == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	iw := float64(b.Dx()) * debugInsetFraction
	ih := float64(b.Dy()) * debugInsetFraction
	ix := float64(b.Dx()) - iw - 8
	iy := float64(b.Dy()) - ih - 8

	vector.FillRect(screen, float32(ix), float32(iy), float32(iw), float32(ih), color.NRGBA{A: 160}, false)
	vector.StrokeRect(screen, float32(ix), float32(iy), float32(iw), float32(ih), 1, color.NRGBA{R: 0x33, G: 0xff, B: 0x33, A: 0xe6}, false)

	drawer := &physicsDebugDrawer{
		screen:  screen,
		camX:    center.X(),
		camY:    center.Y() + 20,
		zoom:    zoom * debugInsetFraction,
		originX: ix + iw/2,
		originY: iy + ih/2,
	}
	cp.DrawSpace(space, drawer)
}

type physicsDebugDrawer struct {
	screen  *ebiten.Image
	camX    float64
	camY    float64
	zoom    float64
	originX float64
	originY float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	vector.FillRect(d.screen, x-float32(size)/2, y-float32(size)/2, float32(size), float32(size), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Body().IsSleeping() {
		return cp.FColor{R: 0.4, G: 0.4, B: 0.4, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// toScreen flips Y so up in the world is up on screen.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32(d.originX + (v.X-d.camX)*d.zoom), float32(d.originY - (v.Y-d.camY)*d.zoom)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
