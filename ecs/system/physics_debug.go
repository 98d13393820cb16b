package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/enginedemos/ecs/render"
)

const debugCircleSegments = 24

// DrawPhysicsDebug outlines every Chipmunk shape of ps as seen through
// view. Outlines lie at depth zero of the simulated plane.
func DrawPhysicsDebug(ps *PhysicsSystem, view render.View, screen *ebiten.Image) {
	if ps == nil || ps.Space() == nil || screen == nil {
		return
	}
	cp.DrawSpace(ps.Space(), &colliderOutliner{screen: screen, view: view, plane: ps.Plane()})
}

// colliderOutliner implements cp.Drawer with projected wireframes.
type colliderOutliner struct {
	screen *ebiten.Image
	view   render.View
	plane  Plane
}

func (o *colliderOutliner) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	o.loop(circlePoints(pos, radius), outline)
	o.line(pos, pos.Add(polar(angle, radius)), outline)
}

func (o *colliderOutliner) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	o.line(a, b, fill)
}

func (o *colliderOutliner) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	o.line(a, b, outline)
	o.loop(circlePoints(a, radius), outline)
	o.loop(circlePoints(b, radius), outline)
}

func (o *colliderOutliner) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count > len(verts) {
		count = len(verts)
	}
	o.loop(verts[:count], outline)
}

func (o *colliderOutliner) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	h := math.Max(size, 0.1) / 2
	o.line(cp.Vector{X: pos.X - h, Y: pos.Y}, cp.Vector{X: pos.X + h, Y: pos.Y}, fill)
	o.line(cp.Vector{X: pos.X, Y: pos.Y - h}, cp.Vector{X: pos.X, Y: pos.Y + h}, fill)
}

func (o *colliderOutliner) Flags() uint { return cp.DRAW_SHAPES }

func (o *colliderOutliner) OutlineColor() cp.FColor { return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9} }

func (o *colliderOutliner) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (o *colliderOutliner) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (o *colliderOutliner) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (o *colliderOutliner) Data() interface{} { return nil }

func (o *colliderOutliner) line(a, b cp.Vector, c cp.FColor) {
	x1, y1, _, ok1 := o.view.Project(o.plane.unproject(a, 0))
	x2, y2, _, ok2 := o.view.Project(o.plane.unproject(b, 0))
	if !ok1 || !ok2 {
		return
	}
	vector.StrokeLine(o.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, fcolor(c), true)
}

func (o *colliderOutliner) loop(pts []cp.Vector, c cp.FColor) {
	for i := range pts {
		o.line(pts[i], pts[(i+1)%len(pts)], c)
	}
}

func circlePoints(center cp.Vector, radius float64) []cp.Vector {
	if radius <= 0 {
		return nil
	}
	pts := make([]cp.Vector, debugCircleSegments)
	for i := range pts {
		pts[i] = center.Add(polar(2*math.Pi*float64(i)/debugCircleSegments, radius))
	}
	return pts
}

func polar(angle, radius float64) cp.Vector {
	return cp.Vector{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
}

func fcolor(c cp.FColor) color.NRGBA {
	u8 := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.NRGBA{R: u8(c.R), G: u8(c.G), B: u8(c.B), A: u8(c.A)}
}
