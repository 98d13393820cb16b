package render

import (
	"math"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

// View maps world positions onto a screen of Width x Height pixels.
type View struct {
	Projection component.Projection
	Position   common.Vec3
	Width      float64
	Height     float64

	near  float64
	focal float64
	right common.Vec3
	up    common.Vec3
	fwd   common.Vec3
}

// NewView builds the view of cam placed at pos.
func NewView(cam *component.Camera, pos common.Vec3, width, height int) View {
	v := View{
		Projection: cam.Projection,
		Position:   pos,
		Width:      float64(width),
		Height:     float64(height),
		near:       cam.Near,
	}
	if v.near <= 0 {
		v.near = 0.1
	}

	fwd := cam.Forward.Normalize()
	if fwd.Length() == 0 {
		fwd = common.Vec3{Z: -1}
	}
	up := cam.Up
	if up.Length() == 0 {
		up = common.Vec3Up
	}
	v.fwd = fwd
	v.right = fwd.Cross(up).Normalize()
	v.up = v.right.Cross(fwd)

	fov := cam.FOV
	if fov <= 0 {
		fov = math.Pi / 4
	}
	v.focal = (v.Height / 2) / math.Tan(fov/2)
	return v
}

// Project returns the screen position of p and its distance along the view
// direction. ok is false when p lies behind the near plane.
func (v View) Project(p common.Vec3) (x, y, depth float64, ok bool) {
	if v.Projection == component.ProjectionOrthographic {
		// 2D: one world unit per pixel, Y up, larger Z drawn on top
		return v.Width/2 + (p.X - v.Position.X), v.Height/2 - (p.Y - v.Position.Y), -p.Z, true
	}

	rel := p.Sub(v.Position)
	cz := rel.Dot(v.fwd)
	if cz < v.near {
		return 0, 0, cz, false
	}
	cx := rel.Dot(v.right)
	cy := rel.Dot(v.up)
	return v.Width/2 + cx*v.focal/cz, v.Height/2 - cy*v.focal/cz, cz, true
}

// Facing reports whether a surface at p with normal n faces the camera.
func (v View) Facing(p, n common.Vec3) bool {
	if v.Projection == component.ProjectionOrthographic {
		return n.Z >= 0
	}
	return n.Dot(v.Position.Sub(p)) > 0
}
