package render

import (
	"math"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

const circleSegments = 64

type Vertex struct {
	Pos  common.Vec3
	U, V float64
}

// Triangle is a world-space triangle wound counter-clockwise around Normal.
type Triangle struct {
	V      [3]Vertex
	Normal common.Vec3
}

func (t Triangle) Centroid() common.Vec3 {
	return t.V[0].Pos.Add(t.V[1].Pos).Add(t.V[2].Pos).Mul(1.0 / 3)
}

// Tessellate turns m into world-space triangles placed by t. Flat shapes lie
// in the local XY plane facing +Z.
func Tessellate(m *component.Mesh, t *component.Transform) []Triangle {
	if m == nil {
		return nil
	}
	var local []Triangle
	switch m.Shape {
	case component.MeshCircle:
		local = fan(m.Radius, circleSegments, 0)
	case component.MeshRegularPolygon:
		// first vertex points up
		local = fan(m.Radius, m.Sides, math.Pi/2)
	case component.MeshRectangle, component.MeshQuad:
		local = rect(m.Width, m.Height)
	case component.MeshCuboid:
		local = cuboid(m.HalfExtents)
	}
	if t == nil {
		return local
	}

	scale := t.Scale
	if scale == (common.Vec3{}) {
		scale = common.Vec3One
	}
	for i := range local {
		tri := &local[i]
		for j := range tri.V {
			tri.V[j].Pos = tri.V[j].Pos.MulVec(scale).RotateEuler(t.Rotation).Add(t.Translation)
		}
		tri.Normal = tri.Normal.RotateEuler(t.Rotation).Normalize()
	}
	return local
}

func fan(radius float64, sides int, start float64) []Triangle {
	if sides < 3 || radius <= 0 {
		return nil
	}
	point := func(i int) Vertex {
		a := start + 2*math.Pi*float64(i)/float64(sides)
		x, y := radius*math.Cos(a), radius*math.Sin(a)
		return Vertex{Pos: common.NewVec3(x, y, 0), U: 0.5 + x/(2*radius), V: 0.5 - y/(2*radius)}
	}
	center := Vertex{U: 0.5, V: 0.5}
	out := make([]Triangle, 0, sides)
	for i := 0; i < sides; i++ {
		out = append(out, Triangle{
			V:      [3]Vertex{center, point(i), point(i + 1)},
			Normal: common.Vec3{Z: 1},
		})
	}
	return out
}

func rect(w, h float64) []Triangle {
	if w <= 0 || h <= 0 {
		return nil
	}
	hw, hh := w/2, h/2
	bl := Vertex{Pos: common.NewVec3(-hw, -hh, 0), U: 0, V: 1}
	br := Vertex{Pos: common.NewVec3(hw, -hh, 0), U: 1, V: 1}
	tr := Vertex{Pos: common.NewVec3(hw, hh, 0), U: 1, V: 0}
	tl := Vertex{Pos: common.NewVec3(-hw, hh, 0), U: 0, V: 0}
	n := common.Vec3{Z: 1}
	return []Triangle{
		{V: [3]Vertex{bl, br, tr}, Normal: n},
		{V: [3]Vertex{bl, tr, tl}, Normal: n},
	}
}

// cuboidFaces lists each face normal with two in-face axes whose cross
// product is the normal.
var cuboidFaces = []struct{ n, a, b common.Vec3 }{
	{common.Vec3{X: 1}, common.Vec3{Z: -1}, common.Vec3{Y: 1}},
	{common.Vec3{X: -1}, common.Vec3{Z: 1}, common.Vec3{Y: 1}},
	{common.Vec3{Y: 1}, common.Vec3{X: 1}, common.Vec3{Z: -1}},
	{common.Vec3{Y: -1}, common.Vec3{X: 1}, common.Vec3{Z: 1}},
	{common.Vec3{Z: 1}, common.Vec3{X: 1}, common.Vec3{Y: 1}},
	{common.Vec3{Z: -1}, common.Vec3{X: -1}, common.Vec3{Y: 1}},
}

func cuboid(half common.Vec3) []Triangle {
	if half.X <= 0 || half.Y <= 0 || half.Z <= 0 {
		return nil
	}
	extent := func(axis common.Vec3) float64 {
		return math.Abs(axis.X)*half.X + math.Abs(axis.Y)*half.Y + math.Abs(axis.Z)*half.Z
	}
	out := make([]Triangle, 0, 12)
	for _, f := range cuboidFaces {
		center := f.n.Mul(extent(f.n))
		ha, hb := extent(f.a), extent(f.b)
		corner := func(s, t float64) Vertex {
			return Vertex{
				Pos: center.Add(f.a.Mul(s * ha)).Add(f.b.Mul(t * hb)),
				U:   (s + 1) / 2,
				V:   1 - (t+1)/2,
			}
		}
		c0, c1, c2, c3 := corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)
		out = append(out,
			Triangle{V: [3]Vertex{c0, c1, c2}, Normal: f.n},
			Triangle{V: [3]Vertex{c0, c2, c3}, Normal: f.n},
		)
	}
	return out
}

// Bounds returns the world-space axis-aligned box around tris.
func Bounds(tris []Triangle) (min, max common.Vec3) {
	if len(tris) == 0 {
		return
	}
	min = tris[0].V[0].Pos
	max = min
	for _, t := range tris {
		for _, v := range t.V {
			min = common.NewVec3(math.Min(min.X, v.Pos.X), math.Min(min.Y, v.Pos.Y), math.Min(min.Z, v.Pos.Z))
			max = common.NewVec3(math.Max(max.X, v.Pos.X), math.Max(max.Y, v.Pos.Y), math.Max(max.Z, v.Pos.Z))
		}
	}
	return min, max
}
