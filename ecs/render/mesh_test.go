package render

import (
	"math"
	"testing"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

func TestTessellateCounts(t *testing.T) {
	cases := []struct {
		name string
		mesh component.Mesh
		want int
	}{
		{"circle", component.Mesh{Shape: component.MeshCircle, Radius: 50}, circleSegments},
		{"hexagon", component.Mesh{Shape: component.MeshRegularPolygon, Radius: 50, Sides: 6}, 6},
		{"rectangle", component.Mesh{Shape: component.MeshRectangle, Width: 50, Height: 100}, 2},
		{"quad", component.Mesh{Shape: component.MeshQuad, Width: 50, Height: 100}, 2},
		{"cuboid", component.Mesh{Shape: component.MeshCuboid, HalfExtents: common.NewVec3(0.5, 0.5, 0.5)}, 12},
		{"degenerate_polygon", component.Mesh{Shape: component.MeshRegularPolygon, Radius: 50, Sides: 2}, 0},
		{"empty_rect", component.Mesh{Shape: component.MeshRectangle}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := len(Tessellate(&c.mesh, nil)); got != c.want {
				t.Fatalf("expected %d triangles, got %d", c.want, got)
			}
		})
	}
}

func TestTessellateWindingMatchesNormal(t *testing.T) {
	meshes := []component.Mesh{
		{Shape: component.MeshCuboid, HalfExtents: common.NewVec3(1, 2, 3)},
		{Shape: component.MeshRegularPolygon, Radius: 1, Sides: 6},
		{Shape: component.MeshRectangle, Width: 2, Height: 1},
	}
	for _, m := range meshes {
		for i, tri := range Tessellate(&m, nil) {
			e1 := tri.V[1].Pos.Sub(tri.V[0].Pos)
			e2 := tri.V[2].Pos.Sub(tri.V[0].Pos)
			if e1.Cross(e2).Dot(tri.Normal) <= 0 {
				t.Fatalf("shape %d triangle %d winds against its normal %v", m.Shape, i, tri.Normal)
			}
		}
	}
}

func TestTessellateTransform(t *testing.T) {
	m := &component.Mesh{Shape: component.MeshCuboid, HalfExtents: common.NewVec3(0.5, 0.5, 0.5)}
	tr := component.NewTransform(0, 4, 0)
	tr.Scale = common.NewVec3(2, 1, 1)

	min, max := Bounds(Tessellate(m, tr))
	wantMin := common.NewVec3(-1, 3.5, -0.5)
	wantMax := common.NewVec3(1, 4.5, 0.5)
	if min.Distance(wantMin) > 1e-9 || max.Distance(wantMax) > 1e-9 {
		t.Fatalf("bounds = %v..%v, want %v..%v", min, max, wantMin, wantMax)
	}

	tr.Scale = common.Vec3One
	tr.Rotation = common.Vec3{Z: math.Pi / 2}
	for _, tri := range Tessellate(m, tr) {
		if math.Abs(tri.Normal.Length()-1) > 1e-9 {
			t.Fatalf("normals must stay unit length, got %v", tri.Normal)
		}
	}
}

func TestRegularPolygonStartsAtTop(t *testing.T) {
	m := &component.Mesh{Shape: component.MeshRegularPolygon, Radius: 50, Sides: 6}
	first := Tessellate(m, nil)[0].V[1].Pos
	if math.Abs(first.X) > 1e-9 || math.Abs(first.Y-50) > 1e-9 {
		t.Fatalf("expected first vertex at (0, 50), got %v", first)
	}
}
