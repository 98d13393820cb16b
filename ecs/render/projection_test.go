package render

import (
	"math"
	"testing"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

func TestOrthographicProjection(t *testing.T) {
	cam := &component.Camera{Projection: component.ProjectionOrthographic, Forward: common.Vec3{Z: -1}, Up: common.Vec3Up}
	v := NewView(cam, common.Vec3Zero, 1280, 720)

	cases := []struct {
		name   string
		p      common.Vec3
		wx, wy float64
	}{
		{"origin_is_center", common.Vec3Zero, 640, 360},
		{"x_right", common.NewVec3(-150, 0, 0), 490, 360},
		{"y_up", common.NewVec3(0, 50, 0), 640, 310},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, _, ok := v.Project(c.p)
			if !ok || x != c.wx || y != c.wy {
				t.Fatalf("project %v = (%v, %v, %v), want (%v, %v)", c.p, x, y, ok, c.wx, c.wy)
			}
		})
	}
}

func TestPerspectiveProjection(t *testing.T) {
	cam := &component.Camera{
		Projection: component.ProjectionPerspective,
		FOV:        math.Pi / 2,
		Near:       0.1,
		Forward:    common.Vec3{Y: -1},
		Up:         common.Vec3{X: -1},
	}
	v := NewView(cam, common.NewVec3(0, 50, 0), 200, 100)

	x, y, depth, ok := v.Project(common.Vec3Zero)
	if !ok || math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 || math.Abs(depth-50) > 1e-9 {
		t.Fatalf("point below camera should be centered, got (%v, %v, %v, %v)", x, y, depth, ok)
	}

	// fov 90 degrees: a point 50 units away and 50 units towards screen-up
	// lands on the top edge
	_, y, _, ok = v.Project(common.NewVec3(-50, 0, 0))
	if !ok || math.Abs(y) > 1e-9 {
		t.Fatalf("expected top edge, got y=%v ok=%v", y, ok)
	}

	if _, _, _, ok := v.Project(common.NewVec3(0, 60, 0)); ok {
		t.Fatalf("point behind the camera must be rejected")
	}
}
