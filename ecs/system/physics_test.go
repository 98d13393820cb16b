package system

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/ecs/entity"
	"github.com/milk9111/enginedemos/prefabs"
)

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in      string
		want    Plane
		wantErr bool
	}{
		{"", PlaneXY, false},
		{"xy", PlaneXY, false},
		{" XZ ", PlaneXZ, false},
		{"yz", PlaneXY, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlane(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("plane = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaneProjectionRoundTrip(t *testing.T) {
	v := common.NewVec3(1, 2, 3)
	for _, p := range []Plane{PlaneXY, PlaneXZ} {
		got := p.unproject(p.project(v), p.depth(v))
		if got != v {
			t.Fatalf("%v: round trip gave %v", p, got)
		}
	}
}

type dropRun struct {
	heights  []float64
	contacts int
	lines    []string
}

func runDrop(t *testing.T, ticks int) dropRun {
	t.Helper()
	w := newRuntimeWorld(t)
	mustBuild(t, w, "ground.yaml")
	cube := mustBuild(t, w, "drop_cube.yaml")

	var run dropRun
	diag := &DropDiagnosticSystem{logf: func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		run.lines = append(run.lines, line)
		if strings.Contains(line, "contact") {
			run.contacts++
		}
	}}
	sched := ecs.NewScheduler(
		NewPhysicsSystem(PhysicsConfig{Plane: PlaneXY, Gravity: -9.81}),
		diag,
	)

	tr, _ := ecs.Get(w, cube, component.TransformComponent.Kind())
	for i := 0; i < ticks; i++ {
		sched.Update(w)
		run.heights = append(run.heights, tr.Translation.Y)
	}
	return run
}

func TestDropCubeFallsAndBounces(t *testing.T) {
	run := runDrop(t, 240)

	// ground top is at -1.9, so the cube rests with its center at -1.4
	lowest, lowestAt := math.Inf(1), 0
	for i, y := range run.heights {
		if y < lowest {
			lowest, lowestAt = y, i
		}
	}
	if lowest > -1.2 || lowest < -1.75 {
		t.Fatalf("lowest point %v, expected the cube to reach the ground", lowest)
	}
	if run.heights[5] >= 4 {
		t.Fatalf("cube did not start falling: y=%v", run.heights[5])
	}

	peak := math.Inf(-1)
	for _, y := range run.heights[lowestAt:] {
		peak = math.Max(peak, y)
	}
	// restitution 0.7 from a 5.4m drop rebounds roughly 2.6m
	if peak-lowest < 1 {
		t.Fatalf("cube did not bounce: rebound of %v", peak-lowest)
	}
	if peak >= 4 {
		t.Fatalf("cube bounced higher than it was dropped from: %v", peak)
	}
	if run.contacts == 0 {
		t.Fatalf("expected contact events")
	}
}

func TestDropDiagnosticLogsEveryTick(t *testing.T) {
	run := runDrop(t, 10)
	heights := 0
	for _, line := range run.lines {
		if strings.Contains(line, " y=") {
			heights++
		}
	}
	if heights != 10 {
		t.Fatalf("logged %d heights over 10 ticks: %v", heights, run.lines)
	}
}

func TestTopDownPlaneIgnoresGravity(t *testing.T) {
	w := newRuntimeWorld(t)
	cube := mustBuild(t, w, "drop_cube.yaml")
	ps := NewPhysicsSystem(PhysicsConfig{Plane: PlaneXZ, Gravity: -9.81})
	for i := 0; i < 30; i++ {
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, cube, component.TransformComponent.Kind())
	if !vecNear(tr.Translation, common.NewVec3(0, 4, 0), 1e-9) {
		t.Fatalf("cube moved to %v", tr.Translation)
	}
}

func TestCharacterIgnoresCollidersApartInDepth(t *testing.T) {
	w := newRuntimeWorld(t)
	// a low wall entirely below the player's feet
	if _, err := entity.BuildEntityAt(w, "ground.yaml", &prefabs.TransformComponentSpec{Y: -0.6}); err != nil {
		t.Fatalf("build ground: %v", err)
	}
	player, err := entity.NewPlayer(w)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}
	cc, _ := ecs.Get(w, player, component.CharacterControllerComponent.Kind())
	move := common.NewVec3(0.3, 0, -0.2)
	cc.Translation = &move

	NewPhysicsSystem(PhysicsConfig{Plane: PlaneXZ}).Update(w)

	out, ok := ecs.Get(w, player, component.CharacterControllerOutputComponent.Kind())
	if !ok {
		t.Fatalf("missing controller output")
	}
	if !vecNear(out.EffectiveTranslation, move, 1e-9) || out.Collided {
		t.Fatalf("unexpected output %+v", out)
	}
	if !out.Grounded {
		t.Fatalf("expected the player to stand on the ground")
	}
	if cc.Translation != nil {
		t.Fatalf("request not cleared")
	}
}

func TestCharacterSnapsToGround(t *testing.T) {
	w := newRuntimeWorld(t)
	if _, err := entity.BuildEntityAt(w, "ground.yaml", &prefabs.TransformComponentSpec{Y: -0.6}); err != nil {
		t.Fatalf("build ground: %v", err)
	}
	player, err := entity.NewPlayerAt(w, 0, 0.1, 0)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	NewPhysicsSystem(PhysicsConfig{Plane: PlaneXZ}).Update(w)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	// feet rest one offset above the ground top at -0.5
	if math.Abs(tr.Translation.Y-0.01) > 1e-9 {
		t.Fatalf("player y = %v after snapping", tr.Translation.Y)
	}
	out, _ := ecs.Get(w, player, component.CharacterControllerOutputComponent.Kind())
	if !out.Grounded {
		t.Fatalf("expected grounded after snap")
	}
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	w := newRuntimeWorld(t)
	cube := mustBuild(t, w, "drop_cube.yaml")
	ps := NewPhysicsSystem(PhysicsConfig{Gravity: -9.81})
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one tracked body, got %d", len(ps.entities))
	}

	w.DestroyEntity(cube)
	ps.Update(w)
	if len(ps.entities) != 0 || len(ps.shapes) != 0 {
		t.Fatalf("destroyed body still tracked")
	}
}
