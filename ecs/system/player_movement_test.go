package system

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/ecs/entity"
	"github.com/milk9111/enginedemos/prefabs"
)

func TestMovementIntent(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want common.Vec3
	}{
		{"none", nil, common.Vec3{}},
		{"W", []ebiten.Key{ebiten.KeyW}, common.Vec3{X: -0.1}},
		{"S", []ebiten.Key{ebiten.KeyS}, common.Vec3{X: 0.1}},
		{"A", []ebiten.Key{ebiten.KeyA}, common.Vec3{Z: 0.1}},
		{"D", []ebiten.Key{ebiten.KeyD}, common.Vec3{Z: -0.1}},
		{"W+A", []ebiten.Key{ebiten.KeyW, ebiten.KeyA}, common.Vec3{X: -0.1, Z: 0.1}},
		{"A+D cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyD}, common.Vec3{}},
		{"W+S cancel", []ebiten.Key{ebiten.KeyW, ebiten.KeyS}, common.Vec3{}},
		{"unrelated", []ebiten.Key{ebiten.KeyQ, ebiten.KeySpace}, common.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kb component.Keyboard
			kb.Reset(tt.keys, nil)
			got := MovementIntent(&kb)
			if !vecNear(got, tt.want, 1e-12) {
				t.Fatalf("intent = %v, want %v", got, tt.want)
			}
		})
	}
}

// newPlayerWorld assembles the player controller scene with its systems in
// tick order.
func newPlayerWorld(t *testing.T) (*ecs.World, *ecs.Scheduler, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := newRuntimeWorld(t)
	camera := mustBuild(t, w, "player_camera.yaml")
	if _, err := entity.BuildEntityAt(w, "ground.yaml", &prefabs.TransformComponentSpec{Y: -0.6}); err != nil {
		t.Fatalf("build ground: %v", err)
	}
	if _, err := entity.BuildEntityAt(w, "pillar.yaml", &prefabs.TransformComponentSpec{X: -6, Y: 1.5}); err != nil {
		t.Fatalf("build pillar: %v", err)
	}
	player, err := entity.NewPlayer(w)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	sched := ecs.NewScheduler(
		NewPlayerMovementSystem(),
		NewPhysicsSystem(PhysicsConfig{Plane: PlaneXZ}),
		NewCameraFollowSystem(),
	)
	return w, sched, player, camera
}

func TestPlayerMovesOneStepPerTickWhileWHeld(t *testing.T) {
	w, sched, player, camera := newPlayerWorld(t)
	press(w, []ebiten.Key{ebiten.KeyW})
	// the step is per tick, independent of the tick duration
	ecs.Resource(w, component.TimeComponent.Kind()).Delta = 1

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	ct, _ := ecs.Get(w, camera, component.TransformComponent.Kind())
	for tick := 1; tick <= 10; tick++ {
		before := pt.Translation
		sched.Update(w)

		if math.Abs(pt.Translation.X-(before.X-0.1)) > 1e-6 {
			t.Fatalf("tick %d: x = %v, want %v", tick, pt.Translation.X, before.X-0.1)
		}
		if math.Abs(pt.Translation.Z-before.Z) > 1e-6 || math.Abs(pt.Translation.Y-before.Y) > 1e-6 {
			t.Fatalf("tick %d: player drifted off axis: %v", tick, pt.Translation)
		}
		if ct.Translation != pt.Translation.Add(common.Vec3{Y: 50}) {
			t.Fatalf("tick %d: camera at %v, player at %v", tick, ct.Translation, pt.Translation)
		}

		cc, _ := ecs.Get(w, player, component.CharacterControllerComponent.Kind())
		if cc.Translation != nil {
			t.Fatalf("tick %d: translation request not consumed", tick)
		}
		out, ok := ecs.Get(w, player, component.CharacterControllerOutputComponent.Kind())
		if !ok || !out.Grounded || out.Collided {
			t.Fatalf("tick %d: unexpected output %+v", tick, out)
		}
	}
	if math.Abs(pt.Translation.X+1) > 1e-5 {
		t.Fatalf("after 10 ticks x = %v, want -1", pt.Translation.X)
	}
}

func TestPlayerStopsAtPillar(t *testing.T) {
	w, sched, player, camera := newPlayerWorld(t)
	press(w, []ebiten.Key{ebiten.KeyW})

	for i := 0; i < 120; i++ {
		sched.Update(w)
	}

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	// pillar spans x in [-7,-5], player half width is 0.5
	if pt.Translation.X < -4.6 {
		t.Fatalf("player passed through the pillar: x = %v", pt.Translation.X)
	}
	if pt.Translation.X > -4 {
		t.Fatalf("player stopped early: x = %v", pt.Translation.X)
	}
	out, _ := ecs.Get(w, player, component.CharacterControllerOutputComponent.Kind())
	if !out.Collided {
		t.Fatalf("expected the last move to report a collision: %+v", out)
	}
	ct, _ := ecs.Get(w, camera, component.TransformComponent.Kind())
	if !vecNear(ct.Translation, pt.Translation.Add(common.Vec3{Y: 50}), 1e-9) {
		t.Fatalf("camera lost the player: %v vs %v", ct.Translation, pt.Translation)
	}
}

func TestOpposingKeysKeepPlayerInPlace(t *testing.T) {
	w, sched, player, _ := newPlayerWorld(t)
	press(w, []ebiten.Key{ebiten.KeyA, ebiten.KeyD})

	for i := 0; i < 20; i++ {
		sched.Update(w)
	}
	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if !vecNear(pt.Translation, common.Vec3{}, 1e-9) {
		t.Fatalf("player moved to %v", pt.Translation)
	}
}

func TestPlayerMovementRequiresExactlyOnePlayer(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		w := newRuntimeWorld(t)
		expectPanic(t, func() { NewPlayerMovementSystem().Update(w) })
	})
	t.Run("two", func(t *testing.T) {
		w := newRuntimeWorld(t)
		mustBuild(t, w, "player.yaml")
		if _, err := entity.NewPlayerAt(w, 5, 0, 0); err != nil {
			t.Fatalf("build second player: %v", err)
		}
		expectPanic(t, func() { NewPlayerMovementSystem().Update(w) })
	})
}

func vecNear(a, b common.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
