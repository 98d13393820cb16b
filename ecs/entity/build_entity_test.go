package entity

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/prefabs"
)

func TestBuildEntityPrefabs(t *testing.T) {
	cases := []struct {
		prefab string
		check  func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{
			prefab: "bloom_camera.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
				if !ok {
					t.Fatalf("expected camera")
				}
				if cam.Projection != component.ProjectionOrthographic || !cam.HDR || cam.Tonemapping != component.TonemappingTonyMcMapface {
					t.Fatalf("unexpected camera %+v", cam)
				}
				bloom, ok := ecs.Get(w, e, component.BloomSettingsComponent.Kind())
				if !ok {
					t.Fatalf("expected bloom settings")
				}
				if *bloom != component.DefaultBloomSettings() {
					t.Fatalf("expected default bloom, got %+v", *bloom)
				}
			},
		},
		{
			prefab: "hexagon.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				mesh, ok := ecs.Get(w, e, component.MeshComponent.Kind())
				if !ok || mesh.Shape != component.MeshRegularPolygon || mesh.Sides != 6 || mesh.Radius != 50 {
					t.Fatalf("unexpected mesh %+v", mesh)
				}
				tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
				if tr.Translation != common.NewVec3(150, 0, 0) {
					t.Fatalf("expected hexagon at x=150, got %v", tr.Translation)
				}
			},
		},
		{
			prefab: "drop_cube.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
				if !ok || rb.Kind != component.RigidBodyDynamic {
					t.Fatalf("expected dynamic rigid body, got %+v", rb)
				}
				r, ok := ecs.Get(w, e, component.RestitutionComponent.Kind())
				if !ok || r.Coefficient != 0.7 {
					t.Fatalf("expected restitution 0.7, got %+v", r)
				}
				mesh, _ := ecs.Get(w, e, component.MeshComponent.Kind())
				if mesh.TextureKey != "uv_debug" || mesh.Texture != nil {
					t.Fatalf("texture should stay unresolved until drawn, got %+v", mesh)
				}
			},
		},
		{
			prefab: "physics_camera.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
				want := common.NewVec3(-20, -20, -10).Normalize()
				if cam.Forward.Distance(want) > 1e-9 {
					t.Fatalf("expected camera to look at origin, forward %v", cam.Forward)
				}
				if math.Abs(cam.FOV-math.Pi/4) > 1e-12 {
					t.Fatalf("expected default fov, got %v", cam.FOV)
				}
			},
		},
		{
			prefab: "player.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
					t.Fatalf("expected player tag")
				}
				if !ecs.Has(w, e, component.CharacterControllerOutputComponent.Kind()) {
					t.Fatalf("character controller should come with an output component")
				}
				cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
				if cc.Translation != nil {
					t.Fatalf("expected no pending translation")
				}
			},
		},
		{
			prefab: "player_camera.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				follow, ok := ecs.Get(w, e, component.CameraFollowComponent.Kind())
				if !ok || follow.Height != 50 {
					t.Fatalf("expected follow height 50, got %+v", follow)
				}
				cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
				if cam.Forward != common.NewVec3(0, -1, 0) {
					t.Fatalf("expected camera looking down, got %v", cam.Forward)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(strings.TrimSuffix(c.prefab, ".yaml"), func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, c.prefab)
			if err != nil {
				t.Fatalf("build %s: %v", c.prefab, err)
			}
			c.check(t, w, e)
		})
	}
}

func TestBuildEntityFromSpecErrors(t *testing.T) {
	cases := []struct {
		name       string
		components map[string]any
		wantErr    string
	}{
		{"empty", nil, "does not define components"},
		{"unknown_component", map[string]any{"sprite": map[string]any{}}, `no builder for component "sprite"`},
		{"bad_shape", map[string]any{"mesh": map[string]any{"shape": "torus"}}, "unknown mesh shape"},
		{"polygon_sides", map[string]any{"mesh": map[string]any{"shape": "regular_polygon", "sides": 2}}, "at least 3 sides"},
		{"bad_projection", map[string]any{"camera": map[string]any{"projection": "fisheye"}}, "unknown projection"},
		{"parallel_up", map[string]any{"camera": map[string]any{"forward": []any{0, 1, 0}}}, "parallel"},
		{"short_vector", map[string]any{"collider": map[string]any{"half_extents": []any{1, 2}}}, "expected 3 components"},
		{"bad_composite", map[string]any{"bloom": map[string]any{"composite_mode": "screen"}}, "unknown composite mode"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			spec := prefabs.EntityBuildSpec{Name: c.name, Components: c.components}
			_, err := BuildEntityFromSpec(w, c.name+".yaml", spec)
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build must not leave entities behind, found %d", n)
			}
		})
	}
}

func TestBuildBloomOverridesAreClamped(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{Components: map[string]any{
		"bloom": map[string]any{
			"intensity":      3.0,
			"threshold":      -1.0,
			"composite_mode": "additive",
		},
	}}
	e, err := BuildEntityFromSpec(w, "bloom.yaml", spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	bloom, _ := ecs.Get(w, e, component.BloomSettingsComponent.Kind())
	if bloom.Intensity != 1 || bloom.Prefilter.Threshold != 0 {
		t.Fatalf("expected clamped values, got %+v", bloom)
	}
	if bloom.CompositeMode != component.BloomCompositeAdditive {
		t.Fatalf("expected additive mode")
	}
	if bloom.LowFrequencyBoost != 0.7 {
		t.Fatalf("unset fields should keep defaults, got %v", bloom.LowFrequencyBoost)
	}
}

func TestBuildEntityAtOverridesTransform(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntityAt(w, "pillar.yaml", &prefabs.TransformComponentSpec{X: -6, Y: 1.5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Translation != common.NewVec3(-6, 1.5, 0) || tr.Scale != common.Vec3One {
		t.Fatalf("unexpected transform %+v", tr)
	}

	cam, err := NewCameraAt(w, "physics_camera.yaml", 0, 0, 10)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if c.Forward.Distance(common.NewVec3(0, 0, -1)) > 1e-9 {
		t.Fatalf("look_at should use the overridden position, forward %v", c.Forward)
	}
	if _, err := NewCameraAt(w, "pillar.yaml", 0, 0, 0); err == nil {
		t.Fatalf("expected error for prefab without camera")
	}
}

func TestNewRuntimeIsSingleton(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewRuntime(w); err != nil {
		t.Fatalf("runtime: %v", err)
	}
	if ecs.Resource(w, component.TimeComponent.Kind()) == nil {
		t.Fatalf("expected time resource")
	}
	if _, err := ecs.Single(w, component.KeyboardComponent.Kind()); err != nil {
		t.Fatalf("expected one keyboard: %v", err)
	}
}
