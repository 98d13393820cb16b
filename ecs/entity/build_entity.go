package entity

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"player_camera_tag":    addPlayerCameraTag,
	"transform":            addTransform,
	"camera":               addCamera,
	"camera_follow":        addCameraFollow,
	"bloom":                addBloom,
	"collider":             addCollider,
	"rigid_body":           addRigidBody,
	"restitution":          addRestitution,
	"character_controller": addCharacterController,
	"mesh":                 addMesh,
	"point_light":          addPointLight,
	"text":                 addText,
}

// componentBuildOrder lets builders rely on components listed before them.
var componentBuildOrder = []string{
	"player_tag",
	"player_camera_tag",
	"transform",
	"camera",
	"camera_follow",
	"bloom",
	"collider",
	"rigid_body",
	"restitution",
	"character_controller",
	"mesh",
	"point_light",
	"text",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec creates an entity from an already decoded prefab.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// BuildEntityAt builds a prefab with its transform replaced by override, so
// builders that read the transform (such as a look_at camera) see the final
// position. A nil override keeps the prefab's transform.
func BuildEntityAt(w *ecs.World, prefabPath string, override *prefabs.TransformComponentSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if override != nil {
		if spec.Components == nil {
			spec.Components = map[string]any{}
		}
		spec.Components["transform"] = *override
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// SetEntityTransform replaces the transform of e with spec.
func SetEntityTransform(w *ecs.World, e ecs.Entity, spec prefabs.TransformComponentSpec) error {
	t, err := transformFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addPlayerCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCameraTagComponent.Kind(), &component.PlayerCameraTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return SetEntityTransform(w, e, spec)
}

func transformFromSpec(spec transformSpec) (*component.Transform, error) {
	rot, err := vec3FromSpec(spec.Rotation, common.Vec3Zero)
	if err != nil {
		return nil, fmt.Errorf("transform rotation: %w", err)
	}
	scale, err := vec3FromSpec(spec.Scale, common.Vec3One)
	if err != nil {
		return nil, fmt.Errorf("transform scale: %w", err)
	}
	return &component.Transform{
		Translation: common.NewVec3(spec.X, spec.Y, spec.Z),
		Rotation:    rot,
		Scale:       scale,
	}, nil
}

type cameraSpec = prefabs.CameraComponentSpec

const defaultFOV = math.Pi / 4

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}

	cam := &component.Camera{
		FOV:        spec.FOV,
		Near:       spec.Near,
		HDR:        spec.HDR,
		ClearColor: color.Black,
	}
	if cam.FOV <= 0 {
		cam.FOV = defaultFOV
	}
	if cam.Near <= 0 {
		cam.Near = 0.1
	}
	if spec.ClearColor != nil {
		cam.ClearColor = spec.ClearColor.Color
	}

	switch strings.ToLower(spec.Projection) {
	case "", "orthographic":
		cam.Projection = component.ProjectionOrthographic
	case "perspective":
		cam.Projection = component.ProjectionPerspective
	default:
		return fmt.Errorf("unknown projection %q", spec.Projection)
	}

	switch strings.ToLower(spec.Tonemapping) {
	case "", "none":
		cam.Tonemapping = component.TonemappingNone
	case "reinhard":
		cam.Tonemapping = component.TonemappingReinhard
	case "tony_mc_mapface":
		cam.Tonemapping = component.TonemappingTonyMcMapface
	default:
		return fmt.Errorf("unknown tonemapping %q", spec.Tonemapping)
	}

	cam.Up, err = vec3FromSpec(spec.Up, common.Vec3Up)
	if err != nil {
		return fmt.Errorf("camera up: %w", err)
	}
	cam.Forward, err = vec3FromSpec(spec.Forward, common.Vec3{Z: -1})
	if err != nil {
		return fmt.Errorf("camera forward: %w", err)
	}
	if len(spec.LookAt) > 0 {
		target, err := vec3FromSpec(spec.LookAt, common.Vec3Zero)
		if err != nil {
			return fmt.Errorf("camera look_at: %w", err)
		}
		// orientation is fixed from the transform placed before this builder
		eye := common.Vec3Zero
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			eye = t.Translation
		}
		cam.Forward = common.LookDirection(eye, target)
	}
	cam.Forward = cam.Forward.Normalize()
	cam.Up = cam.Up.Normalize()
	if math.Abs(cam.Forward.Dot(cam.Up)) > 0.999 {
		return fmt.Errorf("camera up %v is parallel to forward %v", cam.Up, cam.Forward)
	}

	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

type cameraFollowSpec = prefabs.CameraFollowComponentSpec

func addCameraFollow(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraFollowSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera_follow spec: %w", err)
	}
	height := component.DefaultCameraFollowHeight
	if spec.Height != nil {
		height = *spec.Height
	}
	return ecs.Add(w, e, component.CameraFollowComponent.Kind(), &component.CameraFollow{Height: height})
}

type bloomSpec = prefabs.BloomComponentSpec

func addBloom(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bloomSpec](raw)
	if err != nil {
		return fmt.Errorf("decode bloom spec: %w", err)
	}

	bloom := component.DefaultBloomSettings()
	setIf := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setIf(&bloom.Intensity, spec.Intensity)
	setIf(&bloom.LowFrequencyBoost, spec.LowFrequencyBoost)
	setIf(&bloom.LowFrequencyBoostCurvature, spec.LowFrequencyBoostCurvature)
	setIf(&bloom.HighPassFrequency, spec.HighPassFrequency)
	setIf(&bloom.Prefilter.Threshold, spec.Threshold)
	setIf(&bloom.Prefilter.ThresholdSoftness, spec.ThresholdSoftness)

	switch strings.ToLower(spec.CompositeMode) {
	case "", "energy_conserving":
		bloom.CompositeMode = component.BloomCompositeEnergyConserving
	case "additive":
		bloom.CompositeMode = component.BloomCompositeAdditive
	default:
		return fmt.Errorf("unknown composite mode %q", spec.CompositeMode)
	}
	bloom.Clamp()

	return ecs.Add(w, e, component.BloomSettingsComponent.Kind(), &bloom)
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	half, err := vec3FromSpec(spec.HalfExtents, common.NewVec3(0.5, 0.5, 0.5))
	if err != nil {
		return fmt.Errorf("collider half_extents: %w", err)
	}
	if half.X <= 0 || half.Y <= 0 || half.Z <= 0 {
		return fmt.Errorf("collider half_extents must be positive, got %v", half)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{HalfExtents: half})
}

type rigidBodySpec = prefabs.RigidBodyComponentSpec

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rigidBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}
	body := &component.RigidBody{Mass: spec.Mass}
	switch strings.ToLower(spec.Kind) {
	case "", "fixed":
		body.Kind = component.RigidBodyFixed
	case "dynamic":
		body.Kind = component.RigidBodyDynamic
	default:
		return fmt.Errorf("unknown rigid body kind %q", spec.Kind)
	}
	if body.Mass <= 0 {
		body.Mass = 1
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), body)
}

type restitutionSpec = prefabs.RestitutionComponentSpec

func addRestitution(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[restitutionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode restitution spec: %w", err)
	}
	return ecs.Add(w, e, component.RestitutionComponent.Kind(), &component.Restitution{
		Coefficient: common.Clamp(spec.Coefficient, 0, 1),
	})
}

type characterControllerSpec = prefabs.CharacterControllerComponentSpec

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterControllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character_controller spec: %w", err)
	}
	if err := ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{
		SnapToGround: math.Max(spec.SnapToGround, 0),
		Offset:       math.Max(spec.Offset, 0),
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CharacterControllerOutputComponent.Kind(), &component.CharacterControllerOutput{})
}

type meshSpec = prefabs.MeshComponentSpec

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}

	mesh := &component.Mesh{
		Radius:     spec.Radius,
		Sides:      spec.Sides,
		Width:      spec.Width,
		Height:     spec.Height,
		Color:      color.White,
		TextureKey: spec.Texture,
		Unlit:      spec.Unlit,
	}
	if spec.Color != nil {
		mesh.Color = spec.Color.Color
	}

	switch strings.ToLower(spec.Shape) {
	case "circle":
		mesh.Shape = component.MeshCircle
	case "rectangle":
		mesh.Shape = component.MeshRectangle
	case "quad":
		mesh.Shape = component.MeshQuad
	case "regular_polygon":
		mesh.Shape = component.MeshRegularPolygon
		if mesh.Sides < 3 {
			return fmt.Errorf("regular_polygon needs at least 3 sides, got %d", mesh.Sides)
		}
	case "cuboid":
		mesh.Shape = component.MeshCuboid
		mesh.HalfExtents, err = vec3FromSpec(spec.HalfExtents, common.NewVec3(0.5, 0.5, 0.5))
		if err != nil {
			return fmt.Errorf("mesh half_extents: %w", err)
		}
	default:
		return fmt.Errorf("unknown mesh shape %q", spec.Shape)
	}

	return ecs.Add(w, e, component.MeshComponent.Kind(), mesh)
}

type pointLightSpec = prefabs.PointLightComponentSpec

func addPointLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pointLightSpec](raw)
	if err != nil {
		return fmt.Errorf("decode point_light spec: %w", err)
	}
	light := &component.PointLight{
		Intensity:      spec.Intensity,
		Range:          spec.Range,
		ShadowsEnabled: spec.ShadowsEnabled,
		Color:          color.White,
	}
	if spec.Color != nil {
		light.Color = spec.Color.Color
	}
	if light.Range <= 0 {
		light.Range = 20
	}
	return ecs.Add(w, e, component.PointLightComponent.Kind(), light)
}

type textSpec = prefabs.TextComponentSpec

func addText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[textSpec](raw)
	if err != nil {
		return fmt.Errorf("decode text spec: %w", err)
	}
	text := &component.Text{
		Value:    spec.Value,
		FontSize: spec.FontSize,
		Color:    color.White,
		Left:     spec.Left,
		Bottom:   spec.Bottom,
	}
	if text.FontSize <= 0 {
		text.FontSize = 13
	}
	if spec.Color != nil {
		text.Color = spec.Color.Color
	}
	return ecs.Add(w, e, component.TextComponent.Kind(), text)
}

func vec3FromSpec(v []float64, def common.Vec3) (common.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return common.NewVec3(v[0], v[1], v[2]), nil
	default:
		return def, fmt.Errorf("expected 3 components, got %d", len(v))
	}
}

// RegisteredComponents lists every component name a prefab may use.
func RegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
