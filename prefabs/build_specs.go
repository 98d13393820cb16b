package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	Z        float64   `yaml:"z"`
	Rotation []float64 `yaml:"rotation"`
	Scale    []float64 `yaml:"scale"`
}

type CameraComponentSpec struct {
	Projection  string     `yaml:"projection"`
	FOV         float64    `yaml:"fov"`
	Near        float64    `yaml:"near"`
	LookAt      []float64  `yaml:"look_at"`
	Forward     []float64  `yaml:"forward"`
	Up          []float64  `yaml:"up"`
	HDR         bool       `yaml:"hdr"`
	Tonemapping string     `yaml:"tonemapping"`
	ClearColor  *YAMLColor `yaml:"clear_color"`
}

type CameraFollowComponentSpec struct {
	Height *float64 `yaml:"height"`
}

// BloomComponentSpec leaves unset knobs at their defaults.
type BloomComponentSpec struct {
	Intensity                  *float64 `yaml:"intensity"`
	LowFrequencyBoost          *float64 `yaml:"low_frequency_boost"`
	LowFrequencyBoostCurvature *float64 `yaml:"low_frequency_boost_curvature"`
	HighPassFrequency          *float64 `yaml:"high_pass_frequency"`
	CompositeMode              string   `yaml:"composite_mode"`
	Threshold                  *float64 `yaml:"threshold"`
	ThresholdSoftness          *float64 `yaml:"threshold_softness"`
}

type ColliderComponentSpec struct {
	HalfExtents []float64 `yaml:"half_extents"`
}

type RigidBodyComponentSpec struct {
	Kind string  `yaml:"kind"`
	Mass float64 `yaml:"mass"`
}

type RestitutionComponentSpec struct {
	Coefficient float64 `yaml:"coefficient"`
}

type CharacterControllerComponentSpec struct {
	SnapToGround float64 `yaml:"snap_to_ground"`
	Offset       float64 `yaml:"offset"`
}

type MeshComponentSpec struct {
	Shape       string     `yaml:"shape"`
	Radius      float64    `yaml:"radius"`
	Sides       int        `yaml:"sides"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	HalfExtents []float64  `yaml:"half_extents"`
	Color       *YAMLColor `yaml:"color"`
	Texture     string     `yaml:"texture"`
	Unlit       bool       `yaml:"unlit"`
}

type PointLightComponentSpec struct {
	Intensity      float64    `yaml:"intensity"`
	Range          float64    `yaml:"range"`
	ShadowsEnabled bool       `yaml:"shadows_enabled"`
	Color          *YAMLColor `yaml:"color"`
}

type TextComponentSpec struct {
	Value    string     `yaml:"value"`
	FontSize float64    `yaml:"font_size"`
	Color    *YAMLColor `yaml:"color"`
	Left     float64    `yaml:"left"`
	Bottom   float64    `yaml:"bottom"`
}
