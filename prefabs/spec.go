package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec lists the entities and systems that make up one demo scene.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Title    string            `yaml:"title"`
	Physics  *PhysicsSpec      `yaml:"physics"`
	Systems  []string          `yaml:"systems"`
	Entities []SceneEntitySpec `yaml:"entities"`
}

// SceneEntitySpec places one prefab in a scene. A non-nil Transform replaces
// the prefab's own transform.
type SceneEntitySpec struct {
	Prefab    string                  `yaml:"prefab"`
	Transform *TransformComponentSpec `yaml:"transform"`
}

type PhysicsSpec struct {
	// Plane is the 2D plane the simulation runs in: "xy" (side view, with
	// gravity along Y) or "xz" (top-down).
	Plane      string  `yaml:"plane"`
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

func LoadSceneSpec(name string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](scenePath(name))
}

// References reports whether a change to the prefab file called name affects
// this scene: either its own file or a prefab one of its entities uses.
func (s SceneSpec) References(name string) bool {
	name = cleanPrefabPath(name)
	if name == scenePath(s.Name) {
		return true
	}
	for _, e := range s.Entities {
		if cleanPrefabPath(e.Prefab) == name {
			return true
		}
	}
	return false
}

func scenePath(name string) string {
	name = strings.TrimSuffix(cleanPrefabPath(name), ".yaml")
	name = strings.TrimPrefix(name, "scenes/")
	return "scenes/" + name + ".yaml"
}

type YAMLColor struct {
	color.Color
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa" or an SVG colour name such as
// "purple" or "limegreen".
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
