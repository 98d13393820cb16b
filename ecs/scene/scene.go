package scene

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/entity"
	"github.com/milk9111/enginedemos/ecs/system"
	"github.com/milk9111/enginedemos/prefabs"
)

// Names lists the scenes shipped with the binary, in launcher order.
var Names = prefabs.SceneNames()

var ErrUnknownSystem = errors.New("scene: unknown system")

// Options tune how a scene is assembled.
type Options struct {
	// Debug draws collider outlines on top of the scene.
	Debug bool
	// Export receives bloom settings when the user asks for them.
	Export func([]byte) error
	// Keys replaces ebiten as the keyboard source.
	Keys system.KeySource
	// TPS is the fixed tick rate of the scene clock.
	TPS int
}

// Scene is a built world together with the systems that tick it.
type Scene struct {
	Name      string
	Title     string
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Spec      prefabs.SceneSpec
}

func (s *Scene) Update() {
	s.Scheduler.Update(s.World)
}

type systemContext struct {
	spec    prefabs.SceneSpec
	opts    Options
	physics *system.PhysicsSystem
}

type systemFactory func(ctx *systemContext) (ecs.System, error)

var systemRegistry = map[string]systemFactory{
	"input": func(ctx *systemContext) (ecs.System, error) {
		if ctx.opts.Keys != nil {
			return system.NewInputSystemWithSource(ctx.opts.Keys), nil
		}
		return system.NewInputSystem(), nil
	},
	"clock": func(ctx *systemContext) (ecs.System, error) {
		return system.NewClockSystem(ctx.opts.TPS), nil
	},
	"bloom_settings": func(ctx *systemContext) (ecs.System, error) {
		return system.NewBloomSettingsSystem(ctx.opts.Export), nil
	},
	"player_movement": func(ctx *systemContext) (ecs.System, error) {
		return system.NewPlayerMovementSystem(), nil
	},
	"physics": func(ctx *systemContext) (ecs.System, error) {
		cfg := system.PhysicsConfig{}
		if p := ctx.spec.Physics; p != nil {
			plane, err := system.ParsePlane(p.Plane)
			if err != nil {
				return nil, err
			}
			cfg = system.PhysicsConfig{Plane: plane, Gravity: p.Gravity, Iterations: p.Iterations}
		}
		ctx.physics = system.NewPhysicsSystem(cfg)
		return ctx.physics, nil
	},
	"camera_follow": func(ctx *systemContext) (ecs.System, error) {
		return system.NewCameraFollowSystem(), nil
	},
	"drop_diagnostic": func(ctx *systemContext) (ecs.System, error) {
		return system.NewDropDiagnosticSystem(), nil
	},
	"render": func(ctx *systemContext) (ecs.System, error) {
		rs := system.NewRenderSystem()
		if ctx.opts.Debug {
			rs.Physics = ctx.physics
		}
		return rs, nil
	},
}

// orderRules pairs systems that must run in the given order when both are
// scheduled.
var orderRules = [][2]string{
	{"input", "bloom_settings"},
	{"input", "player_movement"},
	{"clock", "physics"},
	{"player_movement", "physics"},
	{"physics", "camera_follow"},
	{"physics", "drop_diagnostic"},
	{"physics", "render"},
}

// Systems returns the registered system names, sorted.
func Systems() []string {
	names := make([]string, 0, len(systemRegistry))
	for name := range systemRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds the named scene from its YAML description.
func Load(name string, opts Options) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", name, err)
	}
	return Build(spec, opts)
}

// Build assembles a scene: the runtime resources, every listed entity and
// the system schedule.
func Build(spec prefabs.SceneSpec, opts Options) (*Scene, error) {
	if err := validateOrder(spec.Systems); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", spec.Name, err)
	}

	w := ecs.NewWorld()
	if _, err := entity.NewRuntime(w); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", spec.Name, err)
	}
	for i, es := range spec.Entities {
		if _, err := entity.BuildEntityAt(w, es.Prefab, es.Transform); err != nil {
			return nil, fmt.Errorf("scene: %s: entity %d: %w", spec.Name, i, err)
		}
	}

	ctx := &systemContext{spec: spec, opts: opts}
	sched := ecs.NewScheduler()
	for _, sysName := range spec.Systems {
		factory, ok := systemRegistry[sysName]
		if !ok {
			return nil, fmt.Errorf("scene: %s: %w %q", spec.Name, ErrUnknownSystem, sysName)
		}
		sys, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("scene: %s: system %s: %w", spec.Name, sysName, err)
		}
		sched.Add(sys)
	}

	log.Printf("scene: loaded %s (%d entities, %d systems)", spec.Name, len(w.Entities()), len(spec.Systems))
	return &Scene{Name: spec.Name, Title: spec.Title, World: w, Scheduler: sched, Spec: spec}, nil
}

func validateOrder(systems []string) error {
	index := make(map[string]int, len(systems))
	for i, name := range systems {
		if _, dup := index[name]; dup {
			return fmt.Errorf("system %s listed twice", name)
		}
		index[name] = i
	}
	for _, rule := range orderRules {
		before, okB := index[rule[0]]
		after, okA := index[rule[1]]
		if okB && okA && before > after {
			return fmt.Errorf("system %s must run before %s", rule[0], rule[1])
		}
	}
	return nil
}
