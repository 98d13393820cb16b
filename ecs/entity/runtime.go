package entity

import (
	"fmt"

	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

// NewRuntime creates the entity holding the per-tick keyboard and clock
// state every scene reads.
func NewRuntime(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.KeyboardComponent.Kind(), &component.Keyboard{}); err != nil {
		return 0, fmt.Errorf("runtime: add keyboard: %w", err)
	}
	if err := ecs.Add(w, e, component.TimeComponent.Kind(), &component.Time{}); err != nil {
		return 0, fmt.Errorf("runtime: add time: %w", err)
	}
	return e, nil
}
