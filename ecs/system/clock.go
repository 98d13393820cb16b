package system

import (
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

// ClockSystem advances the singleton Time by a fixed step each tick.
type ClockSystem struct {
	Step float64
}

func NewClockSystem(tps int) *ClockSystem {
	if tps <= 0 {
		tps = 60
	}
	return &ClockSystem{Step: 1 / float64(tps)}
}

func (c *ClockSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	t := ecs.Resource(w, component.TimeComponent.Kind())
	t.Delta = c.Step
	t.Elapsed += c.Step
	t.Tick++
}
