package system

import (
	"log"

	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

// DropDiagnosticSystem logs the height of every dynamic body each tick and
// reports contacts raised by the physics system.
type DropDiagnosticSystem struct {
	logf func(format string, args ...any)
}

func NewDropDiagnosticSystem() *DropDiagnosticSystem {
	return &DropDiagnosticSystem{logf: log.Printf}
}

func (d *DropDiagnosticSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	logf := d.logf
	if logf == nil {
		logf = log.Printf
	}

	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, t *component.Transform) {
		if rb.Kind != component.RigidBodyDynamic {
			return
		}
		logf("drop: %v y=%.4f", e, t.Translation.Y)
	})

	for _, c := range ecs.EventsOf[ecs.ContactEvent](w) {
		logf("drop: contact %v <-> %v at %.2f m/s", c.A, c.B, c.Speed)
	}
}
