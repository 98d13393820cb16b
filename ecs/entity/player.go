package entity

import (
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewPlayerAt(w *ecs.World, x, y, z float64) (ecs.Entity, error) {
	return BuildEntityAt(w, "player.yaml", &prefabs.TransformComponentSpec{X: x, Y: y, Z: z})
}
