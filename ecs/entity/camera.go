package entity

import (
	"fmt"

	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/prefabs"
)

// NewCameraAt builds a camera prefab placed at (x, y, z).
func NewCameraAt(w *ecs.World, prefabPath string, x, y, z float64) (ecs.Entity, error) {
	camera, err := BuildEntityAt(w, prefabPath, &prefabs.TransformComponentSpec{X: x, Y: y, Z: z})
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !ecs.Has(w, camera, component.CameraComponent.Kind()) {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefabPath)
	}
	return camera, nil
}
