package system

import (
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

// CameraFollowSystem keeps the player camera a fixed height above the
// player. Only the camera's translation changes; its orientation is fixed.
type CameraFollowSystem struct{}

func NewCameraFollowSystem() *CameraFollowSystem {
	return &CameraFollowSystem{}
}

func (cs *CameraFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, err := ecs.Single(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if err != nil {
		panic("camera follow system: find player: " + err.Error())
	}
	camera, err := ecs.Single(w, component.PlayerCameraTagComponent.Kind(), component.TransformComponent.Kind())
	if err != nil {
		panic("camera follow system: find camera: " + err.Error())
	}

	playerTransform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	camTransform, _ := ecs.Get(w, camera, component.TransformComponent.Kind())

	height := component.DefaultCameraFollowHeight
	if follow, ok := ecs.Get(w, camera, component.CameraFollowComponent.Kind()); ok {
		height = follow.Height
	}

	p := playerTransform.Translation
	camTransform.Translation.X = p.X
	camTransform.Translation.Y = p.Y + height
	camTransform.Translation.Z = p.Z
}
