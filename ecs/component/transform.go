package component

import "github.com/milk9111/enginedemos/common"

type Transform struct {
	Translation common.Vec3
	// Rotation holds Euler angles in radians, applied X, Y, then Z.
	Rotation common.Vec3
	Scale    common.Vec3
}

// NewTransform returns a unit-scale transform at (x, y, z).
func NewTransform(x, y, z float64) *Transform {
	return &Transform{Translation: common.NewVec3(x, y, z), Scale: common.Vec3One}
}

var TransformComponent = NewComponent[Transform]()
