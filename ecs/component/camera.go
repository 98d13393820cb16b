package component

import (
	"image/color"

	"github.com/milk9111/enginedemos/common"
)

type Projection int

const (
	// ProjectionOrthographic maps world X/Y one-to-one onto screen pixels,
	// origin at the screen center, Y up.
	ProjectionOrthographic Projection = iota
	ProjectionPerspective
)

type Tonemapping int

const (
	TonemappingNone Tonemapping = iota
	TonemappingReinhard
	TonemappingTonyMcMapface
)

func (t Tonemapping) String() string {
	switch t {
	case TonemappingReinhard:
		return "reinhard"
	case TonemappingTonyMcMapface:
		return "tony_mc_mapface"
	default:
		return "none"
	}
}

// Camera describes how the world is projected and post-processed. Its
// position comes from the entity's Transform; its orientation is fixed at
// spawn time through Forward and Up.
type Camera struct {
	Projection  Projection
	FOV         float64 // vertical, radians
	Near        float64
	Forward     common.Vec3
	Up          common.Vec3
	HDR         bool
	Tonemapping Tonemapping
	ClearColor  color.Color
}

var CameraComponent = NewComponent[Camera]()
