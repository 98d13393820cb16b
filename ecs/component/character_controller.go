package component

import "github.com/milk9111/enginedemos/common"

// CharacterController moves a kinematic body by an explicit per-tick
// translation. The physics system consumes Translation, resolves it against
// fixed colliders and clears it.
type CharacterController struct {
	Translation *common.Vec3
	// SnapToGround pulls the body down onto a supporting collider whose top
	// lies within this distance below its feet. Zero disables snapping.
	SnapToGround float64
	// Offset is the skin gap kept between the body and obstacles.
	Offset float64
}

var CharacterControllerComponent = NewComponent[CharacterController]()

// CharacterControllerOutput reports what the last resolution actually did.
type CharacterControllerOutput struct {
	Desired              common.Vec3
	EffectiveTranslation common.Vec3
	Grounded             bool
	Collided             bool
}

var CharacterControllerOutputComponent = NewComponent[CharacterControllerOutput]()
