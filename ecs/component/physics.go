package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/enginedemos/common"
)

// Collider is an axis-aligned cuboid centered on the entity's Transform.
type Collider struct {
	HalfExtents common.Vec3
}

var ColliderComponent = NewComponent[Collider]()

type RigidBodyKind int

const (
	RigidBodyFixed RigidBodyKind = iota
	RigidBodyDynamic
)

// RigidBody marks a collider as simulated. Colliders without one are fixed.
type RigidBody struct {
	Kind RigidBodyKind
	Mass float64
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Restitution is the bounciness of a collider in [0,1].
type Restitution struct {
	Coefficient float64
}

var RestitutionComponent = NewComponent[Restitution]()

// PhysicsBody stores Chipmunk2D runtime data. It is owned by the physics
// system and attached the first tick an entity is simulated.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
