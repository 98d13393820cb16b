package system

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
	collisionTypeCharacter
)

const (
	defaultIterations = 20
	defaultStep       = 1.0 / 60.0
	// fixed colliders without a Restitution use this elasticity so a dynamic
	// body's own coefficient is the effective one (cp multiplies the two).
	fixedElasticity = 1.0
)

// Plane is the 2D slice of the world Chipmunk simulates. The remaining axis
// is the depth axis: shapes only collide when their depth ranges overlap.
type Plane int

const (
	// PlaneXY is a side view: world X and Y are simulated, Z is depth.
	PlaneXY Plane = iota
	// PlaneXZ is a top-down view: world X and Z are simulated, Y is depth.
	PlaneXZ
)

func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	default:
		return PlaneXY, fmt.Errorf("physics: unknown plane %q", s)
	}
}

func (p Plane) String() string {
	if p == PlaneXZ {
		return "xz"
	}
	return "xy"
}

func (p Plane) project(v common.Vec3) cp.Vector {
	if p == PlaneXZ {
		return cp.Vector{X: v.X, Y: v.Z}
	}
	return cp.Vector{X: v.X, Y: v.Y}
}

func (p Plane) unproject(v cp.Vector, depth float64) common.Vec3 {
	if p == PlaneXZ {
		return common.NewVec3(v.X, depth, v.Y)
	}
	return common.NewVec3(v.X, v.Y, depth)
}

func (p Plane) depth(v common.Vec3) float64 {
	if p == PlaneXZ {
		return v.Y
	}
	return v.Z
}

// PhysicsConfig selects the simulated plane and its parameters.
type PhysicsConfig struct {
	Plane      Plane
	Gravity    float64
	Iterations int
}

type bodyKind int

const (
	bodyStatic bodyKind = iota
	bodyDynamic
	bodyCharacter
)

type bodyInfo struct {
	entity ecs.Entity
	kind   bodyKind
	body   *cp.Body
	shape  *cp.Shape
	// depth range of the collider along the plane's depth axis
	depthMin float64
	depthMax float64
	skin     float64
	// planar center and half size; center is only tracked for fixed bodies
	center cp.Vector
	half   cp.Vector
}

// PhysicsSystem simulates colliders with Chipmunk2D. Fixed colliders become
// static shapes, dynamic rigid bodies are integrated under gravity and
// character controllers are moved by their requested translation.
type PhysicsSystem struct {
	space         *cp.Space
	config        PhysicsConfig
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]*bodyInfo
	collided map[ecs.Entity]bool
	contacts []ecs.ContactEvent
}

func NewPhysicsSystem(config PhysicsConfig) *PhysicsSystem {
	if config.Iterations <= 0 {
		config.Iterations = defaultIterations
	}
	ps := &PhysicsSystem{
		config:   config,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]*bodyInfo),
		collided: make(map[ecs.Entity]bool),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = uint(ps.config.Iterations)
	// gravity acts along world Y, which only the XY plane simulates
	if ps.config.Plane == PlaneXY {
		space.SetGravity(cp.Vector{X: 0, Y: ps.config.Gravity})
	}
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Plane() Plane {
	if ps == nil {
		return PlaneXY
	}
	return ps.config.Plane
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = ps.newSpace()
		ps.handlersReady = false
	}

	dt := defaultStep
	if e, err := ecs.Single(w, component.TimeComponent.Kind()); err == nil {
		if t, ok := ecs.Get(w, e, component.TimeComponent.Kind()); ok && t.Delta > 0 {
			dt = t.Delta
		}
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	requests := ps.applyCharacterRequests(w)

	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.resolveCharacters(w, requests)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeDynamic, collisionTypeSolid},
		{collisionTypeDynamic, collisionTypeDynamic},
		{collisionTypeCharacter, collisionTypeSolid},
		{collisionTypeCharacter, collisionTypeDynamic},
	} {
		handler := ps.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = ps
		handler.BeginFunc = beginContact
		handler.PreSolveFunc = preSolveContact
	}

	ps.handlersReady = true
}

// beginContact drops pairs that are apart along the depth axis and records a
// contact event for the rest.
func beginContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := sys.shapes[shapeA]
	b, okB := sys.shapes[shapeB]
	if !okA || !okB {
		return true
	}
	if !depthOverlap(a, b) {
		return false
	}

	n := arb.Normal()
	rel := shapeA.Body().Velocity().Sub(shapeB.Body().Velocity())
	sys.contacts = append(sys.contacts, ecs.ContactEvent{
		A:     a.entity,
		B:     b.entity,
		Speed: math.Abs(rel.Dot(n)),
	})
	return true
}

func preSolveContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := sys.shapes[shapeA]
	b, okB := sys.shapes[shapeB]
	if !okA || !okB {
		return true
	}
	// characters move up and down outside the simulated plane, so the
	// depth test is repeated every step
	if !depthOverlap(a, b) {
		return false
	}
	if a.kind == bodyCharacter {
		sys.collided[a.entity] = true
	}
	if b.kind == bodyCharacter {
		sys.collided[b.entity] = true
	}
	return true
}

func depthOverlap(a, b *bodyInfo) bool {
	skin := math.Max(a.skin, b.skin)
	return a.depthMin+skin < b.depthMax && a.depthMax-skin > b.depthMin
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		collider, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		kind := bodyStatic
		mass := 1.0
		if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok && rb.Kind == component.RigidBodyDynamic {
			kind = bodyDynamic
			mass = rb.Mass
		}
		skin := 0.0
		if cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok {
			kind = bodyCharacter
			skin = cc.Offset
		}

		elasticity := 0.0
		if kind == bodyStatic {
			elasticity = fixedElasticity
		}
		if r, ok := ecs.Get(w, e, component.RestitutionComponent.Kind()); ok {
			elasticity = r.Coefficient
		}

		info := ps.createBodyInfo(e, kind, transform, collider.HalfExtents, mass, elasticity)
		info.skin = skin
		ps.entities[e] = info
		ps.shapes[info.shape] = info

		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Body:  info.body,
			Shape: info.shape,
		}); err != nil {
			panic("physics system: attach body: " + err.Error())
		}
	}
}

func (ps *PhysicsSystem) planarHalf(half common.Vec3) (float64, float64) {
	if ps.config.Plane == PlaneXZ {
		return half.X, half.Z
	}
	return half.X, half.Y
}

func (ps *PhysicsSystem) depthHalf(half common.Vec3) float64 {
	if ps.config.Plane == PlaneXZ {
		return half.Y
	}
	return half.Z
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, kind bodyKind, transform *component.Transform, half common.Vec3, mass, elasticity float64) *bodyInfo {
	hw, hh := ps.planarHalf(half)
	center := ps.config.Plane.project(transform.Translation)
	depth := ps.config.Plane.depth(transform.Translation)
	dh := ps.depthHalf(half)

	info := &bodyInfo{
		entity:   e,
		kind:     kind,
		depthMin: depth - dh,
		depthMax: depth + dh,
		center:   center,
		half:     cp.Vector{X: hw, Y: hh},
	}

	if kind == bodyStatic {
		bb := cp.BB{L: center.X - hw, B: center.Y - hh, R: center.X + hw, T: center.Y + hh}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetElasticity(elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForBox(mass, hw*2, hh*2)
	if kind == bodyCharacter {
		// characters never rotate
		moment = math.Inf(1)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(center)
	body.SetAngle(ps.planeAngle(transform.Rotation))
	if kind == bodyCharacter {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, 1, dt)
		})
	}

	shape := cp.NewBox(body, hw*2, hh*2, 0)
	shape.SetElasticity(elasticity)
	if kind == bodyCharacter {
		// slide along walls instead of sticking to them
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeCharacter)
	} else {
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeDynamic)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

// planeAngle is the rotation about the depth axis, in Chipmunk's sense.
func (ps *PhysicsSystem) planeAngle(rot common.Vec3) float64 {
	if ps.config.Plane == PlaneXZ {
		return -rot.Y
	}
	return rot.Z
}

type characterRequest struct {
	entity  ecs.Entity
	start   common.Vec3
	desired common.Vec3
}

// applyCharacterRequests moves every character by its pending translation
// before the space steps. The planar part slides along fixed colliders;
// movement along the depth axis is applied directly.
func (ps *PhysicsSystem) applyCharacterRequests(w *ecs.World) []characterRequest {
	var requests []characterRequest
	for e, info := range ps.entities {
		if info.kind != bodyCharacter {
			continue
		}
		cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		desired := common.Vec3Zero
		if cc.Translation != nil {
			desired = *cc.Translation
		}
		start := transform.Translation
		depth := ps.config.Plane.depth(start) + ps.config.Plane.depth(desired)
		transform.Translation = ps.config.Plane.unproject(ps.config.Plane.project(start), depth)
		ps.updateDepth(w, info, transform)

		pos, hit := ps.slide(info, info.body.Position(), ps.config.Plane.project(desired))
		info.body.SetPosition(pos)
		info.body.SetVelocityVector(cp.Vector{})
		info.body.SetAngularVelocity(0)
		transform.Translation = ps.config.Plane.unproject(pos, depth)

		ps.collided[e] = hit
		requests = append(requests, characterRequest{entity: e, start: start, desired: desired})
	}
	return requests
}

// slide moves a character one axis at a time, stopping each axis a skin
// width short of the first fixed collider in the way. Colliders the
// character already overlaps, or that are apart along the depth axis, do
// not block.
func (ps *PhysicsSystem) slide(self *bodyInfo, pos, move cp.Vector) (cp.Vector, bool) {
	hit := false
	for axis := 0; axis < 2; axis++ {
		delta := move.X
		if axis == 1 {
			delta = move.Y
		}
		if delta == 0 {
			continue
		}
		target := axisOf(pos, axis) + delta
		for _, other := range ps.entities {
			if other.kind != bodyStatic || !depthOverlap(self, other) {
				continue
			}
			center := other.center
			cross := 1 - axis
			if math.Abs(axisOf(pos, cross)-axisOf(center, cross)) >= axisOf(self.half, cross)+axisOf(other.half, cross) {
				continue
			}
			reach := axisOf(self.half, axis) + axisOf(other.half, axis)
			gap := axisOf(center, axis) - axisOf(pos, axis)
			if delta > 0 && gap >= reach-self.skin {
				if limit := axisOf(center, axis) - reach - self.skin; target > limit {
					target, hit = limit, true
				}
			}
			if delta < 0 && -gap >= reach-self.skin {
				if limit := axisOf(center, axis) + reach + self.skin; target < limit {
					target, hit = limit, true
				}
			}
		}
		if axis == 0 {
			pos.X = target
		} else {
			pos.Y = target
		}
	}
	return pos, hit
}

func axisOf(v cp.Vector, axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

func (ps *PhysicsSystem) updateDepth(w *ecs.World, info *bodyInfo, transform *component.Transform) {
	collider, ok := ecs.Get(w, info.entity, component.ColliderComponent.Kind())
	if !ok {
		return
	}
	depth := ps.config.Plane.depth(transform.Translation)
	dh := ps.depthHalf(collider.HalfExtents)
	info.depthMin = depth - dh
	info.depthMax = depth + dh
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind == bodyStatic {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		depth := ps.config.Plane.depth(transform.Translation)
		transform.Translation = ps.config.Plane.unproject(info.body.Position(), depth)
		if info.kind == bodyDynamic {
			if ps.config.Plane == PlaneXZ {
				transform.Rotation.Y = -info.body.Angle()
			} else {
				transform.Rotation.Z = info.body.Angle()
			}
		}
	}
}

// resolveCharacters finishes each character move: velocity is cleared so the
// body never drifts, the body is snapped to the ground and the outcome is
// published before the request is consumed.
func (ps *PhysicsSystem) resolveCharacters(w *ecs.World, requests []characterRequest) {
	for _, req := range requests {
		info := ps.entities[req.entity]
		cc, okCC := ecs.Get(w, req.entity, component.CharacterControllerComponent.Kind())
		transform, okT := ecs.Get(w, req.entity, component.TransformComponent.Kind())
		if info == nil || !okCC || !okT {
			continue
		}
		info.body.SetVelocityVector(cp.Vector{})

		grounded := false
		if collider, ok := ecs.Get(w, req.entity, component.ColliderComponent.Kind()); ok {
			var drop float64
			grounded, drop = ps.groundBelow(w, req.entity, transform.Translation, collider.HalfExtents, cc)
			if drop > 0 {
				transform.Translation.Y -= drop
				if ps.config.Plane == PlaneXY {
					info.body.SetPosition(ps.config.Plane.project(transform.Translation))
				}
			}
		}
		ps.updateDepth(w, info, transform)

		out := &component.CharacterControllerOutput{
			Desired:              req.desired,
			EffectiveTranslation: transform.Translation.Sub(req.start),
			Grounded:             grounded,
			Collided:             ps.collided[req.entity],
		}
		if err := ecs.Add(w, req.entity, component.CharacterControllerOutputComponent.Kind(), out); err != nil {
			panic("physics system: update controller output: " + err.Error())
		}
		cc.Translation = nil
	}
}

// groundBelow looks for the highest fixed collider under the character's
// footprint whose top lies within the snap distance of its feet. It returns
// whether the character stands on one and how far it must drop to rest on
// it.
func (ps *PhysicsSystem) groundBelow(w *ecs.World, self ecs.Entity, pos, half common.Vec3, cc *component.CharacterController) (bool, float64) {
	feet := pos.Y - half.Y
	bestTop := math.Inf(-1)
	for e, info := range ps.entities {
		if e == self || info.kind != bodyStatic {
			continue
		}
		other, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if math.Abs(t.Translation.X-pos.X) >= other.HalfExtents.X+half.X ||
			math.Abs(t.Translation.Z-pos.Z) >= other.HalfExtents.Z+half.Z {
			continue
		}
		top := t.Translation.Y + other.HalfExtents.Y
		gap := feet - top
		if gap < -cc.Offset || gap > cc.SnapToGround+cc.Offset {
			continue
		}
		bestTop = math.Max(bestTop, top)
	}
	if math.IsInf(bestTop, -1) {
		return false, 0
	}
	gap := feet - bestTop
	if cc.SnapToGround <= 0 || gap <= cc.Offset {
		return true, 0
	}
	return true, gap - cc.Offset
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for _, c := range ps.contacts {
		ecs.Publish(w, c)
	}
	ps.contacts = ps.contacts[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && info.kind != bodyStatic {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.collided, e)
		log.Printf("physics: removed body for %v", e)
	}
}
