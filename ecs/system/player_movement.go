package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

// playerStep is the distance one held key moves the player per tick.
const playerStep = 0.1

var movementKeys = []struct {
	key   ebiten.Key
	delta common.Vec3
}{
	{ebiten.KeyW, common.Vec3{X: -playerStep}},
	{ebiten.KeyS, common.Vec3{X: playerStep}},
	{ebiten.KeyA, common.Vec3{Z: playerStep}},
	{ebiten.KeyD, common.Vec3{Z: -playerStep}},
}

// MovementIntent sums the contribution of every held movement key, so
// opposing keys cancel out. Y is always zero.
func MovementIntent(kb *component.Keyboard) common.Vec3 {
	var intent common.Vec3
	for _, mk := range movementKeys {
		if kb.Pressed(mk.key) {
			intent = intent.Add(mk.delta)
		}
	}
	return intent
}

// PlayerMovementSystem turns keyboard state into a translation request on the
// player's character controller. The scene must hold exactly one player.
type PlayerMovementSystem struct{}

func NewPlayerMovementSystem() *PlayerMovementSystem {
	return &PlayerMovementSystem{}
}

func (p *PlayerMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	kb := ecs.Resource(w, component.KeyboardComponent.Kind())
	player, err := ecs.Single(w, component.PlayerTagComponent.Kind(), component.CharacterControllerComponent.Kind())
	if err != nil {
		panic("player movement system: find player: " + err.Error())
	}
	cc, _ := ecs.Get(w, player, component.CharacterControllerComponent.Kind())

	intent := MovementIntent(kb)
	cc.Translation = &intent
}
