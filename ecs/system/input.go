package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
)

// KeySource reports keyboard state for the current tick.
type KeySource interface {
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
}

type ebitenKeys struct{}

func (ebitenKeys) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(keys)
}

func (ebitenKeys) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

// InputSystem copies the keyboard state into the singleton Keyboard
// component so gameplay systems never poll ebiten directly.
type InputSystem struct {
	source      KeySource
	held        []ebiten.Key
	justPressed []ebiten.Key
}

func NewInputSystem() *InputSystem {
	return &InputSystem{source: ebitenKeys{}}
}

// NewInputSystemWithSource reads keys from src instead of ebiten.
func NewInputSystemWithSource(src KeySource) *InputSystem {
	return &InputSystem{source: src}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	i.held = i.source.AppendPressedKeys(i.held[:0])
	i.justPressed = i.source.AppendJustPressedKeys(i.justPressed[:0])

	kb := ecs.Resource(w, component.KeyboardComponent.Kind())
	kb.Reset(i.held, i.justPressed)
}
