package component

import "github.com/hajimehoshi/ebiten/v2"

// Keyboard holds the polled key state for the current tick.
type Keyboard struct {
	held        map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
}

// Pressed reports whether k is held this tick.
func (k *Keyboard) Pressed(key ebiten.Key) bool {
	return k != nil && k.held[key]
}

// JustPressed reports whether k went down this tick.
func (k *Keyboard) JustPressed(key ebiten.Key) bool {
	return k != nil && k.justPressed[key]
}

// Reset replaces the state with the given held and just-pressed keys.
func (k *Keyboard) Reset(held, justPressed []ebiten.Key) {
	k.held = make(map[ebiten.Key]bool, len(held))
	for _, key := range held {
		k.held[key] = true
	}
	k.justPressed = make(map[ebiten.Key]bool, len(justPressed))
	for _, key := range justPressed {
		k.justPressed[key] = true
		k.held[key] = true
	}
}

var KeyboardComponent = NewComponent[Keyboard]()
