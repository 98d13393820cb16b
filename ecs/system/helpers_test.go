package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/ecs"
	"github.com/milk9111/enginedemos/ecs/component"
	"github.com/milk9111/enginedemos/ecs/entity"
)

func newRuntimeWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	if _, err := entity.NewRuntime(w); err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	ecs.Resource(w, component.TimeComponent.Kind()).Delta = 1.0 / 60.0
	return w
}

// press replaces the keyboard state. Keys in just are also held.
func press(w *ecs.World, held []ebiten.Key, just ...ebiten.Key) {
	ecs.Resource(w, component.KeyboardComponent.Kind()).Reset(held, just)
}

func mustBuild(t *testing.T, w *ecs.World, prefab string) ecs.Entity {
	t.Helper()
	e, err := entity.BuildEntity(w, prefab)
	if err != nil {
		t.Fatalf("build %s: %v", prefab, err)
	}
	return e
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}

type fakeKeys struct {
	held, just []ebiten.Key
}

func (f *fakeKeys) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.held...)
}

func (f *fakeKeys) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, f.just...)
}
