package render

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	imagesMu sync.Mutex
	images   = map[string]*ebiten.Image{}
	// generators build textures that have no file behind them.
	generators = map[string]func() *ebiten.Image{
		UVDebugTextureKey: func() *ebiten.Image { return ebiten.NewImageFromImage(UVDebugTexture()) },
	}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	imagesMu.Lock()
	defer imagesMu.Unlock()
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	imagesMu.Lock()
	defer imagesMu.Unlock()
	return images[key]
}
