package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/assets"
)

// LoadImage returns the texture registered under key, creating it on first
// use. Keys are looked up as a generated texture, then an embedded asset,
// then a file relative to the working directory.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty texture key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	var img *ebiten.Image
	if gen, ok := generators[key]; ok {
		img = gen()
	} else {
		src, err := decodeTexture(key)
		if err != nil {
			return nil, err
		}
		img = ebiten.NewImageFromImage(src)
	}
	RegisterImage(key, img)
	return img, nil
}

func decodeTexture(key string) (image.Image, error) {
	img, embedErr := assets.Decode(key)
	if embedErr == nil {
		return img, nil
	}
	img, diskErr := decodeFile(filepath.FromSlash(key))
	if diskErr == nil {
		return img, nil
	}
	return nil, fmt.Errorf("render: texture %q: %w", key, errors.Join(embedErr, diskErr))
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
