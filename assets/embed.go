package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.png
var textures embed.FS

// Decode returns the embedded texture at name. Names may carry an
// "assets/" prefix or a full path that ends in an assets directory.
func Decode(name string) (image.Image, error) {
	b, err := LoadFile(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return img, nil
}

func LoadFile(name string) ([]byte, error) {
	b, err := textures.ReadFile(cleanAssetPath(name))
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return b, nil
}

// Names lists the embedded textures.
func Names() []string {
	names, _ := fs.Glob(textures, "*.png")
	return names
}

func cleanAssetPath(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	if strings.HasPrefix(s, "/") {
		return path.Base(s)
	}
	return s
}
