package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
)

type MeshShape int

const (
	MeshCircle MeshShape = iota
	MeshRectangle
	MeshQuad
	MeshRegularPolygon
	MeshCuboid
)

type Mesh struct {
	Shape MeshShape
	// Radius applies to circles and regular polygons.
	Radius float64
	Sides  int
	// Size applies to rectangles and quads.
	Width  float64
	Height float64
	// HalfExtents applies to cuboids.
	HalfExtents common.Vec3

	Color color.Color
	// TextureKey names a texture in the render registry. The renderer
	// resolves it into Texture on first draw.
	TextureKey string
	Texture    *ebiten.Image
	// Unlit meshes ignore point lights.
	Unlit bool
}

var MeshComponent = NewComponent[Mesh]()
