package render

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

// HDRRange is the largest channel value an HDR scene buffer can hold. HDR
// buffers store colours divided by it so they fit an 8-bit target.
const HDRRange = 4.0

// Item is one mesh ready to draw.
type Item struct {
	Tris    []Triangle
	Color   RGB
	Texture *ebiten.Image
	Unlit   bool
	// Closed meshes get back faces culled.
	Closed bool
}

// Frame is everything the renderer needs from the world for one frame.
type Frame struct {
	View      View
	Camera    *component.Camera
	Bloom     *component.BloomSettings
	Lights    []Light
	Occluders []Box
}

type face struct {
	pts     [3][2]float32
	uv      [3][2]float64
	depth   float64
	color   RGB
	texture *ebiten.Image
}

// Renderer draws frames through an offscreen scene buffer so bloom and
// tonemapping can run before the result reaches the screen.
type Renderer struct {
	bloom   *bloomPass
	tonemap *tonemapper
	scene   *ebiten.Image
	white   *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
	faces    []face
}

func NewRenderer() *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		bloom:   newBloomPass(),
		tonemap: newTonemapper(),
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (r *Renderer) sceneBuffer(w, h int) *ebiten.Image {
	if r.scene != nil {
		b := r.scene.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return r.scene
		}
		r.scene.Deallocate()
	}
	r.scene = ebiten.NewImage(w, h)
	return r.scene
}

// Render draws items as seen through f onto screen.
func (r *Renderer) Render(screen *ebiten.Image, f Frame, items []Item) {
	sb := screen.Bounds()
	scene := r.sceneBuffer(sb.Dx(), sb.Dy())

	scale := 1.0
	if f.Camera.HDR {
		scale = HDRRange
	}
	clear := RGBOf(f.Camera.ClearColor).Scale(1 / scale)
	scene.Fill(color.NRGBA{
		R: uint8(common.Clamp(clear.R, 0, 1) * 255),
		G: uint8(common.Clamp(clear.G, 0, 1) * 255),
		B: uint8(common.Clamp(clear.B, 0, 1) * 255),
		A: 0xff,
	})

	r.collectFaces(f, items, scale)
	r.drawFaces(scene)

	if f.Camera.HDR && f.Bloom != nil {
		r.bloom.apply(scene, f.Bloom, scale)
	}
	r.tonemap.apply(screen, scene, f.Camera.Tonemapping, scale)
}

func (r *Renderer) collectFaces(f Frame, items []Item, scale float64) {
	r.faces = r.faces[:0]
	for _, it := range items {
		for _, tri := range it.Tris {
			c := tri.Centroid()
			if it.Closed && !f.View.Facing(c, tri.Normal) {
				continue
			}
			var fc face
			visible := true
			depth := 0.0
			for i, v := range tri.V {
				x, y, d, ok := f.View.Project(v.Pos)
				if !ok {
					visible = false
					break
				}
				fc.pts[i] = [2]float32{float32(x), float32(y)}
				fc.uv[i] = [2]float64{v.U, v.V}
				depth += d
			}
			if !visible {
				continue
			}
			fc.depth = depth / 3
			fc.color = it.Color
			if !it.Unlit {
				fc.color = Shade(it.Color, c, tri.Normal, f.Lights, f.Occluders)
			}
			fc.color = fc.color.Scale(1 / scale)
			fc.texture = it.Texture
			r.faces = append(r.faces, fc)
		}
	}
	// painter's order: farthest first, stable so coplanar 2D shapes keep
	// their spawn order
	sort.SliceStable(r.faces, func(i, j int) bool {
		return r.faces[i].depth > r.faces[j].depth
	})
}

func (r *Renderer) drawFaces(dst *ebiten.Image) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	var batchTex *ebiten.Image

	flush := func() {
		if len(r.indices) == 0 {
			return
		}
		src := batchTex
		if src == nil {
			src = r.white
		}
		dst.DrawTriangles(r.vertices, r.indices, src, &ebiten.DrawTrianglesOptions{
			Filter:    ebiten.FilterNearest,
			AntiAlias: true,
		})
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
	}

	for _, fc := range r.faces {
		if fc.texture != batchTex || len(r.vertices)+3 > 1<<15 {
			flush()
			batchTex = fc.texture
		}
		base := uint16(len(r.vertices))
		for i := 0; i < 3; i++ {
			sx, sy := float32(1), float32(1)
			if fc.texture != nil {
				tb := fc.texture.Bounds()
				sx = float32(float64(tb.Min.X) + fc.uv[i][0]*float64(tb.Dx()))
				sy = float32(float64(tb.Min.Y) + fc.uv[i][1]*float64(tb.Dy()))
			}
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   fc.pts[i][0],
				DstY:   fc.pts[i][1],
				SrcX:   sx,
				SrcY:   sy,
				ColorR: float32(fc.color.R),
				ColorG: float32(fc.color.G),
				ColorB: float32(fc.color.B),
				ColorA: 1,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	flush()
}
