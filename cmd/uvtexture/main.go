package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/ecs/render"
)

// viewer shows the texture magnified with nearest-neighbour sampling.
type viewer struct {
	tex   *ebiten.Image
	scale int
}

func (v *viewer) Update() error { return nil }

func (v *viewer) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(v.scale), float64(v.scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(v.tex, op)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := v.tex.Bounds()
	return b.Dx() * v.scale, b.Dy() * v.scale
}

func main() {
	out := flag.String("o", "", "write the texture to this PNG file instead of opening a window")
	scale := flag.Int("scale", 32, "magnification, in screen pixels per texel")
	flag.Parse()

	if *scale < 1 {
		*scale = 1
	}
	tex := render.UVDebugTexture()

	if *out != "" {
		if err := writePNG(*out, upscale(tex, *scale)); err != nil {
			log.Fatal(err)
		}
		log.Printf("uvtexture: wrote %s", *out)
		return
	}

	b := tex.Bounds()
	ebiten.SetWindowSize(b.Dx()**scale, b.Dy()**scale)
	ebiten.SetWindowTitle("uv debug texture")
	if err := ebiten.RunGame(&viewer{tex: ebiten.NewImageFromImage(tex), scale: *scale}); err != nil {
		log.Fatal(err)
	}
}

func upscale(src *image.RGBA, scale int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.SetRGBA(x, y, src.RGBAAt(b.Min.X+x/scale, b.Min.Y+y/scale))
		}
	}
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("uvtexture: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("uvtexture: encode %s: %w", path, err)
	}
	return f.Close()
}
