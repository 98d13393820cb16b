package render

import (
	_ "embed"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

//go:embed shaders/tonemap.kage
var tonemapShaderSrc []byte

// Tonemap maps an HDR colour into [0,1] the same way the tonemap shader
// does.
func Tonemap(mode component.Tonemapping, c RGB) RGB {
	switch mode {
	case component.TonemappingReinhard:
		c = RGB{c.R / (1 + c.R), c.G / (1 + c.G), c.B / (1 + c.B)}
	case component.TonemappingTonyMcMapface:
		l := luminance(c)
		mapped := c.Scale(1 / (1 + l))
		white := l / (1 + l)
		w := common.Clamp(white, 0, 1)
		k := w * w
		c = RGB{
			common.Lerp(mapped.R, white, k),
			common.Lerp(mapped.G, white, k),
			common.Lerp(mapped.B, white, k),
		}
	}
	return RGB{common.Clamp(c.R, 0, 1), common.Clamp(c.G, 0, 1), common.Clamp(c.B, 0, 1)}
}

func luminance(c RGB) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// tonemapper resolves the HDR scene buffer onto the screen.
type tonemapper struct {
	shader *ebiten.Shader
	pixels []byte
}

func newTonemapper() *tonemapper {
	t := &tonemapper{}
	if s, err := ebiten.NewShader(tonemapShaderSrc); err == nil {
		t.shader = s
	} else {
		log.Printf("render: tonemap shader compile error: %v", err)
	}
	return t
}

// apply writes src, whose channels are stored divided by hdrRange, to dst.
func (t *tonemapper) apply(dst, src *ebiten.Image, mode component.Tonemapping, hdrRange float64) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if t.shader != nil {
		op := &ebiten.DrawRectShaderOptions{
			Images: [4]*ebiten.Image{src, nil, nil, nil},
			Uniforms: map[string]interface{}{
				"Mode":  int(mode),
				"Range": float32(hdrRange),
			},
		}
		dst.DrawRectShader(w, h, t.shader, op)
		return
	}

	// CPU fallback, slow but only used when the shader failed to compile
	if len(t.pixels) != 4*w*h {
		t.pixels = make([]byte, 4*w*h)
	}
	src.ReadPixels(t.pixels)
	for i := 0; i < len(t.pixels); i += 4 {
		c := RGB{
			float64(t.pixels[i]) / 255 * hdrRange,
			float64(t.pixels[i+1]) / 255 * hdrRange,
			float64(t.pixels[i+2]) / 255 * hdrRange,
		}
		c = Tonemap(mode, c)
		t.pixels[i] = uint8(c.R*255 + 0.5)
		t.pixels[i+1] = uint8(c.G*255 + 0.5)
		t.pixels[i+2] = uint8(c.B*255 + 0.5)
		t.pixels[i+3] = 0xff
	}
	tmp := ebiten.NewImage(w, h)
	defer tmp.Deallocate()
	tmp.WritePixels(t.pixels)
	dst.DrawImage(tmp, nil)
}
