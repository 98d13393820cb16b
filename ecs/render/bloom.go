package render

import (
	_ "embed"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/component"
)

//go:embed shaders/prefilter.kage
var prefilterShaderSrc []byte

const (
	maxBloomMips = 8
	minMipSize   = 4
)

// BlendFactor is the weight mip contributes when it is upsampled onto the
// next larger level. mip 0 is the largest level and maxMip the smallest.
func BlendFactor(b *component.BloomSettings, mip, maxMip int) float64 {
	if b == nil {
		return 0
	}
	x := 0.0
	if maxMip > 0 {
		x = float64(mip) / float64(maxMip)
	}

	lf := (1 - math.Pow(1-x, 1/(1-b.LowFrequencyBoostCurvature))) * b.LowFrequencyBoost
	hp := 1 - common.Clamp((x-b.HighPassFrequency)/b.HighPassFrequency, 0, 1)
	if b.CompositeMode == component.BloomCompositeEnergyConserving {
		lf *= 1 - b.Intensity
	}
	f := (b.Intensity + lf) * hp
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}

// PrefilterWeight is the fraction of a pixel with the given brightness that
// passes the threshold, matching the prefilter shader.
func PrefilterWeight(brightness float64, p component.BloomPrefilter) float64 {
	knee := p.Threshold * p.ThresholdSoftness
	soft := common.Clamp(brightness-p.Threshold+knee, 0, 2*knee)
	soft = soft * soft / (4*knee + 0.00001)
	contribution := math.Max(soft, brightness-p.Threshold)
	return contribution / math.Max(brightness, 0.00001)
}

// MipSizes returns the bloom mip chain for a w x h target, starting at half
// resolution.
func MipSizes(w, h int) [][2]int {
	var sizes [][2]int
	w, h = w/2, h/2
	for len(sizes) < maxBloomMips && w >= minMipSize && h >= minMipSize {
		sizes = append(sizes, [2]int{w, h})
		w, h = w/2, h/2
	}
	return sizes
}

// bloomPass blurs the bright parts of an HDR buffer and composites them
// back onto it.
type bloomPass struct {
	shader *ebiten.Shader
	mips   []*ebiten.Image
	w, h   int
	pixels []byte
}

func newBloomPass() *bloomPass {
	b := &bloomPass{}
	if s, err := ebiten.NewShader(prefilterShaderSrc); err == nil {
		b.shader = s
	} else {
		log.Printf("render: prefilter shader compile error: %v", err)
	}
	return b
}

func (b *bloomPass) ensureMips(w, h int) {
	if b.w == w && b.h == h && len(b.mips) > 0 {
		return
	}
	for _, m := range b.mips {
		m.Deallocate()
	}
	b.mips = b.mips[:0]
	for _, size := range MipSizes(w, h) {
		b.mips = append(b.mips, ebiten.NewImage(size[0], size[1]))
	}
	b.w, b.h = w, h
}

// apply adds bloom to scene in place.
func (b *bloomPass) apply(scene *ebiten.Image, settings *component.BloomSettings, hdrRange float64) {
	sb := scene.Bounds()
	b.ensureMips(sb.Dx(), sb.Dy())
	if len(b.mips) == 0 {
		return
	}
	for _, m := range b.mips {
		m.Clear()
	}

	b.prefilter(b.mips[0], scene, settings.Prefilter, hdrRange)
	for i := 1; i < len(b.mips); i++ {
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(0.5, 0.5)
		b.mips[i].DrawImage(b.mips[i-1], op)
	}

	maxMip := len(b.mips) - 1
	for i := maxMip; i > 0; i-- {
		composite(b.mips[i-1], b.mips[i], settings.CompositeMode, BlendFactor(settings, i, maxMip))
	}
	composite(scene, b.mips[0], settings.CompositeMode, BlendFactor(settings, 0, maxMip))
}

// prefilter writes the thresholded scene into the half resolution mip.
func (b *bloomPass) prefilter(dst, scene *ebiten.Image, p component.BloomPrefilter, hdrRange float64) {
	sb := scene.Bounds()
	if b.shader != nil {
		full := ebiten.NewImage(sb.Dx(), sb.Dy())
		defer full.Deallocate()
		full.DrawRectShader(sb.Dx(), sb.Dy(), b.shader, &ebiten.DrawRectShaderOptions{
			Images: [4]*ebiten.Image{scene, nil, nil, nil},
			Uniforms: map[string]interface{}{
				"Threshold": float32(p.Threshold),
				"Softness":  float32(p.ThresholdSoftness),
				"Range":     float32(hdrRange),
			},
		})
		downsample(dst, full)
		return
	}

	// CPU fallback when the shader is unavailable
	w, h := sb.Dx(), sb.Dy()
	if len(b.pixels) != 4*w*h {
		b.pixels = make([]byte, 4*w*h)
	}
	scene.ReadPixels(b.pixels)
	for i := 0; i < len(b.pixels); i += 4 {
		c := RGB{float64(b.pixels[i]), float64(b.pixels[i+1]), float64(b.pixels[i+2])}.Scale(hdrRange / 255)
		k := PrefilterWeight(math.Max(c.R, math.Max(c.G, c.B)), p)
		c = c.Scale(k * 255 / hdrRange)
		b.pixels[i] = uint8(common.Clamp(c.R, 0, 255))
		b.pixels[i+1] = uint8(common.Clamp(c.G, 0, 255))
		b.pixels[i+2] = uint8(common.Clamp(c.B, 0, 255))
		b.pixels[i+3] = 0xff
	}
	full := ebiten.NewImage(w, h)
	defer full.Deallocate()
	full.WritePixels(b.pixels)
	downsample(dst, full)
}

func downsample(dst, src *ebiten.Image) {
	db, sb := dst.Bounds(), src.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	dst.DrawImage(src, op)
}

// composite upsamples src onto dst weighted by factor. Energy-conserving
// mode blends (dst*(1-factor) + src*factor); additive mode adds src*factor.
func composite(dst, src *ebiten.Image, mode component.BloomCompositeMode, factor float64) {
	if factor <= 0 {
		return
	}
	db, sb := dst.Bounds(), src.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.ColorScale.ScaleAlpha(float32(factor))
	if mode == component.BloomCompositeAdditive {
		op.Blend = ebiten.BlendLighter
	}
	dst.DrawImage(src, op)
}
