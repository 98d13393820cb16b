package render

import "image"

const (
	UVDebugTextureKey  = "uv_debug"
	uvDebugTextureSize = 8
)

var uvDebugPalette = [uvDebugTextureSize * 4]uint8{
	255, 102, 159, 255, 255, 159, 102, 255, 236, 255, 102, 255, 121, 255, 102, 255,
	102, 255, 198, 255, 102, 198, 255, 255, 121, 102, 255, 255, 236, 102, 255, 255,
}

// UVDebugTexture builds the 8x8 checker used to visualise UV orientation.
// Each row repeats the palette shifted one pixel to the right of the row
// above it.
func UVDebugTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, uvDebugTextureSize, uvDebugTextureSize))
	palette := uvDebugPalette
	for y := 0; y < uvDebugTextureSize; y++ {
		offset := img.PixOffset(0, y)
		copy(img.Pix[offset:offset+uvDebugTextureSize*4], palette[:])
		rotateRight(palette[:], 4)
	}
	return img
}

func rotateRight(s []uint8, n int) {
	n %= len(s)
	if n == 0 {
		return
	}
	tmp := make([]uint8, n)
	copy(tmp, s[len(s)-n:])
	copy(s[n:], s[:len(s)-n])
	copy(s, tmp)
}
