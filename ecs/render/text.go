package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/enginedemos/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	baseFontSize = 13.0
	lineSpacing  = 15.0
)

var hudFace = ebtext.NewGoXFace(basicfont.Face7x13)

// DrawText draws t anchored by its bottom-left corner in screen pixels.
func DrawText(screen *ebiten.Image, t *component.Text) {
	if screen == nil || t == nil || t.Value == "" {
		return
	}
	scale := t.FontSize / baseFontSize
	if scale <= 0 {
		scale = 1
	}
	_, h := ebtext.Measure(t.Value, hudFace, lineSpacing)

	op := &ebtext.DrawOptions{}
	op.LineSpacing = lineSpacing
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(t.Left, float64(screen.Bounds().Dy())-t.Bottom-h*scale)
	if t.Color != nil {
		op.ColorScale.ScaleWithColor(t.Color)
	}
	ebtext.Draw(screen, t.Value, hudFace, op)
}
