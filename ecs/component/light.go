package component

import "image/color"

type PointLight struct {
	Intensity      float64
	Range          float64
	ShadowsEnabled bool
	Color          color.Color
}

var PointLightComponent = NewComponent[PointLight]()
