package component

import "image/color"

// Text is a screen-space label anchored to the bottom-left corner.
type Text struct {
	Value    string
	FontSize float64
	Color    color.Color
	Left     float64
	Bottom   float64
}

var TextComponent = NewComponent[Text]()
