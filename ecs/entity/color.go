package entity

import "image/color"

var defaultAnnouncementColor = color.RGBA{R: 0xFF, G: 0xD7, A: 0xFF}

func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
