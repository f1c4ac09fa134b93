package game

import "image/color"

// Palette for the viewer, back to front.
var (
	colorShadow       = color.RGBA{0x4f, 0x4f, 0x4f, 0xff} // clear colour outside the world
	colorWorld        = color.RGBA{0xf0, 0xf8, 0xff, 0xff} // Alice blue
	colorUnion        = color.RGBA{0xc0, 0xc0, 0xc0, 0xff} // silver
	colorIntersection = color.RGBA{0x80, 0x80, 0x80, 0xff} // grey
	colorObstacle     = color.RGBA{0x40, 0x40, 0x40, 0xff}
	colorLight        = color.RGBA{0xff, 0x00, 0xff, 0xff} // fuchsia
	colorLightOutline = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// tickSeconds is the fixed update step. Ebiten runs Update at 60 TPS.
const tickSeconds = 1.0 / 60.0
