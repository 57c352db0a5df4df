package raster

import (
	"image"

	"rasterkit/pixel"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextHeight is the line height of the face DrawText uses.
const TextHeight = 13

// DrawText renders s with the 7x13 bitmap face. (x, y) is the top-left of
// the first glyph cell; glyph pixels outside the raster are dropped. It
// returns the advance in pixels.
func DrawText(dst *Raster, x, y int, s string, colour pixel.Pixel) int {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colour),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
	return (d.Dot.X - fixed.I(x)).Ceil()
}
