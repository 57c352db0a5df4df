// Package pixel defines the 8-bit RGBA colour value every raster operation
// works on, together with the scalar helpers used by the sampling code.
package pixel

import (
	"image/color"
)

// Pixel is a straight (non-premultiplied) 8-bit RGBA colour. Its packed form
// stores red in bits 0-7, green in 8-15, blue in 16-23 and alpha in 24-31.
type Pixel struct {
	R, G, B, A uint8
}

var (
	Transparent = Pixel{}
	Black       = RGB(0, 0, 0)
	White       = RGB(0xff, 0xff, 0xff)
)

// RGBA returns the pixel with the given channels.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: a}
}

// RGB returns an opaque pixel.
func RGB(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 0xff}
}

// Pack builds the packed representation without going through a Pixel.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// FromPacked splits a packed value back into its channels.
func FromPacked(v uint32) Pixel {
	return Pixel{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

func (p Pixel) Packed() uint32 {
	return Pack(p.R, p.G, p.B, p.A)
}

// Equal compares packed values, alpha included. Colour keys are matched with it.
func (p Pixel) Equal(o Pixel) bool {
	return p.Packed() == o.Packed()
}

// Components returns the channels in storage order.
func (p Pixel) Components() [4]uint8 {
	return [4]uint8{p.R, p.G, p.B, p.A}
}

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// Model converts any colour into a Pixel.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	switch pc := c.(type) {
	case Pixel:
		return c
	case color.NRGBA:
		return Pixel{R: pc.R, G: pc.G, B: pc.B, A: pc.A}
	}

	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: nc.R, G: nc.G, B: nc.B, A: nc.A}
}

// FromColor is Model.Convert with the type assertion done.
func FromColor(c color.Color) Pixel {
	return Model.Convert(c).(Pixel)
}

// Lerp interpolates every channel independently as from + (to-from)*scale,
// truncating the result.
func Lerp(from, to Pixel, scale float32) Pixel {
	return Pixel{
		R: uint8(Lerpi(int(from.R), int(to.R), scale)),
		G: uint8(Lerpi(int(from.G), int(to.G), scale)),
		B: uint8(Lerpi(int(from.B), int(to.B), scale)),
		A: uint8(Lerpi(int(from.A), int(to.A), scale)),
	}
}

// Brightness is the weighted luma 0.3R + 0.59G + 0.11B, truncated.
func Brightness(p Pixel) int {
	return int(float32(0.3*float32(p.R)) + float32(0.59*float32(p.G)) + float32(0.11*float32(p.B)))
}
