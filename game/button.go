package game

import (
	"rasterkit/pixel"
	"rasterkit/raster"
)

// Button is a filled rectangle centred on (X, Y).
type Button struct {
	X, Y, W, H int
	Colour     uint32
}

func NewButton(x, y, w, h int, colour uint32) Button {
	return Button{X: x, Y: y, W: w, H: h, Colour: colour}
}

// Show fills the button area. Coordinates past the raster edge are clamped,
// so a partly visible button smears along the border.
func (b Button) Show(r *raster.Raster) {
	if r.Empty() {
		return
	}

	p := pixel.FromPacked(b.Colour)
	for dy := -b.H / 2; dy < b.H/2; dy++ {
		y := pixel.Clampi(b.Y+dy, 0, r.Height-1)
		for dx := -b.W / 2; dx < b.W/2; dx++ {
			x := pixel.Clampi(b.X+dx, 0, r.Width-1)
			r.SetPixelAt(x, y, p)
		}
	}
}

// Pressed reports whether the left button is down with the cursor over the
// button. Occlusion by other buttons is not considered.
func (b Button) Pressed(in *Input) bool {
	return in.LMB &&
		pixel.Distance1D(float32(b.X), in.MouseX) <= float32(b.W/2) &&
		pixel.Distance1D(float32(b.Y), in.MouseY) <= float32(b.H/2)
}
