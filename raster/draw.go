package raster

import "rasterkit/pixel"

// Cohen-Sutherland outcodes. Bottom flags y < 0 and top flags y past the last
// row.
const (
	outInside = 0
	outLeft   = 1
	outRight  = 2
	outBottom = 4
	outTop    = 8
)

func outcode(r *Raster, x, y int) int {
	xmax, ymax := r.Width-1, r.Height-1

	code := outInside
	if x < 0 {
		code |= outLeft
	} else if x > xmax {
		code |= outRight
	}
	if y < 0 {
		code |= outBottom
	} else if y > ymax {
		code |= outTop
	}
	return code
}

// clipLine clips the segment to the raster with integer Cohen-Sutherland
// clipping and reports whether any part of it is visible.
func clipLine(r *Raster, x0, y0, x1, y1 int) (int, int, int, int, bool) {
	xmax, ymax := r.Width-1, r.Height-1
	code0, code1 := outcode(r, x0, y0), outcode(r, x1, y1)

	for {
		switch {
		case code0|code1 == 0:
			return x0, y0, x1, y1, true
		case code0&code1 != 0:
			return x0, y0, x1, y1, false
		}

		outside := code0
		if outside == 0 {
			outside = code1
		}

		var x, y int
		switch {
		case outside&outTop != 0:
			x = x0 + (x1-x0)*(ymax-y0)/(y1-y0)
			y = ymax
		case outside&outBottom != 0:
			x = x0 + (x1-x0)*(0-y0)/(y1-y0)
			y = 0
		case outside&outRight != 0:
			y = y0 + (y1-y0)*(xmax-x0)/(x1-x0)
			x = xmax
		case outside&outLeft != 0:
			y = y0 + (y1-y0)*(0-x0)/(x1-x0)
			x = 0
		}

		if outside == code0 {
			x0, y0 = x, y
			code0 = outcode(r, x0, y0)
		} else {
			x1, y1 = x, y
			code1 = outcode(r, x1, y1)
		}
	}
}

// DrawLine draws the segment from (x0, y0) to (x1, y1), both ends included,
// after clipping it to the raster. Nothing is written when the segment lies
// entirely outside.
func DrawLine(r *Raster, x0, y0, x1, y1 int, colour uint32) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}

	x0, y0, x1, y1, ok := clipLine(r, x0, y0, x1, y1)
	if !ok {
		return
	}

	xmax, ymax := r.Width-1, r.Height-1
	x0, y0 = pixel.Clampi(x0, 0, xmax), pixel.Clampi(y0, 0, ymax)
	x1, y1 = pixel.Clampi(x1, 0, xmax), pixel.Clampi(y1, 0, ymax)

	p := pixel.FromPacked(colour)

	dx, sx := abs(x1-x0), 1
	if x0 >= x1 {
		sx = -1
	}
	dy, sy := -abs(y1-y0), 1
	if y0 >= y1 {
		sy = -1
	}
	e := dx + dy

	for {
		r.Pix[y0*r.Width+x0] = p
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm, plotting the
// four symmetric points of each step. It does not clip; points falling
// outside the raster are dropped rather than written.
func DrawCircle(r *Raster, cx, cy, radius int, colour uint32) {
	p := pixel.FromPacked(colour)
	plot := func(x, y int) {
		if r.In(x, y) {
			r.Pix[y*r.Width+x] = p
		}
	}

	x, y, e := -radius, 0, 2-2*radius
	for {
		plot(cx-x, cy+y)
		plot(cx-y, cy-x)
		plot(cx+x, cy-y)
		plot(cx+y, cy+x)

		radius = e
		if radius <= y {
			y++
			e += y*2 + 1
		}
		if radius > x || e > y {
			x++
			e += x*2 + 1
		}
		if x >= 0 {
			return
		}
	}
}

// DrawRectangle outlines the rectangle with four clipped lines.
func DrawRectangle(r *Raster, x, y, w, h int, colour uint32) {
	DrawLine(r, x, y, x+w, y, colour)
	DrawLine(r, x, y+h, x+w, y+h, colour)
	DrawLine(r, x, y, x, y+h, colour)
	DrawLine(r, x+w, y, x+w, y+h, colour)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
