package raster

import "rasterkit/pixel"

// PointSample returns the pixel under normalised coordinates (u, v). The
// coordinates are scaled by the raster size and truncated, not rounded, then
// clamped to the raster.
func PointSample(src *Raster, u, v float32) pixel.Pixel {
	x := pixel.Truncate(float32(u*float32(src.Width)), 0, src.Width-1)
	y := pixel.Truncate(float32(v*float32(src.Height)), 0, src.Height-1)
	return src.Pix[y*src.Width+x]
}

// BilinearSample blends the four pixels around (u, v) with half-pixel
// centres and edge clamping, horizontally first.
func BilinearSample(src *Raster, u, v float32) pixel.Pixel {
	width, height := src.Width, src.Height

	fx := pixel.Clampf(float32(u*float32(width))-0.5, 0, float32(width)-1)
	fy := pixel.Clampf(float32(v*float32(height))-0.5, 0, float32(height)-1)

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, width-1), min(y0+1, height-1)

	xscale, yscale := fx-float32(x0), fy-float32(y0)

	ul := src.Pix[y0*width+x0]
	ur := src.Pix[y0*width+x1]
	ll := src.Pix[y1*width+x0]
	lr := src.Pix[y1*width+x1]

	um := pixel.Lerp(ul, ur, xscale)
	lm := pixel.Lerp(ll, lr, xscale)

	return pixel.Lerp(um, lm, yscale)
}
