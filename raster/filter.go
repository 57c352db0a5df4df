package raster

import "rasterkit/pixel"

// BoxBlur blurs source into result in two separable passes through tmp.
// Each pass averages 2*radius+1 point samples spaced one pixel apart in the
// destination's normalised coordinate space, so tmp and result may differ in
// size from source and the blur doubles as a resize. Red, green and blue are
// averaged with integer division; alpha is taken from the last sample of the
// window.
func BoxBlur(result, tmp, source *Raster, radius int) {
	count := 2*radius + 1
	rad := float32(radius)

	for y := range tmp.Height {
		v := float32(y) / float32(tmp.Height)
		for x := range tmp.Width {
			var r, g, b int
			var sampled pixel.Pixel
			for offset := -rad; offset <= rad; offset++ {
				sampled = PointSample(source, (float32(x)+offset)/float32(tmp.Width), v)
				r += int(sampled.R)
				g += int(sampled.G)
				b += int(sampled.B)
			}
			tmp.Pix[y*tmp.Width+x] = pixel.RGBA(uint8(r/count), uint8(g/count), uint8(b/count), sampled.A)
		}
	}

	for y := range result.Height {
		for x := range result.Width {
			u := float32(x) / float32(result.Width)
			var r, g, b int
			var sampled pixel.Pixel
			for offset := -rad; offset <= rad; offset++ {
				sampled = PointSample(tmp, u, (float32(y)+offset)/float32(result.Height))
				r += int(sampled.R)
				g += int(sampled.G)
				b += int(sampled.B)
			}
			result.Pix[y*result.Width+x] = pixel.RGBA(uint8(r/count), uint8(g/count), uint8(b/count), sampled.A)
		}
	}
}

// BilinearUpsample fills every pixel of dst with a bilinear sample of src
// taken at dst's normalised coordinates.
func BilinearUpsample(dst, src *Raster) {
	w, h := dst.Width, dst.Height
	for y := range h {
		yn := float32(y) / float32(h)
		for x := range w {
			xn := float32(x) / float32(w)
			dst.Pix[y*w+x] = BilinearSample(src, xn, yn)
		}
	}
}
