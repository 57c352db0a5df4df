package raster

import "rasterkit/pixel"

// BlitConfig holds the two sentinel colours compositing looks for. Source
// pixels equal to Key are transparent; pixels equal to Marker are replaced by
// the caller's override colour. A config is fixed once the engine is set up
// and passed by value to every blit.
type BlitConfig struct {
	Key    pixel.Pixel
	Marker pixel.Pixel
}

// DefaultBlitConfig uses opaque #ff00fe as the key and opaque #008000 as the
// marker.
func DefaultBlitConfig() BlitConfig {
	return BlitConfig{
		Key:    pixel.RGB(255, 0, 254),
		Marker: pixel.RGB(0, 128, 0),
	}
}

// clip intersects the window of size w*h placed at (x, y) with dst. The
// returned range is empty when the window misses dst entirely.
func clip(dst *Raster, x, y, w, h int) (x0, y0, x1, y1 int) {
	return max(x, 0), max(y, 0), min(x+w, dst.Width), min(y+h, dst.Height)
}

// DrawRaster copies src onto dst with its top-left corner at (x, y),
// touching only the visible intersection. Key pixels are skipped and marker
// pixels are written as override.
func (c BlitConfig) DrawRaster(dst, src *Raster, x, y int, override pixel.Pixel) {
	key, marker := c.Key.Packed(), c.Marker.Packed()
	x0, y0, x1, y1 := clip(dst, x, y, src.Width, src.Height)

	for yi := y0; yi < y1; yi++ {
		srow := src.Pix[(yi-y)*src.Width:]
		drow := dst.Pix[yi*dst.Width:]
		for xi := x0; xi < x1; xi++ {
			sampled := srow[xi-x]
			switch sampled.Packed() {
			case key:
			case marker:
				drow[xi] = override
			default:
				drow[xi] = sampled
			}
		}
	}
}

// DrawRegion copies the w*h sub-rectangle of src starting at (sx, sy) onto
// dst at (x, y), clipped to dst. Key pixels are skipped; the marker gets no
// special treatment. The region must lie inside src.
func (c BlitConfig) DrawRegion(dst, src *Raster, sx, sy, w, h, x, y int) {
	key := c.Key.Packed()
	x0, y0, x1, y1 := clip(dst, x, y, w, h)

	for yi := y0; yi < y1; yi++ {
		srow := src.Pix[(sy+yi-y)*src.Width+sx:]
		drow := dst.Pix[yi*dst.Width:]
		for xi := x0; xi < x1; xi++ {
			if sampled := srow[xi-x]; sampled.Packed() != key {
				drow[xi] = sampled
			}
		}
	}
}

// Paste copies src onto dst at (x, y), clipped to dst. Unlike the blits it
// writes every pixel, key and marker included.
func Paste(dst, src *Raster, x, y int) {
	x0, y0, x1, y1 := clip(dst, x, y, src.Width, src.Height)
	if x0 >= x1 {
		return
	}
	for yi := y0; yi < y1; yi++ {
		copy(dst.Pix[yi*dst.Width+x0:yi*dst.Width+x1], src.Pix[(yi-y)*src.Width+x0-x:])
	}
}
