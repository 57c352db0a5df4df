package raster

import (
	"fmt"

	xdraw "golang.org/x/image/draw"
)

var _ xdraw.Image = (*Raster)(nil)

// Interpolators accepted by Scale, by name.
var Interpolators = map[string]xdraw.Interpolator{
	"nearest":    xdraw.NearestNeighbor,
	"approx":     xdraw.ApproxBiLinear,
	"bilinear":   xdraw.BiLinear,
	"catmullrom": xdraw.CatmullRom,
}

// Scale resamples all of src into all of dst with one of the x/image kernels.
// Unlike BilinearUpsample it works in premultiplied space and may also shrink.
func Scale(dst, src *Raster, interp xdraw.Interpolator) {
	interp.Scale(dst, dst.Bounds(), src.ToNRGBA(), src.Bounds(), xdraw.Src, nil)
}

// ScaleNamed looks the interpolator up in Interpolators.
func ScaleNamed(dst, src *Raster, name string) error {
	interp, ok := Interpolators[name]
	if !ok {
		return fmt.Errorf("unknown interpolator %q", name)
	}
	Scale(dst, src, interp)
	return nil
}
