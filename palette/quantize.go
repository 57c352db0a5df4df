package palette

import (
	"fmt"
	"image"
	"image/color"

	"rasterkit/pixel"
	"rasterkit/raster"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// Quantize builds a palette of at most n colours for r by median cut.
func Quantize(r *raster.Raster, n int) (Palette, error) {
	if n < 1 || n > 256 {
		return nil, fmt.Errorf("%w: %d colours", ErrUnsupported, n)
	}
	if r.Empty() {
		return nil, raster.ErrEmpty
	}

	q := quantize.MedianCutQuantizer{}
	return FromColors(q.Quantize(make(color.Palette, 0, n), r.ToNRGBA())), nil
}

// Remap writes src into dst with every pixel replaced by a palette entry,
// either the nearest one or by Floyd-Steinberg error diffusion. dst is
// reallocated to the size of src when needed.
func Remap(dst, src *raster.Raster, p Palette, dither bool) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty palette", ErrUnsupported)
	}
	if err := raster.Copy(dst, src); err != nil {
		return err
	}

	if !dither {
		for i, c := range dst.Pix {
			dst.Pix[i] = p.Convert(c)
		}
		return nil
	}

	b := src.Bounds()
	pm := image.NewPaletted(b, p.Colors())
	draw.FloydSteinberg.Draw(pm, b, src, b.Min)
	for y := range src.Height {
		for x := range src.Width {
			dst.SetPixelAt(x, y, p[pm.ColorIndexAt(x, y)])
		}
	}
	return nil
}

// Model maps colours onto their nearest palette entry.
func (p Palette) Model() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return p.Convert(pixel.FromColor(c))
	})
}
