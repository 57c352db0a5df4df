// Package palette holds indexed colour sets: the built-in ones, Microsoft
// RIFF PAL files, median-cut palettes generated from a raster, and the
// remapping of a raster onto a palette.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"rasterkit/pixel"
)

var ErrUnsupported = errors.New("palette: unsupported")

type Palette []pixel.Pixel

// FromColors converts any colour palette, dropping premultiplication.
func FromColors(cp color.Palette) Palette {
	p := make(Palette, len(cp))
	for i, c := range cp {
		p[i] = pixel.FromColor(c)
	}
	return p
}

// Colors returns an image/color view usable with image.Paletted.
func (p Palette) Colors() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Index returns the entry nearest to c by squared RGBA distance; ties go to
// the lower index.
func (p Palette) Index(c pixel.Pixel) int {
	ret, best := 0, math.MaxInt
	for i, v := range p {
		dr := int(c.R) - int(v.R)
		dg := int(c.G) - int(v.G)
		db := int(c.B) - int(v.B)
		da := int(c.A) - int(v.A)
		sum := dr*dr + dg*dg + db*db + da*da
		if sum < best {
			if sum == 0 {
				return i
			}
			ret, best = i, sum
		}
	}
	return ret
}

// Convert returns the nearest entry, or c itself for an empty palette.
func (p Palette) Convert(c pixel.Pixel) pixel.Pixel {
	if len(p) == 0 {
		return c
	}
	return p[p.Index(c)]
}

func gray(levels int) Palette {
	p := make(Palette, levels)
	for i := range levels {
		v := uint8(i * 255 / (levels - 1))
		p[i] = pixel.RGB(v, v, v)
	}
	return p
}

var builtins = map[string]func() Palette{
	"bw": func() Palette {
		return Palette{pixel.Black, pixel.White}
	},
	"gray16": func() Palette {
		return gray(16)
	},
	"cga16": func() Palette {
		p := make(Palette, 16)
		for i := range 16 {
			intensity := uint8(i>>3&1) * 0x55
			r := uint8(i>>2&1)*0xaa + intensity
			g := uint8(i>>1&1)*0xaa + intensity
			b := uint8(i&1)*0xaa + intensity
			p[i] = pixel.RGB(r, g, b)
		}
		// Brown instead of dark yellow.
		p[6] = pixel.RGB(0xaa, 0x55, 0x00)
		return p
	},
}

// Names lists the built-in palettes.
func Names() []string {
	return []string{"bw", "gray16", "cga16"}
}

// Load resolves a built-in palette name or reads a RIFF PAL file. All
// palettes in the file are concatenated.
func Load(name string) (Palette, error) {
	if mk, ok := builtins[strings.ToLower(name)]; ok {
		return mk(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadRIFF(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", name, err)
	}

	var p Palette
	for _, pal := range pals {
		p = append(p, pal...)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: palette file %q has no colours", ErrUnsupported, name)
	}
	return p, nil
}

// Save writes p as a single-chunk RIFF PAL file through a temporary file in
// the destination folder.
func Save(path string, p Palette) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	out, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := out.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination for %q: %w", path, defErr)
		}
		if canRename && err == nil {
			if defErr := os.Rename(out.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			os.Remove(out.Name())
		}
	}()

	if _, err = WriteRIFF(out, p); err != nil {
		return fmt.Errorf("could not write palette %q: %w", path, err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("could not flush palette %q: %w", path, err)
	}
	canRename = true
	return nil
}
