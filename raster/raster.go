/*
Package raster implements the CPU-side framebuffer: an owned, row-major
buffer of pixels with the origin at the top-left, and the sampling,
compositing, line drawing and filtering operations that read and write it.

Two families of accessors exist. PixelAt and SetPixelAt are the unchecked hot
path: the caller must prove x in [0, Width) and y in [0, Height), either by
clipping first (as DrawLine and DrawRaster do) or by construction. Get and Put
check bounds and report ErrOutOfBounds.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"rasterkit/pixel"
)

// MaxPixels bounds width*height so that the byte size, width*height*4, fits
// in a signed 32-bit integer.
const MaxPixels = (1<<31 - 1) / 4

var (
	// ErrAllocation reports negative dimensions or a size over MaxPixels. It
	// is the only allocation failure New and Init can return: a request under
	// the limit that the process still cannot satisfy is fatal in the Go
	// runtime, not an error. Callers taking sizes from untrusted input should
	// bound them well below MaxPixels.
	ErrAllocation  = errors.New("raster: cannot allocate storage")
	ErrOutOfBounds = errors.New("raster: coordinates out of bounds")
	ErrEmpty       = errors.New("raster: no storage")
)

type Raster struct {
	Width, Height int
	// Pix holds Width*Height pixels; the pixel at (x, y) is Pix[y*Width+x].
	Pix []pixel.Pixel
}


// New allocates a zero-filled (transparent black) raster.
func New(width, height int) (*Raster, error) {
	r := &Raster{}
	if err := r.Init(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Init replaces any previous contents with zero-filled storage of the given
// size.
func (r *Raster) Init(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrAllocation, width, height)
	}
	if height > 0 && width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}

	r.Pix = make([]pixel.Pixel, width*height)
	r.Width = width
	r.Height = height
	return nil
}

// Cleanup releases the storage and zeroes the dimensions. Calling it on an
// empty raster does nothing.
func (r *Raster) Cleanup() {
	r.Pix = nil
	r.Width = 0
	r.Height = 0
}

// Empty reports whether the raster has no storage.
func (r *Raster) Empty() bool {
	return r == nil || r.Pix == nil
}

// Copy duplicates src into dst, reallocating dst when it has no storage or
// its dimensions differ.
func Copy(dst, src *Raster) error {
	if dst.Pix == nil || dst.Width != src.Width || dst.Height != src.Height {
		dst.Cleanup()
		if err := dst.Init(src.Width, src.Height); err != nil {
			return err
		}
	}

	copy(dst.Pix, src.Pix)
	return nil
}

// Clone returns an independent copy.
func (r *Raster) Clone() (*Raster, error) {
	dst := &Raster{}
	if err := Copy(dst, r); err != nil {
		return nil, err
	}
	return dst, nil
}

// Crop copies the part of the w*h window at (x, y) that lies inside src
// into a raster of its own. A window missing src entirely is an error.
func Crop(src *Raster, x, y, w, h int) (*Raster, error) {
	x0, y0, x1, y1 := clip(src, x, y, w, h)
	if x0 >= x1 || y0 >= y1 {
		return nil, fmt.Errorf("%w: window %dx%d at (%d, %d) outside %dx%d", ErrOutOfBounds, w, h, x, y, src.Width, src.Height)
	}

	dst, err := New(x1-x0, y1-y0)
	if err != nil {
		return nil, err
	}
	for yi := y0; yi < y1; yi++ {
		copy(dst.Pix[(yi-y0)*dst.Width:(yi-y0+1)*dst.Width], src.Pix[yi*src.Width+x0:])
	}
	return dst, nil
}

// Offset is the index of (x, y) in Pix. It does not check bounds.
func (r *Raster) Offset(x, y int) int {
	return y*r.Width + x
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// PixelAt returns the pixel at (x, y) without checking bounds.
func (r *Raster) PixelAt(x, y int) pixel.Pixel {
	return r.Pix[y*r.Width+x]
}

// SetPixelAt writes the pixel at (x, y) without checking bounds.
func (r *Raster) SetPixelAt(x, y int, p pixel.Pixel) {
	r.Pix[y*r.Width+x] = p
}

// Get is the checked form of PixelAt.
func (r *Raster) Get(x, y int) (pixel.Pixel, error) {
	if !r.In(x, y) {
		return pixel.Pixel{}, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, y, r.Width, r.Height)
	}
	return r.Pix[y*r.Width+x], nil
}

// Put is the checked form of SetPixelAt.
func (r *Raster) Put(x, y int, p pixel.Pixel) error {
	if !r.In(x, y) {
		return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, y, r.Width, r.Height)
	}
	r.Pix[y*r.Width+x] = p
	return nil
}

// Fill sets every pixel to p.
func (r *Raster) Fill(p pixel.Pixel) {
	for i := range r.Pix {
		r.Pix[i] = p
	}
}

// FillRect fills the intersection of the rectangle with the raster.
func (r *Raster) FillRect(x, y, w, h int, p pixel.Pixel) {
	x0, x1 := max(x, 0), min(x+w, r.Width)
	y0, y1 := max(y, 0), min(y+h, r.Height)
	for yi := y0; yi < y1; yi++ {
		row := r.Pix[yi*r.Width : (yi+1)*r.Width]
		for xi := x0; xi < x1; xi++ {
			row[xi] = p
		}
	}
}

// FlipVertical writes src mirrored top to bottom into dst, which must have
// the same dimensions.
func FlipVertical(dst, src *Raster) {
	w, h := src.Width, src.Height
	for y := range h {
		copy(dst.Pix[y*w:(y+1)*w], src.Pix[(h-y-1)*w:(h-y)*w])
	}
}

func (r *Raster) ColorModel() color.Model {
	return pixel.Model
}

func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements image.Image; outside the raster it returns transparent black.
func (r *Raster) At(x, y int) color.Color {
	if !r.In(x, y) {
		return pixel.Transparent
	}
	return r.Pix[y*r.Width+x]
}

// Set implements draw.Image; writes outside the raster are dropped.
func (r *Raster) Set(x, y int, c color.Color) {
	if !r.In(x, y) {
		return
	}
	r.Pix[y*r.Width+x] = pixel.FromColor(c)
}

// ToNRGBA copies the raster into an image.NRGBA with identical bytes.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	for i, p := range r.Pix {
		j := i * 4
		img.Pix[j+0] = p.R
		img.Pix[j+1] = p.G
		img.Pix[j+2] = p.B
		img.Pix[j+3] = p.A
	}
	return img
}

// FromImage converts any image into a fresh raster, moving its bounds to the
// origin.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	r, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range r.Height {
			src := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
			row := r.Pix[y*r.Width : (y+1)*r.Width]
			for x := range row {
				row[x] = pixel.RGBA(src[x*4], src[x*4+1], src[x*4+2], src[x*4+3])
			}
		}
		return r, nil
	}

	for y := range r.Height {
		for x := range r.Width {
			r.Pix[y*r.Width+x] = pixel.FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return r, nil
}
