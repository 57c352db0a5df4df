package raster

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format into a new four channel raster.
func Decode(r io.Reader) (*Raster, error) {
	dst, _, err := DecodeFormat(r)
	return dst, err
}

// DecodeFormat is Decode that also reports the format name the codec
// registered ("png", "jpeg", "webp", ...).
func DecodeFormat(r io.Reader) (*Raster, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}
	dst, err := FromImage(img)
	return dst, format, err
}

// Load decodes the image file at path.
func Load(path string) (*Raster, error) {
	r, _, err := LoadFormat(path)
	return r, err
}

// LoadFormat decodes the image file at path and reports its format.
func LoadFormat(path string) (*Raster, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	r, format, err := DecodeFormat(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not load %q: %w", path, err)
	}
	return r, format, nil
}

// Formats lists the lossless formats EncodeFormat can write.
var Formats = []string{"png", "bmp", "tiff"}

// LossyFormats can be written too, but do not round trip: gif reduces the
// raster to a palette and jpeg drops alpha.
var LossyFormats = []string{"gif", "jpeg"}

// Writable reports whether EncodeFormat supports format.
func Writable(format string) bool {
	return slices.Contains(Formats, format) || slices.Contains(LossyFormats, format)
}

// Encode writes the raster as a four channel PNG.
func Encode(w io.Writer, r *Raster) error {
	return EncodeFormat(w, r, "png")
}

// EncodeFormat writes the raster in any of Formats or LossyFormats.
func EncodeFormat(w io.Writer, r *Raster, format string) error {
	if r.Empty() {
		return ErrEmpty
	}

	img := r.ToNRGBA()
	switch format {
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.DefaultCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// Save writes the raster as a PNG. The data goes to a temporary file in the
// destination directory which is renamed over path once fully written.
func Save(path string, r *Raster) error {
	return SaveAs(path, r, "png")
}

// SaveAs is Save with an explicit output format.
func SaveAs(path string, r *Raster, format string) (err error) {
	if r.Empty() {
		return ErrEmpty
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination for %q: %w", path, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination for %q: %w", path, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = EncodeFormat(outFile, r, format); err != nil {
		return fmt.Errorf("could not save %q: %w", path, err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
