package mangle

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"rasterkit/palette"
	"rasterkit/parallel"
	"rasterkit/pixel"
	"rasterkit/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan    string          `help:"Source folder to scan" default:"."`
	Dest    string          `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"mangled"`
	Blur    int             `help:"Box blur radius, 0 disables blurring" default:"0" group:"filter"`
	Flip    bool            `help:"Flip images vertically" default:"false" group:"filter"`
	Resize  bool            `help:"Resize image" default:"false" group:"resize"`
	Width   int             `help:"Max width, 0 keeps the source width" group:"resize"`
	Height  int             `help:"Max height, 0 keeps the source height" group:"resize"`
	Crop    bool            `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill    string          `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
	Scaler  string          `help:"Resampling filter; upsample is the engine's bilinear filter" enum:"upsample,nearest,approx,bilinear,catmullrom" default:"upsample" group:"resize"`
	Palette string          `help:"Palette name (bw, gray16, cga16) or PAL file in RIFF format to apply" group:"palette"`
	Dither  bool            `help:"Apply dithering" default:"false" group:"palette"`
	Format  string          `help:"Output format of mangled image. If prefixed with 'unsup:' will convert only formats that cannot be written" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
	Colors  palette.Palette `kong:"-"`

	fill    pixel.Pixel `kong:"-"`
	filling bool        `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Blur < 0 {
		return fmt.Errorf("invalid blur radius: %d", c.Blur)
	}

	if c.Resize {
		switch {
		case (c.Width < 0):
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case (c.Height < 0):
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if !c.Crop && c.Fill != "" {
		if c.fill, err = pixel.ParseHex(c.Fill); err != nil {
			return fmt.Errorf("invalid fill color: %w", err)
		}
		c.filling = true
	}

	if c.Palette != "" {
		if c.Colors, err = palette.Load(c.Palette); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				if err := c.process(logger, filePath, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not mangle image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) process(logger *slog.Logger, filePath, fileName string) error {
	img, srcFormat, err := raster.LoadFormat(filePath)
	if err != nil {
		return err
	}

	place := targetSize(img.Width, img.Height, img.Width, img.Height, false, false)
	if c.Resize {
		place = targetSize(img.Width, img.Height, c.Width, c.Height, c.Crop, c.filling)
	}

	if place.cropped(img.Width, img.Height) {
		logger.Info("cropping", "x", place.srcX, "y", place.srcY, "width", place.srcW, "height", place.srcH)
		if img, err = raster.Crop(img, place.srcX, place.srcY, place.srcW, place.srcH); err != nil {
			return fmt.Errorf("could not crop image: %w", err)
		}
	}

	if c.Blur > 0 {
		if img, err = blur(logger, img, c.Blur, place.w, place.h); err != nil {
			return fmt.Errorf("could not blur image: %w", err)
		}
	} else if c.Resize {
		if img, err = resize(logger, img, place.w, place.h, c.Scaler); err != nil {
			return fmt.Errorf("could not resize image: %w", err)
		}
	}

	if place.letterboxed() {
		if img, err = letterbox(logger, img, place, c.fill); err != nil {
			return fmt.Errorf("could not fill image background: %w", err)
		}
	}

	if c.Flip {
		flipped, err := raster.New(img.Width, img.Height)
		if err != nil {
			return err
		}
		raster.FlipVertical(flipped, img)
		img = flipped
	}

	if len(c.Colors) > 0 {
		palLog := logger.With("palette", c.Palette)
		if img, err = repalette(palLog, img, c.Colors, c.Dither); err != nil {
			return fmt.Errorf("could not change image palette: %w", err)
		}
	}

	format := outputFormat(srcFormat, c.Format)
	oldExt := filepath.Ext(fileName)
	destName := fmt.Sprintf("%s.%s", fileName[:len(fileName)-len(oldExt)], format)
	if err = raster.SaveAs(filepath.Join(c.Dest, destName), img, format); err != nil {
		return fmt.Errorf("could not save image to %q: %w", c.Dest, err)
	}
	return nil
}

// outputFormat resolves the --format value for a source image. "same" keeps
// the source format; an "unsup:" prefix keeps it too unless it cannot be
// written.
func outputFormat(srcFormat, format string) string {
	format, unsupOnly := strings.CutPrefix(format, "unsup:")
	if (unsupOnly && raster.Writable(srcFormat)) || format == "same" {
		return srcFormat
	}
	return format
}
