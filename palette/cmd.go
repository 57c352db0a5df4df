package palette

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"rasterkit/parallel"
	"rasterkit/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Images []string `arg:"" help:"Images to build palettes from" type:"existingfile"`
	Colors int      `help:"Maximum number of colours per palette" default:"16"`
	Dest   string   `help:"Destination folder for PAL files, next to each image if empty"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Colors < 1 || c.Colors > 256 {
		return fmt.Errorf("invalid number of colours: %d", c.Colors)
	}

	if c.Dest != "" {
		dest, err := filepath.Abs(c.Dest)
		if err != nil {
			return fmt.Errorf("invalid destination %q: %w", c.Dest, err)
		}
		c.Dest = dest
	}
	return nil
}

func (c *CLICmd) destination(image string) string {
	dir, name := filepath.Split(image)
	if c.Dest != "" {
		dir = c.Dest
	}
	return filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+".pal")
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if c.Dest != "" {
		if err := os.MkdirAll(c.Dest, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
		}
	}

	var processedCount, errCount atomic.Uint64
	for _, image := range c.Images {
		worker(func() {
			logger := slog.Default().With("file", image)

			r, err := raster.Load(image)
			if err != nil {
				errCount.Add(1)
				logger.Error("could not load image", "error", err)
				return
			}

			p, err := Quantize(r, c.Colors)
			if err != nil {
				errCount.Add(1)
				logger.Error("could not quantize image", "error", err)
				return
			}

			dest := c.destination(image)
			if err := Save(dest, p); err != nil {
				errCount.Add(1)
				logger.Error("could not save palette", "dest", dest, "error", err)
				return
			}
			logger.Info("palette written", "dest", dest, "colors", len(p))
			processedCount.Add(1)
		})
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
