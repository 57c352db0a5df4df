// Package slice cuts a sprite sheet into one image file per frame.
package slice

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"rasterkit/parallel"
	"rasterkit/pixel"
	"rasterkit/raster"
	"rasterkit/sprite"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Sheet  string `arg:"" help:"Sprite sheet image" type:"existingfile"`
	Cols   int    `help:"Frames per row" required:""`
	Rows   int    `help:"Frames per column" default:"1"`
	Dest   string `help:"Destination folder for frames. Relative to the sheet folder if not absolute." default:"frames"`
	Prefix string `help:"File name prefix, defaults to the sheet name"`
	Unkey  bool   `help:"Turn colour key pixels transparent" default:"false"`
	Key    string `help:"Colour key" default:"#ff00fe"`

	key pixel.Pixel `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	sheet, err := filepath.Abs(c.Sheet)
	if err != nil {
		return fmt.Errorf("invalid sheet path %q: %w", c.Sheet, err)
	}
	c.Sheet = sheet

	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("invalid grid %dx%d", c.Cols, c.Rows)
	}

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(filepath.Dir(sheet), c.Dest)
	}

	if c.Prefix == "" {
		name := filepath.Base(sheet)
		c.Prefix = strings.TrimSuffix(name, filepath.Ext(name))
	}

	if c.key, err = pixel.ParseHex(c.Key); err != nil {
		return fmt.Errorf("invalid colour key: %w", err)
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	sheet, err := sprite.LoadSheet(c.Sheet, c.Cols, c.Rows)
	if err != nil {
		return err
	}
	if sheet.FrameWidth == 0 || sheet.FrameHeight == 0 {
		return fmt.Errorf("sheet %dx%d too small for a %dx%d grid", sheet.Raster.Width, sheet.Raster.Height, c.Cols, c.Rows)
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	var writtenCount, errCount atomic.Uint64
	for fy := range sheet.Rows {
		for fx := range sheet.Cols {
			worker(func() {
				dest := filepath.Join(c.Dest, fmt.Sprintf("%s_%02d_%02d.png", c.Prefix, fy, fx))
				if err := c.writeFrame(sheet, fx, fy, dest); err != nil {
					errCount.Add(1)
					slog.Error("could not write frame", "frame", fmt.Sprintf("%d,%d", fx, fy), "dest", dest, "error", err)
					return
				}
				writtenCount.Add(1)
			})
		}
	}

	wait(true)

	written := writtenCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "written", written, "errors", errors, "total", written+errors)

	if errors > 0 {
		return fmt.Errorf("error writing %d frames", errors)
	}
	return nil
}

func (c *CLICmd) writeFrame(sheet *sprite.Sheet, fx, fy int, dest string) error {
	if err := checkFile(dest); err != nil {
		return err
	}

	frame, err := sheet.Frame(fx, fy)
	if err != nil {
		return err
	}
	if c.Unkey {
		for i, p := range frame.Pix {
			if p.Equal(c.key) {
				frame.Pix[i] = pixel.Transparent
			}
		}
	}

	slog.Debug("writing frame", "dest", dest)
	return raster.Save(dest, frame)
}
