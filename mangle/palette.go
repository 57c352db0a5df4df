package mangle

import (
	"log/slog"

	"rasterkit/palette"
	"rasterkit/raster"
)

func repalette(logger *slog.Logger, src *raster.Raster, pal palette.Palette, dither bool) (*raster.Raster, error) {
	logger.Info("applying palette", "colors", len(pal), "dither", dither)
	dst := &raster.Raster{}
	if err := palette.Remap(dst, src, pal, dither); err != nil {
		return nil, err
	}
	return dst, nil
}
