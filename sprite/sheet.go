// Package sprite addresses a raster as a grid of equally sized animation
// frames.
package sprite

import (
	"fmt"

	"rasterkit/raster"
)

type Sheet struct {
	Raster *raster.Raster
	// Cols and Rows are the frame counts along each axis.
	Cols, Rows int
	// FrameWidth and FrameHeight are the sheet size divided by the frame
	// counts; a remainder is ignored.
	FrameWidth, FrameHeight int
}

// NewSheet partitions r into cols*rows frames.
func NewSheet(r *raster.Raster, cols, rows int) (*Sheet, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid sheet grid %dx%d", cols, rows)
	}
	return &Sheet{
		Raster:      r,
		Cols:        cols,
		Rows:        rows,
		FrameWidth:  r.Width / cols,
		FrameHeight: r.Height / rows,
	}, nil
}

// LoadSheet decodes the image at path and partitions it.
func LoadSheet(path string, cols, rows int) (*Sheet, error) {
	r, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	return NewSheet(r, cols, rows)
}

// Contains reports whether (fx, fy) addresses a frame of the grid.
func (s *Sheet) Contains(fx, fy int) bool {
	return fx >= 0 && fx < s.Cols && fy >= 0 && fy < s.Rows
}

// Draw composites frame (fx, fy) onto dst with its top-left corner at
// (x, y). Colour-key pixels are skipped; there is no marker substitution.
// Frames outside the grid draw nothing.
func (s *Sheet) Draw(dst *raster.Raster, cfg raster.BlitConfig, fx, fy, x, y int) {
	if !s.Contains(fx, fy) {
		return
	}
	cfg.DrawRegion(dst, s.Raster, fx*s.FrameWidth, fy*s.FrameHeight, s.FrameWidth, s.FrameHeight, x, y)
}

// Frame copies frame (fx, fy) into a raster of its own.
func (s *Sheet) Frame(fx, fy int) (*raster.Raster, error) {
	if !s.Contains(fx, fy) {
		return nil, fmt.Errorf("frame (%d, %d) outside %dx%d grid", fx, fy, s.Cols, s.Rows)
	}

	return raster.Crop(s.Raster, fx*s.FrameWidth, fy*s.FrameHeight, s.FrameWidth, s.FrameHeight)
}

// Resize returns a bilinearly resampled copy of the sheet sized w*h that
// keeps the same grid.
func (s *Sheet) Resize(w, h int) (*Sheet, error) {
	r, err := raster.New(w, h)
	if err != nil {
		return nil, err
	}
	raster.BilinearUpsample(r, s.Raster)
	return NewSheet(r, s.Cols, s.Rows)
}

// FlipVertical returns a copy of the sheet mirrored top to bottom. Rows swap
// order and every frame is upside down.
func (s *Sheet) FlipVertical() (*Sheet, error) {
	r, err := raster.New(s.Raster.Width, s.Raster.Height)
	if err != nil {
		return nil, err
	}
	raster.FlipVertical(r, s.Raster)
	return NewSheet(r, s.Cols, s.Rows)
}
