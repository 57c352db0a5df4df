package mangle

import (
	"log/slog"
	"math"

	"rasterkit/pixel"
	"rasterkit/raster"
)

// placement describes a resize: the source rectangle the image is cut from,
// the canvas it ends up on and where on that canvas the scaled image lands.
type placement struct {
	srcX, srcY, srcW, srcH int
	width, height          int
	x, y, w, h             int
}

func (p placement) cropped(srcWidth, srcHeight int) bool {
	return p.srcX != 0 || p.srcY != 0 || p.srcW != srcWidth || p.srcH != srcHeight
}

func (p placement) letterboxed() bool {
	return p.w != p.width || p.h != p.height
}

// targetSize fits a srcWidth*srcHeight image into a width*height box keeping
// its aspect ratio; a zero box dimension stands for the source one. With crop
// the source is trimmed to the box aspect and fills the box. With fill the
// canvas is the whole box and the image is centred on it.
func targetSize(srcWidth, srcHeight, width, height int, crop, fill bool) placement {
	if width == 0 {
		width = srcWidth
	}
	if height == 0 {
		height = srcHeight
	}
	p := placement{
		srcW:   srcWidth,
		srcH:   srcHeight,
		width:  width,
		height: height,
		w:      width,
		h:      height,
	}

	srcAR := float64(srcWidth) / float64(srcHeight)
	destAR := float64(width) / float64(height)
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((float64(srcHeight) - float64(srcWidth)/destAR) / 2))
		p.srcH = max(1, srcHeight-2*dh)
		p.srcY = min(dh, srcHeight-p.srcH)
	case crop && srcAR > destAR:
		dw := int(math.Round((float64(srcWidth) - float64(srcHeight)*destAR) / 2))
		p.srcW = max(1, srcWidth-2*dw)
		p.srcX = min(dw, srcWidth-p.srcW)
	case crop:
	case srcAR < destAR:
		dw := float64(height) * srcAR
		if !fill {
			p.width = max(1, int(math.Round(dw)))
			p.w = p.width
		} else if float64(width) > dw {
			idw := int(math.Round((float64(width) - dw) / 2))
			p.w = max(1, width-2*idw)
			p.x = min(idw, width-p.w)
		}
	case srcAR > destAR:
		dh := float64(width) / srcAR
		if !fill {
			p.height = max(1, int(math.Round(dh)))
			p.h = p.height
		} else if float64(height) > dh {
			idh := int(math.Round((float64(height) - dh) / 2))
			p.h = max(1, height-2*idh)
			p.y = min(idh, height-p.h)
		}
	}
	return p
}

// blur runs the box blur, resampling to width*height on the way.
func blur(logger *slog.Logger, src *raster.Raster, radius, width, height int) (*raster.Raster, error) {
	logger.Info("blurring", "radius", radius, "width", width, "height", height)
	tmp, err := raster.New(width, src.Height)
	if err != nil {
		return nil, err
	}
	dst, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}
	raster.BoxBlur(dst, tmp, src, radius)
	return dst, nil
}

// resize resamples src to width*height; "upsample" uses the engine's own
// bilinear filter, any other name picks an x/image kernel.
func resize(logger *slog.Logger, src *raster.Raster, width, height int, scaler string) (*raster.Raster, error) {
	if src.Width == width && src.Height == height {
		return src, nil
	}

	logger.Info("resizing", "width", width, "height", height, "scaler", scaler)
	dst, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}
	if scaler == "upsample" {
		raster.BilinearUpsample(dst, src)
		return dst, nil
	}
	if err := raster.ScaleNamed(dst, src, scaler); err != nil {
		return nil, err
	}
	return dst, nil
}

// letterbox centres src on a canvas of the placement's size filled with
// background.
func letterbox(logger *slog.Logger, src *raster.Raster, p placement, background pixel.Pixel) (*raster.Raster, error) {
	logger.Info("filling", "width", p.width, "height", p.height, "color", background.Hex())
	dst, err := raster.New(p.width, p.height)
	if err != nil {
		return nil, err
	}
	dst.Fill(background)
	raster.Paste(dst, src, p.x, p.y)
	return dst, nil
}
