package mangle

import (
	"os"
	"path/filepath"
	"testing"

	"rasterkit/parallel"
	"rasterkit/pixel"
	"rasterkit/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, w, h int, fill pixel.Pixel) {
	t.Helper()
	r, err := raster.New(w, h)
	require.NoError(t, err)
	r.Fill(fill)
	require.NoError(t, raster.Save(path, r))
}

func TestTargetSize(t *testing.T) {
	for name, tc := range map[string]struct {
		sw, sh, w, h int
		crop, fill   bool
		want         placement
	}{
		"unchanged": {
			sw: 40, sh: 20,
			want: placement{srcW: 40, srcH: 20, width: 40, height: 20, w: 40, h: 20},
		},
		"fit wide": {
			sw: 200, sh: 100, w: 100, h: 100,
			want: placement{srcW: 200, srcH: 100, width: 100, height: 50, w: 100, h: 50},
		},
		"fit tall": {
			sw: 100, sh: 200, w: 100, h: 100,
			want: placement{srcW: 100, srcH: 200, width: 50, height: 100, w: 50, h: 100},
		},
		"zero width keeps source width": {
			sw: 100, sh: 200, h: 50,
			want: placement{srcW: 100, srcH: 200, width: 25, height: 50, w: 25, h: 50},
		},
		"box never grows past the source": {
			sw: 40, sh: 20, w: 80,
			want: placement{srcW: 40, srcH: 20, width: 40, height: 20, w: 40, h: 20},
		},
		"at least one pixel": {
			sw: 1000, sh: 1, w: 1,
			want: placement{srcW: 1000, srcH: 1, width: 1, height: 1, w: 1, h: 1},
		},
		"crop wide": {
			sw: 200, sh: 100, w: 100, h: 100, crop: true,
			want: placement{srcX: 50, srcW: 100, srcH: 100, width: 100, height: 100, w: 100, h: 100},
		},
		"crop tall": {
			sw: 100, sh: 200, w: 100, h: 100, crop: true,
			want: placement{srcY: 50, srcW: 100, srcH: 100, width: 100, height: 100, w: 100, h: 100},
		},
		"crop wins over fill": {
			sw: 200, sh: 100, w: 100, h: 100, crop: true, fill: true,
			want: placement{srcX: 50, srcW: 100, srcH: 100, width: 100, height: 100, w: 100, h: 100},
		},
		"fill wide": {
			sw: 200, sh: 100, w: 100, h: 100, fill: true,
			want: placement{srcW: 200, srcH: 100, width: 100, height: 100, y: 25, w: 100, h: 50},
		},
		"fill tall": {
			sw: 100, sh: 200, w: 100, h: 100, fill: true,
			want: placement{srcW: 100, srcH: 200, width: 100, height: 100, x: 25, w: 50, h: 100},
		},
		"fill rounds the border": {
			sw: 30, sh: 10, w: 10, h: 10, fill: true,
			want: placement{srcW: 30, srcH: 10, width: 10, height: 10, y: 3, w: 10, h: 4},
		},
	} {
		got := targetSize(tc.sw, tc.sh, tc.w, tc.h, tc.crop, tc.fill)
		assert.Equal(t, tc.want, got, name)
	}
}

func TestOutputFormat(t *testing.T) {
	for _, tc := range []struct {
		src, format, want string
	}{
		{"png", "unsup:png", "png"},
		{"jpeg", "unsup:bmp", "jpeg"},
		{"webp", "unsup:png", "png"},
		{"webp", "unsup:tiff", "tiff"},
		{"gif", "same", "gif"},
		{"webp", "same", "webp"},
		{"png", "tiff", "tiff"},
	} {
		assert.Equal(t, tc.want, outputFormat(tc.src, tc.format), "%+v", tc)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	c := &CLICmd{Scan: dir, Dest: "out", Palette: "gray16"}
	require.NoError(t, c.Validate(nil))
	assert.Equal(t, filepath.Join(dir, "out"), c.Dest)
	assert.Len(t, c.Colors, 16)

	for name, bad := range map[string]*CLICmd{
		"missing scan": {Scan: filepath.Join(dir, "nope")},
		"blur":         {Scan: dir, Blur: -1},
		"no size":      {Scan: dir, Resize: true},
		"width":        {Scan: dir, Resize: true, Width: -1, Height: 4},
		"palette":      {Scan: dir, Palette: filepath.Join(dir, "nope.pal")},
		"fill":         {Scan: dir, Fill: "blue"},
	} {
		assert.Error(t, bad.Validate(nil), name)
	}

	cropped := &CLICmd{Scan: dir, Crop: true, Fill: "blue"}
	assert.NoError(t, cropped.Validate(nil), "fill is ignored when cropping")
	assert.False(t, cropped.filling)

	file := filepath.Join(dir, "file.png")
	writeImage(t, file, 1, 1, pixel.White)
	assert.Error(t, (&CLICmd{Scan: file}).Validate(nil))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), 8, 4, pixel.RGB(200, 200, 200))
	writeImage(t, filepath.Join(dir, "b.png"), 4, 4, pixel.RGB(20, 20, 20))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("junk"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	c := &CLICmd{
		Scan:    dir,
		Dest:    "out",
		Resize:  true,
		Width:   16,
		Height:  16,
		Scaler:  "upsample",
		Flip:    true,
		Palette: "bw",
		Format:  "bmp",
	}
	require.NoError(t, c.Validate(nil))

	pool := parallel.Start(2)
	assert.EqualError(t, c.Run(pool.Do, pool.Wait), "error processing 1 files")

	a, err := raster.Load(filepath.Join(dir, "out", "a.bmp"))
	require.NoError(t, err)
	assert.Equal(t, 16, a.Width)
	assert.Equal(t, 8, a.Height)
	for _, p := range a.Pix {
		assert.Equal(t, pixel.White, p)
	}

	b, err := raster.Load(filepath.Join(dir, "out", "b.bmp"))
	require.NoError(t, err)
	assert.Equal(t, 16, b.Width)
	assert.Equal(t, 16, b.Height)
	assert.Equal(t, pixel.Black, b.PixelAt(3, 3))
}

func TestRunBlurAndScale(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "c.png"), 8, 8, pixel.RGB(10, 100, 50))

	c := &CLICmd{Scan: dir, Dest: "blurred", Blur: 2, Resize: true, Width: 4, Height: 4, Format: "tiff"}
	require.NoError(t, c.Validate(nil))
	pool := parallel.Start(1)
	require.NoError(t, c.Run(pool.Do, pool.Wait))

	got, err := raster.Load(filepath.Join(dir, "blurred", "c.tiff"))
	require.NoError(t, err)
	assert.Equal(t, 4, got.Width)
	for _, p := range got.Pix {
		assert.Equal(t, pixel.RGB(10, 100, 50), p, "uniform image stays uniform")
	}

	c = &CLICmd{Scan: dir, Dest: "scaled", Resize: true, Height: 2, Scaler: "catmullrom", Format: "png"}
	require.NoError(t, c.Validate(nil))
	pool = parallel.Start(1)
	require.NoError(t, c.Run(pool.Do, pool.Wait))

	got, err = raster.Load(filepath.Join(dir, "scaled", "c.png"))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 2, got.Height)
	assert.Equal(t, pixel.RGB(10, 100, 50), got.PixelAt(1, 1))
}

func TestRunCropAndFill(t *testing.T) {
	dir := t.TempDir()
	src, err := raster.New(8, 4)
	require.NoError(t, err)
	for y := range 4 {
		for x := range 8 {
			src.SetPixelAt(x, y, pixel.RGB(uint8(x*30), uint8(y*40), 0))
		}
	}
	require.NoError(t, raster.Save(filepath.Join(dir, "wide.png"), src))

	run := func(c *CLICmd) *raster.Raster {
		t.Helper()
		require.NoError(t, c.Validate(nil))
		pool := parallel.Start(1)
		require.NoError(t, c.Run(pool.Do, pool.Wait))
		got, err := raster.Load(filepath.Join(c.Dest, "wide.png"))
		require.NoError(t, err)
		return got
	}

	got := run(&CLICmd{Scan: dir, Dest: "crop", Resize: true, Width: 4, Height: 4, Crop: true, Scaler: "upsample", Format: "unsup:bmp"})
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 4, got.Height)
	for x := range 4 {
		assert.Equal(t, pixel.RGB(uint8((x+2)*30), 40, 0), got.PixelAt(x, 1), "column %d comes from the centre", x)
	}

	got = run(&CLICmd{Scan: dir, Dest: "fill", Resize: true, Width: 8, Height: 8, Fill: "#00f", Scaler: "upsample", Format: "same"})
	assert.Equal(t, 8, got.Width)
	assert.Equal(t, 8, got.Height)
	blue := pixel.RGB(0, 0, 255)
	for _, y := range []int{0, 1, 6, 7} {
		assert.Equal(t, blue, got.PixelAt(5, y), "border row %d", y)
	}
	for y := range 4 {
		assert.Equal(t, src.PixelAt(3, y), got.PixelAt(3, y+2))
	}

	got = run(&CLICmd{Scan: dir, Dest: "fit", Resize: true, Width: 8, Height: 8, Scaler: "upsample", Format: "png"})
	assert.Equal(t, 8, got.Width)
	assert.Equal(t, 4, got.Height, "fits the box without stretching")
	assert.Equal(t, src.Pix, got.Pix)
}
