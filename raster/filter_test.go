package raster

import (
	"testing"

	"rasterkit/pixel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Radius 0 only reproduces the source where x/w*w survives float32 rounding;
// these sizes do, 22 does not.
func TestBoxBlurRadiusZeroIsIdentity(t *testing.T) {
	for _, dims := range [][2]int{{8, 8}, {16, 4}, {5, 21}, {1, 1}} {
		src := patterned(t, dims[0], dims[1])
		tmp, err := New(dims[0], dims[1])
		require.NoError(t, err)
		result, err := New(dims[0], dims[1])
		require.NoError(t, err)

		BoxBlur(result, tmp, src, 0)
		assert.Equal(t, src.Pix, result.Pix, "%v", dims)
	}
}

func TestBoxBlurRadiusZeroTruncates(t *testing.T) {
	src := patterned(t, 22, 1)
	tmp, err := New(22, 1)
	require.NoError(t, err)
	result, err := New(22, 1)
	require.NoError(t, err)

	BoxBlur(result, tmp, src, 0)

	// float32(13)/22*22 is 12.999999, truncated to 12.
	assert.Equal(t, src.PixelAt(12, 0), result.PixelAt(13, 0))
	assert.Equal(t, src.PixelAt(12, 0), result.PixelAt(12, 0))
	assert.NotEqual(t, src.Pix, result.Pix)
}

func TestBoxBlurAverages(t *testing.T) {
	src, err := New(4, 1)
	require.NoError(t, err)
	for x, v := range []uint8{0, 30, 60, 90} {
		src.SetPixelAt(x, 0, pixel.RGBA(v, v/2, 90-v, uint8(x+1)))
	}
	tmp, err := New(4, 1)
	require.NoError(t, err)
	result, err := New(4, 1)
	require.NoError(t, err)

	BoxBlur(result, tmp, src, 1)

	want := []pixel.Pixel{
		pixel.RGBA(10, 5, 80, 2),
		pixel.RGBA(30, 15, 60, 3),
		pixel.RGBA(60, 30, 30, 4),
		pixel.RGBA(80, 40, 10, 4),
	}
	assert.Equal(t, want, tmp.Pix)
	assert.Equal(t, want, result.Pix)
}

func TestBoxBlurResizes(t *testing.T) {
	src := filled(t, 3, 3, pixel.RGB(40, 80, 120))
	tmp, err := New(7, 5)
	require.NoError(t, err)
	result, err := New(9, 2)
	require.NoError(t, err)

	BoxBlur(result, tmp, src, 2)

	for _, p := range result.Pix {
		assert.Equal(t, pixel.RGB(40, 80, 120), p)
	}
}

func TestBilinearUpsampleSinglePixel(t *testing.T) {
	src := filled(t, 1, 1, pixel.RGBA(3, 6, 9, 12))
	for _, dims := range [][2]int{{1, 1}, {5, 3}, {64, 17}} {
		dst, err := New(dims[0], dims[1])
		require.NoError(t, err)
		BilinearUpsample(dst, src)
		for _, p := range dst.Pix {
			require.Equal(t, pixel.RGBA(3, 6, 9, 12), p, "%v", dims)
		}
	}
}

func TestBilinearUpsampleDoubles(t *testing.T) {
	src, err := New(2, 1)
	require.NoError(t, err)
	src.SetPixelAt(0, 0, pixel.RGB(0, 0, 0))
	src.SetPixelAt(1, 0, pixel.RGB(200, 100, 40))

	dst, err := New(4, 1)
	require.NoError(t, err)
	BilinearUpsample(dst, src)

	// u = 0, 0.25, 0.5, 0.75 give fx = 0 (clamped), 0, 0.5, 1
	want := []pixel.Pixel{
		pixel.RGB(0, 0, 0),
		pixel.RGB(0, 0, 0),
		pixel.RGB(100, 50, 20),
		pixel.RGB(200, 100, 40),
	}
	assert.Equal(t, want, dst.Pix)
}

func TestScale(t *testing.T) {
	src := filled(t, 4, 4, pixel.RGB(10, 20, 30))
	for name := range Interpolators {
		dst, err := New(9, 3)
		require.NoError(t, err)
		require.NoError(t, ScaleNamed(dst, src, name))
		for _, p := range dst.Pix {
			require.Equal(t, pixel.RGB(10, 20, 30), p, name)
		}
	}

	dst, err := New(2, 2)
	require.NoError(t, err)
	assert.Error(t, ScaleNamed(dst, src, "lanczos"))
}

func TestDrawText(t *testing.T) {
	r := filled(t, 40, 16, pixel.Black)
	advance := DrawText(r, 1, 1, "Hi", pixel.White)
	assert.Equal(t, 14, advance)

	var white int
	for y := range r.Height {
		for x := range r.Width {
			switch p := r.PixelAt(x, y); p {
			case pixel.White:
				white++
				assert.True(t, x >= 1 && x < 15 && y >= 1 && y < 14, "glyph pixel at (%d, %d)", x, y)
			case pixel.Black:
			default:
				t.Fatalf("unexpected blended pixel %v at (%d, %d)", p, x, y)
			}
		}
	}
	assert.NotZero(t, white)

	// partly off-raster text must not panic
	DrawText(r, 35, 10, "clipped", pixel.White)
}
