package palette

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"rasterkit/parallel"
	"rasterkit/pixel"
	"rasterkit/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRIFFRoundTrip(t *testing.T) {
	a := Palette{pixel.RGB(1, 2, 3), pixel.RGB(250, 128, 0)}
	b := Palette{pixel.White}

	var buf bytes.Buffer
	n, err := WriteRIFF(&buf, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, 12+(8+4+8)+(8+4+4), buf.Len())

	raw := buf.Bytes()
	assert.Equal(t, "RIFF", string(raw[:4]))
	assert.Equal(t, uint32(buf.Len()-8), binary.LittleEndian.Uint32(raw[4:8]))
	assert.Equal(t, "PAL data", string(raw[8:16]))
	assert.Equal(t, []byte{0x00, 0x03, 2, 0}, raw[20:24], "version 0x0300 little endian, then count")

	pals, err := ReadRIFF(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, []Palette{a, b}, pals)
}

func TestReadRIFFList(t *testing.T) {
	var inner bytes.Buffer
	_, err := WriteRIFF(&inner, Palette{pixel.Black, pixel.White})
	require.NoError(t, err)
	chunk := inner.Bytes()[12:]

	var buf bytes.Buffer
	body := append([]byte("PAL "), chunk...)
	buf.WriteString("RIFF")
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(4+8+len(body))))
	buf.WriteString("PAL ")
	buf.WriteString("LIST")
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(body))))
	buf.Write(body)

	pals, err := ReadRIFF(&buf)
	require.NoError(t, err)
	assert.Equal(t, []Palette{{pixel.Black, pixel.White}}, pals)
}

func TestReadRIFFErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteRIFF(&buf, Palette{pixel.Black})
	require.NoError(t, err)
	good := buf.Bytes()

	badVersion := bytes.Clone(good)
	badVersion[20], badVersion[21] = 0x00, 0x04
	_, err = ReadRIFF(bytes.NewReader(badVersion))
	assert.ErrorIs(t, err, ErrUnsupported)

	badForm := bytes.Clone(good)
	copy(badForm[8:12], "WAVE")
	_, err = ReadRIFF(bytes.NewReader(badForm))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = ReadRIFF(bytes.NewReader(good[:6]))
	assert.Error(t, err)
}

func TestLoadBuiltins(t *testing.T) {
	for name, size := range map[string]int{"bw": 2, "gray16": 16, "cga16": 16, "CGA16": 16} {
		p, err := Load(name)
		require.NoError(t, err, name)
		assert.Len(t, p, size, name)
	}

	g, err := Load("gray16")
	require.NoError(t, err)
	assert.Equal(t, pixel.Black, g[0])
	assert.Equal(t, pixel.RGB(255, 255, 255), g[15])

	cga, err := Load("cga16")
	require.NoError(t, err)
	assert.Equal(t, pixel.RGB(0xaa, 0x55, 0x00), cga[6])
	assert.Equal(t, pixel.RGB(0xff, 0xff, 0xff), cga[15])
	assert.Equal(t, pixel.RGB(0x55, 0x55, 0xff), cga[9])

	_, err = Load(filepath.Join(t.TempDir(), "missing.pal"))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.pal")
	p := Palette{pixel.RGB(10, 20, 30), pixel.RGB(40, 50, 60)}
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	empty := filepath.Join(t.TempDir(), "e.pal")
	require.NoError(t, Save(empty, Palette{}))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestIndexConvert(t *testing.T) {
	p := Palette{pixel.Black, pixel.RGB(128, 128, 128), pixel.White}
	assert.Equal(t, 0, p.Index(pixel.RGB(10, 10, 10)))
	assert.Equal(t, 1, p.Index(pixel.RGB(100, 140, 128)))
	assert.Equal(t, 2, p.Index(pixel.White))
	assert.Equal(t, pixel.RGB(128, 128, 128), p.Convert(pixel.RGB(120, 120, 120)))
	assert.Equal(t, pixel.White, p.Model().Convert(pixel.RGB(250, 250, 250)))

	assert.Equal(t, pixel.RGB(5, 6, 7), Palette{}.Convert(pixel.RGB(5, 6, 7)))
}

func twoTone(t *testing.T) *raster.Raster {
	t.Helper()
	r, err := raster.New(8, 4)
	require.NoError(t, err)
	for y := range 4 {
		for x := range 8 {
			if x < 4 {
				r.SetPixelAt(x, y, pixel.RGB(200, 20, 20))
			} else {
				r.SetPixelAt(x, y, pixel.RGB(20, 20, 200))
			}
		}
	}
	return r
}

func TestQuantize(t *testing.T) {
	r := twoTone(t)
	p, err := Quantize(r, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, p)
	assert.LessOrEqual(t, len(p), 4)
	red := p.Convert(pixel.RGB(200, 20, 20))
	blue := p.Convert(pixel.RGB(20, 20, 200))
	assert.Greater(t, red.R, red.B)
	assert.Greater(t, blue.B, blue.R)

	_, err = Quantize(r, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Quantize(&raster.Raster{}, 4)
	assert.ErrorIs(t, err, raster.ErrEmpty)
}

func TestRemap(t *testing.T) {
	src := twoTone(t)
	bw, err := Load("bw")
	require.NoError(t, err)

	var dst raster.Raster
	require.NoError(t, Remap(&dst, src, bw, false))
	assert.Equal(t, 8, dst.Width)
	for _, c := range dst.Pix {
		assert.Equal(t, pixel.Black, c)
	}

	p := Palette{pixel.RGB(200, 20, 20), pixel.RGB(20, 20, 200)}
	require.NoError(t, Remap(&dst, src, p, true))
	assert.Equal(t, src.Pix, dst.Pix, "exact colours never diffuse error")

	assert.ErrorIs(t, Remap(&dst, src, nil, true), ErrUnsupported)
}

func TestCLICmd(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "tones.png")
	require.NoError(t, raster.Save(img, twoTone(t)))

	c := &CLICmd{Images: []string{img, filepath.Join(dir, "missing.png")}, Colors: 4, Dest: filepath.Join(dir, "pals")}
	require.NoError(t, c.Validate(nil))

	pool := parallel.Start(1)
	assert.EqualError(t, c.Run(pool.Do, pool.Wait), "error processing 1 files")

	_, err := os.Stat(filepath.Join(dir, "pals", "tones.pal"))
	require.NoError(t, err)
	p, err := Load(filepath.Join(dir, "pals", "tones.pal"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(p), 4)

	assert.Equal(t, filepath.Join(dir, "a.pal"), (&CLICmd{}).destination(filepath.Join(dir, "a.png")))

	bad := &CLICmd{Colors: 300}
	assert.Error(t, bad.Validate(nil))
}
