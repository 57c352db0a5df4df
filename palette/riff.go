package palette

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"rasterkit/pixel"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF returns every palette of a RIFF PAL stream in file order,
// descending into LIST chunks of type PAL. Entries are opaque; peFlags is
// ignored.
func ReadRIFF(r io.Reader) ([]Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("%w: RIFF content type %q", ErrUnsupported, string(formType[:]))
	}

	return readPalettes(rd, "PAL")
}

func readPalettes(r *riff.Reader, ident string) ([]Palette, error) {
	var res []Palette

	for {
		id, size, data, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return res, nil
			}
			return res, fmt.Errorf("could not read chunk %s#%d: %w", ident, len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list from chunk %s#%d: %w", ident, len(res), err)
			} else if listType != palType {
				return res, fmt.Errorf("%w: chunk %s#%d list type %q", ErrUnsupported, ident, len(res), string(listType[:]))
			}

			listRes, err := readPalettes(list, fmt.Sprintf("%s#%d.LIST", ident, len(res)))
			res = append(res, listRes...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s#%d", ident, len(res)))
			if err != nil {
				return res, err
			}
			res = append(res, pal)
		default:
			return res, fmt.Errorf("%w: chunk type %q in %s#%d", ErrUnsupported, string(id[:]), ident, len(res))
		}
	}
}

func readPalette(r io.Reader, ident string) (Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(hdr[:2]); ver != palVersion {
		return nil, fmt.Errorf("%w: palette version %#04x in chunk %s", ErrUnsupported, ver, ident)
	}

	count := int(binary.LittleEndian.Uint16(hdr[2:]))
	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read %d colours from chunk %s: %w", count, ident, err)
	}

	res := make(Palette, count)
	for i := range res {
		res[i] = pixel.RGB(buf[4*i], buf[4*i+1], buf[4*i+2])
	}
	return res, nil
}

// WriteRIFF writes pals as consecutive data chunks of one RIFF PAL form and
// returns the number of bytes written.
func WriteRIFF(w io.Writer, pals ...Palette) (int64, error) {
	size := 4
	for i, pal := range pals {
		if len(pal) > 0xffff {
			return 0, fmt.Errorf("%w: palette %d has %d colours", ErrUnsupported, i, len(pal))
		}
		size += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	var buf bytes.Buffer
	buf.Grow(8 + size)
	buf.Write(riffType[:])
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(size)))
	buf.Write(palType[:])

	for _, pal := range pals {
		buf.Write(dataType[:])
		buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(4+len(pal)*4)))
		buf.Write(binary.LittleEndian.AppendUint16(nil, palVersion))
		buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(len(pal))))
		for _, c := range pal {
			buf.Write([]byte{c.R, c.G, c.B, 0x00})
		}
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("could not write RIFF stream: %w", err)
	} else if n != buf.Len() {
		return int64(n), fmt.Errorf("wrote only %d/%d bytes", n, buf.Len())
	}
	return int64(n), nil
}
