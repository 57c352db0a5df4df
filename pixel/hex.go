package pixel

import (
	"fmt"
)

// ParseHex reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA. Short forms repeat each
// digit; forms without alpha are opaque.
func ParseHex(s string) (Pixel, error) {
	var p Pixel
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &p.R, &p.G, &p.B)
		if err != nil {
			return Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		p.R |= p.R << 4
		p.G |= p.G << 4
		p.B |= p.B << 4
		p.A = 0xff
	case 5:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x%1x", &p.R, &p.G, &p.B, &p.A)
		if err != nil {
			return Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 4 {
			return Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		p.R |= p.R << 4
		p.G |= p.G << 4
		p.B |= p.B << 4
		p.A |= p.A << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &p.R, &p.G, &p.B)
		if err != nil {
			return Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		p.A = 0xff
	case 9:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x%2x", &p.R, &p.G, &p.B, &p.A)
		if err != nil {
			return Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 4 {
			return Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return Pixel{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	return p, nil
}

// Hex formats the pixel as #RRGGBBAA.
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", p.R, p.G, p.B, p.A)
}
