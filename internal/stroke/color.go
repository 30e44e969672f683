package stroke

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for strings that are not #rgb, #rrggbb or
// #rrggbbaa.
var ErrBadColor = errors.New("invalid color")

var black = color.NRGBA{A: 255}

// ParseHex parses a hex color. The leading '#' is optional.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(h) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParseColor accepts an SVG color name such as "tomato" or anything
// ParseHex accepts.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return ParseHex(s)
}

// HexOrBlack is the lenient parser used for stored drawings: short input is
// right padded with zeros and anything unparseable becomes opaque black.
func HexOrBlack(s string) color.NRGBA {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 8 {
		if c, err := ParseHex(h); err == nil {
			return c
		}
		return black
	}
	if len(h) < 6 {
		h += strings.Repeat("0", 6-len(h))
	}
	c, err := ParseHex(h[:6])
	if err != nil {
		return black
	}
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 255 {
		return HexRGB(c)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// HexRGB formats the color channels of c as #rrggbb.
func HexRGB(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithOpacity returns c with its alpha set from a 0-100 percentage.
func WithOpacity(c color.NRGBA, percent float64) color.NRGBA {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.A = uint8(percent/100*255 + 0.5)
	return c
}
