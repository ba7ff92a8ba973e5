package zraster

import (
	"fmt"
	"image/color"
	"math"
)

// RGB is an opaque color with 8-bit red, green and blue channels.
type RGB struct {
	R, G, B uint8
}

// Color converts RGB to the standard color.Color interface.
// Alpha is always fully opaque.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
// Premultiplied channels are un-premultiplied first.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}

// ParseHex parses a color in the strict "#RRGGBB" form.
// Hex digits are case-insensitive. Any other form, including the short
// "#RGB" form, reports ok == false.
func ParseHex(s string) (c RGB, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, false
	}
	var ch [3]uint8
	for i := range ch {
		hi, ok1 := hexDigit(s[1+2*i])
		lo, ok2 := hexDigit(s[2+2*i])
		if !ok1 || !ok2 {
			return RGB{}, false
		}
		ch[i] = hi<<4 | lo
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is intended for package-level color constants.
func MustParseHex(s string) RGB {
	c, ok := ParseHex(s)
	if !ok {
		panic("zraster: malformed hex color " + s)
	}
	return c
}

// hexDigit decodes a single hex digit.
func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Mix3 returns the weighted combination fa*a + fb*b + fc*c per channel.
// Weights are not normalized. Each channel is rounded half to even and
// clamped to [0, 255]; a NaN channel becomes 0.
func Mix3(a, b, c RGB, fa, fb, fc float64) RGB {
	return RGB{
		R: clampRound(fa*float64(a.R) + fb*float64(b.R) + fc*float64(c.R)),
		G: clampRound(fa*float64(a.G) + fb*float64(b.G) + fc*float64(c.G)),
		B: clampRound(fa*float64(a.B) + fb*float64(b.B) + fc*float64(c.B)),
	}
}

// clampRound converts x to a byte the way a clamped 8-bit store does:
// NaN becomes 0, values are clamped to [0, 255] and rounded half to even.
func clampRound(x float64) uint8 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint8(math.RoundToEven(x))
}

// Common colors
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Red   = RGB{255, 0, 0}
	Green = RGB{0, 255, 0}
	Blue  = RGB{0, 0, 255}

	// Paper is the default background, a very light gray.
	Paper = RGB{250, 250, 250}
)
