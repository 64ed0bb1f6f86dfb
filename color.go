package termcore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color. The zero value represents the default
// foreground or background color
type Color uint32

const (
	indexed Color = 1 << 24
	rgb     Color = 1 << 25
)

// Params returns the SGR parameters for the color, or an empty slice if
// the color is the default color
func (c Color) Params() []uint8 {
	switch {
	case c&indexed != 0:
		return []uint8{uint8(c)}
	case c&rgb != 0:
		r := uint8(c >> 16)
		g := uint8(c >> 8)
		b := uint8(c)
		return []uint8{r, g, b}
	}
	return []uint8{}
}

// IsDefault reports whether c is the default color.
func (c Color) IsDefault() bool {
	return c&(indexed|rgb) == 0
}

// IsIndexed reports whether c is a palette index.
func (c Color) IsIndexed() bool {
	return c&indexed != 0
}

// RGB returns the 8-bit channels of an RGB color.
func (c Color) RGB() (uint8, uint8, uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func RGBColor(r uint8, g uint8, b uint8) Color {
	color := Color(int(r)<<16 | int(g)<<8 | int(b))
	return color | rgb
}

func IndexColor(index uint8) Color {
	color := Color(index)
	return color | indexed
}

// ParseColorSpec parses an XParseColor-style specification as used by
// OSC 4, 10, 11 and 12: "rgb:RR/GG/BB" with 1-4 hex digits per channel,
// or a "#RRGGBB" hex form.
func ParseColorSpec(spec string) (Color, bool) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "rgb:") {
		parts := strings.Split(spec[4:], "/")
		if len(parts) != 3 {
			return 0, false
		}
		var ch [3]uint8
		for i, part := range parts {
			if len(part) == 0 || len(part) > 4 {
				return 0, false
			}
			v, err := strconv.ParseUint(part, 16, 16)
			if err != nil {
				return 0, false
			}
			// scale to 8 bits from however many digits were given
			ch[i] = uint8(v * 0xff / ((1 << (4 * len(part))) - 1))
		}
		return RGBColor(ch[0], ch[1], ch[2]), true
	}
	if strings.HasPrefix(spec, "#") {
		c, err := colorful.Hex(spec)
		if err != nil {
			return 0, false
		}
		r, g, b := c.RGB255()
		return RGBColor(r, g, b), true
	}
	return 0, false
}

// SpecString renders c in the "rgb:RRRR/GGGG/BBBB" form OSC color
// queries respond with.
func (c Color) SpecString() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", r, r, g, g, b, b)
}
