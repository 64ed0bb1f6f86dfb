package termcore

// AttributeMask represents a bitmask of boolean attributes to style a cell
type AttributeMask uint16

const (
	AttrNone               = 0
	AttrBold AttributeMask = 1 << iota
	AttrDim
	AttrItalic
	AttrBlink
	AttrRapidBlink
	AttrReverse
	AttrInvisible
	AttrStrikethrough
	AttrOverline
)

// UnderlineStyle represents the style of underline to apply
type UnderlineStyle uint8

const (
	UnderlineOff UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Style contains all the data required to style a [Cell]
type Style struct {
	// Foreground is the color to apply to the foreground of this cell
	Foreground Color
	// Background is the color to apply to the background of this cell
	Background Color
	// UnderlineColor is the color to apply to the underline of this
	// cell, if supported
	UnderlineColor Color
	// UnderlineStyle is the type of underline to apply (single, double,
	// curly, etc)
	UnderlineStyle UnderlineStyle
	// Attribute represents all other style information for this cell
	// (bold, dim, italic, etc)
	Attribute AttributeMask
}

// IsDefault reports whether s carries no styling at all.
func (s Style) IsDefault() bool {
	return s == Style{}
}

// fill returns the style an erased cell takes: background color erase
// keeps the background, everything else resets.
func (s Style) fill() Style {
	return Style{Background: s.Background}
}
