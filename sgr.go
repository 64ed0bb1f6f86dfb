package termcore

import (
	"strconv"

	"git.sr.ht/~mglyn/termcore/ansi"
	"git.sr.ht/~mglyn/termcore/log"
)

// sgrParams renders the style as SGR parameters, the form DECRQSS m
// answers with. A default style yields just the reset parameter.
func (st Style) sgrParams() []string {
	params := []string{"0"}
	if st.Attribute&AttrBold != 0 {
		params = append(params, "1")
	}
	if st.Attribute&AttrDim != 0 {
		params = append(params, "2")
	}
	if st.Attribute&AttrItalic != 0 {
		params = append(params, "3")
	}
	if st.UnderlineStyle != UnderlineOff {
		params = append(params, "4:"+strconv.Itoa(int(st.UnderlineStyle)))
	}
	if st.Attribute&AttrBlink != 0 {
		params = append(params, "5")
	}
	if st.Attribute&AttrRapidBlink != 0 {
		params = append(params, "6")
	}
	if st.Attribute&AttrReverse != 0 {
		params = append(params, "7")
	}
	if st.Attribute&AttrInvisible != 0 {
		params = append(params, "8")
	}
	if st.Attribute&AttrStrikethrough != 0 {
		params = append(params, "9")
	}
	if st.Attribute&AttrOverline != 0 {
		params = append(params, "53")
	}
	params = append(params, colorParams(st.Foreground, 38, 30, 90)...)
	params = append(params, colorParams(st.Background, 48, 40, 100)...)
	if !st.UnderlineColor.IsDefault() {
		params = append(params, colorParams(st.UnderlineColor, 58, 0, 0)...)
	}
	return params
}

func colorParams(c Color, extended, base, bright int) []string {
	switch {
	case c.IsDefault():
		return nil
	case c.IsIndexed():
		idx := int(uint8(c))
		if base > 0 && idx < 8 {
			return []string{strconv.Itoa(base + idx)}
		}
		if bright > 0 && idx >= 8 && idx < 16 {
			return []string{strconv.Itoa(bright + idx - 8)}
		}
		return []string{strconv.Itoa(extended) + ":5:" + strconv.Itoa(idx)}
	default:
		r, g, b := c.RGB()
		return []string{strconv.Itoa(extended) + ":2::" +
			strconv.Itoa(int(r)) + ":" + strconv.Itoa(int(g)) + ":" + strconv.Itoa(int(b))}
	}
}

// applySGR executes a select-graphic-rendition sequence against the
// cursor brush. Both the legacy semicolon form (38;2;r;g;b) and the
// colon sub-parameter form (38:2::r:g:b) are accepted; the sub-parameter
// form keeps the colorspace slot, so the two remain distinguishable.
func (s *Screen) applySGR(seq ansi.Sequence) {
	params := seq.Params
	if len(params) == 0 {
		params = []ansi.Param{{}}
	}
	st := &s.cursor.style
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch p.Value {
		case 0:
			*st = Style{}
		case 1:
			st.Attribute |= AttrBold
		case 2:
			st.Attribute |= AttrDim
		case 3:
			st.Attribute |= AttrItalic
		case 4:
			switch sub(p, 0, 1) {
			case 0:
				st.UnderlineStyle = UnderlineOff
			case 1:
				st.UnderlineStyle = UnderlineSingle
			case 2:
				st.UnderlineStyle = UnderlineDouble
			case 3:
				st.UnderlineStyle = UnderlineCurly
			case 4:
				st.UnderlineStyle = UnderlineDotted
			case 5:
				st.UnderlineStyle = UnderlineDashed
			default:
				st.UnderlineStyle = UnderlineSingle
			}
		case 5:
			st.Attribute |= AttrBlink
		case 6:
			st.Attribute |= AttrRapidBlink
		case 7:
			st.Attribute |= AttrReverse
		case 8:
			st.Attribute |= AttrInvisible
		case 9:
			st.Attribute |= AttrStrikethrough
		case 21:
			st.UnderlineStyle = UnderlineDouble
		case 22:
			st.Attribute &^= AttrBold
			st.Attribute &^= AttrDim
		case 23:
			st.Attribute &^= AttrItalic
		case 24:
			st.UnderlineStyle = UnderlineOff
		case 25:
			st.Attribute &^= AttrBlink
			st.Attribute &^= AttrRapidBlink
		case 27:
			st.Attribute &^= AttrReverse
		case 28:
			st.Attribute &^= AttrInvisible
		case 29:
			st.Attribute &^= AttrStrikethrough
		case 30, 31, 32, 33, 34, 35, 36, 37:
			st.Foreground = IndexColor(uint8(p.Value - 30))
		case 38:
			color, skip, ok := extendedColor(params, i)
			if !ok {
				log.Debug("malformed SGR sequence: %s", seq)
				return
			}
			st.Foreground = color
			i += skip
		case 39:
			st.Foreground = 0
		case 40, 41, 42, 43, 44, 45, 46, 47:
			st.Background = IndexColor(uint8(p.Value - 40))
		case 48:
			color, skip, ok := extendedColor(params, i)
			if !ok {
				log.Debug("malformed SGR sequence: %s", seq)
				return
			}
			st.Background = color
			i += skip
		case 49:
			st.Background = 0
		case 53:
			st.Attribute |= AttrOverline
		case 55:
			st.Attribute &^= AttrOverline
		case 58:
			color, skip, ok := extendedColor(params, i)
			if !ok {
				log.Debug("malformed SGR sequence: %s", seq)
				return
			}
			st.UnderlineColor = color
			i += skip
		case 59:
			st.UnderlineColor = 0
		case 90, 91, 92, 93, 94, 95, 96, 97:
			st.Foreground = IndexColor(uint8(p.Value - 90 + 8))
		case 100, 101, 102, 103, 104, 105, 106, 107:
			st.Background = IndexColor(uint8(p.Value - 100 + 8))
		}
	}
}

func sub(p ansi.Param, i, def int) int {
	if i >= len(p.Sub) {
		return def
	}
	return p.Sub[i]
}

// extendedColor decodes the color of an SGR 38/48/58 introducer at
// params[i]. It returns the number of extra top-level parameters
// consumed (zero for the colon form).
func extendedColor(params []ansi.Param, i int) (Color, int, bool) {
	p := params[i]
	if len(p.Sub) > 0 {
		switch p.Sub[0] {
		case 2:
			// 38:2:colorspace:r:g:b or the legacy 38:2:r:g:b
			if len(p.Sub) >= 5 {
				return RGBColor(uint8(sub(p, 2, 0)), uint8(sub(p, 3, 0)), uint8(sub(p, 4, 0))), 0, true
			}
			if len(p.Sub) == 4 {
				return RGBColor(uint8(sub(p, 1, 0)), uint8(sub(p, 2, 0)), uint8(sub(p, 3, 0))), 0, true
			}
			return 0, 0, false
		case 5:
			if len(p.Sub) >= 2 {
				return IndexColor(uint8(p.Sub[1])), 0, true
			}
			return 0, 0, false
		}
		return 0, 0, false
	}
	// semicolon form: colorspace and channels are separate parameters
	if i+1 >= len(params) {
		return 0, 0, false
	}
	switch params[i+1].Value {
	case 2:
		if i+4 >= len(params) {
			return 0, 0, false
		}
		return RGBColor(
			uint8(params[i+2].Value),
			uint8(params[i+3].Value),
			uint8(params[i+4].Value),
		), 4, true
	case 5:
		if i+2 >= len(params) {
			return 0, 0, false
		}
		return IndexColor(uint8(params[i+2].Value)), 2, true
	}
	return 0, 0, false
}
