package termcore

import (
	"fmt"
	"unicode"
)

// ModifierMask is a bitmask of held modifiers.
type ModifierMask int

const (
	ModShift ModifierMask = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// EventType is an input event type (press, repeat, release, etc)
type EventType int

const (
	// The event type could not be determined
	EventUnknown EventType = iota
	// The key / button was pressed
	EventPress
	// The key / button was repeated
	EventRepeat
	// The key / button was released
	EventRelease
	// The mouse moved
	EventMotion
)

// Key is one keyboard event. Non-text keys use the constants below.
type Key struct {
	Codepoint rune
	Modifiers ModifierMask
	EventType EventType
}

// Special keys, mapped into the Unicode private use area.
const (
	KeyUp rune = 0xE000 + iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPgUp
	KeyPgDown
	KeyF01
	KeyF02
	KeyF03
	KeyF04
	KeyF05
	KeyF06
	KeyF07
	KeyF08
	KeyF09
	KeyF10
	KeyF11
	KeyF12
)

const (
	KeyTab       = 0x09
	KeyEnter     = 0x0D
	KeyEsc       = 0x1B
	KeySpace     = 0x20
	KeyBackspace = 0x7F
)

// inputEncoder translates input events into PTY bytes according to the
// live mode set. It is pure: encoding never mutates the grid.
type inputEncoder struct {
	modes *modes
	// modifyOtherKeys level (CSI > 4 ; n m), 0..2
	modifyOtherKeys int
}

// encodeKey returns the byte sequence for a key event, or "" when the
// event does not encode (e.g. releases, bare modifiers).
func (e *inputEncoder) encodeKey(key Key) string {
	if key.EventType == EventRelease {
		return ""
	}
	if e.modes.kam {
		return ""
	}
	if key.Modifiers&^(ModCapsLock|ModNumLock) == 0 {
		if kc, ok := cursorKeymap[key.Codepoint]; ok {
			if e.modes.decckm {
				return "\x1bO" + string(kc)
			}
			return "\x1b[" + string(kc)
		}
	}
	if kc, ok := xtermKeymap[key.Codepoint]; ok {
		if key.Modifiers == 0 {
			if kc.number == 1 {
				return fmt.Sprintf("\x1b%c%c", kc.intro, kc.final)
			}
			return fmt.Sprintf("\x1b[%d%c", kc.number, kc.final)
		}
		return fmt.Sprintf("\x1b[%d;%d%c", kc.number, encodeModifiers(key.Modifiers), kc.final)
	}
	if key.Codepoint == KeyEnter && e.modes.lnm {
		return "\r\n"
	}
	return e.encodeText(key)
}

func (e *inputEncoder) encodeText(key Key) string {
	r := key.Codepoint
	if r >= 0xE000 && r <= 0xF8FF {
		return ""
	}
	mods := key.Modifiers &^ (ModCapsLock | ModNumLock)
	// at level 2, every modified key gets the unambiguous escape form
	if e.modifyOtherKeys >= 2 && mods != 0 && mods != ModShift {
		return fmt.Sprintf("\x1b[27;%d;%d~", encodeModifiers(key.Modifiers), r)
	}
	switch mods &^ ModShift {
	case 0:
		return string(r)
	case ModAlt:
		return "\x1b" + string(r)
	case ModCtrl:
		if ctrl, ok := ctrlByte(r); ok {
			return string(ctrl)
		}
	case ModCtrl | ModAlt:
		if ctrl, ok := ctrlByte(r); ok {
			return "\x1b" + string(ctrl)
		}
	}
	if e.modifyOtherKeys >= 1 && mods != 0 {
		return fmt.Sprintf("\x1b[27;%d;%d~", encodeModifiers(key.Modifiers), r)
	}
	return string(r)
}

// ctrlByte maps a codepoint to its control character.
func ctrlByte(r rune) (rune, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return r - 0x60, true
	case r >= '@' && r <= '_':
		return r - 0x40, true
	case r == ' ':
		return 0, true
	case unicode.IsUpper(r):
		return r - 0x40, true
	}
	return 0, false
}

// encodeModifiers produces the xterm modifier parameter (mask + 1).
func encodeModifiers(mods ModifierMask) int {
	param := 0
	if mods&ModShift != 0 {
		param |= 1
	}
	if mods&ModAlt != 0 {
		param |= 2
	}
	if mods&ModCtrl != 0 {
		param |= 4
	}
	if mods&ModMeta != 0 {
		param |= 8
	}
	return param + 1
}

// encodeFocus reports focus transitions when mode 1004 is set.
func (e *inputEncoder) encodeFocus(in bool) string {
	if !e.modes.focusEvents {
		return ""
	}
	if in {
		return "\x1b[I"
	}
	return "\x1b[O"
}

// encodePaste wraps pasted text in bracketed-paste markers when mode
// 2004 is set.
func (e *inputEncoder) encodePaste(text string) string {
	if e.modes.paste {
		return "\x1b[200~" + text + "\x1b[201~"
	}
	return text
}

type keycode struct {
	number int
	final  rune
	// intro is the two-character form introducer used when unmodified
	// (CSI for most keys, SS3 for F1-F4)
	intro rune
}

// cursorKeymap covers the keys affected by DECCKM.
var cursorKeymap = map[rune]rune{
	KeyUp:    'A',
	KeyDown:  'B',
	KeyRight: 'C',
	KeyLeft:  'D',
	KeyEnd:   'F',
	KeyHome:  'H',
}

var xtermKeymap = map[rune]keycode{
	KeyUp:     {1, 'A', '['},
	KeyDown:   {1, 'B', '['},
	KeyRight:  {1, 'C', '['},
	KeyLeft:   {1, 'D', '['},
	KeyEnd:    {1, 'F', '['},
	KeyHome:   {1, 'H', '['},
	KeyInsert: {2, '~', '['},
	KeyDelete: {3, '~', '['},
	KeyPgUp:   {5, '~', '['},
	KeyPgDown: {6, '~', '['},
	KeyF01:    {1, 'P', 'O'},
	KeyF02:    {1, 'Q', 'O'},
	KeyF03:    {1, 'R', 'O'},
	KeyF04:    {1, 'S', 'O'},
	KeyF05:    {15, '~', '['},
	KeyF06:    {17, '~', '['},
	KeyF07:    {18, '~', '['},
	KeyF08:    {19, '~', '['},
	KeyF09:    {20, '~', '['},
	KeyF10:    {21, '~', '['},
	KeyF11:    {23, '~', '['},
	KeyF12:    {24, '~', '['},
}
