package termcore

import (
	"git.sr.ht/~mglyn/termcore/ansi"
)

// esc executes an ESC-dispatched control function.
func (t *Terminal) esc(seq ansi.Sequence) {
	s := t.active
	switch seq.Intermediate() {
	case 0:
		switch seq.Final {
		case '7': // DECSC
			s.saveCursor()
		case '8': // DECRC
			s.restoreCursor()
		case 'D': // IND
			s.index()
		case 'E': // NEL
			s.nextLine()
		case 'H': // HTS
			s.tabs.set(s.cursor.col)
		case 'M': // RI
			s.reverseIndex()
		case 'N': // SS2
			s.charsets.singleShiftTo(g2)
		case 'O': // SS3
			s.charsets.singleShiftTo(g3)
		case 'Z': // DECID
			t.reply("\x1b[?62;4;22c")
		case 'c': // RIS
			t.fullReset()
		case '=': // DECPAM
			t.modes.deckpam = true
		case '>': // DECPNM
			t.modes.deckpam = false
		case '\\': // ST terminating a string sequence
		default:
			t.unknown.Warn(seq.String(), "unhandled sequence: %s", seq)
		}
	case '(':
		s.charsets.designate(g0, seq.Final)
	case ')':
		s.charsets.designate(g1, seq.Final)
	case '*':
		s.charsets.designate(g2, seq.Final)
	case '+':
		s.charsets.designate(g3, seq.Final)
	case '#':
		if seq.Final == '8' { // DECALN
			s.alignmentTest()
		}
	case ' ':
		// 7-bit/8-bit control announcements carry no state here
	default:
		t.unknown.Warn(seq.String(), "unhandled sequence: %s", seq)
	}
}
