package termcore

import (
	"git.sr.ht/~mglyn/termcore/ansi"
)

// csiKey packs the selector tuple for the handler table. Category is
// implied: the table only holds CSI entries.
func csiKey(leader, intermediate, final byte) uint32 {
	return uint32(leader)<<16 | uint32(intermediate)<<8 | uint32(final)
}

type csiHandler func(*Terminal, ansi.Sequence)

// csiTable is the precomputed dispatch table keyed on
// (leader, intermediates, final), built once at package init.
var csiTable map[uint32]csiHandler

func init() {
	csiTable = map[uint32]csiHandler{
		csiKey(0, 0, '@'): func(t *Terminal, q ansi.Sequence) {
			s := t.active
			s.insertCells(clamp(s.cursor.row, 0, s.rows()-1), clamp(s.cursor.col, 0, s.cols()-1), q.Param(0, 1))
		},
		csiKey(0, 0, 'A'): func(t *Terminal, q ansi.Sequence) { t.active.cursorUp(q.Param(0, 1)) },
		csiKey(0, 0, 'B'): func(t *Terminal, q ansi.Sequence) { t.active.cursorDown(q.Param(0, 1)) },
		csiKey(0, 0, 'C'): func(t *Terminal, q ansi.Sequence) { t.active.cursorForward(q.Param(0, 1)) },
		csiKey(0, 0, 'D'): func(t *Terminal, q ansi.Sequence) { t.active.cursorBack(q.Param(0, 1)) },
		csiKey(0, 0, 'E'): func(t *Terminal, q ansi.Sequence) {
			t.active.cursorDown(q.Param(0, 1))
			t.active.carriageReturn()
		},
		csiKey(0, 0, 'F'): func(t *Terminal, q ansi.Sequence) {
			t.active.cursorUp(q.Param(0, 1))
			t.active.carriageReturn()
		},
		csiKey(0, 0, 'G'): func(t *Terminal, q ansi.Sequence) { t.active.cursorColumn(q.Param(0, 1) - 1) },
		csiKey(0, 0, 'H'): func(t *Terminal, q ansi.Sequence) {
			t.active.moveCursorTo(q.Param(0, 1)-1, q.Param(1, 1)-1)
		},
		csiKey(0, 0, 'f'): func(t *Terminal, q ansi.Sequence) {
			t.active.moveCursorTo(q.Param(0, 1)-1, q.Param(1, 1)-1)
		},
		csiKey(0, 0, 'I'): func(t *Terminal, q ansi.Sequence) { t.active.forwardTab(q.Param(0, 1)) },
		csiKey(0, 0, 'J'): func(t *Terminal, q ansi.Sequence) { t.active.eraseInDisplay(q.ParamOrZero(0)) },
		csiKey('?', 0, 'J'): func(t *Terminal, q ansi.Sequence) {
			// DECSED: selective erase is approximated by plain erase
			t.active.eraseInDisplay(q.ParamOrZero(0))
		},
		csiKey(0, 0, 'K'):   func(t *Terminal, q ansi.Sequence) { t.active.eraseInLine(q.ParamOrZero(0)) },
		csiKey('?', 0, 'K'): func(t *Terminal, q ansi.Sequence) { t.active.eraseInLine(q.ParamOrZero(0)) },
		csiKey(0, 0, 'L'):   func(t *Terminal, q ansi.Sequence) { t.active.insertLines(q.Param(0, 1)) },
		csiKey(0, 0, 'M'):   func(t *Terminal, q ansi.Sequence) { t.active.deleteLines(q.Param(0, 1)) },
		csiKey(0, 0, 'P'): func(t *Terminal, q ansi.Sequence) {
			s := t.active
			s.deleteCells(clamp(s.cursor.row, 0, s.rows()-1), clamp(s.cursor.col, 0, s.cols()-1), q.Param(0, 1))
		},
		csiKey(0, 0, 'S'): func(t *Terminal, q ansi.Sequence) { t.active.scrollUpLines(q.Param(0, 1)) },
		csiKey(0, 0, 'T'): func(t *Terminal, q ansi.Sequence) { t.active.scrollDownLines(q.Param(0, 1)) },
		csiKey(0, 0, 'X'): func(t *Terminal, q ansi.Sequence) { t.active.eraseChars(q.Param(0, 1)) },
		csiKey(0, 0, 'Z'): func(t *Terminal, q ansi.Sequence) { t.active.backwardTab(q.Param(0, 1)) },
		csiKey(0, 0, '`'): func(t *Terminal, q ansi.Sequence) { t.active.cursorColumn(q.Param(0, 1) - 1) },
		csiKey(0, 0, 'a'): func(t *Terminal, q ansi.Sequence) { t.active.cursorForward(q.Param(0, 1)) },
		csiKey(0, 0, 'b'): func(t *Terminal, q ansi.Sequence) { t.repeatLast(q.Param(0, 1)) },
		csiKey(0, 0, 'c'): func(t *Terminal, q ansi.Sequence) {
			if q.ParamOrZero(0) == 0 {
				// VT220 with sixel and ANSI color
				t.reply("\x1b[?62;4;22c")
			}
		},
		csiKey('>', 0, 'c'): func(t *Terminal, q ansi.Sequence) {
			if q.ParamOrZero(0) == 0 {
				t.reply("\x1b[>1;10;0c")
			}
		},
		csiKey(0, 0, 'd'): func(t *Terminal, q ansi.Sequence) { t.active.cursorRow(q.Param(0, 1) - 1) },
		csiKey(0, 0, 'e'): func(t *Terminal, q ansi.Sequence) { t.active.cursorDown(q.Param(0, 1)) },
		csiKey(0, 0, 'g'): func(t *Terminal, q ansi.Sequence) {
			switch q.ParamOrZero(0) {
			case 0:
				t.active.tabs.clear(t.active.cursor.col)
			case 3:
				t.active.tabs.clearAll()
			}
		},
		csiKey(0, 0, 'h'):   func(t *Terminal, q ansi.Sequence) { t.setAnsiModes(q, true) },
		csiKey(0, 0, 'l'):   func(t *Terminal, q ansi.Sequence) { t.setAnsiModes(q, false) },
		csiKey('?', 0, 'h'): func(t *Terminal, q ansi.Sequence) { t.setPrivateModes(q, true) },
		csiKey('?', 0, 'l'): func(t *Terminal, q ansi.Sequence) { t.setPrivateModes(q, false) },
		csiKey(0, 0, 'm'):   func(t *Terminal, q ansi.Sequence) { t.active.applySGR(q) },
		csiKey('>', 0, 'm'): func(t *Terminal, q ansi.Sequence) {
			// XTMODKEYS: resource 4 is modifyOtherKeys
			if q.ParamOrZero(0) == 4 {
				t.enc.modifyOtherKeys = clamp(q.ParamOrZero(1), 0, 2)
			}
		},
		csiKey(0, 0, 'n'): func(t *Terminal, q ansi.Sequence) {
			switch q.ParamOrZero(0) {
			case 5:
				t.reply("\x1b[0n")
			case 6:
				row, col := t.originRelativeCursor()
				t.reply("\x1b[%d;%dR", row+1, col+1)
			}
		},
		csiKey('?', 0, 'n'): func(t *Terminal, q ansi.Sequence) {
			if q.ParamOrZero(0) == 6 {
				// DECXCPR includes a page parameter
				row, col := t.originRelativeCursor()
				t.reply("\x1b[?%d;%d;1R", row+1, col+1)
			}
		},
		csiKey('?', '$', 'p'): func(t *Terminal, q ansi.Sequence) {
			code := q.ParamOrZero(0)
			t.reply("\x1b[?%d;%d$y", code, t.modes.report(true, code))
		},
		csiKey(0, '$', 'p'): func(t *Terminal, q ansi.Sequence) {
			code := q.ParamOrZero(0)
			t.reply("\x1b[%d;%d$y", code, t.modes.report(false, code))
		},
		csiKey(0, '!', 'p'): func(t *Terminal, q ansi.Sequence) { t.softReset() },
		csiKey(0, ' ', 'q'): func(t *Terminal, q ansi.Sequence) {
			style := q.ParamOrZero(0)
			if style <= int(CursorStyleBar) {
				t.cursorVis.style = CursorStyle(style)
			}
		},
		csiKey('>', 0, 'q'): func(t *Terminal, q ansi.Sequence) {
			if q.ParamOrZero(0) == 0 {
				t.reply("\x1bP>|termcore(%s)\x1b\\", Version)
			}
		},
		csiKey(0, 0, 'r'): func(t *Terminal, q ansi.Sequence) {
			t.active.setVerticalMargins(q.Param(0, 1), q.Param(1, t.active.rows()))
		},
		csiKey(0, 0, 's'): func(t *Terminal, q ansi.Sequence) {
			if t.modes.declrmm {
				t.active.setHorizontalMargins(q.Param(0, 1), q.Param(1, t.active.cols()))
				return
			}
			t.active.saveCursor()
		},
		csiKey(0, 0, 'u'): func(t *Terminal, q ansi.Sequence) { t.active.restoreCursor() },
		csiKey(0, 0, 't'): func(t *Terminal, q ansi.Sequence) { t.windowOp(q) },
		csiKey('?', 0, 'W'): func(t *Terminal, q ansi.Sequence) {
			if q.ParamOrZero(0) == 5 {
				t.active.tabs.reset()
			}
		},
	}
}

// csi dispatches one CSI sequence through the table; unknown selectors
// log once and no-op.
func (t *Terminal) csi(seq ansi.Sequence) {
	h, ok := csiTable[csiKey(seq.Leader, seq.Intermediate(), seq.Final)]
	if !ok {
		t.unknown.Warn(seq.String(), "unhandled sequence: %s", seq)
		return
	}
	h(t, seq)
}

// originRelativeCursor reports the cursor the way CPR must: relative to
// the margins while origin mode is on.
func (t *Terminal) originRelativeCursor() (row, col int) {
	s := t.active
	row, col = s.cursor.row, s.cursor.col
	if t.modes.decom {
		row -= s.margins.top
		col -= s.leftMargin()
	}
	return row, col
}

// repeatLast implements REP for the most recently printed cluster.
func (t *Terminal) repeatLast(n int) {
	s := t.active
	if !s.lastSeen || n <= 0 {
		return
	}
	c := s.line(s.lastRow).At(s.lastCol)
	if c.Grapheme == "" {
		return
	}
	if n > s.cols()*s.rows() {
		n = s.cols() * s.rows()
	}
	for i := 0; i < n; i++ {
		s.writeText(c.Character)
	}
}

func (t *Terminal) setAnsiModes(seq ansi.Sequence, enable bool) {
	for i := range seq.Params {
		switch seq.Params[i].Value {
		case modeKAM:
			t.modes.kam = enable
		case modeIRM:
			t.modes.irm = enable
		case modeSRM:
			t.modes.srm = enable
		case modeLNM:
			t.modes.lnm = enable
		}
	}
}

func (t *Terminal) setPrivateModes(seq ansi.Sequence, enable bool) {
	for i := range seq.Params {
		t.setPrivateMode(seq.Params[i].Value, enable)
	}
}

func (t *Terminal) setPrivateMode(code int, enable bool) {
	switch code {
	case modeDECCKM:
		t.modes.decckm = enable
	case modeDECCOLM:
		if !t.modes.allow80To132 {
			return
		}
		// DECCOLM clears the screen and homes the cursor
		cols := 80
		if enable {
			cols = 132
		}
		t.active.resize(t.active.rows(), cols)
		t.active.eraseInDisplay(2)
		t.active.moveCursorTo(0, 0)
	case modeDECSCLM:
		t.modes.decsclm = enable
	case modeDECSCNM:
		t.modes.decscnm = enable
	case modeDECOM:
		t.modes.decom = enable
		t.active.moveCursorTo(0, 0)
	case modeDECAWM:
		t.modes.decawm = enable
		t.active.cursor.pendingWrap = false
	case modeDECARM:
		t.modes.decarm = enable
	case modeMouseX10:
		t.modes.mouseX10 = enable
	case modeBlinkCursor:
		t.modes.blinkCursor = enable
	case modeDECTCEM:
		t.modes.dectcem = enable
		t.cursorVis.hidden = !enable
	case modeAllow80To132:
		t.modes.allow80To132 = enable
	case modeDECNKM:
		t.modes.deckpam = enable
	case modeDECLRMM:
		t.modes.declrmm = enable
		if !enable {
			t.active.margins.left = 0
			t.active.margins.right = t.active.cols() - 1
		}
	case modeAltScreen47:
		if enable {
			t.enterAltScreen(false)
		} else {
			t.leaveAltScreen()
		}
	case modeMouseBtn:
		t.modes.mouseButtons = enable
	case modeMouseDrag:
		t.modes.mouseDrag = enable
	case modeMouseMotion:
		t.modes.mouseMotion = enable
	case modeFocus:
		t.modes.focusEvents = enable
	case modeMouseUTF8:
		t.modes.mouseUTF8 = enable
	case modeMouseSGR:
		t.modes.mouseSGR = enable
	case modeAltScroll:
		t.modes.altScroll = enable
	case modeMouseURXVT:
		t.modes.mouseURXVT = enable
	case modeAltScreen:
		if enable {
			t.enterAltScreen(false)
		} else {
			if t.modes.altScreen {
				t.active.eraseInDisplay(2)
			}
			t.leaveAltScreen()
		}
	case modeSaveCursor:
		if enable {
			t.active.saveCursor()
		} else {
			t.active.restoreCursor()
		}
	case modeAltSaveClear:
		if enable {
			t.primary.saveCursor()
			t.enterAltScreen(true)
		} else {
			t.leaveAltScreen()
			t.primary.restoreCursor()
		}
	case modePaste:
		t.modes.paste = enable
	case modeSyncUpdate:
		t.modes.syncUpdate = enable
	}
}

// softReset implements DECSTR.
func (t *Terminal) softReset() {
	t.modes.decckm = false
	t.modes.irm = false
	t.modes.decom = false
	t.modes.decawm = true
	t.modes.dectcem = true
	t.modes.declrmm = false
	t.cursorVis = cursorVisibility{}
	s := t.active
	s.resetMargins()
	s.cursor.style = Style{}
	s.cursor.link = 0
	s.cursor.pendingWrap = false
	s.charsets = defaultCharsets()
	s.saved = savedCursor{}
}

// windowOp implements the XTWINOPS subset that makes sense without a
// window system: size reports and the title stack.
func (t *Terminal) windowOp(seq ansi.Sequence) {
	switch seq.ParamOrZero(0) {
	case 14:
		t.reply("\x1b[4;%d;%dt", t.size.YPixel, t.size.XPixel)
	case 16:
		w, h := t.size.CellPixels()
		t.reply("\x1b[6;%d;%dt", h, w)
	case 18:
		t.reply("\x1b[8;%d;%dt", t.active.rows(), t.active.cols())
	case 22:
		switch seq.ParamOrZero(1) {
		case 0, 2:
			t.titleStack = append(t.titleStack, t.title)
			if len(t.titleStack) > 10 {
				t.titleStack = t.titleStack[1:]
			}
		}
	case 23:
		switch seq.ParamOrZero(1) {
		case 0, 2:
			if n := len(t.titleStack); n > 0 {
				t.title = t.titleStack[n-1]
				t.titleStack = t.titleStack[:n-1]
				t.postEvent(EventTitle(t.title))
			}
		}
	}
}
