package termcore

// ModeValue is a DECRQM reply state.
type ModeValue uint8

const (
	ModeNotRecognized    ModeValue = 0
	ModeSet              ModeValue = 1
	ModeReset            ModeValue = 2
	ModePermanentlySet   ModeValue = 3
	ModePermanentlyReset ModeValue = 4
)

// ANSI mode numbers
const (
	modeKAM = 2  // keyboard action
	modeIRM = 4  // insert/replace
	modeSRM = 12 // send/receive
	modeLNM = 20 // linefeed/newline
)

// DEC private mode numbers
const (
	modeDECCKM       = 1
	modeDECCOLM      = 3
	modeDECSCLM      = 4
	modeDECSCNM      = 5
	modeDECOM        = 6
	modeDECAWM       = 7
	modeDECARM       = 8
	modeMouseX10     = 9
	modeBlinkCursor  = 12
	modeDECTCEM      = 25
	modeAllow80To132 = 40
	modeDECNKM       = 66
	modeDECLRMM      = 69
	modeAltScreen47  = 47
	modeMouseBtn     = 1000
	modeMouseDrag    = 1002
	modeMouseMotion  = 1003
	modeFocus        = 1004
	modeMouseUTF8    = 1005
	modeMouseSGR     = 1006
	modeAltScroll    = 1007
	modeMouseURXVT   = 1015
	modeAltScreen    = 1047
	modeSaveCursor   = 1048
	modeAltSaveClear = 1049
	modePaste        = 2004
	modeSyncUpdate   = 2026
)

// modes is the live mode set. The booleans are the hot-path view; DECRQM
// reporting resolves through report().
type modes struct {
	// ANSI
	kam bool
	irm bool
	srm bool
	lnm bool

	// DEC private
	decckm       bool
	decsclm      bool
	decscnm      bool
	decom        bool
	decawm       bool
	decarm       bool
	dectcem      bool
	deckpam      bool
	declrmm      bool
	blinkCursor  bool
	allow80To132 bool

	// xterm
	altScreen   bool
	paste       bool
	focusEvents bool
	altScroll   bool
	syncUpdate  bool

	mouseX10     bool
	mouseButtons bool
	mouseDrag    bool
	mouseMotion  bool
	mouseUTF8    bool
	mouseSGR     bool
	mouseURXVT   bool
}

func defaultModes() modes {
	return modes{
		decawm:  true,
		dectcem: true,
		decarm:  true,
		srm:     true,
	}
}

// report resolves a mode query per DECRQM. Unknown modes report
// NotRecognized; modes this implementation hard-wires report a permanent
// state.
func (m *modes) report(private bool, code int) ModeValue {
	onOff := func(b bool) ModeValue {
		if b {
			return ModeSet
		}
		return ModeReset
	}
	if !private {
		switch code {
		case modeKAM:
			return onOff(m.kam)
		case modeIRM:
			return onOff(m.irm)
		case modeSRM:
			return onOff(m.srm)
		case modeLNM:
			return onOff(m.lnm)
		}
		return ModeNotRecognized
	}
	switch code {
	case modeDECCKM:
		return onOff(m.decckm)
	case modeDECCOLM:
		return ModePermanentlyReset
	case modeDECSCLM:
		return onOff(m.decsclm)
	case modeDECSCNM:
		return onOff(m.decscnm)
	case modeDECOM:
		return onOff(m.decom)
	case modeDECAWM:
		return onOff(m.decawm)
	case modeDECARM:
		return onOff(m.decarm)
	case modeMouseX10:
		return onOff(m.mouseX10)
	case modeBlinkCursor:
		return onOff(m.blinkCursor)
	case modeDECTCEM:
		return onOff(m.dectcem)
	case modeAllow80To132:
		return onOff(m.allow80To132)
	case modeDECNKM:
		return onOff(m.deckpam)
	case modeDECLRMM:
		return onOff(m.declrmm)
	case modeAltScreen47, modeAltScreen, modeAltSaveClear:
		return onOff(m.altScreen)
	case modeSaveCursor:
		return ModeReset
	case modeMouseBtn:
		return onOff(m.mouseButtons)
	case modeMouseDrag:
		return onOff(m.mouseDrag)
	case modeMouseMotion:
		return onOff(m.mouseMotion)
	case modeFocus:
		return onOff(m.focusEvents)
	case modeMouseUTF8:
		return onOff(m.mouseUTF8)
	case modeMouseSGR:
		return onOff(m.mouseSGR)
	case modeAltScroll:
		return onOff(m.altScroll)
	case modeMouseURXVT:
		return onOff(m.mouseURXVT)
	case modePaste:
		return onOff(m.paste)
	case modeSyncUpdate:
		return onOff(m.syncUpdate)
	}
	return ModeNotRecognized
}

// mouseProtocol summarises which mouse events must be reported.
type mouseProtocol uint8

const (
	mouseOff mouseProtocol = iota
	// press only, no modifiers, no release (X10)
	mouseProtoX10
	// press + release
	mouseProtoButtons
	// press + release + motion with a button held
	mouseProtoDrag
	// everything
	mouseProtoAll
)

func (m *modes) mouseProto() mouseProtocol {
	switch {
	case m.mouseMotion:
		return mouseProtoAll
	case m.mouseDrag:
		return mouseProtoDrag
	case m.mouseButtons:
		return mouseProtoButtons
	case m.mouseX10:
		return mouseProtoX10
	}
	return mouseOff
}
