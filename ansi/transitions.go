package ansi

type pState uint8

const (
	ground pState = iota
	escape
	escapeIntermediate
	csiEntry
	csiParam
	csiIntermediate
	csiIgnore
	dcsEntry
	dcsParam
	dcsIntermediate
	dcsPassthrough
	dcsIgnore
	oscString
	sosPmApcString

	numStates

	// stateNone marks a transition which performs an action without
	// leaving the current state
	stateNone pState = 0x0F
)

type pAction uint8

const (
	actionNop pAction = iota
	actionIgnore
	actionPrint
	actionExecute
	actionClear
	actionCollect
	actionParam
	actionEscDispatch
	actionCsiDispatch
	actionHook
	actionPut
	actionUnhook
	actionOscStart
	actionOscPut
	actionOscEnd
)

// A transition packs an action and a next state into one byte, the same
// encoding gosh and the original vtparse tables use.
type transition uint8

func tr(a pAction, s pState) transition {
	return transition(uint8(a)<<4 | uint8(s))
}

func (t transition) state() pState   { return pState(t & 0x0F) }
func (t transition) action() pAction { return pAction(t >> 4) }

var (
	stateTable   [numStates][256]transition
	entryActions [numStates]pAction
	exitActions  [numStates]pAction
)

func fill(s pState, lo, hi byte, t transition) {
	for b := int(lo); b <= int(hi); b++ {
		stateTable[s][b] = t
	}
}

func init() {
	entryActions[escape] = actionClear
	entryActions[csiEntry] = actionClear
	entryActions[dcsEntry] = actionClear
	entryActions[dcsPassthrough] = actionHook
	entryActions[oscString] = actionOscStart
	exitActions[dcsPassthrough] = actionUnhook
	exitActions[oscString] = actionOscEnd

	for s := pState(0); s < numStates; s++ {
		// C0 controls execute in most states; overridden per state
		// below where VT500 says otherwise.
		fill(s, 0x00, 0x17, tr(actionExecute, stateNone))
		fill(s, 0x19, 0x19, tr(actionExecute, stateNone))
		fill(s, 0x1c, 0x1f, tr(actionExecute, stateNone))
		fill(s, 0x7f, 0x7f, tr(actionIgnore, stateNone))

		// anywhere transitions
		fill(s, 0x18, 0x18, tr(actionExecute, ground))
		fill(s, 0x1a, 0x1a, tr(actionExecute, ground))
		fill(s, 0x1b, 0x1b, tr(actionNop, escape))
	}

	// ground
	fill(ground, 0x20, 0x7e, tr(actionPrint, stateNone))
	fill(ground, 0x7f, 0x7f, tr(actionIgnore, stateNone))
	// 0x80..0xff are consumed by the UTF-8 sub-decoder before the table
	// is consulted; any that leak through are ignored.
	fill(ground, 0x80, 0xff, tr(actionIgnore, stateNone))

	// escape
	fill(escape, 0x20, 0x2f, tr(actionCollect, escapeIntermediate))
	fill(escape, 0x30, 0x4f, tr(actionEscDispatch, ground))
	fill(escape, 0x50, 0x50, tr(actionNop, dcsEntry))
	fill(escape, 0x51, 0x57, tr(actionEscDispatch, ground))
	fill(escape, 0x58, 0x58, tr(actionNop, sosPmApcString))
	fill(escape, 0x59, 0x5a, tr(actionEscDispatch, ground))
	fill(escape, 0x5b, 0x5b, tr(actionNop, csiEntry))
	fill(escape, 0x5c, 0x5c, tr(actionEscDispatch, ground))
	fill(escape, 0x5d, 0x5d, tr(actionNop, oscString))
	fill(escape, 0x5e, 0x5f, tr(actionNop, sosPmApcString))
	fill(escape, 0x60, 0x7e, tr(actionEscDispatch, ground))

	// escapeIntermediate
	fill(escapeIntermediate, 0x20, 0x2f, tr(actionCollect, stateNone))
	fill(escapeIntermediate, 0x30, 0x7e, tr(actionEscDispatch, ground))

	// csiEntry
	fill(csiEntry, 0x20, 0x2f, tr(actionCollect, csiIntermediate))
	// 0x3a is a deviation from the canonical table: sub-parameters
	// (SGR 38:2::r:g:b) route through the param action instead of
	// csiIgnore
	fill(csiEntry, 0x30, 0x3b, tr(actionParam, csiParam))
	fill(csiEntry, 0x3c, 0x3f, tr(actionCollect, csiParam))
	fill(csiEntry, 0x40, 0x7e, tr(actionCsiDispatch, ground))

	// csiParam
	fill(csiParam, 0x20, 0x2f, tr(actionCollect, csiIntermediate))
	fill(csiParam, 0x30, 0x3b, tr(actionParam, stateNone))
	fill(csiParam, 0x3c, 0x3f, tr(actionNop, csiIgnore))
	fill(csiParam, 0x40, 0x7e, tr(actionCsiDispatch, ground))

	// csiIntermediate
	fill(csiIntermediate, 0x20, 0x2f, tr(actionCollect, stateNone))
	fill(csiIntermediate, 0x30, 0x3f, tr(actionNop, csiIgnore))
	fill(csiIntermediate, 0x40, 0x7e, tr(actionCsiDispatch, ground))

	// csiIgnore
	fill(csiIgnore, 0x20, 0x3f, tr(actionIgnore, stateNone))
	fill(csiIgnore, 0x40, 0x7e, tr(actionNop, ground))

	// dcsEntry: C0 is ignored inside DCS states
	fill(dcsEntry, 0x00, 0x17, tr(actionIgnore, stateNone))
	fill(dcsEntry, 0x19, 0x19, tr(actionIgnore, stateNone))
	fill(dcsEntry, 0x1c, 0x1f, tr(actionIgnore, stateNone))
	fill(dcsEntry, 0x20, 0x2f, tr(actionCollect, dcsIntermediate))
	fill(dcsEntry, 0x30, 0x3b, tr(actionParam, dcsParam))
	fill(dcsEntry, 0x3c, 0x3f, tr(actionCollect, dcsParam))
	fill(dcsEntry, 0x40, 0x7e, tr(actionNop, dcsPassthrough))

	// dcsParam
	fill(dcsParam, 0x00, 0x17, tr(actionIgnore, stateNone))
	fill(dcsParam, 0x19, 0x19, tr(actionIgnore, stateNone))
	fill(dcsParam, 0x1c, 0x1f, tr(actionIgnore, stateNone))
	fill(dcsParam, 0x20, 0x2f, tr(actionCollect, dcsIntermediate))
	fill(dcsParam, 0x30, 0x3b, tr(actionParam, stateNone))
	fill(dcsParam, 0x3c, 0x3f, tr(actionNop, dcsIgnore))
	fill(dcsParam, 0x40, 0x7e, tr(actionNop, dcsPassthrough))

	// dcsIntermediate
	fill(dcsIntermediate, 0x00, 0x17, tr(actionIgnore, stateNone))
	fill(dcsIntermediate, 0x19, 0x19, tr(actionIgnore, stateNone))
	fill(dcsIntermediate, 0x1c, 0x1f, tr(actionIgnore, stateNone))
	fill(dcsIntermediate, 0x20, 0x2f, tr(actionCollect, stateNone))
	fill(dcsIntermediate, 0x30, 0x3f, tr(actionNop, dcsIgnore))
	fill(dcsIntermediate, 0x40, 0x7e, tr(actionNop, dcsPassthrough))

	// dcsPassthrough
	fill(dcsPassthrough, 0x00, 0x17, tr(actionPut, stateNone))
	fill(dcsPassthrough, 0x19, 0x19, tr(actionPut, stateNone))
	fill(dcsPassthrough, 0x1c, 0x1f, tr(actionPut, stateNone))
	fill(dcsPassthrough, 0x20, 0x7e, tr(actionPut, stateNone))
	fill(dcsPassthrough, 0x80, 0xff, tr(actionPut, stateNone))

	// dcsIgnore
	fill(dcsIgnore, 0x00, 0x17, tr(actionIgnore, stateNone))
	fill(dcsIgnore, 0x19, 0x19, tr(actionIgnore, stateNone))
	fill(dcsIgnore, 0x1c, 0x1f, tr(actionIgnore, stateNone))
	fill(dcsIgnore, 0x20, 0x7f, tr(actionIgnore, stateNone))

	// oscString: BEL terminates per xterm, controls are otherwise
	// ignored; payload bytes may be UTF-8
	fill(oscString, 0x00, 0x06, tr(actionIgnore, stateNone))
	fill(oscString, 0x07, 0x07, tr(actionNop, ground))
	fill(oscString, 0x08, 0x17, tr(actionIgnore, stateNone))
	fill(oscString, 0x19, 0x19, tr(actionIgnore, stateNone))
	fill(oscString, 0x1c, 0x1f, tr(actionIgnore, stateNone))
	fill(oscString, 0x20, 0x7f, tr(actionOscPut, stateNone))
	fill(oscString, 0x80, 0xff, tr(actionOscPut, stateNone))

	// sosPmApcString: swallowed until ST
	fill(sosPmApcString, 0x00, 0x17, tr(actionIgnore, stateNone))
	fill(sosPmApcString, 0x19, 0x19, tr(actionIgnore, stateNone))
	fill(sosPmApcString, 0x1c, 0x1f, tr(actionIgnore, stateNone))
	fill(sosPmApcString, 0x20, 0x7f, tr(actionIgnore, stateNone))
	fill(sosPmApcString, 0x80, 0xff, tr(actionIgnore, stateNone))

	// high bytes inside escape and control sequences carry no meaning
	// in a UTF-8 stream and are dropped without a state change
	for _, s := range []pState{
		escape, escapeIntermediate,
		csiEntry, csiParam, csiIntermediate, csiIgnore,
		dcsEntry, dcsParam, dcsIntermediate, dcsIgnore,
	} {
		fill(s, 0x80, 0xff, tr(actionIgnore, stateNone))
	}
}
