package termcore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"git.sr.ht/~mglyn/termcore/ansi"
	"git.sr.ht/~mglyn/termcore/log"
	"git.sr.ht/~mglyn/termcore/term"
)

// Version is reported by XTVERSION queries.
const Version = "0.3.1"

const (
	readBufferSize = 32 * 1024
	// inputHighWater is the pending-write threshold that triggers an
	// EventBackpressure
	inputHighWater = 64 * 1024
)

// Terminal is one emulator session: a PTY, a parser, a primary and an
// alternate screen, and a render snapshot. The reader goroutine owns all
// grid mutation under the screen lock; the renderer takes the same lock
// only to snapshot.
type Terminal struct {
	// TERM is exported into the child environment; defaults to
	// xterm-256color
	TERM string
	// MaxHistory bounds scrollback; defaults to DefaultMaxHistory
	MaxHistory int
	// ReflowOnResize re-lays wrapped lines on width change
	ReflowOnResize bool
	// WidthMethod selects grapheme width measurement
	WidthMethod WidthMethod
	// OSC8 enables hyperlink tracking; when false OSC 8 sequences are
	// dropped
	OSC8 bool
	// MaxStringLength bounds OSC/DCS payloads (default 8192)
	MaxStringLength int

	mu sync.Mutex

	modes modes
	tabs  *tabStops
	links *hyperlinkTable

	primary *Screen
	alt     *Screen
	active  *Screen

	sel    Selection
	search Search
	view   viewport
	enc    inputEncoder

	cursorVis cursorVisibility

	title      string
	iconName   string
	titleStack []string

	// palette overrides set via OSC 4/10/11/12
	palette    map[int]Color
	foreground Color
	background Color
	cursorFg   Color

	images []placement

	parser  *ansi.Parser
	builder *ansi.Builder
	pty     term.Pty
	size    term.Size

	// pending events accumulated during a dispatch and posted after
	// the screen lock is released
	pendingEvents []Event

	input *inputQueue

	// replyHook captures query responses when no PTY is attached
	// (headless use)
	replyHook func(string)

	eventMu      sync.Mutex
	eventHandler func(Event)

	dirty       int32
	terminating int32
	closeOnce   sync.Once

	unknown log.Limiter
}

// New returns a terminal with an 80x24 geometry and default modes. The
// exported fields may be adjusted before Start.
func New() *Terminal {
	t := &Terminal{
		OSC8:           true,
		ReflowOnResize: true,
		MaxHistory:     DefaultMaxHistory,
		links:          newHyperlinkTable(),
		palette:        make(map[int]Color),
		input:          newInputQueue(inputHighWater),
		eventHandler:   func(Event) {},
		size:           term.Size{Rows: 24, Cols: 80},
	}
	t.modes = defaultModes()
	t.tabs = newTabStops(80)
	t.primary = newScreen(24, 80, t.MaxHistory, &t.modes, t.tabs, t.links, true)
	t.alt = newScreen(24, 80, 0, &t.modes, t.tabs, t.links, false)
	t.active = t.primary
	t.sel.grid = t.primary.grid
	t.search.grid = t.primary.grid
	t.view.grid = t.primary.grid
	t.primary.sel = &t.sel
	t.alt.sel = &t.sel
	t.enc.modes = &t.modes
	t.builder = ansi.NewBuilder(t)
	t.parser = ansi.NewParser(t.builder)
	return t
}

// Start launches cmd on a fresh PTY and begins pumping its output.
func (t *Terminal) Start(cmd *exec.Cmd) error {
	if cmd == nil {
		return fmt.Errorf("no command to run")
	}
	if t.TERM == "" {
		t.TERM = "xterm-256color"
	}
	env := os.Environ()
	if cmd.Env != nil {
		env = cmd.Env
	}
	cmd.Env = append(env, "TERM="+t.TERM)

	t.mu.Lock()
	t.applyConfig()
	size := t.size
	t.mu.Unlock()

	p, err := term.Spawn(cmd, size)
	if err != nil {
		return err
	}
	t.pty = p
	t.builder.MaxStringLength = t.MaxStringLength

	go t.readLoop()
	go t.writeLoop()
	return nil
}

// applyConfig propagates pre-Start field changes into the model.
func (t *Terminal) applyConfig() {
	if t.MaxHistory != t.primary.grid.hist.cap() {
		t.primary.grid.hist = newLineRing(t.MaxHistory)
		t.primary.scrollback = t.MaxHistory > 0
	}
	var flags LineFlags
	if t.ReflowOnResize {
		flags = FlagWrappable
	}
	t.primary.wrappable = flags
	t.primary.method = t.WidthMethod
	t.alt.method = t.WidthMethod
}

// readLoop is the I/O goroutine: it blocks on the PTY, drives the
// parser, and mutates the screen under the lock.
func (t *Terminal) readLoop() {
	defer t.recover()
	buf := make([]byte, readBufferSize)
	for {
		n, err := t.pty.Read(buf)
		if n > 0 {
			t.mu.Lock()
			t.parser.Parse(buf[:n])
			t.mu.Unlock()
			t.flushEvents()
			t.markDirty()
		}
		if err == nil {
			continue
		}
		if retryableReadError(err) && atomic.LoadInt32(&t.terminating) == 0 {
			continue
		}
		t.finish(err)
		return
	}
}

// retryableReadError matches the transient errno class; anything else is
// fatal for the session.
func retryableReadError(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}

// finish transitions the session to its terminal state, exactly once.
func (t *Terminal) finish(readErr error) {
	t.closeOnce.Do(func() {
		// PTY read errors collapse to EIO when the child exits; the
		// exit status is the interesting part
		if readErr != nil && readErr != io.EOF {
			log.Debug("pty read ended: %v", readErr)
		}
		status := -1
		var werr error
		if t.pty != nil {
			status, werr = t.pty.Wait()
		}
		t.postEvent(EventClosed{Status: status, Err: werr})
		t.flushEvents()
	})
}

// writeLoop drains the input mailbox into the PTY.
func (t *Terminal) writeLoop() {
	for chunk := range t.input.Chan() {
		if atomic.LoadInt32(&t.terminating) != 0 {
			return
		}
		remaining := chunk
		for len(remaining) > 0 {
			n, err := t.pty.Write(remaining)
			if err != nil {
				log.Debug("pty write failed: %v", err)
				return
			}
			remaining = remaining[n:]
		}
		t.input.done(len(chunk))
	}
}

// send enqueues bytes for the PTY. Backpressure is reported when the
// mailbox grows past the high-water mark.
func (t *Terminal) send(s string) {
	if s == "" {
		return
	}
	if t.pty == nil {
		if t.replyHook != nil {
			t.replyHook(s)
		}
		return
	}
	pending, over := t.input.push([]byte(s))
	if over {
		t.postEvent(EventBackpressure{Pending: pending})
		t.flushEvents()
	}
}

// reply is used by query handlers; responses take the same ordered path
// as user input.
func (t *Terminal) reply(format string, args ...any) {
	if len(args) == 0 {
		t.send(format)
		return
	}
	t.send(fmt.Sprintf(format, args...))
}

// Write feeds bytes directly into the emulator, bypassing the PTY. It
// allows headless use and testing against a raw byte stream.
func (t *Terminal) Write(b []byte) (int, error) {
	t.mu.Lock()
	t.parser.Parse(b)
	t.mu.Unlock()
	t.flushEvents()
	t.markDirty()
	return len(b), nil
}

// Attach installs the host event handler.
func (t *Terminal) Attach(fn func(Event)) {
	t.eventMu.Lock()
	defer t.eventMu.Unlock()
	t.eventHandler = fn
}

// Detach removes the host event handler.
func (t *Terminal) Detach() {
	t.eventMu.Lock()
	defer t.eventMu.Unlock()
	t.eventHandler = func(Event) {}
}

// postEvent queues an event for delivery outside the screen lock.
func (t *Terminal) postEvent(ev Event) {
	t.eventMu.Lock()
	t.pendingEvents = append(t.pendingEvents, ev)
	t.eventMu.Unlock()
}

func (t *Terminal) flushEvents() {
	t.eventMu.Lock()
	events := t.pendingEvents
	t.pendingEvents = nil
	fn := t.eventHandler
	t.eventMu.Unlock()
	for _, ev := range events {
		fn(ev)
	}
}

func (t *Terminal) markDirty() {
	if atomic.CompareAndSwapInt32(&t.dirty, 0, 1) {
		t.eventMu.Lock()
		fn := t.eventHandler
		t.eventMu.Unlock()
		fn(Redraw{})
	}
}

// Dirty reports and clears the redraw flag; renderers poll it before
// taking a snapshot.
func (t *Terminal) Dirty() bool {
	return atomic.SwapInt32(&t.dirty, 0) == 1
}

func (t *Terminal) recover() {
	err := recover()
	if err == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "cursor row=%d col=%d\n", t.active.cursor.row, t.active.cursor.col)
	fmt.Fprintf(&sb, "margins %+v\n", t.active.margins)
	fmt.Fprintf(&sb, "%v\n", err)
	sb.Write(debug.Stack())
	t.postEvent(EventPanic(fmt.Errorf("%s", sb.String())))
	t.flushEvents()
	t.Close()
}

// Close terminates the session: the PTY is hung up, in-flight writes
// are abandoned, and the reader exits at the next loop boundary.
func (t *Terminal) Close() {
	atomic.StoreInt32(&t.terminating, 1)
	if t.pty != nil {
		_ = t.pty.Wakeup()
	}
}

// Resize applies a geometry change from the host.
func (t *Terminal) Resize(size term.Size) error {
	t.mu.Lock()
	t.applyConfig()
	t.size = size
	t.tabs.resize(size.Cols)
	t.primary.resize(size.Rows, size.Cols)
	t.alt.resize(size.Rows, size.Cols)
	t.view.scrollToBottom()
	t.mu.Unlock()
	t.markDirty()
	if t.pty != nil {
		return t.pty.Resize(size)
	}
	return nil
}

// SendKey encodes and forwards a key event.
func (t *Terminal) SendKey(key Key) {
	t.mu.Lock()
	s := t.enc.encodeKey(key)
	t.mu.Unlock()
	t.send(s)
}

// SendMouse encodes and forwards a mouse event.
func (t *Terminal) SendMouse(m Mouse) {
	t.mu.Lock()
	s := t.enc.encodeMouse(m)
	if s == "" {
		s = t.enc.altScrollKeys(m)
	}
	t.mu.Unlock()
	t.send(s)
}

// SendFocus forwards a focus transition when focus reporting is active.
func (t *Terminal) SendFocus(in bool) {
	t.mu.Lock()
	s := t.enc.encodeFocus(in)
	t.mu.Unlock()
	t.send(s)
}

// Paste forwards pasted text, bracketed when mode 2004 is set.
func (t *Terminal) Paste(text string) {
	t.mu.Lock()
	s := t.enc.encodePaste(text)
	t.mu.Unlock()
	t.send(s)
}

// Print implements ansi.Handler: one decoded codepoint.
func (t *Terminal) Print(r rune) {
	if r < 0x80 {
		r = t.active.charsets.remap(r)
	}
	g := string(r)
	t.active.writeText(Character{Grapheme: g, Width: t.active.method.Measure(g)})
}

// Execute implements ansi.Handler: C0 controls.
func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		t.postEvent(EventBell{})
	case 0x08: // BS
		t.active.backspace()
	case 0x09: // HT
		t.active.horizontalTab()
	case 0x0a, 0x0b, 0x0c: // LF VT FF
		t.active.linefeed()
	case 0x0d: // CR
		t.active.carriageReturn()
	case 0x0e: // SO
		t.active.charsets.shiftOut()
	case 0x0f: // SI
		t.active.charsets.shiftIn()
	}
}

// Dispatch implements ansi.Handler: a complete control sequence.
func (t *Terminal) Dispatch(seq ansi.Sequence) {
	switch seq.Category {
	case ansi.Esc:
		t.esc(seq)
	case ansi.Csi:
		t.csi(seq)
	case ansi.Osc:
		t.osc(seq)
	case ansi.Dcs:
		t.dcs(seq)
	}
}

// String renders the active page as trimmed text, one row per line.
func (t *Terminal) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var b strings.Builder
	for row := 0; row < t.active.rows(); row++ {
		b.WriteString(t.active.line(row).String())
		if row < t.active.rows()-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// enterAltScreen switches the display to the alternate buffer.
func (t *Terminal) enterAltScreen(clear bool) {
	if t.modes.altScreen {
		return
	}
	t.modes.altScreen = true
	t.alt.cursor = t.active.cursor
	t.active = t.alt
	t.sel.grid = t.alt.grid
	t.sel.Clear()
	t.search.grid = t.alt.grid
	t.view.grid = t.alt.grid
	t.view.scrollToBottom()
	if clear {
		t.alt.grid.replacePage(t.alt.cursor.style, 0)
	}
}

// leaveAltScreen restores the primary buffer, which kept its content.
func (t *Terminal) leaveAltScreen() {
	if !t.modes.altScreen {
		return
	}
	t.modes.altScreen = false
	t.primary.cursor.style = t.active.cursor.style
	t.active = t.primary
	t.sel.grid = t.primary.grid
	t.sel.Clear()
	t.search.grid = t.primary.grid
	t.view.grid = t.primary.grid
	t.view.scrollToBottom()
}

// fullReset implements RIS.
func (t *Terminal) fullReset() {
	t.modes = defaultModes()
	t.tabs.reset()
	t.title = ""
	t.titleStack = nil
	t.palette = make(map[int]Color)
	t.foreground = 0
	t.background = 0
	t.cursorFg = 0
	t.cursorVis = cursorVisibility{}
	t.images = nil
	t.sel.Clear()
	t.active = t.primary
	t.sel.grid = t.primary.grid
	t.search.grid = t.primary.grid
	t.view.grid = t.primary.grid
	for _, s := range []*Screen{t.primary, t.alt} {
		s.cursor = cursor{}
		s.saved = savedCursor{}
		s.charsets = defaultCharsets()
		s.resetMargins()
		s.grid.replacePage(Style{}, s.wrappable)
	}
	t.primary.grid.clearHistory()
	t.view.scrollToBottom()
}

// BlinkTick toggles the cursor blink phase; hosts call it from their
// blink timer.
func (t *Terminal) BlinkTick() {
	t.mu.Lock()
	t.cursorVis.Tick()
	t.mu.Unlock()
	t.markDirty()
}

// Selection returns the session's selection model.
func (t *Terminal) Selection() *Selection { return &t.sel }

// Search returns the session's search model.
func (t *Terminal) Search() *Search { return &t.search }

// ScrollViewport moves the visible window by n lines into history
// (positive n scrolls back).
func (t *Terminal) ScrollViewport(n int) {
	t.mu.Lock()
	if n >= 0 {
		t.view.scrollUp(n)
	} else {
		t.view.scrollDown(-n)
	}
	t.mu.Unlock()
	t.markDirty()
}
