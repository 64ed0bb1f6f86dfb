package termcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~mglyn/termcore/term"
)

func mustSize(rows, cols int) term.Size {
	return term.Size{Rows: rows, Cols: cols}
}

// capture collects query responses while no PTY is attached
func capture(vt *Terminal) *strings.Builder {
	var b strings.Builder
	vt.replyHook = func(s string) { b.WriteString(s) }
	return &b
}

func TestDECRQM(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		query string
		want  string
	}{
		{"unknown private mode", "", "\x1b[?2022$p", "\x1b[?2022;0$y"},
		{"autowrap set", "", "\x1b[?7$p", "\x1b[?7;1$y"},
		{"autowrap reset", "\x1b[?7l", "\x1b[?7$p", "\x1b[?7;2$y"},
		{"deccolm permanently reset", "", "\x1b[?3$p", "\x1b[?3;4$y"},
		{"ansi insert mode", "\x1b[4h", "\x1b[4$p", "\x1b[4;1$y"},
		{"bracketed paste", "\x1b[?2004h", "\x1b[?2004$p", "\x1b[?2004;1$y"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vt := newTestTerminal(t, 4, 10)
			out := capture(vt)
			feed(vt, test.setup)
			feed(vt, test.query)
			assert.Equal(t, test.want, out.String())
		})
	}
}

func TestDSR(t *testing.T) {
	vt := newTestTerminal(t, 10, 20)
	out := capture(vt)
	feed(vt, "\x1b[5n")
	assert.Equal(t, "\x1b[0n", out.String())

	out.Reset()
	feed(vt, "\x1b[3;5H\x1b[6n")
	assert.Equal(t, "\x1b[3;5R", out.String())
}

func TestCPRHonorsOriginMode(t *testing.T) {
	vt := newTestTerminal(t, 10, 20)
	out := capture(vt)
	feed(vt, "\x1b[4;8r\x1b[?6h\x1b[2;3H\x1b[6n")
	assert.Equal(t, "\x1b[2;3R", out.String())
}

func TestDeviceAttributes(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	out := capture(vt)
	feed(vt, "\x1b[c")
	assert.Equal(t, "\x1b[?62;4;22c", out.String())
}

func TestWindowOps(t *testing.T) {
	vt := newTestTerminal(t, 24, 80)
	out := capture(vt)
	feed(vt, "\x1b[18t")
	assert.Equal(t, "\x1b[8;24;80t", out.String())
}

func TestTitleAndStack(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	var titles []string
	vt.Attach(func(ev Event) {
		if title, ok := ev.(EventTitle); ok {
			titles = append(titles, string(title))
		}
	})
	feed(vt, "\x1b]2;first\x07")
	feed(vt, "\x1b[22;2t")
	feed(vt, "\x1b]2;second\x1b\\")
	feed(vt, "\x1b[23;2t")

	require.Len(t, titles, 3)
	assert.Equal(t, []string{"first", "second", "first"}, titles)
	assert.Equal(t, "first", vt.title)
}

func TestBellEvent(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	rang := false
	vt.Attach(func(ev Event) {
		if _, ok := ev.(EventBell); ok {
			rang = true
		}
	})
	feed(vt, "\x07")
	assert.True(t, rang)
}

func TestNotifyEvents(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	var got []EventNotify
	vt.Attach(func(ev Event) {
		if n, ok := ev.(EventNotify); ok {
			got = append(got, n)
		}
	})
	feed(vt, "\x1b]9;hello\x07")
	feed(vt, "\x1b]777;notify;title;body\x07")
	require.Len(t, got, 2)
	assert.Equal(t, EventNotify{Body: "hello"}, got[0])
	assert.Equal(t, EventNotify{Title: "title", Body: "body"}, got[1])
}

func TestClipboardEvent(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	var got string
	vt.Attach(func(ev Event) {
		if c, ok := ev.(EventClipboard); ok {
			got = string(c)
		}
	})
	feed(vt, "\x1b]52;c;aGVsbG8=\x07")
	assert.Equal(t, "hello", got)
}

func TestHyperlinkInterning(t *testing.T) {
	vt := newTestTerminal(t, 4, 20)
	feed(vt, "\x1b]8;;https://example.com\x1b\\ab\x1b]8;;\x1b\\c")

	first := vt.active.line(0).At(0)
	second := vt.active.line(0).At(1)
	third := vt.active.line(0).At(2)
	require.NotZero(t, first.Link)
	assert.Equal(t, first.Link, second.Link)
	assert.Zero(t, third.Link)
	assert.Equal(t, "https://example.com", vt.links.resolve(first.Link).URI)
}

func TestHyperlinkReleasedWhenOverwritten(t *testing.T) {
	vt := newTestTerminal(t, 4, 20)
	feed(vt, "\x1b]8;;https://example.com\x1b\\a\x1b]8;;\x1b\\")
	id := vt.active.line(0).At(0).Link
	require.NotZero(t, id)

	feed(vt, "\x1b[1;1Hx")
	assert.Equal(t, Hyperlink{}, vt.links.resolve(id))
}

func TestHyperlinkIdsJoin(t *testing.T) {
	vt := newTestTerminal(t, 4, 20)
	feed(vt, "\x1b]8;id=x;http://a\x1b\\a\x1b]8;;\x1b\\b\x1b]8;id=x;http://a\x1b\\c\x1b]8;;\x1b\\")
	first := vt.active.line(0).At(0)
	third := vt.active.line(0).At(2)
	assert.Equal(t, first.Link, third.Link)
}

func TestOSCColorQuery(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	out := capture(vt)
	feed(vt, "\x1b]11;#336699\x07")
	feed(vt, "\x1b]11;?\x07")
	assert.Equal(t, "\x1b]11;rgb:3333/6666/9999\x07", out.String())
}

func TestDECRQSS(t *testing.T) {
	vt := newTestTerminal(t, 10, 20)
	out := capture(vt)
	feed(vt, "\x1b[3;8r")
	feed(vt, "\x1bP$qr\x1b\\")
	assert.Equal(t, "\x1bP1$r3;8r\x1b\\", out.String())

	out.Reset()
	feed(vt, "\x1bP$qz\x1b\\")
	assert.Equal(t, "\x1bP0$r\x1b\\", out.String())
}

// TestRoundTrip checks that text written with default SGR reads back
// identically through the trimmed snapshot.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"multi line", "multi\r\nline\r\ncontent", "multi\nline\ncontent"},
		{"unicode", "unicode → ◆ 世界", "unicode → ◆ 世界"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vt := newTestTerminal(t, 10, 40)
			feed(vt, test.input)
			sn := vt.Snapshot()
			assert.Equal(t, test.want, strings.TrimRight(sn.ToUtf8Trimmed(), "\n"))
		})
	}
}

func TestSnapshotCoherence(t *testing.T) {
	vt := newTestTerminal(t, 3, 10)
	feed(vt, "abc\r\ndef")
	sn := vt.Snapshot()
	assert.Equal(t, 3, sn.Rows)
	assert.Equal(t, 10, sn.Cols)
	assert.Equal(t, "abc\ndef", sn.ToUtf8Trimmed())
	assert.Equal(t, 1, sn.CursorRow)
	assert.Equal(t, 3, sn.CursorCol)
	assert.True(t, sn.CursorVisible)

	// later writes do not affect the snapshot
	feed(vt, "\x1b[2Jxyz")
	assert.Equal(t, "abc\ndef", sn.ToUtf8Trimmed())
}

func TestSnapshotCursorHidden(t *testing.T) {
	vt := newTestTerminal(t, 3, 10)
	feed(vt, "\x1b[?25l")
	sn := vt.Snapshot()
	assert.False(t, sn.CursorVisible)
}

func TestSnapshotResolvesHyperlinks(t *testing.T) {
	vt := newTestTerminal(t, 3, 20)
	feed(vt, "\x1b]8;;http://x\x1b\\link\x1b]8;;\x1b\\")
	sn := vt.Snapshot()
	assert.Equal(t, "http://x", sn.Cells[0][0].Hyperlink.URI)
	assert.Equal(t, "", sn.Cells[0][5].Hyperlink.URI)
}

func TestViewportScrollback(t *testing.T) {
	vt := newTestTerminal(t, 2, 10)
	feed(vt, "one\r\ntwo\r\nthree\r\nfour")
	assert.Equal(t, 2, vt.active.grid.HistorySize())

	vt.ScrollViewport(1)
	sn := vt.Snapshot()
	assert.Equal(t, "two\nthree", sn.ToUtf8Trimmed())
	assert.False(t, sn.CursorVisible)

	vt.ScrollViewport(-1)
	sn = vt.Snapshot()
	assert.Equal(t, "three\nfour", sn.ToUtf8Trimmed())
}

// TestScrollbackMonotonicity checks that scrollback equals the evicted
// pages in eviction order, truncated to the cap.
func TestScrollbackMonotonicity(t *testing.T) {
	vt := New()
	vt.MaxHistory = 3
	require.NoError(t, vt.Resize(mustSize(2, 8)))
	feed(vt, "l1\r\nl2\r\nl3\r\nl4\r\nl5\r\nl6\r\nl7")

	// 5 lines evicted, cap 3 keeps the newest three
	g := vt.active.grid
	assert.Equal(t, 3, g.HistorySize())
	assert.Equal(t, "l3", g.Line(-3).String())
	assert.Equal(t, "l4", g.Line(-2).String())
	assert.Equal(t, "l5", g.Line(-1).String())
}

func TestUnknownSequenceIsNoop(t *testing.T) {
	vt := newTestTerminal(t, 3, 10)
	feed(vt, "ab\x1b[99;99{cd")
	assert.Equal(t, "abcd", vt.String())
}

func TestModifyOtherKeys(t *testing.T) {
	vt := newTestTerminal(t, 3, 10)
	feed(vt, "\x1b[>4;2m")
	assert.Equal(t, 2, vt.enc.modifyOtherKeys)
}
