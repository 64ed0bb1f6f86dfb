package termcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflowWiderUnwraps(t *testing.T) {
	vt := newTestTerminal(t, 5, 5)
	feed(vt, "Hello, World")
	require.NoError(t, vt.Resize(mustSize(5, 20)))

	assert.Equal(t, "Hello, World", vt.String())
	assert.False(t, vt.active.line(0).Wrapped())

	// the cursor follows its character
	row, col := vt.active.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 12, col)
}

func TestReflowNarrowerRewraps(t *testing.T) {
	vt := newTestTerminal(t, 5, 20)
	feed(vt, "Hello, World")
	require.NoError(t, vt.Resize(mustSize(5, 5)))

	assert.Equal(t, "Hello\n, Wor\nld", vt.String())
	assert.True(t, vt.active.line(0).Wrapped())
	assert.True(t, vt.active.line(1).Wrapped())
	assert.False(t, vt.active.line(2).Wrapped())
}

// TestReflowIdempotence checks that resize(N) resize(M) resize(N)
// preserves wrappable content modulo trailing blanks.
func TestReflowIdempotence(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog",
		"short",
		"one two three four five six seven eight nine ten eleven twelve",
	}
	for _, input := range inputs {
		vt := newTestTerminal(t, 6, 30)
		feed(vt, input)
		before := vt.String()

		require.NoError(t, vt.Resize(mustSize(6, 11)))
		require.NoError(t, vt.Resize(mustSize(6, 23)))
		require.NoError(t, vt.Resize(mustSize(6, 30)))

		assert.Equal(t, before, vt.String())
	}
}

func TestReflowPreservesUnwrappedLines(t *testing.T) {
	vt := newTestTerminal(t, 5, 10)
	feed(vt, "aaa\r\nbbb\r\nccc")
	require.NoError(t, vt.Resize(mustSize(5, 8)))
	assert.Equal(t, "aaa\nbbb\nccc", vt.String())
}

func TestReflowKeepsStyles(t *testing.T) {
	vt := newTestTerminal(t, 4, 6)
	feed(vt, "ab\x1b[31mcdefgh")
	require.NoError(t, vt.Resize(mustSize(4, 12)))
	assert.Equal(t, "abcdefgh", vt.String())
	assert.Equal(t, IndexColor(1), vt.active.line(0).At(4).Style.Foreground)
	assert.True(t, vt.active.line(0).At(1).Style.IsDefault())
}

func TestReflowFromHistory(t *testing.T) {
	vt := newTestTerminal(t, 2, 5)
	// "abcdefgh" wraps over two lines; more pushes it into history
	feed(vt, "abcdefgh")
	feed(vt, "\r\nxx\r\nyy\r\nzz")
	require.True(t, vt.active.grid.HistorySize() > 0)

	require.NoError(t, vt.Resize(mustSize(2, 20)))
	// the wrapped run rejoined in history
	found := false
	g := vt.active.grid
	for off := -g.HistorySize(); off < g.Rows(); off++ {
		if g.Line(off) != nil && g.Line(off).String() == "abcdefgh" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResizeInPlaceAltScreen(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "\x1b[?1049h")
	feed(vt, "0123456789")
	require.NoError(t, vt.Resize(mustSize(4, 5)))
	// no reflow on the alternate screen: content truncates
	assert.Equal(t, "01234", vt.String())
	assert.Equal(t, 0, vt.active.grid.HistorySize())
}

func TestResizeTallerPullsFromHistory(t *testing.T) {
	vt := newTestTerminal(t, 2, 5)
	vtNoReflow := New()
	vtNoReflow.ReflowOnResize = false
	require.NoError(t, vtNoReflow.Resize(mustSize(2, 5)))
	feed(vtNoReflow, "a\r\nb\r\nc")
	require.Equal(t, 1, vtNoReflow.active.grid.HistorySize())

	require.NoError(t, vtNoReflow.Resize(mustSize(3, 5)))
	assert.Equal(t, "a\nb\nc", vtNoReflow.String())
	assert.Equal(t, 0, vtNoReflow.active.grid.HistorySize())
	_ = vt
}

func TestReflowClearsSelection(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "hello world")
	sel := vt.Selection()
	sel.Start(0, 0, SelectionLinear)
	sel.Extend(0, 4)
	require.True(t, sel.Active())

	require.NoError(t, vt.Resize(mustSize(4, 20)))
	assert.False(t, sel.Active())
}
