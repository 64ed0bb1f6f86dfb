package termcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionLinear(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "hello\r\nworld")
	sel := vt.Selection()
	sel.Start(0, 2, SelectionLinear)
	sel.Extend(1, 2)

	assert.True(t, sel.Contains(0, 2))
	assert.True(t, sel.Contains(0, 9))
	assert.True(t, sel.Contains(1, 0))
	assert.True(t, sel.Contains(1, 2))
	assert.False(t, sel.Contains(1, 3))
	assert.False(t, sel.Contains(0, 1))

	assert.Equal(t, "llo\nwor", sel.Text())
}

func TestSelectionReversedEndpoints(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "hello")
	sel := vt.Selection()
	sel.Start(0, 4, SelectionLinear)
	sel.Extend(0, 1)
	assert.Equal(t, "ello", sel.Text())
}

func TestSelectionRectangular(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "abcdef\r\nghijkl\r\nmnopqr")
	sel := vt.Selection()
	sel.Start(0, 1, SelectionRectangular)
	sel.Extend(2, 3)

	assert.True(t, sel.Contains(1, 2))
	assert.False(t, sel.Contains(1, 0))
	assert.False(t, sel.Contains(1, 4))
	assert.Equal(t, "bcd\nhij\nnop", sel.Text())
}

func TestSelectionFullLine(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "one\r\ntwo")
	sel := vt.Selection()
	sel.Start(0, 5, SelectionFullLine)
	assert.True(t, sel.Contains(0, 0))
	assert.Equal(t, "one", sel.Text())
}

func TestSelectionWordwise(t *testing.T) {
	vt := newTestTerminal(t, 4, 20)
	feed(vt, "alpha beta gamma")
	sel := vt.Selection()
	sel.Start(0, 7, SelectionWordwise)
	sel.Extend(0, 8)

	assert.True(t, sel.Contains(0, 6))
	assert.True(t, sel.Contains(0, 9))
	assert.False(t, sel.Contains(0, 5))
	assert.Equal(t, "beta", sel.Text())
}

func TestSelectionJoinsWrappedLines(t *testing.T) {
	vt := newTestTerminal(t, 4, 5)
	feed(vt, "abcdefgh")
	sel := vt.Selection()
	sel.Start(0, 0, SelectionLinear)
	sel.Extend(1, 2)
	// no newline across a wrap break
	assert.Equal(t, "abcdefgh", sel.Text())
}

func TestSelectionClearedByOverlappingWrite(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "hello")
	sel := vt.Selection()
	sel.Start(0, 0, SelectionLinear)
	sel.Extend(0, 4)
	require.True(t, sel.Active())

	feed(vt, "\x1b[1;1Hx")
	assert.False(t, sel.Active())
}

func TestSelectionSurvivesNonOverlappingWrite(t *testing.T) {
	vt := newTestTerminal(t, 4, 10)
	feed(vt, "hello")
	sel := vt.Selection()
	sel.Start(0, 0, SelectionLinear)
	sel.Extend(0, 4)

	feed(vt, "\x1b[3;1Hother")
	assert.True(t, sel.Active())
	assert.Equal(t, "hello", sel.Text())
}

func TestSelectionAnchorsSurviveScroll(t *testing.T) {
	vt := newTestTerminal(t, 2, 10)
	feed(vt, "keep\r\n")
	sel := vt.Selection()
	sel.Start(0, 0, SelectionLinear)
	sel.Extend(0, 3)
	require.True(t, sel.Active())

	// scrolling the selected line into history does not disturb it
	feed(vt, "\x1b[2;1H\r\n\r\n")
	require.True(t, sel.Active())
	assert.Equal(t, "keep", sel.Text())
}

func TestSelectionDropsWithEvictedLines(t *testing.T) {
	vt := New()
	vt.MaxHistory = 1
	require.NoError(t, vt.Resize(mustSize(2, 10)))
	feed(vt, "gone\r\n")
	sel := vt.Selection()
	sel.Start(0, 0, SelectionLinear)
	sel.Extend(0, 3)

	feed(vt, "\x1b[2;1H\r\n\r\n\r\n\r\n")
	// the anchor line fell out of the 1-line history: no text, no crash
	assert.Equal(t, "", sel.Text())
}
