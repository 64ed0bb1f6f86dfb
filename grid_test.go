package termcore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textLine(width int, s string) *Line {
	l := newLine(width, Style{}, 0)
	for i, r := range s {
		l.Set(i, Cell{Character: Character{Grapheme: string(r), Width: 1}})
	}
	return l
}

func TestLineRing(t *testing.T) {
	r := newLineRing(3)
	assert.Equal(t, 0, r.size())

	for i := 0; i < 5; i++ {
		evicted := r.push(textLine(4, fmt.Sprintf("l%d", i)))
		if i < 3 {
			assert.Nil(t, evicted)
		} else {
			require.NotNil(t, evicted)
			assert.Equal(t, fmt.Sprintf("l%d", i-3), evicted.String())
		}
	}
	assert.Equal(t, 3, r.size())
	assert.Equal(t, "l2", r.at(0).String())
	assert.Equal(t, "l4", r.at(2).String())

	newest := r.popNewest()
	assert.Equal(t, "l4", newest.String())
	assert.Equal(t, 2, r.size())
}

func TestLineRingZeroCapacity(t *testing.T) {
	r := newLineRing(0)
	l := textLine(4, "x")
	assert.Equal(t, l, r.push(l))
	assert.Equal(t, 0, r.size())
}

func TestGridOffsets(t *testing.T) {
	g := newGrid(3, 5, 10, newHyperlinkTable(), 0)
	g.page[0] = textLine(5, "top")

	assert.Equal(t, "top", g.Line(0).String())
	assert.Nil(t, g.Line(3))
	assert.Nil(t, g.Line(-1))

	g.evictToHistory(textLine(5, "old"))
	assert.Equal(t, 1, g.HistorySize())
	assert.Equal(t, "old", g.Line(-1).String())
	assert.Nil(t, g.Line(-2))
}

func TestGridAbsoluteIds(t *testing.T) {
	g := newGrid(3, 5, 10, newHyperlinkTable(), 0)
	abs := g.absolute(1)
	g.evictToHistory(textLine(5, "x"))

	// the same absolute id now resolves one line back
	off, ok := g.offsetOf(abs)
	require.True(t, ok)
	assert.Equal(t, 0, off)

	// ids beyond retained history stop resolving
	g2 := newGrid(2, 5, 1, newHyperlinkTable(), 0)
	old := g2.absolute(0)
	g2.evictToHistory(textLine(5, "a"))
	g2.evictToHistory(textLine(5, "b"))
	_, ok = g2.offsetOf(old)
	assert.False(t, ok)
}

func TestGridEvictionReleasesLinks(t *testing.T) {
	links := newHyperlinkTable()
	g := newGrid(2, 5, 1, links, 0)

	id := links.intern(Hyperlink{URI: "http://x"})
	links.incref(id)
	l := newLine(5, Style{}, 0)
	l.inflate()
	l.cells[0] = Cell{Character: Character{Grapheme: "a", Width: 1}, Link: id}

	g.evictToHistory(l)
	assert.Equal(t, "http://x", links.resolve(id).URI)

	// pushing another line evicts l beyond the cap and drops the ref
	g.evictToHistory(newLine(5, Style{}, 0))
	assert.Equal(t, "", links.resolve(id).URI)
}

func TestHyperlinkTable(t *testing.T) {
	tbl := newHyperlinkTable()
	a := tbl.intern(Hyperlink{URI: "http://a", Id: "1"})
	b := tbl.intern(Hyperlink{URI: "http://a", Id: "1"})
	c := tbl.intern(Hyperlink{URI: "http://a", Id: "2"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Zero(t, tbl.intern(Hyperlink{}))

	tbl.incref(a)
	tbl.incref(a)
	tbl.decref(a)
	assert.Equal(t, "http://a", tbl.resolve(a).URI)
	tbl.decref(a)
	assert.Equal(t, "", tbl.resolve(a).URI)

	// unknown ids are inert
	tbl.decref(999)
	tbl.incref(999)
}

func TestViewportClamping(t *testing.T) {
	g := newGrid(2, 5, 10, newHyperlinkTable(), 0)
	v := &viewport{grid: g}
	g.evictToHistory(textLine(5, "a"))
	g.evictToHistory(textLine(5, "b"))

	v.scrollUp(99)
	assert.Equal(t, 2, v.offset)
	v.scrollDown(1)
	assert.Equal(t, 1, v.offset)
	v.scrollToBottom()
	assert.True(t, v.atBottom())
	v.scrollToTop()
	assert.Equal(t, 2, v.offset)
}
