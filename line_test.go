package termcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTrivialAppend(t *testing.T) {
	l := newLine(10, Style{}, 0)
	for i, r := range "abc" {
		l.Set(i, Cell{Character: Character{Grapheme: string(r), Width: 1}})
	}
	assert.True(t, l.trivial)
	assert.Equal(t, "abc", l.String())
	assert.Equal(t, "b", l.At(1).Grapheme)
}

func TestLinePromotesOnStyledWrite(t *testing.T) {
	red := Style{Foreground: IndexColor(1)}
	l := newLine(10, Style{}, 0)
	l.Set(0, Cell{Character: Character{Grapheme: "a", Width: 1}})
	l.Set(1, Cell{Character: Character{Grapheme: "b", Width: 1}, Style: red})
	assert.False(t, l.trivial)
	assert.Equal(t, red, l.At(1).Style)
	assert.Equal(t, "a", l.At(0).Grapheme)
}

func TestLineUniformStyleStaysTrivial(t *testing.T) {
	red := Style{Foreground: IndexColor(1)}
	l := newLine(10, Style{}, 0)
	l.Set(0, Cell{Character: Character{Grapheme: "a", Width: 1}, Style: red})
	l.Set(1, Cell{Character: Character{Grapheme: "b", Width: 1}, Style: red})
	assert.True(t, l.trivial)
	assert.Equal(t, red, l.At(0).Style)
}

func TestLinePromotesOnNonAscii(t *testing.T) {
	l := newLine(10, Style{}, 0)
	l.Set(0, Cell{Character: Character{Grapheme: "é", Width: 1}})
	assert.False(t, l.trivial)
	assert.Equal(t, "é", l.At(0).Grapheme)
}

func TestLinePromotesOnGapWrite(t *testing.T) {
	l := newLine(10, Style{}, 0)
	l.Set(5, Cell{Character: Character{Grapheme: "x", Width: 1}})
	assert.False(t, l.trivial)
	assert.Equal(t, "", l.At(0).Grapheme)
	assert.Equal(t, "x", l.At(5).Grapheme)
}

func TestLineFillRange(t *testing.T) {
	l := newLine(10, Style{}, 0)
	for i, r := range "abcdefghij" {
		l.Set(i, Cell{Character: Character{Grapheme: string(r), Width: 1}})
	}
	// suffix erase of a trivial line stays trivial
	l.fillRange(4, 10, Style{})
	assert.True(t, l.trivial)
	assert.Equal(t, "abcd", l.String())

	// interior erase inflates
	l.fillRange(1, 3, Style{})
	assert.False(t, l.trivial)
	assert.Equal(t, "a  d", l.String())
}

func TestLineResizeDropsWidePairAtBoundary(t *testing.T) {
	l := newLine(10, Style{}, 0)
	l.inflate()
	l.cells[4] = Cell{Character: Character{Grapheme: "世", Width: 2}}
	l.cells[5] = Cell{Character: Character{Width: 0}, spacer: true}
	l.resize(5)
	assert.Equal(t, 5, l.Width())
	// the left half may not survive alone
	assert.Equal(t, "", l.At(4).Grapheme)
	assert.Equal(t, 1, l.At(4).Width)
}

func TestLineFlags(t *testing.T) {
	l := newLine(5, Style{}, FlagWrappable)
	assert.True(t, l.Wrappable())
	assert.False(t, l.Wrapped())
	l.setFlag(FlagWrapped | FlagMarked)
	assert.True(t, l.Wrapped())
	assert.True(t, l.Marked())
	l.clearFlag(FlagWrapped)
	assert.False(t, l.Wrapped())
}

func TestLineClusters(t *testing.T) {
	l := newLine(10, Style{}, 0)
	l.inflate()
	l.cells[0] = Cell{Character: Character{Grapheme: "a", Width: 1}}
	l.cells[1] = Cell{Character: Character{Grapheme: "世", Width: 2}}
	l.cells[2] = Cell{Character: Character{Width: 0}, spacer: true}
	l.cells[3] = Cell{Character: Character{Grapheme: "b", Width: 1}}
	cs := l.clusters()
	assert.Len(t, cs, 3)
	assert.Equal(t, "世", cs[1].Grapheme)
}
