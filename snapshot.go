package termcore

import "strings"

// CursorStyle is a DECSCUSR shape selection.
type CursorStyle uint8

const (
	CursorStyleDefault CursorStyle = iota
	CursorStyleBlockBlink
	CursorStyleBlock
	CursorStyleUnderlineBlink
	CursorStyleUnderline
	CursorStyleBarBlink
	CursorStyleBar
)

// Blinking reports whether the style requests a blinking cursor.
func (cs CursorStyle) Blinking() bool {
	switch cs {
	case CursorStyleDefault, CursorStyleBlockBlink, CursorStyleUnderlineBlink, CursorStyleBarBlink:
		return true
	}
	return false
}

// cursorVisibility is the cursor display state machine: hidden beats
// everything, otherwise steady or a blink phase toggled by the host's
// blink timer.
type cursorVisibility struct {
	hidden   bool
	blinkOff bool
	style    CursorStyle
}

// Tick advances the blink phase; the host drives it from its timer.
func (cv *cursorVisibility) Tick() {
	cv.blinkOff = !cv.blinkOff
}

func (cv *cursorVisibility) visible(blinkMode bool) bool {
	if cv.hidden {
		return false
	}
	if (cv.style.Blinking() || blinkMode) && cv.blinkOff {
		return false
	}
	return true
}

// SnapshotCell is one rendered cell with its hyperlink resolved.
type SnapshotCell struct {
	Character
	Style     Style
	Hyperlink Hyperlink
	Selected  bool
}

// Snapshot is a coherent, immutable view of the visible region handed to
// the renderer. It is safe to keep after the grid continues mutating.
type Snapshot struct {
	Rows int
	Cols int
	// Cells is row-major; the right half of a wide pair has Width 0
	Cells [][]SnapshotCell

	CursorRow     int
	CursorCol     int
	CursorVisible bool
	CursorStyle   CursorStyle

	Title     string
	AltScreen bool
	// ReverseVideo reflects DECSCNM: the renderer swaps default
	// foreground and background
	ReverseVideo   bool
	ViewportOffset int
	HistorySize    int

	Images []ImagePlacement
}

// Snapshot takes a coherent copy of the visible region under the screen
// lock. The returned value never mutates; the renderer may hold it for
// as long as it likes.
func (t *Terminal) Snapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.active
	rows, cols := s.rows(), s.cols()
	sn := &Snapshot{
		Rows:           rows,
		Cols:           cols,
		Cells:          make([][]SnapshotCell, rows),
		Title:          t.title,
		AltScreen:      t.modes.altScreen,
		ReverseVideo:   t.modes.decscnm,
		ViewportOffset: t.view.offset,
		HistorySize:    s.grid.HistorySize(),
		CursorStyle:    t.cursorVis.style,
	}
	for row := 0; row < rows; row++ {
		offset := t.view.lineOffset(row)
		line := s.grid.Line(offset)
		out := make([]SnapshotCell, cols)
		for col := 0; col < cols; col++ {
			var c Cell
			if line != nil {
				c = line.At(col)
			} else {
				c = Cell{Character: Character{Width: 1}}
			}
			sc := SnapshotCell{
				Character: c.Character,
				Style:     c.Style,
				Selected:  t.sel.Contains(offset, col),
			}
			if c.spacer {
				sc.Width = 0
			}
			if c.Link != 0 {
				sc.Hyperlink = t.links.resolve(c.Link)
			}
			out[col] = sc
		}
		sn.Cells[row] = out
	}

	row, col := s.Cursor()
	sn.CursorRow = row + t.view.offset
	sn.CursorCol = clamp(col, 0, cols-1)
	sn.CursorVisible = t.modes.dectcem &&
		t.view.atBottom() &&
		t.cursorVis.visible(t.modes.blinkCursor)

	for _, p := range t.images {
		off, ok := s.grid.offsetOf(p.absLine)
		if !ok {
			continue
		}
		visRow := off + t.view.offset
		if visRow >= rows || visRow+p.rows < 0 {
			continue
		}
		sn.Images = append(sn.Images, ImagePlacement{
			Row:  visRow,
			Col:  p.col,
			Rows: p.rows,
			Cols: p.cols,
			Img:  p.img,
		})
	}
	return sn
}

// ToUtf8Trimmed renders the snapshot as plain text, one line per row,
// trailing blanks removed.
func (sn *Snapshot) ToUtf8Trimmed() string {
	var b strings.Builder
	for row := range sn.Cells {
		var line strings.Builder
		for _, c := range sn.Cells[row] {
			if c.Width == 0 {
				continue
			}
			if c.Grapheme == "" {
				line.WriteByte(' ')
			} else {
				line.WriteString(c.Grapheme)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if row < len(sn.Cells)-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
