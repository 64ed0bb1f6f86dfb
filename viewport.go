package termcore

// viewport tracks how far the visible window is scrolled back into
// history. Offset 0 is the live page; positive offsets show older lines.
type viewport struct {
	offset int
	grid   *Grid
}

func (v *viewport) scrollUp(n int) {
	v.offset = clamp(v.offset+n, 0, v.grid.HistorySize())
}

func (v *viewport) scrollDown(n int) {
	v.offset = clamp(v.offset-n, 0, v.grid.HistorySize())
}

func (v *viewport) scrollToTop() {
	v.offset = v.grid.HistorySize()
}

func (v *viewport) scrollToBottom() {
	v.offset = 0
}

func (v *viewport) atBottom() bool { return v.offset == 0 }

// lineOffset resolves a visible row to a grid line offset.
func (v *viewport) lineOffset(row int) int {
	return row - v.offset
}
