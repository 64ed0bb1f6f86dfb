package termcore

// cursor is the active writing position and brush.
type cursor struct {
	row int
	col int
	// style is the current SGR brush
	style Style
	// link is the active OSC 8 hyperlink
	link HyperlinkID
	// pendingWrap is the autowrap sentinel: the cursor sits on the
	// right margin after filling it, and the next print wraps first
	pendingWrap bool
}

// savedCursor is the DECSC register.
type savedCursor struct {
	cursor   cursor
	charsets charsets
	decom    bool
	decawm   bool
	valid    bool
}

// margins are the active scrolling region, all bounds inclusive.
type margins struct {
	top    int
	bottom int
	left   int
	right  int
}

// Screen executes control functions against one grid. The terminal keeps
// two: primary (with scrollback) and alternate.
type Screen struct {
	grid    *Grid
	cursor  cursor
	saved   savedCursor
	margins margins

	// shared terminal state
	modes *modes
	tabs  *tabStops
	links *hyperlinkTable

	charsets charsets
	method   WidthMethod

	// scrollback reports whether lines evicted from the page top feed
	// history; the alternate screen never does
	scrollback bool

	// wrappable is the line flag applied to new lines when reflow is on
	wrappable LineFlags

	// sel is cleared whenever a write overlaps it
	sel *Selection

	// lastRow/lastCol remember the most recent print for combining
	// characters
	lastRow  int
	lastCol  int
	lastSeen bool
}

func newScreen(rows, cols, maxHistory int, modes *modes, tabs *tabStops, links *hyperlinkTable, reflow bool) *Screen {
	var flags LineFlags
	if reflow {
		flags = FlagWrappable
	}
	s := &Screen{
		grid:       newGrid(rows, cols, maxHistory, links, flags),
		modes:      modes,
		tabs:       tabs,
		links:      links,
		charsets:   defaultCharsets(),
		scrollback: maxHistory > 0,
		wrappable:  flags,
	}
	s.margins = margins{top: 0, bottom: rows - 1, left: 0, right: cols - 1}
	return s
}

func (s *Screen) Grid() *Grid { return s.grid }
func (s *Screen) rows() int   { return s.grid.rows }
func (s *Screen) cols() int   { return s.grid.cols }

// Cursor returns the cursor position.
func (s *Screen) Cursor() (row, col int) { return s.cursor.row, s.cursor.col }

func (s *Screen) leftMargin() int {
	if s.modes.declrmm {
		return s.margins.left
	}
	return 0
}

func (s *Screen) rightMargin() int {
	if s.modes.declrmm {
		return s.margins.right
	}
	return s.cols() - 1
}

func (s *Screen) line(row int) *Line { return s.grid.page[row] }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// noteMutation clears an overlapping selection.
func (s *Screen) noteMutation(row int) {
	if s.sel != nil && s.sel.Active() {
		if s.sel.overlapsAbsolute(s.grid.absolute(row)) {
			s.sel.Clear()
		}
	}
}

// setCell stores a cell, maintaining hyperlink refcounts and wide-pair
// atomicity at the target column.
func (s *Screen) setCell(row, col int, c Cell) {
	line := s.line(row)
	old := line.At(col)

	// writing over half of a wide pair dissolves the whole pair
	if old.spacer && col > 0 {
		left := line.At(col - 1)
		if left.Width == 2 {
			s.links.decref(left.Link)
			line.Set(col-1, Cell{Character: Character{Width: 1}, Style: left.Style.fill()})
		}
	}
	if old.Width == 2 && col+1 < s.cols() {
		right := line.At(col + 1)
		if right.spacer {
			line.Set(col+1, Cell{Character: Character{Width: 1}, Style: old.Style.fill()})
		}
	}

	if !old.spacer {
		s.links.decref(old.Link)
	}
	s.links.incref(c.Link)
	line.Set(col, c)
}

// writeText is the grid write path: wrap, insert/replace, wide pair
// placement, style and hyperlink tagging.
func (s *Screen) writeText(ch Character) {
	if ch.Width <= 0 {
		s.combine(ch)
		return
	}
	right := s.rightMargin()

	if s.cursor.pendingWrap && s.modes.decawm {
		s.wrap()
	}

	// a wide cluster that cannot fit in the last column wraps early
	// (or stays clamped without autowrap)
	if ch.Width == 2 && s.cursor.col+1 > right {
		if s.modes.decawm {
			s.wrap()
		} else if s.cursor.col > 0 {
			s.cursor.col--
		}
	}

	row := clamp(s.cursor.row, 0, s.rows()-1)
	col := clamp(s.cursor.col, 0, s.cols()-1)
	s.noteMutation(row)

	if s.modes.irm {
		s.insertCells(row, col, ch.Width)
	}

	cell := Cell{
		Character: ch,
		Style:     s.cursor.style,
		Link:      s.cursor.link,
	}
	s.setCell(row, col, cell)
	if ch.Width == 2 && col+1 <= right {
		s.setCell(row, col+1, Cell{
			Character: Character{Width: 0},
			Style:     s.cursor.style,
			spacer:    true,
		})
	}

	s.lastRow, s.lastCol, s.lastSeen = row, col, true

	switch {
	case s.modes.decawm && col+ch.Width-1 >= right:
		s.cursor.col = right
		s.cursor.pendingWrap = true
	case col+ch.Width-1 >= right:
		s.cursor.col = right
	default:
		s.cursor.col = col + ch.Width
	}
}

// combine appends a zero-width cluster to the most recently written cell.
func (s *Screen) combine(ch Character) {
	if !s.lastSeen || ch.Grapheme == "" {
		return
	}
	line := s.line(s.lastRow)
	c := line.At(s.lastCol)
	if c.Grapheme == "" {
		return
	}
	c.Grapheme += ch.Grapheme
	w := s.method.Measure(c.Grapheme)
	c.Width = clamp(w, 1, 2)
	line.inflate()
	line.cells[s.lastCol] = c
}

// wrap marks the current line wrapped and moves to the next, scrolling
// at the bottom margin.
func (s *Screen) wrap() {
	row := clamp(s.cursor.row, 0, s.rows()-1)
	s.line(row).setFlag(FlagWrapped)
	s.cursor.pendingWrap = false
	s.cursor.col = s.leftMargin()
	s.index()
}

// index (IND) moves the cursor down one line, scrolling the region when
// at the bottom margin.
func (s *Screen) index() {
	if s.cursor.row == s.margins.bottom {
		s.scrollUp(1)
		return
	}
	if s.cursor.row < s.rows()-1 {
		s.cursor.row++
	}
}

// reverseIndex (RI) moves up one line, scrolling down at the top margin.
func (s *Screen) reverseIndex() {
	if s.cursor.row == s.margins.top {
		s.scrollDown(1)
		return
	}
	if s.cursor.row > 0 {
		s.cursor.row--
	}
}

func (s *Screen) linefeed() {
	s.cursor.pendingWrap = false
	if s.modes.lnm {
		s.cursor.col = s.leftMargin()
	}
	s.index()
}

func (s *Screen) nextLine() {
	s.cursor.pendingWrap = false
	s.cursor.col = s.leftMargin()
	s.index()
}

func (s *Screen) carriageReturn() {
	s.cursor.pendingWrap = false
	left := s.leftMargin()
	if s.cursor.col < left {
		s.cursor.col = 0
		return
	}
	s.cursor.col = left
}

func (s *Screen) backspace() {
	s.cursor.pendingWrap = false
	if s.cursor.col > s.leftMargin() {
		s.cursor.col--
	}
}

func (s *Screen) horizontalTab() {
	s.cursor.pendingWrap = false
	s.cursor.col = s.tabs.next(s.cursor.col, s.rightMargin()+1)
}

func (s *Screen) backwardTab(n int) {
	s.cursor.pendingWrap = false
	for i := 0; i < n; i++ {
		s.cursor.col = s.tabs.prev(s.cursor.col)
	}
}

func (s *Screen) forwardTab(n int) {
	s.cursor.pendingWrap = false
	for i := 0; i < n; i++ {
		s.cursor.col = s.tabs.next(s.cursor.col, s.rightMargin()+1)
	}
}

// scrollUp shifts the region content up by n rows; new rows at the
// bottom are blank with the current fill. Full-page scrolls on the
// primary screen evict into scrollback.
func (s *Screen) scrollUp(n int) {
	m := s.margins
	left, right := s.leftMargin(), s.rightMargin()
	if n <= 0 {
		return
	}
	height := m.bottom - m.top + 1
	if n > height {
		n = height
	}

	fullWidth := left == 0 && right == s.cols()-1
	fullPage := fullWidth && m.top == 0 && m.bottom == s.rows()-1

	if fullPage && s.scrollback {
		// content moves intact into history; absolute anchors (and
		// with them selections) stay valid
		for i := 0; i < n; i++ {
			evicted := s.grid.page[0]
			copy(s.grid.page, s.grid.page[1:])
			s.grid.page[s.rows()-1] = newLine(s.cols(), s.cursor.style.fill(), s.wrappable)
			s.grid.evictToHistory(evicted)
		}
		s.forgetCombining()
		return
	}

	for row := m.top; row <= m.bottom; row++ {
		s.noteMutation(row)
	}

	if fullWidth {
		// the top n lines shift off the region and are lost
		for row := m.top; row < m.top+n; row++ {
			s.grid.releaseLinks(s.grid.page[row])
		}
		for row := m.top; row+n <= m.bottom; row++ {
			s.grid.page[row] = s.grid.page[row+n]
		}
		for row := m.bottom - n + 1; row <= m.bottom; row++ {
			if row < m.top {
				continue
			}
			s.grid.page[row] = newLine(s.cols(), s.cursor.style.fill(), s.wrappable)
		}
		s.forgetCombining()
		return
	}

	// narrow region: move cell ranges per row
	for row := m.top; row <= m.bottom; row++ {
		dst := s.line(row)
		dst.inflate()
		src := row + n
		if src <= m.bottom {
			from := s.line(src)
			for col := left; col <= right; col++ {
				s.setCell(row, col, from.At(col))
			}
		} else {
			s.eraseRegion(row, left, row, right)
		}
	}
	s.forgetCombining()
}

// scrollDown shifts the region content down by n rows; vacated top rows
// are blank.
func (s *Screen) scrollDown(n int) {
	m := s.margins
	left, right := s.leftMargin(), s.rightMargin()
	if n <= 0 {
		return
	}
	height := m.bottom - m.top + 1
	if n > height {
		n = height
	}
	for row := m.top; row <= m.bottom; row++ {
		s.noteMutation(row)
	}

	fullWidth := left == 0 && right == s.cols()-1
	if fullWidth {
		// the bottom n lines shift off the region and are lost
		for row := m.bottom - n + 1; row <= m.bottom; row++ {
			if row >= m.top {
				s.grid.releaseLinks(s.grid.page[row])
			}
		}
		for row := m.bottom; row-n >= m.top; row-- {
			s.grid.page[row] = s.grid.page[row-n]
		}
		for row := m.top; row < m.top+n && row <= m.bottom; row++ {
			s.grid.page[row] = newLine(s.cols(), s.cursor.style.fill(), s.wrappable)
		}
		s.forgetCombining()
		return
	}

	for row := m.bottom; row >= m.top; row-- {
		dst := s.line(row)
		dst.inflate()
		src := row - n
		if src >= m.top {
			from := s.line(src)
			for col := left; col <= right; col++ {
				s.setCell(row, col, from.At(col))
			}
		} else {
			s.eraseRegion(row, left, row, right)
		}
	}
	s.forgetCombining()
}

func (s *Screen) forgetCombining() { s.lastSeen = false }

// moveCursorTo places the cursor at 0-based coordinates, honouring
// origin mode.
func (s *Screen) moveCursorTo(row, col int) {
	s.cursor.pendingWrap = false
	if s.modes.decom {
		row += s.margins.top
		col += s.leftMargin()
		row = clamp(row, s.margins.top, s.margins.bottom)
		col = clamp(col, s.leftMargin(), s.rightMargin())
	} else {
		row = clamp(row, 0, s.rows()-1)
		col = clamp(col, 0, s.cols()-1)
	}
	s.cursor.row = row
	s.cursor.col = col
}

func (s *Screen) cursorUp(n int) {
	s.cursor.pendingWrap = false
	limit := 0
	if s.cursor.row >= s.margins.top {
		limit = s.margins.top
	}
	s.cursor.row = clamp(s.cursor.row-n, limit, s.rows()-1)
}

func (s *Screen) cursorDown(n int) {
	s.cursor.pendingWrap = false
	limit := s.rows() - 1
	if s.cursor.row <= s.margins.bottom {
		limit = s.margins.bottom
	}
	s.cursor.row = clamp(s.cursor.row+n, 0, limit)
}

func (s *Screen) cursorForward(n int) {
	s.cursor.pendingWrap = false
	limit := s.cols() - 1
	if s.cursor.col <= s.rightMargin() {
		limit = s.rightMargin()
	}
	s.cursor.col = clamp(s.cursor.col+n, 0, limit)
}

func (s *Screen) cursorBack(n int) {
	s.cursor.pendingWrap = false
	limit := 0
	if s.cursor.col >= s.leftMargin() {
		limit = s.leftMargin()
	}
	s.cursor.col = clamp(s.cursor.col-n, limit, s.cols()-1)
}

func (s *Screen) cursorColumn(col int) {
	s.cursor.pendingWrap = false
	if s.modes.decom {
		col += s.leftMargin()
		s.cursor.col = clamp(col, s.leftMargin(), s.rightMargin())
		return
	}
	s.cursor.col = clamp(col, 0, s.cols()-1)
}

func (s *Screen) cursorRow(row int) {
	s.cursor.pendingWrap = false
	if s.modes.decom {
		row += s.margins.top
		s.cursor.row = clamp(row, s.margins.top, s.margins.bottom)
		return
	}
	s.cursor.row = clamp(row, 0, s.rows()-1)
}

// setVerticalMargins applies DECSTBM with 1-based parameters; the cursor
// homes afterwards.
func (s *Screen) setVerticalMargins(top, bottom int) {
	if bottom <= 0 || bottom > s.rows() {
		bottom = s.rows()
	}
	if top < 1 {
		top = 1
	}
	// top must remain strictly above bottom
	if top >= bottom {
		return
	}
	s.margins.top = top - 1
	s.margins.bottom = bottom - 1
	s.moveCursorTo(0, 0)
}

// setHorizontalMargins applies DECSLRM when DECLRMM is enabled.
func (s *Screen) setHorizontalMargins(left, right int) {
	if !s.modes.declrmm {
		return
	}
	if right <= 0 || right > s.cols() {
		right = s.cols()
	}
	if left < 1 {
		left = 1
	}
	if left >= right {
		return
	}
	s.margins.left = left - 1
	s.margins.right = right - 1
	s.moveCursorTo(0, 0)
}

func (s *Screen) resetMargins() {
	s.margins = margins{top: 0, bottom: s.rows() - 1, left: 0, right: s.cols() - 1}
}

func (s *Screen) saveCursor() {
	s.saved = savedCursor{
		cursor:   s.cursor,
		charsets: s.charsets,
		decom:    s.modes.decom,
		decawm:   s.modes.decawm,
		valid:    true,
	}
}

func (s *Screen) restoreCursor() {
	if !s.saved.valid {
		s.cursor = cursor{style: s.cursor.style}
		s.modes.decom = false
		return
	}
	s.cursor = s.saved.cursor
	s.charsets = s.saved.charsets
	s.modes.decom = s.saved.decom
	s.modes.decawm = s.saved.decawm
	s.cursor.row = clamp(s.cursor.row, 0, s.rows()-1)
	s.cursor.col = clamp(s.cursor.col, 0, s.cols()-1)
}

// alignmentTest fills the page with E (DECALN) and resets margins.
func (s *Screen) alignmentTest() {
	s.resetMargins()
	s.cursor.row, s.cursor.col = 0, 0
	s.cursor.pendingWrap = false
	for row := 0; row < s.rows(); row++ {
		s.noteMutation(row)
		line := s.line(row)
		line.inflate()
		for col := 0; col < s.cols(); col++ {
			s.setCell(row, col, Cell{Character: Character{Grapheme: "E", Width: 1}})
		}
	}
}
