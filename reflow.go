package termcore

// resize changes the screen geometry. The primary screen reflows
// wrappable line runs so logical content survives width changes; the
// alternate screen (and reflow-disabled screens) trims or pads in place.
func (s *Screen) resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 2 {
		cols = 2
	}
	if rows == s.rows() && cols == s.cols() {
		return
	}
	if s.sel != nil {
		s.sel.Clear()
	}
	s.forgetCombining()

	if s.wrappable != 0 {
		s.reflow(rows, cols)
	} else {
		s.resizeInPlace(rows, cols)
	}

	s.resetMargins()
	s.saved.valid = false
	s.cursor.pendingWrap = false
	s.cursor.row = clamp(s.cursor.row, 0, rows-1)
	s.cursor.col = clamp(s.cursor.col, 0, cols-1)
}

// resizeInPlace adjusts geometry without moving text between lines.
func (s *Screen) resizeInPlace(rows, cols int) {
	g := s.grid
	if cols != g.cols {
		for _, l := range g.page {
			l.resize(cols)
		}
		g.cols = cols
	}
	for rows < g.rows {
		// prefer dropping blank lines below the cursor before
		// evicting from the top
		last := g.rows - 1
		if last > s.cursor.row && g.page[last].usedColumns() == 0 {
			g.releaseLinks(g.page[last])
			g.page = g.page[:last]
			g.rows--
			continue
		}
		evicted := g.page[0]
		copy(g.page, g.page[1:])
		g.page = g.page[:g.rows-1]
		g.rows--
		if s.scrollback {
			g.evictToHistory(evicted)
		} else {
			g.releaseLinks(evicted)
		}
		if s.cursor.row > 0 {
			s.cursor.row--
		}
	}
	for rows > g.rows {
		if restored := g.restoreFromHistory(); restored != nil {
			restored.resize(cols)
			g.page = append([]*Line{restored}, g.page...)
			s.cursor.row++
		} else {
			g.page = append(g.page, newLine(cols, Style{}, s.wrappable))
		}
		g.rows++
	}
}

// reflow re-lays wrappable runs into the new width, preserving logical
// content modulo trailing blanks, then re-windows history and page.
func (s *Screen) reflow(rows, cols int) {
	g := s.grid

	total := g.hist.size() + g.rows
	old := make([]*Line, 0, total)
	for i := 0; i < g.hist.size(); i++ {
		old = append(old, g.hist.at(i))
	}
	old = append(old, g.page...)

	cursorIdx := g.hist.size() + clamp(s.cursor.row, 0, g.rows-1)
	cursorCol := clamp(s.cursor.col, 0, g.cols-1)

	var (
		out []*Line
		// cursor mapping: index into out plus column
		newCursorLine = -1
		newCursorCol  = 0
	)

	flush := func(run []*Line, runStart int) {
		if len(run) == 0 {
			return
		}
		// non-wrappable runs resize in place
		if !run[0].Wrappable() {
			for i, l := range run {
				l.resize(cols)
				if runStart+i == cursorIdx {
					newCursorLine = len(out)
					newCursorCol = clamp(cursorCol, 0, cols-1)
				}
				out = append(out, l)
			}
			return
		}

		// concatenate the run's logical clusters, remembering where
		// the cursor's character sits
		var clusters []Cell
		cursorAt := -1
		for i, l := range run {
			cs := l.clusters()
			if runStart+i == cursorIdx {
				at := 0
				col := 0
				for _, c := range cs {
					if col >= cursorCol {
						break
					}
					col += c.Width
					at++
				}
				cursorAt = len(clusters) + at
			}
			clusters = append(clusters, cs...)
		}

		flags := run[0].Flags() &^ FlagWrapped
		line := newLine(cols, Style{}, flags)
		col := 0
		emit := func() {
			out = append(out, line)
			line = newLine(cols, Style{}, flags)
			col = 0
		}
		for idx, c := range clusters {
			w := c.Width
			if w < 1 {
				w = 1
			}
			if col+w > cols {
				line.setFlag(FlagWrapped)
				emit()
			}
			if idx == cursorAt {
				newCursorLine = len(out)
				newCursorCol = col
			}
			line.Set(col, c)
			if c.Width == 2 {
				line.inflate()
				line.cells[col+1] = Cell{Character: Character{Width: 0}, Style: c.Style, spacer: true}
			}
			col += w
		}
		if cursorAt >= len(clusters) && cursorAt >= 0 {
			newCursorLine = len(out)
			newCursorCol = col
		}
		out = append(out, line)
	}

	run := make([]*Line, 0, 8)
	runStart := 0
	for i, l := range old {
		if len(run) == 0 {
			runStart = i
		}
		run = append(run, l)
		join := l.Wrapped() && l.Wrappable()
		if i+1 < len(old) && join && old[i+1].Wrappable() {
			continue
		}
		flush(run, runStart)
		run = run[:0]
	}
	flush(run, runStart)

	// drop trailing blank lines so the page does not sink
	for len(out) > 0 {
		last := out[len(out)-1]
		if last.usedColumns() != 0 || len(out)-1 == newCursorLine {
			break
		}
		out = out[:len(out)-1]
	}

	// re-window: last rows lines form the page, the rest is history
	pageStart := len(out) - rows
	if pageStart < 0 {
		pageStart = 0
	}
	if newCursorLine >= 0 && newCursorLine < pageStart {
		pageStart = newCursorLine
	}
	if pageStart+rows < len(out) {
		// keep the cursor on the page even if it cuts the tail
		out = out[:pageStart+rows]
	}

	maxHist := g.hist.cap()
	g.hist = newLineRing(maxHist)
	histLines := out[:pageStart]
	start := 0
	if len(histLines) > maxHist {
		start = len(histLines) - maxHist
	}
	for _, l := range histLines[start:] {
		g.hist.push(l)
	}

	g.page = make([]*Line, rows)
	for i := 0; i < rows; i++ {
		if pageStart+i < len(out) {
			g.page[i] = out[pageStart+i]
		} else {
			g.page[i] = newLine(cols, Style{}, s.wrappable)
		}
	}
	g.rows = rows
	g.cols = cols

	if newCursorLine >= 0 {
		s.cursor.row = clamp(newCursorLine-pageStart, 0, rows-1)
		s.cursor.col = clamp(newCursorCol, 0, cols-1)
	} else {
		s.cursor.row = clamp(s.cursor.row, 0, rows-1)
		s.cursor.col = clamp(s.cursor.col, 0, cols-1)
	}
}
