package termcore

// DefaultMaxHistory is the scrollback cap applied when a Terminal is
// created without one.
const DefaultMaxHistory = 10000

// lineRing is the bounded scrollback store. Oldest lines drop on
// overflow.
type lineRing struct {
	buf   []*Line
	head  int
	count int
}

func newLineRing(capacity int) *lineRing {
	if capacity < 0 {
		capacity = 0
	}
	return &lineRing{buf: make([]*Line, capacity)}
}

func (r *lineRing) cap() int  { return len(r.buf) }
func (r *lineRing) size() int { return r.count }

// push appends a line, returning the evicted oldest line when full.
func (r *lineRing) push(l *Line) *Line {
	if len(r.buf) == 0 {
		return l
	}
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = l
		r.count++
		return nil
	}
	evicted := r.buf[r.head]
	r.buf[r.head] = l
	r.head = (r.head + 1) % len(r.buf)
	return evicted
}

// at returns the i-th oldest line, 0 ≤ i < size.
func (r *lineRing) at(i int) *Line {
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *lineRing) clear() {
	r.head = 0
	r.count = 0
	for i := range r.buf {
		r.buf[i] = nil
	}
}

// popNewest removes and returns the most recently pushed line, or nil.
func (r *lineRing) popNewest() *Line {
	if r.count == 0 {
		return nil
	}
	r.count--
	idx := (r.head + r.count) % len(r.buf)
	l := r.buf[idx]
	r.buf[idx] = nil
	return l
}

// Grid is the ordered line store: history ⧺ page, indexed by a signed
// line offset where 0 is the top of the page and negative offsets refer
// to scrollback.
type Grid struct {
	page  []*Line
	hist  *lineRing
	rows  int
	cols  int
	links *hyperlinkTable

	// absoluteBase is the absolute id of page line 0; it only ever
	// grows. Selections anchor to absolute ids so they survive
	// scrolling.
	absoluteBase int64
}

func newGrid(rows, cols, maxHistory int, links *hyperlinkTable, flags LineFlags) *Grid {
	g := &Grid{
		page:  make([]*Line, rows),
		hist:  newLineRing(maxHistory),
		rows:  rows,
		cols:  cols,
		links: links,
	}
	for i := range g.page {
		g.page[i] = newLine(cols, Style{}, flags)
	}
	return g
}

func (g *Grid) Rows() int        { return g.rows }
func (g *Grid) Cols() int        { return g.cols }
func (g *Grid) HistorySize() int { return g.hist.size() }

// Line resolves a signed line offset. Offsets below -HistorySize or at or
// beyond the page height resolve to nil.
func (g *Grid) Line(offset int) *Line {
	if offset >= 0 {
		if offset >= g.rows {
			return nil
		}
		return g.page[offset]
	}
	i := g.hist.size() + offset
	if i < 0 {
		return nil
	}
	return g.hist.at(i)
}

// absolute returns the absolute line id for a line offset.
func (g *Grid) absolute(offset int) int64 {
	return g.absoluteBase + int64(offset)
}

// offsetOf translates an absolute id back to a current offset and
// whether it still resolves to a live line.
func (g *Grid) offsetOf(abs int64) (int, bool) {
	off := int(abs - g.absoluteBase)
	if off >= g.rows || g.hist.size()+off < 0 {
		return 0, false
	}
	return off, true
}

// releaseLinks drops the grid's hyperlink references held by l.
func (g *Grid) releaseLinks(l *Line) {
	if l == nil {
		return
	}
	l.forEachLink(g.links.decref)
}

// evictToHistory pushes a page line into scrollback. Scrollback only ever
// receives lines evicted from above the page; eviction beyond the cap
// releases the dropped line's hyperlink references.
func (g *Grid) evictToHistory(l *Line) {
	g.releaseLinks(g.hist.push(l))
	g.absoluteBase++
}

// restoreFromHistory pulls the newest scrollback line back onto the page
// top, used when the page grows taller.
func (g *Grid) restoreFromHistory() *Line {
	l := g.hist.popNewest()
	if l != nil {
		g.absoluteBase--
	}
	return l
}

func (g *Grid) clearHistory() {
	for i := 0; i < g.hist.size(); i++ {
		g.releaseLinks(g.hist.at(i))
	}
	g.hist.clear()
}

// replacePage swaps in a fresh page of blank lines, releasing link
// references of the old one.
func (g *Grid) replacePage(fill Style, flags LineFlags) {
	for _, l := range g.page {
		g.releaseLinks(l)
	}
	for i := range g.page {
		g.page[i] = newLine(g.cols, fill.fill(), flags)
	}
}
