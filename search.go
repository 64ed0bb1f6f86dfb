package termcore

import "unicode"

// SearchDirection selects which way a search walks the grid.
type SearchDirection uint8

const (
	SearchForward SearchDirection = iota
	SearchBackward
)

// SearchMatch is one pattern occurrence. Start and End address the match
// by grid line offset and column; matches may span wrapped-line
// boundaries.
type SearchMatch struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Search holds a compiled pattern, its case folding and a direction. It
// keeps no match position; Find takes the position to search from.
type Search struct {
	pattern    []rune
	ignoreCase bool
	direction  SearchDirection
	grid       *Grid
}

// SetPattern compiles the pattern to UTF-32.
func (s *Search) SetPattern(pattern string, ignoreCase bool) {
	s.pattern = s.pattern[:0]
	for _, r := range pattern {
		if ignoreCase {
			r = unicode.ToLower(r)
		}
		s.pattern = append(s.pattern, r)
	}
	s.ignoreCase = ignoreCase
}

func (s *Search) Empty() bool { return len(s.pattern) == 0 }

// logicalRun collects a run of wrap-joined lines starting at offset,
// returning the concatenated clusters and their source coordinates.
func (s *Search) logicalRun(offset int) ([]rune, []SearchMatch, int) {
	var (
		runes  []rune
		coords []SearchMatch
	)
	last := offset
	for {
		line := s.grid.Line(last)
		if line == nil {
			break
		}
		col := 0
		used := line.usedColumns()
		for col < used {
			c := line.At(col)
			if c.spacer {
				col++
				continue
			}
			for _, r := range c.rune() {
				runes = append(runes, r)
				coords = append(coords, SearchMatch{StartLine: last, StartCol: col, EndLine: last, EndCol: col})
			}
			w := c.Width
			if w < 1 {
				w = 1
			}
			col += w
		}
		if !line.Wrapped() {
			break
		}
		last++
	}
	return runes, coords, last
}

func (s *Search) fold(r rune) rune {
	if s.ignoreCase {
		return unicode.ToLower(r)
	}
	return r
}

// matchAt tests the pattern against the run starting at index i.
func (s *Search) matchAt(runes []rune, i int) bool {
	if i+len(s.pattern) > len(runes) {
		return false
	}
	for j, pr := range s.pattern {
		if s.fold(runes[i+j]) != pr {
			return false
		}
	}
	return true
}

// runStart walks backwards to the first line of the wrapped run that
// offset belongs to.
func (s *Search) runStart(offset int) int {
	for {
		prev := s.grid.Line(offset - 1)
		if prev == nil || !prev.Wrapped() {
			return offset
		}
		offset--
	}
}

// Find locates the first occurrence at or after (forward) or at or
// before (backward) the given position.
func (s *Search) Find(fromLine, fromCol int) (SearchMatch, bool) {
	if s.Empty() {
		return SearchMatch{}, false
	}
	low := -s.grid.HistorySize()
	high := s.grid.Rows() - 1

	if s.direction == SearchBackward {
		for offset := s.runStart(fromLine); offset >= low; offset = s.runStart(offset - 1) {
			runes, coords, _ := s.logicalRun(offset)
			best := -1
			for i := range runes {
				if !s.matchAt(runes, i) {
					continue
				}
				c := coords[i]
				if c.StartLine > fromLine || (c.StartLine == fromLine && c.StartCol > fromCol) {
					break
				}
				best = i
			}
			if best >= 0 {
				return s.matchSpan(coords, best), true
			}
		}
		return SearchMatch{}, false
	}

	for offset := s.runStart(fromLine); offset <= high; {
		runes, coords, last := s.logicalRun(offset)
		for i := range runes {
			if !s.matchAt(runes, i) {
				continue
			}
			c := coords[i]
			if c.StartLine < fromLine || (c.StartLine == fromLine && c.StartCol < fromCol) {
				continue
			}
			return s.matchSpan(coords, i), true
		}
		// once past the starting run, any hit counts
		fromLine, fromCol = last+1, 0
		offset = last + 1
	}
	return SearchMatch{}, false
}

func (s *Search) matchSpan(coords []SearchMatch, i int) SearchMatch {
	start := coords[i]
	end := coords[i+len(s.pattern)-1]
	return SearchMatch{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// SetDirection sets which way Find walks.
func (s *Search) SetDirection(d SearchDirection) { s.direction = d }
